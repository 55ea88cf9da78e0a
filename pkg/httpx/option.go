package httpx

type Option func(*LoggingRoundTripper)

func WithLogFieldMaxLen(logFieldMaxLen int) Option {
	return func(rt *LoggingRoundTripper) {
		rt.logFieldMaxLen = logFieldMaxLen
	}
}

func WithSensitiveDataMasker(sensitiveDataMasker sensitiveDataMasker) Option {
	return func(rt *LoggingRoundTripper) {
		rt.sensitiveDataMasker = sensitiveDataMasker
	}
}

// WithObserver подключает счётчик исходящих запросов (метрики по хосту и статусу).
func WithObserver(observer Observer) Option {
	return func(rt *LoggingRoundTripper) {
		rt.observer = observer
	}
}
