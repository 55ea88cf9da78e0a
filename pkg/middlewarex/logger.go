package middlewarex

import (
	"log/slog"
	"net/http"

	"bfmr_bot/pkg/contextx"
	"bfmr_bot/pkg/logx"
)

// Logger кладёт в контекст запроса логгер с trace id, путём и адресом клиента.
// URL логируется без query: в пути вебхука может оказаться секрет.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		traceID, err := contextx.TraceIDFromContext(ctx)
		if err != nil {
			logger(ctx).Error("contextx.TraceIDFromContext", logx.Error(err))
		}

		ctx = contextx.WithLogger(
			ctx,
			logger(ctx).With(
				logx.Stringer(logx.FieldTraceID, traceID),
				slog.String(logx.FieldURL, r.URL.Path),
				slog.String(logx.FieldHTTPMethod, r.Method),
				slog.String(logx.FieldIP, r.RemoteAddr),
			),
		)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
