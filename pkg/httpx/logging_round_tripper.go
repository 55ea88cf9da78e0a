package httpx

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strconv"
	"time"

	"github.com/rs/xid"

	"bfmr_bot/pkg/logx"
)

type sensitiveDataMasker interface {
	Mask([]byte) []byte
}

// Observer получает итог каждого запроса. status равен "error", если ответа
// не было.
type Observer interface {
	ObserveRequest(method, path, status string, duration time.Duration)
}

// LoggingRoundTripper implements http.RoundTripper interface and executes HTTP
// requests with logging.
type LoggingRoundTripper struct {
	next                http.RoundTripper
	sensitiveDataMasker sensitiveDataMasker
	observer            Observer
	logFieldMaxLen      int
}

// NewLoggingRoundTripper returns a new logging RoundTripper instance. Request
// and response dumps are masked with logx.SensitiveDataMasker unless another
// masker is given.
func NewLoggingRoundTripper(
	next http.RoundTripper,
	opts ...Option,
) LoggingRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	rt := LoggingRoundTripper{
		next:                next,
		sensitiveDataMasker: logx.NewSensitiveDataMasker(),
		logFieldMaxLen:      0,
	}

	for _, opt := range opts {
		opt(&rt)
	}

	return rt
}

// RoundTrip implements http.RoundTripper interface.
func (rt LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	requestID := xid.New().String()

	reqBytes, err := httputil.DumpRequestOut(req, true)
	if err != nil {
		logger(ctx).Error(
			"httputil.DumpRequestOut",
			slog.String(logx.FieldRequestID, requestID),
			logx.Error(err),
		)
	}

	logger(ctx).Debug(
		logx.FieldHTTPRequest,
		slog.String(logx.FieldRequestID, requestID),
		slog.String(logx.FieldRequestBody, rt.truncate(rt.sensitiveDataMasker.Mask(reqBytes))),
	)

	start := time.Now()

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		rt.observe(req, "error", time.Since(start))

		logger(ctx).Warn(
			logx.FieldHTTPResponse,
			slog.String(logx.FieldRequestID, requestID),
			slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
			logx.Error(err),
		)

		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	rt.observe(req, strconv.Itoa(resp.StatusCode), time.Since(start))

	respBytes, err := httputil.DumpResponse(resp, true)
	if err != nil {
		logger(ctx).Error(
			"httputil.DumpResponse",
			slog.String(logx.FieldRequestID, requestID),
			logx.Error(err),
		)
	}

	logger(ctx).Debug(
		logx.FieldHTTPResponse,
		slog.String(logx.FieldRequestID, requestID),
		slog.Int(logx.FieldResponseStatus, resp.StatusCode),
		slog.String(logx.FieldResponseBody, rt.truncate(rt.sensitiveDataMasker.Mask(respBytes))),
		slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
	)

	return resp, nil
}

func (rt LoggingRoundTripper) truncate(dump []byte) string {
	if rt.logFieldMaxLen != 0 && len(dump) > rt.logFieldMaxLen {
		dump = dump[:rt.logFieldMaxLen]
	}

	return string(dump)
}

func (rt LoggingRoundTripper) observe(req *http.Request, status string, duration time.Duration) {
	if rt.observer == nil {
		return
	}

	rt.observer.ObserveRequest(req.Method, req.URL.Path, status, duration)
}
