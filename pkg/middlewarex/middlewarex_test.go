package middlewarex_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"bfmr_bot/pkg/contextx"
	"bfmr_bot/pkg/middlewarex"
)

func newRouter(buf *bytes.Buffer) chi.Router {
	r := chi.NewRouter()

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := contextx.WithLogger(r.Context(), slog.New(slog.NewJSONHandler(buf, nil)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	r.Use(middlewarex.TraceID, middlewarex.Logger, middlewarex.AccessLog, middlewarex.Recovery)

	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		traceID, err := contextx.TraceIDFromContext(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Write([]byte(traceID.String())) //nolint:errcheck
	})
	r.Get("/panic", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	return r
}

func TestMiddlewareChain(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name       string
		path       string
		traceID    string
		statusCode int
		check      func(rec *httptest.ResponseRecorder, logs string)
	}{
		{
			name:       "Generated trace id",
			path:       "/ok",
			statusCode: http.StatusOK,
			check: func(rec *httptest.ResponseRecorder, logs string) {
				traceID := rec.Header().Get("X-Trace-Id")
				rq.Len(traceID, 20)
				rq.Equal(traceID, rec.Body.String())
				rq.Contains(logs, `"trace-id":"`+traceID+`"`)
				rq.Contains(logs, `"response-status":200`)
			},
		},
		{
			name:       "Incoming trace id",
			path:       "/ok",
			traceID:    "incoming-trace",
			statusCode: http.StatusOK,
			check: func(rec *httptest.ResponseRecorder, logs string) {
				rq.Equal("incoming-trace", rec.Body.String())
				rq.Contains(logs, `"url":"/ok"`)
			},
		},
		{
			name:       "Panic is recovered",
			path:       "/panic",
			statusCode: http.StatusInternalServerError,
			check: func(rec *httptest.ResponseRecorder, logs string) {
				rq.Contains(rec.Body.String(), `"code":"InternalServerError"`)
				rq.Contains(logs, "panic in handler")
				rq.Contains(logs, `"response-status":500`)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var buf bytes.Buffer

			req := httptest.NewRequest(http.MethodGet, tc.path, http.NoBody)
			if tc.traceID != "" {
				req.Header.Set("X-Trace-Id", tc.traceID)
			}

			rec := httptest.NewRecorder()
			newRouter(&buf).ServeHTTP(rec, req)

			rq.Equal(tc.statusCode, rec.Code)
			tc.check(rec, buf.String())
		})
	}
}
