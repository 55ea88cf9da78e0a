package middlewarex

import (
	"cmp"
	"log/slog"
	"net/http"
	"time"

	"github.com/zenazn/goji/web/mutil"

	"bfmr_bot/pkg/logx"
)

// AccessLog пишет одну строку на запрос: статус, размер ответа и длительность.
// Тела не логируются: в апдейтах Telegram приходят ключи API пользователей.
//
// The trouble with optional interfaces:
// https://blog.merovius.de/posts/2017-07-30-the-trouble-with-optional-interfaces/
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		start := time.Now()
		lw := mutil.WrapWriter(w)

		next.ServeHTTP(lw, r)

		// Если в хэндлере принудительно не установлен статус, то
		// lw.Status() будет возвращать 0. Поэтому устанавливаем 200 вручную.
		status := cmp.Or(lw.Status(), http.StatusOK)

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		logger(ctx).Log(
			ctx,
			level,
			logx.FieldHTTPResponse,
			slog.Int(logx.FieldResponseStatus, status),
			slog.Int("response-bytes", lw.BytesWritten()),
			slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
		)
	})
}
