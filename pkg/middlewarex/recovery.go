package middlewarex

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"git.appkode.ru/pub/go/failure"

	"bfmr_bot/pkg/errcodes"
	"bfmr_bot/pkg/httpx/reply"
	"bfmr_bot/pkg/logx"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			if rec := recover(); rec != nil {
				logger(ctx).Error(
					"panic in handler",
					slog.Any(logx.FieldError, rec),
					slog.String(logx.FieldStack, string(debug.Stack())),
				)

				reply.Error(ctx, w, failure.NewInternalServerError(
					fmt.Sprintf("panic: %v", rec),
					failure.WithCode(errcodes.InternalServerError),
				))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
