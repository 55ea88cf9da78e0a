package middleware

import (
	"log/slog"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"bfmr_bot/pkg/contextx"
	"bfmr_bot/pkg/logx"
)

// Context кладёт в контекст апдейта trace id, id пользователя и логгер с этими
// полями. Контекст апдейта telego создаёт от context.Background, поэтому
// базовый логгер передаётся явно.
func Context(log *slog.Logger) th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		traceID := contextx.NewTraceID()

		attrs := []any{
			logx.Stringer(logx.FieldTraceID, traceID),
			slog.Int(logx.FieldUpdateID, update.UpdateID),
		}

		c := contextx.WithTraceID(ctx.Context(), traceID)

		if o, ok := originOf(update); ok {
			c = contextx.WithUserID(c, contextx.UserID(o.userID))
			attrs = append(attrs,
				slog.Int64(logx.FieldUserID, o.userID),
				slog.Int64(logx.FieldChatID, o.chatID),
			)
		}

		c = contextx.WithLogger(c, log.With(attrs...))

		return ctx.WithContext(c).Next(update)
	}
}
