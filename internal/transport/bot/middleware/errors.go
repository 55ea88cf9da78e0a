package middleware

import (
	"context"
	"log/slog"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"bfmr_bot/internal/domain"
	"bfmr_bot/internal/domain/service/conversation"
	"bfmr_bot/pkg/logx"
)

type Sender interface {
	Send(ctx context.Context, chatID int64, msg conversation.Message) (conversation.MessageRef, error)
}

// ErrorReporter логирует ошибку обработчика и отвечает пользователю общим
// текстом. Дальше по цепочке ошибка не передаётся.
func ErrorReporter(sender Sender) th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		err := ctx.Next(update)
		if err == nil {
			return nil
		}

		code, _ := domain.GetCode(err)

		logger(ctx).Error(
			"update handling failed",
			logx.Error(err),
			slog.String(logx.FieldErrorCode, code.String()),
		)

		o, ok := originOf(update)
		if !ok || o.chatID == 0 {
			return nil
		}

		if _, sendErr := sender.Send(ctx, o.chatID, conversation.Message{Text: conversation.TextInternalError}); sendErr != nil {
			logger(ctx).Warn("failed to report error to user", logx.Error(sendErr))
		}

		return nil
	}
}
