package handler

import (
	"context"

	"github.com/mymmrac/telego"

	"bfmr_bot/internal/domain/service/conversation"
)

// Controller — сценарии диалога, которые вызывает транспорт.
type Controller interface {
	Start(ctx context.Context, in conversation.Input) error
	Help(ctx context.Context, in conversation.Input) error
	Setup(ctx context.Context, in conversation.Input) error
	Cancel(ctx context.Context, in conversation.Input) error
	Browse(ctx context.Context, in conversation.Input) error
	ViewAll(ctx context.Context, in conversation.Input) error
	Profitable(ctx context.Context, in conversation.Input) error
	Search(ctx context.Context, in conversation.Input, term string) error
	Text(ctx context.Context, in conversation.Input, text string) error
	Navigate(ctx context.Context, in conversation.Input, step int) error
	SelectItem(ctx context.Context, in conversation.Input, data string) error
}

type Handler struct {
	controller Controller
}

func New(controller Controller) *Handler {
	return &Handler{
		controller: controller,
	}
}

func messageInput(msg telego.Message) conversation.Input {
	in := conversation.Input{
		ChatID:    msg.Chat.ID,
		MessageID: msg.MessageID,
	}

	if msg.From != nil {
		in.UserID = msg.From.ID
	}

	return in
}

func callbackInput(query telego.CallbackQuery) conversation.Input {
	return conversation.Input{
		UserID:    query.From.ID,
		ChatID:    query.Message.GetChat().ID,
		MessageID: query.Message.GetMessageID(),
	}
}
