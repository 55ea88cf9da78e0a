package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	ta "github.com/mymmrac/telego/telegoapi"
	tu "github.com/mymmrac/telego/telegoutil"

	"bfmr_bot/internal/domain/service/conversation"
)

// Telegram отвечает этим текстом, если новое содержимое совпадает со старым
// (например, листание списка из одной сделки).
const errMessageNotModified = "message is not modified"

type sender interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
	EditMessageText(ctx context.Context, params *telego.EditMessageTextParams) (*telego.Message, error)
	DeleteMessage(ctx context.Context, params *telego.DeleteMessageParams) error
}

// Responder отправляет сообщения контроллера через Bot API в разметке HTML.
type Responder struct {
	bot sender
}

func NewResponder(bot sender) *Responder {
	return &Responder{bot: bot}
}

func (r *Responder) Send(ctx context.Context, chatID int64, msg conversation.Message) (conversation.MessageRef, error) {
	params := tu.Message(tu.ID(chatID), msg.Text).
		WithParseMode(telego.ModeHTML).
		WithLinkPreviewOptions(&telego.LinkPreviewOptions{IsDisabled: true})

	switch {
	case msg.ForceReply:
		params = params.WithReplyMarkup(tu.ForceReply())
	case len(msg.Buttons) > 0:
		params = params.WithReplyMarkup(inlineKeyboard(msg.Buttons))
	}

	sent, err := r.bot.SendMessage(ctx, params)
	if err != nil {
		return conversation.MessageRef{}, fmt.Errorf("bot.SendMessage: %w", err)
	}

	return conversation.MessageRef{ChatID: chatID, MessageID: sent.MessageID}, nil
}

// Edit меняет текст и inline-клавиатуру. ForceReply при редактировании
// не поддерживается Bot API и игнорируется.
func (r *Responder) Edit(ctx context.Context, ref conversation.MessageRef, msg conversation.Message) error {
	params := tu.EditMessageText(tu.ID(ref.ChatID), ref.MessageID, msg.Text).
		WithParseMode(telego.ModeHTML).
		WithLinkPreviewOptions(&telego.LinkPreviewOptions{IsDisabled: true})

	if len(msg.Buttons) > 0 {
		params = params.WithReplyMarkup(inlineKeyboard(msg.Buttons))
	}

	if _, err := r.bot.EditMessageText(ctx, params); err != nil {
		if isNotModified(err) {
			return nil
		}

		return fmt.Errorf("bot.EditMessageText: %w", err)
	}

	return nil
}

func (r *Responder) Delete(ctx context.Context, ref conversation.MessageRef) error {
	if err := r.bot.DeleteMessage(ctx, tu.Delete(tu.ID(ref.ChatID), ref.MessageID)); err != nil {
		return fmt.Errorf("bot.DeleteMessage: %w", err)
	}

	return nil
}

func inlineKeyboard(rows [][]conversation.Button) *telego.InlineKeyboardMarkup {
	keyboard := make([][]telego.InlineKeyboardButton, 0, len(rows))

	for _, row := range rows {
		buttons := make([]telego.InlineKeyboardButton, 0, len(row))

		for _, b := range row {
			button := tu.InlineKeyboardButton(b.Text)
			if b.URL != "" {
				button = button.WithURL(b.URL)
			} else {
				button = button.WithCallbackData(b.CallbackData)
			}

			buttons = append(buttons, button)
		}

		keyboard = append(keyboard, tu.InlineKeyboardRow(buttons...))
	}

	return tu.InlineKeyboard(keyboard...)
}

func isNotModified(err error) bool {
	var apiErr *ta.Error
	if errors.As(err, &apiErr) {
		return strings.Contains(apiErr.Description, errMessageNotModified)
	}

	return false
}
