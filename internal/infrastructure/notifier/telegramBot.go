package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"bfmr_bot/internal/domain/entity"
	"bfmr_bot/internal/domain/service/conversation"
	"bfmr_bot/pkg/logx"
)

const alertHeader = "🔥 <b>New profitable deal!</b>\n\n"

type Sender interface {
	Send(ctx context.Context, chatID int64, msg conversation.Message) (conversation.MessageRef, error)
}

type AlertCounter interface {
	IncAlertSent()
}

// TelegramBot отправляет найденные сделки в один чат.
type TelegramBot struct {
	sender   Sender
	chatID   int64
	promoURL string
	counter  AlertCounter
}

func NewTelegramBot(sender Sender, chatID int64) *TelegramBot {
	return &TelegramBot{
		sender: sender,
		chatID: chatID,
	}
}

func (b *TelegramBot) WithPromoURL(promoURL string) *TelegramBot {
	b.promoURL = promoURL
	return b
}

func (b *TelegramBot) WithCounter(counter AlertCounter) *TelegramBot {
	b.counter = counter
	return b
}

// Run отправляет сделки из канала, пока канал не закрыт или не отменён ctx.
// Ошибка отправки одной сделки не останавливает рассылку.
func (b *TelegramBot) Run(ctx context.Context, deals <-chan entity.Deal) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case deal, ok := <-deals:
			if !ok {
				return nil
			}

			if err := b.SendDeal(ctx, deal); err != nil {
				logger(ctx).Error("failed to send deal alert", slog.String(logx.FieldDealID, deal.DealID), logx.Error(err))
			}
		}
	}
}

func (b *TelegramBot) SendDeal(ctx context.Context, deal entity.Deal) error {
	msg := conversation.RenderDeal(ctx, deal, conversation.RenderOptions{PromoURL: b.promoURL})
	msg.Text = alertHeader + msg.Text

	if _, err := b.sender.Send(ctx, b.chatID, msg); err != nil {
		return fmt.Errorf("notifier.SendDeal: %w", err)
	}

	if b.counter != nil {
		b.counter.IncAlertSent()
	}

	return nil
}

// SendText отправляет служебное сообщение, например о запуске наблюдателя.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	if _, err := b.sender.Send(ctx, b.chatID, conversation.Message{Text: text}); err != nil {
		return fmt.Errorf("notifier.SendText: %w", err)
	}

	return nil
}
