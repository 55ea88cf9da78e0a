package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"bfmr_bot/internal/config"
	"bfmr_bot/internal/transport/bot/handler"
	"bfmr_bot/pkg/logx"
)

const defaultStopTimeout = 10 * time.Second

var ErrNotReady = errors.New("bot is not ready")

// AllowedUpdates — бот обрабатывает только сообщения и нажатия кнопок.
func AllowedUpdates() []string {
	return []string{"message", "callback_query"}
}

// NewClient создаёт клиент Bot API с логами telego в slog.
func NewClient(cfg config.Bot, log *slog.Logger, opts ...telego.BotOption) (*telego.Bot, error) {
	opts = append([]telego.BotOption{
		telego.WithLogger(logx.NewTelegoLogger(log).WithDebug(cfg.Debug)),
	}, opts...)

	client, err := telego.NewBot(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	return client, nil
}

// WebhookRegistrar регистрирует обработчик вебхука на HTTP-сервере.
type WebhookRegistrar func(handler telego.WebhookHandler) error

type webhook struct {
	url      string
	secret   string
	register WebhookRegistrar
}

// Bot принимает апдейты (long polling или вебхук) и раздаёт их обработчикам.
type Bot struct {
	bot         *telego.Bot
	handler     *handler.Handler
	options     handler.Options
	middlewares []th.Handler

	webhook     *webhook
	pollTimeout int
	stopTimeout time.Duration

	ready atomic.Bool
}

func New(bot *telego.Bot, h *handler.Handler, options handler.Options) *Bot {
	return &Bot{
		bot:         bot,
		handler:     h,
		options:     options,
		pollTimeout: 60, //nolint:mnd
		stopTimeout: defaultStopTimeout,
	}
}

// WithMiddlewares добавляет middleware перед встроенными.
func (b *Bot) WithMiddlewares(mws ...th.Handler) *Bot {
	b.middlewares = append(b.middlewares, mws...)
	return b
}

// WithWebhook переключает бота на вебхук. Без него используется long polling.
func (b *Bot) WithWebhook(url, secret string, register WebhookRegistrar) *Bot {
	b.webhook = &webhook{url: url, secret: secret, register: register}
	return b
}

func (b *Bot) WithPollTimeout(seconds int) *Bot {
	b.pollTimeout = seconds
	return b
}

func (b *Bot) WithStopTimeout(timeout time.Duration) *Bot {
	b.stopTimeout = timeout
	return b
}

// Ready годится как проверка готовности: бот готов, пока принимает апдейты.
func (b *Bot) Ready(context.Context) error {
	if !b.ready.Load() {
		return ErrNotReady
	}

	return nil
}

// Run блокируется до отмены ctx. После отмены дожидается обработчиков,
// но не дольше stopTimeout.
func (b *Bot) Run(ctx context.Context) error {
	log := logger(ctx)

	if err := b.bot.SetMyCommands(ctx, &telego.SetMyCommandsParams{Commands: handler.Commands()}); err != nil {
		log.Warn("failed to set bot commands", logx.Error(err))
	}

	me, err := b.bot.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("bot.GetMe: %w", err)
	}

	updates, err := b.updates(ctx)
	if err != nil {
		return err
	}

	if b.options.Sequencer != nil {
		updates = b.options.Sequencer.Updates(updates)
	}

	bh, err := th.NewBotHandler(b.bot, updates, th.WithErrorHandler(
		func(_ *th.Context, update telego.Update, err error) {
			log.Error("unhandled update error", slog.Int(logx.FieldUpdateID, update.UpdateID), logx.Error(err))
		},
	))
	if err != nil {
		return fmt.Errorf("th.NewBotHandler: %w", err)
	}

	b.handler.RegisterRoutes(bh, b.options, b.middlewares...)

	b.ready.Store(true)
	defer b.ready.Store(false)

	log.Info("bot started", slog.String("username", me.Username), slog.Bool("webhook", b.webhook != nil))

	startErr := bh.Start()

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.stopTimeout)
	defer cancel()

	if err := bh.StopWithContext(stopCtx); err != nil {
		log.Warn("bot handler stopped with timeout", logx.Error(err))
	}

	if startErr != nil {
		return fmt.Errorf("bh.Start: %w", startErr)
	}

	log.Info("bot stopped")

	return nil
}

func (b *Bot) updates(ctx context.Context) (<-chan telego.Update, error) {
	if b.webhook != nil {
		updates, err := b.bot.UpdatesViaWebhook(ctx, b.webhook.register, telego.WithWebhookSet(ctx, &telego.SetWebhookParams{
			URL:                b.webhook.url,
			SecretToken:        b.webhook.secret,
			AllowedUpdates:     AllowedUpdates(),
			DropPendingUpdates: true,
		}))
		if err != nil {
			return nil, fmt.Errorf("bot.UpdatesViaWebhook: %w", err)
		}

		return updates, nil
	}

	// Оставшийся от прошлого запуска вебхук не даёт работать getUpdates.
	if err := b.bot.DeleteWebhook(ctx, &telego.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
		return nil, fmt.Errorf("bot.DeleteWebhook: %w", err)
	}

	updates, err := b.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout:        b.pollTimeout,
		AllowedUpdates: AllowedUpdates(),
	})
	if err != nil {
		return nil, fmt.Errorf("bot.UpdatesViaLongPolling: %w", err)
	}

	return updates, nil
}
