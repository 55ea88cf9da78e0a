package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"bfmr_bot/internal/config"
	"bfmr_bot/internal/domain/entity"
	"bfmr_bot/internal/domain/service/conversation"
	"bfmr_bot/internal/domain/service/deals"
	"bfmr_bot/internal/infrastructure/bfmr"
	"bfmr_bot/internal/infrastructure/notifier"
	"bfmr_bot/internal/infrastructure/persistence"
	"bfmr_bot/internal/infrastructure/session"
	"bfmr_bot/internal/server"
	"bfmr_bot/internal/transport/bot"
	"bfmr_bot/internal/transport/bot/handler"
	"bfmr_bot/internal/transport/bot/middleware"
	"bfmr_bot/internal/worker"
	"bfmr_bot/pkg/application/connectors"
	"bfmr_bot/pkg/application/modules"
	"bfmr_bot/pkg/httpx"
	"bfmr_bot/pkg/metrics"
	"bfmr_bot/pkg/probe"
)

const (
	httpServerReadHeaderTimeout = 5 * time.Second
	alertBuffer                 = 100
)

// Run собирает зависимости и блокируется, пока не отменён ctx или не упал
// один из модулей.
func Run(ctx context.Context, cfg config.Config) error {
	log := logger(ctx)

	registry := metrics.NewRegistry()
	collectors := metrics.NewCollectors(registry)

	// Connectors
	store, closeStore := newSessionStore(ctx, cfg)
	defer closeStore()

	// BFMR
	transport := httpx.NewLoggingRoundTripper(
		nil,
		httpx.WithLogFieldMaxLen(cfg.BFMR.LogFieldMaxLen),
		httpx.WithObserver(collectors),
	)
	bfmrClient := bfmr.NewClient(cfg.BFMR.BaseURL, cfg.BFMR.Timeout, transport).
		WithPageSize(cfg.BFMR.PageSize).
		WithObserver(collectors)
	dealsService := deals.NewService(bfmrClient).WithPageSize(cfg.BFMR.PageSize)

	// Telegram
	tgClient, err := bot.NewClient(cfg.Bot, log)
	if err != nil {
		return fmt.Errorf("bot.NewClient: %w", err)
	}

	responder := bot.NewResponder(tgClient)

	controller := conversation.NewController(dealsService, bfmrClient, store, responder).
		WithPromoURL(cfg.Bot.PromoURL)

	tgBot := bot.New(tgClient, handler.New(controller), handler.Options{
		AllowedUsers:  cfg.Bot.AllowedUsers,
		UpdateTimeout: cfg.Bot.UpdateTimeout,
		Sequencer:     middleware.NewSequencer(),
	}).
		WithMiddlewares(
			middleware.Context(log),
			middleware.ErrorReporter(responder),
			middleware.Metrics(collectors),
		).
		WithPollTimeout(cfg.Bot.PollTimeout).
		WithStopTimeout(cfg.Server.ShutdownTimeout)

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Bot.Webhook() {
		webhookServer := server.NewWebhookServer(cfg.Bot.WebhookPath, cfg.Bot.WebhookSecret)
		tgBot = tgBot.WithWebhook(cfg.Bot.WebhookEndpoint(), cfg.Bot.WebhookSecret, webhookServer.Register)

		modules.HTTPServer{
			Name:            "webhook",
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
		}.Run(ctx, g, &http.Server{
			//nolint:exhaustruct
			Addr:              cfg.Server.WebhookAddr,
			Handler:           server.NewServer(webhookServer).Handler(),
			ReadHeaderTimeout: httpServerReadHeaderTimeout,
			BaseContext: func(net.Listener) context.Context {
				return ctx
			},
		})
	}

	modules.MetricServer{
		ListenAddress: cfg.Server.MetricsAddr,
		Gatherer:      registry,
	}.Run(ctx, g)

	modules.ProbeServer{
		Name:            cfg.App.Name,
		Version:         cfg.App.Version,
		ListenAddress:   cfg.Server.ProbeAddr,
		ReadinessChecks: []probe.ReadinessCheck{tgBot.Ready},
	}.Run(ctx, g)

	modules.Worker{Name: "bot"}.Run(ctx, g, tgBot.Run)

	if cfg.Watcher.Enabled() {
		runWatcher(ctx, g, cfg, dealsService, responder, collectors)
	} else {
		log.Info("deal watcher disabled")
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

func newSessionStore(ctx context.Context, cfg config.Config) (*session.Store, func()) {
	var (
		kv      session.KV
		closers []func()
	)

	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		redis := &connectors.Redis{
			Address:        cfg.Redis.Addr,
			Password:       cfg.Redis.Password,
			DatabaseNumber: cfg.Redis.DB,
		}
		kv = session.NewRedisKV(redis.Client(ctx), cfg.Session.KeyPrefix)
		closers = append(closers, func() { redis.Close(ctx) })
	default:
		kv = session.NewMemoryKV()
	}

	store := session.NewStore(kv).
		WithTTL(cfg.Session.SetupDraftTTL, cfg.Session.PendingTTL, cfg.Session.BrowseTTL)

	if cfg.Session.CredentialsBackend == config.CredentialsBackendPostgres {
		pg := &connectors.Postgres{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		}
		store = store.WithCredentialsRepository(persistence.NewCredentialsRepository(pg.Client(ctx)))
		closers = append(closers, func() { pg.Close(ctx) })
	}

	logger(ctx).Info(
		"session store ready",
		slog.String("backend", cfg.Session.Backend),
		slog.String("credentials", cfg.Session.CredentialsBackend),
	)

	return store, func() {
		for _, c := range closers {
			c()
		}
	}
}

func runWatcher(
	ctx context.Context,
	g *errgroup.Group,
	cfg config.Config,
	dealsService *deals.Service,
	sender notifier.Sender,
	collectors *metrics.Collectors,
) {
	alerts := make(chan entity.Deal, alertBuffer)

	watcher := worker.NewDealWatcher(dealsService, entity.Credentials{
		APIKey:    cfg.Watcher.APIKey,
		APISecret: cfg.Watcher.APISecret,
	}, alerts).
		WithInterval(cfg.Watcher.Interval).
		WithMinProfit(decimal.NewFromFloat(cfg.Watcher.MinProfit)).
		WithSeenTTL(cfg.Watcher.SeenTTL)

	alertBot := notifier.NewTelegramBot(sender, cfg.Watcher.ChatID).
		WithPromoURL(cfg.Bot.PromoURL).
		WithCounter(collectors)

	modules.Worker{Name: "deal-watcher"}.Run(ctx, g, watcher.Run)
	modules.Worker{Name: "notifier"}.Run(ctx, g, func(ctx context.Context) error {
		return alertBot.Run(ctx, alerts)
	})
}
