package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"bfmr_bot/internal/domain/entity"
	"bfmr_bot/pkg/logx"
)

const (
	defaultWatchInterval = 5 * time.Minute
	defaultSeenTTL       = 24 * time.Hour
)

type DealsSource interface {
	Profitable(ctx context.Context, creds entity.Credentials) ([]entity.Deal, error)
}

// DealWatcher периодически запрашивает выгодные сделки и отдаёт в канал те,
// что ещё не отправлялись за последние seenTTL.
type DealWatcher struct {
	source DealsSource
	creds  entity.Credentials
	deals  chan<- entity.Deal

	interval  time.Duration
	minProfit decimal.Decimal
	seen      *cache.Cache
}

func NewDealWatcher(
	source DealsSource,
	creds entity.Credentials,
	deals chan<- entity.Deal,
) *DealWatcher {
	return &DealWatcher{
		source:    source,
		creds:     creds,
		deals:     deals,
		interval:  defaultWatchInterval,
		minProfit: decimal.Zero,
		seen:      cache.New(defaultSeenTTL, defaultSeenTTL),
	}
}

func (w *DealWatcher) WithInterval(interval time.Duration) *DealWatcher {
	if interval > 0 {
		w.interval = interval
	}

	return w
}

// WithMinProfit отсекает сделки с разницей меньше minProfit долларов.
func (w *DealWatcher) WithMinProfit(minProfit decimal.Decimal) *DealWatcher {
	w.minProfit = minProfit
	return w
}

func (w *DealWatcher) WithSeenTTL(ttl time.Duration) *DealWatcher {
	if ttl > 0 {
		w.seen = cache.New(ttl, ttl)
	}

	return w
}

// Run сканирует сразу и затем раз в interval, пока не отменён ctx.
// Ошибки BFMR логируются и не прерывают наблюдение.
func (w *DealWatcher) Run(ctx context.Context) error {
	logger(ctx).Info("deal watcher started", slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, err := w.Scan(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			logger(ctx).Error("deal scan failed", logx.Error(err))
		}

		select {
		case <-ctx.Done():
			logger(ctx).Info("deal watcher stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Scan — один проход: возвращает число новых сделок, отданных в канал.
func (w *DealWatcher) Scan(ctx context.Context) (int, error) {
	deals, err := w.source.Profitable(ctx, w.creds)
	if err != nil {
		return 0, fmt.Errorf("worker.Scan: %w", err)
	}

	var found int

	for _, deal := range deals {
		if deal.PriceDifference.LessThan(w.minProfit) {
			continue
		}

		// Add не перезаписывает существующий ключ.
		if err := w.seen.Add(deal.DealID, struct{}{}, cache.DefaultExpiration); err != nil {
			continue
		}

		select {
		case w.deals <- deal:
			found++
		case <-ctx.Done():
			return found, ctx.Err()
		}
	}

	if found > 0 {
		logger(ctx).Info("new profitable deals found", slog.Int("deals-found", found))
	}

	return found, nil
}
