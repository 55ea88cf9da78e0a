package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bfmr_bot/internal/domain/entity"
	"bfmr_bot/internal/worker"
)

type source struct {
	mu    sync.Mutex
	deals []entity.Deal
	err   error
	calls int
}

func (s *source) Profitable(context.Context, entity.Credentials) ([]entity.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++

	return s.deals, s.err
}

func (s *source) set(deals ...entity.Deal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deals = deals
}

func (s *source) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

func deal(id string, profit int64) entity.Deal {
	return entity.Deal{
		DealID:          id,
		RetailPrice:     decimal.NewFromInt(100),
		PayoutPrice:     decimal.NewFromInt(100 + profit),
		PriceDifference: decimal.NewFromInt(profit),
	}
}

func drain(ch <-chan entity.Deal) []string {
	var ids []string

	for {
		select {
		case d := <-ch:
			ids = append(ids, d.DealID)
		default:
			return ids
		}
	}
}

func TestScan(t *testing.T) {
	testCases := []struct {
		name      string
		minProfit int64
		rounds    [][]entity.Deal
		want      [][]string
	}{
		{
			name:   "New deals once",
			rounds: [][]entity.Deal{{deal("a", 5), deal("b", 10)}, {deal("a", 5), deal("c", 1)}},
			want:   [][]string{{"a", "b"}, {"c"}},
		},
		{
			name:      "Below minimum profit",
			minProfit: 10,
			rounds:    [][]entity.Deal{{deal("a", 5), deal("b", 10), deal("c", 25)}},
			want:      [][]string{{"b", "c"}},
		},
		{
			name:   "Nothing found",
			rounds: [][]entity.Deal{{}},
			want:   [][]string{nil},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			src := &source{}
			ch := make(chan entity.Deal, 10)

			w := worker.NewDealWatcher(src, entity.Credentials{APIKey: "k", APISecret: "s"}, ch).
				WithMinProfit(decimal.NewFromInt(tc.minProfit))

			for i, round := range tc.rounds {
				src.set(round...)

				found, err := w.Scan(context.Background())
				rq.NoError(err)
				rq.Equal(len(tc.want[i]), found)
				rq.Equal(tc.want[i], drain(ch))
			}
		})
	}
}

func TestScanError(t *testing.T) {
	rq := require.New(t)

	src := &source{err: errors.New("bfmr is down")}
	w := worker.NewDealWatcher(src, entity.Credentials{}, make(chan entity.Deal, 1))

	found, err := w.Scan(context.Background())
	rq.Error(err)
	rq.Zero(found)
}

func TestRun(t *testing.T) {
	rq := require.New(t)

	src := &source{}
	src.set(deal("a", 5))

	ch := make(chan entity.Deal, 10)
	w := worker.NewDealWatcher(src, entity.Credentials{}, ch).WithInterval(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- w.Run(ctx)
	}()

	rq.Eventually(func() bool {
		return src.callCount() >= 3
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	rq.ErrorIs(<-done, context.Canceled)

	// Сделка отправлена один раз, несмотря на повторные проходы.
	rq.Equal([]string{"a"}, drain(ch))
}
