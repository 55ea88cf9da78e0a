package deals_test

import (
	"context"
	"errors"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bfmr_bot/internal/domain/entity"
	"bfmr_bot/internal/domain/service/deals"
	"bfmr_bot/pkg/errcodes"
)

type stubClient struct {
	deals   []entity.Deal
	err     error
	queries []entity.DealsQuery
}

func (s *stubClient) Deals(_ context.Context, _ entity.Credentials, query entity.DealsQuery) ([]entity.Deal, error) {
	s.queries = append(s.queries, query)
	return s.deals, s.err
}

func deal(id string, retail, payout int64) entity.Deal {
	r, p := decimal.NewFromInt(retail), decimal.NewFromInt(payout)

	return entity.Deal{
		DealID:          id,
		Title:           "deal " + id,
		RetailPrice:     r,
		PayoutPrice:     p,
		PriceDifference: p.Sub(r),
	}
}

func ids(list []entity.Deal) []string {
	result := make([]string, 0, len(list))
	for _, d := range list {
		result = append(result, d.DealID)
	}

	return result
}

func TestProfitable(t *testing.T) {
	testCases := []struct {
		name  string
		deals []entity.Deal
		want  []string
	}{
		{
			name:  "sorted by difference",
			deals: []entity.Deal{deal("a", 10, 12), deal("b", 20, 25)},
			want:  []string{"b", "a"},
		},
		{
			name:  "break-even and losing deals dropped",
			deals: []entity.Deal{deal("a", 10, 10), deal("b", 20, 15), deal("c", 5, 6)},
			want:  []string{"c"},
		},
		{
			name:  "equal differences keep order",
			deals: []entity.Deal{deal("a", 10, 13), deal("b", 1, 4), deal("c", 2, 10)},
			want:  []string{"c", "a", "b"},
		},
		{
			name:  "empty",
			deals: nil,
			want:  []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ids(deals.Profitable(tc.deals)))
		})
	}
}

func TestSearch(t *testing.T) {
	macbook := deal("1", 100, 110)
	macbook.Title = `MacBook Pro 16"`

	switchDeal := deal("2", 300, 320)
	switchDeal.Description = "Nintendo console bundle"

	airpods := deal("3", 100, 120)
	airpods.Items = []entity.Item{{ID: "i", Name: "AirPods Pro - 2nd gen"}}

	all := []entity.Deal{macbook, switchDeal, airpods}

	testCases := []struct {
		name string
		term string
		want []string
	}{
		{name: "title case-insensitive", term: "macbook", want: []string{"1"}},
		{name: "description", term: "NINTENDO", want: []string{"2"}},
		{name: "item name", term: "airpods", want: []string{"3"}},
		{name: "several", term: "pro", want: []string{"1", "3"}},
		{name: "nothing", term: "xbox", want: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ids(deals.Search(all, tc.term)))
		})
	}
}

func TestService(t *testing.T) {
	ctx := context.Background()
	creds := entity.Credentials{APIKey: "k", APISecret: "s"}

	t.Run("profitable", func(t *testing.T) {
		rq := require.New(t)

		client := &stubClient{deals: []entity.Deal{deal("a", 10, 12), deal("b", 20, 25), deal("c", 5, 1)}}
		svc := deals.NewService(client).WithPageSize(25).WithExclusiveOnly(true)

		got, err := svc.Profitable(ctx, creds)
		rq.NoError(err)
		rq.Equal([]string{"b", "a"}, ids(got))
		rq.Equal([]entity.DealsQuery{{PageSize: 25, PageNo: 1, ExclusiveOnly: true}}, client.queries)
	})

	t.Run("search requires term", func(t *testing.T) {
		rq := require.New(t)

		client := &stubClient{}

		_, err := deals.NewService(client).Search(ctx, creds, "   ")
		rq.True(failure.IsInvalidArgumentError(err))
		rq.Equal(errcodes.MissingSearchTerm, failure.Code(err))
		rq.Empty(client.queries)
	})

	t.Run("client error", func(t *testing.T) {
		rq := require.New(t)

		boom := errors.New("boom")

		_, err := deals.NewService(&stubClient{err: boom}).All(ctx, creds)
		rq.ErrorIs(err, boom)
	})
}
