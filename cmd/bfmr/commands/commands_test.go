package commands_test

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"bfmr_bot/cmd/bfmr/commands"
	"bfmr_bot/pkg/tests"
)

const (
	apiKey    = "public-key"
	apiSecret = "secret-key"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("BFMR_API_KEY", "")
	t.Setenv("BFMR_API_SECRET", "")
	t.Setenv("BFMR_BASE_URL", "")

	var out, errOut bytes.Buffer

	root := commands.NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestDeals(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		order    []string
		excluded []string
		query    map[string]string
	}{
		{
			name:  "Sorted by profit",
			order: []string{"Big Profit", "Small Profit", "Loss"},
			query: map[string]string{"page_size": "50", "exclusive_deals_only": "0"},
		},
		{
			name:     "Profitable only",
			args:     []string{"--profitable"},
			order:    []string{"Big Profit", "Small Profit"},
			excluded: []string{"Loss"},
		},
		{
			name:     "Search",
			args:     []string{"--search", "small"},
			order:    []string{"Small Profit"},
			excluded: []string{"Big Profit", "Loss"},
		},
		{
			name:  "Exclusive and page size",
			args:  []string{"--exclusive", "--page-size", "10"},
			order: []string{"Big Profit"},
			query: map[string]string{"page_size": "10", "exclusive_deals_only": "1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			fake := tests.NewFakeBFMR(t, apiKey, apiSecret)
			fake.SetDeals(
				tests.Deal("1", "Loss", "100", "90"),
				tests.Deal("2", "Small Profit", "100", "105"),
				tests.Deal("3", "Big Profit", "100", "150"),
			)

			args := append([]string{
				"deals",
				"--base-url", fake.URL(),
				"--api-key", apiKey,
				"--api-secret", apiSecret,
			}, tc.args...)

			out, err := run(t, args...)
			rq.NoError(err)

			last := -1
			for _, title := range tc.order {
				idx := strings.Index(out, title)
				rq.Greater(idx, last, title)
				last = idx
			}

			for _, title := range tc.excluded {
				rq.NotContains(out, title)
			}

			requests := fake.DealsRequests()
			rq.Len(requests, 1)

			for k, v := range tc.query {
				rq.Equal(v, requests[0].Get(k))
			}
		})
	}
}

func TestDealsWithoutCredentials(t *testing.T) {
	rq := require.New(t)

	_, err := run(t, "deals", "--base-url", "http://127.0.0.1:1")
	rq.ErrorContains(err, "API key and secret are required")
}

func TestDealsCredentialsFromEnv(t *testing.T) {
	rq := require.New(t)

	fake := tests.NewFakeBFMR(t, apiKey, apiSecret)

	var out bytes.Buffer

	t.Setenv("BFMR_API_KEY", apiKey)
	t.Setenv("BFMR_API_SECRET", apiSecret)
	t.Setenv("BFMR_BASE_URL", fake.URL())

	root := commands.NewRootCmd()
	root.SetArgs([]string{"deals"})
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})

	rq.NoError(root.ExecuteContext(context.Background()))
	rq.Contains(out.String(), "No deals found.")
}

func TestReserve(t *testing.T) {
	testCases := []struct {
		name       string
		qty        string
		status     int
		body       string
		errContain string
		reserved   int
	}{
		{
			name:     "Reserved",
			qty:      "2",
			status:   http.StatusOK,
			body:     `{"message":"ok"}`,
			reserved: 1,
		},
		{
			name:       "Invalid quantity",
			qty:        "0",
			errContain: "invalid quantity",
		},
		{
			name:       "Rejected",
			qty:        "1",
			status:     http.StatusBadRequest,
			body:       `{"message":"Reservations is closed for this deal"}`,
			errContain: "deal is closed for reservations",
			reserved:   1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			fake := tests.NewFakeBFMR(t, apiKey, apiSecret)
			if tc.status != 0 {
				fake.SetReserveResponse(tc.status, tc.body)
			}

			out, err := run(t,
				"reserve", "D1", "I1", tc.qty,
				"--base-url", fake.URL(),
				"--api-key", apiKey,
				"--api-secret", apiSecret,
			)

			if tc.errContain != "" {
				rq.ErrorContains(err, tc.errContain)
			} else {
				rq.NoError(err)
				rq.Contains(out, "quantity 2")
			}

			reservations := fake.Reservations()
			rq.Len(reservations, tc.reserved)

			if tc.reserved > 0 {
				rq.Equal("D1", reservations[0].Get("deal_id"))
				rq.Equal("I1", reservations[0].Get("item_id"))
				rq.Equal(tc.qty, reservations[0].Get("item_qty"))
			}
		})
	}
}
