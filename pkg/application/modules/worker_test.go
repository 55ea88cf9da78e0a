package modules_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"bfmr_bot/pkg/application/modules"
)

func TestWorker(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name    string
		run     func(context.Context) error
		wantErr string
	}{
		{
			name: "Stopped by context",
			run: func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
		},
		{
			name: "Failed",
			run: func(context.Context) error {
				return errors.New("boom")
			},
			wantErr: "watcher.Run: boom",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			ctx, cancel := context.WithCancel(context.Background())

			g, ctx := errgroup.WithContext(ctx)

			modules.Worker{Name: "watcher"}.Run(ctx, g, tc.run)

			cancel()

			err := g.Wait()
			if tc.wantErr == "" {
				rq.NoError(err)
				return
			}

			rq.EqualError(err, tc.wantErr)
		})
	}
}
