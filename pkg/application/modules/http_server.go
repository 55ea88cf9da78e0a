package modules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"bfmr_bot/pkg/logx"
)

// HTTPServer модуль, ответственный за запуск и остановку HTTP-сервера
// (graceful shutdown). В боте через него принимаются вебхуки Telegram.
type HTTPServer struct {
	Name            string
	ShutdownTimeout time.Duration
}

func (h HTTPServer) Run(
	ctx context.Context,
	g *errgroup.Group,
	httpServer *http.Server,
) {
	g.Go(func() error {
		go func() {
			<-ctx.Done()

			ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.ShutdownTimeout) //nolint:govet
			defer cancel()

			if err := httpServer.Shutdown(ctx); err != nil {
				logger(ctx).Error("server.Shutdown", slog.String("server", h.Name), logx.Error(err))
			}
		}()

		logger(ctx).Info("http server started", slog.String("server", h.Name), slog.String("address", httpServer.Addr))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe: %w", err)
		}

		logger(ctx).Info("http server stopped", slog.String("server", h.Name), slog.String("address", httpServer.Addr))

		return nil
	})
}
