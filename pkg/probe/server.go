package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"bfmr_bot/pkg/contextx"
	"bfmr_bot/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const httpServerReadHeaderTimeout = 5 * time.Second

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// ReadinessCheck возвращает ошибку, пока зависимость не готова принимать трафик.
type ReadinessCheck func(ctx context.Context) error

type Server struct {
	listenAddress string
	state         []byte
	checks        []ReadinessCheck
}

type Options struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type notReadyResponse struct {
	Options

	Error string `json:"error"`
}

func NewServer(
	listenAddress string,
	options Options,
) Server {
	stateJSON, _ := json.Marshal(options) //nolint:errcheck,errchkjson

	return Server{
		listenAddress: listenAddress,
		state:         stateJSON,
	}
}

func (s Server) WithReadinessCheck(checks ...ReadinessCheck) Server {
	s.checks = append(append([]ReadinessCheck(nil), s.checks...), checks...)
	return s
}

func (s Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handlerHealthz)
	mux.HandleFunc("/ready", s.handlerReady)

	return mux
}

func (s Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              s.listenAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		if err := httpServer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger(ctx).Error("httpServer.Shutdown", logx.Error(err))
		}
	}()

	logger(ctx).Info("probe server started", slog.String("address", s.listenAddress))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}

	logger(ctx).Info("probe server stopped")

	return nil
}

func (s Server) handlerHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write(s.state) //nolint:errcheck
}

func (s Server) handlerReady(w http.ResponseWriter, r *http.Request) {
	for _, check := range s.checks {
		if err := check(r.Context()); err != nil {
			var options Options

			_ = json.Unmarshal(s.state, &options) //nolint:errcheck

			body, _ := json.Marshal(notReadyResponse{Options: options, Error: err.Error()}) //nolint:errcheck,errchkjson

			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write(body) //nolint:errcheck

			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write(s.state) //nolint:errcheck
}
