package modules

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"bfmr_bot/pkg/probe"
)

type ProbeServer struct {
	Name            string
	Version         string
	ListenAddress   string
	ReadinessChecks []probe.ReadinessCheck
}

func (p ProbeServer) Run(ctx context.Context, g *errgroup.Group) {
	if p.ListenAddress == "" {
		logger(ctx).Info("probe server disabled")
		return
	}

	probeServer := probe.NewServer(
		p.ListenAddress,
		probe.Options{
			Name:    p.Name,
			Version: p.Version,
		},
	).WithReadinessCheck(p.ReadinessChecks...)

	g.Go(func() error {
		if err := probeServer.Run(ctx); err != nil {
			return fmt.Errorf("probeServer.Run: %w", err)
		}

		return nil
	})
}
