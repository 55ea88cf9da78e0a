package connectors

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // golang postgres driver
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"bfmr_bot/pkg/logx"
)

// Postgres лениво открывает пул соединений. Нужен только при хранении
// учётных данных в базе (SESSION_CREDENTIALS_BACKEND=postgres).
type Postgres struct {
	value           *sqlx.DB
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	init            sync.Once
}

func (p *Postgres) Client(ctx context.Context) *sqlx.DB {
	p.init.Do(func() {
		p.value = lo.Must(sqlx.ConnectContext(ctx, "pgx", p.DSN))

		p.value.SetMaxOpenConns(p.MaxOpenConns)
		p.value.SetMaxIdleConns(p.MaxIdleConns)
		p.value.SetConnMaxLifetime(p.ConnMaxLifetime)

		logger(ctx).Info(
			"postgres connected",
			slog.String("database", p.database()),
		)
	})

	return p.value
}

func (p *Postgres) Close(ctx context.Context) {
	if p.value == nil {
		return
	}

	if err := p.value.Close(); err != nil {
		logger(ctx).Error("postgresClient.Close", logx.Error(err))
	}

	logger(ctx).Info(
		"postgres disconnected",
		slog.String("database", p.database()),
	)
}

func (p *Postgres) database() string {
	u, err := url.Parse(p.DSN)
	if err != nil {
		return ""
	}

	return u.Path
}
