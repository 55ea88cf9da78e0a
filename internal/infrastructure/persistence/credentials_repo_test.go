package persistence_test

import (
	"context"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // golang postgres driver
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"bfmr_bot/internal/domain/entity"
	"bfmr_bot/internal/infrastructure/persistence"
	"bfmr_bot/pkg/dbtest"
)

func TestCredentialsRepository(t *testing.T) {
	dsn := os.Getenv("PG_TEST_DSN")
	if dsn == "" {
		t.Skip("PG_TEST_DSN is not set")
	}

	rq := require.New(t)
	ctx := context.Background()

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	rq.NoError(err)
	t.Cleanup(func() { db.Close() })

	rq.NoError(dbtest.MigrateFromFile(db, "../../../migrations/001_bot_credentials.sql"))

	repo := persistence.NewCredentialsRepository(db)

	const userID int64 = 424242

	t.Cleanup(func() { _ = repo.Delete(ctx, userID) })

	_, ok, err := repo.Get(ctx, userID)
	rq.NoError(err)
	rq.False(ok)

	setupDate := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	rq.NoError(repo.Save(ctx, userID, entity.Credentials{APIKey: "k1", APISecret: "s1", SetupDate: setupDate}))
	rq.NoError(repo.Save(ctx, userID, entity.Credentials{APIKey: "k2", APISecret: "s2", SetupDate: setupDate}))

	creds, ok, err := repo.Get(ctx, userID)
	rq.NoError(err)
	rq.True(ok)
	rq.Equal("k2", creds.APIKey)
	rq.Equal("s2", creds.APISecret)
	rq.True(setupDate.Equal(creds.SetupDate))

	rq.NoError(repo.Delete(ctx, userID))

	_, ok, err = repo.Get(ctx, userID)
	rq.NoError(err)
	rq.False(ok)
}
