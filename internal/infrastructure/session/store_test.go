package session_test

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/xid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bfmr_bot/internal/domain/entity"
	"bfmr_bot/internal/domain/value"
	"bfmr_bot/internal/infrastructure/session"
)

func testStore(t *testing.T, kv session.KV) {
	t.Helper()

	rq := require.New(t)
	ctx := context.Background()
	store := session.NewStore(kv)

	const (
		alice int64 = 1001
		bob   int64 = 1002
	)

	// Credentials
	_, ok, err := store.Credentials(ctx, alice)
	rq.NoError(err)
	rq.False(ok)

	setupDate := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rq.NoError(store.SaveCredentials(ctx, alice, entity.Credentials{APIKey: "k1", APISecret: "s1", SetupDate: setupDate}))
	rq.NoError(store.SaveCredentials(ctx, alice, entity.Credentials{APIKey: "k2", APISecret: "s2", SetupDate: setupDate}))

	creds, ok, err := store.Credentials(ctx, alice)
	rq.NoError(err)
	rq.True(ok)
	rq.Equal("k2", creds.APIKey)
	rq.Equal("s2", creds.APISecret)
	rq.True(setupDate.Equal(creds.SetupDate))

	_, ok, err = store.Credentials(ctx, bob)
	rq.NoError(err)
	rq.False(ok)

	// Pending commitment
	rq.NoError(store.SetPending(ctx, alice, entity.PendingCommitment{DealID: "1", ItemID: "a_b"}))

	pending, ok, err := store.Pending(ctx, alice)
	rq.NoError(err)
	rq.True(ok)
	rq.Equal(entity.PendingCommitment{DealID: "1", ItemID: "a_b"}, pending)

	_, ok, err = store.Pending(ctx, bob)
	rq.NoError(err)
	rq.False(ok)

	rq.NoError(store.ClearPending(ctx, alice))

	_, ok, err = store.Pending(ctx, alice)
	rq.NoError(err)
	rq.False(ok)

	// Pending commitment is taken once
	rq.NoError(store.SetPending(ctx, alice, entity.PendingCommitment{DealID: "2", ItemID: "c"}))

	pending, ok, err = store.TakePending(ctx, alice)
	rq.NoError(err)
	rq.True(ok)
	rq.Equal(entity.PendingCommitment{DealID: "2", ItemID: "c"}, pending)

	_, ok, err = store.TakePending(ctx, alice)
	rq.NoError(err)
	rq.False(ok)

	_, ok, err = store.Pending(ctx, alice)
	rq.NoError(err)
	rq.False(ok)

	// Browse state keeps exact prices
	browse := entity.BrowseState{
		Deals: []entity.Deal{{
			DealID:          "1",
			Title:           "Deal",
			RetailPrice:     decimal.RequireFromString("10.10"),
			PayoutPrice:     decimal.RequireFromString("12.35"),
			PriceDifference: decimal.RequireFromString("2.25"),
		}},
		Index: 0,
	}
	rq.NoError(store.SetBrowseState(ctx, alice, browse))

	gotBrowse, ok, err := store.BrowseState(ctx, alice)
	rq.NoError(err)
	rq.True(ok)
	rq.Len(gotBrowse.Deals, 1)
	rq.True(browse.Deals[0].PriceDifference.Equal(gotBrowse.Deals[0].PriceDifference))

	// Setup draft
	rq.NoError(store.SetSetupDraft(ctx, bob, entity.SetupDraft{State: value.SetupAwaitingSecret, APIKey: "pub"}))

	draft, ok, err := store.SetupDraft(ctx, bob)
	rq.NoError(err)
	rq.True(ok)
	rq.Equal(value.SetupAwaitingSecret, draft.State)

	rq.NoError(store.ClearSetupDraft(ctx, bob))

	_, ok, err = store.SetupDraft(ctx, bob)
	rq.NoError(err)
	rq.False(ok)

	// Deleting credentials
	rq.NoError(store.DeleteCredentials(ctx, alice))

	_, ok, err = store.Credentials(ctx, alice)
	rq.NoError(err)
	rq.False(ok)
}

func TestStoreMemory(t *testing.T) {
	testStore(t, session.NewMemoryKV())
}

func TestStoreRedis(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR is not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })

	testStore(t, session.NewRedisKV(client, "bfmr-test:"+xid.New().String()+":"))
}

func TestStoreTTL(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store := session.NewStore(session.NewMemoryKV()).
		WithTTL(50*time.Millisecond, 50*time.Millisecond, 50*time.Millisecond)

	rq.NoError(store.SetPending(ctx, 1, entity.PendingCommitment{DealID: "1", ItemID: "2"}))
	rq.NoError(store.SetSetupDraft(ctx, 1, entity.SetupDraft{State: value.SetupAwaitingKey}))
	rq.NoError(store.SaveCredentials(ctx, 1, entity.Credentials{APIKey: "k", APISecret: "s"}))

	time.Sleep(100 * time.Millisecond)

	_, ok, err := store.Pending(ctx, 1)
	rq.NoError(err)
	rq.False(ok)

	_, ok, err = store.SetupDraft(ctx, 1)
	rq.NoError(err)
	rq.False(ok)

	_, ok, err = store.Credentials(ctx, 1)
	rq.NoError(err)
	rq.True(ok)
}

func TestTakePendingConcurrent(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store := session.NewStore(session.NewMemoryKV())
	rq.NoError(store.SetPending(ctx, 1, entity.PendingCommitment{DealID: "1", ItemID: "2"}))

	var (
		wg    sync.WaitGroup
		taken atomic.Int32
	)

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, ok, err := store.TakePending(ctx, 1)
			if err == nil && ok {
				taken.Add(1)
			}
		}()
	}

	wg.Wait()

	rq.Equal(int32(1), taken.Load())
}

type memoryCredentials struct {
	creds map[int64]entity.Credentials
}

func (m *memoryCredentials) Get(_ context.Context, userID int64) (entity.Credentials, bool, error) {
	c, ok := m.creds[userID]
	return c, ok, nil
}

func (m *memoryCredentials) Save(_ context.Context, userID int64, creds entity.Credentials) error {
	m.creds[userID] = creds
	return nil
}

func (m *memoryCredentials) Delete(_ context.Context, userID int64) error {
	delete(m.creds, userID)
	return nil
}

func TestStoreCredentialsRepository(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	kv := session.NewMemoryKV()
	repo := &memoryCredentials{creds: map[int64]entity.Credentials{}}
	store := session.NewStore(kv).WithCredentialsRepository(repo)

	rq.NoError(store.SaveCredentials(ctx, 7, entity.Credentials{APIKey: "k", APISecret: "s"}))
	rq.Contains(repo.creds, int64(7))

	_, ok, err := kv.Get(ctx, "user:7:credentials")
	rq.NoError(err)
	rq.False(ok)
}
