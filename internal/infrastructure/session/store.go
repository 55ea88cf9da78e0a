package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"

	"bfmr_bot/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	DefaultSetupDraftTTL = 10 * time.Minute
	DefaultPendingTTL    = 30 * time.Minute
	DefaultBrowseTTL     = time.Hour
)

// CredentialsRepository — постоянное хранилище ключей, если их не держат в KV.
type CredentialsRepository interface {
	Get(ctx context.Context, userID int64) (entity.Credentials, bool, error)
	Save(ctx context.Context, userID int64, creds entity.Credentials) error
	Delete(ctx context.Context, userID int64) error
}

// Store — состояние пользователей бота. Каждый метод трогает только ключи
// одного пользователя, поэтому апдейты разных пользователей не блокируют
// друг друга.
type Store struct {
	kv          KV
	credentials CredentialsRepository

	setupDraftTTL time.Duration
	pendingTTL    time.Duration
	browseTTL     time.Duration
}

func NewStore(kv KV) *Store {
	return &Store{
		kv:            kv,
		credentials:   kvCredentials{kv: kv},
		setupDraftTTL: DefaultSetupDraftTTL,
		pendingTTL:    DefaultPendingTTL,
		browseTTL:     DefaultBrowseTTL,
	}
}

// WithCredentialsRepository переносит ключи из KV в отдельное хранилище.
func (s *Store) WithCredentialsRepository(repo CredentialsRepository) *Store {
	if repo != nil {
		s.credentials = repo
	}

	return s
}

func (s *Store) WithTTL(setupDraft, pending, browse time.Duration) *Store {
	if setupDraft > 0 {
		s.setupDraftTTL = setupDraft
	}

	if pending > 0 {
		s.pendingTTL = pending
	}

	if browse > 0 {
		s.browseTTL = browse
	}

	return s
}

func (s *Store) Credentials(ctx context.Context, userID int64) (entity.Credentials, bool, error) {
	creds, ok, err := s.credentials.Get(ctx, userID)
	if err != nil {
		return entity.Credentials{}, false, fmt.Errorf("credentials.Get: %w", err)
	}

	return creds, ok, nil
}

func (s *Store) SaveCredentials(ctx context.Context, userID int64, creds entity.Credentials) error {
	if err := s.credentials.Save(ctx, userID, creds); err != nil {
		return fmt.Errorf("credentials.Save: %w", err)
	}

	return nil
}

func (s *Store) DeleteCredentials(ctx context.Context, userID int64) error {
	if err := s.credentials.Delete(ctx, userID); err != nil {
		return fmt.Errorf("credentials.Delete: %w", err)
	}

	return nil
}

func (s *Store) Pending(ctx context.Context, userID int64) (entity.PendingCommitment, bool, error) {
	var pending entity.PendingCommitment

	ok, err := s.load(ctx, key(userID, "pending"), &pending)

	return pending, ok, err
}

func (s *Store) SetPending(ctx context.Context, userID int64, pending entity.PendingCommitment) error {
	return s.save(ctx, key(userID, "pending"), pending, s.pendingTTL)
}

func (s *Store) ClearPending(ctx context.Context, userID int64) error {
	return s.delete(ctx, key(userID, "pending"))
}

// TakePending забирает выбранную позицию: повторный вызов вернёт false.
func (s *Store) TakePending(ctx context.Context, userID int64) (entity.PendingCommitment, bool, error) {
	var pending entity.PendingCommitment

	k := key(userID, "pending")

	b, ok, err := s.kv.Take(ctx, k)
	if err != nil {
		return pending, false, fmt.Errorf("kv.Take(%s): %w", k, err)
	}

	if !ok {
		return pending, false, nil
	}

	if err = json.Unmarshal(b, &pending); err != nil {
		return pending, false, fmt.Errorf("json.Unmarshal(%s): %w", k, err)
	}

	return pending, true, nil
}

func (s *Store) BrowseState(ctx context.Context, userID int64) (entity.BrowseState, bool, error) {
	var state entity.BrowseState

	ok, err := s.load(ctx, key(userID, "browse"), &state)

	return state, ok, err
}

func (s *Store) SetBrowseState(ctx context.Context, userID int64, state entity.BrowseState) error {
	return s.save(ctx, key(userID, "browse"), state, s.browseTTL)
}

func (s *Store) SetupDraft(ctx context.Context, userID int64) (entity.SetupDraft, bool, error) {
	var draft entity.SetupDraft

	ok, err := s.load(ctx, key(userID, "setup"), &draft)

	return draft, ok, err
}

func (s *Store) SetSetupDraft(ctx context.Context, userID int64, draft entity.SetupDraft) error {
	return s.save(ctx, key(userID, "setup"), draft, s.setupDraftTTL)
}

func (s *Store) ClearSetupDraft(ctx context.Context, userID int64) error {
	return s.delete(ctx, key(userID, "setup"))
}

func (s *Store) load(ctx context.Context, k string, dest any) (bool, error) {
	return loadJSON(ctx, s.kv, k, dest)
}

func (s *Store) save(ctx context.Context, k string, value any, ttl time.Duration) error {
	return saveJSON(ctx, s.kv, k, value, ttl)
}

func (s *Store) delete(ctx context.Context, k string) error {
	if err := s.kv.Delete(ctx, k); err != nil {
		return fmt.Errorf("kv.Delete(%s): %w", k, err)
	}

	return nil
}

func loadJSON(ctx context.Context, kv KV, k string, dest any) (bool, error) {
	b, ok, err := kv.Get(ctx, k)
	if err != nil {
		return false, fmt.Errorf("kv.Get(%s): %w", k, err)
	}

	if !ok {
		return false, nil
	}

	if err = json.Unmarshal(b, dest); err != nil {
		return false, fmt.Errorf("json.Unmarshal(%s): %w", k, err)
	}

	return true, nil
}

func saveJSON(ctx context.Context, kv KV, k string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("json.Marshal(%s): %w", k, err)
	}

	if err = kv.Set(ctx, k, b, ttl); err != nil {
		return fmt.Errorf("kv.Set(%s): %w", k, err)
	}

	return nil
}

func key(userID int64, kind string) string {
	return "user:" + strconv.FormatInt(userID, 10) + ":" + kind
}

// kvCredentials хранит ключи в том же KV без TTL.
type kvCredentials struct {
	kv KV
}

func (c kvCredentials) Get(ctx context.Context, userID int64) (entity.Credentials, bool, error) {
	var creds entity.Credentials

	ok, err := loadJSON(ctx, c.kv, key(userID, "credentials"), &creds)

	return creds, ok, err
}

func (c kvCredentials) Save(ctx context.Context, userID int64, creds entity.Credentials) error {
	return saveJSON(ctx, c.kv, key(userID, "credentials"), creds, 0)
}

func (c kvCredentials) Delete(ctx context.Context, userID int64) error {
	if err := c.kv.Delete(ctx, key(userID, "credentials")); err != nil {
		return fmt.Errorf("kv.Delete: %w", err)
	}

	return nil
}
