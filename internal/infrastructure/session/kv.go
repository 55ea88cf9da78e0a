package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// KV — минимальное хранилище ключ-значение с TTL. ttl <= 0 означает
// бессрочное хранение.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Take читает и удаляет ключ за одну операцию: из двух конкурентных
	// вызовов значение получит только один.
	Take(ctx context.Context, key string) ([]byte, bool, error)
}

const memoryCleanupInterval = 10 * time.Minute

// MemoryKV держит состояние в памяти процесса: теряется при рестарте.
type MemoryKV struct {
	cache  *cache.Cache
	takeMu sync.Mutex
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		cache: cache.New(cache.NoExpiration, memoryCleanupInterval),
	}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.cache.Get(key)
	if !ok {
		return nil, false, nil
	}

	b, ok := v.([]byte)
	if !ok {
		return nil, false, fmt.Errorf("unexpected value type %T for key %q", v, key)
	}

	return b, true, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}

	m.cache.Set(key, append([]byte(nil), value...), ttl)

	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

func (m *MemoryKV) Take(ctx context.Context, key string) ([]byte, bool, error) {
	m.takeMu.Lock()
	defer m.takeMu.Unlock()

	b, ok, err := m.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}

	m.cache.Delete(key)

	return b, true, nil
}

// RedisKV — общее хранилище для нескольких реплик бота.
type RedisKV struct {
	client *redis.Client
	prefix string
}

func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	return &RedisKV{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("redis.Get: %w", err)
	}

	return b, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}

	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis.Set: %w", err)
	}

	return nil
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis.Del: %w", err)
	}

	return nil
}

func (r *RedisKV) Take(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.GetDel(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("redis.GetDel: %w", err)
	}

	return b, true, nil
}
