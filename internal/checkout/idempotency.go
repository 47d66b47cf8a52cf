package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/harshadelights/commerce-core/internal/models"
	"github.com/redis/go-redis/v9"
)

// ErrNoResult means no checkout has been recorded under the key.
var ErrNoResult = errors.New("no recorded checkout result")

// ResultStore records terminal checkout results by idempotency key so a
// duplicate client retry replays the recorded outcome instead of charging
// the customer twice.
type ResultStore interface {
	Get(ctx context.Context, key string) (*models.CheckoutResult, error)
	Put(ctx context.Context, key string, result *models.CheckoutResult) error
}

// MemoryResultStore is the single-node store used in tests and when Redis
// is not configured.
type MemoryResultStore struct {
	mu      sync.Mutex
	results map[string]models.CheckoutResult
}

func NewMemoryResultStore() *MemoryResultStore {
	return &MemoryResultStore{results: make(map[string]models.CheckoutResult)}
}

func (m *MemoryResultStore) Get(_ context.Context, key string) (*models.CheckoutResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result, ok := m.results[key]
	if !ok {
		return nil, ErrNoResult
	}
	return &result, nil
}

func (m *MemoryResultStore) Put(_ context.Context, key string, result *models.CheckoutResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[key] = *result
	return nil
}

// RedisResultStore records results under idem:checkout:{key} with a 24h
// TTL, long enough to absorb any realistic client retry window.
type RedisResultStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisResultStore(client *redis.Client) *RedisResultStore {
	return &RedisResultStore{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (r *RedisResultStore) Get(ctx context.Context, key string) (*models.CheckoutResult, error) {
	data, err := r.client.Get(ctx, idemKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoResult
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var result models.CheckoutResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshal checkout result failed: %w", err)
	}

	return &result, nil
}

func (r *RedisResultStore) Put(ctx context.Context, key string, result *models.CheckoutResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal checkout result failed: %w", err)
	}

	if err := r.client.Set(ctx, idemKey(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func idemKey(key string) string {
	return fmt.Sprintf("idem:checkout:%s", key)
}
