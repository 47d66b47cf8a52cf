package cache

import (
	"context"
	"errors"

	"github.com/harshadelights/commerce-core/internal/models"
)

// CartCache is the durability hook for cart snapshots. The in-memory store
// stays authoritative; the cache carries carts across process restarts.
type CartCache interface {
	Get(ctx context.Context, sessionID string) (*models.Cart, error)
	Set(ctx context.Context, sessionID string, cart *models.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrCacheMiss = errors.New("cache miss")
