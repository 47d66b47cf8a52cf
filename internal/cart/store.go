package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/harshadelights/commerce-core/internal/cache"
	"github.com/harshadelights/commerce-core/internal/models"
	log "github.com/sirupsen/logrus"
)

// Store holds cart aggregates keyed by session id. Every session gets its
// own mutex so read-modify-write cycles on one cart never race; the outer
// lock only guards map membership.
//
// An optional cache.CartCache receives a snapshot after every successful
// mutation and is consulted on a memory miss, so carts survive a process
// restart when Redis is wired. Cache failures are logged, never surfaced.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	cache   cache.CartCache
}

type entry struct {
	mu   sync.Mutex
	cart models.Cart
}

// NewStore creates a Store. A nil cache disables snapshot persistence.
func NewStore(c cache.CartCache) *Store {
	return &Store{
		entries: make(map[string]*entry),
		cache:   c,
	}
}

// Get returns a copy of the session's cart. No side effects on the cart.
func (s *Store) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	e, err := s.lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return copyCart(&e.cart), nil
}

// Create replaces any existing cart for the session. No merge.
func (s *Store) Create(ctx context.Context, sessionID, customerID string) (*models.Cart, error) {
	now := time.Now()
	fresh := models.Cart{
		SessionID:  sessionID,
		CustomerID: customerID,
		Items:      []models.CartItem{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	s.mu.Lock()
	e, ok := s.entries[sessionID]
	if !ok {
		e = &entry{}
		s.entries[sessionID] = e
	}
	s.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.cart = fresh
	s.saveSnapshot(&e.cart)
	return copyCart(&e.cart), nil
}

// AddItem appends a line, creating the cart lazily when absent. Adding a
// product that is already in the cart accumulates quantity and overwrites
// the stored unit price with the supplied one.
func (s *Store) AddItem(ctx context.Context, sessionID, productID string, quantity int, unitPrice float64) (*models.Cart, error) {
	e := s.ensure(ctx, sessionID)

	e.mu.Lock()
	defer e.mu.Unlock()

	found := false
	for i := range e.cart.Items {
		if e.cart.Items[i].ProductID == productID {
			e.cart.Items[i].Quantity += quantity
			e.cart.Items[i].UnitPrice = unitPrice
			e.cart.Items[i].LineTotal = float64(e.cart.Items[i].Quantity) * unitPrice
			found = true
			break
		}
	}
	if !found {
		e.cart.Items = append(e.cart.Items, models.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: unitPrice,
			LineTotal: float64(quantity) * unitPrice,
		})
	}

	s.recompute(&e.cart)
	s.saveSnapshot(&e.cart)
	return copyCart(&e.cart), nil
}

// UpdateItem sets a line's quantity. Quantity zero or below deletes the
// line. Fails with ErrCartNotFound / ErrItemNotFound when either is absent.
func (s *Store) UpdateItem(ctx context.Context, sessionID, productID string, quantity int) (*models.Cart, error) {
	e, err := s.lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i := range e.cart.Items {
		if e.cart.Items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	if quantity <= 0 {
		e.cart.Items = append(e.cart.Items[:idx], e.cart.Items[idx+1:]...)
	} else {
		e.cart.Items[idx].Quantity = quantity
		e.cart.Items[idx].LineTotal = float64(quantity) * e.cart.Items[idx].UnitPrice
	}

	s.recompute(&e.cart)
	s.saveSnapshot(&e.cart)
	return copyCart(&e.cart), nil
}

// RemoveItem drops a line. Removing a product that is not in the cart is a
// silent no-op; a missing cart is ErrCartNotFound.
func (s *Store) RemoveItem(ctx context.Context, sessionID, productID string) (*models.Cart, error) {
	e, err := s.lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.cart.Items {
		if e.cart.Items[i].ProductID == productID {
			e.cart.Items = append(e.cart.Items[:i], e.cart.Items[i+1:]...)
			s.recompute(&e.cart)
			s.saveSnapshot(&e.cart)
			break
		}
	}

	return copyCart(&e.cart), nil
}

// Clear empties the cart's items and zeroes the totals.
func (s *Store) Clear(ctx context.Context, sessionID string) (*models.Cart, error) {
	e, err := s.lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.cart.Items = []models.CartItem{}
	s.recompute(&e.cart)
	s.saveSnapshot(&e.cart)
	return copyCart(&e.cart), nil
}

// ensure returns the session's entry, creating an empty cart when absent.
func (s *Store) ensure(ctx context.Context, sessionID string) *entry {
	if e, err := s.lookup(ctx, sessionID); err == nil {
		return e
	}

	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[sessionID]; ok {
		return e
	}
	e := &entry{cart: models.Cart{
		SessionID: sessionID,
		Items:     []models.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}}
	s.entries[sessionID] = e
	return e
}

// lookup finds the session's entry, falling back to a cache load on a
// memory miss so persisted carts reappear after a restart.
func (s *Store) lookup(ctx context.Context, sessionID string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if ok {
		return e, nil
	}

	if s.cache == nil {
		return nil, ErrCartNotFound
	}

	cached, err := s.cache.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.WithField("session_id", sessionID).Warn("cart cache get error: ", err)
		}
		return nil, ErrCartNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[sessionID]; ok {
		return e, nil
	}
	e = &entry{cart: *cached}
	s.entries[sessionID] = e
	return e, nil
}

// recompute rebuilds the derived totals. Called with the entry lock held,
// after every mutation, so no inconsistent totals are ever observable.
func (s *Store) recompute(c *models.Cart) {
	subtotal := 0.0
	for _, item := range c.Items {
		subtotal += item.LineTotal
	}
	c.Subtotal = subtotal
	c.Tax = subtotal * models.GSTRate
	c.Total = c.Subtotal + c.Tax
	c.UpdatedAt = time.Now()
}

// saveSnapshot writes the cart through to the cache. Called with the entry
// lock held; uses its own short deadline so a slow Redis cannot stall a
// cart mutation for long.
func (s *Store) saveSnapshot(c *models.Cart) {
	if s.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Set(ctx, c.SessionID, copyCart(c)); err != nil {
		log.WithField("session_id", c.SessionID).Warn("cart snapshot save error: ", err)
	}
}

func copyCart(c *models.Cart) *models.Cart {
	out := *c
	out.Items = make([]models.CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return &out
}
