// Package session keeps shopper carts between requests.
package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"storefront/internal/domain"
)

type memoryEntry struct {
	cart      domain.Cart
	expiresAt time.Time
}

type memoryCartStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCartStore() domain.CartStore {
	return &memoryCartStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *memoryCartStore) Load(ctx context.Context, sessionID string) (domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(sessionID), nil
}

// Save stores c for ttl; a ttl of zero never expires.
func (s *memoryCartStore) Save(ctx context.Context, sessionID string, c domain.Cart, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(sessionID, c, ttl)
	return nil
}

func (s *memoryCartStore) Update(ctx context.Context, sessionID string, ttl time.Duration, fn func(domain.Cart) (domain.Cart, error)) (domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.current(sessionID))
	if err != nil {
		return nil, err
	}
	s.put(sessionID, next, ttl)
	return slices.Clone(next), nil
}

// current must be called with mu held.
func (s *memoryCartStore) current(sessionID string) domain.Cart {
	entry, ok := s.entries[sessionID]
	if !ok {
		return domain.Cart{}
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		delete(s.entries, sessionID)
		return domain.Cart{}
	}
	return slices.Clone(entry.cart)
}

func (s *memoryCartStore) put(sessionID string, c domain.Cart, ttl time.Duration) {
	entry := memoryEntry{cart: slices.Clone(c)}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.entries[sessionID] = entry
}

func (s *memoryCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}
