package repository

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

type memoryCollection struct {
	order []string
	docs  map[string]map[string]any
}

type memoryDocumentStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

// NewMemoryDocumentStore keeps documents in process memory. Lists come back
// in insertion order.
func NewMemoryDocumentStore() domain.DocumentStore {
	return &memoryDocumentStore{collections: make(map[string]*memoryCollection)}
}

func (s *memoryDocumentStore) collection(name string) *memoryCollection {
	c, ok := s.collections[name]
	if !ok {
		c = &memoryCollection{docs: make(map[string]map[string]any)}
		s.collections[name] = c
	}
	return c
}

func (s *memoryDocumentStore) List(ctx context.Context, collection string) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := []domain.Document{}
	c, ok := s.collections[collection]
	if !ok {
		return docs, nil
	}
	for _, id := range c.order {
		docs = append(docs, domain.Document{ID: id, Fields: copyFields(c.docs[id])})
	}
	return docs, nil
}

func (s *memoryDocumentStore) Get(ctx context.Context, collection, id string) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collection]
	if !ok {
		return nil, fmt.Errorf("document %s/%s: %w", collection, id, domain.ErrNotFound)
	}
	fields, ok := c.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %s/%s: %w", collection, id, domain.ErrNotFound)
	}
	return &domain.Document{ID: id, Fields: copyFields(fields)}, nil
}

func (s *memoryDocumentStore) Create(ctx context.Context, collection string, fields map[string]any) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	c := s.collection(collection)
	c.order = append(c.order, id)
	c.docs[id] = copyFields(fields)
	return &domain.Document{ID: id, Fields: copyFields(fields)}, nil
}

func (s *memoryDocumentStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(collection)
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = copyFields(fields)
	return nil
}

func (s *memoryDocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return fmt.Errorf("document %s/%s: %w", collection, id, domain.ErrNotFound)
	}
	current, ok := c.docs[id]
	if !ok {
		return fmt.Errorf("document %s/%s: %w", collection, id, domain.ErrNotFound)
	}
	for k, v := range copyFields(fields) {
		current[k] = v
	}
	return nil
}

func (s *memoryDocumentStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return fmt.Errorf("document %s/%s: %w", collection, id, domain.ErrNotFound)
	}
	if _, ok := c.docs[id]; !ok {
		return fmt.Errorf("document %s/%s: %w", collection, id, domain.ErrNotFound)
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// copyFields deep-copies nested maps and slices so callers never share
// state with the store.
func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyFields(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = copyValue(item)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
