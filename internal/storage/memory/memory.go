// Package memory provides an in-process implementation of storage.Store.
// Data lives only as long as the process.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mmynk/chamaa/internal/models"
	"github.com/mmynk/chamaa/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Collection is an insertion-ordered map guarded by a RWMutex.
type Collection[V any] struct {
	mu    sync.RWMutex
	keys  []string
	items map[string]V

	// clone copies values on the way in and out, so callers never hold
	// memory shared with the stored entry.
	clone func(V) V
}

// NewCollection returns an empty collection for values with no reference
// fields.
func NewCollection[V any]() *Collection[V] {
	return NewClonedCollection(func(v V) V { return v })
}

// NewClonedCollection returns an empty collection that passes every value
// through clone when storing and returning it.
func NewClonedCollection[V any](clone func(V) V) *Collection[V] {
	return &Collection[V]{items: make(map[string]V), clone: clone}
}

// Get implements storage.Collection.
func (c *Collection[V]) Get(_ context.Context, key string) (V, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[key]
	if !ok {
		return v, false, nil
	}
	return c.clone(v), true, nil
}

// Insert implements storage.Collection.
func (c *Collection[V]) Insert(_ context.Context, key string, value V) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.items[key] = c.clone(value)
	return nil
}

// Delete implements storage.Collection.
func (c *Collection[V]) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[key]; !exists {
		return nil
	}
	delete(c.items, key)
	if i := slices.Index(c.keys, key); i >= 0 {
		c.keys = slices.Delete(c.keys, i, i+1)
	}
	return nil
}

// Values implements storage.Collection.
func (c *Collection[V]) Values(_ context.Context) ([]V, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]V, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.clone(c.items[k]))
	}
	return out, nil
}

// Store holds the four ledger collections in memory.
type Store struct {
	admins        *Collection[models.Admin]
	groups        *Collection[models.Group]
	members       *Collection[models.Member]
	contributions *Collection[models.Contribution]
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		admins:        NewCollection[models.Admin](),
		groups:        NewClonedCollection(models.Group.Clone),
		members:       NewCollection[models.Member](),
		contributions: NewCollection[models.Contribution](),
	}
}

func (s *Store) Admins() storage.Collection[models.Admin]   { return s.admins }
func (s *Store) Groups() storage.Collection[models.Group]   { return s.groups }
func (s *Store) Members() storage.Collection[models.Member] { return s.members }
func (s *Store) Contributions() storage.Collection[models.Contribution] {
	return s.contributions
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
