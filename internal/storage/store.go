// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/chamaa/internal/models"
)

// Collection is an ordered key-value map holding one entity type.
// Implementations must be safe for concurrent use; the ledger adds the
// cross-collection serialization on top.
type Collection[V any] interface {
	// Get returns the value stored under key. The boolean is false when the
	// key is absent, in which case the returned value is the zero value.
	Get(ctx context.Context, key string) (V, bool, error)

	// Insert stores value under key, overwriting any existing value.
	// Overwriting keeps the key's original position in Values.
	Insert(ctx context.Context, key string, value V) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Values returns every stored value in insertion order.
	Values(ctx context.Context) ([]V, error)
}

// Store bundles the four ledger collections.
// This abstraction allows swapping storage backends (memory, SQLite,
// PostgreSQL, MongoDB) without changing the ledger.
type Store interface {
	Admins() Collection[models.Admin]
	Groups() Collection[models.Group]
	Members() Collection[models.Member]
	Contributions() Collection[models.Contribution]

	// Close releases any resources held by the store.
	Close() error
}

// Collection names, used as the namespace column by the SQL backends and
// as collection names by the MongoDB backend.
const (
	AdminsCollection        = "admins"
	GroupsCollection        = "groups"
	MembersCollection       = "members"
	ContributionsCollection = "contributions"
)
