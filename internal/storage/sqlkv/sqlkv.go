// Package sqlkv implements storage.Collection on top of a single SQL table
// shared by all collections. Values are stored as JSON documents.
//
// The table must have the columns (seq, collection, entity_key, payload)
// with a unique constraint on (collection, entity_key); seq orders Values.
package sqlkv

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mmynk/chamaa/internal/storage"
)

// Dialect holds the four statements a backend needs. Each statement takes
// the collection name as its first argument.
type Dialect struct {
	Get    string // (collection, key) -> payload
	Upsert string // (collection, key, payload)
	Delete string // (collection, key)
	Values string // (collection) -> payload ordered by seq
}

// SQLite statements.
var SQLite = Dialect{
	Get: "SELECT payload FROM entities WHERE collection = ? AND entity_key = ?",
	Upsert: `INSERT INTO entities (collection, entity_key, payload) VALUES (?, ?, ?)
		ON CONFLICT (collection, entity_key) DO UPDATE SET payload = excluded.payload`,
	Delete: "DELETE FROM entities WHERE collection = ? AND entity_key = ?",
	Values: "SELECT payload FROM entities WHERE collection = ? ORDER BY seq",
}

// Postgres statements.
var Postgres = Dialect{
	Get: "SELECT payload FROM entities WHERE collection = $1 AND entity_key = $2",
	Upsert: `INSERT INTO entities (collection, entity_key, payload) VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, entity_key) DO UPDATE SET payload = EXCLUDED.payload`,
	Delete: "DELETE FROM entities WHERE collection = $1 AND entity_key = $2",
	Values: "SELECT payload FROM entities WHERE collection = $1 ORDER BY seq",
}

// Collection is a storage.Collection backed by one namespace of the
// entities table.
type Collection[V any] struct {
	db      *sql.DB
	name    string
	dialect Dialect
}

// NewCollection returns a collection that reads and writes rows tagged
// with name.
func NewCollection[V any](db *sql.DB, dialect Dialect, name string) *Collection[V] {
	return &Collection[V]{db: db, name: name, dialect: dialect}
}

var _ storage.Collection[struct{}] = (*Collection[struct{}])(nil)

// Get implements storage.Collection.
func (c *Collection[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	var payload []byte
	err := c.db.QueryRowContext(ctx, c.dialect.Get, c.name, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("failed to get %s %q: %w", c.name, key, err)
	}

	var v V
	if err := json.Unmarshal(payload, &v); err != nil {
		return zero, false, fmt.Errorf("failed to decode %s %q: %w", c.name, key, err)
	}
	return v, true, nil
}

// Insert implements storage.Collection.
func (c *Collection[V]) Insert(ctx context.Context, key string, value V) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s %q: %w", c.name, key, err)
	}
	if _, err := c.db.ExecContext(ctx, c.dialect.Upsert, c.name, key, string(payload)); err != nil {
		return fmt.Errorf("failed to insert %s %q: %w", c.name, key, err)
	}
	return nil
}

// Delete implements storage.Collection.
func (c *Collection[V]) Delete(ctx context.Context, key string) error {
	if _, err := c.db.ExecContext(ctx, c.dialect.Delete, c.name, key); err != nil {
		return fmt.Errorf("failed to delete %s %q: %w", c.name, key, err)
	}
	return nil
}

// Values implements storage.Collection.
func (c *Collection[V]) Values(ctx context.Context) ([]V, error) {
	rows, err := c.db.QueryContext(ctx, c.dialect.Values, c.name)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.name, err)
	}
	defer rows.Close()

	values := []V{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", c.name, err)
		}
		var v V
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", c.name, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", c.name, err)
	}
	return values, nil
}
