// Package ledger implements the chamaa use-case operations: creating admins,
// groups, members and contributions, and listing them.
//
// Each operation is all-or-nothing. It validates through the integrity
// engine and writes to the store while holding the ledger lock, so no other
// operation can observe or interleave with a half-applied change. Every
// operation writes at most one entity.
package ledger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmynk/chamaa/internal/clock"
	"github.com/mmynk/chamaa/internal/events"
	"github.com/mmynk/chamaa/internal/ids"
	"github.com/mmynk/chamaa/internal/integrity"
	"github.com/mmynk/chamaa/internal/storage"
)

// Ledger composes the domain model, the integrity rules and the entity
// store. It is safe for concurrent use.
type Ledger struct {
	// mu serializes writers across all four collections; readers share it.
	mu sync.RWMutex

	store     storage.Store
	rules     *integrity.Engine
	clock     clock.Clock
	newID     ids.Generator
	publisher events.Publisher
	observer  Observer
	logger    *slog.Logger

	requireMembership bool
}

// Observer is told the outcome of every write operation.
type Observer interface {
	ObserveOperation(operation string, err error)
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the clock used for createdAt timestamps.
func WithClock(c clock.Clock) Option {
	return func(l *Ledger) { l.clock = c }
}

// WithIDs sets the identifier generator.
func WithIDs(g ids.Generator) Option {
	return func(l *Ledger) { l.newID = g }
}

// WithPublisher sets where committed changes are announced.
func WithPublisher(p events.Publisher) Option {
	return func(l *Ledger) { l.publisher = p }
}

// WithObserver sets the operation observer, typically the metrics
// registry.
func WithObserver(o Observer) Option {
	return func(l *Ledger) { l.observer = o }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// WithMembershipRequired makes CreateContribution reject members that are
// not in the target group.
func WithMembershipRequired(required bool) Option {
	return func(l *Ledger) { l.requireMembership = required }
}

// New returns a Ledger over store.
func New(store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:     store,
		clock:     clock.NewMonotonic(),
		newID:     ids.New,
		publisher: events.Nop{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.rules = integrity.New(store, integrity.RequireMembership(l.requireMembership))
	return l
}

// publish announces a committed change. Failures are logged only; the
// change is already durable.
func (l *Ledger) publish(ctx context.Context, typ events.Type, entityID string, data any) {
	e := events.Event{
		Type:       typ,
		EntityID:   entityID,
		OccurredAt: clock.ToTime(l.clock.Now()),
		Data:       data,
	}
	if err := l.publisher.Publish(ctx, e); err != nil {
		l.logger.Warn("Failed to publish ledger event",
			"type", typ,
			"entity_id", entityID,
			"error", err,
		)
	}
}

func (l *Ledger) observe(operation string, err error) {
	if l.observer != nil {
		l.observer.ObserveOperation(operation, err)
	}
}
