// Package events carries notifications about committed ledger changes.
// Publishing happens after a write succeeds; a failed publish never undoes
// the write.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"
)

// Type names a kind of ledger change.
type Type string

const (
	AdminCreated        Type = "admin.created"
	GroupCreated        Type = "group.created"
	GroupMemberAdded    Type = "group.member_added"
	MemberCreated       Type = "member.created"
	ContributionCreated Type = "contribution.created"
)

// Event describes one committed change.
type Event struct {
	Type       Type      `json:"type"`
	EntityID   string    `json:"entityId"`
	OccurredAt time.Time `json:"occurredAt"`

	// Data is the entity as stored after the change.
	Data any `json:"data"`
}

// ToJSON converts the event to JSON bytes.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events to interested parties.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory, in order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Publish implements Publisher.
func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the type of each recorded event.
func (r *Recorder) Types() []Type {
	events := r.Events()
	types := make([]Type, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

// Multi publishes each event to every publisher in order. All publishers
// are tried; their errors are joined.
type Multi []Publisher

// Publish implements Publisher.
func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
