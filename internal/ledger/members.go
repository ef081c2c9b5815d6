package ledger

import (
	"context"
	"fmt"

	"github.com/mmynk/chamaa/internal/clock"
	"github.com/mmynk/chamaa/internal/events"
	"github.com/mmynk/chamaa/internal/models"
)

// CreateMember registers a member. The email must not belong to any
// existing member (ErrConflict); name and email are required
// (ErrValidation).
func (l *Ledger) CreateMember(ctx context.Context, name, email string) (models.Member, error) {
	member, err := l.createMember(ctx, name, email)
	l.observe("create_member", err)
	if err != nil {
		return models.Member{}, err
	}
	l.publish(ctx, events.MemberCreated, member.ID, member)
	return member, nil
}

func (l *Ledger) createMember(ctx context.Context, name, email string) (models.Member, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	member, err := models.NewMember(l.newID(), name, email, clock.ToTime(l.clock.Now()))
	if err != nil {
		return models.Member{}, err
	}
	if err := l.rules.ValidateMemberCreation(ctx, member.Email); err != nil {
		return models.Member{}, err
	}
	if err := l.store.Members().Insert(ctx, member.ID, member); err != nil {
		return models.Member{}, models.StoreFailure("save member", err)
	}
	return member, nil
}

// GetMember returns one member, or ErrNotFound.
func (l *Ledger) GetMember(ctx context.Context, memberID string) (models.Member, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	member, ok, err := l.store.Members().Get(ctx, memberID)
	if err != nil {
		return models.Member{}, models.StoreFailure("load member", err)
	}
	if !ok {
		return models.Member{}, fmt.Errorf("%w: member %q", models.ErrNotFound, memberID)
	}
	return member, nil
}

// ListMembers returns every member in store order.
func (l *Ledger) ListMembers(ctx context.Context) ([]models.Member, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	members, err := l.store.Members().Values(ctx)
	if err != nil {
		return nil, models.StoreFailure("list members", err)
	}
	return members, nil
}
