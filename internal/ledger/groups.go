package ledger

import (
	"context"
	"fmt"

	"github.com/mmynk/chamaa/internal/clock"
	"github.com/mmynk/chamaa/internal/events"
	"github.com/mmynk/chamaa/internal/models"
)

// CreateGroup creates a group owned by adminID with no members.
// Fails with ErrValidation for a blank name or adminID and ErrNotFound when
// the admin does not exist; the group collection is untouched on failure.
func (l *Ledger) CreateGroup(ctx context.Context, name, adminID string) (models.Group, error) {
	group, err := l.createGroup(ctx, name, adminID)
	l.observe("create_group", err)
	if err != nil {
		return models.Group{}, err
	}
	l.publish(ctx, events.GroupCreated, group.ID, group)
	return group, nil
}

func (l *Ledger) createGroup(ctx context.Context, name, adminID string) (models.Group, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	group, err := models.NewGroup(l.newID(), name, adminID, clock.ToTime(l.clock.Now()))
	if err != nil {
		return models.Group{}, err
	}
	if err := l.rules.ValidateGroupCreation(ctx, group.AdminID); err != nil {
		return models.Group{}, err
	}
	if err := l.store.Groups().Insert(ctx, group.ID, group); err != nil {
		return models.Group{}, models.StoreFailure("save group", err)
	}
	return group, nil
}

// AddMember appends memberID to the group's member list and returns the
// updated group. Adding a member twice fails with ErrConflict and leaves
// the list unchanged.
func (l *Ledger) AddMember(ctx context.Context, groupID, memberID string) (models.Group, error) {
	group, err := l.addMember(ctx, groupID, memberID)
	l.observe("add_member", err)
	if err != nil {
		return models.Group{}, err
	}
	l.publish(ctx, events.GroupMemberAdded, group.ID, group)
	return group, nil
}

func (l *Ledger) addMember(ctx context.Context, groupID, memberID string) (models.Group, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	group, err := l.rules.ValidateMembershipAdd(ctx, groupID, memberID)
	if err != nil {
		return models.Group{}, err
	}
	updated := group.WithMember(memberID)
	if err := l.store.Groups().Insert(ctx, updated.ID, updated); err != nil {
		return models.Group{}, models.StoreFailure("save group", err)
	}
	return updated, nil
}

// GetGroup returns one group, or ErrNotFound.
func (l *Ledger) GetGroup(ctx context.Context, groupID string) (models.Group, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	group, ok, err := l.store.Groups().Get(ctx, groupID)
	if err != nil {
		return models.Group{}, models.StoreFailure("load group", err)
	}
	if !ok {
		return models.Group{}, fmt.Errorf("%w: group %q", models.ErrNotFound, groupID)
	}
	return group, nil
}

// ListGroups returns every group in store order.
func (l *Ledger) ListGroups(ctx context.Context) ([]models.Group, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	groups, err := l.store.Groups().Values(ctx)
	if err != nil {
		return nil, models.StoreFailure("list groups", err)
	}
	return groups, nil
}
