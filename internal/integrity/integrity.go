// Package integrity enforces the cross-entity rules that keep the admin,
// group, member and contribution collections consistent.
//
// Every check is read-only. The ledger runs a check and its write inside
// one critical section, so nothing can change between the two.
package integrity

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmynk/chamaa/internal/models"
	"github.com/mmynk/chamaa/internal/storage"
)

// Engine validates use-case inputs against the current store contents.
type Engine struct {
	store storage.Store

	// requireMembership makes contributions from non-members a Conflict.
	requireMembership bool
}

// Option configures an Engine.
type Option func(*Engine)

// RequireMembership controls whether a contribution's member must already
// belong to the group. Off by default.
func RequireMembership(required bool) Option {
	return func(e *Engine) { e.requireMembership = required }
}

// New returns an Engine reading from store.
func New(store storage.Store, opts ...Option) *Engine {
	e := &Engine{store: store}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ValidateGroupCreation checks that the owning admin exists.
func (e *Engine) ValidateGroupCreation(ctx context.Context, adminID string) error {
	_, ok, err := e.store.Admins().Get(ctx, adminID)
	if err != nil {
		return models.StoreFailure("load admin", err)
	}
	if !ok {
		return fmt.Errorf("%w: admin %q", models.ErrNotFound, adminID)
	}
	return nil
}

// ValidateMembershipAdd checks that both the group and the member exist and
// that the member is not already in the group. It returns the group as
// currently stored so the caller can write back the updated copy.
func (e *Engine) ValidateMembershipAdd(ctx context.Context, groupID, memberID string) (models.Group, error) {
	group, err := e.loadGroup(ctx, groupID)
	if err != nil {
		return models.Group{}, err
	}
	if err := e.memberExists(ctx, memberID); err != nil {
		return models.Group{}, err
	}
	if group.HasMember(memberID) {
		return models.Group{}, fmt.Errorf("%w: member %q already in group %q", models.ErrConflict, memberID, groupID)
	}
	return group, nil
}

// ValidateMemberCreation checks that no existing member uses email.
// Comparison is exact and case-sensitive.
func (e *Engine) ValidateMemberCreation(ctx context.Context, email string) error {
	members, err := e.store.Members().Values(ctx)
	if err != nil {
		return models.StoreFailure("list members", err)
	}
	for _, m := range members {
		if m.Email == email {
			return fmt.Errorf("%w: email %q already registered", models.ErrConflict, email)
		}
	}
	return nil
}

// ValidateContributionCreation checks field presence, then that the group
// and member exist. With RequireMembership, the member must also be in the
// group. IDs are trimmed; a blank ID counts as absent.
func (e *Engine) ValidateContributionCreation(ctx context.Context, groupID, memberID string, amount float64) error {
	groupID = strings.TrimSpace(groupID)
	memberID = strings.TrimSpace(memberID)
	switch {
	case groupID == "":
		return fmt.Errorf("%w: groupId is required", models.ErrValidation)
	case memberID == "":
		return fmt.Errorf("%w: memberId is required", models.ErrValidation)
	}
	if err := models.ValidateAmount(amount); err != nil {
		return err
	}

	group, err := e.loadGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if err := e.memberExists(ctx, memberID); err != nil {
		return err
	}
	if e.requireMembership && !group.HasMember(memberID) {
		return fmt.Errorf("%w: member %q is not in group %q", models.ErrConflict, memberID, groupID)
	}
	return nil
}

// ValidateGroupExists checks that groupID refers to a stored group.
func (e *Engine) ValidateGroupExists(ctx context.Context, groupID string) error {
	_, err := e.loadGroup(ctx, groupID)
	return err
}

// ValidateAdminID checks that id is not already taken by another admin.
func (e *Engine) ValidateAdminID(ctx context.Context, id string) error {
	_, ok, err := e.store.Admins().Get(ctx, id)
	if err != nil {
		return models.StoreFailure("load admin", err)
	}
	if ok {
		return fmt.Errorf("%w: admin %q already exists", models.ErrConflict, id)
	}
	return nil
}

func (e *Engine) loadGroup(ctx context.Context, groupID string) (models.Group, error) {
	group, ok, err := e.store.Groups().Get(ctx, groupID)
	if err != nil {
		return models.Group{}, models.StoreFailure("load group", err)
	}
	if !ok {
		return models.Group{}, fmt.Errorf("%w: group %q", models.ErrNotFound, groupID)
	}
	return group, nil
}

func (e *Engine) memberExists(ctx context.Context, memberID string) error {
	_, ok, err := e.store.Members().Get(ctx, memberID)
	if err != nil {
		return models.StoreFailure("load member", err)
	}
	if !ok {
		return fmt.Errorf("%w: member %q", models.ErrNotFound, memberID)
	}
	return nil
}
