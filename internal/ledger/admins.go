package ledger

import (
	"context"
	"fmt"

	"github.com/mmynk/chamaa/internal/clock"
	"github.com/mmynk/chamaa/internal/events"
	"github.com/mmynk/chamaa/internal/models"
)

// CreateAdmin registers a new admin under a generated ID. Calling it twice
// with the same details creates two admins.
func (l *Ledger) CreateAdmin(ctx context.Context, name, email string) (models.Admin, error) {
	return l.CreateAdminWithID(ctx, "", name, email)
}

// CreateAdminWithID registers an admin under a caller-derived id. An empty
// id means generate one. Reusing an existing id is a Conflict; admins are
// never overwritten.
func (l *Ledger) CreateAdminWithID(ctx context.Context, id, name, email string) (models.Admin, error) {
	admin, err := l.createAdmin(ctx, id, name, email)
	l.observe("create_admin", err)
	if err != nil {
		return models.Admin{}, err
	}
	l.publish(ctx, events.AdminCreated, admin.ID, admin)
	return admin, nil
}

func (l *Ledger) createAdmin(ctx context.Context, id, name, email string) (models.Admin, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if id == "" {
		id = l.newID()
	}
	admin, err := models.NewAdmin(id, name, email, clock.ToTime(l.clock.Now()))
	if err != nil {
		return models.Admin{}, err
	}
	if err := l.rules.ValidateAdminID(ctx, admin.ID); err != nil {
		return models.Admin{}, err
	}
	if err := l.store.Admins().Insert(ctx, admin.ID, admin); err != nil {
		return models.Admin{}, models.StoreFailure("save admin", err)
	}
	return admin, nil
}

// SeedAdmin makes sure a default admin exists at start-up. With a fixed id
// it is idempotent and returns the stored admin if present; with an empty
// id every call creates a new admin.
func (l *Ledger) SeedAdmin(ctx context.Context, id, name, email string) (models.Admin, bool, error) {
	if id != "" {
		l.mu.RLock()
		existing, ok, err := l.store.Admins().Get(ctx, id)
		l.mu.RUnlock()
		if err != nil {
			return models.Admin{}, false, models.StoreFailure("load admin", err)
		}
		if ok {
			return existing, false, nil
		}
	}

	admin, err := l.CreateAdminWithID(ctx, id, name, email)
	if err != nil {
		return models.Admin{}, false, fmt.Errorf("seed admin: %w", err)
	}
	return admin, true, nil
}

// ListAdmins returns every admin in store order.
func (l *Ledger) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	admins, err := l.store.Admins().Values(ctx)
	if err != nil {
		return nil, models.StoreFailure("list admins", err)
	}
	return admins, nil
}
