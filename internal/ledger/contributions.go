package ledger

import (
	"context"

	"github.com/mmynk/chamaa/internal/calculator"
	"github.com/mmynk/chamaa/internal/clock"
	"github.com/mmynk/chamaa/internal/events"
	"github.com/mmynk/chamaa/internal/models"
)

// CreateContribution records a payment by memberID into groupID.
// The amount is stored exactly as given.
func (l *Ledger) CreateContribution(ctx context.Context, groupID, memberID string, amount float64) (models.Contribution, error) {
	contribution, err := l.createContribution(ctx, groupID, memberID, amount)
	l.observe("create_contribution", err)
	if err != nil {
		return models.Contribution{}, err
	}
	l.publish(ctx, events.ContributionCreated, contribution.ID, contribution)
	return contribution, nil
}

func (l *Ledger) createContribution(ctx context.Context, groupID, memberID string, amount float64) (models.Contribution, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	contribution, err := models.NewContribution(l.newID(), groupID, memberID, amount, clock.ToTime(l.clock.Now()))
	if err != nil {
		return models.Contribution{}, err
	}
	if err := l.rules.ValidateContributionCreation(ctx, contribution.GroupID, contribution.MemberID, contribution.Amount); err != nil {
		return models.Contribution{}, err
	}
	if err := l.store.Contributions().Insert(ctx, contribution.ID, contribution); err != nil {
		return models.Contribution{}, models.StoreFailure("save contribution", err)
	}
	return contribution, nil
}

// ListContributionsForGroup returns the group's contributions in store
// order. The result is empty, not an error, when the group has none; an
// unknown group is ErrNotFound.
//
// There is no index by group: this scans every contribution.
func (l *Ledger) ListContributionsForGroup(ctx context.Context, groupID string) ([]models.Contribution, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.contributionsFor(ctx, groupID)
}

// GroupSummary totals the group's contributions per member.
func (l *Ledger) GroupSummary(ctx context.Context, groupID string) (calculator.Summary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	contributions, err := l.contributionsFor(ctx, groupID)
	if err != nil {
		return calculator.Summary{}, err
	}
	return calculator.Summarize(groupID, contributions), nil
}

// contributionsFor must be called with l.mu held.
func (l *Ledger) contributionsFor(ctx context.Context, groupID string) ([]models.Contribution, error) {
	if err := l.rules.ValidateGroupExists(ctx, groupID); err != nil {
		return nil, err
	}

	all, err := l.store.Contributions().Values(ctx)
	if err != nil {
		return nil, models.StoreFailure("list contributions", err)
	}

	filtered := []models.Contribution{}
	for _, c := range all {
		if c.GroupID == groupID {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}
