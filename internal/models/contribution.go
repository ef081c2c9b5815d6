package models

import (
	"fmt"
	"math"
	"time"
)

// Contribution is one payment by a member into a group. Contributions are
// append-only.
type Contribution struct {
	ID       string `json:"id"`
	GroupID  string `json:"groupId"`
	MemberID string `json:"memberId"`

	// Amount carries no currency unit. It is stored exactly as received.
	Amount float64 `json:"amount"`

	CreatedAt time.Time `json:"createdAt"`
}

// NewContribution builds a Contribution. Amount must be a finite, positive
// number; a zero amount is treated as absent.
func NewContribution(id, groupID, memberID string, amount float64, createdAt time.Time) (Contribution, error) {
	groupID, err := required("groupId", groupID)
	if err != nil {
		return Contribution{}, err
	}
	memberID, err = required("memberId", memberID)
	if err != nil {
		return Contribution{}, err
	}
	if err := ValidateAmount(amount); err != nil {
		return Contribution{}, err
	}
	if id == "" {
		return Contribution{}, missing("id")
	}
	return Contribution{
		ID:        id,
		GroupID:   groupID,
		MemberID:  memberID,
		Amount:    amount,
		CreatedAt: createdAt,
	}, nil
}

// ValidateAmount rejects zero, negative, NaN and infinite amounts.
func ValidateAmount(amount float64) error {
	switch {
	case amount == 0:
		return missing("amount")
	case math.IsNaN(amount), math.IsInf(amount, 0):
		return fmt.Errorf("%w: amount must be a finite number", ErrValidation)
	case amount < 0:
		return fmt.Errorf("%w: amount must be positive, got %v", ErrValidation, amount)
	}
	return nil
}
