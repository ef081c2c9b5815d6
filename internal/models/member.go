package models

import "time"

// Member is a person who saves with one or more groups.
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Email is unique across all members. Comparison is exact and
	// case-sensitive.
	Email string `json:"email"`

	CreatedAt time.Time `json:"createdAt"`
}

// NewMember builds a Member after checking name and email are present.
func NewMember(id, name, email string, createdAt time.Time) (Member, error) {
	name, err := required("name", name)
	if err != nil {
		return Member{}, err
	}
	email, err = required("email", email)
	if err != nil {
		return Member{}, err
	}
	if id == "" {
		return Member{}, missing("id")
	}
	return Member{ID: id, Name: name, Email: email, CreatedAt: createdAt}, nil
}
