package models

import "time"

// Admin owns groups. A process seeds one admin at start-up.
type Admin struct {
	// ID is either derived from the caller (configured) or a generated UUID.
	ID string `json:"id"`

	// Name is the admin's display name.
	Name string `json:"name"`

	// Email is the admin's contact address.
	Email string `json:"email"`

	// CreatedAt is when the admin was registered.
	CreatedAt time.Time `json:"createdAt"`
}

// NewAdmin builds an Admin after checking that every field is present.
func NewAdmin(id, name, email string, createdAt time.Time) (Admin, error) {
	name, err := required("name", name)
	if err != nil {
		return Admin{}, err
	}
	email, err = required("email", email)
	if err != nil {
		return Admin{}, err
	}
	if id == "" {
		return Admin{}, missing("id")
	}
	return Admin{ID: id, Name: name, Email: email, CreatedAt: createdAt}, nil
}
