package models

import (
	"slices"
	"time"
)

// Group represents a chamaa: a savings pool run by one admin.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Jirani Savers").
	Name string `json:"name"`

	// AdminID references the Admin who created the group.
	AdminID string `json:"adminId"`

	// Members lists member IDs in the order they joined. No duplicates.
	Members []string `json:"members"`

	// CreatedAt is when the group was created.
	CreatedAt time.Time `json:"createdAt"`
}

// NewGroup builds a Group with an empty member list.
func NewGroup(id, name, adminID string, createdAt time.Time) (Group, error) {
	name, err := required("name", name)
	if err != nil {
		return Group{}, err
	}
	adminID, err = required("adminId", adminID)
	if err != nil {
		return Group{}, err
	}
	if id == "" {
		return Group{}, missing("id")
	}
	return Group{
		ID:        id,
		Name:      name,
		AdminID:   adminID,
		Members:   []string{},
		CreatedAt: createdAt,
	}, nil
}

// HasMember reports whether memberID is already in the group.
func (g Group) HasMember(memberID string) bool {
	return slices.Contains(g.Members, memberID)
}

// Clone returns a copy of g that shares no memory with it.
func (g Group) Clone() Group {
	g.Members = slices.Clone(g.Members)
	return g
}

// WithMember returns a copy of g with memberID appended. If the member is
// already present the copy is unchanged.
func (g Group) WithMember(memberID string) Group {
	members := make([]string, len(g.Members), len(g.Members)+1)
	copy(members, g.Members)
	if !slices.Contains(members, memberID) {
		members = append(members, memberID)
	}
	g.Members = members
	return g
}
