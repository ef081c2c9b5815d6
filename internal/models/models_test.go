package models

import (
	"errors"
	"math"
	"testing"
	"time"
)

var created = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func TestNewGroup(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		group   string
		adminID string
		wantErr bool
	}{
		{name: "valid", id: "g1", group: "Jirani Savers", adminID: "a1"},
		{name: "trims name", id: "g1", group: "  Pool  ", adminID: "a1"},
		{name: "missing name", id: "g1", group: "", adminID: "a1", wantErr: true},
		{name: "blank name", id: "g1", group: "   ", adminID: "a1", wantErr: true},
		{name: "missing admin", id: "g1", group: "Pool", adminID: "", wantErr: true},
		{name: "missing id", id: "", group: "Pool", adminID: "a1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGroup(tt.id, tt.group, tt.adminID, created)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("err = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewGroup failed: %v", err)
			}
			if g.Members == nil || len(g.Members) != 0 {
				t.Errorf("members = %#v, want empty non-nil slice", g.Members)
			}
			if g.Name == "" || g.Name[0] == ' ' {
				t.Errorf("name not trimmed: %q", g.Name)
			}
			if !g.CreatedAt.Equal(created) {
				t.Errorf("createdAt = %v, want %v", g.CreatedAt, created)
			}
		})
	}
}

func TestGroupWithMember(t *testing.T) {
	g, err := NewGroup("g1", "Pool", "a1", created)
	if err != nil {
		t.Fatalf("NewGroup failed: %v", err)
	}

	g2 := g.WithMember("m1")
	if len(g.Members) != 0 {
		t.Errorf("original group mutated: %v", g.Members)
	}
	if !g2.HasMember("m1") {
		t.Error("expected m1 in group")
	}

	g3 := g2.WithMember("m1")
	if len(g3.Members) != 1 {
		t.Errorf("duplicate append: members = %v", g3.Members)
	}

	g4 := g3.WithMember("m2")
	if got := g4.Members; len(got) != 2 || got[0] != "m1" || got[1] != "m2" {
		t.Errorf("members = %v, want [m1 m2]", got)
	}
}

func TestGroupClone(t *testing.T) {
	g, err := NewGroup("g1", "Pool", "a1", created)
	if err != nil {
		t.Fatalf("NewGroup failed: %v", err)
	}
	g = g.WithMember("m1")

	c := g.Clone()
	c.Members[0] = "other"
	if g.Members[0] != "m1" {
		t.Errorf("clone shares members with original: %v", g.Members)
	}

	empty, _ := NewGroup("g2", "Pool", "a1", created)
	if empty.Clone().Members == nil {
		t.Error("clone of an empty member list should stay non-nil")
	}
}

func TestNewMember(t *testing.T) {
	m, err := NewMember("m1", " Jo ", " jo@x.com ", created)
	if err != nil {
		t.Fatalf("NewMember failed: %v", err)
	}
	if m.Name != "Jo" || m.Email != "jo@x.com" {
		t.Errorf("got name=%q email=%q", m.Name, m.Email)
	}

	if _, err := NewMember("m2", "Jo", "", created); !errors.Is(err, ErrValidation) {
		t.Errorf("missing email: err = %v, want ErrValidation", err)
	}
	if _, err := NewMember("m2", "", "jo@x.com", created); !errors.Is(err, ErrValidation) {
		t.Errorf("missing name: err = %v, want ErrValidation", err)
	}
}

func TestNewAdmin(t *testing.T) {
	a, err := NewAdmin("a1", "Wanjiku", "w@x.com", created)
	if err != nil {
		t.Fatalf("NewAdmin failed: %v", err)
	}
	if a.ID != "a1" {
		t.Errorf("id = %q", a.ID)
	}
	if _, err := NewAdmin("a1", "Wanjiku", "", created); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestNewContribution(t *testing.T) {
	tests := []struct {
		name     string
		groupID  string
		memberID string
		amount   float64
		wantErr  bool
	}{
		{name: "valid", groupID: "g1", memberID: "m1", amount: 100},
		{name: "fractional", groupID: "g1", memberID: "m1", amount: 0.1 + 0.2},
		{name: "missing group", memberID: "m1", amount: 100, wantErr: true},
		{name: "missing member", groupID: "g1", amount: 100, wantErr: true},
		{name: "zero amount", groupID: "g1", memberID: "m1", amount: 0, wantErr: true},
		{name: "negative amount", groupID: "g1", memberID: "m1", amount: -5, wantErr: true},
		{name: "NaN amount", groupID: "g1", memberID: "m1", amount: math.NaN(), wantErr: true},
		{name: "infinite amount", groupID: "g1", memberID: "m1", amount: math.Inf(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContribution("c1", tt.groupID, tt.memberID, tt.amount, created)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("err = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewContribution failed: %v", err)
			}
			if math.Float64bits(c.Amount) != math.Float64bits(tt.amount) {
				t.Errorf("amount = %v, want %v", c.Amount, tt.amount)
			}
		})
	}
}
