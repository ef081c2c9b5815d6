// Package storagetest holds the behavioural contract every storage.Store
// backend must satisfy. Backend packages call Run from their tests.
package storagetest

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/mmynk/chamaa/internal/models"
	"github.com/mmynk/chamaa/internal/storage"
)

// Run exercises store, which must start empty.
func Run(t *testing.T, store storage.Store) {
	t.Helper()
	ctx := context.Background()
	at := time.Date(2024, 2, 29, 18, 45, 12, 345678901, time.UTC)

	t.Run("Get on missing key reports absent", func(t *testing.T) {
		g, ok, err := store.Groups().Get(ctx, "missing")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if ok {
			t.Errorf("expected absent, got %+v", g)
		}
	})

	t.Run("Values on empty collection is empty", func(t *testing.T) {
		admins, err := store.Admins().Values(ctx)
		if err != nil {
			t.Fatalf("Values failed: %v", err)
		}
		if len(admins) != 0 {
			t.Errorf("expected 0 admins, got %d", len(admins))
		}
	})

	t.Run("Insert then Get round-trips every field", func(t *testing.T) {
		group := models.Group{
			ID:        "g-roundtrip",
			Name:      "Jirani Savers",
			AdminID:   "a1",
			Members:   []string{"m1", "m2"},
			CreatedAt: at,
		}
		if err := store.Groups().Insert(ctx, group.ID, group); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}

		got, ok, err := store.Groups().Get(ctx, group.ID)
		if err != nil || !ok {
			t.Fatalf("Get: ok=%v err=%v", ok, err)
		}
		if got.Name != group.Name || got.AdminID != group.AdminID {
			t.Errorf("got %+v, want %+v", got, group)
		}
		if len(got.Members) != 2 || got.Members[0] != "m1" || got.Members[1] != "m2" {
			t.Errorf("members = %v, want [m1 m2]", got.Members)
		}
		if !got.CreatedAt.Equal(at) {
			t.Errorf("createdAt = %v, want %v", got.CreatedAt, at)
		}
	})

	t.Run("amounts survive bit-for-bit", func(t *testing.T) {
		amounts := []float64{0.1 + 0.2, 1e-9, 123456789.123456789, math.MaxFloat64, math.SmallestNonzeroFloat64}
		for i, amount := range amounts {
			c := models.Contribution{ID: "c-bits-" + string(rune('a'+i)), GroupID: "g", MemberID: "m", Amount: amount, CreatedAt: at}
			if err := store.Contributions().Insert(ctx, c.ID, c); err != nil {
				t.Fatalf("Insert failed: %v", err)
			}
			got, ok, err := store.Contributions().Get(ctx, c.ID)
			if err != nil || !ok {
				t.Fatalf("Get: ok=%v err=%v", ok, err)
			}
			if math.Float64bits(got.Amount) != math.Float64bits(amount) {
				t.Errorf("amount = %v, want %v", got.Amount, amount)
			}
		}
	})

	t.Run("Values keeps insertion order and upsert keeps position", func(t *testing.T) {
		members := store.Members()
		for _, id := range []string{"m-c", "m-a", "m-b"} {
			m := models.Member{ID: id, Name: id, Email: id + "@x.com", CreatedAt: at}
			if err := members.Insert(ctx, id, m); err != nil {
				t.Fatalf("Insert %s failed: %v", id, err)
			}
		}

		// Overwrite the first one.
		if err := members.Insert(ctx, "m-c", models.Member{ID: "m-c", Name: "renamed", Email: "c@x.com", CreatedAt: at}); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}

		values, err := members.Values(ctx)
		if err != nil {
			t.Fatalf("Values failed: %v", err)
		}
		var order []string
		for _, v := range values {
			order = append(order, v.ID)
		}
		want := []string{"m-c", "m-a", "m-b"}
		if len(order) != len(want) {
			t.Fatalf("order = %v, want %v", order, want)
		}
		for i := range want {
			if order[i] != want[i] {
				t.Fatalf("order = %v, want %v", order, want)
			}
		}
		if values[0].Name != "renamed" {
			t.Errorf("upsert did not overwrite: %+v", values[0])
		}
	})

	t.Run("Delete removes and tolerates missing keys", func(t *testing.T) {
		admin := models.Admin{ID: "a-del", Name: "A", Email: "a@x.com", CreatedAt: at}
		if err := store.Admins().Insert(ctx, admin.ID, admin); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if err := store.Admins().Delete(ctx, admin.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, ok, _ := store.Admins().Get(ctx, admin.ID); ok {
			t.Error("expected admin to be gone")
		}
		if err := store.Admins().Delete(ctx, "never-existed"); err != nil {
			t.Errorf("Delete of missing key: %v", err)
		}
	})

	t.Run("collections do not share keys", func(t *testing.T) {
		if err := store.Admins().Insert(ctx, "shared", models.Admin{ID: "shared", Name: "A", Email: "a@x"}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if _, ok, _ := store.Members().Get(ctx, "shared"); ok {
			t.Error("admin key visible in members collection")
		}
	})

	t.Run("stored values are isolated from callers", func(t *testing.T) {
		group := models.Group{ID: "g-isolated", Name: "Pool", AdminID: "a1", Members: []string{"m1"}, CreatedAt: at}
		if err := store.Groups().Insert(ctx, group.ID, group); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		group.Members[0] = "changed-after-insert"

		got, _, err := store.Groups().Get(ctx, group.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		got.Members[0] = "changed-after-get"

		all, err := store.Groups().Values(ctx)
		if err != nil {
			t.Fatalf("Values failed: %v", err)
		}
		for _, g := range all {
			if g.ID == group.ID && len(g.Members) > 0 {
				g.Members[0] = "changed-after-values"
			}
		}

		again, _, err := store.Groups().Get(ctx, group.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(again.Members) != 1 || again.Members[0] != "m1" {
			t.Errorf("members = %v, want [m1]", again.Members)
		}
	})
}
