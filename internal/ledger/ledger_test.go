package ledger

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/mmynk/chamaa/internal/clock"
	"github.com/mmynk/chamaa/internal/events"
	"github.com/mmynk/chamaa/internal/ids"
	"github.com/mmynk/chamaa/internal/models"
	"github.com/mmynk/chamaa/internal/storage"
	"github.com/mmynk/chamaa/internal/storage/memory"
)

var start = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	ledger   *Ledger
	store    *memory.Store
	recorder *events.Recorder
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	store := memory.New()
	recorder := &events.Recorder{}
	base := []Option{
		WithClock(clock.NewStepping(start, time.Second)),
		WithIDs(ids.Sequence("id")),
		WithPublisher(recorder),
	}
	return fixture{
		ledger:   New(store, append(base, opts...)...),
		store:    store,
		recorder: recorder,
	}
}

func (f fixture) admin(t *testing.T) models.Admin {
	t.Helper()
	a, err := f.ledger.CreateAdmin(context.Background(), "Wanjiku", "wanjiku@x.com")
	if err != nil {
		t.Fatalf("CreateAdmin failed: %v", err)
	}
	return a
}

func TestEndToEndScenario(t *testing.T) {
	f := newFixture(t)
	l := f.ledger
	ctx := context.Background()

	admin := f.admin(t)

	group, err := l.CreateGroup(ctx, "Pool", admin.ID)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if group.AdminID != admin.ID || group.Name != "Pool" {
		t.Errorf("group = %+v", group)
	}

	member, err := l.CreateMember(ctx, "Jo", "jo@x.com")
	if err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}

	updated, err := l.AddMember(ctx, group.ID, member.ID)
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if len(updated.Members) != 1 || updated.Members[0] != member.ID {
		t.Errorf("members = %v, want [%s]", updated.Members, member.ID)
	}

	if _, err := l.AddMember(ctx, group.ID, member.ID); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("second AddMember: err = %v, want ErrConflict", err)
	}

	contribution, err := l.CreateContribution(ctx, group.ID, member.ID, 100)
	if err != nil {
		t.Fatalf("CreateContribution failed: %v", err)
	}

	listed, err := l.ListContributionsForGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListContributionsForGroup failed: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != contribution.ID {
		t.Errorf("contributions = %+v, want [%s]", listed, contribution.ID)
	}

	wantEvents := []events.Type{
		events.AdminCreated,
		events.GroupCreated,
		events.MemberCreated,
		events.GroupMemberAdded,
		events.ContributionCreated,
	}
	got := f.recorder.Types()
	if len(got) != len(wantEvents) {
		t.Fatalf("events = %v, want %v", got, wantEvents)
	}
	for i := range wantEvents {
		if got[i] != wantEvents[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], wantEvents[i])
		}
	}
}

func TestCreateGroupRequiresExistingAdmin(t *testing.T) {
	f := newFixture(t)
	l := f.ledger
	ctx := context.Background()

	admin := f.admin(t)
	if _, err := l.CreateGroup(ctx, "First", admin.ID); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	before, _ := l.ListGroups(ctx)

	_, err := l.CreateGroup(ctx, "Pool", "unknown-admin-id")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	after, err := l.ListGroups(ctx)
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(after) != len(before) {
		t.Errorf("group count changed from %d to %d", len(before), len(after))
	}
}

func TestCreateGroupValidation(t *testing.T) {
	f := newFixture(t)
	admin := f.admin(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		group   string
		adminID string
		want    error
	}{
		{name: "blank name", group: "  ", adminID: admin.ID, want: models.ErrValidation},
		{name: "missing admin id", group: "Pool", adminID: "", want: models.ErrValidation},
		{name: "unknown admin", group: "Pool", adminID: "nobody", want: models.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ledger.CreateGroup(ctx, tt.group, tt.adminID)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	groups, _ := f.ledger.ListGroups(ctx)
	if len(groups) != 0 {
		t.Errorf("rejected creations left %d groups behind", len(groups))
	}
}

func TestAddMemberIsIdempotent(t *testing.T) {
	f := newFixture(t)
	l := f.ledger
	ctx := context.Background()

	group, _ := l.CreateGroup(ctx, "Pool", f.admin(t).ID)
	m1, _ := l.CreateMember(ctx, "Jo", "jo@x.com")
	m2, _ := l.CreateMember(ctx, "Sam", "sam@x.com")

	if _, err := l.AddMember(ctx, group.ID, m1.ID); err != nil {
		t.Fatalf("AddMember m1: %v", err)
	}
	if _, err := l.AddMember(ctx, group.ID, m1.ID); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("repeat AddMember: err = %v, want ErrConflict", err)
	}
	if _, err := l.AddMember(ctx, group.ID, m2.ID); err != nil {
		t.Fatalf("AddMember m2: %v", err)
	}

	stored, err := l.GetGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(stored.Members) != 2 || stored.Members[0] != m1.ID || stored.Members[1] != m2.ID {
		t.Errorf("members = %v, want [%s %s]", stored.Members, m1.ID, m2.ID)
	}
}

func TestAddMemberMissingReferences(t *testing.T) {
	f := newFixture(t)
	l := f.ledger
	ctx := context.Background()

	group, _ := l.CreateGroup(ctx, "Pool", f.admin(t).ID)
	member, _ := l.CreateMember(ctx, "Jo", "jo@x.com")

	if _, err := l.AddMember(ctx, "no-group", member.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("missing group: err = %v, want ErrNotFound", err)
	}
	if _, err := l.AddMember(ctx, group.ID, "no-member"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("missing member: err = %v, want ErrNotFound", err)
	}

	stored, _ := l.GetGroup(ctx, group.ID)
	if len(stored.Members) != 0 {
		t.Errorf("members = %v, want empty", stored.Members)
	}
}

func TestCreateMemberEmailUniqueness(t *testing.T) {
	f := newFixture(t)
	l := f.ledger
	ctx := context.Background()

	if _, err := l.CreateMember(ctx, "Jo", "jo@x.com"); err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}

	_, err := l.CreateMember(ctx, "Jo Again", "jo@x.com")
	if !errors.Is(err, models.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}

	// Surrounding whitespace does not make an email distinct.
	if _, err := l.CreateMember(ctx, "Jo Spaced", "  jo@x.com "); !errors.Is(err, models.ErrConflict) {
		t.Errorf("padded duplicate: err = %v, want ErrConflict", err)
	}

	members, _ := l.ListMembers(ctx)
	if len(members) != 1 {
		t.Errorf("member count = %d, want 1", len(members))
	}

	if _, err := l.CreateMember(ctx, "", "new@x.com"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("missing name: err = %v, want ErrValidation", err)
	}
}

func TestCreateContributionLinkage(t *testing.T) {
	f := newFixture(t)
	l := f.ledger
	ctx := context.Background()

	group, _ := l.CreateGroup(ctx, "Pool", f.admin(t).ID)
	member, _ := l.CreateMember(ctx, "Jo", "jo@x.com")

	amount := 0.1 + 0.2
	c, err := l.CreateContribution(ctx, group.ID, member.ID, amount)
	if err != nil {
		t.Fatalf("CreateContribution failed: %v", err)
	}
	if c.GroupID != group.ID || c.MemberID != member.ID {
		t.Errorf("contribution = %+v", c)
	}
	if math.Float64bits(c.Amount) != math.Float64bits(amount) {
		t.Errorf("amount = %v, want %v", c.Amount, amount)
	}

	stored, ok, err := f.store.Contributions().Get(ctx, c.ID)
	if err != nil || !ok {
		t.Fatalf("stored contribution: ok=%v err=%v", ok, err)
	}
	if math.Float64bits(stored.Amount) != math.Float64bits(amount) {
		t.Errorf("stored amount = %v, want %v", stored.Amount, amount)
	}
}

func TestCreateContributionRejections(t *testing.T) {
	f := newFixture(t)
	l := f.ledger
	ctx := context.Background()

	group, _ := l.CreateGroup(ctx, "Pool", f.admin(t).ID)
	member, _ := l.CreateMember(ctx, "Jo", "jo@x.com")

	tests := []struct {
		name     string
		groupID  string
		memberID string
		amount   float64
		want     error
	}{
		{name: "missing group id", memberID: member.ID, amount: 10, want: models.ErrValidation},
		{name: "missing member id", groupID: group.ID, amount: 10, want: models.ErrValidation},
		{name: "blank group id", groupID: "   ", memberID: member.ID, amount: 10, want: models.ErrValidation},
		{name: "blank member id", groupID: group.ID, memberID: " \t", amount: 10, want: models.ErrValidation},
		{name: "missing amount", groupID: group.ID, memberID: member.ID, want: models.ErrValidation},
		{name: "negative amount", groupID: group.ID, memberID: member.ID, amount: -3, want: models.ErrValidation},
		{name: "unknown group", groupID: "nope", memberID: member.ID, amount: 10, want: models.ErrNotFound},
		{name: "unknown member", groupID: group.ID, memberID: "nope", amount: 10, want: models.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.CreateContribution(ctx, tt.groupID, tt.memberID, tt.amount)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	all, _ := f.store.Contributions().Values(ctx)
	if len(all) != 0 {
		t.Errorf("rejected contributions were stored: %d", len(all))
	}
}

func TestContributionMembershipNotRequiredByDefault(t *testing.T) {
	f := newFixture(t)
	l := f.ledger
	ctx := context.Background()

	group, _ := l.CreateGroup(ctx, "Pool", f.admin(t).ID)
	outsider, _ := l.CreateMember(ctx, "Out", "out@x.com")

	if _, err := l.CreateContribution(ctx, group.ID, outsider.ID, 5); err != nil {
		t.Errorf("non-member contribution rejected: %v", err)
	}
}

func TestContributionMembershipRequired(t *testing.T) {
	f := newFixture(t, WithMembershipRequired(true))
	l := f.ledger
	ctx := context.Background()

	group, _ := l.CreateGroup(ctx, "Pool", f.admin(t).ID)
	member, _ := l.CreateMember(ctx, "Jo", "jo@x.com")

	if _, err := l.CreateContribution(ctx, group.ID, member.ID, 5); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("non-member: err = %v, want ErrConflict", err)
	}
	if _, err := l.AddMember(ctx, group.ID, member.ID); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if _, err := l.CreateContribution(ctx, group.ID, member.ID, 5); err != nil {
		t.Errorf("member contribution rejected: %v", err)
	}
}

func TestListContributionsForGroupFilters(t *testing.T) {
	f := newFixture(t)
	l := f.ledger
	ctx := context.Background()

	admin := f.admin(t)
	g1, _ := l.CreateGroup(ctx, "One", admin.ID)
	g2, _ := l.CreateGroup(ctx, "Two", admin.ID)
	empty, _ := l.CreateGroup(ctx, "Empty", admin.ID)
	m, _ := l.CreateMember(ctx, "Jo", "jo@x.com")

	var want []string
	for i, g := range []models.Group{g1, g2, g1, g2, g1} {
		c, err := l.CreateContribution(ctx, g.ID, m.ID, float64(i+1))
		if err != nil {
			t.Fatalf("CreateContribution failed: %v", err)
		}
		if g.ID == g1.ID {
			want = append(want, c.ID)
		}
	}

	got, err := l.ListContributionsForGroup(ctx, g1.ID)
	if err != nil {
		t.Fatalf("ListContributionsForGroup failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d contributions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i] || got[i].GroupID != g1.ID {
			t.Errorf("contribution %d = %+v, want id %s", i, got[i], want[i])
		}
	}

	none, err := l.ListContributionsForGroup(ctx, empty.ID)
	if err != nil {
		t.Fatalf("empty group: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("empty group contributions = %#v, want empty slice", none)
	}

	if _, err := l.ListContributionsForGroup(ctx, "no-such-group"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown group: err = %v, want ErrNotFound", err)
	}
}

func TestGroupSummary(t *testing.T) {
	f := newFixture(t)
	l := f.ledger
	ctx := context.Background()

	group, _ := l.CreateGroup(ctx, "Pool", f.admin(t).ID)
	jo, _ := l.CreateMember(ctx, "Jo", "jo@x.com")
	sam, _ := l.CreateMember(ctx, "Sam", "sam@x.com")

	l.CreateContribution(ctx, group.ID, jo.ID, 100)
	l.CreateContribution(ctx, group.ID, sam.ID, 40)
	l.CreateContribution(ctx, group.ID, jo.ID, 60)

	s, err := l.GroupSummary(ctx, group.ID)
	if err != nil {
		t.Fatalf("GroupSummary failed: %v", err)
	}
	if s.Total != 200 || s.Count != 3 {
		t.Errorf("summary = %+v", s)
	}
	if len(s.Members) != 2 || s.Members[0].MemberID != jo.ID || s.Members[0].Total != 160 {
		t.Errorf("members = %+v", s.Members)
	}

	if _, err := l.GroupSummary(ctx, "nope"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown group: err = %v, want ErrNotFound", err)
	}
}

func TestListsAreEmptyNotErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admins, err := f.ledger.ListAdmins(ctx)
	if err != nil || len(admins) != 0 {
		t.Errorf("ListAdmins = %v, %v", admins, err)
	}
	groups, err := f.ledger.ListGroups(ctx)
	if err != nil || len(groups) != 0 {
		t.Errorf("ListGroups = %v, %v", groups, err)
	}
	members, err := f.ledger.ListMembers(ctx)
	if err != nil || len(members) != 0 {
		t.Errorf("ListMembers = %v, %v", members, err)
	}
}

func TestTimestampsComeFromClock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.admin(t)
	member, _ := f.ledger.CreateMember(ctx, "Jo", "jo@x.com")

	if !admin.CreatedAt.Equal(start) {
		t.Errorf("admin createdAt = %v, want %v", admin.CreatedAt, start)
	}
	// The admin event consumed one reading.
	if want := start.Add(2 * time.Second); !member.CreatedAt.Equal(want) {
		t.Errorf("member createdAt = %v, want %v", member.CreatedAt, want)
	}
	if !member.CreatedAt.After(admin.CreatedAt) {
		t.Error("timestamps should increase")
	}
}

func TestCreateAdmin(t *testing.T) {
	f := newFixture(t)
	l := f.ledger
	ctx := context.Background()

	a1, _ := l.CreateAdmin(ctx, "Admin", "admin@x.com")
	a2, _ := l.CreateAdmin(ctx, "Admin", "admin@x.com")
	if a1.ID == a2.ID {
		t.Error("re-running CreateAdmin should create a second admin")
	}

	if _, err := l.CreateAdminWithID(ctx, a1.ID, "Other", "o@x.com"); !errors.Is(err, models.ErrConflict) {
		t.Errorf("reused id: err = %v, want ErrConflict", err)
	}
	stored, _, _ := f.store.Admins().Get(ctx, a1.ID)
	if stored.Name != "Admin" {
		t.Errorf("admin overwritten: %+v", stored)
	}

	if _, err := l.CreateAdmin(ctx, "", "x@x.com"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("missing name: err = %v, want ErrValidation", err)
	}
}

func TestSeedAdmin(t *testing.T) {
	f := newFixture(t)
	l := f.ledger
	ctx := context.Background()

	first, created, err := l.SeedAdmin(ctx, "principal-1", "Admin", "admin@x.com")
	if err != nil || !created {
		t.Fatalf("first seed: created=%v err=%v", created, err)
	}
	again, created, err := l.SeedAdmin(ctx, "principal-1", "Admin", "admin@x.com")
	if err != nil || created {
		t.Fatalf("second seed: created=%v err=%v", created, err)
	}
	if again.ID != first.ID || !again.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("seed returned %+v, want %+v", again, first)
	}

	// Without a fixed id each seed creates a new admin.
	l.SeedAdmin(ctx, "", "Admin", "admin@x.com")
	l.SeedAdmin(ctx, "", "Admin", "admin@x.com")
	admins, _ := l.ListAdmins(ctx)
	if len(admins) != 3 {
		t.Errorf("admins = %d, want 3", len(admins))
	}
}

func TestConcurrentAddMemberAppendsOnce(t *testing.T) {
	store := memory.New()
	l := New(store)
	ctx := context.Background()

	admin, _ := l.CreateAdmin(ctx, "Admin", "admin@x.com")
	group, _ := l.CreateGroup(ctx, "Pool", admin.ID)
	member, _ := l.CreateMember(ctx, "Jo", "jo@x.com")

	const workers = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.AddMember(ctx, group.ID, member.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, models.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 || conflicts != workers-1 {
		t.Errorf("successes=%d conflicts=%d", successes, conflicts)
	}
	stored, _ := l.GetGroup(ctx, group.ID)
	if len(stored.Members) != 1 {
		t.Errorf("members = %v, want exactly one", stored.Members)
	}
}

func TestConcurrentCreateMemberSameEmail(t *testing.T) {
	l := New(memory.New())
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.CreateMember(ctx, "Jo", "jo@x.com")
		}()
	}
	wg.Wait()

	members, _ := l.ListMembers(ctx)
	if len(members) != 1 {
		t.Errorf("members = %d, want 1", len(members))
	}
}

var errWrite = errors.New("write refused")

// failingStore wraps a memory store and fails every Insert.
type failingStore struct {
	*memory.Store
}

type failingCollection[V any] struct {
	storage.Collection[V]
}

func (failingCollection[V]) Insert(context.Context, string, V) error { return errWrite }

func (s failingStore) Groups() storage.Collection[models.Group] {
	return failingCollection[models.Group]{s.Store.Groups()}
}

func TestStoreFailureIsReported(t *testing.T) {
	base := memory.New()
	ctx := context.Background()

	seed := New(base)
	admin, err := seed.CreateAdmin(ctx, "Admin", "admin@x.com")
	if err != nil {
		t.Fatalf("CreateAdmin failed: %v", err)
	}

	l := New(failingStore{base})
	_, err = l.CreateGroup(ctx, "Pool", admin.ID)
	if !errors.Is(err, models.ErrStore) || !errors.Is(err, errWrite) {
		t.Fatalf("err = %v, want ErrStore wrapping errWrite", err)
	}

	groups, _ := base.Groups().Values(ctx)
	if len(groups) != 0 {
		t.Errorf("groups = %d after failed write, want 0", len(groups))
	}
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, events.Event) error {
	return errors.New("broker down")
}

func TestPublishFailureDoesNotUndoCommit(t *testing.T) {
	l := New(memory.New(), WithPublisher(failingPublisher{}))
	ctx := context.Background()

	member, err := l.CreateMember(ctx, "Jo", "jo@x.com")
	if err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}
	if _, err := l.GetMember(ctx, member.ID); err != nil {
		t.Errorf("member missing after publish failure: %v", err)
	}
}

type outcomeLog struct {
	mu      sync.Mutex
	entries []string
}

func (o *outcomeLog) ObserveOperation(operation string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	o.entries = append(o.entries, operation+":"+outcome)
}

func TestObserverSeesWriteOutcomes(t *testing.T) {
	log := &outcomeLog{}
	f := newFixture(t, WithObserver(log))
	ctx := context.Background()

	admin := f.admin(t)
	f.ledger.CreateGroup(ctx, "Pool", admin.ID)
	f.ledger.CreateGroup(ctx, "Pool", "missing")
	f.ledger.ListGroups(ctx)

	want := []string{"create_admin:ok", "create_group:ok", "create_group:error"}
	if len(log.entries) != len(want) {
		t.Fatalf("entries = %v, want %v", log.entries, want)
	}
	for i := range want {
		if log.entries[i] != want[i] {
			t.Errorf("entry %d = %s, want %s", i, log.entries[i], want[i])
		}
	}
}
