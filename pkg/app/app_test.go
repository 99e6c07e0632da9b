package app

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/entry"
	"tableflip.dev/contentcal/pkg/store"
)

type memoryPersistence struct {
	mu      sync.Mutex
	entries map[string]*entry.Entry
	writes  int
	failOn  string
}

func newMemoryPersistence(entries ...*entry.Entry) *memoryPersistence {
	mp := &memoryPersistence{entries: make(map[string]*entry.Entry)}
	for _, e := range entries {
		if e == nil {
			continue
		}
		mp.entries[e.ID] = e.Clone()
	}
	return mp
}

func (m *memoryPersistence) ListAll(_ context.Context) ([]*entry.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entry.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryPersistence) Store(e *entry.Entry) error {
	if e == nil || e.ID == "" {
		return errors.New("entry id required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == m.failOn {
		return errors.New("disk full")
	}
	m.writes++
	m.entries[e.ID] = e.Clone()
	return nil
}

func (m *memoryPersistence) Delete(e *entry.Entry) error {
	if e == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, e.ID)
	return nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

func (m *memoryPersistence) get(id string) *entry.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[id]
}

var fixedNow = time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)

func seeded(t *testing.T, entries ...*entry.Entry) (*Service, *memoryPersistence) {
	t.Helper()
	mp := newMemoryPersistence(entries...)
	svc := &Service{
		Persistence: mp,
		Now:         func() time.Time { return fixedNow },
	}
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	return svc, mp
}

// gatedPersistence pauses ListAll after it has taken its snapshot.
type gatedPersistence struct {
	*memoryPersistence
	listed  chan struct{}
	release chan struct{}
}

func (g *gatedPersistence) ListAll(ctx context.Context) ([]*entry.Entry, error) {
	out, err := g.memoryPersistence.ListAll(ctx)
	close(g.listed)
	<-g.release
	return out, err
}

func planned(id, date, slot string, platforms ...string) *entry.Entry {
	e := entry.New("entry "+id, entry.MustDate(date), platforms...)
	e.ID = id
	e.TimeSlot = slot
	e.Version = 1
	return e
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc, mp := seeded(t)
	e, err := svc.Create(context.Background(), NewEntry{
		Title:        "Summer teaser",
		CalendarDate: entry.MustDate("2024-06-12"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.ID == "" {
		t.Fatalf("expected generated id")
	}
	if e.Status != entry.Planned || e.Priority != entry.Medium || e.ContentType != entry.Post {
		t.Fatalf("unexpected defaults: %s %s %s", e.Status, e.Priority, e.ContentType)
	}
	if e.TimeSlot != "09:00" {
		t.Fatalf("expected 09:00 slot, got %s", e.TimeSlot)
	}
	if len(e.TargetPlatforms) != 1 || e.TargetPlatforms[0] != store.DefaultPlatform {
		t.Fatalf("expected default platform, got %v", e.TargetPlatforms)
	}
	if e.Version != 1 || !e.CreatedAt.Equal(fixedNow) {
		t.Fatalf("expected version 1 created now, got %d %s", e.Version, e.CreatedAt)
	}
	if mp.get(e.ID) == nil {
		t.Fatalf("expected entry written through to persistence")
	}
	if _, err := svc.Get(context.Background(), e.ID); err != nil {
		t.Fatalf("expected entry in store: %v", err)
	}
}

func TestCreateWithOnlyDate(t *testing.T) {
	svc, _ := seeded(t)
	e, err := svc.Create(context.Background(), NewEntry{CalendarDate: entry.MustDate("2024-06-12"), Title: "   "})
	if err != nil {
		t.Fatalf("create with only a date: %v", err)
	}
	if e.Title != entry.DefaultTitle {
		t.Fatalf("expected title %q, got %q", entry.DefaultTitle, e.Title)
	}
}

func TestCreateWithoutDateIsValidationError(t *testing.T) {
	svc, mp := seeded(t)
	_, err := svc.Create(context.Background(), NewEntry{Title: "No date"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "calendar_date" {
		t.Fatalf("expected calendar_date field, got %s", verr.Field)
	}
	if mp.writes != 0 || svc.Store.Len() != 0 {
		t.Fatalf("rejected create must not store anything")
	}
}

func TestCreateValidatesFields(t *testing.T) {
	svc, _ := seeded(t)
	day := entry.MustDate("2024-06-12")
	tests := []struct {
		name  string
		in    NewEntry
		field string
	}{
		{"bad slot", NewEntry{Title: "x", CalendarDate: day, TimeSlot: "25:00"}, "time_slot"},
		{"bad status", NewEntry{Title: "x", CalendarDate: day, Status: "archived"}, "status"},
		{"bad content type", NewEntry{Title: "x", CalendarDate: day, ContentType: "podcast"}, "content_type"},
		{"negative engagement", NewEntry{Title: "x", CalendarDate: day, ExpectedEngagement: -1}, "expected_engagement"},
	}
	for _, tt := range tests {
		_, err := svc.Create(context.Background(), tt.in)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %v", tt.name, err)
		}
		if verr.Field != tt.field {
			t.Fatalf("%s: expected field %s, got %s", tt.name, tt.field, verr.Field)
		}
	}
}

func TestMoveIsIdempotent(t *testing.T) {
	svc, mp := seeded(t, planned("a", "2024-06-10", "09:00", "fb"))
	ctx := context.Background()
	target := entry.MustDate("2024-06-14")

	once, err := svc.Move(ctx, "a", target)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	twice, err := svc.Move(ctx, "a", target)
	if err != nil {
		t.Fatalf("second move: %v", err)
	}
	if !once.CalendarDate.Equal(target) || !twice.CalendarDate.Equal(target) {
		t.Fatalf("expected entry on %s", target)
	}
	if once.Version != twice.Version || twice.Version != 2 {
		t.Fatalf("expected one version bump, got %d then %d", once.Version, twice.Version)
	}
	if mp.writes != 1 {
		t.Fatalf("expected one write, got %d", mp.writes)
	}
	if !mp.get("a").CalendarDate.Equal(target) {
		t.Fatalf("expected persisted date to follow the move")
	}
}

func TestMoveUnknownIsNotFound(t *testing.T) {
	svc, _ := seeded(t)
	_, err := svc.Move(context.Background(), "missing", entry.MustDate("2024-06-14"))
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestMoveIntoConflictSucceeds(t *testing.T) {
	svc, _ := seeded(t,
		planned("a", "2024-06-10", "09:00", "fb"),
		planned("b", "2024-06-11", "09:00", "fb"),
	)
	ctx := context.Background()
	if _, err := svc.Move(ctx, "b", entry.MustDate("2024-06-10")); err != nil {
		t.Fatalf("conflicting move must succeed: %v", err)
	}
	view, err := svc.View(ctx, calendar.ViewRequest{Reference: fixedNow, Mode: calendar.ModeDay})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.Days[0].ConflictCount != 2 {
		t.Fatalf("expected the move to surface a conflict, got %d", view.Days[0].ConflictCount)
	}
}

func TestDispatchChecksVersion(t *testing.T) {
	svc, _ := seeded(t, planned("a", "2024-06-10", "09:00", "fb"))
	ctx := context.Background()
	_, err := svc.Dispatch(ctx, MoveCommand{EntryID: "a", TargetDate: entry.MustDate("2024-06-12"), Version: 7})
	var conflict *VersionConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected VersionConflictError, got %v", err)
	}
	if conflict.Actual != 1 {
		t.Fatalf("expected actual version 1, got %d", conflict.Actual)
	}
	if _, err := svc.Dispatch(ctx, MoveCommand{EntryID: "a", TargetDate: entry.MustDate("2024-06-12"), Version: 1}); err != nil {
		t.Fatalf("dispatch with current version: %v", err)
	}
}

func TestBulkUpdateStatusSkipsUnknown(t *testing.T) {
	svc, mp := seeded(t, planned("x", "2024-06-10", "09:00", "fb"))
	result, err := svc.BulkUpdateStatus(context.Background(), []string{"x", "y-unknown"}, "published")
	if err != nil {
		t.Fatalf("bulk update: %v", err)
	}
	if len(result.Updated) != 1 || result.Updated[0].ID != "x" {
		t.Fatalf("expected [x] updated, got %v", result.Updated)
	}
	if got := result.Updated[0]; got.Status != entry.Published || got.Version != 2 {
		t.Fatalf("expected the updated entry back, got status %s version %d", got.Status, got.Version)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != "y-unknown" {
		t.Fatalf("expected [y-unknown] skipped, got %v", result.Skipped)
	}
	if mp.get("x").Status != entry.Published {
		t.Fatalf("expected persisted status to be published")
	}
}

func TestBulkUpdateStatusPartialFailure(t *testing.T) {
	svc, mp := seeded(t,
		planned("a", "2024-06-10", "09:00", "fb"),
		planned("b", "2024-06-10", "10:00", "fb"),
	)
	mp.failOn = "b"
	result, err := svc.BulkUpdateStatus(context.Background(), []string{"a", "b", "a"}, "cancelled")
	if err != nil {
		t.Fatalf("bulk update: %v", err)
	}
	if len(result.Updated) != 1 || result.Updated[0].ID != "a" {
		t.Fatalf("expected only a updated, got %v", result.Updated)
	}
	if result.Errors["b"] == "" {
		t.Fatalf("expected error recorded for b")
	}
	if e, _ := svc.Get(context.Background(), "b"); e.Status != entry.Planned {
		t.Fatalf("failed write must not change the store, got %s", e.Status)
	}
}

func TestBulkUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := seeded(t)
	if _, err := svc.BulkUpdateStatus(context.Background(), []string{"x"}, "archived"); !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestTransitionFollowsLifecycle(t *testing.T) {
	svc, _ := seeded(t, planned("a", "2024-06-10", "09:00", "fb"))
	ctx := context.Background()
	e, err := svc.Transition(ctx, "a", "ready", 0)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if e.Status != entry.Ready {
		t.Fatalf("expected ready, got %s", e.Status)
	}
	_, err = svc.Transition(ctx, "a", "planned", 0)
	var terr *TransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if terr.From != entry.Ready || terr.To != entry.Planned {
		t.Fatalf("unexpected transition error %v", terr)
	}
}

func TestDelete(t *testing.T) {
	svc, mp := seeded(t, planned("a", "2024-06-10", "09:00", "fb"))
	ctx := context.Background()
	if err := svc.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mp.get("a") != nil || svc.Store.Len() != 0 {
		t.Fatalf("expected entry removed everywhere")
	}
	if err := svc.Delete(ctx, "a"); !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestCheckSlot(t *testing.T) {
	svc, _ := seeded(t,
		planned("a", "2024-06-10", "09:00", "fb"),
		planned("b", "2024-06-10", "09:00", "ig"),
		planned("c", "2024-06-10", "10:00", "fb"),
	)
	hits, err := svc.CheckSlot(context.Background(), entry.MustDate("2024-06-10"), "9:00", []string{"FB"})
	if err != nil {
		t.Fatalf("check slot: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "a" {
		t.Fatalf("expected only a to conflict, got %v", hits)
	}
}

func TestReportGroupsByPlatform(t *testing.T) {
	p := planned("p", "2024-06-03", "09:00", "fb", "ig")
	p.Status = entry.Published
	f := planned("f", "2024-06-04", "09:00", "ig")
	f.Status = entry.Failed
	old := planned("o", "2024-04-01", "09:00", "fb")
	old.Status = entry.Published
	svc, _ := seeded(t, p, f, old, planned("x", "2024-06-05", "09:00", "fb"))

	report, err := svc.Report(context.Background(), fixedNow, fixedNow.AddDate(0, 0, -14))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Total != 2 || report.Published != 1 || report.Failed != 1 {
		t.Fatalf("unexpected totals: %+v", report)
	}
	if len(report.Sections) != 2 || report.Sections[0].Platform != "fb" || report.Sections[1].Platform != "ig" {
		t.Fatalf("unexpected sections: %+v", report.Sections)
	}
	if report.Sections[1].Published != 1 || report.Sections[1].Failed != 1 {
		t.Fatalf("unexpected ig section: %+v", report.Sections[1])
	}
	if report.SuccessRate() != 0.5 {
		t.Fatalf("expected 0.5 success rate, got %v", report.SuccessRate())
	}
}

func TestReloadDoesNotRestoreStaleSnapshot(t *testing.T) {
	svc, mp := seeded(t, planned("a", "2024-06-10", "09:00", "fb"))
	gated := &gatedPersistence{
		memoryPersistence: mp,
		listed:            make(chan struct{}),
		release:           make(chan struct{}),
	}
	svc.Persistence = gated
	ctx := context.Background()

	reloaded := make(chan error, 1)
	go func() { reloaded <- svc.Reload(ctx) }()
	<-gated.listed

	moved := make(chan error, 1)
	go func() {
		_, err := svc.Move(ctx, "a", entry.MustDate("2024-06-12"))
		moved <- err
	}()
	time.Sleep(20 * time.Millisecond)
	close(gated.release)

	if err := <-reloaded; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if err := <-moved; err != nil {
		t.Fatalf("move: %v", err)
	}
	e, err := svc.Get(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e.CalendarDate.String() != "2024-06-12" {
		t.Fatalf("reload overwrote the move, entry is on %s", e.CalendarDate)
	}
	if got := mp.get("a").CalendarDate.String(); got != "2024-06-12" {
		t.Fatalf("persisted date = %s, want 2024-06-12", got)
	}
}
