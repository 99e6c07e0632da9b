package calendar

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"tableflip.dev/contentcal/pkg/entry"
	"tableflip.dev/contentcal/pkg/store"
)

var june10 = time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)

func newEntry(id, date, slot string, platforms ...string) *entry.Entry {
	e := entry.New("entry "+id, entry.MustDate(date), platforms...)
	e.ID = id
	e.TimeSlot = slot
	return e
}

func TestScenarioSameSlotConflict(t *testing.T) {
	entries := []*entry.Entry{
		newEntry("1", "2024-06-10", "09:00", "fb"),
		newEntry("2", "2024-06-10", "09:00", "fb", "ig"),
	}
	view, err := Build(ViewRequest{Reference: june10, Mode: ModeMonth}, entries, june10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	day, ok := view.Day(entry.MustDate("2024-06-10"))
	if !ok {
		t.Fatalf("expected bucket for 2024-06-10")
	}
	if day.ConflictCount != 2 || !day.HasConflicts {
		t.Fatalf("expected two conflicting entries, got %d", day.ConflictCount)
	}
	for _, e := range day.Events {
		if len(e.Conflicts) != 1 {
			t.Fatalf("expected %s to conflict with one entry, got %v", e.ID, e.Conflicts)
		}
	}
	if view.Conflicts != 2 {
		t.Fatalf("expected view conflict total of 2, got %d", view.Conflicts)
	}
	for _, e := range entries {
		if e.Conflicts != nil {
			t.Fatalf("input entries must not be annotated")
		}
	}
}

func TestSerializedDayKeepsEntryConflicts(t *testing.T) {
	entries := []*entry.Entry{
		newEntry("1", "2024-06-10", "09:00", "fb"),
		newEntry("2", "2024-06-10", "09:00", "fb", "ig"),
		newEntry("3", "2024-06-10", "12:00", "fb"),
	}
	view, err := Build(ViewRequest{Reference: june10, Mode: ModeDay}, entries, june10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, err := json.Marshal(view.Days[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(raw)
	for _, want := range []string{`"conflicts":["2"]`, `"conflicts":["1"]`, `"has_conflicts":true`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
	if strings.Count(out, `"conflicts":`) != 2 {
		t.Fatalf("entries without conflicts must omit the key: %s", out)
	}
}

func TestConflictTrigger(t *testing.T) {
	tests := []struct {
		name string
		a, b *entry.Entry
		want bool
	}{
		{"same everything", newEntry("a", "2024-06-10", "09:00", "fb"), newEntry("b", "2024-06-10", "09:00", "FB"), true},
		{"different slot", newEntry("a", "2024-06-10", "09:00", "fb"), newEntry("b", "2024-06-10", "09:15", "fb"), false},
		{"different platform", newEntry("a", "2024-06-10", "09:00", "fb"), newEntry("b", "2024-06-10", "09:00", "ig"), false},
		{"different date", newEntry("a", "2024-06-10", "09:00", "fb"), newEntry("b", "2024-06-11", "09:00", "fb"), false},
	}
	for _, tt := range tests {
		got := DetectConflicts([]*entry.Entry{tt.a, tt.b})
		_, flagged := got["a"]
		if flagged != tt.want {
			t.Fatalf("%s: expected conflict=%v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestConflictSymmetry(t *testing.T) {
	var entries []*entry.Entry
	slots := []string{"09:00", "12:00"}
	platforms := [][]string{{"fb"}, {"ig"}, {"fb", "ig"}, {"x"}}
	for i := 0; i < 12; i++ {
		entries = append(entries, newEntry(fmt.Sprintf("e%02d", i), "2024-06-10", slots[i%2], platforms[i%4]...))
	}
	conflicts := DetectConflicts(entries)
	for id, others := range conflicts {
		for _, other := range others {
			found := false
			for _, back := range conflicts[other] {
				if back == id {
					found = true
				}
			}
			if !found {
				t.Fatalf("%s lists %s but not the reverse", id, other)
			}
		}
	}
}

func TestBucketPartition(t *testing.T) {
	entries := []*entry.Entry{
		newEntry("in-1", "2024-06-03", "09:00", "fb"),
		newEntry("in-2", "2024-06-30", "10:00", "ig"),
		newEntry("edge", "2024-05-27", "10:00", "ig"),
		newEntry("out", "2024-07-08", "10:00", "ig"),
		newEntry("before", "2024-05-01", "10:00", "ig"),
	}
	view, err := Build(ViewRequest{Reference: june10, Mode: ModeMonth}, entries, june10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := map[string]int{}
	for _, d := range view.Days {
		for _, e := range d.Events {
			if !e.CalendarDate.Equal(d.Date) {
				t.Fatalf("%s bucketed on %s", e.ID, d.Date)
			}
			seen[e.ID]++
		}
	}
	for _, id := range []string{"in-1", "in-2", "edge"} {
		if seen[id] != 1 {
			t.Fatalf("expected %s exactly once, got %d", id, seen[id])
		}
	}
	for _, id := range []string{"out", "before"} {
		if seen[id] != 0 {
			t.Fatalf("expected %s outside the view, got %d", id, seen[id])
		}
	}
	first, _ := view.Day(entry.MustDate("2024-05-27"))
	if first.IsCurrentMonth {
		t.Fatalf("expected May padding day to be outside the current month")
	}
	if len(view.Weeks()) != 5 {
		t.Fatalf("expected 5 week rows, got %d", len(view.Weeks()))
	}
}

func TestBuildAppliesFilters(t *testing.T) {
	a := newEntry("a", "2024-06-10", "09:00", "fb")
	a.Title = "Summer launch"
	b := newEntry("b", "2024-06-10", "09:00", "fb")
	b.Status = entry.Published
	view, err := Build(ViewRequest{
		Reference: june10,
		Mode:      ModeDay,
		Filters:   store.Filter{SearchTerm: "launch", Status: store.All, Platform: "FB"},
	}, []*entry.Entry{a, b}, june10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Days) != 1 || view.Days[0].Len() != 1 {
		t.Fatalf("expected one filtered entry, got %+v", view.Days)
	}
	if view.Days[0].HasConflicts {
		t.Fatalf("filtered-out entries must not cause conflicts")
	}
	if !view.Days[0].IsToday || !view.Days[0].IsCurrentMonth {
		t.Fatalf("expected day view bucket to be today and current")
	}
	if view.Metrics.TotalScheduled != 1 {
		t.Fatalf("expected metrics over filtered set, got %d", view.Metrics.TotalScheduled)
	}
}

func TestBuildAgendaAndConflictsOnly(t *testing.T) {
	entries := []*entry.Entry{
		newEntry("a", "2024-06-11", "09:00", "fb"),
		newEntry("b", "2024-06-11", "09:00", "fb"),
		newEntry("c", "2024-06-14", "09:00", "fb"),
	}
	view, err := Build(ViewRequest{Reference: june10, Mode: ModeAgenda}, entries, june10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Days) != 2 {
		t.Fatalf("expected only busy agenda days, got %d", len(view.Days))
	}
	view, err = Build(ViewRequest{Reference: june10, Mode: ModeWeek}, entries, june10, WithConflictsOnly())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Days) != 1 || view.Days[0].Date.String() != "2024-06-11" {
		t.Fatalf("expected only the conflicting day, got %d days", len(view.Days))
	}
	if !view.ConflictsOnly || view.Weeks() != nil {
		t.Fatalf("conflicts-only views must not be split into weeks")
	}
}

func TestDayFlagsRelativeToToday(t *testing.T) {
	view, err := Build(ViewRequest{Reference: june10, Mode: ModeMonth}, nil, june10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tests := []struct {
		date        string
		past, today bool
	}{
		{"2024-05-27", true, false},
		{"2024-06-09", true, false},
		{"2024-06-10", false, true},
		{"2024-06-11", false, false},
		{"2024-06-30", false, false},
	}
	for _, tt := range tests {
		d, ok := view.Day(entry.MustDate(tt.date))
		if !ok {
			t.Fatalf("expected bucket for %s", tt.date)
		}
		if d.IsPast != tt.past || d.IsToday != tt.today {
			t.Fatalf("%s: past=%v today=%v, want past=%v today=%v", tt.date, d.IsPast, d.IsToday, tt.past, tt.today)
		}
	}
}

func TestBuildInvalidMode(t *testing.T) {
	if _, err := Build(ViewRequest{Reference: june10, Mode: "campaign"}, nil, june10); err == nil {
		t.Fatalf("expected error for campaign mode")
	}
}

func TestBuildMetrics(t *testing.T) {
	published := newEntry("p", "2024-06-01", "09:00", "fb")
	published.Status = entry.Published
	published.ExpectedEngagement = 4
	failed := newEntry("f", "2024-06-05", "09:00", "ig")
	failed.Status = entry.Failed
	failed.ContentType = entry.Video
	failed.ExpectedEngagement = 2
	old := newEntry("o", "2024-01-05", "09:00", "ig")
	old.Status = entry.Published
	cancelled := newEntry("c", "2024-06-10", "09:00", "fb")
	cancelled.Status = entry.Cancelled
	today := newEntry("t", "2024-06-10", "11:00", "fb", "ig")

	entries := []*entry.Entry{published, failed, old, cancelled, today}
	m := BuildMetrics(entries, june10, 4*7*24*time.Hour)
	if m.TotalScheduled != 4 {
		t.Fatalf("expected 4 scheduled, got %d", m.TotalScheduled)
	}
	if m.ScheduledToday != 1 {
		t.Fatalf("expected 1 today, got %d", m.ScheduledToday)
	}
	if m.Published != 1 || m.Failed != 1 || m.SuccessRate != 0.5 {
		t.Fatalf("unexpected window outcomes: %d/%d %.2f", m.Published, m.Failed, m.SuccessRate)
	}
	if m.AverageEngagement != 3 {
		t.Fatalf("expected average engagement 3, got %v", m.AverageEngagement)
	}
	if m.ByPlatform["fb"] != 3 || m.ByPlatform["ig"] != 3 {
		t.Fatalf("unexpected platform counts: %v", m.ByPlatform)
	}
	if m.ByContentType[entry.Video] != 1 || m.ByContentType[entry.Post] != 4 {
		t.Fatalf("unexpected content counts: %v", m.ByContentType)
	}

	all := BuildMetrics(entries, june10, 0)
	if all.Published != 2 || all.SuccessRate < 0.66 || all.SuccessRate > 0.67 {
		t.Fatalf("expected unbounded window to include old entry, got %d %.2f", all.Published, all.SuccessRate)
	}

	empty := BuildMetrics(nil, june10, 0)
	if empty.SuccessRate != 0 || empty.TotalScheduled != 0 {
		t.Fatalf("expected zero metrics, got %+v", empty)
	}
}
