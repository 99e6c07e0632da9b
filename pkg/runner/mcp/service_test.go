package mcp

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/entry"
	"tableflip.dev/contentcal/pkg/store"
)

func newTestService(entries ...*entry.Entry) *Service {
	return NewService(&app.Service{
		Store: store.NewStore(entries...),
		Now:   func() time.Time { return time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC) },
	})
}

func scheduled(id, date, slot string, platforms ...string) *entry.Entry {
	e := entry.New("Post "+id, entry.MustDate(date), platforms...)
	e.ID = id
	e.TimeSlot = slot
	e.Version = 1
	return e
}

func TestServiceCreateEntryDefaults(t *testing.T) {
	svc := newTestService()
	dto, err := svc.CreateEntry(context.Background(), app.NewEntry{
		Title:        "Launch day",
		CalendarDate: entry.MustDate("2024-06-12"),
	})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if dto.ID == "" {
		t.Fatalf("expected generated id")
	}
	if dto.Status != string(entry.Planned) || dto.TimeSlot != "09:00" {
		t.Fatalf("unexpected defaults: %s %s", dto.Status, dto.TimeSlot)
	}
	if dto.CalendarDate != "2024-06-12" {
		t.Fatalf("unexpected date %s", dto.CalendarDate)
	}
	if dto.Conflicts == nil {
		t.Fatalf("expected empty conflicts list, not null")
	}
}

func TestServiceViewAnnotatesConflicts(t *testing.T) {
	svc := newTestService(
		scheduled("1", "2024-06-10", "09:00", "fb"),
		scheduled("2", "2024-06-10", "09:00", "fb", "ig"),
	)
	view, err := svc.View(context.Background(), ViewOptions{Reference: "2024-06-10", Mode: "week"})
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if view.Start != "2024-06-10" || view.End != "2024-06-16" || len(view.Days) != 7 {
		t.Fatalf("unexpected week %s..%s (%d days)", view.Start, view.End, len(view.Days))
	}
	if view.Days[0].ConflictCount != 2 || len(view.Days[0].Events[0].Conflicts) != 1 {
		t.Fatalf("expected both entries flagged, got %+v", view.Days[0])
	}
	if _, err := svc.View(context.Background(), ViewOptions{Mode: "campaign"}); err == nil {
		t.Fatalf("expected error for unsupported mode")
	}
}

func TestServiceMoveEntry(t *testing.T) {
	svc := newTestService(scheduled("1", "2024-06-10", "09:00", "fb"))
	dto, err := svc.MoveEntry(context.Background(), "1", "2024-06-20", 1)
	if err != nil {
		t.Fatalf("MoveEntry failed: %v", err)
	}
	if dto.CalendarDate != "2024-06-20" || dto.Version != 2 {
		t.Fatalf("unexpected moved entry %+v", dto)
	}
	if _, err := svc.MoveEntry(context.Background(), "1", "20/06/2024", 0); !app.IsValidation(err) {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}
	if _, err := svc.MoveEntry(context.Background(), "nope", "2024-06-20", 0); !app.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceDayAndSearch(t *testing.T) {
	svc := newTestService(
		scheduled("1", "2024-06-10", "09:00", "fb"),
		scheduled("2", "2024-06-11", "10:00", "ig"),
	)
	day, err := svc.Day(context.Background(), "2024-06-11")
	if err != nil {
		t.Fatalf("Day failed: %v", err)
	}
	if len(day.Events) != 1 || day.Events[0].ID != "2" || day.Weekday != "Tuesday" {
		t.Fatalf("unexpected day %+v", day)
	}

	results := svc.SearchEntries(context.Background(), store.Filter{Platform: "IG"}, 10)
	if len(results) != 1 || results[0].ID != "2" {
		t.Fatalf("unexpected search results %+v", results)
	}
}

func TestServiceCheckConflicts(t *testing.T) {
	svc := newTestService(scheduled("1", "2024-06-10", "09:00", "fb"))
	hits, err := svc.CheckConflicts(context.Background(), "2024-06-10", "09:00", []string{"fb"})
	if err != nil {
		t.Fatalf("CheckConflicts failed: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "1" {
		t.Fatalf("expected conflict with 1, got %+v", hits)
	}
	hits, err = svc.CheckConflicts(context.Background(), "2024-06-10", "09:30", []string{"fb"})
	if err != nil || len(hits) != 0 {
		t.Fatalf("expected no conflicts at 09:30, got %+v (%v)", hits, err)
	}
}
