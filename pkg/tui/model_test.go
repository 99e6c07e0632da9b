package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/entry"
)

type harness struct {
	entries  []*entry.Entry
	today    time.Time
	builds   int
	commands []app.MoveCommand
	failMove error
}

func (h *harness) build(_ context.Context, req calendar.ViewRequest, opts ...calendar.Option) (calendar.View, error) {
	h.builds++
	return calendar.Build(req, h.entries, h.today, opts...)
}

func (h *harness) dispatch(_ context.Context, cmd app.MoveCommand) (*entry.Entry, error) {
	if h.failMove != nil {
		return nil, h.failMove
	}
	h.commands = append(h.commands, cmd)
	for _, e := range h.entries {
		if e.ID == cmd.EntryID {
			e.CalendarDate = cmd.TargetDate
			e.Version++
			return e.Clone(), nil
		}
	}
	return nil, &app.NotFoundError{ID: cmd.EntryID}
}

func newHarness(t *testing.T) (*harness, *Model) {
	t.Helper()
	launch := entry.New("Launch post", entry.MustDate("2024-06-10"), "facebook")
	launch.ID = "launch"
	launch.Version = 3
	h := &harness{
		entries: []*entry.Entry{launch},
		today:   time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC),
	}
	m := New(context.Background(), h.build, h.dispatch, calendar.ViewRequest{Reference: h.today})
	m.now = func() time.Time { return h.today }
	run(t, m, m.Init())
	return h, m
}

// run executes cmd synchronously and feeds the resulting message back.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		_, cmd = m.Update(msg)
	}
}

func press(t *testing.T, m *Model, keys ...string) {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyPressMsg
		switch k {
		case "enter":
			msg = tea.KeyPressMsg{Code: tea.KeyEnter}
		case "esc":
			msg = tea.KeyPressMsg{Code: tea.KeyEscape}
		case "right":
			msg = tea.KeyPressMsg{Code: tea.KeyRight}
		default:
			r := []rune(k)[0]
			msg = tea.KeyPressMsg{Code: r, Text: k}
		}
		_, cmd := m.Update(msg)
		run(t, m, cmd)
	}
}

func TestNavigation(t *testing.T) {
	h, m := newHarness(t)
	if got := m.Cursor().String(); got != "2024-06-10" {
		t.Fatalf("cursor = %s, want 2024-06-10", got)
	}

	press(t, m, "l", "right", "j")
	if got := m.Cursor().String(); got != "2024-06-19" {
		t.Fatalf("cursor after l,right,j = %s, want 2024-06-19", got)
	}
	if h.builds != 1 {
		t.Fatalf("builds = %d, staying in the month must not reload", h.builds)
	}

	press(t, m, "n")
	if got := m.Cursor().String(); got != "2024-07-19" {
		t.Fatalf("cursor after n = %s, want 2024-07-19", got)
	}
	if h.builds != 2 {
		t.Fatalf("builds = %d, paging must reload", h.builds)
	}

	press(t, m, "t")
	if got := m.Cursor().String(); got != "2024-06-10" {
		t.Fatalf("cursor after t = %s, want 2024-06-10", got)
	}
}

func TestPickAndDropDispatchesMove(t *testing.T) {
	h, m := newHarness(t)

	press(t, m, "enter")
	if m.Picked() == nil || m.Picked().ID != "launch" {
		t.Fatalf("picked = %v, want launch", m.Picked())
	}

	press(t, m, "l", "l", "enter")
	if len(h.commands) != 1 {
		t.Fatalf("dispatched %d commands, want 1", len(h.commands))
	}
	got := h.commands[0]
	if got.EntryID != "launch" || got.TargetDate.String() != "2024-06-12" || got.Version != 3 {
		t.Fatalf("command = %+v", got)
	}
	if m.Picked() != nil {
		t.Fatalf("drop must release the entry")
	}

	day, ok := m.view.Day(entry.MustDate("2024-06-12"))
	if !ok || len(day.Events) != 1 {
		t.Fatalf("view was not rebuilt after the move: %+v", day)
	}
	if !strings.Contains(m.View(), "moved \"Launch post\" to 2024-06-12") {
		t.Fatalf("status missing from view:\n%s", m.View())
	}
}

func TestDropOnSameDayIsNoop(t *testing.T) {
	h, m := newHarness(t)
	press(t, m, "enter", "enter")
	if len(h.commands) != 0 {
		t.Fatalf("same-day drop dispatched %v", h.commands)
	}
}

func TestCancelPick(t *testing.T) {
	h, m := newHarness(t)
	press(t, m, "enter", "esc", "l", "enter")
	if len(h.commands) != 0 {
		t.Fatalf("cancelled pick dispatched %v", h.commands)
	}
	if m.Picked() != nil {
		t.Fatalf("picking an empty day must not carry anything")
	}
}

func TestMoveErrorIsShown(t *testing.T) {
	h, m := newHarness(t)
	h.failMove = &app.VersionConflictError{ID: "launch", Expected: 3, Actual: 4}
	press(t, m, "enter", "l", "enter")
	if !strings.Contains(m.View(), "error:") {
		t.Fatalf("expected error line in view:\n%s", m.View())
	}
}

func TestViewMarksBusyDay(t *testing.T) {
	_, m := newHarness(t)
	out := stripANSI(m.View())
	if !strings.Contains(out, "June 2024") {
		t.Fatalf("missing month title:\n%s", out)
	}
	if !strings.Contains(out, "10*") {
		t.Fatalf("busy marker missing:\n%s", out)
	}
	if !strings.Contains(out, "Launch post") {
		t.Fatalf("day panel missing entry:\n%s", out)
	}
}

func TestViewMarksConflictDay(t *testing.T) {
	h, m := newHarness(t)
	clash := entry.New("Clash", entry.MustDate("2024-06-12"), "facebook")
	clash.ID = "clash"
	other := entry.New("Other", entry.MustDate("2024-06-12"), "facebook")
	other.ID = "other"
	h.entries = append(h.entries, clash, other)
	run(t, m, m.Init())

	out := stripANSI(m.View())
	if !strings.Contains(out, "12!") {
		t.Fatalf("conflict marker missing:\n%s", out)
	}
	busy, clashing := strings.Index(out, "10*"), strings.Index(out, "12!")
	if busy < 0 || busy > clashing || strings.Contains(out[busy:clashing], "\n") {
		t.Fatalf("10th and 12th must share a week row:\n%s", out)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
