// Package tui is the interactive month calendar. Entries can be picked on one
// day and dropped on another, which reschedules them through a move command.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/entry"
)

// Builder renders a calendar view; app.Service.View satisfies it.
type Builder func(ctx context.Context, req calendar.ViewRequest, opts ...calendar.Option) (calendar.View, error)

// Dispatcher applies a move; app.Service.Dispatch satisfies it.
type Dispatcher func(ctx context.Context, cmd app.MoveCommand) (*entry.Entry, error)

type viewLoadedMsg struct {
	view calendar.View
	err  error
}

type movedMsg struct {
	entry *entry.Entry
	err   error
}

type keyMap struct {
	Left, Right, Up, Down key.Binding
	Next, Prev, Today     key.Binding
	Cycle, Pick, Cancel   key.Binding
	Quit                  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Left:   key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "prev day")),
		Right:  key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "next day")),
		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "prev week")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "next week")),
		Next:   key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next month")),
		Prev:   key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "prev month")),
		Today:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Cycle:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next entry")),
		Pick:   key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter", "pick/drop")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) short() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Next, k.Prev, k.Cycle, k.Pick, k.Cancel, k.Quit}
}

// Model is the bubbletea model for the calendar.
type Model struct {
	ctx      context.Context
	build    Builder
	dispatch Dispatcher
	now      func() time.Time

	req    calendar.ViewRequest
	view   calendar.View
	cursor entry.Date
	index  int
	picked *entry.Entry

	status string
	err    error

	width  int
	height int
	keys   keyMap
	help   help.Model
	styles Styles
}

// New returns a model positioned on the reference day of req.
func New(ctx context.Context, build Builder, dispatch Dispatcher, req calendar.ViewRequest) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	req.Mode = calendar.ModeMonth
	m := &Model{
		ctx:      ctx,
		build:    build,
		dispatch: dispatch,
		now:      time.Now,
		req:      req,
		keys:     defaultKeys(),
		help:     help.New(),
		styles:   DefaultStyles(),
	}
	if m.req.Reference.IsZero() {
		m.req.Reference = m.now()
	}
	m.cursor = entry.DateOf(m.req.Reference)
	return m
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init loads the first view.
func (m *Model) Init() tea.Cmd { return m.load() }

// Cursor is the selected day.
func (m *Model) Cursor() entry.Date { return m.cursor }

// Picked is the entry being carried, or nil.
func (m *Model) Picked() *entry.Entry { return m.picked }

// Update handles keys and the results of view loads and moves.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case viewLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.view = msg.view
		m.clampIndex()
		return m, nil

	case movedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("moved %q to %s", msg.entry.Title, msg.entry.CalendarDate)
		return m, m.load()

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		return m, m.moveCursor(m.cursor.AddDays(-1))
	case key.Matches(msg, m.keys.Right):
		return m, m.moveCursor(m.cursor.AddDays(1))
	case key.Matches(msg, m.keys.Up):
		return m, m.moveCursor(m.cursor.AddDays(-7))
	case key.Matches(msg, m.keys.Down):
		return m, m.moveCursor(m.cursor.AddDays(7))
	case key.Matches(msg, m.keys.Next):
		return m, m.moveCursor(entry.DateOf(m.cursor.AddDate(0, 1, 0)))
	case key.Matches(msg, m.keys.Prev):
		return m, m.moveCursor(entry.DateOf(m.cursor.AddDate(0, -1, 0)))
	case key.Matches(msg, m.keys.Today):
		return m, m.moveCursor(entry.DateOf(m.now()))
	case key.Matches(msg, m.keys.Cycle):
		if n := len(m.dayEvents()); n > 0 {
			m.index = (m.index + 1) % n
		}
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		if m.picked != nil {
			m.status = "move cancelled"
			m.picked = nil
		}
		return m, nil
	case key.Matches(msg, m.keys.Pick):
		return m, m.pickOrDrop()
	}
	return m, nil
}

// moveCursor selects date, reloading the view when it falls in another month.
func (m *Model) moveCursor(date entry.Date) tea.Cmd {
	sameMonth := date.SameMonth(m.req.Reference)
	m.cursor = date
	m.index = 0
	if sameMonth {
		return nil
	}
	m.req.Reference = date.Time
	return m.load()
}

func (m *Model) pickOrDrop() tea.Cmd {
	if m.picked == nil {
		events := m.dayEvents()
		if len(events) == 0 {
			m.status = "nothing to pick on " + m.cursor.String()
			return nil
		}
		m.picked = events[m.index]
		m.status = fmt.Sprintf("carrying %q, choose a day", m.picked.Title)
		return nil
	}

	picked := m.picked
	m.picked = nil
	if picked.CalendarDate.Equal(m.cursor) {
		m.status = "dropped on the same day"
		return nil
	}
	if m.dispatch == nil {
		m.err = fmt.Errorf("moves are not enabled")
		return nil
	}
	cmd := app.MoveCommand{EntryID: picked.ID, TargetDate: m.cursor, Version: picked.Version}
	ctx, dispatch := m.ctx, m.dispatch
	return func() tea.Msg {
		moved, err := dispatch(ctx, cmd)
		return movedMsg{entry: moved, err: err}
	}
}

func (m *Model) load() tea.Cmd {
	if m.build == nil {
		return nil
	}
	ctx, build, req := m.ctx, m.build, m.req
	return func() tea.Msg {
		v, err := build(ctx, req)
		return viewLoadedMsg{view: v, err: err}
	}
}

func (m *Model) dayEvents() []*entry.Entry {
	d, ok := m.view.Day(m.cursor)
	if !ok {
		return nil
	}
	return d.Events
}

func (m *Model) clampIndex() {
	if n := len(m.dayEvents()); m.index >= n {
		m.index = 0
	}
}

// View draws the month grid, the selected day and the key help.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render(m.req.Reference.Format("January 2006")))
	b.WriteString("\n")
	b.WriteString(m.grid())
	b.WriteString("\n\n")
	b.WriteString(m.dayPanel())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.styles.Error.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.ShortHelpView(m.keys.short()))
	return b.String()
}

func (m *Model) grid() string {
	lines := []string{m.styles.Header.Render("Mo  Tu  We  Th  Fr  Sa  Su")}
	for _, week := range m.view.Weeks() {
		cells := make([]string, 0, len(week))
		for _, d := range week {
			cells = append(cells, m.cell(d))
		}
		lines = append(lines, strings.Join(cells, ""))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) cell(d calendar.Day) string {
	marker := " "
	switch {
	case d.HasConflicts:
		marker = "!"
	case len(d.Events) > 0:
		marker = "*"
	}
	text := fmt.Sprintf("%2d%s", d.Date.Day(), marker)

	style := m.styles.Empty
	switch {
	case !d.IsCurrentMonth:
		style = m.styles.Outside
	case d.HasConflicts:
		style = m.styles.Conflict
	case len(d.Events) > 0:
		style = m.styles.Busy
	}
	if d.IsToday {
		style = style.Inherit(m.styles.Today)
	}
	if d.Date.Equal(m.cursor) {
		style = m.styles.Cursor.Inherit(style)
	}
	return style.Render(text) + " "
}

func (m *Model) dayPanel() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render(m.cursor.Format("Monday, Jan 2")))
	events := m.dayEvents()
	if len(events) == 0 {
		b.WriteString("\n  " + m.styles.Empty.Render("no content scheduled"))
	}
	width := m.width - 6
	if width < 20 {
		width = 60
	}
	for i, e := range events {
		pointer := "  "
		if i == m.index {
			pointer = "> "
		}
		line := fmt.Sprintf("%s %s %s %s", e.TimeSlot, e.Status.Glyph(), e.Title, strings.Join(e.TargetPlatforms, ","))
		line = truncate.StringWithTail(line, uint(width), "…")
		if e.HasConflicts() {
			line = m.styles.Conflict.Render(line + " !")
		}
		b.WriteString("\n" + pointer + line)
	}
	if m.picked != nil {
		b.WriteString("\n" + m.styles.Picked.Render(fmt.Sprintf("carrying: %s (from %s)", m.picked.Title, m.picked.CalendarDate)))
	}
	return b.String()
}
