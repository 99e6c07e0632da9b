// Package mcp provides the Model Context Protocol server integration for
// contentcal.
package mcp

import (
	"context"
	"errors"
	"strings"
	"time"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/entry"
	"tableflip.dev/contentcal/pkg/store"
)

// Service adapts the calendar gateway to transport-friendly DTOs shared by
// MCP tools and resources.
type Service struct {
	App *app.Service
}

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	ContentPreview     string   `json:"content_preview,omitempty"`
	CalendarDate       string   `json:"calendar_date"`
	TimeSlot           string   `json:"time_slot"`
	ContentType        string   `json:"content_type"`
	ContentSymbol      string   `json:"content_symbol"`
	TargetPlatforms    []string `json:"target_platforms"`
	Status             string   `json:"status"`
	StatusSymbol       string   `json:"status_symbol"`
	Priority           string   `json:"priority"`
	AutoGenerated      bool     `json:"auto_generated"`
	IsRecurring        bool     `json:"is_recurring"`
	RecurringPattern   string   `json:"recurring_pattern,omitempty"`
	ParentCalendarID   string   `json:"parent_calendar_id,omitempty"`
	ExpectedEngagement float64  `json:"expected_engagement"`
	Version            int      `json:"version"`
	Conflicts          []string `json:"conflicts"`
	Created            string   `json:"created,omitempty"`
	Updated            string   `json:"updated,omitempty"`
}

// DayDTO is one calendar bucket.
type DayDTO struct {
	Date           string     `json:"date"`
	Weekday        string     `json:"weekday"`
	IsCurrentMonth bool       `json:"is_current_month"`
	IsToday        bool       `json:"is_today"`
	IsPast         bool       `json:"is_past"`
	HasConflicts   bool       `json:"has_conflicts"`
	ConflictCount  int        `json:"conflict_count"`
	Events         []EntryDTO `json:"events"`
}

// ViewDTO is the rendered calendar view model.
type ViewDTO struct {
	Mode      string           `json:"mode"`
	Reference string           `json:"reference"`
	Start     string           `json:"start"`
	End       string           `json:"end"`
	DayCount  int              `json:"day_count"`
	Filters   store.Filter     `json:"filters"`
	Days      []DayDTO         `json:"days"`
	Metrics   calendar.Metrics `json:"metrics"`
	Conflicts int              `json:"conflicts"`
}

// ViewOptions are the inputs of the view_calendar tool.
type ViewOptions struct {
	Reference     string `json:"reference"`
	Mode          string `json:"mode"`
	Search        string `json:"search"`
	Status        string `json:"status"`
	Platform      string `json:"platform"`
	ConflictsOnly bool   `json:"conflicts_only"`
}

// NewService builds a service wrapper around the gateway.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// View builds a calendar view.
func (s *Service) View(ctx context.Context, opts ViewOptions) (*ViewDTO, error) {
	if s.App == nil {
		return nil, errors.New("calendar is not configured")
	}
	mode, err := calendar.ParseViewMode(opts.Mode)
	if err != nil {
		return nil, err
	}
	req := calendar.ViewRequest{
		Mode: mode,
		Filters: store.Filter{
			SearchTerm: opts.Search,
			Status:     opts.Status,
			Platform:   opts.Platform,
		},
	}
	if ref := strings.TrimSpace(opts.Reference); ref != "" {
		day, err := entry.ParseDate(ref)
		if err != nil {
			return nil, errors.New("reference must be YYYY-MM-DD")
		}
		req.Reference = day.Time
	}
	var extra []calendar.Option
	if opts.ConflictsOnly {
		extra = append(extra, calendar.WithConflictsOnly())
	}
	view, err := s.App.View(ctx, req, extra...)
	if err != nil {
		return nil, err
	}
	dto := toViewDTO(view)
	return &dto, nil
}

// Day returns the bucket for one date, with conflicts annotated.
func (s *Service) Day(ctx context.Context, date string) (*DayDTO, error) {
	day, err := entry.ParseDate(date)
	if err != nil {
		return nil, errors.New("date must be YYYY-MM-DD")
	}
	view, err := s.App.View(ctx, calendar.ViewRequest{Reference: day.Time, Mode: calendar.ModeDay})
	if err != nil {
		return nil, err
	}
	if len(view.Days) == 0 {
		return nil, errors.New("no bucket for date")
	}
	dto := toDayDTO(view.Days[0])
	return &dto, nil
}

// CreateEntry stores a new entry.
func (s *Service) CreateEntry(ctx context.Context, in app.NewEntry) (*EntryDTO, error) {
	e, err := s.App.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// MoveEntry reschedules an entry.
func (s *Service) MoveEntry(ctx context.Context, id, date string, version int) (*EntryDTO, error) {
	day, err := entry.ParseDate(date)
	if err != nil {
		return nil, &app.ValidationError{Field: "target_date", Reason: "must be YYYY-MM-DD"}
	}
	e, err := s.App.Dispatch(ctx, app.MoveCommand{EntryID: id, TargetDate: day, Version: version})
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// BulkResultDTO is the tool-facing shape of a bulk status update.
type BulkResultDTO struct {
	Updated []EntryDTO        `json:"updated"`
	Skipped []string          `json:"skipped"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// BulkUpdateStatus sets status on many entries.
func (s *Service) BulkUpdateStatus(ctx context.Context, ids []string, status string) (*BulkResultDTO, error) {
	res, err := s.App.BulkUpdateStatus(ctx, ids, status)
	if err != nil {
		return nil, err
	}
	return &BulkResultDTO{
		Updated: toDTOs(res.Updated),
		Skipped: res.Skipped,
		Errors:  res.Errors,
	}, nil
}

// TransitionEntry applies a lifecycle transition.
func (s *Service) TransitionEntry(ctx context.Context, id, status string, version int) (*EntryDTO, error) {
	e, err := s.App.Transition(ctx, id, status, version)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// EntryByID locates an entry by id.
func (s *Service) EntryByID(ctx context.Context, id string) (*EntryDTO, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("id is required")
	}
	e, err := s.App.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// ListAllEntries returns every entry in date order.
func (s *Service) ListAllEntries(ctx context.Context) []EntryDTO {
	return toDTOs(s.App.Entries(ctx, store.Filter{}))
}

// SearchEntries applies the calendar filter and caps the result size.
func (s *Service) SearchEntries(ctx context.Context, f store.Filter, limit int) []EntryDTO {
	if limit <= 0 {
		limit = 20
	}
	all := s.App.Entries(ctx, f)
	if len(all) > limit {
		all = all[:limit]
	}
	return toDTOs(all)
}

// CheckConflicts lists the entries a new entry at date/slot would collide with.
func (s *Service) CheckConflicts(ctx context.Context, date, slot string, platforms []string) ([]EntryDTO, error) {
	day, err := entry.ParseDate(date)
	if err != nil {
		return nil, &app.ValidationError{Field: "calendar_date", Reason: "must be YYYY-MM-DD"}
	}
	hits, err := s.App.CheckSlot(ctx, day, slot, platforms)
	if err != nil {
		return nil, err
	}
	return toDTOs(hits), nil
}

func toViewDTO(v calendar.View) ViewDTO {
	days := make([]DayDTO, 0, len(v.Days))
	for _, d := range v.Days {
		days = append(days, toDayDTO(d))
	}
	return ViewDTO{
		Mode:      string(v.Request.Mode),
		Reference: entry.DateOf(v.Request.Reference).String(),
		Start:     v.Range.Start.String(),
		End:       v.Range.End.String(),
		DayCount:  v.Range.DayCount,
		Filters:   v.Request.Filters,
		Days:      days,
		Metrics:   v.Metrics,
		Conflicts: v.Conflicts,
	}
}

func toDayDTO(d calendar.Day) DayDTO {
	return DayDTO{
		Date:           d.Date.String(),
		Weekday:        d.Date.Weekday().String(),
		IsCurrentMonth: d.IsCurrentMonth,
		IsToday:        d.IsToday,
		IsPast:         d.IsPast,
		HasConflicts:   d.HasConflicts,
		ConflictCount:  d.ConflictCount,
		Events:         toDTOs(d.Events),
	}
}

func toDTOs(entries []*entry.Entry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		out = append(out, toDTO(e))
	}
	return out
}

func toDTO(e *entry.Entry) EntryDTO {
	conflicts := e.Conflicts
	if conflicts == nil {
		conflicts = []string{}
	}
	return EntryDTO{
		ID:                 e.ID,
		Title:              e.Title,
		Description:        e.Description,
		ContentPreview:     e.ContentPreview,
		CalendarDate:       e.CalendarDate.String(),
		TimeSlot:           e.TimeSlot,
		ContentType:        string(e.ContentType),
		ContentSymbol:      e.ContentType.Glyph().Symbol,
		TargetPlatforms:    append([]string(nil), e.TargetPlatforms...),
		Status:             string(e.Status),
		StatusSymbol:       e.Status.Glyph().Symbol,
		Priority:           string(e.Priority),
		AutoGenerated:      e.AutoGenerated,
		IsRecurring:        e.IsRecurring,
		RecurringPattern:   e.RecurringPattern,
		ParentCalendarID:   e.ParentCalendarID,
		ExpectedEngagement: e.ExpectedEngagement,
		Version:            e.Version,
		Conflicts:          conflicts,
		Created:            formatTime(e.CreatedAt),
		Updated:            formatTime(e.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
