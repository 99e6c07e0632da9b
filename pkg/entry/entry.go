// Package entry defines the scheduled content entries kept in the calendar.
package entry

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	// DefaultTimeSlot is applied to entries created without a slot.
	DefaultTimeSlot = "09:00"
	// DefaultTitle is applied to entries created without a title.
	DefaultTitle = "Untitled"
)

// New returns a planned entry for the given day with the package defaults
// applied. The ID is left empty for the caller to assign.
func New(title string, on Date, platforms ...string) *Entry {
	return &Entry{
		Title:           title,
		CalendarDate:    on,
		TimeSlot:        DefaultTimeSlot,
		ContentType:     Post,
		TargetPlatforms: NormalizePlatforms(platforms),
		Status:          Planned,
		Priority:        Medium,
	}
}

// Entry is one scheduled piece of content.
type Entry struct {
	ID             string `json:"id"`
	Title          string `json:"title" validate:"required"`
	Description    string `json:"description,omitempty"`
	ContentPreview string `json:"content_preview,omitempty"`

	CalendarDate Date   `json:"calendar_date"`
	TimeSlot     string `json:"time_slot" validate:"required,timeslot"`

	ContentType     ContentType `json:"content_type" validate:"required"`
	TargetPlatforms []string    `json:"target_platforms" validate:"required,min=1,dive,required"`
	Status          Status      `json:"status" validate:"required"`
	Priority        Priority    `json:"priority" validate:"required"`

	AutoGenerated      bool    `json:"auto_generated,omitempty"`
	IsRecurring        bool    `json:"is_recurring,omitempty"`
	RecurringPattern   string  `json:"recurring_pattern,omitempty"`
	ParentCalendarID   string  `json:"parent_calendar_id,omitempty"`
	ExpectedEngagement float64 `json:"expected_engagement,omitempty" validate:"gte=0"`

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Conflicts is computed per render; stores clear it before saving.
	Conflicts []string `json:"conflicts,omitempty"`
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	cp.TargetPlatforms = append([]string(nil), e.TargetPlatforms...)
	if e.Conflicts != nil {
		cp.Conflicts = append([]string(nil), e.Conflicts...)
	}
	return &cp
}

// HasPlatform reports whether the entry targets the platform, ignoring case.
func (e *Entry) HasPlatform(platform string) bool {
	platform = strings.ToLower(strings.TrimSpace(platform))
	for _, p := range e.TargetPlatforms {
		if strings.ToLower(p) == platform {
			return true
		}
	}
	return false
}

// HasConflicts reports whether the last render flagged this entry.
func (e *Entry) HasConflicts() bool {
	return len(e.Conflicts) > 0
}

// Touch bumps the version and update time after a mutation.
func (e *Entry) Touch(now time.Time) {
	e.Version++
	e.UpdatedAt = now
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s %s %s %s", e.CalendarDate, e.TimeSlot, e.Status.Glyph(), e.Title)
}

// NormalizePlatforms lower-cases and trims platform identifiers, dropping
// blanks and duplicates while keeping the first-seen order.
func NormalizePlatforms(platforms []string) []string {
	out := make([]string, 0, len(platforms))
	seen := make(map[string]struct{}, len(platforms))
	for _, p := range platforms {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Sort orders entries by date, time slot, title and finally ID.
func Sort(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		left, right := entries[i], entries[j]
		if left == nil || right == nil {
			return left != nil
		}
		if !left.CalendarDate.Equal(right.CalendarDate) {
			return left.CalendarDate.Before(right.CalendarDate)
		}
		if left.TimeSlot != right.TimeSlot {
			return left.TimeSlot < right.TimeSlot
		}
		if left.Title != right.Title {
			return left.Title < right.Title
		}
		return left.ID < right.ID
	})
}
