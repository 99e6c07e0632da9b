package app

import (
	"tableflip.dev/contentcal/pkg/entry"
)

// NewEntry is the input to Create. Enum fields are raw strings so CLI flags
// and tool arguments can pass them through; empty values take defaults.
type NewEntry struct {
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	ContentPreview     string     `json:"content_preview,omitempty"`
	CalendarDate       entry.Date `json:"calendar_date"`
	TimeSlot           string     `json:"time_slot,omitempty"`
	ContentType        string     `json:"content_type,omitempty"`
	TargetPlatforms    []string   `json:"target_platforms,omitempty"`
	Status             string     `json:"status,omitempty"`
	Priority           string     `json:"priority,omitempty"`
	AutoGenerated      bool       `json:"auto_generated,omitempty"`
	IsRecurring        bool       `json:"is_recurring,omitempty"`
	RecurringPattern   string     `json:"recurring_pattern,omitempty"`
	ParentCalendarID   string     `json:"parent_calendar_id,omitempty"`
	ExpectedEngagement float64    `json:"expected_engagement,omitempty"`
}

// MoveCommand asks for an entry to be rescheduled. UIs produce these from
// drag and drop; Version, when set, must match the entry's current version.
type MoveCommand struct {
	EntryID    string     `json:"entry_id"`
	TargetDate entry.Date `json:"target_date"`
	Version    int        `json:"version,omitempty"`
}

// BulkResult holds the entries a bulk update changed and the ids it skipped.
type BulkResult struct {
	Updated []*entry.Entry    `json:"updated"`
	Skipped []string          `json:"skipped"`
	Errors  map[string]string `json:"errors,omitempty"`
}
