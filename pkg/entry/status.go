package entry

import (
	"fmt"
	"strings"

	"tableflip.dev/contentcal/pkg/glyph"
)

// Status is the lifecycle state of an entry.
type Status string

const (
	Planned    Status = "planned"
	InProgress Status = "in_progress"
	Ready      Status = "ready"
	Scheduled  Status = "scheduled"
	Published  Status = "published"
	Cancelled  Status = "cancelled"
	Failed     Status = "failed"
)

// AllStatuses returns the statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Planned, InProgress, Ready, Scheduled, Published, Cancelled, Failed}
}

// ParseStatus converts a string to a Status or returns an error for unknown values.
func ParseStatus(raw string) (Status, error) {
	s := Status(normalizeEnum(raw))
	for _, candidate := range AllStatuses() {
		if candidate == s {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("entry: unknown status %q", raw)
}

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool {
	switch s {
	case Published, Cancelled, Failed:
		return true
	}
	return false
}

// rank is the position along the main chain; -1 for off-chain states.
func (s Status) rank() int {
	switch s {
	case Planned:
		return 0
	case InProgress:
		return 1
	case Ready:
		return 2
	case Scheduled:
		return 3
	case Published:
		return 4
	}
	return -1
}

// CanTransition reports whether moving from s to next follows the lifecycle:
// forward along planned → in_progress → ready → scheduled → published, or to
// cancelled/failed from any non-terminal state.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	if s.Terminal() {
		return false
	}
	switch next {
	case Cancelled, Failed:
		return true
	}
	from, to := s.rank(), next.rank()
	return from >= 0 && to > from
}

// Glyph returns the legend symbol for the status.
func (s Status) Glyph() glyph.Glyph {
	return glyph.ForStatus(string(s))
}

// ContentType is the closed set of content formats.
type ContentType string

const (
	Post     ContentType = "post"
	Story    ContentType = "story"
	Video    ContentType = "video"
	Email    ContentType = "email"
	Ad       ContentType = "ad"
	Campaign ContentType = "campaign"
)

// AllContentTypes returns every supported content type.
func AllContentTypes() []ContentType {
	return []ContentType{Post, Story, Video, Email, Ad, Campaign}
}

// ParseContentType converts a string to a ContentType.
func ParseContentType(raw string) (ContentType, error) {
	t := ContentType(normalizeEnum(raw))
	for _, candidate := range AllContentTypes() {
		if candidate == t {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("entry: unknown content type %q", raw)
}

// Glyph returns the legend symbol for the content type.
func (c ContentType) Glyph() glyph.Glyph {
	return glyph.ForContentType(string(c))
}

// Priority only affects display.
type Priority string

const (
	Low    Priority = "low"
	Medium Priority = "medium"
	High   Priority = "high"
	Urgent Priority = "urgent"
)

// AllPriorities returns priorities from lowest to highest.
func AllPriorities() []Priority {
	return []Priority{Low, Medium, High, Urgent}
}

// ParsePriority converts a string to a Priority.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(normalizeEnum(raw))
	for _, candidate := range AllPriorities() {
		if candidate == p {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("entry: unknown priority %q", raw)
}

// Glyph returns the signifier shown next to the entry.
func (p Priority) Glyph() glyph.Glyph {
	return glyph.ForPriority(string(p))
}

func normalizeEnum(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	return strings.ReplaceAll(strings.ReplaceAll(v, "-", "_"), " ", "_")
}
