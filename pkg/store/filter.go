package store

import (
	"strings"

	"tableflip.dev/contentcal/pkg/entry"
)

// All is the wildcard value for Filter.Status and Filter.Platform.
const All = "all"

// Filter selects entries. The three conditions are ANDed; empty values and
// "all" match everything.
type Filter struct {
	SearchTerm string `json:"search_term,omitempty"`
	Status     string `json:"status,omitempty"`
	Platform   string `json:"platform,omitempty"`
}

// IsZero reports whether the filter matches every entry.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.SearchTerm) == "" && isWildcard(f.Status) && isWildcard(f.Platform)
}

// Matches applies the filter to a single entry.
func (f Filter) Matches(e *entry.Entry) bool {
	if e == nil {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.SearchTerm)); term != "" {
		if !strings.Contains(strings.ToLower(e.Title), term) &&
			!strings.Contains(strings.ToLower(e.ContentPreview), term) {
			return false
		}
	}
	if !isWildcard(f.Status) && string(e.Status) != strings.TrimSpace(f.Status) {
		return false
	}
	if !isWildcard(f.Platform) && !e.HasPlatform(f.Platform) {
		return false
	}
	return true
}

func isWildcard(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, All)
}
