package app

import (
	"context"
	"sort"
	"time"

	"tableflip.dev/contentcal/pkg/entry"
)

// ReportItem is one entry with a recorded outcome.
type ReportItem struct {
	Entry  *entry.Entry `json:"entry"`
	Status entry.Status `json:"status"`
}

// ReportSection groups outcomes by platform.
type ReportSection struct {
	Platform  string       `json:"platform"`
	Published int          `json:"published"`
	Failed    int          `json:"failed"`
	Entries   []ReportItem `json:"entries"`
}

// ReportResult summarises published and failed entries dated within a window.
type ReportResult struct {
	Since     time.Time       `json:"since"`
	Until     time.Time       `json:"until"`
	Sections  []ReportSection `json:"sections"`
	Published int             `json:"published"`
	Failed    int             `json:"failed"`
	Total     int             `json:"total"`
}

// SuccessRate is published / (published + failed), or zero with no outcomes.
func (r ReportResult) SuccessRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Published) / float64(r.Total)
}

// Report returns published and failed entries grouped by platform whose
// calendar date lies between the provided bounds. An entry on two platforms
// shows in both sections but counts once in the totals.
func (s *Service) Report(_ context.Context, since, until time.Time) (ReportResult, error) {
	s.init()
	if since.After(until) {
		since, until = until, since
	}
	from, to := entry.DateOf(since), entry.DateOf(until)

	grouped := make(map[string]*ReportSection)
	result := ReportResult{Since: since, Until: until}
	for _, e := range s.Store.GetAll() {
		if e.Status != entry.Published && e.Status != entry.Failed {
			continue
		}
		if e.CalendarDate.Before(from) || e.CalendarDate.After(to) {
			continue
		}
		result.Total++
		if e.Status == entry.Published {
			result.Published++
		} else {
			result.Failed++
		}
		for _, p := range e.TargetPlatforms {
			section, ok := grouped[p]
			if !ok {
				section = &ReportSection{Platform: p}
				grouped[p] = section
			}
			section.Entries = append(section.Entries, ReportItem{Entry: e, Status: e.Status})
			if e.Status == entry.Published {
				section.Published++
			} else {
				section.Failed++
			}
		}
	}

	platforms := make([]string, 0, len(grouped))
	for p := range grouped {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	for _, p := range platforms {
		result.Sections = append(result.Sections, *grouped[p])
	}
	return result, nil
}
