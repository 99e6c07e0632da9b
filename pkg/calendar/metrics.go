package calendar

import (
	"time"

	"tableflip.dev/contentcal/pkg/entry"
)

// Metrics aggregates a filtered entry set. It is recomputed on every load
// rather than maintained incrementally.
type Metrics struct {
	TotalScheduled    int                       `json:"total_scheduled"`
	ScheduledToday    int                       `json:"scheduled_today"`
	Published         int                       `json:"published"`
	Failed            int                       `json:"failed"`
	SuccessRate       float64                   `json:"success_rate"`
	AverageEngagement float64                   `json:"average_engagement"`
	ByPlatform        map[string]int            `json:"by_platform"`
	ByContentType     map[entry.ContentType]int `json:"by_content_type"`
	ByStatus          map[entry.Status]int      `json:"by_status"`
}

// BuildMetrics computes Metrics in one pass. Cancelled entries are not
// counted as scheduled. The success rate is published / (published + failed)
// over entries dated within window before today; a zero window means all
// time.
func BuildMetrics(entries []*entry.Entry, today time.Time, window time.Duration) Metrics {
	todayDate := entry.DateOf(today)
	var since entry.Date
	if window > 0 {
		since = entry.DateOf(todayDate.Add(-window))
	}

	m := Metrics{
		ByPlatform:    make(map[string]int),
		ByContentType: make(map[entry.ContentType]int),
		ByStatus:      make(map[entry.Status]int),
	}
	var engagementSum float64
	var engagementCount int
	for _, e := range entries {
		if e == nil {
			continue
		}
		m.ByStatus[e.Status]++
		m.ByContentType[e.ContentType]++
		for _, p := range e.TargetPlatforms {
			m.ByPlatform[p]++
		}
		if e.Status != entry.Cancelled {
			m.TotalScheduled++
			if e.CalendarDate.Equal(todayDate) {
				m.ScheduledToday++
			}
		}
		if e.ExpectedEngagement > 0 {
			engagementSum += e.ExpectedEngagement
			engagementCount++
		}

		inWindow := !e.CalendarDate.After(todayDate) && (since.IsZero() || !e.CalendarDate.Before(since))
		if !inWindow {
			continue
		}
		switch e.Status {
		case entry.Published:
			m.Published++
		case entry.Failed:
			m.Failed++
		}
	}
	if outcomes := m.Published + m.Failed; outcomes > 0 {
		m.SuccessRate = float64(m.Published) / float64(outcomes)
	}
	if engagementCount > 0 {
		m.AverageEngagement = engagementSum / float64(engagementCount)
	}
	return m
}
