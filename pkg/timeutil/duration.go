// Package timeutil parses the human-friendly durations and time slots used
// in configuration and on the command line.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultWindow is the success-rate and report window when none is set.
	DefaultWindow = "4w"

	day  = 24 * time.Hour
	week = 7 * day
)

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	units          = map[string]time.Duration{
		"s": time.Second, "sec": time.Second, "secs": time.Second, "second": time.Second, "seconds": time.Second,
		"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
		"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
		"d": day, "day": day, "days": day,
		"w": week, "wk": week, "wks": week, "week": week, "weeks": week,
	}
)

// ParseWindow parses strings such as "4w", "3d" or "1w2d6h" and returns the
// duration with its canonical spelling. Empty input means DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	raw := strings.ToLower(strings.TrimSpace(input))
	if raw == "" {
		raw = DefaultWindow
	}

	var total time.Duration
	for rest := raw; len(rest) > 0; {
		m := segmentPattern.FindStringSubmatch(rest)
		if len(m) != 3 {
			return 0, "", fmt.Errorf("invalid duration segment %q", strings.TrimSpace(rest))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid duration value %q: %w", m[1], err)
		}
		unit, ok := units[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported duration unit %q", m[2])
		}
		total += time.Duration(n) * unit
		rest = rest[len(m[0]):]
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("duration must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// ParseSuccessWindow is ParseWindow with "all" and "0" meaning no bound,
// reported as a zero duration.
func ParseSuccessWindow(input string) (time.Duration, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "all", "0":
		return 0, nil
	}
	d, _, err := ParseWindow(input)
	return d, err
}

// ParseInterval parses a refresh interval. Go duration syntax ("1m30s") and
// window syntax ("2h") are both accepted; empty input yields fallback.
func ParseInterval(input string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return fallback, nil
	}
	if d, err := time.ParseDuration(raw); err == nil {
		if d <= 0 {
			return 0, fmt.Errorf("interval must be greater than zero")
		}
		return d, nil
	}
	d, _, err := ParseWindow(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q: %w", input, err)
	}
	return d, nil
}

// FormatWindow renders a duration using w/d/h/m/s tokens.
func FormatWindow(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	steps := []struct {
		label string
		size  time.Duration
	}{
		{"w", week},
		{"d", day},
		{"h", time.Hour},
		{"m", time.Minute},
		{"s", time.Second},
	}
	var b strings.Builder
	for _, step := range steps {
		if d < step.size {
			continue
		}
		n := d / step.size
		d -= n * step.size
		fmt.Fprintf(&b, "%d%s", n, step.label)
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}
