package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSlot validates a 24h "HH:MM" time slot and returns it in canonical
// zero-padded form along with minutes past midnight. "9:5" is rejected; "9:05"
// becomes "09:05".
func ParseSlot(input string) (string, int, error) {
	trimmed := strings.TrimSpace(input)
	hh, mm, ok := strings.Cut(trimmed, ":")
	if !ok || len(mm) != 2 || len(hh) == 0 || len(hh) > 2 {
		return "", 0, fmt.Errorf("invalid time slot %q (expected HH:MM)", input)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 23 {
		return "", 0, fmt.Errorf("invalid hour in time slot %q", input)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return "", 0, fmt.Errorf("invalid minute in time slot %q", input)
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes), hours*60 + minutes, nil
}

// ValidSlot reports whether input is already a canonical "HH:MM" slot.
func ValidSlot(input string) bool {
	canonical, _, err := ParseSlot(input)
	return err == nil && canonical == input
}
