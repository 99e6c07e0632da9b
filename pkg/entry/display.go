package entry

import (
	"strings"

	"tableflip.dev/contentcal/pkg/glyph"
)

// Row returns the columns used by tabular listings.
func (e *Entry) Row() (string, string, string, string, string) {
	marker := " "
	if e.HasConflicts() {
		marker = glyph.Conflict().Symbol
	}
	return marker + e.Priority.Glyph().Symbol,
		e.TimeSlot,
		e.Status.Glyph().Symbol + " " + e.ContentType.Glyph().Symbol,
		e.Title,
		strings.Join(e.TargetPlatforms, ",")
}

