package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/entry"
	"tableflip.dev/contentcal/pkg/glyph"
)

const (
	layoutDay   = "Mon Jan 2, 2006"
	layoutMonth = "January 2006"
	cellWidth   = 4 // "10! "
)

const width = 7 * cellWidth

// View prints a calendar view: a month grid followed by the busy days, or
// the day list for the other modes and for conflicts-only views.
func (pp *PrettyPrint) View(v calendar.View) {
	switch {
	case v.Request.Mode == calendar.ModeMonth && !v.ConflictsOnly:
		pp.MonthGrid(v)
		pp.NewLine()
		for _, d := range v.Days {
			if d.Len() > 0 && d.IsCurrentMonth {
				pp.Day(d)
			}
		}
	default:
		pp.Title(fmt.Sprintf("%s %s .. %s", modeTitle(v.Request.Mode), v.Range.Start, v.Range.End))
		pp.NewLine()
		if len(v.Days) == 0 {
			_, _ = color.New(color.Faint, color.Italic).Fprint(pp.out(), " nothing scheduled\n\n")
		}
		for _, d := range v.Days {
			pp.Day(d)
		}
	}
	if v.Conflicts > 0 {
		_, _ = color.New(color.FgHiRed).Fprintf(pp.out(), "%s %d conflicting entries\n",
			glyph.Conflict().Symbol, v.Conflicts)
	}
}

// Day prints one bucket with its entries.
func (pp *PrettyPrint) Day(d calendar.Day) {
	title := d.Date.Format(layoutDay)
	if d.IsToday {
		title = glyph.Today().Symbol + " " + title
	}
	if d.HasConflicts {
		title += " " + glyph.Conflict().Symbol
	}
	pp.TitleWithCount(title, d.Len())
	pp.Entries(d.Events...)
}

// MonthGrid prints a Monday-first month grid. Busy days are bold, days with
// conflicts carry a marker and today is underlined; padding days from the
// neighbouring months are faint.
func (pp *PrettyPrint) MonthGrid(v calendar.View) {
	ref := entry.DateOf(v.Request.Reference)
	header := ref.Format(layoutMonth)
	mid := (width - len(header)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = color.New(color.FgWhite, color.Italic).Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), header)

	faint := color.New(color.Faint)
	for _, wd := range []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"} {
		_, _ = faint.Fprintf(pp.out(), "%-*s", cellWidth, wd)
	}
	_, _ = fmt.Fprintln(pp.out())

	for _, week := range v.Weeks() {
		for _, d := range week {
			_, _ = cellStyle(d).Fprint(pp.out(), cell(d))
		}
		_, _ = fmt.Fprintln(pp.out())
	}
}

func cell(d calendar.Day) string {
	marker := " "
	switch {
	case d.HasConflicts:
		marker = "!"
	case d.Len() > 0:
		marker = "*"
	}
	return fmt.Sprintf("%2d%s ", d.Date.Day(), marker)
}

func cellStyle(d calendar.Day) *color.Color {
	attrs := []color.Attribute{}
	switch {
	case !d.IsCurrentMonth:
		attrs = append(attrs, color.Faint)
	case d.HasConflicts:
		attrs = append(attrs, color.Bold, color.FgHiRed)
	case d.Len() > 0:
		attrs = append(attrs, color.Bold, color.FgHiWhite)
	}
	if d.IsToday {
		attrs = append(attrs, color.Underline)
	}
	return color.New(attrs...)
}

func modeTitle(m calendar.ViewMode) string {
	s := string(m)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
