package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/entry"
	"tableflip.dev/contentcal/pkg/glyph"
)

// PrettyPrint renders calendar views for the terminal.
type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("3f2c9a1e  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Entries prints a table of entries, one per row.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = " "
	tbl.MaxColWidth = 60
	warn := color.New(color.FgHiRed)
	id := color.New(color.FgHiYellow, color.Italic, color.Faint)
	for _, e := range entries {
		marker, slot, state, title, platforms := e.Row()
		if e.HasConflicts() {
			marker = warn.Sprint(marker)
		}
		if e.Status == entry.Cancelled {
			title = glyph.Strike(title)
		}
		if pp.ShowID {
			tbl.AddRow(id.Sprint(shortID(e.ID)), marker, slot, state, title, platforms)
			continue
		}
		tbl.AddRow(marker, slot, state, title, platforms)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out())
}

// Metrics prints the aggregate metrics of a view.
func (pp *PrettyPrint) Metrics(m calendar.Metrics) {
	pp.Title("Metrics")
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("scheduled", m.TotalScheduled)
	tbl.AddRow("today", m.ScheduledToday)
	tbl.AddRow("published", m.Published)
	tbl.AddRow("failed", m.Failed)
	tbl.AddRow("success rate", fmt.Sprintf("%.0f%%", m.SuccessRate*100))
	tbl.AddRow("avg engagement", fmt.Sprintf("%.2f", m.AverageEngagement))
	_, _ = fmt.Fprintln(pp.out(), tbl)

	pp.counts("Platforms", m.ByPlatform)
	types := make(map[string]int, len(m.ByContentType))
	for k, v := range m.ByContentType {
		types[fmt.Sprintf("%s %s", k.Glyph().Symbol, k)] = v
	}
	pp.counts("Content", types)
	statuses := make(map[string]int, len(m.ByStatus))
	for k, v := range m.ByStatus {
		statuses[fmt.Sprintf("%s %s", k.Glyph().Symbol, k)] = v
	}
	pp.counts("Status", statuses)
}

func (pp *PrettyPrint) counts(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	faint := color.New(color.Faint)
	_, _ = faint.Fprintln(pp.out(), title)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, k := range keys {
		tbl.AddRow("  "+k, counts[k])
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Report prints a published/failed report grouped by platform.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	pp.Title(fmt.Sprintf("Report %s .. %s", entry.DateOf(r.Since), entry.DateOf(r.Until)))
	if r.Total == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprint(pp.out(), " nothing published or failed\n\n")
		return
	}
	for _, section := range r.Sections {
		pp.TitleWithCount(section.Platform, len(section.Entries))
		items := make([]*entry.Entry, 0, len(section.Entries))
		for _, item := range section.Entries {
			items = append(items, item.Entry)
		}
		pp.Entries(items...)
	}
	_, _ = fmt.Fprintf(pp.out(), "%d published, %d failed, success rate %.0f%%\n",
		r.Published, r.Failed, r.SuccessRate()*100)
}

// Legend prints every glyph with its meaning.
func (pp *PrettyPrint) Legend() {
	groups := []struct {
		title  string
		glyphs []glyph.Glyph
	}{
		{"Status", glyph.Statuses()},
		{"Priority", glyph.Priorities()},
		{"Content", glyph.ContentTypes()},
		{"Markers", glyph.Markers()},
	}
	for _, g := range groups {
		pp.Title(g.title)
		sort.Sort(glyph.ByOrder(g.glyphs))
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, gl := range g.glyphs {
			tbl.AddRow(gl.Symbol, gl.Key, gl.Meaning)
		}
		_, _ = fmt.Fprintln(pp.out(), tbl)
		pp.NewLine()
	}
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
