package glyph

import "fmt"

// Glyph is a printable legend symbol.
type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
	Kind    Kind
	Order   int
}

// Kind groups glyphs in the legend.
type Kind int

const (
	KindStatus Kind = iota
	KindPriority
	KindContent
	KindMarker
)

const (
	escape     = "\x1b"
	resetCode  = 0
	strikeCode = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

var (
	statuses = []Glyph{
		{Key: "planned", Symbol: "○", Meaning: "planned"},
		{Key: "in_progress", Symbol: "◐", Meaning: "in progress"},
		{Key: "ready", Symbol: "●", Meaning: "ready"},
		{Key: "scheduled", Symbol: "◷", Meaning: "scheduled"},
		{Key: "published", Symbol: "✔", Meaning: "published"},
		{Key: "cancelled", Symbol: "⦵", Meaning: "cancelled"},
		{Key: "failed", Symbol: "✘", Meaning: "failed"},
	}
	priorities = []Glyph{
		{Key: "low", Symbol: " ", Meaning: "low priority"},
		{Key: "medium", Symbol: "·", Meaning: "medium priority"},
		{Key: "high", Symbol: "!", Meaning: "high priority"},
		{Key: "urgent", Symbol: "✷", Meaning: "urgent"},
	}
	contents = []Glyph{
		{Key: "post", Symbol: "P", Meaning: "post"},
		{Key: "story", Symbol: "S", Meaning: "story"},
		{Key: "video", Symbol: "V", Meaning: "video"},
		{Key: "email", Symbol: "E", Meaning: "email"},
		{Key: "ad", Symbol: "A", Meaning: "ad"},
		{Key: "campaign", Symbol: "C", Meaning: "campaign"},
	}
	markers = []Glyph{
		{Key: "conflict", Symbol: "⚠", Meaning: "scheduling conflict"},
		{Key: "today", Symbol: "▸", Meaning: "today"},
	}
)

func init() {
	for i := range statuses {
		statuses[i].Kind, statuses[i].Order = KindStatus, i
	}
	for i := range priorities {
		priorities[i].Kind, priorities[i].Order = KindPriority, i
	}
	for i := range contents {
		contents[i].Kind, contents[i].Order = KindContent, i
	}
	for i := range markers {
		markers[i].Kind, markers[i].Order = KindMarker, i
	}
}

// Statuses returns the status legend in lifecycle order.
func Statuses() []Glyph { return append([]Glyph(nil), statuses...) }

// Priorities returns the priority legend.
func Priorities() []Glyph { return append([]Glyph(nil), priorities...) }

// ContentTypes returns the content type legend.
func ContentTypes() []Glyph { return append([]Glyph(nil), contents...) }

// Markers returns the calendar markers legend.
func Markers() []Glyph { return append([]Glyph(nil), markers...) }

// ForStatus looks up a status glyph; unknown keys render as "?".
func ForStatus(key string) Glyph { return lookup(statuses, key) }

// ForPriority looks up a priority glyph.
func ForPriority(key string) Glyph { return lookup(priorities, key) }

// ForContentType looks up a content type glyph.
func ForContentType(key string) Glyph { return lookup(contents, key) }

// Conflict is the marker drawn on conflicting entries and days.
func Conflict() Glyph { return markers[0] }

// Today is the marker drawn next to the current day.
func Today() Glyph { return markers[1] }

func lookup(list []Glyph, key string) Glyph {
	for _, g := range list {
		if g.Key == key {
			return g
		}
	}
	return Glyph{Key: key, Symbol: "?", Meaning: key}
}

func (g Glyph) String() string {
	return g.Symbol
}

// ByOrder sorts glyphs by kind, then declared order.
type ByOrder []Glyph

func (a ByOrder) Len() int      { return len(a) }
func (a ByOrder) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a ByOrder) Less(i, j int) bool {
	if a[i].Kind != a[j].Kind {
		return a[i].Kind < a[j].Kind
	}
	return a[i].Order < a[j].Order
}
