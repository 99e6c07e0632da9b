package calendar

import (
	"sort"
	"strings"

	"tableflip.dev/contentcal/pkg/entry"
)

type slotKey struct {
	platform string
	slot     string
}

// DetectConflicts maps each conflicting entry ID to the IDs it collides
// with. Two entries collide when they share a calendar date, at least one
// platform and the exact same time slot. Slots are compared as strings;
// 09:00 and 09:15 never conflict.
func DetectConflicts(entries []*entry.Entry) map[string][]string {
	byKey := make(map[string]map[slotKey][]string)
	for _, e := range entries {
		if e == nil || e.ID == "" {
			continue
		}
		day := e.CalendarDate.String()
		keys := byKey[day]
		if keys == nil {
			keys = make(map[slotKey][]string)
			byKey[day] = keys
		}
		for _, p := range e.TargetPlatforms {
			k := slotKey{platform: strings.ToLower(p), slot: e.TimeSlot}
			ids := keys[k]
			if len(ids) > 0 && ids[len(ids)-1] == e.ID {
				continue
			}
			keys[k] = append(ids, e.ID)
		}
	}

	sets := make(map[string]map[string]struct{})
	for _, keys := range byKey {
		for _, ids := range keys {
			if len(ids) < 2 {
				continue
			}
			for _, id := range ids {
				for _, other := range ids {
					if other == id {
						continue
					}
					if sets[id] == nil {
						sets[id] = make(map[string]struct{})
					}
					sets[id][other] = struct{}{}
				}
			}
		}
	}

	out := make(map[string][]string, len(sets))
	for id, set := range sets {
		list := make([]string, 0, len(set))
		for other := range set {
			list = append(list, other)
		}
		sort.Strings(list)
		out[id] = list
	}
	return out
}

// AnnotateConflicts returns a copy of day whose events carry their computed
// conflicts, with the day-level flags set.
func AnnotateConflicts(day Day) Day {
	out := day
	out.Events = make([]*entry.Entry, len(day.Events))
	for i, e := range day.Events {
		cp := e.Clone()
		cp.Conflicts = nil
		out.Events[i] = cp
	}

	conflicts := DetectConflicts(out.Events)
	out.ConflictCount = 0
	for _, e := range out.Events {
		if ids, ok := conflicts[e.ID]; ok {
			e.Conflicts = ids
			out.ConflictCount++
		}
	}
	out.HasConflicts = out.ConflictCount > 0
	return out
}
