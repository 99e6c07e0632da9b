package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/contentcal/pkg/entry"
)

func TestPersistenceWatchEmitsDayChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(StaticConfig(base))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	e := entry.New("Spring sale teaser", entry.MustDate("2024-06-10"), "instagram")
	e.ID = "watch-1"
	if err := p.Store(e); err != nil {
		t.Fatalf("store entry: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventDayChanged {
				if evt.Date != "2024-06-10" {
					t.Fatalf("expected day 2024-06-10, got %q", evt.Date)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for day change event")
		}
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	throttle := newEventThrottle(10 * time.Millisecond)
	defer throttle.Stop()

	got := make(chan Event, 8)
	send := func(ev Event) { got <- ev }

	throttle.Enqueue(Event{Type: EventDayChanged, Date: "2024-06-10"}, send)
	throttle.Enqueue(Event{Type: EventDayChanged, Date: "2024-06-10"}, send)
	throttle.Enqueue(Event{Type: EventDayChanged, Date: "2024-06-11"}, send)

	seen := map[string]int{}
	deadline := time.After(time.Second)
	for len(seen) < 2 {
		select {
		case ev := <-got:
			seen[ev.Date]++
		case <-deadline:
			t.Fatalf("timed out, saw %v", seen)
		}
	}
	if seen["2024-06-10"] != 1 || seen["2024-06-11"] != 1 {
		t.Fatalf("expected one event per day, got %v", seen)
	}
}
