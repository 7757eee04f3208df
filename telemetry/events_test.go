package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestEventConstructors(t *testing.T) {
	tests := []struct {
		name string
		got  Event
		want Event
	}{
		{
			name: "pick",
			got:  NewPickEvent(3, 1, r2.Vec{X: 10, Y: 20}),
			want: Event{Tick: 3, Type: EventPick, Source: 1, X: 10, Y: 20},
		},
		{
			name: "release",
			got:  NewReleaseEvent(4, 1, r2.Vec{X: 30, Y: 40}),
			want: Event{Tick: 4, Type: EventRelease, Source: 1, X: 30, Y: 40},
		},
		{
			name: "resolution",
			got:  NewResolutionEvent(5, 62.5),
			want: Event{Tick: 5, Type: EventResolution, Source: -1, Value: 62.5},
		},
		{
			name: "added",
			got:  NewSourceAddedEvent(6, 3, r2.Vec{X: 1, Y: 2}, 40),
			want: Event{Tick: 6, Type: EventSourceAdded, Source: 3, X: 1, Y: 2, Value: 40},
		},
		{
			name: "removed",
			got:  NewSourceRemovedEvent(7, 0, r2.Vec{X: 5, Y: 6}),
			want: Event{Tick: 7, Type: EventSourceRemoved, Source: 0, X: 5, Y: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got); diff != "" {
				t.Errorf("event mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEventTypeString(t *testing.T) {
	if got := EventSourceRemoved.String(); got != "source_removed" {
		t.Errorf("String() = %q", got)
	}
	if got := EventType(99).String(); got != "unknown" {
		t.Errorf("String() of unknown type = %q", got)
	}
}

func TestWriteEvents(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	if err := om.WriteEvents([]Event{NewPickEvent(1, 0, r2.Vec{X: 1, Y: 2})}); err != nil {
		t.Fatalf("WriteEvents: %v", err)
	}
	if err := om.WriteEvents(nil); err != nil {
		t.Fatalf("WriteEvents(nil): %v", err)
	}
	if err := om.WriteEvents([]Event{NewResolutionEvent(2, 50)}); err != nil {
		t.Fatalf("WriteEvents: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "events.csv"))
	if err != nil {
		t.Fatalf("read events.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2:\n%s", len(lines), data)
	}
	if lines[0] != "tick,type,source,x,y,value" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,pick,0,") || !strings.HasPrefix(lines[2], "2,resolution,-1,") {
		t.Errorf("rows = %q", lines[1:])
	}
}
