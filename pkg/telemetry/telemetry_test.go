package telemetry

import (
	"bytes"
	"strings"
	"testing"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

func TestSink_DrainOrdersAndClears(t *testing.T) {
	s := NewSink()
	s.Record(DebugVector{Tag: "c", Direction: physics.Vector2D{X: 1}, Priority: 2})
	s.Record(DebugVector{Tag: "a", Direction: physics.Vector2D{X: 1}, Priority: 0})
	s.Record(DebugVector{Tag: "b", Direction: physics.Vector2D{Y: 1}, Priority: 0})
	s.Record(DebugVector{Tag: "empty"})

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3 with the empty vector dropped", s.Len())
	}

	got := s.Drain()
	var tags []string
	for _, v := range got {
		tags = append(tags, v.Tag)
	}
	if strings.Join(tags, ",") != "a,b,c" {
		t.Errorf("Drain() order = %v, expected [a b c]", tags)
	}
	if s.Len() != 0 || len(s.Drain()) != 0 {
		t.Error("Drain() did not clear the sink")
	}
}

func TestDebugVector_End(t *testing.T) {
	v := DebugVector{
		Position:  physics.Vector2D{X: 1, Y: 1},
		Direction: physics.Vector2D{X: 0, Y: 2},
		Magnitude: 5,
	}
	if end := v.End(); end != (physics.Vector2D{X: 1, Y: 6}) {
		t.Errorf("End() = %v, expected (1, 6)", end)
	}
}

func TestWriter_HeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter[TickSummary](&buf)

	if err := w.Write(); err != nil {
		t.Fatalf("empty Write() failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("empty Write() produced output %q", buf.String())
	}

	if err := w.Write(TickSummary{Tick: 1, Bodies: 4}); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if err := w.Write(TickSummary{Tick: 2, Bodies: 3}, TickSummary{Tick: 3, Score: 20}); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, expected header plus 3 rows:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "tick,elapsed,bodies") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Count(buf.String(), "tick,") != 1 {
		t.Errorf("header written more than once:\n%s", buf.String())
	}
	if !strings.HasPrefix(lines[3], "3,") || !strings.HasSuffix(lines[3], ",20") {
		t.Errorf("last row = %q", lines[3])
	}
}

func TestDiscard(t *testing.T) {
	Discard.Record(DebugVector{Direction: physics.Vector2D{X: 1}})
}
