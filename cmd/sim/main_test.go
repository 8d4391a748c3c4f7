package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/pilot"
	"github.com/opd-ai/go-asteroids/pkg/telemetry"
)

func TestRun_WritesCSV(t *testing.T) {
	dir := t.TempDir()
	opts := options{
		ticks:   60,
		pilot:   "hunter",
		summary: filepath.Join(dir, "summary.csv"),
		samples: filepath.Join(dir, "bodies.csv"),
		every:   10,
	}

	if err := run(context.Background(), config.DefaultConfig(), opts, logging.Discard()); err != nil {
		t.Fatalf("run() failed: %v", err)
	}

	f, err := os.Open(opts.summary)
	if err != nil {
		t.Fatalf("opening summary: %v", err)
	}
	defer f.Close()

	var rows []*telemetry.TickSummary
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatalf("reading summary: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("got %d summary rows, want 6", len(rows))
	}
	for i, r := range rows {
		if want := (i + 1) * 10; r.Tick != want {
			t.Errorf("row %d tick = %d, want %d", i, r.Tick, want)
		}
		if r.Bodies == 0 {
			t.Errorf("row %d has no bodies", i)
		}
	}

	b, err := os.Open(opts.samples)
	if err != nil {
		t.Fatalf("opening samples: %v", err)
	}
	defer b.Close()

	var samples []*telemetry.BodySample
	if err := gocsv.UnmarshalFile(b, &samples); err != nil {
		t.Fatalf("reading samples: %v", err)
	}
	if len(samples) == 0 {
		t.Error("no body samples written")
	}
}

func TestRun_RejectsBadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte("segments:\n  - ticks: 1\n    hold: [warp]\n"), 0o644); err != nil {
		t.Fatalf("writing script: %v", err)
	}

	err := run(context.Background(), config.DefaultConfig(), options{ticks: 1, script: path}, logging.Discard())
	if !errors.Is(err, pilot.ErrInvalidScript) {
		t.Errorf("expected ErrInvalidScript, got %v", err)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := run(ctx, config.DefaultConfig(), options{ticks: 1000, pilot: "idle"}, logging.Discard()); err != nil {
		t.Errorf("cancelled run returned %v", err)
	}
}

func TestNewController(t *testing.T) {
	cfg := config.DefaultConfig()
	if _, err := newController(cfg, options{pilot: "bomber"}); err == nil {
		t.Error("expected an error for an unknown pilot")
	}
	c, err := newController(cfg, options{pilot: "explorer"})
	if err != nil {
		t.Fatalf("newController() failed: %v", err)
	}
	if ap, ok := c.(*pilot.Autopilot); !ok || ap.Behavior() != pilot.BehaviorExplorer {
		t.Errorf("got %T, want an explorer autopilot", c)
	}
}
