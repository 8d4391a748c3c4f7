// cmd/sim/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/pilot"
	"github.com/opd-ai/go-asteroids/pkg/render"
	"github.com/opd-ai/go-asteroids/pkg/rng"
	"github.com/opd-ai/go-asteroids/pkg/telemetry"
)

// options are the command line settings of a run.
type options struct {
	ticks      int
	pilot      string
	script     string
	summary    string
	samples    string
	every      int
	ascii      int
	asciiWidth int
}

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithRunID(context.Background(), logging.GenerateRunID())

	configPath := flag.String("config", "", "Path to a YAML configuration file (defaults are embedded)")
	writeConfig := flag.String("write-config", "", "Write the effective configuration to this path and exit")
	seed := flag.Uint64("seed", 0, "Random seed (overrides config when non-zero)")
	debug := flag.Bool("debug", false, "Record debug vectors from the start")

	var opts options
	flag.IntVar(&opts.ticks, "ticks", 3600, "Number of ticks to simulate")
	flag.StringVar(&opts.pilot, "pilot", "hunter", "Drone autopilot: idle, explorer or hunter")
	flag.StringVar(&opts.script, "script", "", "YAML command script for the drone (overrides -pilot)")
	flag.StringVar(&opts.summary, "summary", "", "Per-tick summary CSV path, '-' for stdout (overrides config)")
	flag.StringVar(&opts.samples, "samples", "", "Per-body sample CSV path")
	flag.IntVar(&opts.every, "every", 1, "Write CSV rows every N ticks")
	flag.IntVar(&opts.ascii, "ascii", 0, "Draw the screen as ASCII to stderr every N ticks (0 disables)")
	flag.IntVar(&opts.asciiWidth, "ascii-width", 80, "Width of the ASCII view in characters")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}
	if *debug {
		cfg.Simulation.Debug = true
	}
	if opts.summary == "" {
		opts.summary = cfg.Telemetry.Output
	}

	if *writeConfig != "" {
		if err := cfg.WriteYAML(*writeConfig); err != nil {
			logger.Error(ctx, "Failed to write configuration", err, "config_path", *writeConfig)
			os.Exit(1)
		}
		logger.Info(ctx, "Wrote configuration", "config_path", *writeConfig)
		return
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, logger); err != nil {
		logger.Error(ctx, "Simulation failed", err)
		os.Exit(1)
	}
}

// run simulates opts.ticks ticks and writes the requested outputs.
func run(ctx context.Context, cfg *config.Config, opts options, logger *logging.Logger) error {
	controller, err := newController(cfg, opts)
	if err != nil {
		return err
	}

	bus := event.NewEventBus()
	world, err := engine.NewWorld(cfg,
		engine.WithLogger(logger),
		engine.WithEventBus(bus),
		engine.WithContext(ctx),
		engine.WithRand(rng.New(cfg.Simulation.Seed)),
	)
	if err != nil {
		return logging.WrapError(err, "creating world")
	}

	splits := 0
	bus.Subscribe(event.AsteroidSplit, func(event.Event) { splits++ })
	bus.Subscribe(event.WaveStarted, func(e event.Event) {
		if we, ok := e.(*event.WaveEvent); ok {
			logger.Debug(ctx, "Wave event", "wave", we.Wave, "asteroids", we.Asteroids)
		}
	})

	summaryOut, closeSummary, err := openOutput(opts.summary)
	if err != nil {
		return err
	}
	defer closeSummary()
	samplesPath := opts.samples
	if samplesPath == "" && cfg.Telemetry.SampleBodies && opts.summary != "" && opts.summary != "-" {
		samplesPath = opts.summary + ".bodies.csv"
	}
	samplesOut, closeSamples, err := openOutput(samplesPath)
	if err != nil {
		return err
	}
	defer closeSamples()

	exportSettings := func(name string) telemetry.ExportSettings {
		return telemetry.ExportSettings{
			Name:        name,
			MaxFailures: cfg.Telemetry.MaxFailures,
			Cooldown:    cfg.Telemetry.Cooldown,
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn(ctx, "Telemetry export state changed",
					"export", name,
					"from", from.String(),
					"to", to.String(),
				)
			},
		}
	}
	summaries := telemetry.NewExport[telemetry.TickSummary](summaryOut, exportSettings("summary"))
	samples := telemetry.NewExport[telemetry.BodySample](samplesOut, exportSettings("samples"))
	writeFailed := func(err error) {
		if !errors.Is(err, gobreaker.ErrOpenState) {
			logger.Warn(ctx, "Telemetry write failed", "tick", world.Tick(), "error", err.Error())
		}
	}

	var terminal *render.TerminalRenderer
	if opts.ascii > 0 {
		height := max(opts.asciiWidth*cfg.Screen.Height/(2*cfg.Screen.Width), 1)
		terminal = render.NewTerminalRenderer(os.Stderr, opts.asciiWidth, height, world.Screen(), false)
	}

	every := max(opts.every, 1)
	logger.Info(ctx, "Starting simulation",
		"ticks", opts.ticks,
		"seed", cfg.Simulation.Seed,
		"pilot", opts.pilot,
		"script", opts.script,
	)

	for i := 0; i < opts.ticks; i++ {
		select {
		case <-ctx.Done():
			logger.Warn(ctx, "Simulation interrupted", "tick", world.Tick())
			return nil
		default:
		}

		world.Step(cfg.Simulation.DT, controller.Plan(world))
		vectors := world.Telemetry().Drain()

		if world.Tick()%every == 0 {
			if err := summaries.Write(world.Summary()); err != nil {
				writeFailed(err)
			}
			if err := samples.Write(world.Samples()...); err != nil {
				writeFailed(err)
			}
		}
		if terminal != nil && world.Tick()%opts.ascii == 0 {
			if err := render.Frame(terminal, world.Bodies(), vectors); err != nil {
				return logging.WrapError(err, "drawing tick %d", world.Tick())
			}
		}
	}

	summary := world.Summary()
	logger.Info(ctx, "Simulation finished",
		"ticks", summary.Tick,
		"elapsed", summary.Elapsed,
		"score", summary.Score,
		"wave", world.Wave(),
		"splits", splits,
		"bodies", summary.Bodies,
		"dropped_summaries", summaries.Dropped(),
		"dropped_samples", samples.Dropped(),
	)
	return nil
}

func newController(cfg *config.Config, opts options) (pilot.Controller, error) {
	if opts.script != "" {
		script, err := pilot.LoadScript(opts.script)
		if err != nil {
			return nil, err
		}
		return pilot.NewPlayer(script), nil
	}
	behavior, err := pilot.ParseBehavior(opts.pilot)
	if err != nil {
		return nil, err
	}
	return pilot.NewAutopilot(behavior, cfg.Simulation.Seed+1), nil
}

// openOutput opens path for writing. An empty path discards, '-' is stdout.
func openOutput(path string) (io.Writer, func(), error) {
	switch path {
	case "":
		return io.Discard, func() {}, nil
	case "-":
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}
