// cmd/asteroids/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	engorender "github.com/opd-ai/go-asteroids/pkg/render/engo"
)

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithRunID(context.Background(), logging.GenerateRunID())

	configPath := flag.String("config", "", "Path to a YAML configuration file (defaults are embedded)")
	width := flag.Int("width", 0, "Window width (overrides config)")
	height := flag.Int("height", 0, "Window height (overrides config)")
	seed := flag.Uint64("seed", 0, "Random seed (overrides config when non-zero)")
	debug := flag.Bool("debug", false, "Start with debug vectors shown")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}
	if *width > 0 {
		cfg.Screen.Width = *width
	}
	if *height > 0 {
		cfg.Screen.Height = *height
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}
	if *debug {
		cfg.Simulation.Debug = true
	}

	logger.Info(ctx, "Opening window",
		"width", cfg.Screen.Width,
		"height", cfg.Screen.Height,
		"seed", cfg.Simulation.Seed,
	)
	engorender.Run(ctx, cfg, logger)
}
