// Package config provides configuration loading and validation for the
// simulation and its front ends.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Environment variables that override loaded values.
const (
	EnvScreenWidth  = "ROIDS_SCREEN_WIDTH"
	EnvScreenHeight = "ROIDS_SCREEN_HEIGHT"
	EnvSeed         = "ROIDS_SEED"
	EnvDebug        = "ROIDS_DEBUG"
)

// Config holds all tuning of a run.
type Config struct {
	Screen     ScreenConfig          `yaml:"screen"`
	Simulation SimulationConfig      `yaml:"simulation"`
	Waves      WaveConfig            `yaml:"waves"`
	Asteroid   entity.AsteroidConfig `yaml:"asteroid"`
	Particle   entity.ParticleConfig `yaml:"particle"`
	Burst      BurstConfig           `yaml:"burst"`
	Drone      DroneConfig           `yaml:"drone"`
	Telemetry  TelemetryConfig       `yaml:"telemetry"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
	// Font is an optional TTF file for the HUD. Without it the HUD is hidden.
	Font      string `yaml:"font"`
}

// SimulationConfig holds stepping settings.
type SimulationConfig struct {
	Seed             uint64  `yaml:"seed"`
	DT               float64 `yaml:"dt"`
	Debug            bool    `yaml:"debug"`
	QuadTreeCapacity int     `yaml:"quadtree_capacity"`
}

// WaveConfig controls how asteroids are spawned.
type WaveConfig struct {
	InitialAsteroids int  `yaml:"initial_asteroids"`
	Growth           int  `yaml:"growth"`
	Level            int  `yaml:"level"`
	Refill           bool `yaml:"refill"`
}

// BurstConfig controls the debris thrown out when a body is destroyed.
type BurstConfig struct {
	Count int     `yaml:"count"`
	Speed float64 `yaml:"speed"`
}

// DroneConfig controls the player-steered body.
type DroneConfig struct {
	Enabled            bool `yaml:"enabled"`
	entity.DroneConfig `yaml:",inline"`
}

// TelemetryConfig controls CSV output.
type TelemetryConfig struct {
	Output       string `yaml:"output"`
	SampleBodies bool   `yaml:"sample_bodies"`
	// MaxFailures consecutive write errors suspend an export for Cooldown.
	MaxFailures int           `yaml:"max_failures"`
	Cooldown    time.Duration `yaml:"cooldown"`
}

// DefaultConfig returns the embedded defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("parsing embedded defaults: %v", err))
	}
	return cfg
}

// Load reads the embedded defaults, merges the YAML file at path over them
// when path is set, applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvScreenWidth); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvScreenWidth, v, err)
		}
		c.Screen.Width = n
	}
	if v, ok := lookup(EnvScreenHeight); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvScreenHeight, v, err)
		}
		c.Screen.Height = n
	}
	if v, ok := lookup(EnvSeed); ok {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvSeed, v, err)
		}
		c.Simulation.Seed = n
	}
	if v, ok := lookup(EnvDebug); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvDebug, v, err)
		}
		c.Simulation.Debug = b
	}
	return nil
}

// Validate checks the configuration for values the simulation cannot run
// with. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Screen.Width > 0 && c.Screen.Height > 0, "screen must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	check(c.Simulation.DT > 0, "simulation.dt must be positive, got %v", c.Simulation.DT)
	check(c.Simulation.QuadTreeCapacity >= 1, "simulation.quadtree_capacity must be at least 1")
	check(c.Waves.InitialAsteroids >= 0 && c.Waves.Growth >= 0, "waves must not be negative")
	check(c.Waves.Level >= entity.MinAsteroidLevel && c.Waves.Level <= entity.MaxAsteroidLevel,
		"waves.level must be in [%d, %d], got %d", entity.MinAsteroidLevel, entity.MaxAsteroidLevel, c.Waves.Level)
	check(c.Asteroid.MinHealth <= c.Asteroid.MaxHealth, "asteroid health range is empty")
	check(c.Asteroid.MinValue <= c.Asteroid.MaxValue, "asteroid value range is empty")
	check(c.Asteroid.Size > 0, "asteroid.size must be positive")
	check(c.Asteroid.SplitCount >= 0, "asteroid.split_count must not be negative")
	check(c.Particle.Lifetime >= 0, "particle.lifetime must not be negative")
	check(c.Telemetry.MaxFailures >= 1, "telemetry.max_failures must be at least 1")
	check(c.Telemetry.Cooldown >= 0, "telemetry.cooldown must not be negative")
	check(c.Burst.Count >= 0 && c.Burst.Speed >= 0, "burst must not be negative")

	for name, k := range map[string]physics.MoverConfig{
		"asteroid": c.Asteroid.Kinematics,
		"particle": c.Particle.Kinematics,
		"drone":    c.Drone.Kinematics,
	} {
		if _, err := physics.NewMover(k, physics.Vector2D{}, 0); err != nil {
			errs = append(errs, fmt.Errorf("%s kinematics: %w", name, err))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// ScreenGeometry returns the screen as the simulation sees it.
func (c *Config) ScreenGeometry() physics.Screen {
	return physics.Screen{Width: float64(c.Screen.Width), Height: float64(c.Screen.Height)}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
