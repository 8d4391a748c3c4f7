package entity

import (
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Asteroid levels
const (
	MinAsteroidLevel = 1
	MaxAsteroidLevel = 3
)

// AsteroidConfig tunes asteroids. Health and value scale with the level and
// are clamped into the global ranges.
type AsteroidConfig struct {
	BaseHealth float64             `yaml:"base_health"`
	MinHealth  float64             `yaml:"min_health"`
	MaxHealth  float64             `yaml:"max_health"`
	BaseValue  int                 `yaml:"base_value"`
	MinValue   int                 `yaml:"min_value"`
	MaxValue   int                 `yaml:"max_value"`
	Size       float64             `yaml:"size"`
	Damage     float64             `yaml:"damage"`
	SplitCount int                 `yaml:"split_count"`
	Kinematics physics.MoverConfig `yaml:"kinematics"`
}

// Asteroid is the lifecycle of a destructible rock
type Asteroid struct {
	Level         int
	Health        float64
	CurrentHealth float64
	Value         int

	cfg   AsteroidConfig
	valid bool
}

// NewAsteroid creates an asteroid of the given level. Each level adds one
// Size to the dimensions. A level below MinAsteroidLevel or a health below
// the minimum yields a body that is dead from the start.
func NewAsteroid(id ID, cfg AsteroidConfig, level int, pos physics.Vector2D, heading float64) (*Body, error) {
	mover, err := physics.NewMover(cfg.Kinematics, pos, heading)
	if err != nil {
		return nil, err
	}
	size := cfg.Size * float64(min(max(level, MinAsteroidLevel), MaxAsteroidLevel))
	return newAsteroidBody(id, cfg, level, mover, physics.Vector2D{X: size, Y: size}, physics.BoundaryRespawn), nil
}

func newAsteroidBody(id ID, cfg AsteroidConfig, level int, mover *physics.Mover, dims physics.Vector2D, boundary physics.BoundaryPolicy) *Body {
	a := newAsteroid(cfg, level)
	b := newBody(id, mover, Collider{
		Dimensions: dims,
		Policy:     CollideHurt,
		Damage:     cfg.Damage,
		Enabled:    true,
	}, boundary, a)
	if !a.valid {
		b.Die()
	}
	return b
}

func newAsteroid(cfg AsteroidConfig, level int) *Asteroid {
	a := &Asteroid{Level: min(level, MaxAsteroidLevel), cfg: cfg}
	health := cfg.BaseHealth * float64(a.Level)
	a.valid = level >= MinAsteroidLevel && health >= cfg.MinHealth
	if !a.valid {
		return a
	}
	a.Health = min(health, cfg.MaxHealth)
	a.CurrentHealth = a.Health
	a.Value = max(cfg.MinValue, min(cfg.BaseValue*a.Level, cfg.MaxValue))
	return a
}

// Kind implements Lifecycle.
func (a *Asteroid) Kind() Kind { return KindAsteroid }

// SplitCount returns how many children a destroyed asteroid breaks into.
func (a *Asteroid) SplitCount() int { return a.cfg.SplitCount }

// CanSplit reports whether destroying the asteroid leaves children.
func (a *Asteroid) CanSplit() bool { return a.Level-1 >= MinAsteroidLevel }

func (a *Asteroid) hurt(amount float64) bool {
	a.CurrentHealth -= amount
	return a.CurrentHealth < a.cfg.MinHealth
}

func (a *Asteroid) control(*Body, *Frame) {}

func (a *Asteroid) tick(*Body, *Frame) {}

func (a *Asteroid) die() {
	a.CurrentHealth = 0
}

func (a *Asteroid) reset(b *Body, f *Frame) bool {
	if !a.valid {
		return false
	}
	a.CurrentHealth = a.Health
	b.Kinematics.Respawn(b.Collider.Dimensions, f.Screen, f.Rand)
	return true
}

// Split creates a child asteroid one level down. The child copies the
// parent's kinematic state, dimensions and boundary policy, with health and
// value recomputed for its level. It reports false when the lineage ends.
func (b *Body) Split(id ID) (*Body, bool) {
	a, ok := b.Asteroid()
	if !ok || !a.CanSplit() {
		return nil, false
	}
	mover := b.Kinematics.Clone()
	if b.Dead() {
		mover.SetVelocity(b.lastVelocity)
	}
	child := newAsteroidBody(id, a.cfg, a.Level-1, mover, b.Collider.Dimensions, b.Boundary)
	if child.Dead() {
		return nil, false
	}
	return child, true
}
