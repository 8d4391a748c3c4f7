package entity

import (
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// ParticleConfig tunes debris particles.
type ParticleConfig struct {
	// Lifetime in seconds. Zero means the particle never expires by timer.
	Lifetime   float64             `yaml:"lifetime"`
	Size       float64             `yaml:"size"`
	Spin       bool                `yaml:"spin"`
	Kinematics physics.MoverConfig `yaml:"kinematics"`
}

// Particle is short-lived debris with a time to live
type Particle struct {
	Lifetime   float64
	TimeToLive float64
	Started    bool
	Spin       bool

	spun bool
}

// NewParticle creates a started particle at pos moving with velocity. It
// dies when its time runs out or when it leaves the screen.
func NewParticle(id ID, cfg ParticleConfig, pos, velocity physics.Vector2D) (*Body, error) {
	mover, err := physics.NewMover(cfg.Kinematics, pos, velocity.Angle())
	if err != nil {
		return nil, err
	}
	mover.SetVelocity(velocity)

	p := &Particle{
		Lifetime:   max(cfg.Lifetime, 0),
		TimeToLive: max(cfg.Lifetime, 0),
		Started:    true,
		Spin:       cfg.Spin,
	}
	return newBody(id, mover, Collider{
		Dimensions: physics.Vector2D{X: cfg.Size, Y: cfg.Size},
	}, physics.BoundaryDie, p), nil
}

// Kind implements Lifecycle.
func (p *Particle) Kind() Kind { return KindParticle }

// Permanent reports whether the particle never expires by timer.
func (p *Particle) Permanent() bool { return p.Lifetime == 0 }

// Start begins the countdown.
func (p *Particle) Start() { p.Started = true }

func (p *Particle) control(b *Body, f *Frame) {
	if !p.Spin || p.spun || f.Rand == nil {
		return
	}
	angular := b.Kinematics.AngularSpeedLimit()
	angular.IncrementBy(physics.SpinNudge(angular, f.Rand))
	p.spun = true
}

func (p *Particle) tick(b *Body, f *Frame) {
	if !p.Started || p.Permanent() {
		return
	}
	p.TimeToLive -= f.Dt
	if p.TimeToLive <= 0 {
		b.Die()
	}
}

func (p *Particle) die() {
	p.TimeToLive = 0
}

func (p *Particle) reset(b *Body, f *Frame) bool {
	p.TimeToLive = p.Lifetime
	p.Started = true
	p.spun = false
	b.Kinematics.Respawn(b.Collider.Dimensions, f.Screen, f.Rand)
	return true
}
