package entity

import (
	"github.com/opd-ai/go-asteroids/pkg/input"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// DroneConfig tunes the player-steered body.
type DroneConfig struct {
	Size       float64             `yaml:"size"`
	Damage     float64             `yaml:"damage"`
	Kinematics physics.MoverConfig `yaml:"kinematics"`
}

// Drone is a body steered by the command oracle
type Drone struct{}

// NewDrone creates a drone at pos. It wraps around the screen and only
// changes color on contact.
func NewDrone(id ID, cfg DroneConfig, pos physics.Vector2D, heading float64) (*Body, error) {
	mover, err := physics.NewMover(cfg.Kinematics, pos, heading)
	if err != nil {
		return nil, err
	}
	return newBody(id, mover, Collider{
		Dimensions: physics.Vector2D{X: cfg.Size, Y: cfg.Size},
		Policy:     CollideColorChange,
		Damage:     cfg.Damage,
		Enabled:    true,
	}, physics.BoundaryWrap, &Drone{}), nil
}

// Kind implements Lifecycle.
func (d *Drone) Kind() Kind { return KindDrone }

func (d *Drone) control(b *Body, f *Frame) {
	m := b.Kinematics
	c := f.Commands

	if c.Held(input.Thrust) {
		m.Throttle()
	} else {
		m.Coast()
	}
	if c.Held(input.Brake) {
		m.Brake()
	}
	if c.Held(input.TurnLeft) {
		m.TurnLeft()
	}
	if c.Held(input.TurnRight) {
		m.TurnRight()
	}
	if c.Held(input.RotateClockwise) {
		m.RotateClockwise()
	}
	if c.Held(input.RotateCounterClockwise) {
		m.RotateCounterClockwise()
	}
}

func (d *Drone) tick(*Body, *Frame) {}

func (d *Drone) die() {}

func (d *Drone) reset(b *Body, f *Frame) bool {
	b.Kinematics.Halt()
	b.Kinematics.SetPosition(f.Screen.Center())
	b.Kinematics.AngularSpeedLimit().SetValue(0)
	return true
}
