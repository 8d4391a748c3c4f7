// Package pilot steers the drone without a keyboard: autopilot behaviors for
// headless runs and a player for scripted command sequences.
package pilot

import (
	"fmt"
	"math"
	"strings"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/input"
	"github.com/opd-ai/go-asteroids/pkg/physics"
	"github.com/opd-ai/go-asteroids/pkg/rng"
)

// Autopilot tuning
const (
	// AimTolerance is the heading error in radians under which the hunter
	// stops turning.
	AimTolerance = 0.1
	// ThrustCone is the heading error under which the hunter thrusts.
	ThrustCone = 0.3
	// CruiseFraction of the speed limit above which the hunter brakes.
	CruiseFraction = 0.6
	// ExplorerTurnChance is the per-tick chance an explorer changes course.
	ExplorerTurnChance = 0.1
)

// World is the part of the simulation a pilot looks at.
type World interface {
	Bodies() []*entity.Body
}

// Controller decides the commands of the next step.
type Controller interface {
	Plan(w World) input.Oracle
}

// Behavior selects how an autopilot flies.
type Behavior int

const (
	// BehaviorIdle holds nothing.
	BehaviorIdle Behavior = iota
	// BehaviorExplorer thrusts and changes course at random.
	BehaviorExplorer
	// BehaviorHunter turns towards the nearest asteroid and rams it.
	BehaviorHunter
)

var behaviorNames = [...]string{"idle", "explorer", "hunter"}

func (b Behavior) String() string {
	if b < 0 || int(b) >= len(behaviorNames) {
		return "unknown"
	}
	return behaviorNames[b]
}

// ParseBehavior parses a behavior name.
func ParseBehavior(name string) (Behavior, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range behaviorNames {
		if n == name {
			return Behavior(i), nil
		}
	}
	return BehaviorIdle, fmt.Errorf("unknown pilot behavior %q", name)
}

// Autopilot flies the first drone of a world.
type Autopilot struct {
	behavior Behavior
	script   *input.Scripted
	random   *rng.Source
}

// NewAutopilot creates an autopilot. seed drives the explorer's course
// changes.
func NewAutopilot(behavior Behavior, seed uint64) *Autopilot {
	return &Autopilot{
		behavior: behavior,
		script:   input.NewScripted(),
		random:   rng.New(seed),
	}
}

// Behavior returns the configured behavior.
func (ai *Autopilot) Behavior() Behavior { return ai.behavior }

// Plan implements Controller.
func (ai *Autopilot) Plan(w World) input.Oracle {
	ai.script.Hold(ai.decide(w)...)
	ai.script.Advance()
	return ai.script
}

func (ai *Autopilot) decide(w World) []input.Command {
	drone := findDrone(w)
	if drone == nil {
		return nil
	}

	switch ai.behavior {
	case BehaviorExplorer:
		return ai.explore()
	case BehaviorHunter:
		return ai.hunt(drone, w)
	default:
		return nil
	}
}

// explore keeps thrusting and now and then turns.
func (ai *Autopilot) explore() []input.Command {
	commands := []input.Command{input.Thrust}
	if ai.random.Float(0, 1) < ExplorerTurnChance {
		if ai.random.Sign() < 0 {
			commands = append(commands, input.TurnLeft)
		} else {
			commands = append(commands, input.TurnRight)
		}
	}
	return commands
}

// hunt turns towards the nearest asteroid, thrusts when roughly aimed and
// brakes when too fast.
func (ai *Autopilot) hunt(drone *entity.Body, w World) []input.Command {
	target := nearestAsteroid(drone.Position(), w)
	if target == nil {
		return nil
	}
	m := drone.Kinematics

	var commands []input.Command
	diff := HeadingError(m.Direction(), target.Position().Sub(drone.Position()))
	if math.Abs(diff) > AimTolerance {
		// angles grow clockwise on a screen with Y pointing down
		if diff > 0 {
			commands = append(commands, input.TurnRight)
		} else {
			commands = append(commands, input.TurnLeft)
		}
	}
	if math.Abs(diff) < ThrustCone {
		commands = append(commands, input.Thrust)
	}
	if m.Speed() > m.SpeedLimit().Maximum()*CruiseFraction {
		commands = append(commands, input.Brake)
	}
	return commands
}

// HeadingError returns the signed angle in [-π, π] from heading to the
// direction of target.
func HeadingError(heading, target physics.Vector2D) float64 {
	if target.IsEmpty() {
		return 0
	}
	return physics.WrapAngle(target.Angle() - heading.Angle())
}

func findDrone(w World) *entity.Body {
	for _, b := range w.Bodies() {
		if b.Kind() == entity.KindDrone && b.Enabled() {
			return b
		}
	}
	return nil
}

func nearestAsteroid(from physics.Vector2D, w World) *entity.Body {
	var nearest *entity.Body
	best := math.Inf(1)
	for _, b := range w.Bodies() {
		if b.Kind() != entity.KindAsteroid || !b.Enabled() {
			continue
		}
		if d := b.Position().Distance(from); d < best {
			best = d
			nearest = b
		}
	}
	return nearest
}
