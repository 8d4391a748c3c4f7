// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-asteroids/pkg/input"
)

// QuitButton closes the window.
const QuitButton = "quit"

// Bindings maps every command to its keys.
var Bindings = map[input.Command][]engo.Key{
	input.Thrust:                 {engo.KeyW, engo.KeyArrowUp},
	input.Brake:                  {engo.KeyS, engo.KeyArrowDown},
	input.TurnLeft:               {engo.KeyA, engo.KeyArrowLeft},
	input.TurnRight:              {engo.KeyD, engo.KeyArrowRight},
	input.RotateClockwise:        {engo.KeyE},
	input.RotateCounterClockwise: {engo.KeyQ},
	input.Debug:                  {engo.KeyF1},
}

// SetupInputBindings registers one engo button per command, named after the
// command.
func SetupInputBindings() {
	for _, c := range input.Commands() {
		engo.Input.RegisterButton(c.String(), Bindings[c]...)
	}
	engo.Input.RegisterButton(QuitButton, engo.KeyEscape)
}

// KeyboardOracle reads commands from the engo buttons registered by
// SetupInputBindings.
type KeyboardOracle struct{}

// Held implements input.Oracle.
func (KeyboardOracle) Held(c input.Command) bool {
	return engo.Input.Button(c.String()).Down()
}

// Pressed implements input.Oracle.
func (KeyboardOracle) Pressed(c input.Command) bool {
	return engo.Input.Button(c.String()).JustPressed()
}

// Released implements input.Oracle.
func (KeyboardOracle) Released(c input.Command) bool {
	return engo.Input.Button(c.String()).JustReleased()
}

// heldOnly hides the edges of an oracle. A frame that runs several
// simulation steps reports a press on the first step only.
type heldOnly struct {
	input.Oracle
}

func (heldOnly) Pressed(input.Command) bool  { return false }
func (heldOnly) Released(input.Command) bool { return false }

// edgeLatch keeps the press and release edges of window frames that ran no
// simulation step until the next step consumes them.
type edgeLatch struct {
	pressed  map[input.Command]bool
	released map[input.Command]bool
}

// Observe records the edges o reports for this window frame.
func (l *edgeLatch) Observe(o input.Oracle) {
	if l.pressed == nil {
		l.pressed = make(map[input.Command]bool)
		l.released = make(map[input.Command]bool)
	}
	for _, c := range input.Commands() {
		if o.Pressed(c) {
			l.pressed[c] = true
		}
		if o.Released(c) {
			l.released[c] = true
		}
	}
}

// Take returns o with every latched edge added and forgets the edges.
func (l *edgeLatch) Take(o input.Oracle) input.Oracle {
	out := latched{Oracle: o, pressed: l.pressed, released: l.released}
	l.pressed, l.released = nil, nil
	return out
}

type latched struct {
	input.Oracle
	pressed  map[input.Command]bool
	released map[input.Command]bool
}

func (o latched) Pressed(c input.Command) bool  { return o.pressed[c] || o.Oracle.Pressed(c) }
func (o latched) Released(c input.Command) bool { return o.released[c] || o.Oracle.Released(c) }
