// Package input defines the per-frame command oracle the simulation reads
// player intent from, and the frozen snapshot every body sees during a tick.
package input

import (
	"fmt"
	"strings"
)

// Command is an abstract player intent, independent of key bindings.
type Command int

const (
	Thrust Command = iota
	Brake
	TurnLeft
	TurnRight
	RotateClockwise
	RotateCounterClockwise
	Debug

	commandCount
)

var commandNames = [commandCount]string{
	Thrust:                 "thrust",
	Brake:                  "brake",
	TurnLeft:               "turn_left",
	TurnRight:              "turn_right",
	RotateClockwise:        "rotate_cw",
	RotateCounterClockwise: "rotate_ccw",
	Debug:                  "debug",
}

func (c Command) String() string {
	if c < 0 || c >= commandCount {
		return fmt.Sprintf("command(%d)", int(c))
	}
	return commandNames[c]
}

// Commands lists every known command.
func Commands() []Command {
	all := make([]Command, commandCount)
	for i := range all {
		all[i] = Command(i)
	}
	return all
}

// ParseCommand resolves a command by name, case-insensitively.
func ParseCommand(name string) (Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range commandNames {
		if n == name {
			return Command(i), nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", name)
}

// Oracle answers whether a command is active. Pressed and Released are the
// edge variants for the current frame.
type Oracle interface {
	Held(c Command) bool
	Pressed(c Command) bool
	Released(c Command) bool
}

// State is the captured state of one command.
type State struct {
	Held     bool
	Pressed  bool
	Released bool
}

// Snapshot is an immutable capture of an Oracle for one frame. All bodies of
// a tick read the same snapshot.
type Snapshot struct {
	states [commandCount]State
}

// Capture freezes o. A nil oracle yields an idle snapshot.
func Capture(o Oracle) Snapshot {
	var s Snapshot
	if o == nil {
		return s
	}
	for i := range s.states {
		c := Command(i)
		s.states[i] = State{
			Held:     o.Held(c),
			Pressed:  o.Pressed(c),
			Released: o.Released(c),
		}
	}
	return s
}

// State returns the captured state of c.
func (s Snapshot) State(c Command) State {
	if c < 0 || c >= commandCount {
		return State{}
	}
	return s.states[c]
}

// Held reports whether c is down this frame.
func (s Snapshot) Held(c Command) bool { return s.State(c).Held }

// Pressed reports whether c went down this frame.
func (s Snapshot) Pressed(c Command) bool { return s.State(c).Pressed }

// Released reports whether c went up this frame.
func (s Snapshot) Released(c Command) bool { return s.State(c).Released }

// Idle reports whether no command is active in any way.
func (s Snapshot) Idle() bool {
	return s.states == [commandCount]State{}
}
