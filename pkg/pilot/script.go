package pilot

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-asteroids/pkg/input"
)

// ErrInvalidScript is returned for scripts that cannot be played.
var ErrInvalidScript = errors.New("invalid script")

// Segment holds a set of commands for a number of ticks.
type Segment struct {
	Ticks int      `yaml:"ticks"`
	Hold  []string `yaml:"hold"`

	commands []input.Command
}

// Script is a sequence of segments, for example:
//
//	loop: true
//	segments:
//	  - ticks: 30
//	    hold: [thrust]
//	  - ticks: 10
//	    hold: [turn_left, brake]
type Script struct {
	Loop     bool      `yaml:"loop"`
	Segments []Segment `yaml:"segments"`
}

// LoadScript reads a YAML script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes and validates a YAML script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	if err := s.compile(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) compile() error {
	for i := range s.Segments {
		seg := &s.Segments[i]
		if seg.Ticks < 1 {
			return fmt.Errorf("%w: segment %d lasts %d ticks", ErrInvalidScript, i, seg.Ticks)
		}
		seg.commands = seg.commands[:0]
		for _, name := range seg.Hold {
			c, err := input.ParseCommand(name)
			if err != nil {
				return fmt.Errorf("%w: segment %d: %w", ErrInvalidScript, i, err)
			}
			seg.commands = append(seg.commands, c)
		}
	}
	return nil
}

// Ticks returns the length of one pass through the script.
func (s *Script) Ticks() int {
	n := 0
	for _, seg := range s.Segments {
		n += seg.Ticks
	}
	return n
}

// Player plays a script one tick per Plan call. After the last segment it
// starts over when the script loops and holds nothing otherwise.
type Player struct {
	script  *Script
	segment int
	elapsed int
	oracle  *input.Scripted
}

// NewPlayer creates a player at the start of script.
func NewPlayer(script *Script) *Player {
	return &Player{script: script, oracle: input.NewScripted()}
}

// Done reports whether a non-looping script has run out.
func (p *Player) Done() bool {
	return p.segment >= len(p.script.Segments)
}

// Plan implements Controller. The world is not consulted.
func (p *Player) Plan(World) input.Oracle {
	if p.Done() && p.script.Loop && len(p.script.Segments) > 0 {
		p.segment = 0
	}
	if p.Done() {
		p.oracle.Hold()
		p.oracle.Advance()
		return p.oracle
	}

	seg := p.script.Segments[p.segment]
	p.oracle.Hold(seg.commands...)
	p.oracle.Advance()

	p.elapsed++
	if p.elapsed >= seg.Ticks {
		p.segment++
		p.elapsed = 0
	}
	return p.oracle
}
