package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/physics"
	"github.com/opd-ai/go-asteroids/pkg/telemetry"
)

func newDrone(t *testing.T, pos physics.Vector2D) *entity.Body {
	t.Helper()
	b, err := entity.NewDrone(1, config.DefaultConfig().Drone.DroneConfig, pos, 0)
	if err != nil {
		t.Fatalf("NewDrone() failed: %v", err)
	}
	return b
}

func newAsteroid(t *testing.T, level int, pos physics.Vector2D) *entity.Body {
	t.Helper()
	b, err := entity.NewAsteroid(2, config.DefaultConfig().Asteroid, level, pos, 0)
	if err != nil {
		t.Fatalf("NewAsteroid() failed: %v", err)
	}
	return b
}

func TestNewTerminalRenderer_ClampsDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"regular", 80, 24, 80, 24},
		{"zero", 0, 0, 1, 1},
		{"negative", -3, 5, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewTerminalRenderer(&bytes.Buffer{}, tt.width, tt.height, physics.Screen{Width: 100, Height: 100}, false)
			if r.width != tt.wantW || r.height != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", r.width, r.height, tt.wantW, tt.wantH)
			}
			if len(r.buffer) != tt.wantH || len(r.buffer[0]) != tt.wantW {
				t.Errorf("buffer is %dx%d, want %dx%d", len(r.buffer[0]), len(r.buffer), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestTerminalRenderer_Cell(t *testing.T) {
	r := NewTerminalRenderer(&bytes.Buffer{}, 10, 5, physics.Screen{Width: 100, Height: 50}, false)

	tests := []struct {
		name   string
		pos    physics.Vector2D
		x, y   int
		inside bool
	}{
		{"origin", physics.Vector2D{}, 0, 0, true},
		{"middle", physics.Vector2D{X: 55, Y: 25}, 5, 2, true},
		{"last_cell", physics.Vector2D{X: 99.9, Y: 49.9}, 9, 4, true},
		{"right_edge", physics.Vector2D{X: 100, Y: 10}, 0, 0, false},
		{"above", physics.Vector2D{X: 10, Y: -1}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := r.cell(tt.pos)
			if ok != tt.inside {
				t.Fatalf("inside = %v, want %v", ok, tt.inside)
			}
			if ok && (x != tt.x || y != tt.y) {
				t.Errorf("cell = (%d, %d), want (%d, %d)", x, y, tt.x, tt.y)
			}
		})
	}
}

func TestTerminalRenderer_Frame(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(&out, 10, 4, physics.Screen{Width: 100, Height: 40}, false)

	drone := newDrone(t, physics.Vector2D{X: 5, Y: 5})
	rock := newAsteroid(t, 3, physics.Vector2D{X: 95, Y: 35})
	hidden := newAsteroid(t, 1, physics.Vector2D{X: 50, Y: 5})
	hidden.Visible = false
	vectors := []telemetry.DebugVector{{
		Position:  physics.Vector2D{X: 50, Y: 20},
		Direction: physics.Vector2D{X: 1},
		Magnitude: 10,
	}}

	if err := Frame(r, []*entity.Body{drone, rock, hidden}, vectors); err != nil {
		t.Fatalf("Frame() failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), out.String())
	}
	want := []string{
		"+----------+",
		"|A         |",
		"|          |",
		"|      +   |",
		"|         @|",
		"+----------+",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestSymbol(t *testing.T) {
	tests := []struct {
		name string
		body *entity.Body
		want rune
	}{
		{"drone", newDrone(t, physics.Vector2D{}), 'A'},
		{"large_asteroid", newAsteroid(t, 3, physics.Vector2D{}), '@'},
		{"medium_asteroid", newAsteroid(t, 2, physics.Vector2D{}), 'O'},
		{"small_asteroid", newAsteroid(t, 1, physics.Vector2D{}), 'o'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Symbol(tt.body); got != tt.want {
				t.Errorf("Symbol() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNullRenderer_AcceptsEverything(t *testing.T) {
	r := NewNullRenderer(nil)
	if err := Frame(r, []*entity.Body{newDrone(t, physics.Vector2D{})}, nil); err != nil {
		t.Errorf("Frame() failed: %v", err)
	}
	r.DrawBody(nil)
}
