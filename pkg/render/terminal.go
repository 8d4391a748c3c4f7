package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/physics"
	"github.com/opd-ai/go-asteroids/pkg/telemetry"
)

// TerminalRenderer draws the screen as an ASCII grid.
type TerminalRenderer struct {
	out    io.Writer
	width  int
	height int
	buffer [][]rune
	screen physics.Screen
	clear  bool
}

// NewTerminalRenderer creates a renderer of width×height cells covering
// screen. With clearScreen set every frame starts with an ANSI clear.
func NewTerminalRenderer(out io.Writer, width, height int, screen physics.Screen, clearScreen bool) *TerminalRenderer {
	width = max(width, 1)
	height = max(height, 1)
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	return &TerminalRenderer{
		out:    out,
		width:  width,
		height: height,
		buffer: buffer,
		screen: screen,
		clear:  clearScreen,
	}
}

// SetScreen changes the area the grid covers.
func (r *TerminalRenderer) SetScreen(screen physics.Screen) {
	r.screen = screen
}

// cell maps a screen position to a grid cell.
func (r *TerminalRenderer) cell(pos physics.Vector2D) (int, int, bool) {
	if r.screen.Width <= 0 || r.screen.Height <= 0 {
		return 0, 0, false
	}
	x := int(pos.X / r.screen.Width * float64(r.width))
	y := int(pos.Y / r.screen.Height * float64(r.height))
	if pos.X < 0 || pos.Y < 0 || x >= r.width || y >= r.height {
		return 0, 0, false
	}
	return x, y, true
}

func (r *TerminalRenderer) plot(pos physics.Vector2D, symbol rune) {
	if x, y, ok := r.cell(pos); ok {
		r.buffer[y][x] = symbol
	}
}

// Clear implements Renderer.
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// DrawBody implements Renderer.
func (r *TerminalRenderer) DrawBody(b *entity.Body) {
	r.plot(b.Position(), Symbol(b))
}

// DrawVector implements Renderer. Only the tip is drawn.
func (r *TerminalRenderer) DrawVector(v telemetry.DebugVector) {
	r.plot(v.End(), '+')
}

// Present implements Renderer.
func (r *TerminalRenderer) Present() error {
	w := bufio.NewWriter(r.out)
	if r.clear {
		w.WriteString("\033[H\033[2J")
	}

	border := "+" + strings.Repeat("-", r.width) + "+\n"
	w.WriteString(border)
	for y := range r.buffer {
		w.WriteByte('|')
		w.WriteString(string(r.buffer[y]))
		w.WriteString("|\n")
	}
	w.WriteString(border)
	return w.Flush()
}

// Symbol returns the character a body is drawn with.
func Symbol(b *entity.Body) rune {
	switch b.Kind() {
	case entity.KindAsteroid:
		a, _ := b.Asteroid()
		switch a.Level {
		case 3:
			return '@'
		case 2:
			return 'O'
		default:
			return 'o'
		}
	case entity.KindParticle:
		return '.'
	case entity.KindDrone:
		return 'A'
	default:
		return '?'
	}
}
