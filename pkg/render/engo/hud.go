// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-asteroids/pkg/telemetry"
)

// hudZIndex keeps the text above bodies and debug vectors.
const hudZIndex = 100

// hudPriority runs the HUD after the simulation and before rendering.
const hudPriority = -10

// HUDSystem shows score, wave and body counts in the top-left corner.
type HUDSystem struct {
	text  sprite
	font  *common.Font
	added bool

	summary telemetry.TickSummary
	wave    int
	debug   bool

	hudColor color.Color
}

// NewHUDSystem creates a new HUD system. Without a font it keeps its state
// but draws nothing.
func NewHUDSystem(font *common.Font) *HUDSystem {
	return &HUDSystem{
		font:     font,
		hudColor: color.RGBA{255, 255, 255, 255},
	}
}

// Attach adds the HUD text to the render system.
func (hud *HUDSystem) Attach(renderSystem *common.RenderSystem) {
	if hud.font == nil || hud.added {
		return
	}
	hud.text = sprite{BasicEntity: ecs.NewBasic()}
	hud.text.RenderComponent = common.RenderComponent{
		Drawable: common.Text{Font: hud.font, Text: ""},
		Color:    hud.hudColor,
	}
	hud.text.RenderComponent.SetZIndex(hudZIndex)
	hud.text.SpaceComponent = common.SpaceComponent{Position: engo.Point{X: 10, Y: 10}}
	renderSystem.Add(&hud.text.BasicEntity, &hud.text.RenderComponent, &hud.text.SpaceComponent)
	hud.added = true
}

// Priority implements ecs.Prioritizer.
func (hud *HUDSystem) Priority() int { return hudPriority }

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(ecs.BasicEntity) {}

// Update redraws the HUD text.
func (hud *HUDSystem) Update(float32) {
	if !hud.added {
		return
	}
	hud.text.RenderComponent.Drawable = common.Text{
		Font: hud.font,
		Text: strings.Join(hud.Lines(), "\n"),
	}
}

// UpdateState records the world state shown on the next Update.
func (hud *HUDSystem) UpdateState(summary telemetry.TickSummary, wave int, debug bool) {
	hud.summary = summary
	hud.wave = wave
	hud.debug = debug
}

// Lines returns the HUD text.
func (hud *HUDSystem) Lines() []string {
	lines := []string{
		fmt.Sprintf("Score: %d", hud.summary.Score),
		fmt.Sprintf("Wave: %d", hud.wave),
		fmt.Sprintf("Asteroids: %d", hud.summary.Asteroids),
	}
	if hud.debug {
		lines = append(lines,
			fmt.Sprintf("Tick: %d", hud.summary.Tick),
			fmt.Sprintf("Bodies: %d", hud.summary.Bodies),
			fmt.Sprintf("Particles: %d", hud.summary.Particles),
			fmt.Sprintf("Collisions: %d", hud.summary.Collisions),
		)
	}
	return lines
}
