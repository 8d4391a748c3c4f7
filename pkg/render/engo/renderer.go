// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/telemetry"
)

// Debug vector lengths are scaled per tag so velocity in pixels per second
// and per-tick acceleration both read on screen.
var vectorScale = map[string]float64{
	telemetry.TagVelocity:     0.25,
	telemetry.TagAcceleration: 4,
	telemetry.TagDirection:    1,
}

var vectorColor = map[string]color.Color{
	telemetry.TagVelocity:     color.RGBA{0, 255, 0, 255},
	telemetry.TagAcceleration: color.RGBA{255, 0, 0, 255},
	telemetry.TagDirection:    color.RGBA{255, 255, 0, 255},
}

const vectorZIndex = 10

// sprite is one render-system entity.
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// EngoRenderer implements render.Renderer on top of the engo render system.
// Each body keeps its sprite between frames, keyed by body ID.
type EngoRenderer struct {
	renderSystem *common.RenderSystem
	assets       *AssetManager

	bodies  map[entity.ID]*sprite
	seen    map[entity.ID]bool
	vectors []*sprite
	used    int
}

// NewEngoRenderer creates a renderer drawing through renderSystem.
func NewEngoRenderer(renderSystem *common.RenderSystem, assets *AssetManager) *EngoRenderer {
	return &EngoRenderer{
		renderSystem: renderSystem,
		assets:       assets,
		bodies:       make(map[entity.ID]*sprite),
		seen:         make(map[entity.ID]bool),
	}
}

// Clear implements render.Renderer.
func (r *EngoRenderer) Clear() {
	clear(r.seen)
	r.used = 0
}

// DrawBody implements render.Renderer.
func (r *EngoRenderer) DrawBody(b *entity.Body) {
	s, ok := r.bodies[b.ID]
	if !ok {
		s = &sprite{BasicEntity: ecs.NewBasic()}
		s.RenderComponent = common.RenderComponent{Drawable: r.assets.Sprite(b.Kind())}
		r.bodies[b.ID] = s
		r.renderSystem.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	r.seen[b.ID] = true

	s.SpaceComponent = BodySpace(b)
	s.RenderComponent.Color = b.Tint
	s.RenderComponent.Hidden = !b.Visible
}

// DrawVector implements render.Renderer.
func (r *EngoRenderer) DrawVector(v telemetry.DebugVector) {
	if r.used == len(r.vectors) {
		s := &sprite{BasicEntity: ecs.NewBasic()}
		s.RenderComponent = common.RenderComponent{Drawable: r.assets.Vector()}
		r.vectors = append(r.vectors, s)
		r.renderSystem.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	s := r.vectors[r.used]
	r.used++

	s.SpaceComponent = VectorSpace(v)
	s.RenderComponent.Color = vectorColor[v.Tag]
	s.RenderComponent.Hidden = false
	s.RenderComponent.SetZIndex(float32(vectorZIndex + v.Priority))
}

// Present implements render.Renderer. Sprites of bodies that were not drawn
// this frame are dropped and spare vector sprites hidden.
func (r *EngoRenderer) Present() error {
	for id, s := range r.bodies {
		if !r.seen[id] {
			r.renderSystem.Remove(s.BasicEntity)
			delete(r.bodies, id)
		}
	}
	for _, s := range r.vectors[r.used:] {
		s.RenderComponent.Hidden = true
	}
	return nil
}

// BodySpace places a sprite over the body: centered on its position, sized
// to its dimensions and turned to its rotation.
func BodySpace(b *entity.Body) common.SpaceComponent {
	dims := b.Collider.Dimensions
	space := common.SpaceComponent{
		Width:    float32(dims.X),
		Height:   float32(dims.Y),
		Rotation: degrees(b.Kinematics.Rotation()),
	}
	pos := b.Position()
	space.SetCenter(engo.Point{X: float32(pos.X), Y: float32(pos.Y)})
	return space
}

// VectorSpace lays a thin bar from the vector origin along its direction.
func VectorSpace(v telemetry.DebugVector) common.SpaceComponent {
	scale, ok := vectorScale[v.Tag]
	if !ok {
		scale = 1
	}
	return common.SpaceComponent{
		Position: engo.Point{X: float32(v.Position.X), Y: float32(v.Position.Y)},
		Width:    float32(v.Magnitude * scale),
		Height:   float32(max(v.Thickness, 1)),
		Rotation: degrees(v.Direction.Angle()),
	}
}

func degrees(radians float64) float32 {
	return float32(radians * 180 / math.Pi)
}
