// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/telemetry"
)

// Renderer draws one frame of the simulation. Bodies and debug vectors are
// handed over between Clear and Present.
type Renderer interface {
	Clear()
	DrawBody(b *entity.Body)
	DrawVector(v telemetry.DebugVector)
	Present() error
}

// Frame draws every visible body followed by the debug vectors.
func Frame(r Renderer, bodies []*entity.Body, vectors []telemetry.DebugVector) error {
	r.Clear()
	for _, b := range bodies {
		if b.Visible {
			r.DrawBody(b)
		}
	}
	for _, v := range vectors {
		r.DrawVector(v)
	}
	return r.Present()
}

// NullRenderer logs what it is asked to draw.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{logger: logger}
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// DrawBody implements Renderer.
func (d *NullRenderer) DrawBody(b *entity.Body) {
	ctx := context.Background()
	if b == nil {
		d.logger.Debug(ctx, "DrawBody called with nil body")
		return
	}
	d.logger.Debug(ctx, "DrawBody called",
		"body_id", uint64(b.ID),
		"kind", b.Kind().String(),
		"x", b.Position().X,
		"y", b.Position().Y,
	)
}

// DrawVector implements Renderer.
func (d *NullRenderer) DrawVector(v telemetry.DebugVector) {
	d.logger.Debug(context.Background(), "DrawVector called",
		"tag", v.Tag,
		"magnitude", v.Magnitude,
	)
}

// Present implements Renderer.
func (d *NullRenderer) Present() error {
	d.logger.Debug(context.Background(), "Present called")
	return nil
}
