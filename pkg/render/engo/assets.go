// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-asteroids/pkg/entity"
)

// Texture sizes in pixels. Sprites are stretched to the body dimensions.
const (
	asteroidTextureSize = 64
	droneTextureSize    = 32
	particleTextureSize = 4
)

// AssetManager holds the generated sprite textures.
type AssetManager struct {
	sprites map[entity.Kind]common.Drawable
	vector  common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		sprites: make(map[entity.Kind]common.Drawable),
	}
}

// LoadAssets generates the textures. It needs a GL context, so call it from
// a scene's Setup.
func (am *AssetManager) LoadAssets() error {
	am.sprites[entity.KindAsteroid] = am.convertToEngoTexture(RingImage(asteroidTextureSize, 3))
	am.sprites[entity.KindDrone] = am.convertToEngoTexture(ArrowImage(droneTextureSize))
	am.sprites[entity.KindParticle] = am.convertToEngoTexture(am.createBaseImage(particleTextureSize, particleTextureSize, color.White))
	am.vector = common.Rectangle{}
	return nil
}

// Sprite returns the drawable of a body kind.
func (am *AssetManager) Sprite(kind entity.Kind) common.Drawable {
	if sprite, ok := am.sprites[kind]; ok {
		return sprite
	}
	return common.Rectangle{}
}

// Vector returns the drawable of a debug vector.
func (am *AssetManager) Vector() common.Drawable {
	if am.vector == nil {
		return common.Rectangle{}
	}
	return am.vector
}

// createBaseImage creates an image filled with fill.
func (am *AssetManager) createBaseImage(width, height int, fill color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{fill}, image.Point{}, draw.Src)
	return img
}

// convertToEngoTexture converts an RGBA image to an Engo-compatible texture.
func (am *AssetManager) convertToEngoTexture(img *image.RGBA) common.Drawable {
	bounds := img.Bounds()
	nrgbaImg := image.NewNRGBA(bounds)
	draw.Draw(nrgbaImg, bounds, img, bounds.Min, draw.Src)

	texture := common.NewImageObject(nrgbaImg)
	return common.NewTextureSingle(texture)
}

// RingImage draws a white ring of the given stroke touching the image edges.
// The body tint colors it at render time.
func RingImage(size, stroke int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	outer := float64(size) / 2
	inner := outer - float64(stroke)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - outer
			dy := float64(y) + 0.5 - outer
			d := math.Hypot(dx, dy)
			if d <= outer && d >= inner {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

// ArrowImage draws a white arrowhead pointing along +X, the heading of a
// zero rotation.
func ArrowImage(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	half := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// the arrow narrows linearly from the full height at x=0 to a point
			reach := half * (1 - (float64(x)+0.5)/float64(size))
			if math.Abs(float64(y)+0.5-half) <= reach {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}
