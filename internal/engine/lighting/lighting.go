// Package lighting provides the scene's ambient and directional lights.
package lighting

import (
	"github.com/Faultbox/carousel3d/internal/config"
	"github.com/Faultbox/carousel3d/pkg/math"
)

// Ambient light lights every surface equally.
type Ambient struct {
	Color     [3]float32 // RGB color (0-1 range)
	Intensity float32
}

// Radiance returns color * intensity.
func (a Ambient) Radiance() [3]float32 {
	return scale(a.Color, a.Intensity)
}

// Directional is a light infinitely far away, shining from Position towards
// the origin.
type Directional struct {
	Color     [3]float32
	Intensity float32
	Position  [3]float32
}

// Direction returns the normalized direction the light travels in.
// A light at the origin shines straight down.
func (d Directional) Direction() [3]float32 {
	p := math.Vec3{X: d.Position[0], Y: d.Position[1], Z: d.Position[2]}
	if p.IsZero() {
		return [3]float32{0, -1, 0}
	}
	return p.Scale(-1).Normalize().Array()
}

// Radiance returns color * intensity.
func (d Directional) Radiance() [3]float32 {
	return scale(d.Color, d.Intensity)
}

// Rig is the light set the renderer uploads each frame.
type Rig struct {
	Ambient     Ambient
	Directional Directional
}

// FromConfig builds a rig from lighting settings.
func FromConfig(cfg config.LightingConfig) Rig {
	return Rig{
		Ambient: Ambient{Color: cfg.AmbientColor, Intensity: cfg.AmbientIntensity},
		Directional: Directional{
			Color:     cfg.DirectionalColor,
			Intensity: cfg.DirectionalIntensity,
			Position:  cfg.DirectionalPosition,
		},
	}
}

// HexColor converts 0xRRGGBB to RGB in the 0-1 range.
func HexColor(hex uint32) [3]float32 {
	return [3]float32{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

func scale(c [3]float32, s float32) [3]float32 {
	return [3]float32{c[0] * s, c[1] * s, c[2] * s}
}
