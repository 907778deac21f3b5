package hud

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Array returns the color as a vec4.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float32) Color {
	c.A *= a
	return c
}

// Theme colors.
var (
	ColorWhite        = Color{1, 1, 1, 1}
	ColorButtonNormal = Color{0.15, 0.15, 0.2, 0.75}
	ColorButtonHover  = Color{0.25, 0.25, 0.35, 0.85}
	ColorButtonBusy   = Color{0.15, 0.15, 0.2, 0.35}
	ColorText         = Color{0.9, 0.9, 0.9, 1}
	ColorTextDim      = Color{0.5, 0.5, 0.6, 1}
	ColorProgressBg   = Color{0.05, 0.05, 0.08, 0.6}
	ColorHighlight    = Color{0.2, 0.6, 0.9, 1}
)

// RGBA creates a color from 8-bit RGBA values (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}
