// Package camera provides the orbit camera used to view the carousel.
package camera

import (
	gomath "math"

	"github.com/Faultbox/carousel3d/internal/config"
	"github.com/Faultbox/carousel3d/pkg/math"
)

// OrbitCamera orbits around a target point. Drag input accumulates into a
// pending delta that Update applies, so with damping enabled the camera
// eases to a stop instead of halting with the mouse.
type OrbitCamera struct {
	Target math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from target
	Pitch    float32 // Vertical angle, radians
	Yaw      float32 // Horizontal angle, radians

	// Projection
	FOV  float32 // Vertical field of view, degrees
	Near float32
	Far  float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Controls
	Damping       bool
	DampingFactor float32
	EnableZoom    bool
	EnablePan     bool

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
	PanSensitivity  float32

	yawDelta   float32
	pitchDelta float32
	zoomDelta  float32
	panDelta   math.Vec3
}

// NewOrbitCamera creates a camera on +Z looking at the origin.
func NewOrbitCamera(cfg config.CameraConfig) *OrbitCamera {
	return &OrbitCamera{
		Distance:        cfg.Distance,
		FOV:             cfg.FOV,
		Near:            cfg.Near,
		Far:             cfg.Far,
		MinDistance:     0.5,
		MaxDistance:     cfg.Far / 2,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		Damping:         cfg.Damping,
		DampingFactor:   cfg.DampingFactor,
		EnableZoom:      cfg.EnableZoom,
		EnablePan:       cfg.EnablePan,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		PanSensitivity:  0.002,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cp := float64(c.Pitch)
	cy := float64(c.Yaw)
	x := c.Distance * float32(gomath.Cos(cp)*gomath.Sin(cy))
	y := c.Distance * float32(gomath.Sin(cp))
	z := c.Distance * float32(gomath.Cos(cp)*gomath.Cos(cy))
	return c.Target.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for the given aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(math.Radians(c.FOV), aspect, c.Near, c.Far)
}

// HandleDrag queues a rotation from a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.yawDelta -= deltaX * c.DragSensitivity
	c.pitchDelta += deltaY * c.DragSensitivity
}

// HandleZoom queues a dolly from a scroll wheel delta. Ignored unless zoom
// is enabled.
func (c *OrbitCamera) HandleZoom(delta float32) {
	if !c.EnableZoom {
		return
	}
	c.zoomDelta += delta * c.ZoomSensitivity
}

// HandlePan queues a target shift in the view plane. Ignored unless pan is
// enabled.
func (c *OrbitCamera) HandlePan(deltaX, deltaY float32) {
	if !c.EnablePan {
		return
	}
	yaw := float64(c.Yaw)
	right := math.Vec3{X: float32(gomath.Cos(yaw)), Z: float32(-gomath.Sin(yaw))}
	up := math.Vec3{Y: 1}

	speed := c.Distance * c.PanSensitivity
	c.panDelta = c.panDelta.
		Add(right.Scale(-deltaX * speed)).
		Add(up.Scale(deltaY * speed))
}

// Update applies queued input. Call once per frame.
func (c *OrbitCamera) Update() {
	f := float32(1)
	if c.Damping && c.DampingFactor > 0 && c.DampingFactor < 1 {
		f = c.DampingFactor
	}

	c.Yaw += c.yawDelta * f
	c.Pitch += c.pitchDelta * f
	c.Pitch = clamp(c.Pitch, c.MinPitch, c.MaxPitch)
	c.Distance -= c.zoomDelta * f * c.Distance
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
	c.Target = c.Target.Add(c.panDelta.Scale(f))

	if f == 1 {
		c.yawDelta, c.pitchDelta, c.zoomDelta = 0, 0, 0
		c.panDelta = math.Vec3{}
		return
	}
	keep := 1 - f
	c.yawDelta *= keep
	c.pitchDelta *= keep
	c.zoomDelta *= keep
	c.panDelta = c.panDelta.Scale(keep)
}

// Settled reports whether no queued motion remains.
func (c *OrbitCamera) Settled() bool {
	const eps = 1e-5
	return abs(c.yawDelta) < eps && abs(c.pitchDelta) < eps &&
		abs(c.zoomDelta) < eps && c.panDelta.Length() < eps
}

// Reset returns the camera to its starting orientation.
func (c *OrbitCamera) Reset(distance float32) {
	c.Target = math.Vec3{}
	c.Distance = distance
	c.Pitch, c.Yaw = 0, 0
	c.yawDelta, c.pitchDelta, c.zoomDelta = 0, 0, 0
	c.panDelta = math.Vec3{}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
