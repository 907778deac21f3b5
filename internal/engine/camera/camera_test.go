package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/carousel3d/internal/config"
)

func newTestCamera(mod func(*config.CameraConfig)) *OrbitCamera {
	cfg := config.Default().Camera
	if mod != nil {
		mod(&cfg)
	}
	return NewOrbitCamera(cfg)
}

func TestStartsOnPositiveZ(t *testing.T) {
	c := newTestCamera(nil)
	p := c.Position()
	assert.InDelta(t, 0, p.X, 1e-6)
	assert.InDelta(t, 0, p.Y, 1e-6)
	assert.InDelta(t, 5, p.Z, 1e-6)

	// Origin lands in front of the camera at distance 5.
	o := c.ViewMatrix().TransformPoint([3]float32{0, 0, 0})
	assert.InDelta(t, -5, o[2], 1e-5)
}

func TestDragWithoutDampingAppliesAtOnce(t *testing.T) {
	c := newTestCamera(func(cfg *config.CameraConfig) { cfg.Damping = false })
	c.HandleDrag(-100, 0)
	c.Update()
	assert.InDelta(t, 0.5, c.Yaw, 1e-6)
	assert.True(t, c.Settled())
}

func TestDampingEasesOut(t *testing.T) {
	c := newTestCamera(nil)
	c.HandleDrag(-100, 0)

	c.Update()
	first := c.Yaw
	assert.InDelta(t, 0.5*0.05, first, 1e-6)
	assert.False(t, c.Settled())

	for i := 0; i < 500; i++ {
		c.Update()
	}
	assert.InDelta(t, 0.5, c.Yaw, 1e-3)
	assert.True(t, c.Settled())
}

func TestPitchClamped(t *testing.T) {
	c := newTestCamera(func(cfg *config.CameraConfig) { cfg.Damping = false })
	c.HandleDrag(0, 10000)
	c.Update()
	assert.Equal(t, c.MaxPitch, c.Pitch)

	c.HandleDrag(0, -100000)
	c.Update()
	assert.Equal(t, c.MinPitch, c.Pitch)
}

func TestZoomAndPanDisabledByDefault(t *testing.T) {
	c := newTestCamera(nil)
	c.HandleZoom(5)
	c.HandlePan(50, 50)
	for i := 0; i < 10; i++ {
		c.Update()
	}
	assert.Equal(t, float32(5), c.Distance)
	assert.True(t, c.Target.IsZero())
}

func TestZoomWhenEnabled(t *testing.T) {
	c := newTestCamera(func(cfg *config.CameraConfig) {
		cfg.Damping = false
		cfg.EnableZoom = true
		cfg.EnablePan = true
	})
	c.HandleZoom(1)
	c.Update()
	assert.InDelta(t, 4.5, c.Distance, 1e-5)

	c.HandlePan(-100, 0)
	c.Update()
	assert.Greater(t, c.Target.X, float32(0))
}

func TestReset(t *testing.T) {
	c := newTestCamera(func(cfg *config.CameraConfig) { cfg.Damping = false })
	c.HandleDrag(40, 40)
	c.Update()
	c.Reset(5)
	assert.Zero(t, c.Yaw)
	assert.Zero(t, c.Pitch)
	assert.True(t, c.Settled())
}

func TestProjectionGuardsAspect(t *testing.T) {
	c := newTestCamera(nil)
	assert.Equal(t, c.ProjectionMatrix(1), c.ProjectionMatrix(0))
}
