// Package renderer draws the carousel's slot meshes with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/carousel3d/internal/carousel"
	"github.com/Faultbox/carousel3d/internal/engine/lighting"
	"github.com/Faultbox/carousel3d/internal/engine/shader"
	"github.com/Faultbox/carousel3d/internal/logger"
	"github.com/Faultbox/carousel3d/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
	Lights     lighting.Rig
}

// Renderer handles all OpenGL rendering of slot meshes. It implements
// carousel.Display.
type Renderer struct {
	config  Config
	program *shader.Program
	log     *zap.Logger

	meshes []*GPUMesh
	table  slotTable
}

var _ carousel.Display = (*Renderer)(nil)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	var err error
	r.program, err = shader.Load("model")
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.releaseMeshes()
	if r.program != nil {
		r.program.Delete()
	}
}

// SetMeshes replaces the slot meshes, releasing the previous ones. Slot i
// draws meshes[i].
func (r *Renderer) SetMeshes(meshes []*GPUMesh) {
	r.releaseMeshes()
	r.meshes = meshes
	r.table.reset(len(meshes))
	r.log.Debug("meshes installed", zap.Int("count", len(meshes)))
}

func (r *Renderer) releaseMeshes() {
	for _, m := range r.meshes {
		m.Delete()
	}
	r.meshes = nil
}

// SetSlot records the pose and visibility for slot index.
func (r *Renderer) SetSlot(index int, pose carousel.Pose, visible bool) {
	if !r.table.set(index, pose, visible) {
		r.log.Warn("pose for unknown slot", zap.Int("index", index))
	}
}

// SetLights replaces the light rig.
func (r *Renderer) SetLights(rig lighting.Rig) {
	r.config.Lights = rig
}

// Resize handles window resize. Sizes are in drawable pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size in pixels.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Aspect returns width / height.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Enable(gl.DEPTH_TEST)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Render draws every visible slot.
func (r *Renderer) Render(view, projection math.Mat4) {
	draws := r.table.draws(1)
	if len(draws) == 0 {
		return
	}

	p := r.program
	p.Use()
	p.SetMat4("uProjection", (*[16]float32)(&projection))
	p.SetMat4("uView", (*[16]float32)(&view))
	p.SetVec3("uAmbientColor", r.config.Lights.Ambient.Radiance())
	p.SetVec3("uLightDir", r.config.Lights.Directional.Direction())
	p.SetVec3("uLightColor", r.config.Lights.Directional.Radiance())

	for _, d := range draws {
		if d.index >= len(r.meshes) || r.meshes[d.index] == nil {
			continue
		}
		mesh := r.meshes[d.index]
		m := d.model
		p.SetMat4("uModel", (*[16]float32)(&m))

		// Mirrored model matrices flip the front face.
		if m.Determinant3() < 0 {
			gl.FrontFace(gl.CW)
		} else {
			gl.FrontFace(gl.CCW)
		}

		gl.BindVertexArray(mesh.vao)
		for _, g := range mesh.groups {
			p.SetVec4("uBaseColor", g.BaseColor)
			gl.DrawElementsWithOffset(gl.TRIANGLES, g.IndexCount, gl.UNSIGNED_INT, uintptr(g.StartIndex)*4)
		}
	}
	gl.BindVertexArray(0)
	gl.FrontFace(gl.CCW)
}

// ReadPixels returns the current framebuffer as RGBA rows, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	return pixels, w, h
}
