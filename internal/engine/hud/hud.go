// Package hud draws the carousel overlay: previous/next arrow buttons, a
// slide counter and a transition progress bar.
package hud

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/carousel3d/internal/carousel"
	"github.com/Faultbox/carousel3d/internal/engine/input"
	"github.com/Faultbox/carousel3d/internal/engine/shader"
	"github.com/Faultbox/carousel3d/pkg/math"
)

// Vertex format: x, y, u, v (4 floats)
const floatsPerVertex = 4

type textTexture struct {
	id   uint32
	w, h int
}

// HUD renders the overlay in screen coordinates.
type HUD struct {
	program *shader.Program
	vao     uint32
	vbo     uint32

	width, height float32 // screen coordinates
	layout        Layout

	mouseX, mouseY float32
	texts          map[string]*textTexture
}

// New creates the HUD. Must be called on the GL thread.
func New(width, height int) (*HUD, error) {
	program, err := shader.Load("hud")
	if err != nil {
		return nil, fmt.Errorf("create hud shader: %w", err)
	}

	h := &HUD{
		program: program,
		texts:   make(map[string]*textTexture),
	}

	gl.GenVertexArrays(1, &h.vao)
	gl.BindVertexArray(h.vao)
	gl.GenBuffers(1, &h.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 6*floatsPerVertex*4, nil, gl.DYNAMIC_DRAW)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	h.Resize(width, height)
	return h, nil
}

// Resize updates the screen size in screen coordinates. The orthographic
// projection spans the whole viewport, so HiDPI scaling needs no extra work.
func (h *HUD) Resize(width, height int) {
	h.width = float32(width)
	h.height = float32(height)
	h.layout = NewLayout(h.width, h.height)
}

// Layout returns the current element placement.
func (h *HUD) Layout() Layout {
	return h.layout
}

// SetMouse records the cursor position for hover highlighting.
func (h *HUD) SetMouse(x, y float32) {
	h.mouseX, h.mouseY = x, y
}

// Click returns the action for a click, if it hit a button.
func (h *HUD) Click(c input.Click) input.Action {
	return h.layout.HitTest(float32(c.X), float32(c.Y))
}

// Draw renders the overlay for the animator's current state.
func (h *HUD) Draw(a *carousel.Animator, loading bool) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	h.program.Use()
	proj := math.Ortho(0, h.width, h.height, 0, -1, 1)
	h.program.SetMat4("uProjection", (*[16]float32)(&proj))
	h.program.SetInt("uTexture", 0)
	gl.BindVertexArray(h.vao)

	busy := a.Transitioning() || a.Len() < 2
	h.drawButton(h.layout.Prev, "<", busy)
	h.drawButton(h.layout.Next, ">", busy)

	label := LabelText(a.State(), a.Len(), loading)
	h.drawTextCentered(h.layout.Label, label, ColorText)

	bar := h.layout.Progress
	h.drawRect(bar, ColorProgressBg)
	if a.Transitioning() {
		fill := bar
		fill.W = bar.W * float32(a.Fraction())
		h.drawRect(fill, ColorHighlight)
	}

	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

func (h *HUD) drawButton(r Rect, glyph string, busy bool) {
	bg := ColorButtonNormal
	text := ColorText
	switch {
	case busy:
		bg = ColorButtonBusy
		text = ColorTextDim
	case r.Contains(h.mouseX, h.mouseY):
		bg = ColorButtonHover
	}
	h.drawRect(r, bg)
	h.drawTextCentered(r, glyph, text)
}

func (h *HUD) drawRect(r Rect, c Color) {
	h.program.SetBool("uUseTexture", false)
	h.program.SetVec4("uColor", c.Array())
	h.quad(r, 0, 0, 1, 1)
}

// drawTextCentered draws text at 2x glyph size centred in r.
func (h *HUD) drawTextCentered(r Rect, text string, c Color) {
	tex := h.text(text)
	const scale = 2
	w := float32(tex.w) * scale
	ht := float32(tex.h) * scale
	dst := Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-ht)/2, W: w, H: ht}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex.id)
	h.program.SetBool("uUseTexture", true)
	h.program.SetVec4("uColor", c.Array())
	h.quad(dst, 0, 0, 1, 1)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (h *HUD) quad(r Rect, u0, v0, u1, v1 float32) {
	verts := [6 * floatsPerVertex]float32{
		r.X, r.Y, u0, v0,
		r.X + r.W, r.Y, u1, v0,
		r.X + r.W, r.Y + r.H, u1, v1,
		r.X, r.Y, u0, v0,
		r.X + r.W, r.Y + r.H, u1, v1,
		r.X, r.Y + r.H, u0, v1,
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, unsafe.Pointer(&verts[0]))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// text returns a cached texture for s, rasterising it on first use.
func (h *HUD) text(s string) *textTexture {
	if t, ok := h.texts[s]; ok {
		return t
	}

	img := RasterizeText(s)
	t := &textTexture{w: img.Bounds().Dx(), h: img.Bounds().Dy()}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(t.w), int32(t.h), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	h.texts[s] = t
	return t
}

// Close releases GL resources.
func (h *HUD) Close() {
	for _, t := range h.texts {
		gl.DeleteTextures(1, &t.id)
	}
	h.texts = nil
	if h.vbo != 0 {
		gl.DeleteBuffers(1, &h.vbo)
	}
	if h.vao != 0 {
		gl.DeleteVertexArrays(1, &h.vao)
	}
	if h.program != nil {
		h.program.Delete()
	}
}
