package hud

import (
	"fmt"

	"github.com/Faultbox/carousel3d/internal/carousel"
	"github.com/Faultbox/carousel3d/internal/engine/input"
)

// Rect is an axis-aligned rectangle in screen coordinates, origin top-left.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether (x, y) is inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Layout positions the HUD elements for a screen size.
type Layout struct {
	Prev     Rect
	Next     Rect
	Label    Rect
	Progress Rect
}

const (
	buttonSize = 56
	margin     = 24
	barHeight  = 4
	barWidth   = 160
)

// NewLayout places the arrow buttons at the vertical centre of the left and
// right edges and the label and progress bar at the bottom centre.
func NewLayout(width, height float32) Layout {
	midY := height/2 - buttonSize/2
	return Layout{
		Prev:     Rect{X: margin, Y: midY, W: buttonSize, H: buttonSize},
		Next:     Rect{X: width - margin - buttonSize, Y: midY, W: buttonSize, H: buttonSize},
		Label:    Rect{X: width/2 - barWidth/2, Y: height - margin - 30, W: barWidth, H: 18},
		Progress: Rect{X: width/2 - barWidth/2, Y: height - margin - barHeight, W: barWidth, H: barHeight},
	}
}

// HitTest maps a click to the button under it.
func (l Layout) HitTest(x, y float32) input.Action {
	switch {
	case l.Prev.Contains(x, y):
		return input.ActionPrev
	case l.Next.Contains(x, y):
		return input.ActionNext
	default:
		return input.ActionNone
	}
}

// LabelText formats the slide counter, e.g. "2 / 3". It reads "loading"
// before any slots are installed.
func LabelText(st carousel.State, n int, loading bool) string {
	if n == 0 {
		if loading {
			return "loading"
		}
		return "no models"
	}
	return fmt.Sprintf("%d / %d", st.CurrentSlide+1, n)
}
