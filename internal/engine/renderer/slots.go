package renderer

import (
	"github.com/Faultbox/carousel3d/internal/carousel"
	"github.com/Faultbox/carousel3d/pkg/math"
)

type slotState struct {
	pose    carousel.Pose
	visible bool
}

// slotTable caches the latest pose and visibility per slot index.
type slotTable struct {
	slots []slotState
}

func (t *slotTable) reset(n int) {
	t.slots = make([]slotState, n)
}

func (t *slotTable) set(index int, pose carousel.Pose, visible bool) bool {
	if index < 0 || index >= len(t.slots) {
		return false
	}
	t.slots[index] = slotState{pose: pose, visible: visible}
	return true
}

// draws returns the model matrices of visible slots keyed by slot index,
// in slot order.
func (t *slotTable) draws(scale float32) []draw {
	var out []draw
	for i, s := range t.slots {
		if s.visible {
			out = append(out, draw{index: i, model: s.pose.Matrix(scale)})
		}
	}
	return out
}

type draw struct {
	index int
	model math.Mat4
}
