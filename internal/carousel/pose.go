package carousel

import (
	"github.com/Faultbox/carousel3d/pkg/math"
)

// Direction selects the neighbour a transition moves to.
type Direction int

const (
	// Prev moves to the previous slide.
	Prev Direction = -1
	// Next moves to the following slide.
	Next Direction = 1
)

// String returns "prev" or "next".
func (d Direction) String() string {
	if d < 0 {
		return "prev"
	}
	return "next"
}

// Pose is the per-slot transform the animator writes each frame.
type Pose struct {
	Offset   math.Vec3 // position relative to the slot's rest position
	Rotation math.Vec3 // Euler angles in radians, applied X then Y then Z
}

// IdentityPose returns the rest pose.
func IdentityPose() Pose {
	return Pose{}
}

// IsIdentity reports whether p is the rest pose.
func (p Pose) IsIdentity() bool {
	return p.Offset.IsZero() && p.Rotation.IsZero()
}

// Matrix returns the model matrix for this pose at the given uniform scale.
func (p Pose) Matrix(scale float32) math.Mat4 {
	return math.Compose(p.Offset, p.Rotation, scale)
}

// Slot is one displayable model and its current pose.
type Slot struct {
	Name    string
	Handle  any // renderable handle owned by the display layer
	Pose    Pose
	Visible bool
}

// Display receives pose and visibility updates from the animator.
type Display interface {
	SetSlot(index int, pose Pose, visible bool)
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(index int, pose Pose, visible bool)

// SetSlot calls f.
func (f DisplayFunc) SetSlot(index int, pose Pose, visible bool) {
	f(index, pose, visible)
}

type nopDisplay struct{}

func (nopDisplay) SetSlot(int, Pose, bool) {}
