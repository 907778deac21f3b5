// Package carousel implements the slide transition animator: a two-state
// machine (idle, transitioning) that hands the display from the current model
// to its neighbour over a fixed number of frames.
package carousel

import (
	"errors"
	gomath "math"

	"go.uber.org/zap"
)

var (
	// ErrInvalidDuration is returned when the transition length is not positive.
	ErrInvalidDuration = errors.New("transition duration must be a positive frame count")
	// ErrNilStrategy is returned when no pose strategy is supplied.
	ErrNilStrategy = errors.New("pose strategy is nil")
)

// State is a snapshot of the carousel's discrete state.
type State struct {
	CurrentSlide  int
	Transitioning bool
	Progress      int // frames elapsed in the active transition
	Direction     Direction
}

// Animator owns the carousel state and the slot sequence. It is driven from a
// single goroutine: RequestTransition from input handling and AdvanceFrame
// once per rendered frame.
type Animator struct {
	duration int
	strategy Strategy
	display  Display
	log      *zap.Logger

	slots []*Slot
	state State
}

// Option configures an Animator.
type Option func(*Animator)

// WithDisplay sets the collaborator that receives pose updates.
func WithDisplay(d Display) Option {
	return func(a *Animator) {
		if d != nil {
			a.display = d
		}
	}
}

// WithLogger sets the logger used for transition events.
func WithLogger(l *zap.Logger) Option {
	return func(a *Animator) {
		if l != nil {
			a.log = l
		}
	}
}

// New creates an idle animator with no slots.
func New(duration int, strategy Strategy, opts ...Option) (*Animator, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	if strategy == nil {
		return nil, ErrNilStrategy
	}

	a := &Animator{
		duration: duration,
		strategy: strategy,
		display:  nopDisplay{},
		log:      zap.NewNop(),
		state:    State{Direction: Next},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// SetSlots installs the loaded slot sequence and resets to idle on slot 0.
// The order and count are fixed until the next call.
func (a *Animator) SetSlots(slots []*Slot) {
	a.slots = slots
	a.state = State{Direction: Next}
	a.resetPoses()

	a.log.Info("slots installed", zap.Int("count", len(slots)))
}

// RequestTransition starts a transition towards dir. It returns false and
// changes nothing if a transition is already running or no slots are loaded.
func (a *Animator) RequestTransition(dir Direction) bool {
	if a.state.Transitioning {
		return false
	}
	if len(a.slots) == 0 {
		return false
	}
	if dir < 0 {
		dir = Prev
	} else {
		dir = Next
	}

	a.state.Transitioning = true
	a.state.Progress = 0
	a.state.Direction = dir

	a.log.Debug("transition started",
		zap.Stringer("direction", dir),
		zap.Int("from", a.state.CurrentSlide),
		zap.Int("to", a.NextIndex(dir)),
	)
	return true
}

// AdvanceFrame moves an active transition forward by one frame and commits it
// when the configured duration is reached. It is a no-op while idle or when no
// slots are loaded.
func (a *Animator) AdvanceFrame() {
	if !a.state.Transitioning || len(a.slots) == 0 {
		return
	}

	a.state.Progress++
	progress := float64(a.state.Progress) / float64(a.duration)
	if progress > 1 {
		progress = 1
	}
	ease := Ease(progress)

	current := a.state.CurrentSlide
	next := a.NextIndex(a.state.Direction)
	outgoing, incoming, outgoingVisible := a.strategy.Poses(progress, ease, a.state.Direction)

	for i, slot := range a.slots {
		switch {
		case i == current:
			a.apply(i, slot, outgoing, outgoingVisible || i == next)
		case i == next:
			a.apply(i, slot, incoming, true)
		default:
			a.apply(i, slot, IdentityPose(), false)
		}
	}

	if a.state.Progress >= a.duration {
		a.commit(next)
	}
}

func (a *Animator) commit(next int) {
	from := a.state.CurrentSlide
	a.state.CurrentSlide = next
	a.state.Transitioning = false
	a.state.Progress = 0
	a.resetPoses()

	a.log.Debug("transition committed", zap.Int("from", from), zap.Int("current", next))
}

// resetPoses puts every slot at rest, showing only the current one.
func (a *Animator) resetPoses() {
	for i, slot := range a.slots {
		a.apply(i, slot, IdentityPose(), i == a.state.CurrentSlide)
	}
}

func (a *Animator) apply(i int, slot *Slot, pose Pose, visible bool) {
	slot.Pose = pose
	slot.Visible = visible
	a.display.SetSlot(i, pose, visible)
}

// NextIndex returns the slot a transition in dir would land on.
func (a *Animator) NextIndex(dir Direction) int {
	if len(a.slots) == 0 {
		return 0
	}
	return FloorMod(a.state.CurrentSlide+int(dir), len(a.slots))
}

// State returns a snapshot of the carousel state.
func (a *Animator) State() State {
	return a.state
}

// Transitioning reports whether a transition is in flight.
func (a *Animator) Transitioning() bool {
	return a.state.Transitioning
}

// Fraction returns the active transition's completion in [0, 1].
func (a *Animator) Fraction() float64 {
	return float64(a.state.Progress) / float64(a.duration)
}

// Slots returns the installed slot sequence.
func (a *Animator) Slots() []*Slot {
	return a.slots
}

// Current returns the current slot, or nil when none are loaded.
func (a *Animator) Current() *Slot {
	if len(a.slots) == 0 {
		return nil
	}
	return a.slots[a.state.CurrentSlide]
}

// Len returns the number of installed slots.
func (a *Animator) Len() int {
	return len(a.slots)
}

// Duration returns the transition length in frames.
func (a *Animator) Duration() int {
	return a.duration
}

// Ease is the 0 -> 1 -> 0 blend curve used to shape motion.
func Ease(progress float64) float64 {
	return gomath.Sin(progress * gomath.Pi)
}

// FloorMod returns a mod n in [0, n) for any sign of a.
func FloorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
