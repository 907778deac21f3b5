// Package input translates SDL2 events into carousel actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is a discrete user intent decoded from input.
type Action int

const (
	ActionNone Action = iota
	ActionPrev
	ActionNext
	ActionQuit
	ActionScreenshot
)

// String returns a short name for logging.
func (a Action) String() string {
	switch a {
	case ActionPrev:
		return "prev"
	case ActionNext:
		return "next"
	case ActionQuit:
		return "quit"
	case ActionScreenshot:
		return "screenshot"
	default:
		return "none"
	}
}

// KeyAction maps a key press to an action.
func KeyAction(sc sdl.Scancode) Action {
	switch sc {
	case sdl.SCANCODE_LEFT, sdl.SCANCODE_A:
		return ActionPrev
	case sdl.SCANCODE_RIGHT, sdl.SCANCODE_D:
		return ActionNext
	case sdl.SCANCODE_ESCAPE:
		return ActionQuit
	case sdl.SCANCODE_F12:
		return ActionScreenshot
	default:
		return ActionNone
	}
}

// Click is a left-button release in screen coordinates.
type Click struct {
	X, Y int
}

// State accumulates one frame's worth of input.
type State struct {
	Actions []Action
	Clicks  []Click

	// Drag is the mouse motion in pixels while the left button was held.
	DragX, DragY float32
	// PanX, PanY is the motion while the right button was held.
	PanX, PanY float32
	Wheel      float32

	// MouseX, MouseY is the last known cursor position.
	MouseX, MouseY int

	Resized       bool
	Width, Height int
}

// Has reports whether a was produced this frame.
func (s *State) Has(a Action) bool {
	for _, got := range s.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Input handles all input processing.
type Input struct {
	state State

	dragging  bool
	panning   bool
	pressX    int32
	pressY    int32
	movedFar  bool
	clickSlop int32
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		state:     State{Actions: make([]Action, 0, 8)},
		clickSlop: 4,
	}
}

// Update polls SDL events and folds them into the frame state.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.state.Actions = i.state.Actions[:0]
	i.state.Clicks = i.state.Clicks[:0]
	i.state.DragX, i.state.DragY = 0, 0
	i.state.PanX, i.state.PanY = 0, 0
	i.state.Wheel = 0
	i.state.Resized = false

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.state.Actions = append(i.state.Actions, ActionQuit)
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.state.Resized = true
				i.state.Width = int(e.Data1)
				i.state.Height = int(e.Data2)
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			if a := KeyAction(e.Keysym.Scancode); a != ActionNone {
				i.state.Actions = append(i.state.Actions, a)
				if a == ActionQuit {
					quit = true
				}
			}

		case *sdl.MouseMotionEvent:
			i.state.MouseX, i.state.MouseY = int(e.X), int(e.Y)
			if i.dragging {
				i.state.DragX += float32(e.XRel)
				i.state.DragY += float32(e.YRel)
				if abs32(e.X-i.pressX) > i.clickSlop || abs32(e.Y-i.pressY) > i.clickSlop {
					i.movedFar = true
				}
			}
			if i.panning {
				i.state.PanX += float32(e.XRel)
				i.state.PanY += float32(e.YRel)
			}

		case *sdl.MouseButtonEvent:
			i.handleButton(e)

		case *sdl.MouseWheelEvent:
			i.state.Wheel += float32(e.Y)
		}
	}

	return quit
}

func (i *Input) handleButton(e *sdl.MouseButtonEvent) {
	switch e.Button {
	case sdl.BUTTON_LEFT:
		if e.Type == sdl.MOUSEBUTTONDOWN {
			i.dragging = true
			i.movedFar = false
			i.pressX, i.pressY = e.X, e.Y
			return
		}
		// A release close to the press point is a click, not the end of a drag.
		if i.dragging && !i.movedFar {
			i.state.Clicks = append(i.state.Clicks, Click{X: int(e.X), Y: int(e.Y)})
		}
		i.dragging = false
	case sdl.BUTTON_RIGHT:
		i.panning = e.Type == sdl.MOUSEBUTTONDOWN
	}
}

// State returns the input gathered by the last Update.
func (i *Input) State() *State {
	return &i.state
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
