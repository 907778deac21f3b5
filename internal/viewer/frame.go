package viewer

import (
	"time"

	"github.com/Faultbox/carousel3d/internal/carousel"
	"github.com/Faultbox/carousel3d/internal/engine/input"
)

// frameIntent is what one frame of input asks the viewer to do.
type frameIntent struct {
	quit       bool
	screenshot bool
	requested  []carousel.Direction
}

// collectIntent folds keyboard actions and HUD button hits into one intent.
// Navigation requests are forwarded to the animator in arrival order; the
// animator drops any that arrive while a transition is running.
func collectIntent(actions []input.Action, hud []input.Action) frameIntent {
	var fi frameIntent
	for _, a := range append(append([]input.Action(nil), actions...), hud...) {
		switch a {
		case input.ActionQuit:
			fi.quit = true
		case input.ActionScreenshot:
			fi.screenshot = true
		case input.ActionPrev:
			fi.requested = append(fi.requested, carousel.Prev)
		case input.ActionNext:
			fi.requested = append(fi.requested, carousel.Next)
		}
	}
	return fi
}

// frameLimiter sleeps out the remainder of a fixed frame budget.
type frameLimiter struct {
	budget time.Duration
	last   time.Time
	sleep  func(time.Duration)
	now    func() time.Time
}

func newFrameLimiter(fps int) *frameLimiter {
	l := &frameLimiter{sleep: time.Sleep, now: time.Now}
	if fps > 0 {
		l.budget = time.Second / time.Duration(fps)
	}
	l.last = l.now()
	return l
}

// wait blocks until the frame budget since the previous call has elapsed.
func (l *frameLimiter) wait() {
	if l.budget <= 0 {
		return
	}
	if spent := l.now().Sub(l.last); spent < l.budget {
		l.sleep(l.budget - spent)
	}
	l.last = l.now()
}

// fpsCounter reports frame counts once per second.
type fpsCounter struct {
	frames int
	since  time.Time
}

// tick counts a frame and returns the count when a second has passed.
func (c *fpsCounter) tick(now time.Time) (int, bool) {
	if c.since.IsZero() {
		c.since = now
	}
	c.frames++
	if now.Sub(c.since) < time.Second {
		return 0, false
	}
	n := c.frames
	c.frames = 0
	c.since = now
	return n, true
}
