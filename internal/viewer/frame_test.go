package viewer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/carousel3d/internal/carousel"
	"github.com/Faultbox/carousel3d/internal/engine/input"
)

func TestCollectIntent(t *testing.T) {
	fi := collectIntent(
		[]input.Action{input.ActionNext, input.ActionScreenshot},
		[]input.Action{input.ActionPrev},
	)
	assert.False(t, fi.quit)
	assert.True(t, fi.screenshot)
	assert.Equal(t, []carousel.Direction{carousel.Next, carousel.Prev}, fi.requested)

	fi = collectIntent([]input.Action{input.ActionQuit}, nil)
	assert.True(t, fi.quit)
	assert.Empty(t, fi.requested)
}

func TestIntentDrivesAnimatorOnce(t *testing.T) {
	a, err := carousel.New(10, carousel.Orbit{Radius: 5})
	assert.NoError(t, err)
	a.SetSlots([]*carousel.Slot{{Name: "a"}, {Name: "b"}, {Name: "c"}})

	fi := collectIntent([]input.Action{input.ActionNext, input.ActionPrev}, nil)
	started := 0
	for _, d := range fi.requested {
		if a.RequestTransition(d) {
			started++
		}
	}
	assert.Equal(t, 1, started)
	assert.Equal(t, carousel.Next, a.State().Direction)
}

func TestFrameLimiterSleepsRemainder(t *testing.T) {
	clock := time.Unix(0, 0)
	var slept time.Duration

	l := newFrameLimiter(50)
	l.now = func() time.Time { return clock }
	l.sleep = func(d time.Duration) { slept += d; clock = clock.Add(d) }
	l.last = clock

	clock = clock.Add(5 * time.Millisecond)
	l.wait()
	assert.Equal(t, 15*time.Millisecond, slept)

	clock = clock.Add(30 * time.Millisecond)
	l.wait()
	assert.Equal(t, 15*time.Millisecond, slept, "over-budget frames do not sleep")
}

func TestFrameLimiterDisabled(t *testing.T) {
	l := newFrameLimiter(0)
	l.sleep = func(time.Duration) { t.Fatal("unexpected sleep") }
	l.wait()
}

func TestFPSCounter(t *testing.T) {
	var c fpsCounter
	start := time.Unix(100, 0)
	for i := 0; i < 59; i++ {
		_, ok := c.tick(start.Add(time.Duration(i) * 16 * time.Millisecond))
		assert.False(t, ok)
	}
	n, ok := c.tick(start.Add(time.Second))
	assert.True(t, ok)
	assert.Equal(t, 60, n)
}
