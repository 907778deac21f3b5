package carousel

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/carousel3d/internal/config"
	"github.com/Faultbox/carousel3d/pkg/math"
)

// ErrUnknownStrategy is returned for a style name with no strategy.
var ErrUnknownStrategy = errors.New("unknown transition style")

// Strategy computes the outgoing and incoming poses for one frame.
// progress is in (0, 1], ease is sin(progress*pi).
type Strategy interface {
	Poses(progress, ease float64, dir Direction) (outgoing, incoming Pose, outgoingVisible bool)
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(progress, ease float64, dir Direction) (Pose, Pose, bool)

// Poses calls f.
func (f StrategyFunc) Poses(progress, ease float64, dir Direction) (Pose, Pose, bool) {
	return f(progress, ease, dir)
}

// Orbit swings both models around a circle in the XZ plane while spinning
// them about their own Y axis. The outgoing model starts a quarter turn ahead
// of the incoming one.
type Orbit struct {
	Radius float32
}

// Poses implements Strategy.
func (o Orbit) Poses(progress, ease float64, _ Direction) (Pose, Pose, bool) {
	r := float64(o.Radius)
	angle := progress * 2 * gomath.Pi

	outgoing := Pose{
		Offset: math.Vec3{
			X: float32(r * gomath.Cos(angle+gomath.Pi/2)),
			Z: float32(r * gomath.Sin(angle+gomath.Pi/2)),
		},
		Rotation: math.Vec3{Y: float32(ease * 2 * gomath.Pi)},
	}
	incoming := Pose{
		Offset: math.Vec3{
			X: float32(r * gomath.Cos(angle-gomath.Pi/2)),
			Z: float32(r * gomath.Sin(angle-gomath.Pi/2)),
		},
		Rotation: math.Vec3{Y: float32((1 - ease) * 2 * gomath.Pi)},
	}
	return outgoing, incoming, progress < 1
}

// Slide moves the outgoing model off to one side while the incoming model
// slides in from the other, with a small lift at mid-transition.
type Slide struct {
	Distance float32
}

// Poses implements Strategy.
func (s Slide) Poses(progress, ease float64, dir Direction) (Pose, Pose, bool) {
	d := float64(s.Distance)
	sign := float64(dir)
	lift := float32(ease * d * 0.1)

	outgoing := Pose{Offset: math.Vec3{X: float32(-sign * progress * d), Y: lift}}
	incoming := Pose{Offset: math.Vec3{X: float32(sign * (1 - progress) * d), Y: lift}}
	return outgoing, incoming, progress < 1
}

// Spin pushes the outgoing model aside while spinning it, and brings the
// incoming model in unwinding the opposite way.
type Spin struct {
	Distance float32
	Angle    float32 // radians
}

// Poses implements Strategy.
func (s Spin) Poses(progress, ease float64, dir Direction) (Pose, Pose, bool) {
	d := float64(s.Distance)
	a := float64(s.Angle)
	sign := float64(dir)

	outgoing := Pose{
		Offset:   math.Vec3{X: float32(-sign * ease * d)},
		Rotation: math.Vec3{Y: float32(sign * ease * a)},
	}
	incoming := Pose{
		Offset:   math.Vec3{X: float32(sign * (1 - progress) * d)},
		Rotation: math.Vec3{Y: float32(-sign * (1 - progress) * a)},
	}
	return outgoing, incoming, progress < 1
}

// StrategyByName returns the strategy for a configured style.
func StrategyByName(cfg config.CarouselConfig) (Strategy, error) {
	switch cfg.Style {
	case config.StyleOrbit:
		return Orbit{Radius: cfg.Radius}, nil
	case config.StyleSlide:
		return Slide{Distance: cfg.Distance}, nil
	case config.StyleSpin:
		return Spin{Distance: cfg.Distance, Angle: cfg.SpinAngle}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, cfg.Style)
	}
}
