package camera

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// IntroLift is how far above the bookcase center the camera starts.
	IntroLift float32 = 1.2
	// IntroStopBelowTop is the distance below the bookcase top where the pan ends.
	IntroStopBelowTop float32 = 1
	// DefaultPanSpeed is the intro pan rate in world units per second
	// (0.008 per frame at 60 frames per second).
	DefaultPanSpeed float32 = 0.008 * 60
)

// Intro is the scripted pan that lifts the camera from its start height to the end height.
// It is driven by elapsed time, so the pan takes the same wall time at any refresh rate.
// The value never decreases and stops exactly at the end height.
type Intro struct {
	tween *gween.Tween
	start float32
	end   float32
	value float32
	done  bool
}

// NewIntro returns a pan from start to end at speed units per second. A non-positive speed
// uses DefaultPanSpeed. If start is already at or above end the intro is done immediately.
func NewIntro(start, end, speed float32) *Intro {
	if speed <= 0 {
		speed = DefaultPanSpeed
	}
	in := &Intro{start: start, end: end, value: start}
	if start >= end {
		in.done = true
		return in
	}
	in.tween = gween.New(start, end, (end-start)/speed, ease.Linear)
	return in
}

// Update advances the pan by dt seconds and returns the current height.
func (in *Intro) Update(dt float32) float32 {
	if in.done || dt <= 0 {
		return in.value
	}
	v, finished := in.tween.Update(dt)
	if v > in.value {
		in.value = v
	}
	if finished {
		in.value = in.end
		in.done = true
	}
	return in.value
}

// Value returns the current height without advancing.
func (in *Intro) Value() float32 { return in.value }

// Done reports whether the pan has reached its end height.
func (in *Intro) Done() bool { return in.done }

// Skip jumps to the end height.
func (in *Intro) Skip() {
	if in.start < in.end {
		in.value = in.end
	}
	in.done = true
}
