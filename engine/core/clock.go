package core

import "time"

// Clock measures elapsed wall time in seconds. The optional scale slows
// down or speeds up the reported elapsed time; the demo uses it to slow
// the light orbit animation.
type Clock struct {
	startTime float64
	elapsed   float64
	scale     float64
}

func NewClock() *Clock {
	return &Clock{scale: 1.0}
}

func NewScaledClock(scale float64) *Clock {
	if scale <= 0 {
		scale = 1.0
	}
	return &Clock{scale: scale}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if c.startTime != 0 {
		now := float64(time.Now().UnixNano()) / float64(time.Second)
		c.elapsed = (now - c.startTime) * c.scale
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = float64(time.Now().UnixNano()) / float64(time.Second)
	c.elapsed = 0
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.startTime = 0
}

func (c *Clock) Elapsed() float64 {
	return c.elapsed
}
