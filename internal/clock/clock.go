// Package clock paces a fixed-rate loop and reports frame statistics.
package clock

import (
	"sync"
	"time"
)

// DefaultTPS is the tick rate of the render loop.
const DefaultTPS = 60

// Stats is a snapshot of recent frame timing.
type Stats struct {
	FPS       float64
	FrameTime time.Duration // busy time of the last frame, excluding the sleep
}

// Clock sleeps the caller until the next tick boundary. Dt is the real
// duration of the previous tick, sleep included.
type Clock struct {
	target time.Duration
	now    func() time.Time
	sleep  func(time.Duration)

	mu         sync.Mutex
	last       time.Time
	dt         time.Duration
	frameTime  time.Duration
	frameCount int
	fpsSince   time.Time
	fps        float64
}

func New(tps int) *Clock {
	return newClock(tps, time.Now, time.Sleep)
}

func newClock(tps int, now func() time.Time, sleep func(time.Duration)) *Clock {
	if tps <= 0 {
		tps = DefaultTPS
	}
	target := time.Second / time.Duration(tps)
	start := now()
	return &Clock{
		target:   target,
		now:      now,
		sleep:    sleep,
		last:     start,
		dt:       target,
		fpsSince: start,
	}
}

func (c *Clock) Target() time.Duration { return c.target }

// Dt returns the duration of the last completed tick.
func (c *Clock) Dt() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dt
}

// Tick waits out the remainder of the current tick. A frame that overran
// its budget does not sleep and the overrun is not carried forward.
func (c *Clock) Tick() {
	busy := c.now().Sub(c.lastTick())
	if busy < c.target {
		c.sleep(c.target - busy)
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.dt = now.Sub(c.last)
	c.last = now
	c.frameTime = busy
	c.frameCount++
	if elapsed := now.Sub(c.fpsSince); elapsed >= time.Second {
		c.fps = float64(c.frameCount) / elapsed.Seconds()
		c.frameCount = 0
		c.fpsSince = now
	}
}

func (c *Clock) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{FPS: c.fps, FrameTime: c.frameTime}
}

func (c *Clock) lastTick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
