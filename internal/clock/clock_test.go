package clock

import (
	"testing"
	"time"
)

type fakeTime struct {
	now   time.Time
	slept []time.Duration
}

func (f *fakeTime) Now() time.Time { return f.now }

func (f *fakeTime) Sleep(d time.Duration) {
	f.slept = append(f.slept, d)
	f.now = f.now.Add(d)
}

func TestTickSleepsRemainder(t *testing.T) {
	ft := &fakeTime{now: time.Unix(0, 0)}
	c := newClock(50, ft.Now, ft.Sleep)

	ft.now = ft.now.Add(5 * time.Millisecond)
	c.Tick()

	if len(ft.slept) != 1 || ft.slept[0] != 15*time.Millisecond {
		t.Fatalf("slept %v, want [15ms]", ft.slept)
	}
	if c.Dt() != 20*time.Millisecond {
		t.Fatalf("Dt() = %v, want 20ms", c.Dt())
	}
	if c.Stats().FrameTime != 5*time.Millisecond {
		t.Fatalf("FrameTime = %v, want 5ms", c.Stats().FrameTime)
	}
}

func TestTickOverrunDoesNotSleep(t *testing.T) {
	ft := &fakeTime{now: time.Unix(0, 0)}
	c := newClock(50, ft.Now, ft.Sleep)

	ft.now = ft.now.Add(35 * time.Millisecond)
	c.Tick()

	if len(ft.slept) != 0 {
		t.Fatalf("slept %v on an overrun frame", ft.slept)
	}
	if c.Dt() != 35*time.Millisecond {
		t.Fatalf("Dt() = %v, want 35ms", c.Dt())
	}
}

func TestStatsFPS(t *testing.T) {
	ft := &fakeTime{now: time.Unix(0, 0)}
	c := newClock(10, ft.Now, ft.Sleep)
	for i := 0; i < 10; i++ {
		c.Tick()
	}
	if got := c.Stats().FPS; got < 9.99 || got > 10.01 {
		t.Fatalf("FPS = %v, want 10", got)
	}
}

func TestDefaultRate(t *testing.T) {
	c := New(0)
	if c.Target() != time.Second/DefaultTPS {
		t.Fatalf("Target() = %v", c.Target())
	}
	if c.Dt() != c.Target() {
		t.Fatalf("initial Dt() = %v, want %v", c.Dt(), c.Target())
	}
}
