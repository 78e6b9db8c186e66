package landing

import "time"

// Clock reports elapsed time since an arbitrary origin. Transitions measure
// their progress against it.
type Clock interface {
	Now() time.Duration
}

// Ticker is implemented by clocks that advance once per frame.
type Ticker interface {
	Tick()
}

// WallClock reads the monotonic system clock.
type WallClock struct {
	origin time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{origin: time.Now()}
}

func (c *WallClock) Now() time.Duration {
	return time.Since(c.origin)
}

// FrameClock advances by exactly one frame per Tick at a fixed tick rate, so
// a run is reproducible regardless of how fast frames are produced.
type FrameClock struct {
	tps    int
	frames int64
}

func NewFrameClock(tps int) *FrameClock {
	if tps <= 0 {
		tps = 60
	}
	return &FrameClock{tps: tps}
}

func (c *FrameClock) Tick() { c.frames++ }

// Now is computed from the frame count so that tps frames equal one second
// exactly.
func (c *FrameClock) Now() time.Duration {
	return time.Duration(c.frames) * time.Second / time.Duration(c.tps)
}

// Frames returns the number of ticks so far.
func (c *FrameClock) Frames() int64 { return c.frames }

// ManualClock only moves when told to.
type ManualClock struct {
	now time.Duration
}

func (c *ManualClock) Now() time.Duration { return c.now }

func (c *ManualClock) Advance(d time.Duration) { c.now += d }
