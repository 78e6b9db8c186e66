package landing

import (
	"github.com/phanxgames/skyscroll"
	"github.com/phanxgames/skyscroll/config"
)

// fakeFader records what the controller does to it.
type fakeFader struct {
	n       int
	base    int
	target  int
	mix     float64
	mixes   []float64
	commits int
}

func newFakeFader(n int) *fakeFader { return &fakeFader{n: n} }

func (f *fakeFader) TextureCount() int { return f.n }
func (f *fakeFader) Base() int         { return f.base }
func (f *fakeFader) SetTarget(i int)   { f.target = i }
func (f *fakeFader) SetMix(m float64) {
	f.mix = m
	f.mixes = append(f.mixes, m)
}
func (f *fakeFader) Commit() {
	f.base = f.target
	f.mix = 0
	f.commits++
}

type fixedPhase struct{ p Phase }

func (f *fixedPhase) Phase() Phase { return f.p }

func testViewport() skyscroll.Viewport {
	return skyscroll.Viewport{Width: 800, Height: 600, Aspect: 800.0 / 600.0}
}

func testFieldConfig() config.FieldConfig {
	return config.Default().Field
}

// frameRig drives a controller and gate one frame at a time.
type frameRig struct {
	clock   *FrameClock
	fader   *fakeFader
	ctrl    *Controller
	overlay *HeadlessOverlay
	gate    *Gate
}

func newFrameRig() *frameRig {
	r := &frameRig{
		clock:   NewFrameClock(60),
		fader:   newFakeFader(3),
		overlay: NewHeadlessOverlay(),
	}
	r.ctrl = NewController(r.fader, r.clock, nil)
	r.gate = NewGate(r.ctrl, r.overlay, nil)
	r.gate.Enable()
	return r
}

func (r *frameRig) step(n int) {
	for i := 0; i < n; i++ {
		r.clock.Tick()
		r.ctrl.Update()
		r.gate.Update()
	}
}
