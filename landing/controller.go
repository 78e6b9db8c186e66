package landing

import (
	"errors"
	"fmt"
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

var (
	// ErrTransitionActive is delivered when TransitionTo is called while a
	// crossfade is still running. Callers must await the previous future.
	ErrTransitionActive = errors.New("landing: transition already active")

	// ErrTextureIndex is delivered when the requested texture does not exist.
	ErrTextureIndex = errors.New("landing: texture index out of range")
)

// DefaultTransitionDuration is the length of one crossfade.
const DefaultTransitionDuration = 2 * time.Second

// Crossfader is the surface a Controller animates. *skyscroll.Crossfade
// satisfies it.
type Crossfader interface {
	TextureCount() int
	Base() int
	SetTarget(i int)
	SetMix(m float64)
	Commit()
}

type transition struct {
	from, to int
	start    time.Duration
	mix      float64
	future   *Future
}

// Controller owns the narrative phase and the single active crossfade.
type Controller struct {
	phase    Phase
	fader    Crossfader
	clock    Clock
	duration time.Duration
	ease     ease.TweenFunc
	active   *transition
	logger   *zap.Logger

	onPhase []func(Phase)
}

// NewController starts at PhaseIdle with the default duration and an in-out
// quad ease.
func NewController(fader Crossfader, clock Clock, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = NewWallClock()
	}
	return &Controller{
		phase:    PhaseIdle,
		fader:    fader,
		clock:    clock,
		duration: DefaultTransitionDuration,
		ease:     ease.InOutQuad,
		logger:   logger,
	}
}

// Phase returns the current narrative phase.
func (c *Controller) Phase() Phase { return c.phase }

// SetPhase switches phase immediately.
func (c *Controller) SetPhase(p Phase) {
	if p == c.phase {
		return
	}
	prev := c.phase
	c.phase = p
	c.logger.Info("phase changed", zap.Stringer("from", prev), zap.Stringer("to", p))
	for _, fn := range c.onPhase {
		fn(p)
	}
}

// OnPhaseChange registers fn to run after every phase change.
func (c *Controller) OnPhaseChange(fn func(Phase)) {
	c.onPhase = append(c.onPhase, fn)
}

// SetDuration changes the length of transitions started afterwards.
// Non-positive values are ignored.
func (c *Controller) SetDuration(d time.Duration) {
	if d > 0 {
		c.duration = d
	}
}

// Duration returns the length of new transitions.
func (c *Controller) Duration() time.Duration { return c.duration }

// SetEase changes the mix easing. nil restores linear.
func (c *Controller) SetEase(fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.Linear
	}
	c.ease = fn
}

// Transitioning reports whether a crossfade is running.
func (c *Controller) Transitioning() bool { return c.active != nil }

// Mix returns the eased mix factor of the running crossfade, or 0.
func (c *Controller) Mix() float64 {
	if c.active == nil {
		return 0
	}
	return c.active.mix
}

// TransitionTo starts a crossfade from the current base texture to index.
// The returned future resolves once the fade completes, after the target has
// been committed as the new base and the mix reset to 0.
func (c *Controller) TransitionTo(index int) *Future {
	if c.active != nil {
		return resolvedFuture(ErrTransitionActive)
	}
	if index < 0 || index >= c.fader.TextureCount() {
		return resolvedFuture(fmt.Errorf("%w: %d of %d", ErrTextureIndex, index, c.fader.TextureCount()))
	}

	t := &transition{
		from:   c.fader.Base(),
		to:     index,
		start:  c.clock.Now(),
		future: newFuture(),
	}
	c.active = t
	c.fader.SetTarget(index)
	c.fader.SetMix(0)
	c.logger.Debug("transition started",
		zap.Int("from", t.from), zap.Int("to", t.to), zap.Duration("duration", c.duration))
	return t.future
}

// Update advances the running crossfade. Call once per frame.
func (c *Controller) Update() {
	t := c.active
	if t == nil {
		return
	}
	progress := 1.0
	if c.duration > 0 {
		progress = float64(c.clock.Now()-t.start) / float64(c.duration)
	}
	progress = clamp(progress, 0, 1)

	t.mix = clamp(float64(c.ease(float32(progress), 0, 1, 1)), 0, 1)
	c.fader.SetMix(t.mix)
	if progress < 1 {
		return
	}

	c.fader.Commit()
	t.mix = 0
	c.active = nil
	c.logger.Debug("transition finished", zap.Int("base", t.to))
	t.future.resolve(nil)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
