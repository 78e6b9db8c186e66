package landing

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/skyscroll"
)

func TestSetPhase(t *testing.T) {
	c := NewController(newFakeFader(3), &ManualClock{}, nil)
	require.Equal(t, PhaseIdle, c.Phase())

	var seen []Phase
	c.OnPhaseChange(func(p Phase) { seen = append(seen, p) })

	c.SetPhase(PhaseDispersing)
	c.SetPhase(PhaseDispersing)
	c.SetPhase(PhaseSettled)

	assert.Equal(t, PhaseSettled, c.Phase())
	assert.Equal(t, []Phase{PhaseDispersing, PhaseSettled}, seen)
}

func TestTransitionResolvesOnceAfterDuration(t *testing.T) {
	clock := NewFrameClock(60)
	fader := newFakeFader(3)
	c := NewController(fader, clock, nil)

	f := c.TransitionTo(2)
	resolved := 0
	f.Then(func(err error) {
		assert.NoError(t, err)
		resolved++
	})

	for i := 1; i < 120; i++ {
		clock.Tick()
		c.Update()
		require.False(t, f.Done(), "resolved early at frame %d", i)
		require.True(t, c.Transitioning())
	}
	clock.Tick()
	c.Update()

	assert.True(t, f.Done())
	assert.Equal(t, 1, resolved)
	assert.Equal(t, 2, fader.base)
	assert.Equal(t, 0.0, fader.mix)
	assert.Equal(t, 1, fader.commits)
	assert.False(t, c.Transitioning())
	assert.Equal(t, 0.0, c.Mix())

	for i := 0; i < 10; i++ {
		clock.Tick()
		c.Update()
	}
	assert.Equal(t, 1, resolved)
	assert.Equal(t, 1, fader.commits)
}

func TestTransitionMixIsEasedAndBounded(t *testing.T) {
	clock := &ManualClock{}
	fader := newFakeFader(3)
	c := NewController(fader, clock, nil)
	c.SetDuration(time.Second)

	c.TransitionTo(1)
	for c.Transitioning() {
		clock.Advance(50 * time.Millisecond)
		c.Update()
	}

	require.NotEmpty(t, fader.mixes)
	prev := -1.0
	for _, m := range fader.mixes[1:] {
		assert.GreaterOrEqual(t, m, 0.0)
		assert.LessOrEqual(t, m, 1.0)
		assert.GreaterOrEqual(t, m, prev)
		prev = m
	}
	// In-out quad is slower than linear in the first half.
	assert.Less(t, fader.mixes[5], 0.25)
}

func TestTransitionWhileActive(t *testing.T) {
	clock := NewFrameClock(60)
	fader := newFakeFader(3)
	c := NewController(fader, clock, nil)

	first := c.TransitionTo(1)
	second := c.TransitionTo(2)
	require.True(t, second.Done())
	assert.ErrorIs(t, second.Err(), ErrTransitionActive)
	assert.Equal(t, 1, fader.target)

	for i := 0; i < 120; i++ {
		clock.Tick()
		c.Update()
	}
	require.True(t, first.Done())
	assert.NoError(t, first.Err())
	assert.Equal(t, 1, fader.base)
}

func TestTransitionBadIndex(t *testing.T) {
	c := NewController(newFakeFader(3), &ManualClock{}, nil)
	for _, idx := range []int{-1, 3} {
		f := c.TransitionTo(idx)
		require.True(t, f.Done())
		assert.ErrorIs(t, f.Err(), ErrTextureIndex)
	}
	assert.False(t, c.Transitioning())
}

func TestTransitionDrivesCrossfadeNode(t *testing.T) {
	node := skyscroll.NewCrossfade("bg", make([]*ebiten.Image, 3))
	clock := &ManualClock{}
	c := NewController(node.Crossfade, clock, nil)

	f := c.TransitionTo(1)
	clock.Advance(time.Second)
	c.Update()
	assert.Equal(t, 1, node.Crossfade.Target())
	assert.InDelta(t, 0.5, node.Crossfade.Mix(), 1e-6)

	clock.Advance(time.Second)
	c.Update()
	require.True(t, f.Done())
	assert.Equal(t, 1, node.Crossfade.Base())
	assert.Equal(t, 0.0, node.Crossfade.Mix())
}
