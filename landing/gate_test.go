package landing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateIgnoresInputUntilEnabled(t *testing.T) {
	r := newFrameRig()
	g := NewGate(r.ctrl, r.overlay, nil)
	assert.Equal(t, GateDisabled, g.State())
	assert.False(t, g.HandleWheel(1))
	assert.False(t, g.HandleTouch())
	assert.Equal(t, PhaseIdle, r.ctrl.Phase())

	g.Enable()
	assert.Equal(t, GateForwardReady, g.State())
}

func TestGoForwardSequence(t *testing.T) {
	r := newFrameRig()

	require.True(t, r.gate.GoForward())
	assert.Equal(t, PhaseDispersing, r.ctrl.Phase())
	assert.Equal(t, GateTransitioning, r.gate.State())
	assert.False(t, r.overlay.Indicator)
	assert.Equal(t, PanelShown, r.overlay.Stage)
	assert.False(t, r.overlay.Body)

	r.step(119)
	assert.False(t, r.overlay.Body, "body shows only after the first crossfade")
	r.step(1)
	assert.True(t, r.overlay.Body)
	assert.Equal(t, 1, r.fader.base)
	assert.Equal(t, PhaseDispersing, r.ctrl.Phase())

	r.step(119)
	assert.Equal(t, PhaseDispersing, r.ctrl.Phase())
	assert.True(t, r.gate.Transitioning())
	r.step(1)
	assert.Equal(t, PhaseSettled, r.ctrl.Phase())
	assert.Equal(t, 2, r.fader.base)
	assert.False(t, r.gate.Transitioning())
	assert.Equal(t, GateBackwardReady, r.gate.State())
	assert.False(t, r.overlay.Indicator)
}

func TestGoForwardNoOps(t *testing.T) {
	r := newFrameRig()
	require.True(t, r.gate.GoForward())
	assert.False(t, r.gate.GoForward(), "already transitioning")
	assert.False(t, r.gate.GoBackward(), "already transitioning")

	r.step(240)
	require.Equal(t, PhaseSettled, r.ctrl.Phase())
	assert.False(t, r.gate.GoForward(), "not at phase 1")
	assert.False(t, r.gate.HandleWheel(1))
	assert.Equal(t, PhaseSettled, r.ctrl.Phase())
}

func TestGoBackwardNoOps(t *testing.T) {
	r := newFrameRig()
	assert.False(t, r.gate.GoBackward(), "not at phase 3")
	assert.False(t, r.gate.HandleWheel(-1))
	assert.False(t, r.gate.HandleWheel(0))
	assert.Equal(t, PhaseIdle, r.ctrl.Phase())
	assert.False(t, r.gate.Transitioning())
}

func TestGoBackwardSkipsDispersal(t *testing.T) {
	r := newFrameRig()
	require.True(t, r.gate.HandleWheel(3))
	r.step(240)
	require.Equal(t, PhaseSettled, r.ctrl.Phase())

	var phases []Phase
	r.ctrl.OnPhaseChange(func(p Phase) { phases = append(phases, p) })

	require.True(t, r.gate.HandleWheel(-3))
	assert.False(t, r.overlay.Body)
	assert.Equal(t, PanelExited, r.overlay.Stage)
	assert.Equal(t, PhaseSettled, r.ctrl.Phase(), "phase holds until the fade completes")

	r.step(120)
	assert.Equal(t, PhaseIdle, r.ctrl.Phase())
	assert.Equal(t, []Phase{PhaseIdle}, phases)
	assert.Equal(t, 0, r.fader.base)
	assert.True(t, r.overlay.Indicator)
	assert.Equal(t, PanelHidden, r.overlay.Stage)
	assert.Equal(t, GateForwardReady, r.gate.State())
}

func TestHandleTouchFollowsPhase(t *testing.T) {
	r := newFrameRig()
	require.True(t, r.gate.HandleTouch())
	assert.False(t, r.gate.HandleTouch(), "locked")
	r.step(240)
	require.True(t, r.gate.HandleTouch())
	r.step(120)
	assert.Equal(t, PhaseIdle, r.ctrl.Phase())
}

func TestGateUnlocksOnSequenceError(t *testing.T) {
	r := newFrameRig()
	r.fader.n = 2 // the second crossfade target does not exist

	require.True(t, r.gate.GoForward())
	r.step(120)
	assert.False(t, r.gate.Transitioning())
	assert.Equal(t, PhaseIdle, r.ctrl.Phase())
	assert.True(t, r.overlay.Indicator)
	assert.False(t, r.overlay.Body)
	assert.Equal(t, PanelHidden, r.overlay.Stage)
	assert.Equal(t, GateForwardReady, r.gate.State())
	assert.True(t, r.gate.GoForward(), "narrative can be retried")
}
