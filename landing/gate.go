package landing

import (
	"go.uber.org/zap"
)

// GateState is the scroll gate state derived from phase and lock.
type GateState int

const (
	GateDisabled GateState = iota
	GateForwardReady
	GateTransitioning
	GateBackwardReady
)

func (s GateState) String() string {
	switch s {
	case GateDisabled:
		return "disabled"
	case GateForwardReady:
		return "forward-ready"
	case GateTransitioning:
		return "transitioning"
	case GateBackwardReady:
		return "backward-ready"
	}
	return "unknown"
}

// Background slots visited by the narrative.
const (
	imageIntro = 0
	imageMid   = 1
	imageEnd   = 2
)

// Gate turns wheel and touch input into forward and backward narrative
// sequences. Input is ignored until Enable and while a sequence runs.
type Gate struct {
	ctrl    *Controller
	overlay Overlay
	logger  *zap.Logger

	enabled       bool
	transitioning bool
	seq           *Sequence
}

// NewGate returns a disabled gate driving ctrl and overlay.
func NewGate(ctrl *Controller, overlay Overlay, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{ctrl: ctrl, overlay: overlay, logger: logger}
}

// Enable lets input through. Called once assets have loaded.
func (g *Gate) Enable() {
	if !g.enabled {
		g.enabled = true
		g.logger.Debug("gate enabled")
	}
}

// Enabled reports whether Enable has been called.
func (g *Gate) Enabled() bool { return g.enabled }

// Transitioning reports whether a sequence holds the lock.
func (g *Gate) Transitioning() bool { return g.transitioning }

// State summarizes what input the gate currently accepts.
func (g *Gate) State() GateState {
	switch {
	case !g.enabled:
		return GateDisabled
	case g.transitioning:
		return GateTransitioning
	case g.ctrl.Phase() == PhaseIdle:
		return GateForwardReady
	case g.ctrl.Phase() == PhaseSettled:
		return GateBackwardReady
	}
	return GateTransitioning
}

// GoForward runs the intro-to-settled sequence. It reports false and does
// nothing unless the gate is enabled, unlocked and at PhaseIdle.
func (g *Gate) GoForward() bool {
	if !g.enabled || g.transitioning || g.ctrl.Phase() != PhaseIdle {
		return false
	}
	g.start("forward", NewSequence(
		Do(func() {
			g.overlay.SetIndicatorVisible(false)
			g.ctrl.SetPhase(PhaseDispersing)
			g.overlay.SlidePanel(PanelShown)
		}),
		Await(func() *Future { return g.ctrl.TransitionTo(imageMid) }),
		Do(func() { g.overlay.SetBodyVisible(true) }),
		Await(func() *Future { return g.ctrl.TransitionTo(imageEnd) }),
		Do(func() { g.ctrl.SetPhase(PhaseSettled) }),
	))
	return true
}

// GoBackward returns from PhaseSettled straight to PhaseIdle. It reports
// false and does nothing unless the gate is enabled, unlocked and settled.
func (g *Gate) GoBackward() bool {
	if !g.enabled || g.transitioning || g.ctrl.Phase() != PhaseSettled {
		return false
	}
	g.start("backward", NewSequence(
		Do(func() {
			g.overlay.SetBodyVisible(false)
			g.overlay.SlidePanel(PanelExited)
		}),
		Await(func() *Future { return g.ctrl.TransitionTo(imageIntro) }),
		Do(func() {
			g.ctrl.SetPhase(PhaseIdle)
			g.overlay.SlidePanel(PanelHidden)
			g.overlay.SetIndicatorVisible(true)
		}),
	))
	return true
}

// HandleWheel maps a wheel delta to a direction. dy > 0 scrolls down.
func (g *Gate) HandleWheel(dy float64) bool {
	switch {
	case dy > 0:
		return g.GoForward()
	case dy < 0:
		return g.GoBackward()
	}
	return false
}

// HandleTouch advances in whichever direction the current phase allows.
func (g *Gate) HandleTouch() bool {
	switch g.ctrl.Phase() {
	case PhaseIdle:
		return g.GoForward()
	case PhaseSettled:
		return g.GoBackward()
	}
	return false
}

// Update advances the running sequence. Call once per frame after the
// controller has updated.
func (g *Gate) Update() {
	if g.seq == nil {
		return
	}
	g.seq.Update()
	if !g.seq.Done() {
		return
	}
	if err := g.seq.Err(); err != nil {
		g.logger.Error("sequence failed", zap.Error(err), zap.Stringer("phase", g.ctrl.Phase()))
		g.rollback()
	}
	g.seq = nil
	g.transitioning = false
	g.logger.Debug("gate unlocked", zap.Stringer("state", g.State()))
}

// rollback puts a forward sequence that failed part way back at PhaseIdle so
// the narrative can be retried. PhaseSettled already accepts GoBackward.
func (g *Gate) rollback() {
	if g.ctrl.Phase() != PhaseDispersing {
		return
	}
	g.overlay.SetBodyVisible(false)
	g.overlay.SlidePanel(PanelHidden)
	g.overlay.SetIndicatorVisible(true)
	g.ctrl.SetPhase(PhaseIdle)
}

func (g *Gate) start(name string, seq *Sequence) {
	g.transitioning = true
	g.seq = seq
	g.logger.Info("sequence started", zap.String("direction", name))
	g.Update()
}
