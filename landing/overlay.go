package landing

import (
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/skyscroll"
	"github.com/phanxgames/skyscroll/config"
)

// PanelStage is where the heading panel sits horizontally.
type PanelStage int

const (
	PanelHidden PanelStage = iota // off-screen right, before the narrative
	PanelShown                    // on screen
	PanelExited                   // off-screen left, on the way back
)

func (s PanelStage) String() string {
	switch s {
	case PanelHidden:
		return "hidden"
	case PanelShown:
		return "shown"
	case PanelExited:
		return "exited"
	}
	return "unknown"
}

// Overlay is the text layer driven by the gate: a scroll indicator, a heading
// panel that slides, and body text that fades.
type Overlay interface {
	SetIndicatorVisible(visible bool)
	SlidePanel(stage PanelStage)
	SetBodyVisible(visible bool)
	Update(dt float64)
	Resize(vp skyscroll.Viewport)
}

// HeadlessOverlay records overlay state without drawing anything.
type HeadlessOverlay struct {
	Indicator bool
	Stage     PanelStage
	Body      bool
}

// NewHeadlessOverlay starts with the indicator shown, like TextOverlay.
func NewHeadlessOverlay() *HeadlessOverlay {
	return &HeadlessOverlay{Indicator: true}
}

func (o *HeadlessOverlay) SetIndicatorVisible(v bool) { o.Indicator = v }
func (o *HeadlessOverlay) SlidePanel(s PanelStage)    { o.Stage = s }
func (o *HeadlessOverlay) SetBodyVisible(v bool)      { o.Body = v }
func (o *HeadlessOverlay) Update(float64)             {}
func (o *HeadlessOverlay) Resize(skyscroll.Viewport)  {}

const (
	panelMargin    = 40.0
	panelGap       = 24.0
	panelTop       = 0.3
	panelLeft      = 0.08
	panelWrap      = 0.5
	indicatorInset = 60.0
)

// TextOverlay renders the overlay with text nodes and tweens.
type TextOverlay struct {
	layer     *skyscroll.Node
	panel     *skyscroll.Node
	heading   *skyscroll.Node
	body      *skyscroll.Node
	indicator *skyscroll.Node

	vp       skyscroll.Viewport
	slideDur float32
	fadeDur  float32
	ease     ease.TweenFunc
	stage    PanelStage
	bodyOn   bool
	hintOn   bool
	slide    *skyscroll.TweenGroup
	slideRem float32 // seconds left on slide
	bodyFade *skyscroll.TweenGroup
	hintFade *skyscroll.TweenGroup
}

// NewTextOverlay builds the overlay nodes under parent. The panel starts
// hidden, the body transparent and the indicator visible.
func NewTextOverlay(parent *skyscroll.Node, headingFont, bodyFont *skyscroll.Font, cfg config.OverlayConfig) *TextOverlay {
	fn, _ := skyscroll.EaseByName(cfg.Ease)
	o := &TextOverlay{
		layer:    skyscroll.NewContainer("overlay"),
		panel:    skyscroll.NewContainer("panel"),
		slideDur: float32(cfg.SlideDuration.Seconds()),
		fadeDur:  float32(cfg.FadeDuration.Seconds()),
		ease:     fn,
		hintOn:   true,
	}
	o.layer.RenderLayer = 2

	o.heading = skyscroll.NewText("heading", cfg.Heading, headingFont)
	o.body = skyscroll.NewText("body", cfg.Body, bodyFont)
	o.body.SetAlpha(0)
	o.indicator = skyscroll.NewText("indicator", cfg.Indicator, bodyFont)
	o.indicator.TextBlock.Align = skyscroll.TextAlignCenter

	o.panel.AddChild(o.heading)
	o.panel.AddChild(o.body)
	o.layer.AddChild(o.panel)
	o.layer.AddChild(o.indicator)
	parent.AddChild(o.layer)
	return o
}

// Stage returns the stage the panel is at or moving to.
func (o *TextOverlay) Stage() PanelStage { return o.stage }

// BodyVisible reports the last requested body visibility.
func (o *TextOverlay) BodyVisible() bool { return o.bodyOn }

// IndicatorVisible reports the last requested indicator visibility.
func (o *TextOverlay) IndicatorVisible() bool { return o.hintOn }

func (o *TextOverlay) SetIndicatorVisible(v bool) {
	o.hintOn = v
	o.hintFade = skyscroll.TweenAlpha(o.indicator, alphaFor(v), o.fadeDur, o.ease)
}

// SlidePanel moves the heading panel to stage. Returning from exited to
// hidden jumps instead of crossing the screen.
func (o *TextOverlay) SlidePanel(stage PanelStage) {
	prev := o.stage
	o.stage = stage
	if prev == PanelExited && stage == PanelHidden {
		o.slide = nil
		o.panel.SetPosition(o.panelX(stage), o.panel.Y)
		return
	}
	o.startSlide(o.slideDur)
}

func (o *TextOverlay) startSlide(dur float32) {
	o.slide = skyscroll.TweenX(o.panel, o.panelX(o.stage), dur, o.ease)
	o.slideRem = dur
}

func (o *TextOverlay) sliding() bool {
	return o.slide != nil && !o.slide.Done
}

func (o *TextOverlay) SetBodyVisible(v bool) {
	o.bodyOn = v
	o.bodyFade = skyscroll.TweenAlpha(o.body, alphaFor(v), o.fadeDur, o.ease)
}

func (o *TextOverlay) Update(dt float64) {
	if o.sliding() {
		o.slideRem -= float32(dt)
	}
	o.slide.Update(float32(dt))
	o.bodyFade.Update(float32(dt))
	o.hintFade.Update(float32(dt))
}

// Resize relayouts the panel and indicator. Fades keep running; a slide in
// progress continues from where the panel is toward the new stage position
// over the time it had left.
func (o *TextOverlay) Resize(vp skyscroll.Viewport) {
	o.vp = vp
	wrap := float64(vp.Width) * panelWrap
	o.heading.TextBlock.SetWrapWidth(wrap)
	o.body.TextBlock.SetWrapWidth(wrap)

	_, hh := o.heading.Size()
	o.body.SetPosition(0, hh+panelGap)
	if o.sliding() && o.slideRem > 0 {
		o.panel.SetPosition(o.panel.X, float64(vp.Height)*panelTop)
		o.startSlide(o.slideRem)
	} else {
		o.slide = nil
		o.panel.SetPosition(o.panelX(o.stage), float64(vp.Height)*panelTop)
	}

	iw, ih := o.indicator.Size()
	o.indicator.SetPosition((float64(vp.Width)-iw)/2, float64(vp.Height)-indicatorInset-ih)
}

func (o *TextOverlay) panelX(stage PanelStage) float64 {
	w := float64(o.vp.Width)
	switch stage {
	case PanelShown:
		return w * panelLeft
	case PanelExited:
		return -(w*panelWrap + panelMargin)
	}
	return w + panelMargin
}

// Dispose removes the overlay nodes from the scene.
func (o *TextOverlay) Dispose() {
	o.layer.Dispose()
}

func alphaFor(visible bool) float64 {
	if visible {
		return 1
	}
	return 0
}
