package skyscroll

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 float64 fields on a Node simultaneously.
// Create one via TweenPosition, TweenX or TweenAlpha and call Update(dt) each
// frame. The group writes values straight into the node and marks it dirty.
// If the target node is disposed, the group stops immediately.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	fields [2]*float64
	ends   [2]float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty.
func (g *TweenGroup) Update(dt float32) {
	if g == nil || g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// Finish jumps every tween to its end value.
func (g *TweenGroup) Finish() {
	if g == nil || g.Done {
		return
	}
	for i := 0; i < g.count; i++ {
		*g.fields[i] = g.ends[i]
	}
	g.Done = true
	if g.target != nil && !g.target.IsDisposed() {
		g.target.MarkDirty()
	}
}

// TweenPosition animates node.X and node.Y to the target coordinates.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(toY), duration, fn)
	g.fields[0] = &node.X
	g.fields[1] = &node.Y
	g.ends = [2]float64{toX, toY}
	return g
}

// TweenX animates node.X only; used for horizontal slides.
func TweenX(node *Node, toX float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(toX), duration, fn)
	g.fields[0] = &node.X
	g.ends[0] = toX
	return g
}

// TweenAlpha animates node.Alpha to the target value.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Alpha), float32(to), duration, fn)
	g.fields[0] = &node.Alpha
	g.ends[0] = to
	return g
}

// EaseByName maps a config-friendly easing name to a gween easing function.
// Unknown names fall back to ease.Linear and report false.
func EaseByName(name string) (ease.TweenFunc, bool) {
	switch name {
	case "linear", "":
		return ease.Linear, true
	case "in-quad":
		return ease.InQuad, true
	case "out-quad":
		return ease.OutQuad, true
	case "in-out-quad":
		return ease.InOutQuad, true
	case "in-cubic":
		return ease.InCubic, true
	case "out-cubic":
		return ease.OutCubic, true
	case "in-out-cubic":
		return ease.InOutCubic, true
	case "in-out-sine":
		return ease.InOutSine, true
	case "in-out-expo":
		return ease.InOutExpo, true
	}
	return ease.Linear, false
}
