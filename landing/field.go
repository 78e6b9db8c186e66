package landing

import (
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/skyscroll"
	"github.com/phanxgames/skyscroll/config"
)

// RestState is the snapshot a particle recovers toward.
type RestState struct {
	Pos     skyscroll.Vec2
	Scale   float64
	Opacity float64
}

// Particle is one cloud. Pos is relative to the viewport center.
type Particle struct {
	Pos        skyscroll.Vec2
	Scale      float64
	Opacity    float64
	Rest       RestState
	Recovering bool

	node *skyscroll.Node
}

// distToRest is the positional distance to the rest state.
func (p *Particle) distToRest() float64 {
	d := p.Pos.Sub(p.Rest.Pos)
	return math.Hypot(d.X, d.Y)
}

// Field is the fixed-size cloud particle set. Behavior each frame depends on
// the phase read from its PhaseSource.
type Field struct {
	cfg       config.FieldConfig
	phase     PhaseSource
	layer     *skyscroll.Node
	particles []Particle
	viewport  skyscroll.Viewport

	pointerRaw skyscroll.Vec2
	pointer    skyscroll.Vec2
}

// NewField creates an empty field. Cloud sprites are added under layer when
// Populate runs; layer may be nil for a headless field.
func NewField(cfg config.FieldConfig, phase PhaseSource, layer *skyscroll.Node) *Field {
	return &Field{cfg: cfg, phase: phase, layer: layer}
}

// SetConfig swaps tuning values without touching particle state.
func (f *Field) SetConfig(cfg config.FieldConfig) {
	f.cfg = cfg
}

// Resize records the new viewport. Particle state is left as is.
func (f *Field) Resize(vp skyscroll.Viewport) {
	f.viewport = vp
	f.syncNodes()
}

// Populate replaces the particle set with count clouds placed from a seeded
// source and snapshots their rest state. tex may be nil.
func (f *Field) Populate(count int, seed uint64, tex *ebiten.Image) {
	f.Clear()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	half := f.viewport.HalfExtents()

	f.particles = make([]Particle, count)
	for i := range f.particles {
		p := &f.particles[i]
		p.Pos = skyscroll.Vec2{
			X: (rng.Float64()*2 - 1) * half.X,
			Y: (rng.Float64()*2 - 1) * half.Y,
		}
		p.Scale = f.cfg.BaseScale * (0.6 + 0.8*rng.Float64())
		p.Opacity = 0.6 + 0.4*rng.Float64()
		p.Rest = RestState{Pos: p.Pos, Scale: p.Scale, Opacity: p.Opacity}

		if f.layer != nil {
			n := skyscroll.NewSprite("cloud", tex)
			if tex != nil {
				b := tex.Bounds()
				n.SetPivot(float64(b.Dx())/2, float64(b.Dy())/2)
			}
			f.layer.AddChild(n)
			p.node = n
		}
	}
	f.syncNodes()
}

// Clear disposes every cloud.
func (f *Field) Clear() {
	for i := range f.particles {
		if n := f.particles[i].node; n != nil {
			n.Dispose()
		}
	}
	f.particles = nil
}

// Particles exposes the particle slice. Callers must not grow it.
func (f *Field) Particles() []Particle { return f.particles }

// Len returns the number of clouds.
func (f *Field) Len() int { return len(f.particles) }

// SetPointer sets the raw pointer target from screen coordinates.
func (f *Field) SetPointer(x, y float64) {
	half := f.viewport.HalfExtents()
	f.pointerRaw = skyscroll.Vec2{X: x - half.X, Y: y - half.Y}
}

// Pointer returns the smoothed pointer, relative to the viewport center.
func (f *Field) Pointer() skyscroll.Vec2 { return f.pointer }

// Update advances one frame.
func (f *Field) Update() {
	f.pointer = f.pointer.Add(f.pointerRaw.Sub(f.pointer).Scale(f.cfg.PointerSmoothing))

	switch f.phase.Phase() {
	case PhaseIdle:
		for i := range f.particles {
			f.updateIdle(i, &f.particles[i])
		}
	case PhaseDispersing:
		for i := range f.particles {
			f.updateDispersing(&f.particles[i])
		}
	default:
		return
	}
	f.syncNodes()
}

func (f *Field) updateIdle(i int, p *Particle) {
	if p.Recovering {
		k := f.cfg.RecoveryRate
		p.Pos = p.Pos.Lerp(p.Rest.Pos, k)
		p.Scale += (p.Rest.Scale - p.Scale) * k
		p.Opacity += (p.Rest.Opacity - p.Opacity) * k
		if p.distToRest() < f.cfg.RecoveryTolerance {
			p.Pos = p.Rest.Pos
			p.Scale = p.Rest.Scale
			p.Opacity = p.Rest.Opacity
			p.Recovering = false
		}
		return
	}

	dir := 1.0
	if i%2 == 1 {
		dir = -1
	}
	p.Pos.X += f.cfg.DriftSpeed * dir

	edge := f.viewport.HalfExtents().X + f.cfg.WrapMargin
	if p.Pos.X > edge {
		p.Pos.X = -edge
	} else if p.Pos.X < -edge {
		p.Pos.X = edge
	}

	d := p.Pos.Sub(f.pointer)
	dist := math.Hypot(d.X, d.Y)
	if dist > 0 && dist < f.cfg.RepelRadius {
		push := (f.cfg.RepelRadius - dist) * f.cfg.RepelStrength
		p.Pos = p.Pos.Add(d.Scale(push / dist))
	}
}

func (f *Field) updateDispersing(p *Particle) {
	p.Recovering = true
	p.Pos = p.Pos.Lerp(f.exitPoint(p.Pos), f.cfg.ExitRate)
	p.Scale *= f.cfg.ShrinkFactor
	p.Opacity *= f.cfg.FadeFactor
}

// exitPoint is the off-screen point past the nearest edge on the dominant
// axis of pos, normalised by the viewport half extents.
func (f *Field) exitPoint(pos skyscroll.Vec2) skyscroll.Vec2 {
	half := f.viewport.HalfExtents()
	nx, ny := 0.0, 0.0
	if half.X > 0 {
		nx = pos.X / half.X
	}
	if half.Y > 0 {
		ny = pos.Y / half.Y
	}
	if math.Abs(nx) >= math.Abs(ny) {
		return skyscroll.Vec2{X: sign(pos.X) * (half.X + f.cfg.ExitMargin), Y: pos.Y}
	}
	return skyscroll.Vec2{X: pos.X, Y: sign(pos.Y) * (half.Y + f.cfg.ExitMargin)}
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func (f *Field) syncNodes() {
	half := f.viewport.HalfExtents()
	for i := range f.particles {
		p := &f.particles[i]
		if p.node == nil {
			continue
		}
		p.node.SetPosition(half.X+p.Pos.X, half.Y+p.Pos.Y)
		p.node.SetScale(p.Scale, p.Scale)
		p.node.SetAlpha(clamp(p.Opacity, 0, 1))
	}
}
