package skyscroll

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// crossfadeShaderSrc blends the two source images by the Mix uniform.
// Both sources are pre-scaled to the destination size, so they share
// coordinates with the destination rect.
const crossfadeShaderSrc = `//kage:unit pixels
package main

var Mix float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	a := imageSrc0At(src)
	b := imageSrc1At(src)
	return mix(a, b, clamp(Mix, 0, 1)) * color.a
}
`

// Lazy shader compilation (no sync.Once; the scene graph is single-threaded).
var crossfadeShader *ebiten.Shader

func ensureCrossfadeShader() *ebiten.Shader {
	if crossfadeShader == nil {
		s, err := ebiten.NewShader([]byte(crossfadeShaderSrc))
		if err != nil {
			panic("skyscroll: failed to compile crossfade shader: " + err.Error())
		}
		crossfadeShader = s
	}
	return crossfadeShader
}

// Crossfade is a full-viewport plane that blends a base texture into a target
// texture. Mix 0 shows only the base, Mix 1 only the target. Textures are
// scaled to cover the plane and shifted by Offset for parallax.
type Crossfade struct {
	textures []*ebiten.Image
	base     int
	target   int
	mix      float64

	// Offset shifts both textures, in pixels. Overscan is the extra fraction
	// of the plane size each texture is enlarged by, so that offsets up to
	// Overscan/2 of the size never reveal an edge.
	Offset   Vec2
	Overscan float64

	width, height int
	bufA, bufB    *ebiten.Image
	uniforms      map[string]any
	shaderOp      ebiten.DrawRectShaderOptions
	imgOp         ebiten.DrawImageOptions
}

// NewCrossfade creates a crossfade node over the given textures. Entries may
// be nil and filled later with SetTexture once loading completes. The plane is
// sized by the scene on Resize.
func NewCrossfade(name string, textures []*ebiten.Image) *Node {
	c := &Crossfade{
		textures: append([]*ebiten.Image(nil), textures...),
		Overscan: 0.1,
		uniforms: map[string]any{"Mix": float32(0)},
	}
	n := &Node{Name: name, Type: NodeTypeCrossfade, Crossfade: c}
	nodeDefaults(n)
	return n
}

// TextureCount returns the number of texture slots.
func (c *Crossfade) TextureCount() int {
	return len(c.textures)
}

// SetTexture fills texture slot i. Out-of-range indexes are ignored.
func (c *Crossfade) SetTexture(i int, img *ebiten.Image) {
	if i < 0 || i >= len(c.textures) {
		return
	}
	c.textures[i] = img
}

// Texture returns the image in slot i, or nil.
func (c *Crossfade) Texture(i int) *ebiten.Image {
	if i < 0 || i >= len(c.textures) {
		return nil
	}
	return c.textures[i]
}

// Base returns the index of the texture shown at Mix 0.
func (c *Crossfade) Base() int { return c.base }

// Target returns the index of the texture shown at Mix 1.
func (c *Crossfade) Target() int { return c.target }

// Mix returns the current blend factor in [0, 1].
func (c *Crossfade) Mix() float64 { return c.mix }

// SetTarget selects the texture blended in as Mix rises.
func (c *Crossfade) SetTarget(i int) {
	c.target = i
}

// SetMix sets the blend factor, clamped to [0, 1].
func (c *Crossfade) SetMix(m float64) {
	c.mix = clamp01(m)
}

// Commit makes the target the new base and resets Mix to 0.
func (c *Crossfade) Commit() {
	c.base = c.target
	c.mix = 0
}

// SetOffset sets the parallax offset in pixels.
func (c *Crossfade) SetOffset(v Vec2) {
	c.Offset = v
}

// Size returns the plane size in pixels.
func (c *Crossfade) Size() (w, h int) {
	return c.width, c.height
}

func (c *Crossfade) resize(w, h int) {
	if w == c.width && h == c.height {
		return
	}
	c.width, c.height = w, h
	c.release()
}

func (c *Crossfade) release() {
	if c.bufA != nil {
		c.bufA.Deallocate()
		c.bufA = nil
	}
	if c.bufB != nil {
		c.bufB.Deallocate()
		c.bufB = nil
	}
}

// coverGeoM positions src so it covers a w×h plane (plus overscan) centered
// on the plane, shifted by the offset.
func (c *Crossfade) coverGeoM(src *ebiten.Image, op *ebiten.DrawImageOptions) {
	sb := src.Bounds()
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	pw := float64(c.width) * (1 + c.Overscan)
	ph := float64(c.height) * (1 + c.Overscan)
	k := math.Max(pw/sw, ph/sh)
	op.GeoM.Reset()
	op.GeoM.Translate(-sw/2, -sh/2)
	op.GeoM.Scale(k, k)
	op.GeoM.Translate(float64(c.width)/2+c.Offset.X, float64(c.height)/2+c.Offset.Y)
}

func (c *Crossfade) fill(buf, src *ebiten.Image) {
	buf.Clear()
	if src == nil {
		return
	}
	c.coverGeoM(src, &c.imgOp)
	c.imgOp.Filter = ebiten.FilterLinear
	buf.DrawImage(src, &c.imgOp)
}

// draw renders the blended plane onto target with the given transform and alpha.
func (c *Crossfade) draw(target *ebiten.Image, geo ebiten.GeoM, alpha float32) {
	if c.width <= 0 || c.height <= 0 {
		return
	}
	if c.bufA == nil {
		c.bufA = ebiten.NewImage(c.width, c.height)
		c.bufB = ebiten.NewImage(c.width, c.height)
	}
	c.fill(c.bufA, c.Texture(c.base))
	c.fill(c.bufB, c.Texture(c.target))

	c.uniforms["Mix"] = float32(c.mix)
	c.shaderOp.Images[0] = c.bufA
	c.shaderOp.Images[1] = c.bufB
	c.shaderOp.Uniforms = c.uniforms
	c.shaderOp.GeoM = geo
	c.shaderOp.ColorScale.Reset()
	c.shaderOp.ColorScale.ScaleAlpha(alpha)
	target.DrawRectShader(c.width, c.height, ensureCrossfadeShader(), &c.shaderOp)
}
