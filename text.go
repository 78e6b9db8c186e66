package skyscroll

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font wraps Ebitengine's text/v2 for TrueType font rendering.
type Font struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("skyscroll: parse font: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// DefaultFont returns the embedded Go Regular face at the given size.
func DefaultFont(size float64) (*Font, error) {
	return LoadFont(goregular.TTF, size)
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace.
func (f *Font) Face() *text.GoTextFace {
	return f.face
}

// TextBlock holds text content, formatting, and a cached rendering.
type TextBlock struct {
	Content   string
	Font      *Font
	Align     TextAlign
	WrapWidth float64 // 0 disables wrapping
	Color     Color

	lines []string
	w, h  float64
	image *ebiten.Image

	dirty       bool // cached image is stale
	layoutDirty bool // cached lines are stale
}

// SetContent replaces the text and invalidates the cached layout.
func (tb *TextBlock) SetContent(s string) {
	if tb.Content == s {
		return
	}
	tb.Content = s
	tb.Invalidate()
}

// SetWrapWidth changes the wrap width and invalidates the cached layout.
func (tb *TextBlock) SetWrapWidth(w float64) {
	if tb.WrapWidth == w {
		return
	}
	tb.WrapWidth = w
	tb.Invalidate()
}

// Invalidate forces re-layout and re-render on the next draw.
func (tb *TextBlock) Invalidate() {
	tb.dirty = true
	tb.layoutDirty = true
}

// Measure returns the laid-out size of the block.
func (tb *TextBlock) Measure() (w, h float64) {
	tb.layout()
	return tb.w, tb.h
}

// Lines returns the wrapped lines of the current layout.
func (tb *TextBlock) Lines() []string {
	tb.layout()
	return tb.lines
}

func (tb *TextBlock) layout() {
	if !tb.layoutDirty {
		return
	}
	tb.layoutDirty = false
	tb.lines = tb.lines[:0]
	tb.w, tb.h = 0, 0
	if tb.Font == nil {
		return
	}
	for _, para := range strings.Split(tb.Content, "\n") {
		tb.lines = append(tb.lines, tb.wrap(para)...)
	}
	for _, l := range tb.lines {
		w, _ := tb.Font.MeasureString(l)
		tb.w = math.Max(tb.w, w)
	}
	tb.h = float64(len(tb.lines)) * tb.Font.LineHeight()
}

// wrap breaks a paragraph on word boundaries so no line exceeds WrapWidth.
// A single word wider than WrapWidth gets a line of its own.
func (tb *TextBlock) wrap(para string) []string {
	words := strings.Fields(para)
	if tb.WrapWidth <= 0 || len(words) == 0 {
		return []string{para}
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		candidate := cur + " " + w
		if cw, _ := tb.Font.MeasureString(candidate); cw > tb.WrapWidth {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur = candidate
	}
	return append(lines, cur)
}

// render returns the cached image for the block, redrawing it when dirty.
func (tb *TextBlock) render() *ebiten.Image {
	if !tb.dirty && tb.image != nil {
		return tb.image
	}
	tb.layout()
	tb.dirty = false

	w, h := int(math.Ceil(tb.w)), int(math.Ceil(tb.h))
	if w <= 0 || h <= 0 {
		return nil
	}
	if tb.image == nil || tb.image.Bounds().Dx() != w || tb.image.Bounds().Dy() != h {
		if tb.image != nil {
			tb.image.Deallocate()
		}
		tb.image = ebiten.NewImage(w, h)
	} else {
		tb.image.Clear()
	}

	var op text.DrawOptions
	op.ColorScale.ScaleWithColor(tb.Color.toRGBA())
	lh := tb.Font.LineHeight()
	for i, line := range tb.lines {
		lw, _ := tb.Font.MeasureString(line)
		x := 0.0
		switch tb.Align {
		case TextAlignCenter:
			x = (tb.w - lw) / 2
		case TextAlignRight:
			x = tb.w - lw
		}
		op.GeoM.Reset()
		op.GeoM.Translate(x, float64(i)*lh)
		text.Draw(tb.image, line, tb.Font.face, &op)
	}
	return tb.image
}
