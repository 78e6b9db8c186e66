package skyscroll

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// NewFPSWidget creates a sprite that displays the current FPS and TPS,
// refreshed about twice per second.
func NewFPSWidget() *Node {
	img := ebiten.NewImage(100, 32)

	node := NewSprite("fps_widget", img)
	node.RenderLayer = 255

	var sinceRefresh float64
	node.OnUpdate = func(dt float64) {
		sinceRefresh += dt
		if sinceRefresh < 0.5 {
			return
		}
		sinceRefresh = 0

		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	return node
}
