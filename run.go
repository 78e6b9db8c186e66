package skyscroll

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	ShowFPS   bool
	Resizable bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
}

func (g *game) Update() error        { return g.scene.Update() }
func (g *game) Draw(s *ebiten.Image) { g.scene.Draw(s) }

// Layout tracks the outside size 1:1 and resizes the scene to match.
func (g *game) Layout(w, h int) (int, int) {
	g.scene.Resize(w, h)
	return w, h
}

// Run opens a window and drives the scene until the window closes or the
// update callback returns an error. ebiten.Termination ends the loop without
// error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.ShowFPS {
		scene.Root().AddChild(NewFPSWidget())
	}
	scene.Resize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{scene: scene})
}
