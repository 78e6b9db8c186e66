package skyscroll

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

const defaultCommandCap = 256

// Scene is the top-level object that owns the node tree, viewport, input
// dispatch and render buffers.
type Scene struct {
	root   *Node
	debug  bool
	logger *zap.Logger

	// ClearColor fills the screen before drawing. A zero alpha skips the fill.
	ClearColor Color

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	viewport      Viewport
	resizeHandler []func(Viewport)
	updateFunc    func() error
	frame         uint64

	// Render state
	commands []RenderCommand

	// Input state
	handlers     handlerRegistry
	pointerKnown bool
	pointerX     float64
	pointerY     float64
	touchBuf     []ebiten.TouchID
	injectQueue  []syntheticEvent
	headless     bool

	testRunner      *TestRunner
	screenshotQueue []string
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{
		root:          NewContainer("root"),
		logger:        zap.NewNop(),
		commands:      make([]RenderCommand, 0, defaultCommandCap),
		ScreenshotDir: "screenshots",
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetLogger sets the logger used for debug stats and warnings. nil restores
// the no-op logger.
func (s *Scene) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.logger = l
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *zap.Logger {
	return s.logger
}

// SetUpdateFunc sets a callback invoked once per Update after input has been
// dispatched and before node updates run. A non-nil error stops the loop.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetHeadless disables reading real input devices. Injected input still
// flows. Used for scripted runs and tests.
func (s *Scene) SetHeadless(headless bool) {
	s.headless = headless
}

// Frame returns the number of completed Update calls.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// FrameDelta returns the fixed simulation step in seconds.
func FrameDelta() float64 {
	return 1.0 / float64(ebiten.TPS())
}

// Update dispatches input, runs the update callback, advances node
// callbacks, and refreshes world transforms.
func (s *Scene) Update() error {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()

	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}
	updateNodes(s.root, FrameDelta())
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	s.frame++
	return nil
}

// Viewport returns the current viewport.
func (s *Scene) Viewport() Viewport {
	return s.viewport
}

// OnResize registers a callback fired after the viewport changes size.
func (s *Scene) OnResize(fn func(Viewport)) {
	s.resizeHandler = append(s.resizeHandler, fn)
}

// Resize updates the viewport size and aspect ratio, resizes every crossfade
// plane, and notifies resize callbacks. Repeated calls with the same size are
// no-ops. Node state is otherwise left untouched.
func (s *Scene) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if w == s.viewport.Width && h == s.viewport.Height {
		return
	}
	s.viewport = Viewport{Width: w, Height: h, Aspect: float64(w) / float64(h)}
	resizeCrossfades(s.root, w, h)
	s.logger.Debug("viewport resized",
		zap.Int("width", w), zap.Int("height", h), zap.Float64("aspect", s.viewport.Aspect))
	for _, fn := range s.resizeHandler {
		fn(s.viewport)
	}
}

func resizeCrossfades(n *Node, w, h int) {
	if n.Crossfade != nil {
		n.Crossfade.resize(w, h)
	}
	for _, c := range n.children {
		resizeCrossfades(c, w, h)
	}
}

// Draw traverses the scene tree, emits render commands, sorts them, and
// submits them to screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.commands = s.commands[:0]
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	treeOrder := 0
	s.traverse(s.root, &treeOrder)
	s.sortCommands()

	if s.debug {
		stats.traverseTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submit(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		s.debugLog(stats)
	}
	s.flushScreenshots(screen)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and per-frame timing stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
