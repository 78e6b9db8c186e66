package landing

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/phanxgames/skyscroll"
	"github.com/phanxgames/skyscroll/config"
)

// ErrMountNotFound means the scene has no container named by Config.Mount.
var ErrMountNotFound = errors.New("landing: mount point not found")

// Options configures New. Zero values pick sensible defaults.
type Options struct {
	Config *config.Config
	Logger *zap.Logger

	// Clock defaults to a FrameClock at the configured tick rate.
	Clock Clock

	// Overlay defaults to a TextOverlay when HeadingFont and BodyFont are set,
	// and to a HeadlessOverlay otherwise.
	Overlay     Overlay
	HeadingFont *skyscroll.Font
	BodyFont    *skyscroll.Font

	// Decode defaults to skyscroll.DecodeImageFile.
	Decode Decoder

	// Reload delivers hot-reloaded configs.
	Reload <-chan *config.Config
}

// App wires the landing components into a scene.
type App struct {
	scene  *skyscroll.Scene
	cfg    *config.Config
	logger *zap.Logger

	mount    *skyscroll.Node
	backdrop *skyscroll.Node
	clouds   *skyscroll.Node

	clock   Clock
	ctrl    *Controller
	field   *Field
	gate    *Gate
	overlay Overlay

	decode  Decoder
	assets  <-chan AssetResult
	reload  <-chan *config.Config
	cancel  context.CancelFunc
	handles []skyscroll.CallbackHandle
	closed  bool
}

// New builds the landing scene under the mount container and hooks the scene
// input, resize and update callbacks. It fails with ErrMountNotFound when the
// mount does not exist.
func New(scene *skyscroll.Scene, opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	mount := scene.Root().FindChild(cfg.Mount)
	if mount == nil {
		return nil, fmt.Errorf("%w: %q", ErrMountNotFound, cfg.Mount)
	}

	a := &App{
		scene:  scene,
		cfg:    cfg,
		logger: logger,
		mount:  mount,
		clock:  opts.Clock,
		decode: opts.Decode,
		reload: opts.Reload,
	}
	if a.clock == nil {
		a.clock = NewFrameClock(cfg.Window.TPS)
	}

	a.backdrop = skyscroll.NewCrossfade("backdrop", make([]*ebiten.Image, len(cfg.Assets.Backgrounds)))
	a.clouds = skyscroll.NewContainer("clouds")
	a.clouds.RenderLayer = 1
	mount.AddChild(a.backdrop)
	mount.AddChild(a.clouds)

	a.overlay = opts.Overlay
	if a.overlay == nil {
		if opts.HeadingFont != nil && opts.BodyFont != nil {
			a.overlay = NewTextOverlay(mount, opts.HeadingFont, opts.BodyFont, cfg.Overlay)
		} else {
			a.overlay = NewHeadlessOverlay()
		}
	}

	a.ctrl = NewController(a.backdrop.Crossfade, a.clock, logger.Named("controller"))
	a.field = NewField(cfg.Field, a.ctrl, a.clouds)
	a.gate = NewGate(a.ctrl, a.overlay, logger.Named("gate"))
	a.applyTuning(cfg)

	a.handles = append(a.handles,
		scene.OnWheel(func(ctx skyscroll.WheelContext) { a.gate.HandleWheel(ctx.DeltaY) }),
		scene.OnTouchStart(func(skyscroll.TouchContext) { a.gate.HandleTouch() }),
		scene.OnPointerMove(func(ctx skyscroll.PointerContext) { a.field.SetPointer(ctx.X, ctx.Y) }),
	)
	scene.OnResize(a.Resize)
	scene.SetUpdateFunc(a.Update)

	if vp := scene.Viewport(); vp.Width > 0 {
		a.Resize(vp)
	}
	logger.Info("landing initialised", zap.String("mount", cfg.Mount),
		zap.Int("backgrounds", len(cfg.Assets.Backgrounds)))
	return a, nil
}

func (a *App) Controller() *Controller { return a.ctrl }
func (a *App) Field() *Field           { return a.field }
func (a *App) Gate() *Gate             { return a.gate }
func (a *App) Overlay() Overlay        { return a.overlay }
func (a *App) Clock() Clock            { return a.clock }

// Backdrop returns the crossfade plane.
func (a *App) Backdrop() *skyscroll.Crossfade { return a.backdrop.Crossfade }

// Load starts decoding assets in the background. The field is populated and
// the gate enabled on the first Update after loading completes.
func (a *App) Load(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.assets = StartAssetLoad(ctx, a.cfg.Assets, a.decode)
	a.logger.Debug("asset load started")
}

// UseAssets installs already decoded assets. Must be called on the frame
// loop.
func (a *App) UseAssets(assets *Assets) {
	cf := a.backdrop.Crossfade
	for i, img := range assets.Backgrounds {
		if img != nil {
			cf.SetTexture(i, ebiten.NewImageFromImage(img))
		}
	}
	var cloud *ebiten.Image
	if assets.Cloud != nil {
		cloud = ebiten.NewImageFromImage(assets.Cloud)
	}
	a.field.Populate(a.cfg.Field.Count, a.cfg.Field.Seed, cloud)
	a.gate.Enable()
	a.logger.Info("assets ready", zap.Int("clouds", a.field.Len()))
}

// Update runs one frame of landing logic. It is installed as the scene update
// callback.
func (a *App) Update() error {
	if a.closed {
		return ebiten.Termination
	}
	a.poll()

	if t, ok := a.clock.(Ticker); ok {
		t.Tick()
	}
	a.ctrl.Update()
	a.gate.Update()
	a.field.Update()
	a.backdrop.Crossfade.SetOffset(a.field.Pointer().Scale(-a.cfg.Parallax))
	a.overlay.Update(skyscroll.FrameDelta())
	return nil
}

func (a *App) poll() {
	if a.assets != nil {
		select {
		case res, ok := <-a.assets:
			a.assets = nil
			switch {
			case !ok:
			case res.Err != nil:
				a.logger.Error("asset load failed", zap.Error(res.Err))
			default:
				a.UseAssets(res.Assets)
			}
		default:
		}
	}
	if a.reload != nil {
		select {
		case cfg, ok := <-a.reload:
			if !ok {
				a.reload = nil
				break
			}
			a.applyTuning(cfg)
			a.logger.Info("tuning reloaded")
		default:
		}
	}
}

// applyTuning takes the motion and timing settings from cfg. Structural
// settings such as the mount and asset paths are fixed at New.
func (a *App) applyTuning(cfg *config.Config) {
	a.cfg.Field = cfg.Field
	a.cfg.Transition = cfg.Transition
	a.cfg.Parallax = cfg.Parallax

	a.field.SetConfig(cfg.Field)
	a.ctrl.SetDuration(cfg.Transition.Duration)
	fn, ok := skyscroll.EaseByName(cfg.Transition.Ease)
	if !ok {
		a.logger.Warn("unknown ease, using linear", zap.String("ease", cfg.Transition.Ease))
	}
	a.ctrl.SetEase(fn)
}

// Resize relayouts the field and overlay for a new viewport. Phase, particle
// state and any running transition are untouched.
func (a *App) Resize(vp skyscroll.Viewport) {
	if a.closed {
		return
	}
	a.field.Resize(vp)
	a.overlay.Resize(vp)
}

// Close tears the landing scene down, leaving the mount itself in place. The next Update returns
// ebiten.Termination. Safe to call more than once.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	if a.cancel != nil {
		a.cancel()
	}
	for _, h := range a.handles {
		h.Remove()
	}
	a.handles = nil
	a.field.Clear()
	if d, ok := a.overlay.(interface{ Dispose() }); ok {
		d.Dispose()
	}
	a.clouds.Dispose()
	a.backdrop.Dispose()
	a.logger.Info("landing closed", zap.Stringer("phase", a.ctrl.Phase()))
}
