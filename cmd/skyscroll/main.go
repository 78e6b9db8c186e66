package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/phanxgames/skyscroll"
	"github.com/phanxgames/skyscroll/config"
	"github.com/phanxgames/skyscroll/landing"
)

var (
	configPath  string
	verbose     bool
	debug       bool
	placeholder bool
	scriptPath  string
	watch       bool
	width       int
	height      int
	showFPS     bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "skyscroll",
	Short: "Scroll-driven sky landing scene",
	Long: `skyscroll opens a window with a crossfading sky, drifting clouds and
text panels. Scroll down (or tap) to advance the narrative, scroll up to return.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runWindow,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&placeholder, "placeholder", false, "use generated images instead of asset files")
	rootCmd.PersistentFlags().StringVar(&scriptPath, "script", "", "JSON input script to replay")

	rootCmd.Flags().BoolVar(&debug, "debug", false, "scene debug mode (frame stats, disposed-node checks)")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "reload tuning when the config file changes")
	rootCmd.Flags().IntVar(&width, "width", 0, "window width (overrides config)")
	rootCmd.Flags().IntVar(&height, "height", 0, "window height (overrides config)")
	rootCmd.Flags().BoolVar(&showFPS, "fps", false, "show the FPS widget")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig returns the file config, or defaults when no file is given.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Info("config loaded", zap.String("path", configPath))
	return cfg, nil
}

// newScene builds a scene with the landing mount under the root.
func newScene(cfg *config.Config) *skyscroll.Scene {
	scene := skyscroll.NewScene()
	scene.SetLogger(logger.Named("scene"))
	scene.ClearColor = skyscroll.Color{R: 0.52, G: 0.71, B: 0.9, A: 1}
	scene.Root().AddChild(skyscroll.NewContainer(cfg.Mount))
	return scene
}

func attachScript(scene *skyscroll.Scene) (*skyscroll.TestRunner, error) {
	if scriptPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	runner, err := skyscroll.LoadTestScript(data)
	if err != nil {
		return nil, err
	}
	scene.SetTestRunner(runner)
	return runner, nil
}

func decoder() landing.Decoder {
	if placeholder {
		return placeholderImage
	}
	return skyscroll.DecodeImageFile
}

// placeholderImage draws a vertical gradient whose tint depends on the path,
// so each background slot looks different.
func placeholderImage(path string) (image.Image, error) {
	var h uint8
	for i := 0; i < len(path); i++ {
		h = h*31 + path[i]
	}
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		c := color.RGBA{R: h, G: uint8(120 + y), B: uint8(255 - y), A: 255}
		for x := 0; x < 64; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img, nil
}

func loadFonts(cfg *config.Config) (heading, body *skyscroll.Font, err error) {
	size := cfg.Overlay.FontSize
	if cfg.Assets.Font == "" {
		if heading, err = skyscroll.DefaultFont(size * 1.6); err != nil {
			return nil, nil, err
		}
		body, err = skyscroll.DefaultFont(size)
		return heading, body, err
	}
	data, err := os.ReadFile(cfg.Assets.Font)
	if err != nil {
		return nil, nil, fmt.Errorf("read font: %w", err)
	}
	if heading, err = skyscroll.LoadFont(data, size*1.6); err != nil {
		return nil, nil, err
	}
	body, err = skyscroll.LoadFont(data, size)
	return heading, body, err
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if width > 0 {
		cfg.Window.Width = width
	}
	if height > 0 {
		cfg.Window.Height = height
	}
	if showFPS {
		cfg.Window.ShowFPS = true
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	scene := newScene(cfg)
	scene.SetDebugMode(debug)
	if _, err := attachScript(scene); err != nil {
		return err
	}

	headingFont, bodyFont, err := loadFonts(cfg)
	if err != nil {
		return err
	}

	opts := landing.Options{
		Config:      cfg,
		Logger:      logger.Named("landing"),
		Clock:       landing.NewWallClock(),
		HeadingFont: headingFont,
		BodyFont:    bodyFont,
		Decode:      decoder(),
	}
	if watch && configPath != "" {
		w, err := config.Watch(ctx, configPath, logger.Named("config"))
		if err != nil {
			return err
		}
		defer w.Close()
		opts.Reload = w.Updates()
	}

	app, err := landing.New(scene, opts)
	if err != nil {
		return err
	}
	defer app.Close()
	app.Load(ctx)

	if cfg.Window.TPS > 0 {
		ebiten.SetTPS(cfg.Window.TPS)
	}
	err = skyscroll.Run(scene, skyscroll.RunConfig{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		ShowFPS:   cfg.Window.ShowFPS,
		Resizable: cfg.Window.Resizable,
	})
	logger.Info("window closed", zap.Stringer("phase", app.Controller().Phase()))
	return err
}
