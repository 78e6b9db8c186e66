package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phanxgames/skyscroll"
	"github.com/phanxgames/skyscroll/config"
	"github.com/phanxgames/skyscroll/landing"
)

var (
	maxFrames int
	realtime  bool
	simWidth  int
	simHeight int
	outPath   string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the landing narrative headlessly from an input script",
	Long: `simulate drives the landing scene without a window. Input comes from
--script (wheel, touch, move, resize and wait steps) and every phase change is
logged with its frame number. The run ends when the script is done and no
sequence is in flight, or after --max-frames.`,
	RunE: runSimulate,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write the default configuration to a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if outPath == "" {
			return fmt.Errorf("--out is required")
		}
		if err := config.Save(outPath, config.Default()); err != nil {
			return err
		}
		logger.Info("default config written", zap.String("path", outPath))
		return nil
	},
}

func init() {
	simulateCmd.Flags().IntVar(&maxFrames, "max-frames", 3600, "stop after this many frames")
	simulateCmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames at the configured tick rate")
	simulateCmd.Flags().IntVar(&simWidth, "width", 1280, "viewport width")
	simulateCmd.Flags().IntVar(&simHeight, "height", 720, "viewport height")

	configCmd.Flags().StringVarP(&outPath, "out", "o", "", "output path")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, err := simulate(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("simulation finished",
		zap.Int("frames", res.frames),
		zap.Stringer("phase", res.phase),
		zap.Stringer("gate", res.gate),
		zap.Int("base_texture", res.base),
	)
	return nil
}

// simResult is the state a headless run ended in.
type simResult struct {
	frames int
	phase  landing.Phase
	gate   landing.GateState
	base   int
}

func simulate(ctx context.Context, cfg *config.Config) (simResult, error) {
	scene := newScene(cfg)
	scene.SetHeadless(true)
	scene.Resize(simWidth, simHeight)
	runner, err := attachScript(scene)
	if err != nil {
		return simResult{}, err
	}

	clock := landing.NewFrameClock(cfg.Window.TPS)
	app, err := landing.New(scene, landing.Options{
		Config: cfg,
		Logger: logger.Named("landing"),
		Clock:  clock,
		Decode: decoder(),
	})
	if err != nil {
		return simResult{}, err
	}
	defer app.Close()

	app.Controller().OnPhaseChange(func(p landing.Phase) {
		logger.Info("phase", zap.Stringer("phase", p), zap.Int64("frame", clock.Frames()),
			zap.Duration("t", clock.Now()))
	})

	// Load on this goroutine so scripted input never reaches a disabled gate.
	assets, err := landing.LoadAssets(ctx, cfg.Assets, decoder())
	if err != nil {
		return simResult{}, fmt.Errorf("load assets: %w", err)
	}
	app.UseAssets(assets)

	interval := time.Duration(0)
	if realtime {
		interval = time.Second / time.Duration(max(cfg.Window.TPS, 1))
	}

	frames := 0
	loop := skyscroll.StartLoop(ctx, interval, func() error {
		if err := scene.Update(); err != nil {
			return err
		}
		frames++
		if frames >= maxFrames {
			logger.Warn("frame limit reached", zap.Int("frames", frames))
			return ebiten.Termination
		}
		if runner != nil && runner.Done() && !app.Gate().Transitioning() {
			return ebiten.Termination
		}
		return nil
	})

	select {
	case <-loop.Done():
	case <-ctx.Done():
	}
	if err := loop.Stop(); err != nil {
		return simResult{}, fmt.Errorf("simulate: %w", err)
	}

	return simResult{
		frames: frames,
		phase:  app.Controller().Phase(),
		gate:   app.Gate().State(),
		base:   app.Backdrop().Base(),
	}, nil
}
