package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/skyscroll"
)

const (
	DefaultMount             = "landing"
	DefaultWidth             = 1280
	DefaultHeight            = 720
	DefaultCrossfadeDuration = 2 * time.Second
	DefaultPanelDuration     = 1500 * time.Millisecond
	DefaultCloudCount        = 48
	DefaultSeed              = 7
	MinBackgrounds           = 3
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Mount      string           `yaml:"mount"`
	Window     WindowConfig     `yaml:"window"`
	Assets     AssetsConfig     `yaml:"assets"`
	Transition TransitionConfig `yaml:"transition"`
	Field      FieldConfig      `yaml:"field"`
	Overlay    OverlayConfig    `yaml:"overlay"`
	// Parallax scales the smoothed pointer offset applied to the backdrop.
	Parallax float64 `yaml:"parallax"`
}

type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
	ShowFPS   bool   `yaml:"show_fps"`
	TPS       int    `yaml:"tps"`
}

type AssetsConfig struct {
	Backgrounds []string `yaml:"backgrounds"`
	Cloud       string   `yaml:"cloud"`
	Font        string   `yaml:"font"`
}

type TransitionConfig struct {
	Duration time.Duration `yaml:"duration"`
	Ease     string        `yaml:"ease"`
}

// FieldConfig tunes the cloud particle motion. Rates and factors are per frame.
type FieldConfig struct {
	Count             int     `yaml:"count"`
	Seed              uint64  `yaml:"seed"`
	BaseScale         float64 `yaml:"base_scale"`
	DriftSpeed        float64 `yaml:"drift_speed"`
	WrapMargin        float64 `yaml:"wrap_margin"`
	RepelRadius       float64 `yaml:"repel_radius"`
	RepelStrength     float64 `yaml:"repel_strength"`
	RecoveryRate      float64 `yaml:"recovery_rate"`
	RecoveryTolerance float64 `yaml:"recovery_tolerance"`
	ExitRate          float64 `yaml:"exit_rate"`
	ExitMargin        float64 `yaml:"exit_margin"`
	ShrinkFactor      float64 `yaml:"shrink_factor"`
	FadeFactor        float64 `yaml:"fade_factor"`
	PointerSmoothing  float64 `yaml:"pointer_smoothing"`
}

type OverlayConfig struct {
	Heading       string        `yaml:"heading"`
	Body          string        `yaml:"body"`
	Indicator     string        `yaml:"indicator"`
	FontSize      float64       `yaml:"font_size"`
	SlideDuration time.Duration `yaml:"slide_duration"`
	FadeDuration  time.Duration `yaml:"fade_duration"`
	Ease          string        `yaml:"ease"`
}

func Default() *Config {
	return &Config{
		Mount: DefaultMount,
		Window: WindowConfig{
			Title:     "Skyscroll",
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			Resizable: true,
			TPS:       60,
		},
		Assets: AssetsConfig{
			Backgrounds: []string{
				"assets/sky-dawn.png",
				"assets/sky-noon.png",
				"assets/sky-dusk.png",
			},
			Cloud: "assets/cloud.png",
		},
		Transition: TransitionConfig{
			Duration: DefaultCrossfadeDuration,
			Ease:     "in-out-quad",
		},
		Field: FieldConfig{
			Count:             DefaultCloudCount,
			Seed:              DefaultSeed,
			BaseScale:         1,
			DriftSpeed:        0.25,
			WrapMargin:        120,
			RepelRadius:       140,
			RepelStrength:     0.08,
			RecoveryRate:      0.05,
			RecoveryTolerance: 0.5,
			ExitRate:          0.04,
			ExitMargin:        200,
			ShrinkFactor:      0.985,
			FadeFactor:        0.97,
			PointerSmoothing:  0.08,
		},
		Overlay: OverlayConfig{
			Heading:       "Above the clouds",
			Body:          "Scroll on to watch the sky turn from dawn to dusk. Scroll back to return.",
			Indicator:     "scroll",
			FontSize:      32,
			SlideDuration: DefaultPanelDuration,
			FadeDuration:  DefaultPanelDuration,
			Ease:          "in-out-cubic",
		},
		Parallax: 0.04,
	}
}

// Load reads a YAML file and merges it onto Default, then validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports the first invalid setting, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	if c.Mount == "" {
		return fmt.Errorf("%w: mount is empty", ErrInvalid)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS < 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalid, c.Window.TPS)
	}
	if n := len(c.Assets.Backgrounds); n < MinBackgrounds {
		return fmt.Errorf("%w: need %d backgrounds, have %d", ErrInvalid, MinBackgrounds, n)
	}
	if c.Transition.Duration <= 0 {
		return fmt.Errorf("%w: transition duration %s", ErrInvalid, c.Transition.Duration)
	}
	if c.Overlay.SlideDuration <= 0 || c.Overlay.FadeDuration <= 0 {
		return fmt.Errorf("%w: overlay durations must be positive", ErrInvalid)
	}
	for _, name := range []string{c.Transition.Ease, c.Overlay.Ease} {
		if _, ok := skyscroll.EaseByName(name); !ok {
			return fmt.Errorf("%w: unknown ease %q", ErrInvalid, name)
		}
	}

	f := c.Field
	if f.Count < 0 {
		return fmt.Errorf("%w: field count %d", ErrInvalid, f.Count)
	}
	if f.RepelRadius < 0 || f.RecoveryTolerance <= 0 || f.BaseScale <= 0 {
		return fmt.Errorf("%w: field radius, tolerance and scale", ErrInvalid)
	}
	factors := []struct {
		name string
		v    float64
	}{
		{"recovery_rate", f.RecoveryRate},
		{"exit_rate", f.ExitRate},
		{"shrink_factor", f.ShrinkFactor},
		{"fade_factor", f.FadeFactor},
		{"pointer_smoothing", f.PointerSmoothing},
	}
	for _, fc := range factors {
		if fc.v <= 0 || fc.v >= 1 {
			return fmt.Errorf("%w: %s %g outside (0,1)", ErrInvalid, fc.name, fc.v)
		}
	}
	return nil
}
