package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/phanxgames/skyscroll/config"
	"github.com/phanxgames/skyscroll/landing"
)

func setupSimulate(t *testing.T, script string) {
	t.Helper()
	logger = zap.NewNop()
	placeholder = true
	realtime = false
	maxFrames = 2000
	simWidth, simHeight = 640, 480

	scriptPath = filepath.Join(t.TempDir(), "script.json")
	if err := os.WriteFile(scriptPath, []byte(script), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	t.Cleanup(func() {
		placeholder = false
		scriptPath = ""
	})
}

func TestSimulateWheelOnFirstFrame(t *testing.T) {
	// The wheel is injected on frame one; assets must already be in place.
	setupSimulate(t, `{"steps": [{"action": "wheel", "dy": 1}]}`)

	res, err := simulate(context.Background(), config.Default())
	if err != nil {
		t.Fatalf("simulate returned error: %v", err)
	}
	if res.phase != landing.PhaseSettled {
		t.Fatalf("expected phase settled, got %s after %d frames", res.phase, res.frames)
	}
	if res.gate != landing.GateBackwardReady {
		t.Fatalf("expected gate backward-ready, got %s", res.gate)
	}
	if res.base != 2 {
		t.Fatalf("expected base texture 2, got %d", res.base)
	}
}

func TestSimulateRoundTrip(t *testing.T) {
	setupSimulate(t, `{"steps": [
		{"action": "wheel", "dy": 1},
		{"action": "wait", "frames": 260},
		{"action": "wheel", "dy": -1}
	]}`)

	res, err := simulate(context.Background(), config.Default())
	if err != nil {
		t.Fatalf("simulate returned error: %v", err)
	}
	if res.phase != landing.PhaseIdle || res.base != 0 {
		t.Fatalf("expected idle on texture 0, got %s on %d", res.phase, res.base)
	}
	if res.frames >= maxFrames {
		t.Fatalf("run hit the frame limit")
	}
}

func TestSimulateAssetFailure(t *testing.T) {
	setupSimulate(t, `{"steps": [{"action": "wheel", "dy": 1}]}`)
	placeholder = false

	cfg := config.Default()
	dir := t.TempDir()
	cfg.Assets.Backgrounds = []string{
		filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png"), filepath.Join(dir, "c.png"),
	}
	cfg.Assets.Cloud = filepath.Join(dir, "cloud.png")

	_, err := simulate(context.Background(), cfg)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected a missing-file error, got %v", err)
	}
}
