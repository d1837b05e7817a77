package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sarchlab/qrouter/config"
	"github.com/sarchlab/qrouter/maze"
)

const sampleYAML = `
cost:
  seg: 1
  via: 12
  jog: 3
  xover: 60
  block: 120
  conflict: 250
max_passes: 5
max_stack: 0
vdd: POWER
gnd: EARTH
ignore: ["test_se", "scan_clk"]
priority: ["clk"]
mask_mode: auto
mask_margin: 2
obstructions:
  - {x1: 0, y1: 0, x2: 5, y2: 5, layer: 0}
`

func TestLoadAppliesYAMLOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qrouter.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := config.Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got, want := cfg.Cost.Resolve(), (maze.CostParams{Seg: 1, Via: 12, Jog: 3, Xover: 60, Block: 120, Conflict: 250}); got != want {
		t.Fatalf("cost = %+v, want %+v", got, want)
	}
	if cfg.MaxPasses != 5 {
		t.Fatalf("max_passes = %d, want 5", cfg.MaxPasses)
	}
	if cfg.VDD != "POWER" || cfg.GND != "EARTH" {
		t.Fatalf("vdd/gnd = %s/%s, want POWER/EARTH", cfg.VDD, cfg.GND)
	}
	if !cfg.IsIgnored("test_se") || cfg.IsIgnored("clk") {
		t.Fatalf("ignore list not applied correctly: %+v", cfg.Ignore)
	}
	if !cfg.IsPriority("clk") {
		t.Fatalf("priority list not applied correctly: %+v", cfg.Priority)
	}
	if len(cfg.Obstructions) != 1 || cfg.Obstructions[0].X2 != 5 {
		t.Fatalf("obstructions not parsed: %+v", cfg.Obstructions)
	}
}

// max_stack: 0 must be coerced to 1, per compatibility
// open question.
func TestLoadCoercesZeroMaxStack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qrouter.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := config.Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MaxStack != 1 {
		t.Fatalf("max_stack = %d, want coerced 1", cfg.MaxStack)
	}
}

func TestDefaultMaskMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := config.Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	m, err := cfg.Mask()
	if err != nil {
		t.Fatalf("Mask: %v", err)
	}
	if m.Mode != maze.BBox {
		t.Fatalf("default mask mode = %v, want BBox", m.Mode)
	}
}
