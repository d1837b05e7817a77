// Package config loads a routing session's configuration from YAML: cost
// weights, pass limits, via-stack policy, rail net names, ignore/priority
// lists, mask mode, and user obstructions.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/qrouter/maze"
)

// ViaPattern selects the parity used to alternate orientations of a
// non-square via footprint.
type ViaPattern string

const (
	Normal ViaPattern = "normal"
	Invert ViaPattern = "invert"
)

// Rect is a user obstruction rectangle in microns, tagged to one layer;
// the router paints every cell it covers on that layer as obstructed.
type Rect struct {
	X1    float64 `yaml:"x1"`
	Y1    float64 `yaml:"y1"`
	X2    float64 `yaml:"x2"`
	Y2    float64 `yaml:"y2"`
	Layer int     `yaml:"layer"`
}

// Cost mirrors maze.CostParams with YAML tags; Resolve converts it.
type Cost struct {
	Seg      int `yaml:"seg"`
	Via      int `yaml:"via"`
	Jog      int `yaml:"jog"`
	Xover    int `yaml:"xover"`
	Block    int `yaml:"block"`
	Conflict int `yaml:"conflict"`
}

func (c Cost) Resolve() maze.CostParams {
	return maze.CostParams{
		Seg:      c.Seg,
		Via:      c.Via,
		Jog:      c.Jog,
		Xover:    c.Xover,
		Block:    c.Block,
		Conflict: c.Conflict,
	}
}

// Config is the top-level YAML document.
type Config struct {
	Cost      Cost   `yaml:"cost"`
	MaxPasses int    `yaml:"max_passes"`
	MaxStack  int    `yaml:"max_stack"`
	ViaPattern ViaPattern `yaml:"via_pattern"`

	VDD string `yaml:"vdd"`
	GND string `yaml:"gnd"`

	Ignore   []string `yaml:"ignore"`
	Priority []string `yaml:"priority"`

	MaskMode   string `yaml:"mask_mode"`   // "none", "bbox", "auto", "fixed"
	MaskMargin int    `yaml:"mask_margin"` // base margin for auto/fixed

	Obstructions []Rect `yaml:"obstructions"`
}

// Default returns the cost table and limits used before any YAML
// document overrides them.
func Default() *Config {
	return &Config{
		Cost:       Cost{Seg: 1, Via: 10, Jog: 2, Xover: 50, Block: 100, Conflict: 200},
		MaxPasses:  10,
		MaxStack:   4,
		ViaPattern: Normal,
		VDD:        "VDD",
		GND:        "GND",
		MaskMode:   "bbox",
	}
}

// Load reads a YAML configuration document from path, applying it on top
// of Default and validating it.
func Load(path string, log *slog.Logger) (*Config, error) {
	if log == nil {
		log = slog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.validate(log)
	return cfg, nil
}

// validate applies the documented compatibility coercions and fills in
// defaults for fields left empty. It rejects nothing; an unknown mask_mode
// is reported later, by Mask.
func (c *Config) validate(log *slog.Logger) {
	if c.MaxStack == 0 {
		log.Warn("configured max_stack is 0, coercing to 1 for compatibility")
		c.MaxStack = 1
	}
	if c.ViaPattern == "" {
		c.ViaPattern = Normal
	}
	if c.MaskMode == "" {
		c.MaskMode = "bbox"
	}
}

// Mask builds the maze.Mask the scheduler uses from the configured mode
// and margin.
func (c *Config) Mask() (maze.Mask, error) {
	switch c.MaskMode {
	case "none":
		return maze.Mask{Mode: maze.None}, nil
	case "bbox":
		return maze.Mask{Mode: maze.BBox}, nil
	case "auto":
		return maze.Mask{Mode: maze.Auto, Margin: c.MaskMargin}, nil
	case "fixed":
		return maze.Mask{Mode: maze.Fixed, Margin: c.MaskMargin}, nil
	default:
		return maze.Mask{}, fmt.Errorf("config: unknown mask_mode %q", c.MaskMode)
	}
}

// IsIgnored reports whether netName is on the configured ignore list.
func (c *Config) IsIgnored(netName string) bool {
	for _, n := range c.Ignore {
		if n == netName {
			return true
		}
	}
	return false
}

// IsPriority reports whether netName is on the configured priority
// (critical) list.
func (c *Config) IsPriority(netName string) bool {
	for _, n := range c.Priority {
		if n == netName {
			return true
		}
	}
	return false
}
