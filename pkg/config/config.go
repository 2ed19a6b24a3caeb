// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/framelens/pkg/orchestrator"
	"github.com/user/framelens/pkg/palette"
	"github.com/user/framelens/pkg/pipeline"
	"github.com/user/framelens/pkg/stages/layout"
)

// Config represents the full configuration for framelens.
type Config struct {
	// Input/Output
	InputPath   string `yaml:"input"`
	OutputPath  string `yaml:"output"`
	PreviewPath string `yaml:"preview"`

	// Frame
	FrameRatio string `yaml:"frame_ratio"`
	Spacing    string `yaml:"spacing"`
	Color      string `yaml:"color"`
	Pattern    int    `yaml:"pattern"`

	// Caption
	Caption CaptionConfig `yaml:"caption"`

	// Caption offset table overrides, keyed "<table>.<ratio>.<tier>" with
	// canvas-height-fraction values (e.g. "5:7.5:7.M": -0.018).
	CaptionOffsets map[string]float64 `yaml:"caption_offsets"`

	// Rendering
	ExportLongSide   int     `yaml:"export_long_side"`
	PreviewHeight    int     `yaml:"preview_height"`
	DevicePixelRatio float64 `yaml:"device_pixel_ratio"`
	JPEGQuality      int     `yaml:"jpeg_quality"`

	// Fonts
	FontRegular string `yaml:"font_regular"`
	FontBold    string `yaml:"font_bold"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// CaptionConfig holds manual caption overrides.
type CaptionConfig struct {
	Line1    string `yaml:"line1"`
	Line2    string `yaml:"line2"`
	Disabled bool   `yaml:"disabled"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		FrameRatio: string(pipeline.RatioPortrait),
		Spacing:    string(pipeline.SpacingM),
		Color:      string(palette.ColorWhite),
		Pattern:    1,

		ExportLongSide:   2400,
		PreviewHeight:    672,
		DevicePixelRatio: 2.0,
		JPEGQuality:      92,

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ParseColor parses a hex color string to color.Color.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return color.Black
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) != 6 {
		return color.Black
	}

	var r, g, b uint8
	for i, c := range []byte{hex[0], hex[1]} {
		v := hexValue(c)
		if i == 0 {
			r = v << 4
		} else {
			r |= v
		}
	}
	for i, c := range []byte{hex[2], hex[3]} {
		v := hexValue(c)
		if i == 0 {
			g = v << 4
		} else {
			g |= v
		}
	}
	for i, c := range []byte{hex[4], hex[5]} {
		v := hexValue(c)
		if i == 0 {
			b = v << 4
		} else {
			b |= v
		}
	}

	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// ColorSelection resolves the configured color into a palette selection.
func (c Config) ColorSelection() (palette.Selection, error) {
	base, err := palette.ParseBaseColor(c.Color)
	if err != nil {
		return palette.Selection{}, err
	}

	sel := palette.Selection{Base: base, Pattern: 1}
	if c.Pattern == 2 {
		sel.Pattern = 2
	}
	if base == palette.ColorCustom {
		sel.Custom = ParseColor(c.Color)
	}
	return sel, nil
}

// OffsetTables builds the caption offset tables with any configured
// overrides applied.
func (c Config) OffsetTables() (*layout.Tables, error) {
	tables := layout.DefaultTables()
	for key, fraction := range c.CaptionOffsets {
		if err := tables.Override(key, fraction); err != nil {
			return nil, fmt.Errorf("apply caption offset override: %w", err)
		}
	}
	return tables, nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() (orchestrator.Config, error) {
	ratio, err := pipeline.ParseFrameRatio(c.FrameRatio)
	if err != nil {
		return orchestrator.Config{}, err
	}
	tier, err := pipeline.ParseSpacingTier(c.Spacing)
	if err != nil {
		return orchestrator.Config{}, err
	}
	sel, err := c.ColorSelection()
	if err != nil {
		return orchestrator.Config{}, err
	}

	return orchestrator.Config{
		InputPath:   c.InputPath,
		OutputPath:  c.OutputPath,
		PreviewPath: c.PreviewPath,

		FrameRatio: ratio,
		Spacing:    tier,
		Color:      sel,

		CaptionLine1: c.Caption.Line1,
		CaptionLine2: c.Caption.Line2,
		NoCaption:    c.Caption.Disabled,

		ExportLongSide:   c.ExportLongSide,
		PreviewHeight:    c.PreviewHeight,
		DevicePixelRatio: c.DevicePixelRatio,
		JPEGQuality:      c.JPEGQuality,
	}, nil
}
