// Package framelens provides a high-level API for framing photos.
package framelens

import (
	"github.com/user/framelens/pkg/orchestrator"
	"github.com/user/framelens/pkg/palette"
	"github.com/user/framelens/pkg/pipeline"
)

// ExportPreset names an export size/quality preset.
type ExportPreset string

const (
	// PresetPrint targets print-quality output.
	PresetPrint ExportPreset = "print"
	// PresetSocial targets feed-sized output.
	PresetSocial ExportPreset = "social"
)

// ExportSettings contains export parameters for a preset.
type ExportSettings struct {
	LongSide    int // long-side pixel length of the export canvas
	JPEGQuality int // JPEG quality (0-100)
}

// GetExportSettings returns export settings for the given preset.
func GetExportSettings(preset ExportPreset) ExportSettings {
	switch preset {
	case PresetSocial:
		return ExportSettings{
			LongSide:    1080,
			JPEGQuality: 88,
		}
	default: // print
		return ExportSettings{
			LongSide:    2400,
			JPEGQuality: 92,
		}
	}
}

// Config represents the configuration for framelens rendering.
type Config struct {
	// Frame
	FrameRatio pipeline.FrameRatio
	Spacing    pipeline.SpacingTier
	Color      palette.Selection

	// Caption
	CaptionLine1 string
	CaptionLine2 string
	NoCaption    bool

	// Rendering
	ExportLongSide   int
	PreviewHeight    int
	DevicePixelRatio float64
	JPEGQuality      int
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with print preset defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: printDefaults(),
	}
}

// NewSocialConfigBuilder creates a new ConfigBuilder with social preset defaults.
func NewSocialConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: socialDefaults(),
	}
}

func printDefaults() Config {
	settings := GetExportSettings(PresetPrint)
	return Config{
		FrameRatio: pipeline.RatioPortrait,
		Spacing:    pipeline.SpacingM,
		Color:      palette.Default(),

		ExportLongSide:   settings.LongSide,
		PreviewHeight:    672,
		DevicePixelRatio: 2.0,
		JPEGQuality:      settings.JPEGQuality,
	}
}

func socialDefaults() Config {
	settings := GetExportSettings(PresetSocial)
	cfg := printDefaults()
	cfg.ExportLongSide = settings.LongSide
	cfg.JPEGQuality = settings.JPEGQuality
	return cfg
}

// Build returns the final Config, applying validation and constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	// Preview must stay meaningfully smaller than export.
	if cfg.PreviewHeight < 240 {
		cfg.PreviewHeight = 240
	}
	if cfg.ExportLongSide < cfg.PreviewHeight {
		cfg.ExportLongSide = cfg.PreviewHeight
	}

	return cfg
}

// WithFrameRatio sets the frame ratio.
func (b *ConfigBuilder) WithFrameRatio(ratio pipeline.FrameRatio) *ConfigBuilder {
	b.config.FrameRatio = ratio
	return b
}

// WithSpacing sets the spacing tier.
func (b *ConfigBuilder) WithSpacing(tier pipeline.SpacingTier) *ConfigBuilder {
	b.config.Spacing = tier
	return b
}

// WithColor sets the frame color selection.
func (b *ConfigBuilder) WithColor(sel palette.Selection) *ConfigBuilder {
	b.config.Color = sel
	return b
}

// WithCaption sets manual caption lines, replacing the EXIF-derived ones.
func (b *ConfigBuilder) WithCaption(line1, line2 string) *ConfigBuilder {
	b.config.CaptionLine1 = line1
	b.config.CaptionLine2 = line2
	return b
}

// WithoutCaption suppresses the caption block.
func (b *ConfigBuilder) WithoutCaption() *ConfigBuilder {
	b.config.NoCaption = true
	return b
}

// WithExportLongSide sets the export canvas long side in pixels.
func (b *ConfigBuilder) WithExportLongSide(px int) *ConfigBuilder {
	b.config.ExportLongSide = px
	return b
}

// WithPreviewHeight sets the preview canvas height in CSS pixels.
func (b *ConfigBuilder) WithPreviewHeight(px int) *ConfigBuilder {
	b.config.PreviewHeight = px
	return b
}

// WithDevicePixelRatio sets the preview device pixel ratio.
func (b *ConfigBuilder) WithDevicePixelRatio(dpr float64) *ConfigBuilder {
	b.config.DevicePixelRatio = dpr
	return b
}

// WithJPEGQuality sets the export JPEG quality (0-100).
func (b *ConfigBuilder) WithJPEGQuality(quality int) *ConfigBuilder {
	b.config.JPEGQuality = quality
	return b
}

// WithExportPreset applies an export preset (print, social).
func (b *ConfigBuilder) WithExportPreset(preset ExportPreset) *ConfigBuilder {
	settings := GetExportSettings(preset)
	b.config.ExportLongSide = settings.LongSide
	b.config.JPEGQuality = settings.JPEGQuality
	return b
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig(inputPath, outputPath string) orchestrator.Config {
	return orchestrator.Config{
		InputPath:  inputPath,
		OutputPath: outputPath,

		FrameRatio: c.FrameRatio,
		Spacing:    c.Spacing,
		Color:      c.Color,

		CaptionLine1: c.CaptionLine1,
		CaptionLine2: c.CaptionLine2,
		NoCaption:    c.NoCaption,

		ExportLongSide:   c.ExportLongSide,
		PreviewHeight:    c.PreviewHeight,
		DevicePixelRatio: c.DevicePixelRatio,
		JPEGQuality:      c.JPEGQuality,
	}
}
