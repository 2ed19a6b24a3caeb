// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/framelens/pkg/palette"
	"github.com/user/framelens/pkg/pipeline"
	"github.com/user/framelens/pkg/ports"
)

// ErrUnsupportedAspectRatio is returned when the photo's aspect ratio falls
// outside every acceptance band. Nothing is rendered for rejected photos.
var ErrUnsupportedAspectRatio = errors.New("unsupported aspect ratio")

// ErrNoSurface is returned when the renderer cannot provide a drawing
// surface for a render pass.
var ErrNoSurface = errors.New("no drawing surface")

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input
	InputPath  string
	OutputPath string
	// PreviewPath receives the preview PNG; empty disables the preview pass.
	PreviewPath string

	// Frame
	FrameRatio pipeline.FrameRatio
	Spacing    pipeline.SpacingTier
	Color      palette.Selection

	// Caption overrides. When set they replace the EXIF-derived lines.
	CaptionLine1 string
	CaptionLine2 string
	// NoCaption suppresses the caption block entirely.
	NoCaption bool

	// Rendering
	ExportLongSide   int
	PreviewHeight    int
	DevicePixelRatio float64
	JPEGQuality      int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		FrameRatio: pipeline.RatioPortrait,
		Spacing:    pipeline.SpacingM,
		Color:      palette.Default(),

		ExportLongSide:   2400,
		PreviewHeight:    672,
		DevicePixelRatio: 2.0,
		JPEGQuality:      92,
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	classifyStage  pipeline.Stage[pipeline.ClassifyInput, pipeline.ClassifyResult]
	captionStage   pipeline.Stage[pipeline.CaptionInput, pipeline.CaptionResult]
	compositeStage pipeline.Stage[pipeline.CompositeInput, pipeline.CompositeResult]
	renderer       ports.Renderer
	fs             ports.FileSystem
	sink           ports.DebugSink
	logger         ports.Logger
}

// New creates a new Orchestrator.
func New(
	classifyStage pipeline.Stage[pipeline.ClassifyInput, pipeline.ClassifyResult],
	captionStage pipeline.Stage[pipeline.CaptionInput, pipeline.CaptionResult],
	compositeStage pipeline.Stage[pipeline.CompositeInput, pipeline.CompositeResult],
	renderer ports.Renderer,
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		classifyStage:  classifyStage,
		captionStage:   captionStage,
		compositeStage: compositeStage,
		renderer:       renderer,
		fs:             fs,
		sink:           sink,
		logger:         logger,
	}
}

// Run executes the full pipeline: load, classify, caption, then render the
// preview (when configured) and the export, writing each output file.
func (o *Orchestrator) Run(ctx context.Context, cfg Config) error {
	o.logger.Info("Framing %s...", cfg.InputPath)

	photo, err := o.load(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.PreviewPath != "" {
		if err := o.renderPass(ctx, cfg, photo, passPreview); err != nil {
			return err
		}
	}

	start := time.Now()
	if err := o.renderPass(ctx, cfg, photo, passExport); err != nil {
		return err
	}
	o.logger.Debug("Export completed in %d ms", time.Since(start).Milliseconds())

	o.logger.Info("Pipeline completed successfully")
	return nil
}

// Preview runs only the preview pass. Preview and export are independent
// invocations; either may run without the other.
func (o *Orchestrator) Preview(ctx context.Context, cfg Config) error {
	photo, err := o.load(ctx, cfg)
	if err != nil {
		return err
	}
	return o.renderPass(ctx, cfg, photo, passPreview)
}

// InspectResult describes a photo without rendering it.
type InspectResult struct {
	Width    int                        `json:"width"`
	Height   int                        `json:"height"`
	Class    pipeline.SourceAspectClass `json:"class"`
	Accepted bool                       `json:"accepted"`
	Caption  pipeline.CaptionLines      `json:"caption"`
}

// Inspect classifies the photo and builds its caption without rendering.
// Unsupported photos are reported, not rejected.
func (o *Orchestrator) Inspect(ctx context.Context, inputPath string) (InspectResult, error) {
	data, err := o.fs.ReadFile(inputPath)
	if err != nil {
		return InspectResult{}, fmt.Errorf("read input: %w", err)
	}

	img, err := o.renderer.DecodeImage(data, ports.FormatAuto)
	if err != nil {
		return InspectResult{}, fmt.Errorf("decode photo: %w", err)
	}
	bounds := img.Bounds()

	verdict, err := o.classifyStage.Execute(ctx, pipeline.ClassifyInput{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	})
	if err != nil {
		return InspectResult{}, fmt.Errorf("classify: %w", err)
	}

	captionResult, err := o.captionStage.Execute(ctx, pipeline.CaptionInput{Data: data})
	if err != nil {
		return InspectResult{}, fmt.Errorf("build caption: %w", err)
	}

	return InspectResult{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Class:    verdict.Class,
		Accepted: verdict.Accepted,
		Caption:  captionResult.Lines,
	}, nil
}
