package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"

	"github.com/user/framelens/pkg/pipeline"
	"github.com/user/framelens/pkg/ports"
)

// Render pass names, also used for debug sink file naming.
const (
	passPreview = "preview"
	passExport  = "export"
)

// loadedPhoto holds everything resolved from the input photo before any
// render pass runs. Both passes consume the same loadedPhoto so that export
// always reflects the confirmed selections.
type loadedPhoto struct {
	img           image.Image
	width, height int
	class         pipeline.SourceAspectClass
	caption       pipeline.CaptionLines
	frameColor    color.Color
	captionColors pipeline.CaptionColors
}

// load reads, decodes, classifies and captions the input photo. Rejected
// photos fail here; the compositor is never invoked for them.
func (o *Orchestrator) load(ctx context.Context, cfg Config) (loadedPhoto, error) {
	var photo loadedPhoto

	data, err := o.fs.ReadFile(cfg.InputPath)
	if err != nil {
		return photo, fmt.Errorf("read input: %w", err)
	}

	img, err := o.renderer.DecodeImage(data, ports.FormatAuto)
	if err != nil {
		o.logger.Error("Failed to decode photo: %s", err)
		return photo, fmt.Errorf("decode photo: %w", err)
	}
	bounds := img.Bounds()
	photo.img = img
	photo.width = bounds.Dx()
	photo.height = bounds.Dy()

	verdict, err := o.classifyStage.Execute(ctx, pipeline.ClassifyInput{
		Width:  photo.width,
		Height: photo.height,
	})
	if err != nil {
		return photo, fmt.Errorf("classify: %w", err)
	}
	if !verdict.Accepted {
		o.logger.Error("Unsupported aspect ratio %dx%d", photo.width, photo.height)
		return photo, fmt.Errorf("%w: %dx%d", ErrUnsupportedAspectRatio, photo.width, photo.height)
	}
	photo.class = verdict.Class
	o.logger.Debug("Classified %dx%d as %s", photo.width, photo.height, verdict.Class)

	photo.caption, err = o.buildCaption(ctx, cfg, data)
	if err != nil {
		return photo, err
	}

	photo.frameColor, err = cfg.Color.FrameColor(img)
	if err != nil {
		return photo, fmt.Errorf("resolve frame color: %w", err)
	}
	photo.captionColors = cfg.Color.CaptionColors(photo.frameColor)

	if o.sink.Enabled() {
		o.sink.SaveThumbnail(img)
	}

	return photo, nil
}

// buildCaption resolves the caption lines, honoring manual overrides and
// the NoCaption switch.
func (o *Orchestrator) buildCaption(ctx context.Context, cfg Config, data []byte) (pipeline.CaptionLines, error) {
	if cfg.NoCaption {
		return pipeline.CaptionLines{}, nil
	}
	if cfg.CaptionLine1 != "" || cfg.CaptionLine2 != "" {
		return pipeline.CaptionLines{Line1: cfg.CaptionLine1, Line2: cfg.CaptionLine2}, nil
	}

	result, err := o.captionStage.Execute(ctx, pipeline.CaptionInput{Data: data})
	if err != nil {
		return pipeline.CaptionLines{}, fmt.Errorf("build caption: %w", err)
	}
	if o.sink.Enabled() {
		if data, err := json.Marshal(result.Lines); err == nil {
			o.sink.SaveMetaJSON(data)
		}
	}
	return result.Lines, nil
}

// renderPass runs the compositor at the pass's resolution and writes the
// output file. Preview and export use the exact same composite input except
// for the canvas dimensions.
func (o *Orchestrator) renderPass(ctx context.Context, cfg Config, photo loadedPhoto, pass string) error {
	canvasWidth, canvasHeight := o.passSize(cfg, pass)

	result, err := o.compositeStage.Execute(ctx, pipeline.CompositeInput{
		CanvasWidth:   canvasWidth,
		CanvasHeight:  canvasHeight,
		FrameRatio:    cfg.FrameRatio,
		Spacing:       cfg.Spacing,
		FrameColor:    photo.frameColor,
		CaptionColors: photo.captionColors,
		Image:         photo.img,
		SourceWidth:   photo.width,
		SourceHeight:  photo.height,
		Caption:       photo.caption,
	})
	if err != nil {
		return fmt.Errorf("composite %s: %w", pass, err)
	}
	if result.Image == nil {
		return fmt.Errorf("%w: %s pass", ErrNoSurface, pass)
	}

	if o.sink.Enabled() {
		if data, err := json.Marshal(result.Geometry); err == nil {
			o.sink.SaveGeometryJSON(pass, data)
		}
		o.sink.SaveRender(pass, result.Image)
	}

	return o.writeOutput(cfg, result.Image, pass)
}

// passSize resolves the canvas dimensions for a render pass. The preview
// canvas is scaled by the device pixel ratio; the geometry fractions stay
// identical either way.
func (o *Orchestrator) passSize(cfg Config, pass string) (int, int) {
	if pass == passPreview {
		dpr := cfg.DevicePixelRatio
		if dpr <= 0 {
			dpr = 1
		}
		return cfg.FrameRatio.CanvasSize(int(float64(cfg.PreviewHeight) * dpr))
	}
	return cfg.FrameRatio.CanvasSize(cfg.ExportLongSide)
}

// writeOutput encodes and writes the pass output: JPEG for export, PNG for
// preview.
func (o *Orchestrator) writeOutput(cfg Config, img image.Image, pass string) error {
	if pass == passPreview {
		data, err := o.renderer.EncodeImage(img, ports.FormatPNG, 0)
		if err != nil {
			return fmt.Errorf("encode preview: %w", err)
		}
		if err := o.fs.WriteFile(cfg.PreviewPath, data); err != nil {
			o.logger.Error("Failed to write output: %s", err)
			return fmt.Errorf("write preview: %w", err)
		}
		o.logger.Info("Preview saved to %s", cfg.PreviewPath)
		return nil
	}

	o.logger.Debug("Encoding JPEG with quality %d", cfg.JPEGQuality)
	data, err := o.renderer.EncodeImage(img, ports.FormatJPEG, cfg.JPEGQuality)
	if err != nil {
		return fmt.Errorf("encode JPEG: %w", err)
	}
	if err := o.fs.WriteFile(cfg.OutputPath, data); err != nil {
		o.logger.Error("Failed to write output: %s", err)
		return fmt.Errorf("write output: %w", err)
	}
	o.logger.Info("Output saved to %s", cfg.OutputPath)
	return nil
}
