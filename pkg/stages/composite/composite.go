// Package composite implements the frame composition stage: background,
// contain-fit photo and caption block drawn onto a canvas. Preview and
// export both run through Render, parameterized only by the canvas size.
package composite

import (
	"context"
	"image/color"
	"math"

	"github.com/user/framelens/pkg/pipeline"
	"github.com/user/framelens/pkg/ports"
	"github.com/user/framelens/pkg/stages/caption"
	"github.com/user/framelens/pkg/stages/layout"
)

// Caption typography as canvas-height fractions, so text scales with the
// render resolution the same way the geometry does.
const (
	line1SizeFraction = 0.024
	line2SizeFraction = 0.018
	lineGapFraction   = 0.012
	trackingFactor    = 0.12

	// line2Alpha is the reduced alpha of the second caption line, except
	// under the opaque accent-color patterns.
	line2Alpha = 0.7
)

// Stage composes the final frame.
type Stage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
	tables   *layout.Tables
}

// NewStage creates a new composite stage with the default caption offset
// tables.
func NewStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return NewStageWithTables(renderer, sink, logger, nil)
}

// NewStageWithTables creates a composite stage with overridden offset
// tables.
func NewStageWithTables(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger, tables *layout.Tables) *Stage {
	if tables == nil {
		tables = layout.DefaultTables()
	}
	return &Stage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("composite"),
		tables:   tables,
	}
}

// Execute renders one frame. A renderer that cannot provide a drawing
// surface makes the render a no-op: the result carries the geometry but a
// nil image, and the caller owns the retry policy.
func (s *Stage) Execute(ctx context.Context, input pipeline.CompositeInput) (pipeline.CompositeResult, error) {
	s.logger.Debug("Rendering %dx%d canvas (%s, spacing %s)",
		input.CanvasWidth, input.CanvasHeight, input.FrameRatio, input.Spacing)

	canvas := s.renderer.CreateCanvas(input.CanvasWidth, input.CanvasHeight, input.FrameColor)

	// Pre-resize the photo to its draw rectangle so the draw is a plain
	// blit; the resampler gives better downscale quality than the canvas
	// transform.
	if input.Image != nil {
		geom := layout.ComputeGeometry(
			input.CanvasWidth, input.CanvasHeight,
			input.FrameRatio, input.Spacing,
			input.SourceWidth, input.SourceHeight,
		)
		input.Image = s.renderer.ResizeImage(input.Image, geom.Image.Width, geom.Image.Height)
	}

	geom := Render(canvas, input, s.tables)

	result := pipeline.CompositeResult{Geometry: geom}
	if canvas == nil {
		s.logger.Warn("No drawing surface available, skipping render")
		return result, nil
	}

	result.Image = canvas.ToImage()
	s.logger.Debug("Render completed: %dx%d", input.CanvasWidth, input.CanvasHeight)
	return result, nil
}

// Render draws the full frame onto canvas and returns the geometry it used.
// A nil canvas is a no-op; the geometry is still computed and returned.
func Render(canvas ports.Canvas, in pipeline.CompositeInput, tables *layout.Tables) pipeline.Geometry {
	if tables == nil {
		tables = layout.DefaultTables()
	}

	geom := layout.ComputeGeometry(
		in.CanvasWidth, in.CanvasHeight,
		in.FrameRatio, in.Spacing,
		in.SourceWidth, in.SourceHeight,
	)

	if canvas == nil {
		return geom
	}

	canvas.DrawRect(0, 0, in.CanvasWidth, in.CanvasHeight, in.FrameColor)

	if in.Image == nil {
		drawPlaceholder(canvas, geom, in.FrameColor)
		return geom
	}

	bounds := in.Image.Bounds()
	if bounds.Dx() == geom.Image.Width && bounds.Dy() == geom.Image.Height {
		canvas.DrawImage(in.Image, geom.Image.X, geom.Image.Y)
	} else {
		canvas.DrawImageScaled(in.Image, geom.Image.X, geom.Image.Y, geom.Image.Width, geom.Image.Height)
	}

	if !in.Caption.Empty() {
		drawCaption(canvas, in, geom, tables)
	}

	return geom
}

// drawPlaceholder fills the padded interior with a diagonal crosshatch.
// Purely cosmetic; shown before a photo is loaded.
func drawPlaceholder(canvas ports.Canvas, geom pipeline.Geometry, frame color.Color) {
	left := geom.Padding.Left
	top := geom.Padding.Top
	right := geom.CanvasWidth - geom.Padding.Right
	bottom := geom.CanvasHeight - geom.Padding.Bottom

	short := right - left
	if bottom-top < short {
		short = bottom - top
	}
	step := short / 12
	if step < 8 {
		step = 8
	}

	hatch := hatchColor(frame)
	width := bottom - top + right - left
	for offset := -width; offset < width; offset += step {
		canvas.DrawLine(left+offset, top, left+offset+(bottom-top), bottom, hatch, 1)
		canvas.DrawLine(right-offset, top, right-offset-(bottom-top), bottom, hatch, 1)
	}
	canvas.DrawLine(left, top, right, top, hatch, 1)
	canvas.DrawLine(left, bottom, right, bottom, hatch, 1)
	canvas.DrawLine(left, top, left, bottom, hatch, 1)
	canvas.DrawLine(right, top, right, bottom, hatch, 1)
}

// hatchColor is a faint tint of the contrast color over the frame.
func hatchColor(frame color.Color) color.Color {
	r, g, b, _ := frame.RGBA()
	yiq := (float64(r>>8)*299 + float64(g>>8)*587 + float64(b>>8)*114) / 1000
	if yiq >= 128 {
		return color.NRGBA{A: 0x2E}
	}
	return color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x2E}
}

// drawCaption renders the two-line caption block. The first line splits on
// the "Shot on " prefix: prefix at regular weight, camera name bold,
// directly adjoining. Glyphs are drawn individually with fixed tracking.
func drawCaption(canvas ports.Canvas, in pipeline.CompositeInput, geom pipeline.Geometry, tables *layout.Tables) {
	ch := float64(in.CanvasHeight)
	line1Size := ch * line1SizeFraction
	line2Size := ch * line2SizeFraction
	lineGap := ch * lineGapFraction

	regular := ports.TextStyle{
		FontSize: line1Size,
		Weight:   ports.WeightRegular,
		Color:    in.CaptionColors.Line1,
		Tracking: line1Size * trackingFactor,
	}
	bold := regular
	bold.Weight = ports.WeightBold

	line2Style := ports.TextStyle{
		FontSize: line2Size,
		Weight:   ports.WeightRegular,
		Color:    in.CaptionColors.Line2,
		Tracking: line2Size * trackingFactor,
	}
	if !in.CaptionColors.Line2Opaque {
		line2Style.Alpha = line2Alpha
	}

	prefix, camera := caption.SplitShotOn(in.Caption.Line1)

	var line1Height, line2Height float64
	if in.Caption.Line1 != "" {
		_, line1Height = canvas.MeasureText(in.Caption.Line1, bold)
	}
	if in.Caption.Line2 != "" {
		_, line2Height = canvas.MeasureText(in.Caption.Line2, line2Style)
	}
	blockHeight := line1Height + line2Height
	if line1Height > 0 && line2Height > 0 {
		blockHeight += lineGap
	}

	anchorY := tables.CaptionAnchorY(layout.CaptionAnchorInput{
		FrameRatio:         in.FrameRatio,
		Spacing:            in.Spacing,
		CanvasHeight:       in.CanvasHeight,
		PadBottom:          geom.Padding.Bottom,
		Image:              geom.Image,
		CaptionBlockHeight: int(math.Round(blockHeight)),
		SourceWidth:        in.SourceWidth,
		SourceHeight:       in.SourceHeight,
	})

	baseline := float64(anchorY)
	centerX := float64(in.CanvasWidth) / 2

	if in.Caption.Line1 != "" {
		baseline += line1Height

		prefixWidth := 0.0
		if prefix != "" {
			prefixWidth, _ = canvas.MeasureText(prefix, regular)
		}
		cameraWidth, _ := canvas.MeasureText(camera, bold)
		startX := centerX - (prefixWidth+cameraWidth)/2

		if prefix != "" {
			canvas.DrawText(prefix, startX, baseline, regular)
		}
		canvas.DrawText(camera, startX+prefixWidth, baseline, bold)
	}

	if in.Caption.Line2 != "" {
		if in.Caption.Line1 != "" {
			baseline += lineGap
		}
		baseline += line2Height

		width, _ := canvas.MeasureText(in.Caption.Line2, line2Style)
		canvas.DrawText(in.Caption.Line2, centerX-width/2, baseline, line2Style)
	}
}
