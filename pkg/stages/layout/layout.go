// Package layout implements the frame geometry and caption placement
// calculations. Everything here is pure math over explicit inputs; the same
// functions run at preview and export resolution and must produce
// geometrically similar results.
package layout

import (
	"context"
	"math"

	"github.com/user/framelens/pkg/pipeline"
	"github.com/user/framelens/pkg/stages/classify"
)

// basePaddingFraction keys the padding magnitude off the spacing tier, as a
// fraction of the canvas short side.
var basePaddingFraction = map[pipeline.SpacingTier]float64{
	pipeline.SpacingS: 0.04,
	pipeline.SpacingM: 0.08,
	pipeline.SpacingL: 0.15,
}

// minPadBottomFraction returns the minimum bottom padding fraction for the
// combination. 5:7 with S spacing is the sole outlier; everything else
// reserves 0.17 for the caption area.
func minPadBottomFraction(ratio pipeline.FrameRatio, tier pipeline.SpacingTier) float64 {
	if ratio == pipeline.RatioPortrait && tier == pipeline.SpacingS {
		return 0.10
	}
	return 0.17
}

// Tall-frame headroom multipliers. 9:16 frames push the image down to leave
// room for the caption and title area; with S spacing the effect compounds.
const (
	tallTopMultiplier      = 2.5
	tallSmallTopMultiplier = 1.8
)

// ComputePadding computes the four-sided frame padding in pixels, scaled to
// the canvas short side.
func ComputePadding(canvasWidth, canvasHeight int, ratio pipeline.FrameRatio, tier pipeline.SpacingTier) pipeline.Padding {
	short := float64(canvasWidth)
	if canvasHeight < canvasWidth {
		short = float64(canvasHeight)
	}

	base := basePaddingFraction[tier]
	extraBottom := math.Max(0, minPadBottomFraction(ratio, tier)-base)

	topFraction := base
	if ratio == pipeline.RatioTall {
		topFraction *= tallTopMultiplier
		if tier == pipeline.SpacingS {
			topFraction *= tallSmallTopMultiplier
		}
	}

	side := int(math.Round(short * base))
	return pipeline.Padding{
		Top:    int(math.Round(short * topFraction)),
		Left:   side,
		Right:  side,
		Bottom: int(math.Round(short * (base + extraBottom))),
	}
}

// centerVertically reports whether the image is centered within the padded
// interior instead of top-aligned. 9:16 always centers; 5:7 with L spacing
// centers for 3:4 and 4:5 sources.
func centerVertically(ratio pipeline.FrameRatio, tier pipeline.SpacingTier, class pipeline.SourceAspectClass) bool {
	if ratio == pipeline.RatioTall {
		return true
	}
	if ratio == pipeline.RatioPortrait && tier == pipeline.SpacingL {
		return class == pipeline.Source3x4 || class == pipeline.Source4x5
	}
	return false
}

// ComputeGeometry resolves the full canvas geometry: padding plus the
// contain-fit image rectangle. The image is never cropped and never scaled
// beyond contain-fit; degenerate sources clamp to a 1px draw size.
func ComputeGeometry(canvasWidth, canvasHeight int, ratio pipeline.FrameRatio, tier pipeline.SpacingTier, sourceWidth, sourceHeight int) pipeline.Geometry {
	pad := ComputePadding(canvasWidth, canvasHeight, ratio, tier)

	innerWidth := canvasWidth - pad.Left - pad.Right
	innerHeight := canvasHeight - pad.Top - pad.Bottom

	srcW := sourceWidth
	srcH := sourceHeight
	if srcW < 1 {
		srcW = 1
	}
	if srcH < 1 {
		srcH = 1
	}

	sourceAspect := float64(srcW) / float64(srcH)
	innerAspect := float64(innerWidth) / float64(innerHeight)

	var drawWidth, drawHeight int
	if sourceAspect > innerAspect {
		drawWidth = innerWidth
		drawHeight = int(math.Round(float64(innerWidth) / sourceAspect))
	} else {
		drawHeight = innerHeight
		drawWidth = int(math.Round(float64(innerHeight) * sourceAspect))
	}
	if drawWidth < 1 {
		drawWidth = 1
	}
	if drawHeight < 1 {
		drawHeight = 1
	}

	x := pad.Left + (innerWidth-drawWidth)/2
	y := pad.Top
	if centerVertically(ratio, tier, classify.ClassifyForStyling(srcW, srcH)) {
		y = pad.Top + (innerHeight-drawHeight)/2
	}

	return pipeline.Geometry{
		CanvasWidth:  canvasWidth,
		CanvasHeight: canvasHeight,
		Padding:      pad,
		Image:        pipeline.Rectangle{X: x, Y: y, Width: drawWidth, Height: drawHeight},
	}
}

// CaptionAnchorInput carries the inputs for caption anchor resolution.
type CaptionAnchorInput struct {
	FrameRatio   pipeline.FrameRatio
	Spacing      pipeline.SpacingTier
	CanvasHeight int
	PadBottom    int
	Image        pipeline.Rectangle
	// CaptionBlockHeight is the total height of the two-line caption block
	// in pixels at the current canvas scale.
	CaptionBlockHeight int
	// Source dimensions for offset table selection. The 5:7-like check runs
	// directly against the raw ratio, not the classified family.
	SourceWidth  int
	SourceHeight int
}

// CaptionAnchorY resolves the caption block's top y-coordinate.
//
// Two regimes apply. 9:16 frames (any spacing) and L spacing (any frame)
// anchor at a fixed distance below the image bottom. Everything else
// centers the block within the bottom padding and applies a tuned offset
// from the layered tables.
func (t *Tables) CaptionAnchorY(in CaptionAnchorInput) int {
	if in.FrameRatio == pipeline.RatioTall || in.Spacing == pipeline.SpacingL {
		gap := math.Round(float64(in.CanvasHeight) * FixedDistanceFraction)
		return in.Image.Y + in.Image.Height + int(gap)
	}

	offset := t.resolveOffset(in)
	y := float64(in.CanvasHeight) -
		float64(in.PadBottom)/2 -
		float64(in.CaptionBlockHeight)/2 +
		offset*float64(in.CanvasHeight)
	return int(math.Round(y))
}

// resolveOffset walks the table layers in priority order and applies the
// small-screen correction.
func (t *Tables) resolveOffset(in CaptionAnchorInput) float64 {
	key := OffsetKey{in.FrameRatio, in.Spacing}

	table := t.Base
	switch {
	case isFiveSevenLike(in.SourceWidth, in.SourceHeight):
		table = t.FiveSevenSource
	case classify.ClassifyForStyling(in.SourceWidth, in.SourceHeight) == pipeline.Source2x3:
		table = t.TwoThreeSource
	case classify.ClassifyForStyling(in.SourceWidth, in.SourceHeight) == pipeline.Source4x5:
		table = t.FourFiveSource
	}

	offset, ok := table[key]
	if !ok {
		offset = t.Base[key]
	}

	if in.Spacing == pipeline.SpacingS {
		if ref, known := referenceHeights[in.FrameRatio]; known && in.CanvasHeight < ref {
			offset -= smallScreenCorrection
		}
	}
	return offset
}

// isFiveSevenLike checks the source ratio directly against 5:7 with a
// tolerance tighter than the classifier's bands. A 5:7 photo classifies as
// 3:4 but still gets the 5:7 offset table.
func isFiveSevenLike(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	r := float64(width) / float64(height)
	const target = 5.0 / 7.0
	return math.Abs(r-target)/target <= fiveSevenSourceTolerance
}

// ComputeCaptionAnchorY resolves the caption anchor with the default tuned
// tables.
func ComputeCaptionAnchorY(in CaptionAnchorInput) int {
	return DefaultTables().CaptionAnchorY(in)
}

// Stage calculates the frame geometry.
// This is a pure function with no external dependencies.
type Stage struct {
	tables *Tables
}

// NewStage creates a new layout stage with the default offset tables.
func NewStage() *Stage {
	return &Stage{tables: DefaultTables()}
}

// NewStageWithTables creates a layout stage with overridden offset tables.
func NewStageWithTables(tables *Tables) *Stage {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Stage{tables: tables}
}

// Tables returns the stage's offset tables.
func (s *Stage) Tables() *Tables {
	return s.tables
}

// LayoutInput contains parameters for geometry calculation.
type LayoutInput struct {
	CanvasWidth  int
	CanvasHeight int
	FrameRatio   pipeline.FrameRatio
	Spacing      pipeline.SpacingTier
	SourceWidth  int
	SourceHeight int
}

// Execute resolves the canvas geometry for the input parameters.
func (s *Stage) Execute(ctx context.Context, input LayoutInput) (pipeline.Geometry, error) {
	return ComputeGeometry(
		input.CanvasWidth, input.CanvasHeight,
		input.FrameRatio, input.Spacing,
		input.SourceWidth, input.SourceHeight,
	), nil
}
