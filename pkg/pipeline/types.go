package pipeline

import (
	"fmt"
	"image"
	"image/color"
)

// =============================================================================
// Common Types
// =============================================================================

// FrameRatio is the overall output canvas width:height ratio.
type FrameRatio string

const (
	// RatioSquare is the 1:1 frame.
	RatioSquare FrameRatio = "1:1"
	// RatioPortrait is the 5:7 frame.
	RatioPortrait FrameRatio = "5:7"
	// RatioTall is the 9:16 frame.
	RatioTall FrameRatio = "9:16"
)

// Dimensions returns the ratio terms (width, height).
func (r FrameRatio) Dimensions() (int, int) {
	switch r {
	case RatioPortrait:
		return 5, 7
	case RatioTall:
		return 9, 16
	default:
		return 1, 1
	}
}

// CanvasSize returns the canvas dimensions for this ratio given the long-side
// pixel length. For 1:1 both sides equal the long side.
func (r FrameRatio) CanvasSize(longSide int) (width, height int) {
	rw, rh := r.Dimensions()
	if rw == rh {
		return longSide, longSide
	}
	// All supported non-square ratios are portrait: height is the long side.
	return longSide * rw / rh, longSide
}

// ParseFrameRatio parses a frame ratio string ("1:1", "5:7", "9:16").
func ParseFrameRatio(s string) (FrameRatio, error) {
	switch FrameRatio(s) {
	case RatioSquare, RatioPortrait, RatioTall:
		return FrameRatio(s), nil
	}
	return "", fmt.Errorf("unknown frame ratio %q", s)
}

// SpacingTier is the padding-size preset controlling frame margins.
type SpacingTier string

const (
	SpacingS SpacingTier = "S"
	SpacingM SpacingTier = "M"
	SpacingL SpacingTier = "L"
)

// ParseSpacingTier parses a spacing tier string ("S", "M", "L").
func ParseSpacingTier(s string) (SpacingTier, error) {
	switch SpacingTier(s) {
	case SpacingS, SpacingM, SpacingL:
		return SpacingTier(s), nil
	}
	return "", fmt.Errorf("unknown spacing tier %q", s)
}

// SourceAspectClass is the classified aspect-ratio family of the uploaded
// photo itself, distinct from FrameRatio.
type SourceAspectClass string

const (
	Source3x4         SourceAspectClass = "3:4"
	Source2x3         SourceAspectClass = "2:3"
	Source4x5         SourceAspectClass = "4:5"
	SourceUnsupported SourceAspectClass = "unsupported"
)

// Rectangle represents a rectangular area.
type Rectangle struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Padding holds the four-sided frame padding in pixels.
type Padding struct {
	Top    int
	Left   int
	Right  int
	Bottom int
}

// Geometry is the fully resolved canvas layout: the canvas size, the frame
// padding and the image draw rectangle. Recomputed on every render, never
// persisted.
type Geometry struct {
	CanvasWidth  int       `json:"canvasWidth"`
	CanvasHeight int       `json:"canvasHeight"`
	Padding      Padding   `json:"padding"`
	Image        Rectangle `json:"image"`
}

// CaptionLines holds the two caption text lines. Either may be empty.
// The first line is split on the "Shot on " prefix for differential styling.
type CaptionLines struct {
	Line1 string
	Line2 string
}

// Empty reports whether there is no caption text at all.
func (c CaptionLines) Empty() bool {
	return c.Line1 == "" && c.Line2 == ""
}

// CaptionColors carries the resolved caption text colors. Line2Opaque
// suppresses the reduced-alpha rendering of the second line (accent colors
// only).
type CaptionColors struct {
	Line1       color.Color
	Line2       color.Color
	Line2Opaque bool
}

// =============================================================================
// Classify Stage Types
// =============================================================================

// ClassifyInput contains the intrinsic dimensions of an uploaded photo.
type ClassifyInput struct {
	Width  int
	Height int
}

// ClassifyResult contains the classification verdict.
type ClassifyResult struct {
	Class    SourceAspectClass
	Accepted bool
}

// =============================================================================
// Caption Stage Types
// =============================================================================

// CaptionInput contains the raw photo bytes for metadata extraction.
type CaptionInput struct {
	Data []byte
}

// CaptionResult contains the generated caption lines.
type CaptionResult struct {
	Lines CaptionLines
}

// =============================================================================
// Composite Stage Types
// =============================================================================

// CompositeInput contains everything the compositor needs for one render
// pass. The same input rendered at two different canvas sizes must produce
// geometrically similar output; that scale invariance is the module's core
// guarantee.
type CompositeInput struct {
	CanvasWidth  int
	CanvasHeight int

	FrameRatio FrameRatio
	Spacing    SpacingTier

	FrameColor    color.Color
	CaptionColors CaptionColors

	// Image is the decoded photo, or nil for the placeholder render.
	Image        image.Image
	SourceWidth  int
	SourceHeight int

	Caption CaptionLines
}

// CompositeResult contains the rendered frame and the geometry it was drawn
// with.
type CompositeResult struct {
	Image    image.Image
	Geometry Geometry
}
