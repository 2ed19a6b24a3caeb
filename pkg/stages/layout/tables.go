package layout

import (
	"fmt"
	"strings"

	"github.com/user/framelens/pkg/pipeline"
)

// Caption placement constants. All vertical values are canvas-height
// fractions so that preview and export renders stay geometrically similar
// across the >5x resolution difference between them.

// FixedDistanceFraction is the gap between the image bottom and the caption
// anchor in the fixed-distance regime (9:16 frames, and L spacing on any
// frame). 16px against the 672px reference canvas.
const FixedDistanceFraction = 16.0 / 672.0

// fiveSevenSourceTolerance is the direct 5:7 ratio check used by the offset
// resolver. Tighter than the classifier's styling band.
const fiveSevenSourceTolerance = 0.02

// smallScreenCorrection is subtracted from the offset when rendering below
// the reference canvas height with S spacing.
const smallScreenCorrection = 0.008

// Reference canvas heights per frame ratio for the small-screen correction.
var referenceHeights = map[pipeline.FrameRatio]int{
	pipeline.RatioSquare:   480,
	pipeline.RatioPortrait: 672,
}

// OffsetKey identifies an entry in a caption offset table. Only the
// padding-centered regime consults the tables, so 9:16 and L-spacing
// combinations never appear.
type OffsetKey struct {
	Ratio pipeline.FrameRatio
	Tier  pipeline.SpacingTier
}

// OffsetTable maps frame ratio and spacing tier to a canvas-height-relative
// caption offset. The values are tuned product constants, not derived.
type OffsetTable map[OffsetKey]float64

// Tables holds the layered caption offset tables, resolved in priority
// order: 5:7-like source, then 2:3, then 4:5, then the base table.
type Tables struct {
	Base            OffsetTable
	FiveSevenSource OffsetTable
	TwoThreeSource  OffsetTable
	FourFiveSource  OffsetTable
}

// DefaultTables returns the tuned offset tables.
func DefaultTables() *Tables {
	return &Tables{
		Base: OffsetTable{
			{pipeline.RatioSquare, pipeline.SpacingS}:   -0.012,
			{pipeline.RatioSquare, pipeline.SpacingM}:   -0.008,
			{pipeline.RatioPortrait, pipeline.SpacingS}: -0.014,
			{pipeline.RatioPortrait, pipeline.SpacingM}: -0.010,
		},
		FiveSevenSource: OffsetTable{
			{pipeline.RatioSquare, pipeline.SpacingS}:   -0.016,
			{pipeline.RatioSquare, pipeline.SpacingM}:   -0.012,
			{pipeline.RatioPortrait, pipeline.SpacingS}: -0.020,
			{pipeline.RatioPortrait, pipeline.SpacingM}: -0.016,
		},
		TwoThreeSource: OffsetTable{
			{pipeline.RatioSquare, pipeline.SpacingS}:   -0.010,
			{pipeline.RatioSquare, pipeline.SpacingM}:   -0.006,
			{pipeline.RatioPortrait, pipeline.SpacingS}: -0.012,
			{pipeline.RatioPortrait, pipeline.SpacingM}: -0.008,
		},
		FourFiveSource: OffsetTable{
			{pipeline.RatioSquare, pipeline.SpacingS}:   -0.014,
			{pipeline.RatioSquare, pipeline.SpacingM}:   -0.010,
			{pipeline.RatioPortrait, pipeline.SpacingS}: -0.016,
			{pipeline.RatioPortrait, pipeline.SpacingM}: -0.012,
		},
	}
}

// Override replaces a single table entry. The key format is
// "<table>.<ratio>.<tier>" where table is one of "base", "5:7", "2:3",
// "4:5", e.g. "5:7.5:7.M" or "base.1:1.S". Values are canvas-height
// fractions.
func (t *Tables) Override(key string, fraction float64) error {
	parts := strings.Split(key, ".")
	if len(parts) != 3 {
		return fmt.Errorf("caption offset key %q: want <table>.<ratio>.<tier>", key)
	}

	var table OffsetTable
	switch parts[0] {
	case "base":
		table = t.Base
	case "5:7":
		table = t.FiveSevenSource
	case "2:3":
		table = t.TwoThreeSource
	case "4:5":
		table = t.FourFiveSource
	default:
		return fmt.Errorf("caption offset key %q: unknown table %q", key, parts[0])
	}

	ratio, err := pipeline.ParseFrameRatio(parts[1])
	if err != nil {
		return fmt.Errorf("caption offset key %q: %w", key, err)
	}
	tier, err := pipeline.ParseSpacingTier(parts[2])
	if err != nil {
		return fmt.Errorf("caption offset key %q: %w", key, err)
	}

	table[OffsetKey{ratio, tier}] = fraction
	return nil
}
