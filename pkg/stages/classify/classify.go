// Package classify implements the source aspect-ratio classification stage.
package classify

import (
	"context"
	"math"

	"github.com/user/framelens/pkg/pipeline"
)

// Tolerance bands for ratio matching. The acceptance band gates uploads;
// the styling band selects caption offset tables. The two are intentionally
// different and both matter.
const (
	AcceptTolerance  = 0.10
	StylingTolerance = 0.05
)

// classTargets lists the supported source families in match order.
var classTargets = []struct {
	class pipeline.SourceAspectClass
	ratio float64
}{
	{pipeline.Source3x4, 3.0 / 4.0},
	{pipeline.Source2x3, 2.0 / 3.0},
	{pipeline.Source4x5, 4.0 / 5.0},
}

// Classify matches the photo's width/height ratio against the supported
// families within the acceptance band. Zero or negative dimensions are
// unsupported. Pure function, no side effects.
func Classify(width, height int) pipeline.SourceAspectClass {
	return classifyWithin(width, height, AcceptTolerance)
}

// ClassifyForStyling matches against the tighter styling band used to select
// caption offset tables. A photo accepted for upload may still fall outside
// every styling band.
func ClassifyForStyling(width, height int) pipeline.SourceAspectClass {
	return classifyWithin(width, height, StylingTolerance)
}

func classifyWithin(width, height int, tolerance float64) pipeline.SourceAspectClass {
	if width <= 0 || height <= 0 {
		return pipeline.SourceUnsupported
	}
	r := float64(width) / float64(height)

	// The 3:4 and 4:5 acceptance bands overlap; pick the nearest target.
	best := pipeline.SourceUnsupported
	bestErr := math.Inf(1)
	for _, target := range classTargets {
		relErr := math.Abs(r-target.ratio) / target.ratio
		if relErr <= tolerance && relErr < bestErr {
			best = target.class
			bestErr = relErr
		}
	}
	return best
}

// Stage classifies an uploaded image and gates acceptance.
type Stage struct{}

// NewStage creates a new classify stage.
func NewStage() *Stage {
	return &Stage{}
}

// Execute classifies the input dimensions. Rejection is reported through
// the result, not as an error; the caller decides how to surface it.
func (s *Stage) Execute(ctx context.Context, input pipeline.ClassifyInput) (pipeline.ClassifyResult, error) {
	class := Classify(input.Width, input.Height)
	return pipeline.ClassifyResult{
		Class:    class,
		Accepted: class != pipeline.SourceUnsupported,
	}, nil
}
