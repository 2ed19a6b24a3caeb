package classify

import (
	"context"
	"testing"

	"github.com/user/framelens/pkg/pipeline"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		expected pipeline.SourceAspectClass
	}{
		{"exact 3:4", 3000, 4000, pipeline.Source3x4},
		{"exact 2:3", 2000, 3000, pipeline.Source2x3},
		{"exact 4:5", 1600, 2000, pipeline.Source4x5},
		{"near 3:4", 1530, 2000, pipeline.Source3x4}, // 0.765, 2% off
		{"square rejected", 1000, 1000, pipeline.SourceUnsupported},
		{"landscape rejected", 4000, 3000, pipeline.SourceUnsupported},
		{"panorama rejected", 1000, 3000, pipeline.SourceUnsupported},
		{"zero width", 0, 2000, pipeline.SourceUnsupported},
		{"zero height", 1500, 0, pipeline.SourceUnsupported},
		{"negative", -100, 2000, pipeline.SourceUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.width, tt.height)
			if got != tt.expected {
				t.Errorf("Classify(%d, %d): expected %s, got %s", tt.width, tt.height, tt.expected, got)
			}
		})
	}
}

// TestClassify_NearestOnOverlap checks the overlap between the 3:4 and 4:5
// acceptance bands: the nearest target wins.
func TestClassify_NearestOnOverlap(t *testing.T) {
	// 0.775 is within 10% of both 0.75 and 0.8, but closer to 0.8
	// relative error: |0.775-0.75|/0.75 = 0.0333, |0.775-0.8|/0.8 = 0.03125
	got := Classify(775, 1000)
	if got != pipeline.Source4x5 {
		t.Errorf("Classify(775, 1000): expected %s, got %s", pipeline.Source4x5, got)
	}

	// 0.70 sits between 2:3 and 3:4; 2:3 is nearer
	// relative error: |0.70-0.6667|/0.6667 = 0.05, |0.70-0.75|/0.75 = 0.0667
	got = Classify(700, 1000)
	if got != pipeline.Source2x3 {
		t.Errorf("Classify(700, 1000): expected %s, got %s", pipeline.Source2x3, got)
	}
}

// TestClassifyForStyling_TighterBand checks that a photo accepted for upload
// can still fall outside every styling band.
func TestClassifyForStyling_TighterBand(t *testing.T) {
	// 0.62 vs 2:3: relative error 0.07, inside 10% but outside 5%
	if got := Classify(620, 1000); got != pipeline.Source2x3 {
		t.Fatalf("Classify(620, 1000): expected %s, got %s", pipeline.Source2x3, got)
	}
	if got := ClassifyForStyling(620, 1000); got != pipeline.SourceUnsupported {
		t.Errorf("ClassifyForStyling(620, 1000): expected %s, got %s", pipeline.SourceUnsupported, got)
	}

	// exact ratios match both bands
	if got := ClassifyForStyling(3000, 4000); got != pipeline.Source3x4 {
		t.Errorf("ClassifyForStyling(3000, 4000): expected %s, got %s", pipeline.Source3x4, got)
	}
}

func TestStage_Execute(t *testing.T) {
	stage := NewStage()

	result, err := stage.Execute(context.Background(), pipeline.ClassifyInput{Width: 1500, Height: 2000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Class != pipeline.Source3x4 {
		t.Errorf("expected class %s, got %s", pipeline.Source3x4, result.Class)
	}
	if !result.Accepted {
		t.Error("expected 3:4 photo to be accepted")
	}

	// Rejection is reported through the result, not as an error
	result, err = stage.Execute(context.Background(), pipeline.ClassifyInput{Width: 1000, Height: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Accepted {
		t.Error("expected square photo to be rejected")
	}
	if result.Class != pipeline.SourceUnsupported {
		t.Errorf("expected class %s, got %s", pipeline.SourceUnsupported, result.Class)
	}
}
