package composite

import (
	"context"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/user/framelens/pkg/adapters/ggrenderer"
	"github.com/user/framelens/pkg/adapters/logger"
	"github.com/user/framelens/pkg/mocks"
	"github.com/user/framelens/pkg/pipeline"
	"github.com/user/framelens/pkg/stages/layout"
)

func testPhoto(c color.RGBA, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func rgb(c color.Color) (uint32, uint32, uint32) {
	r, g, b, _ := c.RGBA()
	return r >> 8, g >> 8, b >> 8
}

func TestStage_Execute(t *testing.T) {
	navy := color.RGBA{R: 0x16, G: 0x22, B: 0x3A, A: 0xFF}
	red := color.RGBA{R: 0xC0, G: 0x20, B: 0x20, A: 0xFF}

	stage := NewStage(ggrenderer.New(), mocks.NewDebugSink(), logger.NewNoop())
	result, err := stage.Execute(context.Background(), pipeline.CompositeInput{
		CanvasWidth:  300,
		CanvasHeight: 300,
		FrameRatio:   pipeline.RatioSquare,
		Spacing:      pipeline.SpacingM,
		FrameColor:   navy,
		Image:        testPhoto(red, 150, 200),
		SourceWidth:  150,
		SourceHeight: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Image == nil {
		t.Fatal("expected a rendered image")
	}

	// corners show the frame color
	r, g, b := rgb(result.Image.At(2, 2))
	if r != 0x16 || g != 0x22 || b != 0x3A {
		t.Errorf("corner pixel %02x%02x%02x, want frame color 16223a", r, g, b)
	}

	// the center of the image rectangle shows the photo
	geom := result.Geometry
	cx := geom.Image.X + geom.Image.Width/2
	cy := geom.Image.Y + geom.Image.Height/2
	r, g, b = rgb(result.Image.At(cx, cy))
	if r != 0xC0 || g != 0x20 || b != 0x20 {
		t.Errorf("center pixel %02x%02x%02x, want photo color c02020", r, g, b)
	}

	// geometry matches the pure layout computation
	expected := layout.ComputeGeometry(300, 300, pipeline.RatioSquare, pipeline.SpacingM, 150, 200)
	if geom != expected {
		t.Errorf("geometry mismatch: expected %+v, got %+v", expected, geom)
	}
}

// TestStage_Execute_ResizesToDrawRect: the photo goes through the
// renderer's resampler at exactly the draw rectangle size before drawing.
func TestStage_Execute_ResizesToDrawRect(t *testing.T) {
	real := ggrenderer.New()

	var resizedW, resizedH int
	renderer := &mocks.Renderer{
		CreateCanvasFunc: real.CreateCanvas,
		ResizeImageFunc: func(img image.Image, width, height int) image.Image {
			resizedW, resizedH = width, height
			return real.ResizeImage(img, width, height)
		},
	}

	stage := NewStage(renderer, mocks.NewDebugSink(), logger.NewNoop())
	result, err := stage.Execute(context.Background(), pipeline.CompositeInput{
		CanvasWidth:  300,
		CanvasHeight: 300,
		FrameRatio:   pipeline.RatioSquare,
		Spacing:      pipeline.SpacingM,
		FrameColor:   color.White,
		Image:        testPhoto(color.RGBA{R: 0xC0, G: 0x20, B: 0x20, A: 0xFF}, 150, 200),
		SourceWidth:  150,
		SourceHeight: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resizedW != result.Geometry.Image.Width || resizedH != result.Geometry.Image.Height {
		t.Errorf("resized to %dx%d, want draw rect %dx%d",
			resizedW, resizedH, result.Geometry.Image.Width, result.Geometry.Image.Height)
	}

	// the resized photo still lands inside the draw rectangle
	geom := result.Geometry
	r, g, b := rgb(result.Image.At(geom.Image.X+geom.Image.Width/2, geom.Image.Y+geom.Image.Height/2))
	if r != 0xC0 || g != 0x20 || b != 0x20 {
		t.Errorf("center pixel %02x%02x%02x, want photo color c02020", r, g, b)
	}
}

// TestStage_Execute_NoSurface: a renderer without a drawing surface makes
// the render a no-op. The geometry still comes back; the image does not.
func TestStage_Execute_NoSurface(t *testing.T) {
	stage := NewStage(&mocks.Renderer{}, mocks.NewDebugSink(), logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.CompositeInput{
		CanvasWidth:  300,
		CanvasHeight: 420,
		FrameRatio:   pipeline.RatioPortrait,
		Spacing:      pipeline.SpacingM,
		FrameColor:   color.White,
		SourceWidth:  150,
		SourceHeight: 200,
	})
	if err != nil {
		t.Fatalf("expected a no-op, got error: %v", err)
	}
	if result.Image != nil {
		t.Error("expected nil image without a surface")
	}
	if result.Geometry.CanvasWidth != 300 || result.Geometry.Image.Width == 0 {
		t.Errorf("expected computed geometry, got %+v", result.Geometry)
	}
}

// TestStage_Execute_Placeholder renders without a photo: the padded
// interior gets the crosshatch instead.
func TestStage_Execute_Placeholder(t *testing.T) {
	stage := NewStage(ggrenderer.New(), mocks.NewDebugSink(), logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.CompositeInput{
		CanvasWidth:  300,
		CanvasHeight: 300,
		FrameRatio:   pipeline.RatioSquare,
		Spacing:      pipeline.SpacingM,
		FrameColor:   color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		SourceWidth:  150,
		SourceHeight: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the border of the hatched area is visibly darker than the white frame
	pad := result.Geometry.Padding
	r, _, _ := rgb(result.Image.At(pad.Left+5, pad.Top))
	if r >= 250 {
		t.Errorf("expected hatch border to darken the frame, got r=%d", r)
	}

	// outside the padded interior stays clean
	r, g, b := rgb(result.Image.At(2, 2))
	if r != 0xFF || g != 0xFF || b != 0xFF {
		t.Errorf("corner pixel %02x%02x%02x, want ffffff", r, g, b)
	}
}

// TestRender_ScaleInvariance renders the same input at preview and export
// resolution and compares the geometry fractions.
func TestRender_ScaleInvariance(t *testing.T) {
	const tolerance = 0.005

	render := func(longSide int) pipeline.Geometry {
		cw, ch := pipeline.RatioPortrait.CanvasSize(longSide)
		return Render(nil, pipeline.CompositeInput{
			CanvasWidth:  cw,
			CanvasHeight: ch,
			FrameRatio:   pipeline.RatioPortrait,
			Spacing:      pipeline.SpacingM,
			SourceWidth:  1500,
			SourceHeight: 2000,
		}, nil)
	}

	preview := render(672)
	export := render(2400)

	checks := []struct {
		name string
		a, b float64
	}{
		{"x", float64(preview.Image.X) / float64(preview.CanvasWidth), float64(export.Image.X) / float64(export.CanvasWidth)},
		{"y", float64(preview.Image.Y) / float64(preview.CanvasHeight), float64(export.Image.Y) / float64(export.CanvasHeight)},
		{"width", float64(preview.Image.Width) / float64(preview.CanvasWidth), float64(export.Image.Width) / float64(export.CanvasWidth)},
		{"height", float64(preview.Image.Height) / float64(preview.CanvasHeight), float64(export.Image.Height) / float64(export.CanvasHeight)},
	}
	for _, c := range checks {
		if math.Abs(c.a-c.b) > tolerance {
			t.Errorf("%s fraction drifted: preview %.4f, export %.4f", c.name, c.a, c.b)
		}
	}
}

// TestStage_Execute_WithCaption renders a captioned frame and checks that
// text appears below the image.
func TestStage_Execute_WithCaption(t *testing.T) {
	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	dark := color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xFF}

	stage := NewStage(ggrenderer.New(), mocks.NewDebugSink(), logger.NewNoop())
	result, err := stage.Execute(context.Background(), pipeline.CompositeInput{
		CanvasWidth:   500,
		CanvasHeight:  700,
		FrameRatio:    pipeline.RatioPortrait,
		Spacing:       pipeline.SpacingM,
		FrameColor:    white,
		CaptionColors: pipeline.CaptionColors{Line1: dark, Line2: dark},
		Image:         testPhoto(color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}, 150, 200),
		SourceWidth:   150,
		SourceHeight:  200,
		Caption:       pipeline.CaptionLines{Line1: "Shot on X-T4", Line2: "f/2.8  1/250s"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// some pixel in the bottom padding band is darkened by the caption text
	geom := result.Geometry
	found := false
	for y := geom.Image.Y + geom.Image.Height; y < geom.CanvasHeight && !found; y++ {
		for x := 0; x < geom.CanvasWidth; x++ {
			r, _, _ := rgb(result.Image.At(x, y))
			if r < 0x80 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("expected caption text in the bottom padding")
	}
}
