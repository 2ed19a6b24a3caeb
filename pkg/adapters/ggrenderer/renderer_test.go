package ggrenderer

import (
	"image/color"
	"testing"

	"github.com/user/framelens/pkg/ports"
)

func TestCreateCanvas(t *testing.T) {
	r := New()

	canvas := r.CreateCanvas(100, 80, color.White)
	if canvas == nil {
		t.Fatal("expected a canvas")
	}
	img := canvas.ToImage()
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 80 {
		t.Errorf("unexpected canvas size %v", img.Bounds())
	}

	// the background fill covers every pixel
	red, _, _, _ := img.At(50, 40).RGBA()
	if red>>8 != 0xFF {
		t.Errorf("expected white background, got %v", img.At(50, 40))
	}
}

func TestCreateCanvas_InvalidDimensions(t *testing.T) {
	r := New()
	for _, dims := range [][2]int{{0, 100}, {100, 0}, {-1, 100}, {0, 0}} {
		if canvas := r.CreateCanvas(dims[0], dims[1], color.White); canvas != nil {
			t.Errorf("expected nil canvas for %dx%d", dims[0], dims[1])
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	r := New()

	canvas := r.CreateCanvas(40, 40, color.RGBA{R: 0x16, G: 0x22, B: 0x3A, A: 0xFF})
	img := canvas.ToImage()

	// PNG is lossless: the pixel survives exactly
	data, err := r.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		t.Fatalf("encode PNG: %v", err)
	}
	decoded, err := r.DecodeImage(data, ports.FormatPNG)
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	dr, dg, db, _ := decoded.At(20, 20).RGBA()
	if dr>>8 != 0x16 || dg>>8 != 0x22 || db>>8 != 0x3A {
		t.Errorf("pixel changed through PNG round trip: %v", decoded.At(20, 20))
	}

	// JPEG decodes through format auto-detection
	data, err = r.EncodeImage(img, ports.FormatJPEG, 90)
	if err != nil {
		t.Fatalf("encode JPEG: %v", err)
	}
	decoded, err = r.DecodeImage(data, ports.FormatAuto)
	if err != nil {
		t.Fatalf("decode JPEG: %v", err)
	}
	if decoded.Bounds().Dx() != 40 {
		t.Errorf("unexpected decoded size %v", decoded.Bounds())
	}
}

func TestResizeImage(t *testing.T) {
	r := New()
	src := r.CreateCanvas(100, 100, color.White).ToImage()

	dst := r.ResizeImage(src, 25, 50)
	if dst.Bounds().Dx() != 25 || dst.Bounds().Dy() != 50 {
		t.Errorf("unexpected resized bounds %v", dst.Bounds())
	}
}

func TestCanvas_DrawRect(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(60, 60, color.White)

	canvas.DrawRect(10, 10, 20, 20, color.RGBA{A: 0xFF})
	img := canvas.ToImage()

	red, _, _, _ := img.At(15, 15).RGBA()
	if red>>8 != 0 {
		t.Errorf("expected black inside rect, got %v", img.At(15, 15))
	}
	red, _, _, _ = img.At(45, 45).RGBA()
	if red>>8 != 0xFF {
		t.Errorf("expected untouched background, got %v", img.At(45, 45))
	}
}

// TestCanvas_MeasureText_Tracking: the tracked width grows by exactly the
// tracking amount per inter-glyph gap.
func TestCanvas_MeasureText_Tracking(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(200, 50, color.White)

	plain := ports.TextStyle{FontSize: 13}
	tracked := ports.TextStyle{FontSize: 13, Tracking: 5}

	w0, _ := canvas.MeasureText("ABC", plain)
	w1, _ := canvas.MeasureText("ABC", tracked)

	if diff := w1 - w0; diff < 9.9 || diff > 10.1 {
		t.Errorf("expected tracking to add 10, added %.2f", diff)
	}

	// a single glyph gets no tracking at all
	s0, _ := canvas.MeasureText("A", plain)
	s1, _ := canvas.MeasureText("A", tracked)
	if s0 != s1 {
		t.Errorf("single glyph width changed with tracking: %.2f vs %.2f", s0, s1)
	}
}

func TestCanvas_DrawText(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(120, 40, color.White)

	canvas.DrawText("Hello", 10, 25, ports.TextStyle{
		FontSize: 13,
		Color:    color.RGBA{A: 0xFF},
	})

	// some pixel along the baseline is darkened
	img := canvas.ToImage()
	found := false
	for x := 10; x < 80 && !found; x++ {
		for y := 10; y < 30; y++ {
			red, _, _, _ := img.At(x, y).RGBA()
			if red>>8 < 0x80 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("expected text pixels on the canvas")
	}
}

func TestNewWithFonts_MissingFile(t *testing.T) {
	if _, err := NewWithFonts("/nonexistent/regular.ttf", ""); err == nil {
		t.Error("expected error for missing font file")
	}

	// empty paths keep the fallback face
	r, err := NewWithFonts("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.CreateCanvas(10, 10, color.White) == nil {
		t.Error("expected a usable renderer without fonts")
	}
}
