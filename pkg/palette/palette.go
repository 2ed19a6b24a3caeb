// Package palette implements frame color selection: the fixed color
// choices, the two accent colors with their numbered patterns, the auto
// mode sampled from the photo, and the caption text colors each selection
// dictates.
package palette

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/user/framelens/pkg/pipeline"
)

// BaseColor names a frame color choice.
type BaseColor string

const (
	ColorWhite BaseColor = "white"
	ColorBlack BaseColor = "black"
	ColorCream BaseColor = "cream"
	ColorGray  BaseColor = "gray"
	ColorNavy  BaseColor = "navy"
	// ColorSnap and ColorPrism are the accent colors with two patterns each.
	ColorSnap  BaseColor = "snap"
	ColorPrism BaseColor = "prism"
	// ColorAuto derives the frame color from the photo's pixels.
	ColorAuto BaseColor = "auto"
	// ColorCustom is a caller-supplied hex color.
	ColorCustom BaseColor = "custom"
)

// AutoStrategy selects how the auto frame color samples the photo.
// Repeated auto selection cycles through the strategies.
type AutoStrategy int

const (
	// AutoAverage averages every pixel.
	AutoAverage AutoStrategy = iota
	// AutoEdge averages the border pixels only.
	AutoEdge
	// AutoDominant picks the most frequent quantized color.
	AutoDominant

	autoStrategyCount
)

// Selection is the current frame color choice. The lifecycle matches the
// product rule: reset to Default() whenever a new photo is loaded or the
// user cancels.
type Selection struct {
	Base    BaseColor
	Pattern int // 1 or 2, accent colors only
	Auto    AutoStrategy
	Custom  color.Color // ColorCustom only
}

// Default returns the initial selection: a plain white frame.
func Default() Selection {
	return Selection{Base: ColorWhite, Pattern: 1}
}

// Select applies a user color choice to the selection. Re-selecting an
// accent color toggles its pattern; re-selecting auto cycles the sampling
// strategy. Switching colors resets pattern and strategy.
func (s Selection) Select(choice BaseColor) Selection {
	if choice != s.Base {
		return Selection{Base: choice, Pattern: 1}
	}
	switch choice {
	case ColorSnap, ColorPrism:
		next := s
		next.Pattern = 3 - s.Pattern // 1 <-> 2
		return next
	case ColorAuto:
		next := s
		next.Auto = (s.Auto + 1) % autoStrategyCount
		return next
	}
	return s
}

// fixed palette colors
var baseColors = map[BaseColor]color.RGBA{
	ColorWhite: {R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	ColorBlack: {R: 0x11, G: 0x11, B: 0x11, A: 0xFF},
	ColorCream: {R: 0xF5, G: 0xEF, B: 0xE0, A: 0xFF},
	ColorGray:  {R: 0x8A, G: 0x8A, B: 0x8A, A: 0xFF},
	ColorNavy:  {R: 0x16, G: 0x22, B: 0x3A, A: 0xFF},
}

// accent frame backgrounds per pattern
var accentFrames = map[BaseColor][2]color.RGBA{
	ColorSnap:  {{R: 0xFF, G: 0xDD, B: 0x00, A: 0xFF}, {R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}},
	ColorPrism: {{R: 0x1E, G: 0x2A, B: 0x4A, A: 0xFF}, {R: 0x10, G: 0x10, B: 0x10, A: 0xFF}},
}

// accent caption colors per pattern; these override the luminance-based
// contrast computation entirely, both lines.
var accentCaptions = map[BaseColor][2]pipeline.CaptionColors{
	ColorSnap: {
		{Line1: color.RGBA{R: 0x1A, G: 0x1A, B: 0x1A, A: 0xFF}, Line2: color.RGBA{R: 0x1A, G: 0x1A, B: 0x1A, A: 0xFF}},
		// Pattern 2 forces both lines to the fixed red, fully opaque.
		{Line1: snapRed, Line2: snapRed, Line2Opaque: true},
	},
	ColorPrism: {
		{Line1: color.RGBA{R: 0xF5, G: 0xC5, B: 0x18, A: 0xFF}, Line2: color.RGBA{R: 0xF5, G: 0xC5, B: 0x18, A: 0xFF}},
		{Line1: prismTeal, Line2: prismTeal, Line2Opaque: true},
	},
}

var (
	snapRed   = color.RGBA{R: 0xE6, G: 0x00, B: 0x12, A: 0xFF}
	prismTeal = color.RGBA{R: 0x3D, G: 0xDC, B: 0xCC, A: 0xFF}
)

// FrameColor resolves the frame background color. The photo is only
// consulted in auto mode and may be nil otherwise.
func (s Selection) FrameColor(img image.Image) (color.Color, error) {
	switch s.Base {
	case ColorSnap, ColorPrism:
		return accentFrames[s.Base][s.patternIndex()], nil
	case ColorAuto:
		if img == nil {
			return nil, fmt.Errorf("auto frame color requires a loaded photo")
		}
		return sampleColor(img, s.Auto), nil
	case ColorCustom:
		if s.Custom == nil {
			return nil, fmt.Errorf("custom frame color not set")
		}
		return s.Custom, nil
	default:
		c, ok := baseColors[s.Base]
		if !ok {
			return nil, fmt.Errorf("unknown frame color %q", s.Base)
		}
		return c, nil
	}
}

// CaptionColors resolves the caption text colors for the given frame color.
// Accent colors dictate both lines from their pattern table; everything
// else falls back to YIQ luminance contrast.
func (s Selection) CaptionColors(frame color.Color) pipeline.CaptionColors {
	if captions, ok := accentCaptions[s.Base]; ok {
		return captions[s.patternIndex()]
	}
	c := ContrastColor(frame)
	return pipeline.CaptionColors{Line1: c, Line2: c}
}

func (s Selection) patternIndex() int {
	if s.Pattern == 2 {
		return 1
	}
	return 0
}

// ContrastColor picks black or white for readable text over bg using the
// YIQ perceptual luminance weighting.
func ContrastColor(bg color.Color) color.Color {
	r, g, b, _ := bg.RGBA()
	yiq := (float64(r>>8)*299 + float64(g>>8)*587 + float64(b>>8)*114) / 1000
	if yiq >= 128 {
		return color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xFF}
	}
	return color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
}

// ParseBaseColor parses a color name, or a "#rrggbb" hex value into a
// custom selection base.
func ParseBaseColor(s string) (BaseColor, error) {
	switch BaseColor(s) {
	case ColorWhite, ColorBlack, ColorCream, ColorGray, ColorNavy,
		ColorSnap, ColorPrism, ColorAuto:
		return BaseColor(s), nil
	}
	if len(s) > 0 && s[0] == '#' {
		return ColorCustom, nil
	}
	return "", fmt.Errorf("unknown frame color %q", s)
}

// sampleColor derives a frame color from the photo's pixels. All
// strategies work on a downsampled copy to keep sampling cheap and stable
// across source resolutions.
func sampleColor(img image.Image, strategy AutoStrategy) color.Color {
	switch strategy {
	case AutoEdge:
		return edgeAverage(imaging.Resize(img, 64, 64, imaging.Box))
	case AutoDominant:
		return dominantColor(imaging.Resize(img, 48, 48, imaging.Box))
	default:
		nrgba := imaging.Resize(img, 1, 1, imaging.Box).NRGBAAt(0, 0)
		return color.RGBA{R: nrgba.R, G: nrgba.G, B: nrgba.B, A: 0xFF}
	}
}

// edgeAverage averages the perimeter pixels.
func edgeAverage(img *image.NRGBA) color.Color {
	bounds := img.Bounds()
	var rSum, gSum, bSum, n uint64
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		for _, y := range []int{bounds.Min.Y, bounds.Max.Y - 1} {
			px := img.NRGBAAt(x, y)
			rSum += uint64(px.R)
			gSum += uint64(px.G)
			bSum += uint64(px.B)
			n++
		}
	}
	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		for _, x := range []int{bounds.Min.X, bounds.Max.X - 1} {
			px := img.NRGBAAt(x, y)
			rSum += uint64(px.R)
			gSum += uint64(px.G)
			bSum += uint64(px.B)
			n++
		}
	}
	if n == 0 {
		return color.RGBA{A: 0xFF}
	}
	return color.RGBA{
		R: uint8(rSum / n),
		G: uint8(gSum / n),
		B: uint8(bSum / n),
		A: 0xFF,
	}
}

// dominantColor quantizes to 4 bits per channel, finds the most frequent
// bucket and averages its members.
func dominantColor(img *image.NRGBA) color.Color {
	type bucket struct {
		rSum, gSum, bSum, n uint64
	}
	buckets := map[uint16]*bucket{}

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := img.NRGBAAt(x, y)
			key := uint16(px.R>>4)<<8 | uint16(px.G>>4)<<4 | uint16(px.B>>4)
			b, ok := buckets[key]
			if !ok {
				b = &bucket{}
				buckets[key] = b
			}
			b.rSum += uint64(px.R)
			b.gSum += uint64(px.G)
			b.bSum += uint64(px.B)
			b.n++
		}
	}

	var best *bucket
	for _, b := range buckets {
		if best == nil || b.n > best.n {
			best = b
		}
	}
	if best == nil {
		return color.RGBA{A: 0xFF}
	}
	return color.RGBA{
		R: uint8(best.rSum / best.n),
		G: uint8(best.gSum / best.n),
		B: uint8(best.bSum / best.n),
		A: 0xFF,
	}
}
