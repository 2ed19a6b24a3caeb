package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts image processing operations.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas with the specified dimensions and background color.
	// Returns nil if a drawing surface cannot be obtained; callers must treat
	// a nil canvas as a no-op render pass.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// DecodeImage decodes image data into an image.Image.
	DecodeImage(data []byte, format ImageFormat) (image.Image, error)

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas provides drawing operations for compositing a frame.
type Canvas interface {
	// DrawImage draws an image at the specified position.
	DrawImage(img image.Image, x, y int)

	// DrawImageScaled draws an image scaled to the specified dimensions.
	DrawImageScaled(img image.Image, x, y, width, height int)

	// DrawRect draws a filled rectangle.
	DrawRect(x, y, w, h int, c color.Color)

	// DrawLine draws a line between two points.
	DrawLine(x1, y1, x2, y2 int, c color.Color, width float64)

	// DrawText draws text with per-glyph tracking. The x coordinate is the
	// left edge of the rendered run; the y coordinate is the text baseline.
	DrawText(text string, x, y float64, style TextStyle)

	// MeasureText returns the width and height of the text including tracking.
	MeasureText(text string, style TextStyle) (width, height float64)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// FontWeight selects one of the two caption font faces.
type FontWeight int

const (
	WeightRegular FontWeight = iota
	WeightBold
)

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize float64
	Weight   FontWeight
	Color    color.Color
	// Alpha multiplies the color's alpha. Zero means fully opaque.
	Alpha float64
	// Tracking is the additional horizontal gap inserted after each glyph,
	// in pixels. Glyphs are drawn individually; native letter-spacing is not
	// used.
	Tracking float64
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
	FormatAuto
)
