// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"

	"github.com/user/framelens/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library. It carries the
// two caption font faces; when no fonts are configured, text falls back to
// gg's built-in face.
type Renderer struct {
	regular *truetype.Font
	bold    *truetype.Font
}

// New creates a Renderer using the built-in fallback font for all text.
func New() *Renderer {
	return &Renderer{}
}

// NewWithFonts creates a Renderer with regular and bold TTF files for the
// caption faces. Either path may be empty to keep the fallback.
func NewWithFonts(regularPath, boldPath string) (*Renderer, error) {
	r := &Renderer{}
	var err error
	if regularPath != "" {
		r.regular, err = loadFont(regularPath)
		if err != nil {
			return nil, fmt.Errorf("load regular font: %w", err)
		}
	}
	if boldPath != "" {
		r.bold, err = loadFont(boldPath)
		if err != nil {
			return nil, fmt.Errorf("load bold font: %w", err)
		}
	}
	return r, nil
}

func loadFont(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return truetype.Parse(data)
}

// CreateCanvas creates a new drawing canvas filled with bg.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if width <= 0 || height <= 0 {
		return nil
	}
	dc := gg.NewContext(width, height)
	if bg != nil {
		dc.SetColor(bg)
		dc.Clear()
	}
	return &Canvas{dc: dc, regular: r.regular, bold: r.bold}
}

// DecodeImage decodes image data into an image.Image.
func (r *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	reader := bytes.NewReader(data)

	switch format {
	case ports.FormatJPEG:
		return jpeg.Decode(reader)
	case ports.FormatPNG:
		return png.Decode(reader)
	default:
		img, _, err := image.Decode(reader)
		return img, err
	}
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc      *gg.Context
	regular *truetype.Font
	bold    *truetype.Font
}

// DrawImage draws an image at the specified position.
func (c *Canvas) DrawImage(img image.Image, x, y int) {
	c.dc.DrawImage(img, x, y)
}

// DrawImageScaled draws an image scaled to the specified dimensions.
func (c *Canvas) DrawImageScaled(img image.Image, x, y, width, height int) {
	c.dc.Push()
	defer c.dc.Pop()

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}
	scaleX := float64(width) / float64(bounds.Dx())
	scaleY := float64(height) / float64(bounds.Dy())

	c.dc.Translate(float64(x), float64(y))
	c.dc.Scale(scaleX, scaleY)
	c.dc.DrawImage(img, 0, 0)
}

// DrawRect draws a filled rectangle.
func (c *Canvas) DrawRect(x, y, w, h int, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Fill()
}

// DrawLine draws a line between two points.
func (c *Canvas) DrawLine(x1, y1, x2, y2 int, col color.Color, width float64) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(float64(x1), float64(y1), float64(x2), float64(y2))
	c.dc.Stroke()
}

// DrawText draws text glyph by glyph with the style's tracking. The caption
// letter-spacing is done here manually rather than through any native
// letter-spacing facility.
func (c *Canvas) DrawText(text string, x, y float64, style ports.TextStyle) {
	c.setFace(style)
	c.dc.SetColor(applyAlpha(style.Color, style.Alpha))

	pos := x
	for _, r := range text {
		glyph := string(r)
		w, _ := c.dc.MeasureString(glyph)
		c.dc.DrawString(glyph, pos, y)
		pos += w + style.Tracking
	}
}

// MeasureText returns the tracked width and line height of the text.
func (c *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	c.setFace(style)

	var width float64
	n := 0
	for _, r := range text {
		w, _ := c.dc.MeasureString(string(r))
		width += w
		n++
	}
	if n > 1 {
		width += style.Tracking * float64(n-1)
	}

	_, height := c.dc.MeasureString(text)
	return width, height
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

// setFace selects the font face for the style's weight and size. Without
// configured fonts the gg default face stays in effect.
func (c *Canvas) setFace(style ports.TextStyle) {
	font := c.regular
	if style.Weight == ports.WeightBold && c.bold != nil {
		font = c.bold
	}
	if font == nil {
		return
	}
	c.dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: style.FontSize}))
}

// applyAlpha multiplies the color's alpha. Zero alpha means opaque.
func applyAlpha(col color.Color, alpha float64) color.Color {
	if col == nil {
		col = color.Black
	}
	if alpha <= 0 || alpha >= 1 {
		return col
	}
	nrgba := color.NRGBAModel.Convert(col).(color.NRGBA)
	nrgba.A = uint8(float64(nrgba.A) * alpha)
	return nrgba
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
