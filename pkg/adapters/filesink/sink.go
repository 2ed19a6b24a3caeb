// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/user/framelens/pkg/ports"
)

// thumbnailWidth is the long side of saved source thumbnails.
const thumbnailWidth = 320

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new Sink rooted at baseDir.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveGeometryJSON saves the resolved canvas geometry for a render pass.
func (s *Sink) SaveGeometryJSON(pass string, data []byte) error {
	path := filepath.Join(s.baseDir, fmt.Sprintf("geometry-%s.json", pass))
	return s.fs.WriteFile(path, data)
}

// SaveMetaJSON saves the extracted photo metadata.
func (s *Sink) SaveMetaJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "meta.json")
	return s.fs.WriteFile(path, data)
}

// SaveRender saves a rendered frame for the named pass.
func (s *Sink) SaveRender(pass string, img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode %s render: %w", pass, err)
	}
	path := filepath.Join(s.baseDir, fmt.Sprintf("render-%s.png", pass))
	return s.fs.WriteFile(path, data)
}

// SaveThumbnail saves a small thumbnail of the source photo.
func (s *Sink) SaveThumbnail(img image.Image) error {
	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Box)
	data, err := s.renderer.EncodeImage(thumb, ports.FormatJPEG, 80)
	if err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	path := filepath.Join(s.baseDir, "source-thumb.jpg")
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
