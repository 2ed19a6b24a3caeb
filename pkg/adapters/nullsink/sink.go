// Package nullsink provides a no-op debug sink.
package nullsink

import (
	"image"

	"github.com/user/framelens/pkg/ports"
)

// Sink discards all debug output.
type Sink struct{}

// New creates a new null sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveGeometryJSON does nothing.
func (s *Sink) SaveGeometryJSON(pass string, data []byte) error {
	return nil
}

// SaveMetaJSON does nothing.
func (s *Sink) SaveMetaJSON(data []byte) error {
	return nil
}

// SaveRender does nothing.
func (s *Sink) SaveRender(pass string, img image.Image) error {
	return nil
}

// SaveThumbnail does nothing.
func (s *Sink) SaveThumbnail(img image.Image) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
