package mocks

import (
	"image"
)

// DebugSink is a recording mock implementation of ports.DebugSink.
type DebugSink struct {
	EnabledValue bool

	// Recorded calls for verification
	GeometryJSON map[string][]byte
	MetaJSON     []byte
	Renders      map[string]image.Image
	Thumbnails   []image.Image
}

// NewDebugSink creates an enabled recording sink.
func NewDebugSink() *DebugSink {
	return &DebugSink{
		EnabledValue: true,
		GeometryJSON: map[string][]byte{},
		Renders:      map[string]image.Image{},
	}
}

func (m *DebugSink) Enabled() bool {
	return m.EnabledValue
}

func (m *DebugSink) SaveGeometryJSON(pass string, data []byte) error {
	if m.GeometryJSON == nil {
		m.GeometryJSON = map[string][]byte{}
	}
	m.GeometryJSON[pass] = data
	return nil
}

func (m *DebugSink) SaveMetaJSON(data []byte) error {
	m.MetaJSON = data
	return nil
}

func (m *DebugSink) SaveRender(pass string, img image.Image) error {
	if m.Renders == nil {
		m.Renders = map[string]image.Image{}
	}
	m.Renders[pass] = img
	return nil
}

func (m *DebugSink) SaveThumbnail(img image.Image) error {
	m.Thumbnails = append(m.Thumbnails, img)
	return nil
}
