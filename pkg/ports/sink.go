package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveGeometryJSON saves the resolved canvas geometry as JSON.
	SaveGeometryJSON(pass string, data []byte) error

	// SaveMetaJSON saves the extracted photo metadata as JSON.
	SaveMetaJSON(data []byte) error

	// SaveRender saves a rendered frame for the named pass ("preview",
	// "export").
	SaveRender(pass string, img image.Image) error

	// SaveThumbnail saves a small thumbnail of the source photo.
	SaveThumbnail(img image.Image) error
}
