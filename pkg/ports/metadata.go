package ports

import (
	"time"
)

// PhotoMeta holds the photo metadata the caption builder consumes. Missing
// fields stay at their zero values.
type PhotoMeta struct {
	CameraMake   string
	CameraModel  string
	FNumber      float64
	ExposureTime string // formatted, e.g. "1/250"
	ISO          int
	FocalLength  float64 // millimeters
	TakenAt      time.Time
}

// MetadataReader extracts photo metadata from encoded image bytes.
type MetadataReader interface {
	// ReadMeta parses metadata from the image data. Images without metadata
	// yield an empty PhotoMeta and no error; only malformed containers fail.
	ReadMeta(data []byte) (PhotoMeta, error)
}
