// Package exifreader provides a metadata reader implementation using goexif.
package exifreader

import (
	"bytes"
	"fmt"
	"io"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/user/framelens/pkg/ports"
)

// Reader implements ports.MetadataReader using goexif.
type Reader struct{}

// New creates a new Reader.
func New() *Reader {
	return &Reader{}
}

// ReadMeta extracts the caption-relevant EXIF fields. Photos without EXIF
// data return an empty PhotoMeta and no error; only I/O failures surface.
func (r *Reader) ReadMeta(data []byte) (ports.PhotoMeta, error) {
	meta := ports.PhotoMeta{}

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil && (x == nil || err == io.EOF || exif.IsCriticalError(err)) {
		// No usable EXIF block; treat as a photo without metadata.
		return meta, nil
	}

	if tag, err := x.Get(exif.Make); err == nil {
		meta.CameraMake, _ = tag.StringVal()
	}
	if tag, err := x.Get(exif.Model); err == nil {
		meta.CameraModel, _ = tag.StringVal()
	}
	if tag, err := x.Get(exif.FNumber); err == nil {
		if numer, denom, err := tag.Rat2(0); err == nil && denom != 0 {
			meta.FNumber = float64(numer) / float64(denom)
		}
	}
	if tag, err := x.Get(exif.ExposureTime); err == nil {
		if numer, denom, err := tag.Rat2(0); err == nil && numer != 0 && denom != 0 {
			meta.ExposureTime = formatExposure(numer, denom)
		}
	}
	if tag, err := x.Get(exif.ISOSpeedRatings); err == nil {
		if iso, err := tag.Int(0); err == nil {
			meta.ISO = iso
		}
	}
	if tag, err := x.Get(exif.FocalLength); err == nil {
		if numer, denom, err := tag.Rat2(0); err == nil && denom != 0 {
			meta.FocalLength = float64(numer) / float64(denom)
		}
	}
	if taken, err := x.DateTime(); err == nil {
		meta.TakenAt = taken
	}

	return meta, nil
}

// formatExposure renders an exposure time the way camera UIs do: fractions
// below a second, whole seconds above.
func formatExposure(numer, denom int64) string {
	if numer >= denom {
		if numer%denom == 0 {
			return fmt.Sprintf("%d", numer/denom)
		}
		return fmt.Sprintf("%.1f", float64(numer)/float64(denom))
	}
	if numer != 0 && denom%numer == 0 {
		return fmt.Sprintf("1/%d", denom/numer)
	}
	return fmt.Sprintf("%d/%d", numer, denom)
}

// Ensure Reader implements ports.MetadataReader
var _ ports.MetadataReader = (*Reader)(nil)
