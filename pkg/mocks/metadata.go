// Package mocks provides mock implementations for testing.
package mocks

import (
	"github.com/user/framelens/pkg/ports"
)

// MetadataReader is a mock implementation of ports.MetadataReader.
type MetadataReader struct {
	ReadMetaFunc func(data []byte) (ports.PhotoMeta, error)
}

func (m *MetadataReader) ReadMeta(data []byte) (ports.PhotoMeta, error) {
	if m.ReadMetaFunc != nil {
		return m.ReadMetaFunc(data)
	}
	return ports.PhotoMeta{}, nil
}

// Ensure MetadataReader implements ports.MetadataReader
var _ ports.MetadataReader = (*MetadataReader)(nil)
