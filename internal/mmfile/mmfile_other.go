//go:build !unix

// Package mmfile maps record files into memory for decoding.
package mmfile

import (
	"errors"
	"os"

	"github.com/joshuapare/marckit/pkg/types"
)

// Map reads the whole file where mmap is unavailable.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, types.Wrap(types.ErrKindNotFound, err, "mmfile: open %s", path)
	}
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
