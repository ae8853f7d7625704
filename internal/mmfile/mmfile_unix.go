//go:build unix

// Package mmfile maps record files into memory for decoding.
package mmfile

import (
	"errors"
	"math"
	"os"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/marckit/pkg/types"
)

// Map maps the file at path read-only and returns its contents with a
// cleanup func that unmaps it. The slice must not be used after cleanup.
func Map(path string) ([]byte, func() error, error) {
	f, err := open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close() // the mapping outlives the descriptor

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	if size > math.MaxInt {
		return nil, nil, types.Errorf(types.ErrKindUnsupported, "mmfile: %s too large to map (%d bytes)", path, size)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	// Records are read front to back.
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)

	cleanup := func() error {
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Double unmap is a no-op for callers.
			return nil
		}
		return err
	}
	return data, cleanup, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, types.Wrap(types.ErrKindNotFound, err, "mmfile: open %s", path)
	}
	return f, err
}
