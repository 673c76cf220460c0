// SPDX-License-Identifier: EPL-2.0

package storage

import (
	"errors"
	"io"
)

var (
	ErrNotExist = errors.New("file does not exist")
	ErrClosed   = errors.New("file already closed")
	ErrReadOnly = errors.New("file opened read-only")
)

// File is an open file on the card.
type File interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer
}

// FS is the card's filesystem. Paths are plain slash-separated strings
// relative to the card root.
type FS interface {
	// Open opens name for reading.
	Open(name string) (File, error)
	// Create opens name for writing, truncating it or creating it.
	Create(name string) (File, error)
	Exists(name string) bool
}
