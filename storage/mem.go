// SPDX-License-Identifier: EPL-2.0

package storage

import (
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"sync"
)

// MemFS is a card held in memory. It is safe for concurrent use; a file
// keeps existing after its handles are closed.
type MemFS struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func memKey(name string) string {
	return path.Clean("/" + name)
}

// WriteFile stores data under name, replacing any previous content.
func (m *MemFS) WriteFile(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[memKey(name)] = append([]byte(nil), data...)
}

// ReadFile returns a copy of the content of name.
func (m *MemFS) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.files[memKey(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, name)
	}
	return append([]byte(nil), data...), nil
}

// Names lists the stored files in order.
func (m *MemFS) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.files))
	for k := range m.files {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (m *MemFS) Open(name string) (File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := memKey(name)
	if _, ok := m.files[key]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, name)
	}
	return &memFile{fs: m, key: key}, nil
}

func (m *MemFS) Create(name string) (File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := memKey(name)
	m.files[key] = nil
	return &memFile{fs: m, key: key, writable: true}, nil
}

func (m *MemFS) Exists(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.files[memKey(name)]
	return ok
}

type memFile struct {
	fs       *MemFS
	key      string
	pos      int64
	writable bool
	closed   bool
}

func (f *memFile) Read(p []byte) (int, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	if f.closed {
		return 0, ErrClosed
	}

	data := f.fs.files[f.key]
	if f.pos >= int64(len(data)) {
		return 0, io.EOF
	}

	n := copy(p, data[f.pos:])
	f.pos += int64(n)
	return n, nil
}

func (f *memFile) Write(p []byte) (int, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	if f.closed {
		return 0, ErrClosed
	}
	if !f.writable {
		return 0, ErrReadOnly
	}

	data := f.fs.files[f.key]
	end := f.pos + int64(len(p))
	if end > int64(len(data)) {
		grown := make([]byte, end)
		copy(grown, data)
		data = grown
	}
	copy(data[f.pos:], p)

	f.fs.files[f.key] = data
	f.pos = end
	return len(p), nil
}

func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	if f.closed {
		return 0, ErrClosed
	}

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = f.pos + offset
	case io.SeekEnd:
		abs = int64(len(f.fs.files[f.key])) + offset
	default:
		return 0, fmt.Errorf("seek %s: invalid whence %d", f.key, whence)
	}

	if abs < 0 {
		return 0, errors.New("seek " + f.key + ": negative position")
	}

	f.pos = abs
	return abs, nil
}

func (f *memFile) Close() error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	f.closed = true
	return nil
}
