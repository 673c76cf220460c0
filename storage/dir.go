// SPDX-License-Identifier: EPL-2.0

package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DirFS serves a directory as the card, the way the SD card is mounted at
// its root on the board.
type DirFS struct {
	root string
}

// NewDirFS fails when root is not a directory, as mounting fails without a
// card.
func NewDirFS(root string) (*DirFS, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("mounting %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("mounting %s: not a directory", root)
	}
	return &DirFS{root: root}, nil
}

// path keeps name inside the root.
func (d *DirFS) path(name string) string {
	clean := filepath.Clean("/" + strings.TrimSpace(name))
	return filepath.Join(d.root, filepath.FromSlash(clean))
}

func (d *DirFS) Open(name string) (File, error) {
	f, err := os.Open(d.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return f, nil
}

func (d *DirFS) Create(name string) (File, error) {
	p := d.path(name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	f, err := os.OpenFile(p, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return f, nil
}

func (d *DirFS) Exists(name string) bool {
	info, err := os.Stat(d.path(name))
	return err == nil && !info.IsDir()
}
