// SPDX-License-Identifier: EPL-2.0

package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func exercise(t *testing.T, fsys FS) {
	t.Helper()

	if fsys.Exists("song.wav") {
		t.Fatal("Exists() on empty card = true")
	}
	if _, err := fsys.Open("song.wav"); !errors.Is(err, ErrNotExist) {
		t.Fatalf("Open() missing error = %v, want %v", err, ErrNotExist)
	}

	w, err := fsys.Create("song.wav")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := w.Write([]byte("xxxxDATA")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := w.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	if _, err := w.Write([]byte("RIFF")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if pos, _ := w.Seek(0, io.SeekEnd); pos != 8 {
		t.Errorf("Seek(end) = %d, want 8", pos)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if !fsys.Exists("song.wav") {
		t.Fatal("Exists() after Close = false")
	}

	r, err := fsys.Open("/song.wav")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(data) != "RIFFDATA" {
		t.Errorf("content = %q, want %q", data, "RIFFDATA")
	}
	_ = r.Close()

	// create truncates
	w, _ = fsys.Create("song.wav")
	_ = w.Close()
	r, _ = fsys.Open("song.wav")
	if data, _ := io.ReadAll(r); len(data) != 0 {
		t.Errorf("content after truncate = %q, want empty", data)
	}
	_ = r.Close()
}

func TestMemFS(t *testing.T) {
	t.Parallel()

	exercise(t, NewMemFS())
}

func TestDirFS(t *testing.T) {
	t.Parallel()

	d, err := NewDirFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirFS() error = %v", err)
	}
	exercise(t, d)
}

func TestDirFS_StaysInsideRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	d, _ := NewDirFS(root)

	f, err := d.Create("../../escape.txt")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_ = f.Close()

	if _, err := os.Stat(filepath.Join(root, "escape.txt")); err != nil {
		t.Errorf("file not created inside root: %v", err)
	}
}

func TestNewDirFS_Missing(t *testing.T) {
	t.Parallel()

	if _, err := NewDirFS(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("NewDirFS() on missing dir error = nil")
	}
}

func TestMemFS_ClosedAndReadOnly(t *testing.T) {
	t.Parallel()

	m := NewMemFS()
	m.WriteFile("a.wav", []byte("abc"))

	r, _ := m.Open("a.wav")
	if _, err := r.Write([]byte("x")); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Write() on read handle error = %v, want %v", err, ErrReadOnly)
	}

	_ = r.Close()
	if _, err := r.Read(make([]byte, 1)); !errors.Is(err, ErrClosed) {
		t.Errorf("Read() after Close error = %v, want %v", err, ErrClosed)
	}
	if err := r.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close() error = %v, want %v", err, ErrClosed)
	}

	if got := m.Names(); len(got) != 1 || got[0] != "/a.wav" {
		t.Errorf("Names() = %v, want [/a.wav]", got)
	}
}

func TestMemFS_Concurrent(t *testing.T) {
	t.Parallel()

	m := NewMemFS()
	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			name := string(rune('a'+i)) + ".raw"
			f, _ := m.Create(name)
			for range 100 {
				_, _ = f.Write([]byte{byte(i)})
			}
			_ = f.Close()
		}(i)
	}
	wg.Wait()

	for i := range 8 {
		data, err := m.ReadFile(string(rune('a'+i)) + ".raw")
		if err != nil || len(data) != 100 {
			t.Errorf("file %d: len %d, err %v", i, len(data), err)
		}
	}
}
