// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"io"

	"github.com/ik5/yaudio/audio"
	"github.com/ik5/yaudio/storage"
)

// ApplyLowPass filters the sound file in through a low-pass filter at
// cutoff Hz and writes the result to out as a 16-bit mono WAV at the input
// rate.
func (e *Engine) ApplyLowPass(in, out string, cutoff float64) error {
	if e.fs == nil {
		return ErrStorageUnavailable
	}

	err := FilterFile(e.fs, e.registry, in, out, cutoff)
	if err != nil {
		e.log.Warn("low-pass failed", "in", in, "out", out, "err", err)
		return err
	}

	e.log.Info("low-pass written", "in", in, "out", out, "cutoff", cutoff)
	return nil
}

// FilterFile is ApplyLowPass on any card and decoder set.
func FilterFile(fs storage.FS, reg *audio.Registry, in, out string, cutoff float64) error {
	if in == out {
		return fmt.Errorf("low-pass %s: input and output are the same file", in)
	}

	src, err := OpenSource(fs, reg, in)
	if err != nil {
		return err
	}
	defer src.Close()

	if src.Channels() > 1 {
		src = audio.NewMonoMixer(src)
	}

	lp, err := audio.NewLowPass(src, cutoff)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return writeWAV(fs, out, lp)
}

// OpenSource opens path on fs and decodes it with whichever registered
// decoder its leading bytes select.
func OpenSource(fs storage.FS, reg *audio.Registry, path string) (audio.Source, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	magic := make([]byte, audio.MagicLen)
	if _, err := io.ReadFull(f, magic); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w: %w", path, ErrUnsupportedFormat, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w", err)
	}

	_, dec, err := reg.Lookup(magic)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w: %w", path, ErrUnsupportedFormat, err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w: %w", path, ErrUnsupportedFormat, err)
	}

	return src, nil
}
