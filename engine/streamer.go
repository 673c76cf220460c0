// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ik5/yaudio/audio"
	"github.com/ik5/yaudio/formats/wav"
	"github.com/ik5/yaudio/storage"
	"github.com/ik5/yaudio/utils"
)

// pcmReader delivers the file as pipeline-format samples.
type pcmReader interface {
	read(dst []int16) (int, error)
	io.Closer
}

// fileStream is an open sound file. The worker owns pending and eof; mu
// only keeps Close from racing a read.
type fileStream struct {
	path   string
	format string

	mu     sync.Mutex
	r      pcmReader
	closed bool

	buf     []int16
	pending []int16
	eof     bool
}

// fill reads up to one frame into pending.
func (s *fileStream) fill() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.eof = true
		return nil
	}

	n, err := s.r.read(s.buf)
	s.pending = s.buf[:n]

	if err != nil {
		s.eof = true
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func (s *fileStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	return s.r.Close()
}

// open validates path and prepares it for streaming. Anything opened is
// closed again on failure.
func (e *Engine) open(path string) (*fileStream, error) {
	if e.fs == nil {
		return nil, ErrStorageUnavailable
	}

	f, err := e.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sound file: %w", err)
	}

	format, r, err := e.decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &fileStream{
		path:   path,
		format: format,
		r:      r,
		buf:    make([]int16, e.cfg.FrameSize),
	}, nil
}

func (e *Engine) decode(f storage.File) (string, pcmReader, error) {
	magic := make([]byte, audio.MagicLen)
	if _, err := io.ReadFull(f, magic); err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", nil, fmt.Errorf("%w", err)
	}

	format, ok := audio.Sniff(magic)
	if !ok {
		return "", nil, fmt.Errorf("%w: unknown container % x", ErrUnsupportedFormat, magic)
	}

	if format == audio.FormatWAV {
		r, err := e.openWAV(f)
		return format, r, err
	}

	dec, ok := e.registry.Get(format)
	if !ok {
		return "", nil, fmt.Errorf("%w: no %s decoder", ErrUnsupportedFormat, format)
	}

	src, err := dec.Decode(f)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	if src.Channels() > 1 {
		src = audio.NewMonoMixer(src)
	}
	if src.SampleRate() != e.cfg.SampleRate {
		src = audio.NewResampler(src, e.cfg.SampleRate)
	}

	return format, &decodedPCM{src: src}, nil
}

// openWAV accepts only files already in the pipeline format: mono,
// 16-bit, at the speaker rate.
func (e *Engine) openWAV(f storage.File) (pcmReader, error) {
	h, err := wav.ReadHeader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	switch {
	case h.Channels != 1:
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, h.Channels)
	case int(h.SampleRate) != e.cfg.SampleRate:
		return nil, fmt.Errorf("%w: %d Hz, want %d Hz", ErrUnsupportedFormat, h.SampleRate, e.cfg.SampleRate)
	case !h.IsPCM16():
		return nil, fmt.Errorf("%w: format %d with %d bits", ErrUnsupportedFormat, h.AudioFormat, h.BitsPerSample)
	}

	return &wavPCM{r: io.LimitReader(f, int64(h.DataSize)), c: f}, nil
}

// wavPCM reads raw little-endian samples following the header.
type wavPCM struct {
	r   io.Reader
	c   io.Closer
	raw []byte
}

func (w *wavPCM) read(dst []int16) (int, error) {
	need := len(dst) * 2
	if cap(w.raw) < need {
		w.raw = make([]byte, need)
	}

	n, err := io.ReadFull(w.r, w.raw[:need])
	samples := n / 2
	for i := range samples {
		dst[i] = int16(binary.LittleEndian.Uint16(w.raw[2*i:]))
	}

	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	return samples, err
}

func (w *wavPCM) Close() error { return w.c.Close() }

// decodedPCM converts a decoder's float samples.
type decodedPCM struct {
	src audio.Source
	buf []float32
}

func (d *decodedPCM) read(dst []int16) (int, error) {
	if cap(d.buf) < len(dst) {
		d.buf = make([]float32, len(dst))
	}

	n, err := d.src.ReadSamples(d.buf[:len(dst)])
	for i := range n {
		dst[i] = utils.Float32ToInt16(d.buf[i])
	}
	return n, err
}

func (d *decodedPCM) Close() error { return d.src.Close() }
