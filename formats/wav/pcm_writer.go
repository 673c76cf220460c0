// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// PCMWriter streams 16-bit mono PCM into a WAV file whose length is not
// known up front. A placeholder header is written immediately and patched
// with the final sizes on Close.
type PCMWriter struct {
	ws         io.WriteSeeker
	sampleRate int
	dataSize   uint32
	buf        []byte
	closed     bool
}

// NewPCMWriter writes a zero-length header to ws and returns a writer
// positioned at the start of the data chunk.
func NewPCMWriter(ws io.WriteSeeker, sampleRate int) (*PCMWriter, error) {
	h := NewHeader(sampleRate, 1, 16, 0)
	if _, err := ws.Write(h.Bytes()); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &PCMWriter{
		ws:         ws,
		sampleRate: sampleRate,
	}, nil
}

// Write appends samples to the data chunk.
func (w *PCMWriter) Write(samples []int16) error {
	if w.closed {
		return ErrWriterClosed
	}
	if len(samples) == 0 {
		return nil
	}

	if uint64(w.dataSize)+uint64(len(samples))*2 > math.MaxUint32-36 {
		return fmt.Errorf("%w: data chunk would exceed 4GiB", ErrUnsupportedWavLayout)
	}

	if cap(w.buf) < len(samples)*2 {
		w.buf = make([]byte, len(samples)*2)
	}
	w.buf = w.buf[:len(samples)*2]

	for i, s := range samples {
		binary.LittleEndian.PutUint16(w.buf[2*i:], uint16(s))
	}

	n, err := w.ws.Write(w.buf)
	w.dataSize += uint32(n)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// DataSize is the number of sample bytes written so far.
func (w *PCMWriter) DataSize() uint32 { return w.dataSize }

// Samples is the number of samples written so far.
func (w *PCMWriter) Samples() int { return int(w.dataSize / 2) }

// Close rewrites the header with the final sizes and leaves the stream
// positioned at its end. It does not close the underlying writer.
func (w *PCMWriter) Close() error {
	if w.closed {
		return ErrWriterClosed
	}
	w.closed = true

	if _, err := w.ws.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}

	h := NewHeader(w.sampleRate, 1, 16, w.dataSize)
	if _, err := w.ws.Write(h.Bytes()); err != nil {
		return fmt.Errorf("%w", err)
	}

	if _, err := w.ws.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
