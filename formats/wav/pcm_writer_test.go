// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/ik5/yaudio/internal/audiotest"
)

func TestPCMWriter_FinalizesHeader(t *testing.T) {
	t.Parallel()

	out := &audiotest.SeekBuffer{}

	w, err := NewPCMWriter(out, 44100)
	if err != nil {
		t.Fatalf("NewPCMWriter() error = %v", err)
	}

	if len(out.Bytes()) != HeaderSize {
		t.Fatalf("placeholder size = %d, want %d", len(out.Bytes()), HeaderSize)
	}

	blocks := [][]int16{{1, 2, 3}, {}, {-4, -5}}
	for _, b := range blocks {
		if err := w.Write(b); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	if w.Samples() != 5 {
		t.Errorf("Samples() = %d, want 5", w.Samples())
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data := out.Bytes()
	if len(data) != HeaderSize+10 {
		t.Fatalf("file size = %d, want %d", len(data), HeaderSize+10)
	}

	h, err := ReadHeader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadHeader() error = %v", err)
	}
	if h.DataSize != 10 {
		t.Errorf("DataSize = %d, want 10", h.DataSize)
	}
	if h.RIFFSize != 46 {
		t.Errorf("RIFFSize = %d, want 46", h.RIFFSize)
	}
	if h.SampleRate != 44100 || h.Channels != 1 || !h.IsPCM16() {
		t.Errorf("header = %+v, want 44100 Hz mono PCM16", h)
	}

	if got := int16(binary.LittleEndian.Uint16(data[HeaderSize+6:])); got != -4 {
		t.Errorf("fourth sample = %d, want -4", got)
	}

	// stream is left at the end so callers can keep appending trailers
	if pos, _ := out.Seek(0, 1); pos != int64(len(data)) {
		t.Errorf("position after Close = %d, want %d", pos, len(data))
	}
}

func TestPCMWriter_EmptyRecording(t *testing.T) {
	t.Parallel()

	out := &audiotest.SeekBuffer{}
	w, err := NewPCMWriter(out, 16000)
	if err != nil {
		t.Fatalf("NewPCMWriter() error = %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	h, err := ReadHeader(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatalf("ReadHeader() error = %v", err)
	}
	if h.DataSize != 0 || h.RIFFSize != 36 {
		t.Errorf("sizes = (%d, %d), want (0, 36)", h.DataSize, h.RIFFSize)
	}
}

func TestPCMWriter_UseAfterClose(t *testing.T) {
	t.Parallel()

	w, _ := NewPCMWriter(&audiotest.SeekBuffer{}, 16000)
	_ = w.Close()

	if err := w.Write([]int16{1}); !errors.Is(err, ErrWriterClosed) {
		t.Errorf("Write() error = %v, want %v", err, ErrWriterClosed)
	}
	if err := w.Close(); !errors.Is(err, ErrWriterClosed) {
		t.Errorf("second Close() error = %v, want %v", err, ErrWriterClosed)
	}
}

type failingWriter struct {
	audiotest.SeekBuffer
	failAfter int
}

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.failAfter <= 0 {
		return 0, errors.New("disk full")
	}
	f.failAfter--
	return f.SeekBuffer.Write(p)
}

func TestPCMWriter_WriteError(t *testing.T) {
	t.Parallel()

	fw := &failingWriter{failAfter: 1}
	w, err := NewPCMWriter(fw, 16000)
	if err != nil {
		t.Fatalf("NewPCMWriter() error = %v", err)
	}

	if err := w.Write([]int16{1, 2}); err == nil {
		t.Error("Write() error = nil, want failure")
	}
	if w.DataSize() != 0 {
		t.Errorf("DataSize() = %d, want 0", w.DataSize())
	}
}

func TestWriteWAV16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		samples []int16
	}{
		{"empty", nil},
		{"single", []int16{12345}},
		{"spans chunks", audiotest.Ramp(20000, 0, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := new(bytes.Buffer)
			if err := WriteWAV16(buf, 16000, tt.samples); err != nil {
				t.Fatalf("WriteWAV16() error = %v", err)
			}

			want := audiotest.WAV(16000, 1, 16, tt.samples)
			if !bytes.Equal(buf.Bytes(), want) {
				t.Errorf("WriteWAV16() produced %d bytes differing from the %d byte fixture", buf.Len(), len(want))
			}
		})
	}
}

func TestEncode_Decodes(t *testing.T) {
	t.Parallel()

	out := &audiotest.SeekBuffer{}
	samples := []int16{0, 8192, -8192, 16384}

	if err := Encode(out, 16000, samples); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	h, err := ReadHeader(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatalf("ReadHeader() error = %v", err)
	}
	if h.DataSize != 8 || h.SampleRate != 16000 {
		t.Errorf("header = %+v, want 8 data bytes at 16000 Hz", h)
	}

	src, err := Decoder{}.Decode(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf := make([]float32, 8)
	n, _ := src.ReadSamples(buf)
	if n != 4 || buf[1] != 0.25 || buf[3] != 0.5 {
		t.Errorf("decoded %v (n=%d), want [0 0.25 -0.25 0.5]", buf[:n], n)
	}
}
