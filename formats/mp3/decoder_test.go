// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

type fakeMP3 struct {
	rate    int
	samples []int16
	err     error
}

func (f *fakeMP3) SampleRate() int { return f.rate }

func (f *fakeMP3) Read(buf []byte) (int, error) {
	if len(f.samples) == 0 {
		if f.err != nil {
			return 0, f.err
		}
		return 0, io.EOF
	}

	n := min(len(buf)/2, len(f.samples))
	for i := range n {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(f.samples[i]))
	}
	f.samples = f.samples[n:]

	return n * 2, nil
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("This is not MP3 data")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotMP3File) {
				t.Errorf("Decode() error = %v, want %v", err, ErrNotMP3File)
			}
		})
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	s := &source{
		dec:        &fakeMP3{rate: 44100, samples: []int16{0, 16384, -16384, -32768}},
		sampleRate: 44100,
	}

	if s.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", s.Channels())
	}

	buf := make([]float32, 8)
	n, err := s.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}

	want := []float32{0, 0.5, -0.5, -1}
	if n != len(want) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(want))
	}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("sample[%d] = %v, want %v", i, buf[i], want[i])
		}
	}

	n, err = s.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() at end = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	s := &source{dec: &fakeMP3{err: io.ErrUnexpectedEOF}}

	_, err := s.ReadSamples(make([]float32, 4))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

type closeCounter struct{ n int }

func (c *closeCounter) Close() error {
	c.n++
	return nil
}

func TestSource_Close(t *testing.T) {
	t.Parallel()

	c := &closeCounter{}
	s := &source{dec: &fakeMP3{}, closer: c}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if c.n != 1 {
		t.Errorf("underlying Close called %d times, want 1", c.n)
	}

	if err := (&source{dec: &fakeMP3{}}).Close(); err != nil {
		t.Errorf("Close() without closer error = %v, want nil", err)
	}
}
