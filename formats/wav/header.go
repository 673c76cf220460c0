// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// HeaderSize is the size of the canonical RIFF/WAVE header: a 12 byte RIFF
// descriptor, a 24 byte fmt chunk and the 8 byte data chunk header.
const HeaderSize = 44

const formatPCM = 1

// Header is the canonical 44-byte WAV header.
type Header struct {
	RIFFSize      uint32
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32
}

// NewHeader describes a PCM stream holding dataSize bytes of samples.
func NewHeader(sampleRate, channels, bitsPerSample int, dataSize uint32) Header {
	blockAlign := uint16(channels * bitsPerSample / 8)

	return Header{
		RIFFSize:      36 + dataSize,
		AudioFormat:   formatPCM,
		Channels:      uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * uint32(blockAlign),
		BlockAlign:    blockAlign,
		BitsPerSample: uint16(bitsPerSample),
		DataSize:      dataSize,
	}
}

// ReadHeader reads and parses exactly HeaderSize bytes from r.
//
// Only the canonical layout is accepted: "fmt " must start at byte 12 and
// "data" at byte 36. Files with extra chunks are rejected with
// ErrUnsupportedWavChunks.
func ReadHeader(r io.Reader) (Header, error) {
	var raw [HeaderSize]byte

	if _, err := io.ReadFull(r, raw[:]); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return Header{}, ErrNotWavFile
		}
		return Header{}, fmt.Errorf("%w", err)
	}

	if !bytes.Equal(raw[0:4], []byte("RIFF")) || !bytes.Equal(raw[8:12], []byte("WAVE")) {
		return Header{}, ErrNotWavFile
	}

	if !bytes.Equal(raw[12:16], []byte("fmt ")) {
		return Header{}, ErrUnsupportedWavLayout
	}

	if !bytes.Equal(raw[36:40], []byte("data")) {
		return Header{}, ErrUnsupportedWavChunks
	}

	le := binary.LittleEndian
	return Header{
		RIFFSize:      le.Uint32(raw[4:8]),
		AudioFormat:   le.Uint16(raw[20:22]),
		Channels:      le.Uint16(raw[22:24]),
		SampleRate:    le.Uint32(raw[24:28]),
		ByteRate:      le.Uint32(raw[28:32]),
		BlockAlign:    le.Uint16(raw[32:34]),
		BitsPerSample: le.Uint16(raw[34:36]),
		DataSize:      le.Uint32(raw[40:44]),
	}, nil
}

// IsPCM16 reports whether the header describes 16-bit integer PCM.
func (h Header) IsPCM16() bool {
	return h.AudioFormat == formatPCM && h.BitsPerSample == 16
}

// Bytes encodes h in its 44-byte wire form.
func (h Header) Bytes() []byte {
	out := make([]byte, HeaderSize)
	le := binary.LittleEndian

	copy(out[0:4], "RIFF")
	le.PutUint32(out[4:8], h.RIFFSize)
	copy(out[8:12], "WAVE")

	copy(out[12:16], "fmt ")
	le.PutUint32(out[16:20], 16)
	le.PutUint16(out[20:22], h.AudioFormat)
	le.PutUint16(out[22:24], h.Channels)
	le.PutUint32(out[24:28], h.SampleRate)
	le.PutUint32(out[28:32], h.ByteRate)
	le.PutUint16(out[32:34], h.BlockAlign)
	le.PutUint16(out[34:36], h.BitsPerSample)

	copy(out[36:40], "data")
	le.PutUint32(out[40:44], h.DataSize)

	return out
}
