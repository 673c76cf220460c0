// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
)

// WAV builds a canonical 44-byte-header PCM file. Samples are written at
// the given bit depth (8, 16 or 32); values are truncated or widened as
// needed so headers can lie about depth for rejection tests.
func WAV(sampleRate, channels, bitsPerSample int, samples []int16) []byte {
	buf := new(bytes.Buffer)

	bytesPerSample := bitsPerSample / 8
	dataSize := uint32(len(samples) * bytesPerSample)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*channels*bytesPerSample))
	binary.Write(buf, binary.LittleEndian, uint16(channels*bytesPerSample))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)

	for _, s := range samples {
		switch bitsPerSample {
		case 8:
			buf.WriteByte(byte(int(s>>8) + 128))
		case 32:
			binary.Write(buf, binary.LittleEndian, int32(s)<<16)
		default:
			binary.Write(buf, binary.LittleEndian, s)
		}
	}

	return buf.Bytes()
}

// Ramp returns n samples counting up from start by step.
func Ramp(n int, start, step int16) []int16 {
	out := make([]int16, n)
	v := start
	for i := range out {
		out[i] = v
		v += step
	}
	return out
}
