// SPDX-License-Identifier: EPL-2.0

package hostaudio

import "encoding/binary"

// putSamples encodes src as signed 16-bit little-endian into dst, which
// must hold 2*len(src) bytes.
func putSamples(dst []byte, src []int16) {
	for i, v := range src {
		binary.LittleEndian.PutUint16(dst[2*i:], uint16(v))
	}
}
