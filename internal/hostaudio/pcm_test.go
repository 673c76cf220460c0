// SPDX-License-Identifier: EPL-2.0

package hostaudio

import (
	"bytes"
	"testing"
)

func TestPutSamples(t *testing.T) {
	t.Parallel()

	dst := make([]byte, 8)
	putSamples(dst, []int16{1, -1, 0x1234, -32768})

	want := []byte{0x01, 0x00, 0xFF, 0xFF, 0x34, 0x12, 0x00, 0x80}
	if !bytes.Equal(dst, want) {
		t.Errorf("putSamples() = % x, want % x", dst, want)
	}
}
