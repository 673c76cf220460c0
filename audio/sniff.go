// SPDX-License-Identifier: EPL-2.0

package audio

import "bytes"

// MagicLen is the number of leading bytes Sniff needs.
const MagicLen = 4

// Format keys understood by Sniff.
const (
	FormatWAV    = "wav"
	FormatMP3    = "mp3"
	FormatVorbis = "ogg"
	FormatAIFF   = "aiff"
)

// Sniff identifies a container from its first bytes.
//
// MP3 streams are recognized either by an ID3 tag or by a bare frame sync
// byte (0xFF, or 0xFE as some encoders emit).
func Sniff(magic []byte) (string, bool) {
	switch {
	case bytes.HasPrefix(magic, []byte("RIFF")):
		return FormatWAV, true
	case bytes.HasPrefix(magic, []byte("ID3")):
		return FormatMP3, true
	case len(magic) > 0 && (magic[0] == 0xFF || magic[0] == 0xFE):
		return FormatMP3, true
	case bytes.HasPrefix(magic, []byte("OggS")):
		return FormatVorbis, true
	case bytes.HasPrefix(magic, []byte("FORM")):
		return FormatAIFF, true
	}

	return "", false
}
