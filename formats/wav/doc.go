// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files.
//
// Three pieces cover the board's needs:
//
//   - Header parses and encodes the canonical 44-byte header. The file
//     streamer uses ReadHeader to validate a WAV before pushing its raw data
//     chunk to the speaker, so only the canonical layout is accepted there.
//   - Decoder turns any integer PCM WAV (8, 16, 24 or 32 bits, any channel
//     count) into an audio.Source. It is built on github.com/go-audio/wav and
//     walks arbitrary chunk layouts.
//   - PCMWriter streams 16-bit mono samples into a file of unknown final
//     length. It writes a zero-length header first and seeks back on Close to
//     store the data size and RIFF size (data size + 36).
//
// # Decoding
//
//	f, _ := os.Open("clip.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    // ErrNotWavFile, ErrUnsupportedBitDepth, ...
//	}
//	defer src.Close()
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// # Recording
//
//	f, _ := os.Create("take.wav")
//	w, _ := wav.NewPCMWriter(f, 44100)
//	_ = w.Write(block)
//	_ = w.Close() // patches the header
//	_ = f.Close()
//
// # Whole buffers
//
// WriteWAV16 writes a complete file to any io.Writer in one pass since the
// sizes are known. Encode does the same through the go-audio encoder when
// the destination can seek.
//
// # Errors
//
//   - ErrNotWavFile: missing RIFF/WAVE markers or a short header
//   - ErrUnsupportedWavLayout: fmt chunk not where expected, or not PCM
//   - ErrUnsupportedWavChunks: data chunk not at byte 36 or not found
//   - ErrOnlyPCM16bitSupported: the streamer got a non 16-bit file
//   - ErrUnsupportedBitDepth: the decoder got a depth it cannot scale
//   - ErrWriterClosed: PCMWriter used after Close
package wav
