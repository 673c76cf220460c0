// SPDX-License-Identifier: EPL-2.0

// Package audio holds the streaming primitives the board's file player and
// recorder are built from.
//
// # Sources
//
// Every decoder and processor is a Source of normalized float32 samples in
// [-1, 1], interleaved by channel:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// ReadSamples returns io.EOF once the stream is drained. Closing a
// processor closes the source it wraps.
//
// # Processing
//
// Sources chain:
//
//	mono := audio.NewMonoMixer(src)
//	res := audio.NewResampler(mono, 16000)
//	lp, err := audio.NewLowPass(res, 1000)
//
// The Resampler uses cubic interpolation. The LowPass is a one-pole filter
// whose cutoff must stay below Nyquist.
//
// # Picking a decoder
//
// Sniff maps the leading bytes of a file to a container key:
//
//	RIFF            wav
//	0xFF, 0xFE, ID3 mp3
//	OggS            ogg
//	FORM            aiff
//
// A Registry maps keys to decoders, and Lookup does both steps:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	format, dec, err := reg.Lookup(magic)
package audio
