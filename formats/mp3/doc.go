// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit little-endian stereo, so the returned
// source reports two channels even for mono files. The file streamer mixes
// it down and resamples it to the speaker rate:
//
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    // errors.Is(err, mp3.ErrNotMP3File)
//	}
//	mono := audio.NewMonoMixer(src)
//	out := audio.NewResampler(mono, 16000)
//
// Closing the source closes the reader it was built from when that reader
// is an io.Closer.
package mp3
