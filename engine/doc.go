// SPDX-License-Identifier: EPL-2.0

// Package engine is the board's audio engine: the speaker pipeline fed from
// notation or sound files, and the microphone recorder.
//
// # Pipeline
//
// A background worker is the only producer of a frame ring buffer
// (package ringbuf). It renders queued notation with package synth or
// streams the current sound file, and sleeps whenever the ring is full. A
// pump goroutine waits for the transmitter to finish a DMA buffer and moves
// the oldest frame across; when the ring is empty the hardware plays
// silence.
//
//	notation ─▶ parser ─▶ tone ─┐
//	                            ├─▶ ring ─▶ pump ─▶ i2s.Transmitter
//	card ─▶ header / decoder ───┘
//
//	i2s.Receiver ─▶ 32→16 bit, DC removal, gain ─▶ wav.PCMWriter ─▶ card
//
// # Modes
//
// The speaker is Idle, PlayingNotes or PlayingFile. Starting notes or a
// file replaces whatever else plays; notes added while notes play queue up
// behind them. StopAudio returns to Idle. Recording is independent of the
// speaker, and starting a second recording fails.
//
// # Files
//
// WAV files must already match the speaker format: mono, 16-bit, at
// Config.SampleRate, with the canonical 44-byte header. MP3, Ogg Vorbis and
// AIFF files are decoded, mixed to mono and resampled. ConvertSoundFile
// rewrites any of them as a WAV that streams without decoding, and
// ApplyLowPass writes a filtered copy.
//
// # Errors
//
// Every call returns an error instead of the board's boolean status.
// Compare with errors.Is against the sentinels in this package and
// notation.ErrQueueFull. Malformed notation is not returned to the caller:
// the pending queue is discarded when the parser reaches it and a warning
// is logged.
package engine
