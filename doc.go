// SPDX-License-Identifier: EPL-2.0

// Package yaudio is the audio subsystem of a small ESP32-class teaching
// board, runnable on a desktop through simulated or host-backed I2S
// peripherals.
//
// The board plays one thing at a time through a 16-bit mono speaker
// pipeline: either tones parsed from a compact music notation or a sound
// file streamed from the SD card. Independently it can record the PDM
// microphone into a 16-bit WAV file.
//
// # Packages
//
//   - notation: the music notation parser and the pending notation buffer
//   - synth: sine tone rendering with fades and loudness compensation
//   - ringbuf: the frame ring buffer between the producer and the transmit pump
//   - i2s: speaker and microphone contracts plus simulated hardware
//   - storage: the SD card file system contract, on a directory or in memory
//   - engine: the arbiter owning playback, file streaming and recording
//   - board: the Arduino-style facade returning booleans
//   - audio, formats/...: decoders for WAV, MP3, Ogg Vorbis and AIFF
//   - midiexport: notation to Standard MIDI File
//
// # Notation
//
// A score is a string of letters A to G (R is a rest) with modifiers:
//
//	C D E F G A B R   notes and rest
//	#  +  -           sharp, sharp, flat
//	>  <              octave up, octave down for this note
//	1 to 2000         length divisor, a quarter by default
//	.                 dotted
//	O4 to O7          octave
//	T40 to T240       tempo in BPM
//	V1 to V10         volume
//	X440M250          absolute frequency and milliseconds
//	!                 reset tempo, octave and volume
//
// # Offline rendering
//
// RenderNotes turns a score into PCM without any hardware:
//
//	pcm, err := yaudio.RenderNotes("T180 O5 C D E F G", 16000)
//
// RenderNotesToWAV writes the same samples as a WAV file.
package yaudio
