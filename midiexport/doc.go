// SPDX-License-Identifier: EPL-2.0

// Package midiexport writes notation as a Standard MIDI File so a score can
// be opened in a sequencer. Each event becomes a note on and note off on
// one channel; rests advance time. Frequencies snap to the nearest MIDI
// key, which drops the detuning of X notes.
package midiexport
