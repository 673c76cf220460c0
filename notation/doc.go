// SPDX-License-Identifier: EPL-2.0

// Package notation parses the board's music mini-language.
//
// A score is plain ASCII. Letters are case-insensitive and whitespace is
// ignored:
//
//	A-G      note at the current octave (A=440 Hz at octave 4)
//	R        rest
//	On       octave, n in 4..7 (always consumes two characters)
//	Tn       tempo in BPM, 40..240
//	Vn       volume, 1..10
//	!        reset tempo, octave and volume to 120, 5, 5
//	Xf[Mm]   absolute frequency f Hz for m milliseconds (a quarter note
//	         when M is absent); f outside 20..20000 plays silence
//
// Out-of-range control values are ignored. A note or rest may be followed by
// modifiers in any order:
//
//	n      duration divisor, 1..2000: C8 is an eighth note
//	.      dotted, repeatable: each dot adds half of the previous addition
//	> <    octave up or down
//	# + -  sharp or flat
//
// A quarter note lasts 60/tempo seconds. Durations are truncated to whole
// milliseconds, frequencies are rounded to whole Hertz when played.
//
// Any other character is a syntax error. Queue discards everything pending
// when it meets one, so a malformed score never plays past the mistake.
//
//	st := notation.DefaultState()
//	events, err := notation.All("T120 O5 C4 R4 C4", &st)
//	// 523 Hz 500 ms, rest 500 ms, 523 Hz 500 ms
package notation
