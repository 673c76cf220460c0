// SPDX-License-Identifier: EPL-2.0

package midiexport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/ik5/yaudio/notation"
)

// The file runs at a fixed 120 BPM with 500 ticks per quarter, so one tick
// is one millisecond and event durations carry over unchanged.
const (
	TicksPerQuarter = 500
	Tempo           = 120
)

var ErrNoEvents = errors.New("nothing to export")

// Options for an export.
type Options struct {
	// Channel is the MIDI channel, 0 to 15.
	Channel uint8
	// Name is written as the track name when set.
	Name string
}

// Key is the MIDI key nearest to freq, clamped to 0..127.
func Key(freq float64) uint8 {
	k := math.Round(69 + 12*math.Log2(freq/440))
	return uint8(min(max(k, 0), 127))
}

// Velocity maps a notation volume of 1..10 onto 1..127.
func Velocity(volume int) uint8 {
	v := volume * 127 / notation.MaxVolume
	return uint8(min(max(v, 1), 127))
}

// Encode writes events as a single-track Standard MIDI File. Rests and
// out-of-range frequencies become silence.
func Encode(w io.Writer, events []notation.Event, opts Options) error {
	if len(events) == 0 {
		return ErrNoEvents
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)

	var track smf.Track

	if name := opts.Name; name != "" {
		name = name[:min(len(name), 127)]
		track.Add(0, smf.Message(append([]byte{0xFF, 0x03, byte(len(name))}, name...)))
	}

	usPerBeat := uint32(60_000_000 / Tempo)
	track.Add(0, smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(usPerBeat >> 16),
		byte(usPerBeat >> 8),
		byte(usPerBeat),
	}))

	channel := opts.Channel & 0x0F
	var delta uint32

	for _, ev := range events {
		ticks := uint32(ev.Millis())

		if ev.IsRest() || ticks == 0 {
			delta += ticks
			continue
		}

		key := Key(ev.Frequency)
		track.Add(delta, midi.NoteOn(channel, key, Velocity(ev.Volume)))
		track.Add(ticks, midi.NoteOff(channel, key))
		delta = 0
	}

	track.Close(delta)

	if err := s.Add(track); err != nil {
		return fmt.Errorf("adding track: %w", err)
	}

	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("writing MIDI: %w", err)
	}

	return nil
}

// FromNotation parses notes from the default notation state and encodes
// them.
func FromNotation(w io.Writer, notes string, opts Options) error {
	st := notation.DefaultState()

	events, err := notation.All(notes, &st)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return Encode(w, events, opts)
}

// Bytes is FromNotation into memory.
func Bytes(notes string, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := FromNotation(&buf, notes, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
