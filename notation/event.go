// SPDX-License-Identifier: EPL-2.0

package notation

import (
	"fmt"
	"math"
	"time"
)

// Event is one parsed note or rest.
type Event struct {
	// Frequency in Hz before rounding. Zero is silence.
	Frequency float64
	// Duration is truncated to whole milliseconds.
	Duration time.Duration
	// Volume is the notation volume (1..10) in effect for this event.
	Volume int
}

// Hz is the frequency rounded to the nearest integer, as played.
func (e Event) Hz() int {
	return int(math.Round(e.Frequency))
}

// Millis is the duration in milliseconds.
func (e Event) Millis() uint32 {
	return uint32(e.Duration / time.Millisecond)
}

// IsRest reports whether the event is silence.
func (e Event) IsRest() bool {
	return e.Hz() == 0
}

func (e Event) String() string {
	if e.IsRest() {
		return fmt.Sprintf("rest %dms", e.Millis())
	}
	return fmt.Sprintf("%dHz %dms v%d", e.Hz(), e.Millis(), e.Volume)
}

// newEvent converts a duration in seconds the way the board does: truncated
// to milliseconds, never negative.
func newEvent(freq, seconds float64, volume int) Event {
	ms := math.Floor(seconds * 1000)
	if ms < 0 || math.IsNaN(ms) {
		ms = 0
	}
	if ms > math.MaxUint32 {
		ms = math.MaxUint32
	}

	return Event{
		Frequency: freq,
		Duration:  time.Duration(ms) * time.Millisecond,
		Volume:    volume,
	}
}
