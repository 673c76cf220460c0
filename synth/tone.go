// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"math"
	"time"

	"github.com/ik5/yaudio/utils"
)

// DefaultPeak is the amplitude of a full-volume tone before loudness
// compensation.
const DefaultPeak = 16000

// FadePercent of each note is spent fading in, and the same at the end
// fading out.
const FadePercent = 2

// Tone renders one note at a time as 16-bit mono PCM. A note may be rendered
// across several Render calls, so a producer can stop when the output is
// full and resume later without losing samples.
type Tone struct {
	sampleRate int
	peak       float64

	amp   float64
	step  float64 // phase increment in radians
	phase float64
	total int
	done  int
	fade  int
}

// NewTone returns a renderer for sampleRate. A non-positive peak selects
// DefaultPeak.
func NewTone(sampleRate, peak int) *Tone {
	if peak <= 0 {
		peak = DefaultPeak
	}
	return &Tone{
		sampleRate: sampleRate,
		peak:       float64(peak),
	}
}

// SampleCount is the number of samples a note of d lasts at sampleRate.
func SampleCount(sampleRate int, d time.Duration) int {
	return int(int64(sampleRate) * d.Milliseconds() / 1000)
}

// Compensation is the loudness multiplier for freq: 2 below 800 Hz, falling
// linearly to 1 at 1100 Hz, 1 above.
func Compensation(freq float64) float64 {
	switch {
	case freq < 800:
		return 2
	case freq < 1100:
		return 2 - (freq-800)/300
	default:
		return 1
	}
}

// Start begins a note, dropping whatever was left of the previous one.
// A zero frequency renders silence.
func (t *Tone) Start(freq float64, d time.Duration, volume int) {
	t.total = SampleCount(t.sampleRate, d)
	t.done = 0
	t.phase = 0
	t.fade = max(1, t.total*FadePercent/100)

	if freq <= 0 {
		t.amp, t.step = 0, 0
		return
	}

	t.amp = t.peak * (float64(volume) / 10) * Compensation(freq)
	t.step = 2 * math.Pi * freq / float64(t.sampleRate)
}

// Remaining is the number of samples left in the current note.
func (t *Tone) Remaining() int { return t.total - t.done }

// Done reports whether the current note is fully rendered.
func (t *Tone) Done() bool { return t.done >= t.total }

// Stop abandons the current note.
func (t *Tone) Stop() { t.done = t.total }

// Render writes up to len(dst) samples of the current note and returns how
// many were written.
func (t *Tone) Render(dst []int16) int {
	n := min(len(dst), t.Remaining())

	if t.amp == 0 {
		clear(dst[:n])
		t.done += n
		return n
	}

	for i := range n {
		env := t.envelope(t.done)
		dst[i] = utils.ClampInt16(int(math.Round(t.amp * env * math.Sin(t.phase))))

		t.phase += t.step
		if t.phase >= 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
		t.done++
	}

	return n
}

// envelope is the linear fade gain for sample i of the note.
func (t *Tone) envelope(i int) float64 {
	if i < t.fade {
		return float64(i) / float64(t.fade)
	}
	if tail := t.total - 1 - i; tail < t.fade {
		return float64(tail) / float64(t.fade)
	}
	return 1
}

// Render returns a whole note as PCM.
func Render(sampleRate, peak int, freq float64, d time.Duration, volume int) []int16 {
	t := NewTone(sampleRate, peak)
	t.Start(freq, d, volume)

	out := make([]int16, t.Remaining())
	t.Render(out)
	return out
}
