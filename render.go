// SPDX-License-Identifier: EPL-2.0

package yaudio

import (
	"fmt"
	"io"

	"github.com/ik5/yaudio/formats/wav"
	"github.com/ik5/yaudio/notation"
	"github.com/ik5/yaudio/synth"
)

// RenderNotes renders a score to 16-bit mono PCM at sampleRate, starting
// from the default tempo, octave and volume. Each note sounds at its
// frequency rounded to whole hertz, as the speaker plays it.
//
// On a syntax error the PCM of the notes before it is returned together
// with an error wrapping notation.ErrSyntax.
func RenderNotes(notes string, sampleRate int) ([]int16, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	st := notation.DefaultState()
	events, err := notation.All(notes, &st)

	total := 0
	for _, ev := range events {
		total += synth.SampleCount(sampleRate, ev.Duration)
	}

	pcm := make([]int16, total)
	tone := synth.NewTone(sampleRate, synth.DefaultPeak)

	pos := 0
	for _, ev := range events {
		tone.Start(float64(ev.Hz()), ev.Duration, ev.Volume)
		pos += tone.Render(pcm[pos:])
	}

	if err != nil {
		return pcm[:pos], fmt.Errorf("%w", err)
	}
	return pcm[:pos], nil
}

// RenderNotesToWAV renders a score and writes it as a mono 16-bit WAV.
// Nothing is written when the score does not parse.
func RenderNotesToWAV(ws io.WriteSeeker, notes string, sampleRate int) error {
	pcm, err := RenderNotes(notes, sampleRate)
	if err != nil {
		return err
	}
	return wav.Encode(ws, sampleRate, pcm)
}
