// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
)

// LowPass is a one-pole RC low-pass filter applied per channel.
type LowPass struct {
	src   Source
	alpha float32
	state []float32
}

// NewLowPass filters src with the given cutoff in Hz. The cutoff must lie
// strictly between 0 and half the source rate.
func NewLowPass(src Source, cutoff float64) (*LowPass, error) {
	rate := float64(src.SampleRate())
	if cutoff <= 0 || cutoff >= rate/2 {
		return nil, ErrInvalidCutoff
	}

	dt := 1 / rate
	rc := 1 / (2 * math.Pi * cutoff)

	return &LowPass{
		src:   src,
		alpha: float32(dt / (rc + dt)),
		state: make([]float32, src.Channels()),
	}, nil
}

func (l *LowPass) SampleRate() int { return l.src.SampleRate() }
func (l *LowPass) Channels() int   { return l.src.Channels() }

func (l *LowPass) Close() error {
	if err := l.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (l *LowPass) ReadSamples(dst []float32) (int, error) {
	n, err := l.src.ReadSamples(dst)

	channels := len(l.state)
	for i := range n {
		c := i % channels
		l.state[c] += l.alpha * (dst[i] - l.state[c])
		dst[i] = l.state[c]
	}

	return n, err
}
