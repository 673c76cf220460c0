// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/yaudio/utils"
)

// Resampler converts a source to a fixed output rate using Catmull-Rom
// interpolation over a four-frame window. Channel count is preserved.
//
// When downsampling, incoming frames pass through a one-pole low-pass to
// tame aliasing before interpolation.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// window[0] = t-1, window[1] = t0, window[2] = t+1, window[3] = t+2
	window [4][]float32
	live   [4]bool
	primed bool
	pos    float64

	srcBuf []float32
	srcPos int
	srcLen int
	eof    bool

	smooth  []float32
	alpha   float32
	settled bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		ratio:    float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
		srcBuf:   make([]float32, 1024*channels),
		smooth:   make([]float32, channels),
	}
	if r.ratio > 1 {
		r.alpha = 0.5
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// nextFrame copies the next source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	for r.srcPos >= r.srcLen {
		if r.eof {
			return false, nil
		}
		n, err := r.src.ReadSamples(r.srcBuf)
		r.srcLen = n - n%r.channels
		r.srcPos = 0
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}
	}

	copy(dst, r.srcBuf[r.srcPos:r.srcPos+r.channels])
	r.srcPos += r.channels

	if r.alpha > 0 {
		if !r.settled {
			// start from the first frame so the filter does not ramp up from zero
			copy(r.smooth, dst)
			r.settled = true
		}
		for c := range dst {
			r.smooth[c] = r.alpha*dst[c] + (1-r.alpha)*r.smooth[c]
			dst[c] = r.smooth[c]
		}
	}

	return true, nil
}

// load fills window slot i, duplicating the previous slot past the end.
func (r *Resampler) load(i int) error {
	ok, err := r.nextFrame(r.window[i])
	if err != nil {
		return err
	}
	r.live[i] = ok
	if !ok && i > 0 {
		copy(r.window[i], r.window[i-1])
	}
	return nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.nextFrame(r.window[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	r.live[1] = true
	copy(r.window[0], r.window[1])
	r.live[0] = true

	if err := r.load(2); err != nil {
		return err
	}
	return r.load(3)
}

func (r *Resampler) advance() error {
	copy(r.window[0], r.window[1])
	copy(r.window[1], r.window[2])
	copy(r.window[2], r.window[3])
	r.live[0], r.live[1], r.live[2] = r.live[1], r.live[2], r.live[3]

	return r.load(3)
}

// ReadSamples produces interleaved samples at the destination rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.live[1] {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], x)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
