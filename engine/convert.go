// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/yaudio/audio"
	"github.com/ik5/yaudio/formats/wav"
	"github.com/ik5/yaudio/storage"
	"github.com/ik5/yaudio/utils"
)

// ConvertSoundFile rewrites any registered format as a WAV the speaker
// streams without decoding: mono, 16-bit, at the pipeline rate.
func (e *Engine) ConvertSoundFile(in, out string) error {
	if e.fs == nil {
		return ErrStorageUnavailable
	}

	if err := ConvertFile(e.fs, e.registry, in, out, e.cfg.SampleRate); err != nil {
		e.log.Warn("conversion failed", "in", in, "out", out, "err", err)
		return err
	}

	e.log.Info("converted", "in", in, "out", out, "rate", e.cfg.SampleRate)
	return nil
}

// ConvertFile decodes in, mixes it to mono, resamples it to rate and
// writes a 16-bit WAV to out.
func ConvertFile(fs storage.FS, reg *audio.Registry, in, out string, rate int) error {
	if in == out {
		return fmt.Errorf("convert %s: input and output are the same file", in)
	}
	if rate <= 0 {
		return fmt.Errorf("convert %s: invalid rate %d", in, rate)
	}

	src, err := OpenSource(fs, reg, in)
	if err != nil {
		return err
	}
	defer src.Close()

	if src.Channels() > 1 {
		src = audio.NewMonoMixer(src)
	}
	if src.SampleRate() != rate {
		src = audio.NewResampler(src, rate)
	}

	return writeWAV(fs, out, src)
}

// writeWAV drains a mono source into a new 16-bit WAV file.
func writeWAV(fs storage.FS, out string, src audio.Source) (err error) {
	f, err := fs.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w", cerr)
		}
	}()

	w, err := wav.NewPCMWriter(f, src.SampleRate())
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	buf := make([]float32, 4096)
	pcm := make([]int16, len(buf))

	for {
		n, rerr := src.ReadSamples(buf)
		for i := range n {
			pcm[i] = utils.Float32ToInt16(buf[i])
		}
		if err := w.Write(pcm[:n]); err != nil {
			return fmt.Errorf("%w", err)
		}

		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return fmt.Errorf("%w", rerr)
		}
	}

	return w.Close()
}
