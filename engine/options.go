// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"log/slog"
	"time"

	"github.com/ik5/yaudio/audio"
	"github.com/ik5/yaudio/formats/aiff"
	"github.com/ik5/yaudio/formats/mp3"
	"github.com/ik5/yaudio/formats/vorbis"
	"github.com/ik5/yaudio/formats/wav"
	"github.com/ik5/yaudio/i2s"
	"github.com/ik5/yaudio/notation"
	"github.com/ik5/yaudio/ringbuf"
	"github.com/ik5/yaudio/storage"
	"github.com/ik5/yaudio/synth"
)

// Board defaults.
const (
	DefaultSampleRate    = 16000
	DefaultMicSampleRate = 44100
	DefaultDMABuffers    = 4
	DefaultReadTimeout   = 100 * time.Millisecond
	DefaultRecordingGain = 1
	MaxRecordingGain     = 255
	MaxFileVolume        = 10
	MaxSpeakerVolume     = 100
)

// Config is the fixed pipeline format and the buffer geometry.
type Config struct {
	// SampleRate of the speaker. WAV files must match it.
	SampleRate int
	// MicSampleRate is the capture rate and the rate of recorded files.
	MicSampleRate int
	// MicBitsPerSample is the width the microphone delivers; recordings
	// are always 16-bit.
	MicBitsPerSample int
	MicPDM           bool

	FrameSize        int
	Frames           int
	DMABuffers       int
	NotationCapacity int

	// Peak is the amplitude of a full-volume tone.
	Peak int
	// ReadTimeout bounds each microphone read.
	ReadTimeout time.Duration

	RecordingGain int
	FileVolume    int
}

func DefaultConfig() Config {
	return Config{
		SampleRate:       DefaultSampleRate,
		MicSampleRate:    DefaultMicSampleRate,
		MicBitsPerSample: 32,
		MicPDM:           true,
		FrameSize:        ringbuf.DefaultFrameSize,
		Frames:           ringbuf.DefaultFrames,
		DMABuffers:       DefaultDMABuffers,
		NotationCapacity: notation.DefaultCapacity,
		Peak:             synth.DefaultPeak,
		ReadTimeout:      DefaultReadTimeout,
		RecordingGain:    DefaultRecordingGain,
		FileVolume:       MaxFileVolume,
	}
}

// Speaker is the transmit stream configuration.
func (c Config) Speaker() i2s.Config {
	return i2s.Config{
		SampleRate:    c.SampleRate,
		BitsPerSample: 16,
		Channels:      1,
		FrameSamples:  c.FrameSize,
		DMABuffers:    c.DMABuffers,
	}
}

// Mic is the receive stream configuration.
func (c Config) Mic() i2s.Config {
	return i2s.Config{
		SampleRate:    c.MicSampleRate,
		BitsPerSample: c.MicBitsPerSample,
		Channels:      1,
		FrameSamples:  c.FrameSize,
		DMABuffers:    c.DMABuffers,
		PDM:           c.MicPDM,
	}
}

type Option func(*options)

type options struct {
	cfg      Config
	logger   *slog.Logger
	fs       storage.FS
	registry *audio.Registry
}

func defaultOptions() options {
	return options{
		cfg:    DefaultConfig(),
		logger: slog.Default(),
	}
}

// WithConfig replaces the whole configuration. Zero fields fall back to
// the defaults.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStorage mounts the card. Without it the engine plays tones only.
func WithStorage(fs storage.FS) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithRegistry selects the decoders used for non-WAV files.
func WithRegistry(r *audio.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// DefaultRegistry knows every format the formats packages decode.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(audio.FormatWAV, wav.Decoder{})
	r.Register(audio.FormatMP3, mp3.Decoder{})
	r.Register(audio.FormatVorbis, vorbis.Decoder{})
	r.Register(audio.FormatAIFF, aiff.Decoder{})
	return r
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SampleRate <= 0 {
		c.SampleRate = d.SampleRate
	}
	if c.MicSampleRate <= 0 {
		c.MicSampleRate = d.MicSampleRate
	}
	if c.MicBitsPerSample == 0 {
		c.MicBitsPerSample = d.MicBitsPerSample
	}
	if c.FrameSize <= 0 {
		c.FrameSize = d.FrameSize
	}
	if c.Frames <= 0 {
		c.Frames = d.Frames
	}
	if c.DMABuffers <= 0 {
		c.DMABuffers = d.DMABuffers
	}
	if c.NotationCapacity <= 0 {
		c.NotationCapacity = d.NotationCapacity
	}
	if c.Peak <= 0 {
		c.Peak = d.Peak
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.RecordingGain <= 0 {
		c.RecordingGain = d.RecordingGain
	}
	if c.FileVolume <= 0 {
		c.FileVolume = d.FileVolume
	}
	c.RecordingGain = min(c.RecordingGain, MaxRecordingGain)
	c.FileVolume = min(c.FileVolume, MaxFileVolume)
	return c
}
