// SPDX-License-Identifier: EPL-2.0

package i2s

import (
	"context"
	"fmt"
	"time"
)

// Config describes one half-duplex stream.
type Config struct {
	SampleRate    int
	BitsPerSample int
	Channels      int
	// FrameSamples is the size of one DMA buffer in samples.
	FrameSamples int
	// DMABuffers is the depth of the hardware queue.
	DMABuffers int
	// PDM selects PDM framing on receive, as used by the board microphone.
	PDM bool
}

// Validate checks the fields every stream needs.
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	case c.Channels != 1:
		return fmt.Errorf("%w: %d channels, only mono is wired", ErrInvalidConfig, c.Channels)
	case c.BitsPerSample != 16 && c.BitsPerSample != 32:
		return fmt.Errorf("%w: %d bits per sample", ErrInvalidConfig, c.BitsPerSample)
	case c.FrameSamples <= 0:
		return fmt.Errorf("%w: frame of %d samples", ErrInvalidConfig, c.FrameSamples)
	case c.DMABuffers <= 0:
		return fmt.Errorf("%w: %d dma buffers", ErrInvalidConfig, c.DMABuffers)
	}
	return nil
}

// FramePeriod is how long the hardware takes to play one DMA buffer.
func (c Config) FramePeriod() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(c.FrameSamples) * time.Second / time.Duration(c.SampleRate)
}

// Transmitter is the speaker side of the I2S peripheral.
type Transmitter interface {
	// Begin installs the driver. Consumed starts delivering once it returns.
	Begin(cfg Config) error
	// Write queues one DMA buffer of FrameSamples samples. It never blocks;
	// a full queue returns ErrQueueFull.
	Write(frame []int16) error
	// Consumed receives one value each time the hardware finishes a buffer.
	Consumed() <-chan struct{}
	// Clear zeroes the buffers queued but not yet played.
	Clear()
	Stop() error
}

// Receiver is the microphone side.
type Receiver interface {
	Begin(cfg Config) error
	// Read fills dst with left-justified 32-bit samples. It waits at most
	// until ctx is done, then returns what it has with ErrReadTimeout.
	Read(ctx context.Context, dst []int32) (int, error)
	Stop() error
}
