//go:build !headless

// SPDX-License-Identifier: EPL-2.0

package hostaudio

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/yaudio/i2s"
)

// Available reports whether this build talks to a real sound card.
const Available = true

// oto allows a single context per process.
var (
	ctxOnce sync.Once
	ctxRate int
	otoCtx  *oto.Context
	ctxErr  error
)

func otoContext(rate int) (*oto.Context, error) {
	ctxOnce.Do(func() {
		var ready chan struct{}
		otoCtx, ready, ctxErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   rate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		})
		if ctxErr == nil {
			<-ready
			ctxRate = rate
		}
	})

	if ctxErr != nil {
		return nil, fmt.Errorf("opening sound card: %w", ctxErr)
	}
	if rate != ctxRate {
		return nil, fmt.Errorf("%w: sound card already runs at %d Hz", i2s.ErrInvalidConfig, ctxRate)
	}
	return otoCtx, nil
}

// Speaker is an i2s.Transmitter playing through the host sound card. The
// card's pull callback drains the DMA queue, so buffer completions follow
// the card's clock.
type Speaker struct {
	mu     sync.Mutex
	player *oto.Player

	queue   atomic.Pointer[i2s.DMAQueue]
	scratch []int16 // used only by Read
}

func NewSpeaker() *Speaker {
	return &Speaker{}
}

func (s *Speaker) Begin(cfg i2s.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.BitsPerSample != 16 {
		return fmt.Errorf("%w: transmit is 16-bit only", i2s.ErrInvalidConfig)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player != nil {
		return i2s.ErrAlreadyStarted
	}

	ctx, err := otoContext(cfg.SampleRate)
	if err != nil {
		return err
	}

	q := i2s.NewDMAQueue(cfg.FrameSamples, cfg.DMABuffers)
	q.Prime()
	s.queue.Store(q)

	s.player = ctx.NewPlayer(s)
	s.player.Play()

	return nil
}

// Read is called by the sound card for more audio.
func (s *Speaker) Read(p []byte) (int, error) {
	n := len(p) / 2

	q := s.queue.Load()
	if q == nil {
		clear(p)
		return len(p), nil
	}

	if cap(s.scratch) < n {
		s.scratch = make([]int16, n)
	}
	samples := s.scratch[:n]

	q.Pull(samples)
	putSamples(p, samples)

	return 2 * n, nil
}

func (s *Speaker) Write(frame []int16) error {
	q := s.queue.Load()
	if q == nil {
		return i2s.ErrNotStarted
	}
	return q.Push(frame)
}

func (s *Speaker) Consumed() <-chan struct{} {
	q := s.queue.Load()
	if q == nil {
		return nil
	}
	return q.Consumed()
}

func (s *Speaker) Clear() {
	if q := s.queue.Load(); q != nil {
		q.Clear()
	}
}

func (s *Speaker) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player == nil {
		return i2s.ErrNotStarted
	}

	err := s.player.Close()
	s.player = nil
	s.queue.Store(nil)

	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
