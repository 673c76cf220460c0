// SPDX-License-Identifier: EPL-2.0

package i2s

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/ik5/yaudio/audio"
)

// SimTransmitter is a Transmitter with a software clock. Every period it
// plays one DMA buffer into Sink, which may be nil.
type SimTransmitter struct {
	// Sink receives each played buffer. The slice is reused between calls.
	Sink func(frame []int16)
	// Period overrides the buffer period derived from the config, so tests
	// can run faster than real time.
	Period time.Duration

	mu    sync.Mutex
	queue *DMAQueue
	stop  chan struct{}
	done  chan struct{}
}

func NewSimTransmitter(sink func(frame []int16), period time.Duration) *SimTransmitter {
	return &SimTransmitter{Sink: sink, Period: period}
}

func (s *SimTransmitter) Begin(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.BitsPerSample != 16 {
		return fmt.Errorf("%w: transmit is 16-bit only", ErrInvalidConfig)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue != nil {
		return ErrAlreadyStarted
	}

	period := s.Period
	if period <= 0 {
		period = cfg.FramePeriod()
	}

	q := NewDMAQueue(cfg.FrameSamples, cfg.DMABuffers)
	q.Prime()

	s.queue = q
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.run(q, cfg.FrameSamples, period, s.stop, s.done)

	return nil
}

func (s *SimTransmitter) run(q *DMAQueue, size int, period time.Duration, stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	buf := make([]int16, size)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			q.Pull(buf)
			if s.Sink != nil {
				s.Sink(buf)
			}
		}
	}
}

func (s *SimTransmitter) current() *DMAQueue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue
}

func (s *SimTransmitter) Write(frame []int16) error {
	q := s.current()
	if q == nil {
		return ErrNotStarted
	}
	return q.Push(frame)
}

func (s *SimTransmitter) Consumed() <-chan struct{} {
	q := s.current()
	if q == nil {
		return nil
	}
	return q.Consumed()
}

func (s *SimTransmitter) Clear() {
	if q := s.current(); q != nil {
		q.Clear()
	}
}

// Played reports the buffers played and how many of them were silence.
func (s *SimTransmitter) Played() (total, silent uint64) {
	if q := s.current(); q != nil {
		return q.Played()
	}
	return 0, 0
}

func (s *SimTransmitter) Stop() error {
	s.mu.Lock()
	if s.queue == nil {
		s.mu.Unlock()
		return ErrNotStarted
	}
	stop, done := s.stop, s.done
	s.queue = nil
	s.mu.Unlock()

	close(stop)
	<-done

	return nil
}

// SimReceiver is a Receiver fed from an audio source, standing in for the
// microphone. The source is mixed to mono and resampled to the configured
// rate. Once it runs out the receiver keeps delivering silence, as a quiet
// room would.
type SimReceiver struct {
	// Realtime paces reads at the configured sample rate.
	Realtime bool

	mu       sync.Mutex
	src      audio.Source
	pipeline audio.Source
	rate     int
	buf      []float32
	drained  bool
	deadline time.Time
}

func NewSimReceiver(src audio.Source, realtime bool) *SimReceiver {
	return &SimReceiver{src: src, Realtime: realtime}
}

func (s *SimReceiver) Begin(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pipeline != nil {
		return ErrAlreadyStarted
	}

	var p audio.Source = s.src
	if p.Channels() > 1 {
		p = audio.NewMonoMixer(p)
	}
	if p.SampleRate() != cfg.SampleRate {
		p = audio.NewResampler(p, cfg.SampleRate)
	}

	s.pipeline = p
	s.rate = cfg.SampleRate
	s.deadline = time.Now()

	return nil
}

func (s *SimReceiver) Read(ctx context.Context, dst []int32) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pipeline == nil {
		return 0, ErrNotStarted
	}

	if s.Realtime {
		// the block is ready once the hardware would have captured it
		s.deadline = s.deadline.Add(time.Duration(len(dst)) * time.Second / time.Duration(s.rate))
		timer := time.NewTimer(time.Until(s.deadline))
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("%w: %w", ErrReadTimeout, ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrReadTimeout, err)
	}

	if cap(s.buf) < len(dst) {
		s.buf = make([]float32, len(dst))
	}
	buf := s.buf[:len(dst)]

	filled := 0
fill:
	for filled < len(dst) && !s.drained {
		n, err := s.pipeline.ReadSamples(buf[filled:])
		filled += n

		switch {
		case err == io.EOF:
			s.drained = true
		case err != nil:
			return 0, fmt.Errorf("%w", err)
		case n == 0:
			break fill
		}
	}
	clear(buf[filled:])

	for i, v := range buf {
		dst[i] = toInt32(v)
	}

	return len(dst), nil
}

func toInt32(v float32) int32 {
	f := float64(v) * 2147483648.0
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	if f <= math.MinInt32 {
		return math.MinInt32
	}
	return int32(f)
}

func (s *SimReceiver) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pipeline == nil {
		return ErrNotStarted
	}
	s.pipeline = nil

	return s.src.Close()
}
