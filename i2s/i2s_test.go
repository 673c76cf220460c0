// SPDX-License-Identifier: EPL-2.0

package i2s

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ik5/yaudio/internal/audiotest"
)

func speakerConfig() Config {
	return Config{SampleRate: 16000, BitsPerSample: 16, Channels: 1, FrameSamples: 8, DMABuffers: 2}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	ok := speakerConfig()

	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"speaker", func(*Config) {}, true},
		{"mic 32-bit pdm", func(c *Config) { c.BitsPerSample = 32; c.PDM = true; c.SampleRate = 44100 }, true},
		{"zero rate", func(c *Config) { c.SampleRate = 0 }, false},
		{"stereo", func(c *Config) { c.Channels = 2 }, false},
		{"24-bit", func(c *Config) { c.BitsPerSample = 24 }, false},
		{"no frame", func(c *Config) { c.FrameSamples = 0 }, false},
		{"no dma", func(c *Config) { c.DMABuffers = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := ok
			tt.mutate(&c)
			err := c.Validate()

			if tt.valid && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestConfig_FramePeriod(t *testing.T) {
	t.Parallel()

	c := Config{SampleRate: 16000, FrameSamples: 1024}
	if got := c.FramePeriod(); got != 64*time.Millisecond {
		t.Errorf("FramePeriod() = %v, want 64ms", got)
	}
	if got := (Config{}).FramePeriod(); got != 0 {
		t.Errorf("zero FramePeriod() = %v, want 0", got)
	}
}

func drainTokens(c <-chan struct{}) int {
	n := 0
	for {
		select {
		case <-c:
			n++
		default:
			return n
		}
	}
}

func TestDMAQueue_PushPull(t *testing.T) {
	t.Parallel()

	q := NewDMAQueue(4, 2)
	q.Prime()
	if got := drainTokens(q.Consumed()); got != 2 {
		t.Fatalf("primed tokens = %d, want 2", got)
	}

	if err := q.Push([]int16{1, 2, 3, 4}); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if err := q.Push([]int16{5, 6}); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if err := q.Push([]int16{7}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("Push() on full queue error = %v, want %v", err, ErrQueueFull)
	}
	if q.Queued() != 2 {
		t.Errorf("Queued() = %d, want 2", q.Queued())
	}

	dst := make([]int16, 10)
	q.Pull(dst)

	want := []int16{1, 2, 3, 4, 5, 6, 0, 0, 0, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("Pull() = %v, want %v", dst, want)
		}
	}

	if got := drainTokens(q.Consumed()); got != 2 {
		t.Errorf("consumed tokens = %d, want 2", got)
	}

	total, silent := q.Played()
	if total != 2 || silent != 0 {
		t.Errorf("Played() = %d, %d, want 2, 0", total, silent)
	}

	// finishing the silent buffer counts it
	q.Pull(make([]int16, 2))
	if total, silent = q.Played(); total != 3 || silent != 1 {
		t.Errorf("Played() = %d, %d, want 3, 1", total, silent)
	}

	// both buffers are free again
	if err := q.Push([]int16{1}); err != nil {
		t.Errorf("Push() after drain error = %v", err)
	}
	if err := q.Push([]int16{1}); err != nil {
		t.Errorf("second Push() after drain error = %v", err)
	}
}

func TestDMAQueue_Clear(t *testing.T) {
	t.Parallel()

	q := NewDMAQueue(4, 3)
	_ = q.Push([]int16{9, 9, 9, 9})
	_ = q.Push([]int16{8, 8, 8, 8})

	dst := make([]int16, 2)
	q.Pull(dst) // half of the first buffer
	q.Clear()

	rest := make([]int16, 6)
	q.Pull(rest)
	for i, v := range rest {
		if v != 0 {
			t.Fatalf("sample %d after Clear = %d, want 0", i, v)
		}
	}
}

func TestSimTransmitter_PlaysInOrder(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		played []int16
	)
	tx := NewSimTransmitter(func(frame []int16) {
		mu.Lock()
		defer mu.Unlock()
		played = append(played, frame...)
	}, time.Millisecond)

	if err := tx.Write([]int16{1}); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("Write() before Begin error = %v, want %v", err, ErrNotStarted)
	}
	if tx.Consumed() != nil {
		t.Fatal("Consumed() before Begin is not nil")
	}

	if err := tx.Begin(speakerConfig()); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := tx.Begin(speakerConfig()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Begin() error = %v, want %v", err, ErrAlreadyStarted)
	}

	frames := [][]int16{
		{1, 1, 1, 1, 1, 1, 1, 1},
		{2, 2, 2, 2, 2, 2, 2, 2},
		{3, 3, 3, 3, 3, 3, 3, 3},
	}
	for _, f := range frames {
		for {
			<-tx.Consumed()
			if err := tx.Write(f); err == nil {
				break
			}
		}
	}

	deadline := time.After(2 * time.Second)
	for {
		total, _ := tx.Played()
		mu.Lock()
		seen := 0
		for _, v := range played {
			if v == 3 {
				seen++
			}
		}
		mu.Unlock()

		if seen == 8 {
			break
		}

		select {
		case <-deadline:
			t.Fatalf("timed out after %d buffers", total)
		case <-time.After(time.Millisecond):
		}
	}

	if err := tx.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if err := tx.Stop(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("second Stop() error = %v, want %v", err, ErrNotStarted)
	}

	mu.Lock()
	defer mu.Unlock()

	last := int16(0)
	for _, v := range played {
		if v == 0 {
			continue
		}
		if v < last {
			t.Fatalf("played %d after %d", v, last)
		}
		last = v
	}
}

func TestSimTransmitter_RejectsWideSamples(t *testing.T) {
	t.Parallel()

	cfg := speakerConfig()
	cfg.BitsPerSample = 32

	if err := NewSimTransmitter(nil, 0).Begin(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Begin() error = %v, want %v", err, ErrInvalidConfig)
	}
}

func micConfig(rate int) Config {
	return Config{SampleRate: rate, BitsPerSample: 32, Channels: 1, FrameSamples: 256, DMABuffers: 4, PDM: true}
}

func TestSimReceiver_ScalesAndPadsWithSilence(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(16000, 1, 100, 0.5)
	rx := NewSimReceiver(src, false)

	if _, err := rx.Read(context.Background(), make([]int32, 4)); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("Read() before Begin error = %v, want %v", err, ErrNotStarted)
	}

	if err := rx.Begin(micConfig(16000)); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	dst := make([]int32, 150)
	n, err := rx.Read(context.Background(), dst)
	if err != nil || n != 150 {
		t.Fatalf("Read() = %d, %v, want 150, nil", n, err)
	}

	if dst[0] != 1<<30 || dst[99] != 1<<30 {
		t.Errorf("dst[0], dst[99] = %d, %d, want %d", dst[0], dst[99], 1<<30)
	}
	if dst[100] != 0 || dst[149] != 0 {
		t.Errorf("dst after source end = %d, %d, want 0", dst[100], dst[149])
	}

	// still delivering silence afterwards
	if n, err := rx.Read(context.Background(), dst); n != 150 || err != nil {
		t.Errorf("Read() after drain = %d, %v", n, err)
	}

	if err := rx.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if !src.Closed {
		t.Error("Stop() did not close the source")
	}
}

func TestSimReceiver_ResamplesStereo(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(48000, 2, 4800, 0.25)
	rx := NewSimReceiver(src, false)

	if err := rx.Begin(micConfig(44100)); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	dst := make([]int32, 1000)
	if _, err := rx.Read(context.Background(), dst); err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	want := int32(1 << 29)
	for _, i := range []int{10, 500, 999} {
		if d := dst[i] - want; d > 1<<16 || d < -(1<<16) {
			t.Errorf("dst[%d] = %d, want about %d", i, dst[i], want)
		}
	}
}

func TestSimReceiver_Timeout(t *testing.T) {
	t.Parallel()

	rx := NewSimReceiver(audiotest.NewSilentSource(44100, 1, 44100), true)
	if err := rx.Begin(micConfig(44100)); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	// a full second of audio cannot be captured in 5ms
	_, err := rx.Read(ctx, make([]int32, 44100))
	if !errors.Is(err, ErrReadTimeout) {
		t.Errorf("Read() error = %v, want %v", err, ErrReadTimeout)
	}
}
