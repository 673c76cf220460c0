// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ik5/yaudio/i2s"
	"github.com/ik5/yaudio/storage"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.SampleRate = 8000
	cfg.MicSampleRate = 8000
	cfg.FrameSize = 64
	cfg.Frames = 8
	cfg.ReadTimeout = 20 * time.Millisecond
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEngine(t *testing.T, tx i2s.Transmitter, fs storage.FS) *Engine {
	t.Helper()

	e := New(WithConfig(testConfig()), WithLogger(quietLogger()), WithStorage(fs))
	t.Cleanup(func() { _ = e.Close() })

	if tx != nil {
		if err := e.SetupSpeaker(tx); err != nil {
			t.Fatalf("SetupSpeaker() error = %v", err)
		}
	}
	return e
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

// capture collects everything a SimTransmitter plays.
type capture struct {
	mu      sync.Mutex
	samples []int16
}

func (c *capture) sink(frame []int16) {
	c.mu.Lock()
	c.samples = append(c.samples, frame...)
	c.mu.Unlock()
}

func (c *capture) nonZero() []int16 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []int16
	for _, v := range c.samples {
		if v != 0 {
			out = append(out, v)
		}
	}
	return out
}

func newSimSpeaker() (*i2s.SimTransmitter, *capture) {
	c := &capture{}
	return i2s.NewSimTransmitter(c.sink, time.Millisecond), c
}

// stalledTx never finishes a buffer, so whatever reaches the ring stays
// there.
type stalledTx struct {
	mu      sync.Mutex
	cleared int
	begin   error
}

func (s *stalledTx) Begin(i2s.Config) error    { return s.begin }
func (s *stalledTx) Write([]int16) error       { return nil }
func (s *stalledTx) Consumed() <-chan struct{} { return nil }
func (s *stalledTx) Stop() error               { return nil }

func (s *stalledTx) Clear() {
	s.mu.Lock()
	s.cleared++
	s.mu.Unlock()
}

func (s *stalledTx) clears() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared
}

func newFailingTx() *stalledTx {
	return &stalledTx{begin: errors.New("i2s driver install failed")}
}

// trackingFS counts files left open.
type trackingFS struct {
	*storage.MemFS

	mu   sync.Mutex
	open int
}

func newTrackingFS() *trackingFS {
	return &trackingFS{MemFS: storage.NewMemFS()}
}

func (t *trackingFS) Open(name string) (storage.File, error) {
	f, err := t.MemFS.Open(name)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.open++
	t.mu.Unlock()

	return &trackedFile{File: f, fs: t}, nil
}

func (t *trackingFS) openFiles() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

type trackedFile struct {
	storage.File

	fs   *trackingFS
	once sync.Once
}

func (f *trackedFile) Close() error {
	f.once.Do(func() {
		f.fs.mu.Lock()
		f.fs.open--
		f.fs.mu.Unlock()
	})
	return f.File.Close()
}
