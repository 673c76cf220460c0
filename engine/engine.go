// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/ik5/yaudio/audio"
	"github.com/ik5/yaudio/i2s"
	"github.com/ik5/yaudio/notation"
	"github.com/ik5/yaudio/ringbuf"
	"github.com/ik5/yaudio/storage"
	"github.com/ik5/yaudio/synth"
)

// Mode is what the speaker is playing.
type Mode int32

const (
	Idle Mode = iota
	PlayingNotes
	PlayingFile
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case PlayingNotes:
		return "notes"
	case PlayingFile:
		return "file"
	}
	return fmt.Sprintf("mode(%d)", int32(m))
}

// Engine owns the speaker pipeline and the microphone recorder.
//
// One source plays at a time: a newly started notes or file source
// replaces the other. Notes added while notes play are queued behind them.
// Recording runs on its own hardware path next to playback.
type Engine struct {
	cfg      Config
	log      *slog.Logger
	fs       storage.FS
	registry *audio.Registry
	ring     *ringbuf.Buffer

	// mu guards the fields below. Whoever holds it is the ring's producer,
	// so Write, Flush and Reset only run under mu. The pump reads the ring
	// without it.
	mu       sync.Mutex
	closed   bool
	mode     Mode
	gen      uint64 // bumped whenever the playing source is replaced
	state    notation.State
	queue    *notation.Queue
	endRest  bool
	tone     *synth.Tone
	stream   *fileStream
	volume   float64
	scratch  []int16
	idle     chan struct{} // closed while mode is Idle
	tx       i2s.Transmitter
	pumpStop chan struct{}
	pumpDone chan struct{}

	// recMu guards the microphone and the current recording. It is never
	// taken while mu is held.
	recMu sync.Mutex
	rx    i2s.Receiver
	rec   *recording
	gain  atomic.Int32

	active     atomic.Bool
	framesSent atomic.Uint64
	underruns  atomic.Uint64
	dropped    atomic.Uint64

	wake       chan struct{}
	workerStop chan struct{}
	workerDone chan struct{}
}

// New starts an engine with nothing set up. Call SetupSpeaker before
// playing and SetupMic before recording.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}
	cfg := o.cfg.withDefaults()

	idle := make(chan struct{})
	close(idle)

	e := &Engine{
		cfg:        cfg,
		log:        o.logger,
		fs:         o.fs,
		registry:   o.registry,
		ring:       ringbuf.New(cfg.FrameSize, cfg.Frames),
		state:      notation.DefaultState(),
		queue:      notation.NewQueue(cfg.NotationCapacity),
		tone:       synth.NewTone(cfg.SampleRate, cfg.Peak),
		volume:     float64(cfg.FileVolume) / MaxFileVolume,
		scratch:    make([]int16, cfg.FrameSize),
		idle:       idle,
		wake:       make(chan struct{}, 1),
		workerStop: make(chan struct{}),
		workerDone: make(chan struct{}),
	}
	e.gain.Store(int32(cfg.RecordingGain))

	go e.run(e.workerStop, e.workerDone)

	return e
}

// Config is the configuration in effect, defaults filled in.
func (e *Engine) Config() Config { return e.cfg }

// SetupSpeaker installs the transmit driver and starts the pump feeding it.
func (e *Engine) SetupSpeaker(tx i2s.Transmitter) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	if e.tx != nil {
		return fmt.Errorf("speaker: %w", i2s.ErrAlreadyStarted)
	}

	if err := tx.Begin(e.cfg.Speaker()); err != nil {
		e.log.Error("speaker setup failed", "err", err)
		return fmt.Errorf("%w: %w", ErrSpeakerNotReady, err)
	}

	e.tx = tx
	e.pumpStop = make(chan struct{})
	e.pumpDone = make(chan struct{})
	go e.pump(tx, tx.Consumed(), e.pumpStop, e.pumpDone)

	e.log.Info("speaker ready", "rate", e.cfg.SampleRate, "frame", e.cfg.FrameSize, "frames", e.cfg.Frames)

	return nil
}

// AddNotes queues notation behind whatever notes are pending and starts
// playing them in the background. A playing file is stopped first. When
// the queue cannot take all of notes nothing is queued and the error wraps
// notation.ErrQueueFull.
func (e *Engine) AddNotes(notes string) error {
	e.mu.Lock()

	if err := e.playableLocked(); err != nil {
		e.mu.Unlock()
		return err
	}

	var old *fileStream
	if e.mode == PlayingFile && e.queue.Fits(len(notes)) {
		old = e.detachLocked()
	}

	if err := e.queue.Append(notes); err != nil {
		e.mu.Unlock()
		e.log.Warn("notation rejected", "err", err)
		return fmt.Errorf("%w", err)
	}

	if e.endRest {
		// the queue was dry, so the tone under way is the end rest
		e.tone.Stop()
		e.endRest = false
	}
	e.setModeLocked(PlayingNotes)
	e.mu.Unlock()

	e.closeStream(old)
	e.nudge()

	return nil
}

// PlayNotes plays notes and returns once the speaker goes idle. If ctx ends
// first the audio is stopped.
func (e *Engine) PlayNotes(ctx context.Context, notes string) error {
	if err := e.AddNotes(notes); err != nil {
		return err
	}
	return e.waitOrStop(ctx)
}

// PlaySoundFileBackground stops whatever is playing, then validates path
// and starts streaming it. On failure the file is closed and the speaker
// is left idle.
func (e *Engine) PlaySoundFileBackground(path string) error {
	e.mu.Lock()
	if err := e.playableLocked(); err != nil {
		e.mu.Unlock()
		return err
	}
	old := e.detachLocked()
	e.setModeLocked(Idle)
	e.mu.Unlock()

	e.closeStream(old)

	s, err := e.open(path)
	if err != nil {
		e.log.Warn("cannot play sound file", "path", path, "err", err)
		return err
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		e.closeStream(s)
		return ErrClosed
	}
	old = e.detachLocked()
	e.stream = s
	e.setModeLocked(PlayingFile)
	e.mu.Unlock()

	e.closeStream(old)
	e.nudge()

	e.log.Info("playing sound file", "path", path, "format", s.format)

	return nil
}

// PlaySoundFile plays path and returns once the speaker goes idle.
func (e *Engine) PlaySoundFile(ctx context.Context, path string) error {
	if err := e.PlaySoundFileBackground(path); err != nil {
		return err
	}
	return e.waitOrStop(ctx)
}

// StopAudio silences the speaker: pending notes are dropped, the file is
// closed, queued DMA buffers are zeroed and the ring is emptied.
func (e *Engine) StopAudio() {
	e.mu.Lock()
	old := e.detachLocked()
	e.setModeLocked(Idle)
	e.mu.Unlock()

	e.closeStream(old)
}

// Wait blocks until the speaker is idle or ctx ends.
func (e *Engine) Wait(ctx context.Context) error {
	e.mu.Lock()
	idle := e.idle
	e.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w", ctx.Err())
	}
}

func (e *Engine) waitOrStop(ctx context.Context) error {
	if err := e.Wait(ctx); err != nil {
		e.StopAudio()
		return err
	}
	return nil
}

// IsAudioPlaying reports whether notes or a file are playing.
func (e *Engine) IsAudioPlaying() bool {
	return e.active.Load()
}

func (e *Engine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// SetWaveVolume sets the file volume in steps of 0 to 10.
func (e *Engine) SetWaveVolume(v int) {
	v = min(max(v, 0), MaxFileVolume)

	e.mu.Lock()
	e.volume = float64(v) / MaxFileVolume
	e.mu.Unlock()
}

// SetSpeakerVolume sets the file volume in steps of 0 to 100.
func (e *Engine) SetSpeakerVolume(v int) {
	v = min(max(v, 0), MaxSpeakerVolume)

	e.mu.Lock()
	e.volume = float64(v) / MaxSpeakerVolume
	e.mu.Unlock()
}

// ResetNotation restores tempo, octave and volume to their defaults.
func (e *Engine) ResetNotation() {
	e.mu.Lock()
	e.state.Reset()
	e.mu.Unlock()
}

// Notation returns the current tempo, octave and volume.
func (e *Engine) Notation() notation.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Loop nudges the background worker. The worker runs on its own, so
// calling Loop is never required; it exists for callers written around a
// polled main loop.
func (e *Engine) Loop() {
	e.nudge()
}

// Stats is a snapshot of the pipeline counters.
type Stats struct {
	Mode       Mode
	Recording  bool
	FramesSent uint64
	// Underruns counts buffer completions with nothing to send while a
	// source was playing.
	Underruns uint64
	// Dropped counts frames the DMA queue refused.
	Dropped   uint64
	Populated int
	Pending   int
	Notation  notation.State
}

// Formats lists the containers PlaySoundFileBackground can decode.
func (e *Engine) Formats() []string { return e.registry.Formats() }

func (e *Engine) Stats() Stats {
	st := Stats{
		Recording:  e.IsRecording(),
		FramesSent: e.framesSent.Load(),
		Underruns:  e.underruns.Load(),
		Dropped:    e.dropped.Load(),
		Populated:  e.ring.Populated(),
	}

	e.mu.Lock()
	st.Mode = e.mode
	st.Pending = e.queue.Len()
	st.Notation = e.state
	e.mu.Unlock()

	return st
}

// Close stops playback and recording, then the drivers.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.closed = true
	old := e.detachLocked()
	e.setModeLocked(Idle)
	tx, pumpStop, pumpDone := e.tx, e.pumpStop, e.pumpDone
	e.mu.Unlock()

	close(e.workerStop)
	<-e.workerDone
	e.closeStream(old)

	var errs []error

	if err := e.StopRecording(); err != nil && !errors.Is(err, ErrNotRecording) {
		errs = append(errs, err)
	}

	e.recMu.Lock()
	if e.rx != nil {
		if err := e.rx.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("microphone: %w", err))
		}
		e.rx = nil
	}
	e.recMu.Unlock()

	if tx != nil {
		close(pumpStop)
		<-pumpDone
		if err := tx.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("speaker: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (e *Engine) playableLocked() error {
	if e.closed {
		return ErrClosed
	}
	if e.tx == nil {
		return ErrSpeakerNotReady
	}
	return nil
}

func (e *Engine) setModeLocked(m Mode) {
	if m == e.mode {
		return
	}
	prev := e.mode
	e.mode = m
	e.active.Store(m != Idle)

	switch {
	case m == Idle:
		close(e.idle)
	case prev == Idle:
		e.idle = make(chan struct{})
	}
}

// detachLocked drops the playing source and everything buffered for it.
// The returned stream, if any, must be closed after mu is released.
func (e *Engine) detachLocked() *fileStream {
	e.queue.Clear()
	e.tone.Stop()
	e.endRest = false

	old := e.stream
	e.stream = nil

	e.ring.Reset()
	if e.tx != nil {
		e.tx.Clear()
	}
	e.gen++

	return old
}

func (e *Engine) closeStream(s *fileStream) {
	if s == nil {
		return
	}
	if err := s.Close(); err != nil {
		e.log.Warn("closing sound file", "path", s.path, "err", err)
	}
}

func (e *Engine) nudge() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}
