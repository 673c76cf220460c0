// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/ik5/yaudio/formats/wav"
	"github.com/ik5/yaudio/i2s"
	"github.com/ik5/yaudio/storage"
	"github.com/ik5/yaudio/utils"
)

type recording struct {
	path   string
	f      storage.File
	w      *wav.PCMWriter
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

func (r *recording) finished() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// SetupMic installs the receive driver.
func (e *Engine) SetupMic(rx i2s.Receiver) error {
	e.recMu.Lock()
	defer e.recMu.Unlock()

	if e.isClosed() {
		return ErrClosed
	}
	if e.rx != nil {
		return fmt.Errorf("microphone: %w", i2s.ErrAlreadyStarted)
	}

	if err := rx.Begin(e.cfg.Mic()); err != nil {
		e.log.Error("microphone setup failed", "err", err)
		return fmt.Errorf("%w: %w", ErrMicNotReady, err)
	}
	e.rx = rx

	e.log.Info("microphone ready", "rate", e.cfg.MicSampleRate, "bits", e.cfg.MicBitsPerSample, "pdm", e.cfg.MicPDM)

	return nil
}

// StartRecording creates or truncates path and records the microphone into
// it as a 16-bit mono WAV until StopRecording. A recording already in
// progress is left alone and ErrAlreadyRecording returned.
func (e *Engine) StartRecording(path string) error {
	e.recMu.Lock()
	defer e.recMu.Unlock()

	if e.isClosed() {
		return ErrClosed
	}
	if e.rx == nil {
		return ErrMicNotReady
	}
	if e.rec != nil && !e.rec.finished() {
		e.log.Warn("already recording", "path", e.rec.path)
		return ErrAlreadyRecording
	}
	if e.fs == nil {
		return ErrStorageUnavailable
	}

	f, err := e.fs.Create(path)
	if err != nil {
		e.log.Warn("cannot create recording", "path", path, "err", err)
		return fmt.Errorf("creating recording: %w", err)
	}

	w, err := wav.NewPCMWriter(f, e.cfg.MicSampleRate)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("creating recording: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &recording{
		path:   path,
		f:      f,
		w:      w,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	e.rec = r

	go e.record(ctx, e.rx, r)

	e.log.Info("recording started", "path", path, "rate", e.cfg.MicSampleRate)

	return nil
}

// StopRecording ends the recording and waits until its header is written
// and the file closed. It returns the error that ended the recording, if
// it ended on its own.
func (e *Engine) StopRecording() error {
	e.recMu.Lock()
	defer e.recMu.Unlock()

	r := e.rec
	if r == nil {
		return ErrNotRecording
	}
	e.rec = nil

	r.cancel()
	<-r.done

	return r.err
}

// IsRecording reports whether a recording is running.
func (e *Engine) IsRecording() bool {
	e.recMu.Lock()
	defer e.recMu.Unlock()

	return e.rec != nil && !e.rec.finished()
}

// SetRecordingGain sets the integer gain applied to captured samples,
// 0 to MaxRecordingGain.
func (e *Engine) SetRecordingGain(gain int) {
	e.gain.Store(int32(min(max(gain, 0), MaxRecordingGain)))
}

func (e *Engine) RecordingGain() int {
	return int(e.gain.Load())
}

func (e *Engine) record(ctx context.Context, rx i2s.Receiver, r *recording) {
	defer close(r.done)

	block := make([]int32, e.cfg.FrameSize)
	out := make([]int16, e.cfg.FrameSize)

	for ctx.Err() == nil {
		readCtx, cancel := context.WithTimeout(ctx, e.cfg.ReadTimeout)
		n, err := rx.Read(readCtx, block)
		cancel()

		if n > 0 {
			convertBlock(out[:n], block[:n], int(e.gain.Load()))
			if werr := r.w.Write(out[:n]); werr != nil {
				r.err = werr
				break
			}
		}

		if err != nil && !errors.Is(err, i2s.ErrReadTimeout) {
			r.err = fmt.Errorf("microphone: %w", err)
			break
		}
	}

	if err := r.w.Close(); err != nil && r.err == nil {
		r.err = err
	}
	if err := r.f.Close(); err != nil && r.err == nil {
		r.err = fmt.Errorf("%w", err)
	}

	if r.err != nil {
		e.log.Error("recording failed", "path", r.path, "err", r.err)
	}
	e.log.Info("recording finished", "path", r.path, "samples", r.w.Samples(), "bytes", r.w.DataSize())
}

// convertBlock narrows 32-bit capture to 16 bits, removes the block's DC
// offset and applies gain.
func convertBlock(dst []int16, src []int32, gain int) {
	var sum int64
	for i, v := range src {
		dst[i] = utils.Int32ToInt16(v)
		sum += int64(dst[i])
	}

	mean := int(sum / int64(len(src)))
	for i, v := range dst {
		dst[i] = utils.ClampInt16((int(v) - mean) * gain)
	}
}

func (e *Engine) isClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}
