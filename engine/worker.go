// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"github.com/ik5/yaudio/notation"
)

// run is the producer. It renders notes or decodes the file into the ring
// until the ring is full or the source is exhausted, then sleeps until the
// pump frees a frame or the API wakes it.
func (e *Engine) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		for e.step() {
			select {
			case <-stop:
				return
			default:
			}
		}

		select {
		case <-stop:
			return
		case <-e.wake:
		case <-e.ring.Freed():
		}
	}
}

// step does one round of production and reports whether it got anywhere.
func (e *Engine) step() bool {
	e.mu.Lock()
	mode, s, gen := e.mode, e.stream, e.gen
	if mode == PlayingNotes {
		progressed := e.produceNotesLocked()
		e.mu.Unlock()
		return progressed
	}
	e.mu.Unlock()

	if mode == PlayingFile && s != nil {
		return e.produceFile(s, gen)
	}
	return false
}

// produceNotesLocked parses pending notation and renders at most one frame
// of it, so mu is held for no longer than one frame's worth of synthesis.
// Once the queue runs dry a short end rest is played so the speaker
// settles, then the engine goes idle when the ring has drained.
func (e *Engine) produceNotesLocked() bool {
	progressed := false

	for {
		if !e.tone.Done() {
			free := e.ring.Free()
			if free == 0 {
				return progressed
			}

			n := e.tone.Render(e.scratch[:min(free, len(e.scratch))])
			e.ring.Write(e.scratch[:n])
			return true
		}

		ev, ok, err := e.queue.Next(&e.state)
		if err != nil {
			e.log.Warn("discarding pending notation", "err", err)
			progressed = true
			continue
		}
		if ok {
			e.tone.Start(float64(ev.Hz()), ev.Duration, ev.Volume)
			continue
		}

		if !e.endRest {
			e.endRest = true
			_ = e.queue.Append(string(notation.EndRest))
			continue
		}

		e.ring.Flush()
		if e.ring.Empty() {
			e.setModeLocked(Idle)
			e.log.Debug("notes finished", "underruns", e.underruns.Load())
		}
		return progressed
	}
}

// produceFile reads one frame from the file without holding mu, then moves
// what fits into the ring. gen guards against the file having been
// replaced while it was read.
func (e *Engine) produceFile(s *fileStream, gen uint64) bool {
	read := false
	if len(s.pending) == 0 && !s.eof {
		if err := s.fill(); err != nil {
			e.log.Warn("sound file read failed", "path", s.path, "err", err)
		}
		read = true
	}

	e.mu.Lock()

	if e.gen != gen || e.stream != s {
		e.mu.Unlock()
		return false
	}

	if len(s.pending) > 0 {
		n := min(len(s.pending), e.ring.Free(), len(e.scratch))
		if n == 0 {
			e.mu.Unlock()
			return read
		}

		scale(e.scratch[:n], s.pending[:n], e.volume)
		e.ring.Write(e.scratch[:n])
		s.pending = s.pending[n:]

		e.mu.Unlock()
		return true
	}

	if !s.eof {
		e.mu.Unlock()
		return read
	}

	e.ring.Flush()
	if !e.ring.Empty() {
		e.mu.Unlock()
		return read
	}

	e.stream = nil
	e.setModeLocked(Idle)
	e.mu.Unlock()

	e.closeStream(s)
	e.log.Debug("sound file finished", "path", s.path, "underruns", e.underruns.Load())

	return true
}

// scale applies the file volume.
func scale(dst, src []int16, volume float64) {
	if volume >= 1 {
		copy(dst, src)
		return
	}
	for i, v := range src {
		dst[i] = int16(float64(v) * volume)
	}
}
