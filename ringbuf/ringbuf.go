// SPDX-License-Identifier: EPL-2.0

package ringbuf

import (
	"sync/atomic"
)

// Default geometry: 96 frames of 1024 samples, about six seconds of 16 kHz
// audio.
const (
	DefaultFrameSize = 1024
	DefaultFrames    = 96
)

// Buffer is a single-producer single-consumer ring of fixed-size PCM frames.
//
// The producer calls Write, Flush and Reset; the consumer calls ReadFrame.
// Neither side takes a lock. The cursors are frame counters that only grow,
// and the slot of a counter is counter % frames. At most frames-1 frames are
// populated at any time, so the producer's partial frame never shares a slot
// with the frame the consumer is copying.
type Buffer struct {
	data      []int16
	frameSize int
	frames    int

	write atomic.Uint64 // committed frames, stored by the producer
	read  atomic.Uint64 // consumed frames, advanced by the consumer

	fill int // samples in the producer's partial frame, producer only

	freed chan struct{}
}

// New allocates a ring of frames slots of frameSize samples each. Values
// below the minimum (2 frames, 1 sample) are raised to it.
func New(frameSize, frames int) *Buffer {
	frameSize = max(frameSize, 1)
	frames = max(frames, 2)

	return &Buffer{
		data:      make([]int16, frameSize*frames),
		frameSize: frameSize,
		frames:    frames,
		freed:     make(chan struct{}, 1),
	}
}

func (b *Buffer) slot(counter uint64) []int16 {
	i := int(counter%uint64(b.frames)) * b.frameSize
	return b.data[i : i+b.frameSize]
}

// FrameSize is the number of samples per frame.
func (b *Buffer) FrameSize() int { return b.frameSize }

// Capacity is the most frames that can be populated at once.
func (b *Buffer) Capacity() int { return b.frames - 1 }

// Populated is the number of committed frames not yet read.
func (b *Buffer) Populated() int {
	return int(b.write.Load() - b.read.Load())
}

// Empty reports whether there is nothing committed or pending in the
// producer's partial frame.
func (b *Buffer) Empty() bool {
	return b.Populated() == 0 && b.fill == 0
}

// Free is the number of samples Write would accept right now. Producer only.
func (b *Buffer) Free() int {
	return (b.Capacity()-b.Populated())*b.frameSize - b.fill
}

// Write copies as much of src as fits and returns the count. Full frames
// are committed as they fill; a trailing partial frame stays with the
// producer until more samples or a Flush complete it.
func (b *Buffer) Write(src []int16) int {
	written := 0

	for len(src) > 0 {
		w := b.write.Load()
		if w-b.read.Load() >= uint64(b.Capacity()) {
			break
		}

		n := copy(b.slot(w)[b.fill:], src)
		b.fill += n
		src = src[n:]
		written += n

		if b.fill == b.frameSize {
			b.fill = 0
			b.write.Store(w + 1)
		}
	}

	return written
}

// Flush pads the partial frame with silence and commits it. A partial
// frame is only started when its commit fits, so Flush never waits.
func (b *Buffer) Flush() {
	if b.fill == 0 {
		return
	}

	w := b.write.Load()
	clear(b.slot(w)[b.fill:])
	b.fill = 0
	b.write.Store(w + 1)
}

// ReadFrame copies the oldest committed frame into dst and releases its
// slot. It returns false when nothing is populated or when a Reset
// discarded the frame during the copy. dst must hold FrameSize samples.
func (b *Buffer) ReadFrame(dst []int16) bool {
	r := b.read.Load()
	if r == b.write.Load() {
		return false
	}

	copy(dst, b.slot(r))

	if !b.read.CompareAndSwap(r, r+1) {
		return false
	}

	select {
	case b.freed <- struct{}{}:
	default:
	}

	return true
}

// Reset discards everything committed and the partial frame. Producer only;
// safe against a concurrent ReadFrame.
func (b *Buffer) Reset() {
	b.fill = 0

	for {
		r := b.read.Load()
		if b.read.CompareAndSwap(r, b.write.Load()) {
			return
		}
	}
}

// Freed is signalled, coalesced, whenever the consumer releases a frame.
// Producers blocked on a full ring wait on it.
func (b *Buffer) Freed() <-chan struct{} { return b.freed }
