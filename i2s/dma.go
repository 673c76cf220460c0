// SPDX-License-Identifier: EPL-2.0

package i2s

import (
	"sync"
)

// DMAQueue models the transmit DMA ring: software pushes whole buffers,
// the hardware side pulls samples at the output rate and plays silence when
// nothing is queued. Every finished buffer, silent or not, is reported on
// Consumed.
type DMAQueue struct {
	mu       sync.Mutex
	queued   [][]int16
	spare    [][]int16
	depth    int
	size     int
	cur      []int16
	pos      int
	idle     bool // cur is the shared silence buffer
	zero     []int16
	silent   uint64
	played   uint64
	consumed chan struct{}
}

// NewDMAQueue returns a queue of depth buffers of size samples.
func NewDMAQueue(size, depth int) *DMAQueue {
	q := &DMAQueue{
		depth:    depth,
		size:     size,
		zero:     make([]int16, size),
		consumed: make(chan struct{}, depth),
	}
	for range depth {
		q.spare = append(q.spare, make([]int16, size))
	}
	return q
}

// Prime reports every buffer as free so the producer can fill the queue
// before the first interrupt.
func (q *DMAQueue) Prime() {
	for range q.depth {
		q.signal()
	}
}

func (q *DMAQueue) signal() {
	select {
	case q.consumed <- struct{}{}:
	default:
	}
}

// Push copies frame into a free buffer.
func (q *DMAQueue) Push(frame []int16) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.spare) == 0 {
		return ErrQueueFull
	}

	buf := q.spare[len(q.spare)-1]
	q.spare = q.spare[:len(q.spare)-1]

	n := copy(buf, frame)
	clear(buf[n:])
	q.queued = append(q.queued, buf)

	return nil
}

// Pull fills dst with the next samples to play. It always fills dst
// completely, using silence when the queue runs dry.
func (q *DMAQueue) Pull(dst []int16) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := 0; i < len(dst); {
		if q.cur == nil {
			if len(q.queued) > 0 {
				q.cur, q.idle = q.queued[0], false
				q.queued = q.queued[1:]
			} else {
				q.cur, q.idle = q.zero, true
			}
			q.pos = 0
		}

		n := copy(dst[i:], q.cur[q.pos:])
		q.pos += n
		i += n

		if q.pos == len(q.cur) {
			if q.idle {
				q.silent++
			} else {
				q.spare = append(q.spare, q.cur)
			}
			q.cur = nil
			q.played++
			q.signal()
		}
	}

	return len(dst)
}

// Clear zeroes everything queued and the rest of the buffer being played.
func (q *DMAQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, b := range q.queued {
		clear(b)
	}
	if q.cur != nil && !q.idle {
		clear(q.cur[q.pos:])
	}
}

// Queued is the number of buffers waiting to play.
func (q *DMAQueue) Queued() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queued)
}

// Played is the number of buffers finished so far, and how many of them
// were silence because nothing was queued.
func (q *DMAQueue) Played() (total, silent uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.played, q.silent
}

func (q *DMAQueue) Consumed() <-chan struct{} { return q.consumed }
