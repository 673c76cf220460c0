// SPDX-License-Identifier: EPL-2.0

package notation

import "fmt"

// DefaultCapacity is the pending score limit in characters.
const DefaultCapacity = 4000

// Queue holds score text not yet played. Appends add to the tail, parsing
// consumes from the head through a cursor.
//
// Queue is not safe for concurrent use; the engine guards it with its lock.
type Queue struct {
	text     string
	pos      int
	capacity int
}

// NewQueue returns an empty queue holding at most capacity pending
// characters. A non-positive capacity selects DefaultCapacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{capacity: capacity}
}

// Append adds notes to the tail. If the result would exceed the capacity
// the queue is left untouched and ErrQueueFull is returned.
func (q *Queue) Append(notes string) error {
	if !q.Fits(len(notes)) {
		return fmt.Errorf("%w: %d pending + %d new > %d", ErrQueueFull, q.Len(), len(notes), q.capacity)
	}

	q.text = q.text[q.pos:] + notes
	q.pos = 0

	return nil
}

// Fits reports whether n more characters can be appended.
func (q *Queue) Fits(n int) bool {
	return q.Len()+n <= q.capacity
}

// Next parses the next event from the head. When the text is malformed the
// whole queue is discarded and the error wraps ErrSyntax.
func (q *Queue) Next(st *State) (Event, bool, error) {
	ev, end, ok, err := next(q.text, q.pos, st)
	if err != nil {
		q.Clear()
		return Event{}, false, err
	}

	q.pos = end
	if q.pos == len(q.text) {
		q.text, q.pos = "", 0
	}

	return ev, ok, nil
}

// Len is the number of pending characters.
func (q *Queue) Len() int { return len(q.text) - q.pos }

// Empty reports whether nothing is pending.
func (q *Queue) Empty() bool { return q.Len() == 0 }

// Cap is the capacity in characters.
func (q *Queue) Cap() int { return q.capacity }

// Pending returns the unparsed text.
func (q *Queue) Pending() string { return q.text[q.pos:] }

// Clear drops everything pending.
func (q *Queue) Clear() {
	q.text, q.pos = "", 0
}
