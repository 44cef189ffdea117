package frame

import "time"

// Callback runs once when the host is ready for the next frame.
type Callback func(now time.Time)

// Scheduler is the host's frame-pacing primitive. A registered callback
// runs at most once; callers re-register for every frame.
type Scheduler interface {
	RequestFrame(cb Callback)
}

// Queue is a Scheduler pumped by the host loop. Callbacks registered
// while flushing run on the next Flush.
type Queue struct {
	pending []Callback
	spare   []Callback
}

// RequestFrame implements Scheduler.
func (q *Queue) RequestFrame(cb Callback) {
	if cb != nil {
		q.pending = append(q.pending, cb)
	}
}

// Pending returns how many callbacks wait for the next Flush.
func (q *Queue) Pending() int {
	return len(q.pending)
}

// Flush runs every callback registered before the call and returns how
// many ran.
func (q *Queue) Flush(now time.Time) int {
	batch := q.pending
	q.pending = q.spare[:0]
	for _, cb := range batch {
		cb(now)
	}
	clear(batch)
	q.spare = batch[:0]
	return len(batch)
}
