package prototype

// Volatile Queue - deferred, batched, incremental reclamation
//
// Pipelines that produce many short-lived intermediate results can
// mark each one volatile instead of deleting it inline, then reclaim
// the whole batch at a controlled point in the scheduling loop. The
// queue holds non-owning references: a marked instance stays Live and
// usable until it is drained.
//
// DrainAll performs unbounded work and is meant for a point where a
// pause is acceptable. DrainOne touches exactly one instance and
// leaves the queue fully consistent between calls, so it is safe to
// call once per cooperative scheduling slice. Single logical mutator;
// no locking.

import "github.com/sirupsen/logrus"

// VolatileQueue is an ordered buffer of Live instances awaiting
// deferred deletion, oldest at the head.
type VolatileQueue struct {
	items []*Instance
	log   logrus.FieldLogger
}

// NewVolatileQueue creates an empty volatile queue.
func NewVolatileQueue() *VolatileQueue {
	return &VolatileQueue{log: discardLogger()}
}

// Mark appends inst to the tail. Marking an already-volatile instance
// is a no-op, detected in O(1) through the instance's own flag.
func (q *VolatileQueue) Mark(inst *Instance) {
	if inst == nil || inst.volatile {
		return
	}
	inst.volatile = true
	q.items = append(q.items, inst)
}

// Unmark removes inst from the queue without reclaiming it, scanning
// from the tail toward the head - recently marked instances are the
// common case. Not found is a no-op, not a failure.
func (q *VolatileQueue) Unmark(inst *Instance) {
	for i := len(q.items) - 1; i >= 0; i-- {
		if q.items[i] == inst {
			q.removeAt(i)
			inst.volatile = false
			return
		}
	}
}

// PopIfTop removes and reclaims the tail entry only if it is inst,
// in O(1); otherwise the queue is left unchanged. Intended for the
// pattern "mark the new result volatile, then immediately reclaim it
// if nothing else was queued meanwhile". The first return value
// reports whether the entry was removed.
func (q *VolatileQueue) PopIfTop(inst *Instance) (bool, error) {
	n := len(q.items)
	if n == 0 || q.items[n-1] != inst {
		return false, nil
	}
	q.items[n-1] = nil
	q.items = q.items[:n-1]
	return true, q.reclaim(inst)
}

// DrainAll reclaims every queued instance oldest-first in a single
// uninterrupted batch and empties the queue. Returns the number of
// instances reclaimed; on error the erroring entry has already been
// removed and draining stops, leaving the queue consistent.
func (q *VolatileQueue) DrainAll() (int, error) {
	drained := 0
	for len(q.items) > 0 {
		ok, err := q.DrainOne()
		if ok {
			drained++
		}
		if err != nil {
			return drained, err
		}
	}
	if drained > 0 {
		q.log.WithField("drained", drained).Debug("volatile batch reclaimed")
	}
	return drained, nil
}

// DrainOne removes and reclaims exactly the head entry - the oldest -
// bounding the work performed per call. Returns false when the queue
// is empty.
func (q *VolatileQueue) DrainOne() (bool, error) {
	if len(q.items) == 0 {
		return false, nil
	}
	inst := q.items[0]
	q.removeAt(0)
	return true, q.reclaim(inst)
}

// Len returns the number of queued instances.
func (q *VolatileQueue) Len() int {
	return len(q.items)
}

// reclaim runs the deletion path through the owning prototype. An
// instance deleted behind the queue's back surfaces here as ErrNotLive
// rather than corrupting the pool with a second push.
func (q *VolatileQueue) reclaim(inst *Instance) error {
	inst.volatile = false
	return inst.owner.Del(inst)
}

// removeAt slides the tail over slot i and nils the vacated slot so
// reclaimed instances are not retained by the backing array.
func (q *VolatileQueue) removeAt(i int) {
	copy(q.items[i:], q.items[i+1:])
	q.items[len(q.items)-1] = nil
	q.items = q.items[:len(q.items)-1]
}
