package container

// Deque - double-ended object pool
//
// A doubly linked list supporting push/pop at both ends. Link
// containers are pulled from an internal NodeQueue, so removing an
// item returns its container to a secondary free list instead of
// discarding it. Once the deque has churned through enough operations
// the spare queue supplies every container and no further allocation
// happens.
//
// Length is tracked purely by operation counting - never by traversal.
// Mutating the linked structure by any path other than these methods
// desynchronizes the counter and is unsupported.

// Deque is a doubly linked FIFO/LIFO hybrid with node recycling.
type Deque[T any] struct {
	head  *Node[T]
	tail  *Node[T]
	size  int
	spare *NodeQueue[T]
}

// NewDeque creates an empty deque with its own spare-node queue.
func NewDeque[T any]() *Deque[T] {
	return &Deque[T]{spare: NewNodeQueue[T]()}
}

// Push wraps v in a recycled container and appends it at the tail.
func (d *Deque[T]) Push(v T) {
	n := d.spare.Pop()
	n.value = v
	n.prev = d.tail
	if d.tail == nil {
		d.head = n
	} else {
		d.tail.next = n
	}
	d.tail = n
	d.size++
}

// PushFirst wraps v in a recycled container and inserts it at the head.
func (d *Deque[T]) PushFirst(v T) {
	n := d.spare.Pop()
	n.value = v
	n.next = d.head
	if d.head == nil {
		d.tail = n
	} else {
		d.head.prev = n
	}
	d.head = n
	d.size++
}

// Pop removes and returns the head value - the oldest value when only
// Push has been used. The emptied container goes back to the spare
// queue. The second return value is false when the deque is empty.
func (d *Deque[T]) Pop() (T, bool) {
	var zero T
	n := d.head
	if n == nil {
		return zero, false
	}
	d.head = n.next
	if d.head == nil {
		d.tail = nil
	} else {
		d.head.prev = nil
	}
	v := n.value
	d.spare.Push(n)
	d.size--
	return v, true
}

// PopLast removes and returns the tail value, symmetric to Pop.
func (d *Deque[T]) PopLast() (T, bool) {
	var zero T
	n := d.tail
	if n == nil {
		return zero, false
	}
	d.tail = n.prev
	if d.tail == nil {
		d.head = nil
	} else {
		d.tail.next = nil
	}
	v := n.value
	d.spare.Push(n)
	d.size--
	return v, true
}

// Peek returns the head value without removing it.
func (d *Deque[T]) Peek() (T, bool) {
	var zero T
	if d.head == nil {
		return zero, false
	}
	return d.head.value, true
}

// PeekLast returns the tail value without removing it.
func (d *Deque[T]) PeekLast() (T, bool) {
	var zero T
	if d.tail == nil {
		return zero, false
	}
	return d.tail.value, true
}

// Clear detaches every live container into the spare queue and resets
// the count to zero. Future pushes reuse the recycled containers.
func (d *Deque[T]) Clear() {
	n := d.head
	for n != nil {
		next := n.next
		d.spare.Push(n)
		n = next
	}
	d.head = nil
	d.tail = nil
	d.size = 0
}

// Len returns the tracked element count in O(1).
func (d *Deque[T]) Len() int {
	return d.size
}

// Spare returns the number of recycled containers currently held by
// the spare queue.
func (d *Deque[T]) Spare() int {
	return d.spare.Len()
}

// Each traverses head to tail in insertion order, calling fn with each
// value and its position. Returning false from fn stops the traversal.
// Each call starts again from the head. The traversal is read-only;
// mutating the deque while inside fn is undefined.
func (d *Deque[T]) Each(fn func(i int, v T) bool) {
	i := 0
	for n := d.head; n != nil; n = n.next {
		if !fn(i, n.value) {
			return
		}
		i++
	}
}
