package container

// Node-Recycling Queue - the substrate the Deque is built on
//
// A singly linked FIFO of container nodes. The defining property is
// that Pop never reports empty: when the queue has no nodes it
// synthesizes a brand-new one, so a caller asking for a container
// always gets a container. Allocation cost is paid only the first time
// through; once enough nodes have been recycled the queue never
// allocates again.
//
// The queue never shrinks its logical storage - nodes pushed back stay
// available until the queue itself is collected.

// Node is a link container. It carries both next and prev links so the
// same container type serves the singly linked NodeQueue and the doubly
// linked Deque.
type Node[T any] struct {
	value T
	next  *Node[T]
	prev  *Node[T]
}

// Value returns the value currently held by the node.
func (n *Node[T]) Value() T {
	return n.value
}

// reset detaches the node and clears its value slot.
func (n *Node[T]) reset() {
	var zero T
	n.value = zero
	n.next = nil
	n.prev = nil
}

// NodeQueue is a singly linked FIFO of recycled Node containers.
type NodeQueue[T any] struct {
	head *Node[T]
	tail *Node[T]
	size int
}

// NewNodeQueue creates an empty node queue.
func NewNodeQueue[T any]() *NodeQueue[T] {
	return &NodeQueue[T]{}
}

// Push appends an existing container as the new tail. The node's value
// and links are cleared on entry; a recycled node carries nothing over
// from its previous life.
func (q *NodeQueue[T]) Push(n *Node[T]) {
	n.reset()
	if q.tail == nil {
		q.head = n
		q.tail = n
	} else {
		q.tail.next = n
		q.tail = n
	}
	q.size++
}

// Pop removes and returns the head container. When the queue is empty
// it synthesizes a fresh node instead of signalling empty - this is
// what lets the Deque "always get a node" without branching.
func (q *NodeQueue[T]) Pop() *Node[T] {
	if q.head == nil {
		return &Node[T]{}
	}
	n := q.head
	q.head = n.next
	if q.head == nil {
		q.tail = nil
	}
	n.next = nil
	q.size--
	return n
}

// Len returns the number of recycled nodes currently queued.
func (q *NodeQueue[T]) Len() int {
	return q.size
}
