package container

// Stack is a minimal array-backed LIFO.
//
// It exists as the primitive the pooling layers are built from, but is
// exported as a general-purpose utility. Pop on an empty stack is an
// expected outcome, reported through the second return value rather
// than an error.
type Stack[T any] struct {
	items []T
}

// NewStack creates an empty stack with optional preallocated capacity.
func NewStack[T any](capacity int) *Stack[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Stack[T]{items: make([]T, 0, capacity)}
}

// Push appends v and returns it.
func (s *Stack[T]) Push(v T) T {
	s.items = append(s.items, v)
	return v
}

// Pop removes and returns the most recently pushed value.
// The second return value is false when the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	n := len(s.items)
	if n == 0 {
		return zero, false
	}
	v := s.items[n-1]
	s.items[n-1] = zero // release the slot so pooled pointers are not retained
	s.items = s.items[:n-1]
	return v, true
}

// Clear resets the stack to empty. Slots are zeroed so the backing
// array does not keep popped values reachable.
func (s *Stack[T]) Clear() {
	var zero T
	for i := range s.items {
		s.items[i] = zero
	}
	s.items = s.items[:0]
}

// Count returns the number of stacked values in O(1).
func (s *Stack[T]) Count() int {
	return len(s.items)
}
