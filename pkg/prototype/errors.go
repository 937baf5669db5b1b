package prototype

import "errors"

// Usage errors. These cover misuse that would otherwise corrupt the
// free list silently - the policy is to fail loudly at the call that
// caused them. Expected-empty conditions (popping an empty pool or
// queue) are never errors; they are reported through boolean returns.
var (
	// ErrNoConstructor means a declaration was built without a New
	// function. There is nothing for the factory to delegate to.
	ErrNoConstructor = errors.New("declaration has no constructor")

	// ErrNotLive means a lifecycle operation was applied to an
	// instance that is already recycled - most commonly a double
	// deletion, which would push the instance onto the pool twice.
	ErrNotLive = errors.New("instance is not live")

	// ErrForeignInstance means an instance was handed to a prototype
	// that does not own it.
	ErrForeignInstance = errors.New("instance owned by another prototype")

	// ErrStaleHandle means a generational handle outlived its
	// instance's current life: the storage was recycled and reissued
	// since the handle was taken.
	ErrStaleHandle = errors.New("stale handle: instance was recycled")

	// ErrScopeClosed means an instance was requested from a scope
	// that has already torn down.
	ErrScopeClosed = errors.New("scope already closed")

	// ErrDuplicate means a registry already holds a prototype under
	// the requested name.
	ErrDuplicate = errors.New("prototype already defined")
)
