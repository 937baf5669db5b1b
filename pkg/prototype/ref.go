package prototype

// Generational handles - recycle-aware references
//
// Pooled storage is reused deliberately, so a plain *Instance kept
// across a delete/reconstruct cycle silently aliases a different
// logical object. A Handle is a fat pointer that remembers the
// generation it was taken at; once the storage is recycled and
// reissued the generations diverge and every access fails loudly with
// ErrStaleHandle instead of reading the new occupant's data.
//
// Generations are sequential, bumped by the factory on every reuse.
// A debug aid: the core construction and deletion paths never require
// handles.

import "fmt"

// Handle is a generational reference to an instance.
type Handle struct {
	target *Instance
	gen    uint64
}

// Ref captures a handle to the instance at its current generation.
func (inst *Instance) Ref() Handle {
	return Handle{target: inst, gen: inst.gen}
}

// Live reports whether the handle still refers to the same life of
// the instance, in O(1).
func (h Handle) Live() bool {
	return h.target != nil && h.target.gen == h.gen && h.target.state == StateLive
}

// Instance returns the referenced instance, or ErrStaleHandle if the
// storage has been recycled since the handle was taken.
func (h Handle) Instance() (*Instance, error) {
	if h.target == nil {
		return nil, fmt.Errorf("nil handle: %w", ErrStaleHandle)
	}
	if h.target.gen != h.gen || h.target.state != StateLive {
		return nil, fmt.Errorf(
			"handle generation %d, instance generation %d (%s): %w",
			h.gen, h.target.gen, h.target.state, ErrStaleHandle,
		)
	}
	return h.target, nil
}

// Get reads through the dispatch rule after validating the handle.
// The second return value mirrors Instance.Get: absence of the name
// is not an error, a stale handle is.
func (h Handle) Get(name string) (any, bool, error) {
	inst, err := h.Instance()
	if err != nil {
		return nil, false, err
	}
	v, ok := inst.Get(name)
	return v, ok, nil
}

// Set writes through the dispatch rule after validating the handle.
func (h Handle) Set(name string, v any) error {
	inst, err := h.Instance()
	if err != nil {
		return err
	}
	inst.Set(name, v)
	return nil
}
