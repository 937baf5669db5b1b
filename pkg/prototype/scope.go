package prototype

// Scoped teardown
//
// A Scope gives block-structured code a single teardown point: every
// instance constructed through (or adopted by) the scope is deleted
// when the scope closes, newest first. Callers opt in; nothing in the
// core lifecycle depends on scopes.
//
//	s := prototype.NewScope()
//	defer s.Close()
//	v := s.New(vec)
//	...

// Scope tracks instances for collective deletion at scope exit.
type Scope struct {
	owned  []*Instance
	closed bool
}

// NewScope creates an open scope.
func NewScope() *Scope {
	return &Scope{}
}

// New constructs an instance from p and places it under the scope's
// ownership. Fails with ErrScopeClosed after Close.
func (s *Scope) New(p *Prototype, args ...any) (*Instance, error) {
	if s.closed {
		return nil, ErrScopeClosed
	}
	inst := p.New(args...)
	s.owned = append(s.owned, inst)
	return inst, nil
}

// Adopt places an already-Live instance under the scope's ownership.
func (s *Scope) Adopt(inst *Instance) error {
	if s.closed {
		return ErrScopeClosed
	}
	if inst == nil || inst.state != StateLive {
		return ErrNotLive
	}
	s.owned = append(s.owned, inst)
	return nil
}

// Close deletes every owned instance in reverse construction order
// and marks the scope closed. Deletion continues past failures; the
// first error is returned. Closing twice is a no-op.
func (s *Scope) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var first error
	for i := len(s.owned) - 1; i >= 0; i-- {
		inst := s.owned[i]
		s.owned[i] = nil
		if err := inst.owner.Del(inst); err != nil && first == nil {
			first = err
		}
	}
	s.owned = nil
	return first
}

// Len returns the number of instances the scope currently owns.
func (s *Scope) Len() int {
	return len(s.owned)
}
