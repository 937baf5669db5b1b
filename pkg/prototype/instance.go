package prototype

// Instance lifecycle and dispatch
//
// An instance is a mutable field container tied to exactly one owning
// prototype. At any instant it is in exactly one of three states:
//
//   Live             - returned to a caller, fully dispatchable
//   Recycled         - owned by the pool, data intact (lazy cleanup)
//   Wiped            - owned by the pool, data and dispatch severed
//
// Identity is preserved across recycle/reuse: the same storage is
// handed back out, which is the whole mechanism that avoids
// allocation. The state tag makes post-recycle reads a visible check
// instead of silent aliasing.

// State identifies where an instance is in its recycle lifecycle.
type State int

const (
	StateLive     State = iota // held by a caller
	StateRecycled              // on the pool, fields intact
	StateWiped                 // on the pool, fields and dispatch cleared
)

func (s State) String() string {
	switch s {
	case StateLive:
		return "live"
	case StateRecycled:
		return "recycled"
	case StateWiped:
		return "wiped"
	default:
		return "unknown"
	}
}

// Instance is one concrete object conforming to a prototype.
type Instance struct {
	owner    *Prototype // set at allocation, never cleared; pool return path
	proto    *Prototype // dispatch association; nil while detached
	fields   map[string]any
	gen      uint64
	state    State
	volatile bool // queued on a volatile queue
}

// Get reads name through the dispatch rule: own raw field first, then
// the prototype's static fields and methods, then registered
// properties in read mode. Absence is an expected outcome, reported
// through the second return value. A wiped or detached instance
// resolves nothing.
func (inst *Instance) Get(name string) (any, bool) {
	if inst.proto == nil {
		return nil, false
	}
	if v, ok := inst.fields[name]; ok {
		return v, true
	}
	if v, ok := inst.proto.statics[name]; ok {
		return v, true
	}
	if acc, ok := inst.proto.properties[name]; ok {
		return acc(inst, nil, false), true
	}
	return nil, false
}

// Set writes name through the dispatch rule: a registered property
// receives the value in write mode and decides where the data lands;
// any other name is stored as a raw field, shadowing a static of the
// same name for this instance only.
func (inst *Instance) Set(name string, v any) {
	if inst.proto != nil {
		if acc, ok := inst.proto.properties[name]; ok {
			acc(inst, v, true)
			return
		}
	}
	inst.fields[name] = v
}

// Has reports whether name resolves through the dispatch rule without
// invoking property accessors.
func (inst *Instance) Has(name string) bool {
	if inst.proto == nil {
		return false
	}
	if _, ok := inst.fields[name]; ok {
		return true
	}
	if _, ok := inst.proto.statics[name]; ok {
		return true
	}
	_, ok := inst.proto.properties[name]
	return ok
}

// Unset removes a raw field, unshadowing any static of the same name.
func (inst *Instance) Unset(name string) {
	delete(inst.fields, name)
}

// State returns the instance's lifecycle state.
func (inst *Instance) State() State {
	return inst.state
}

// Generation returns the current reuse generation. It is bumped every
// time the storage is handed out by the factory.
func (inst *Instance) Generation() uint64 {
	return inst.gen
}

// Proto returns the currently attached prototype, or nil while the
// instance is detached (mid-construction or wiped).
func (inst *Instance) Proto() *Prototype {
	return inst.proto
}

// Owner returns the prototype whose pool this storage belongs to.
// Unlike the dispatch association it is never cleared.
func (inst *Instance) Owner() *Prototype {
	return inst.owner
}

// wipe clears every raw field and severs the dispatch association,
// leaving an inert record unusable as a typed instance until
// reconstructed.
func (inst *Instance) wipe() {
	for k := range inst.fields {
		delete(inst.fields, k)
	}
	inst.proto = nil
}
