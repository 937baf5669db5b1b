package prototype

// Prototype builder
//
// A prototype is a named template: static fields and methods, computed
// properties, a constructor, an optional destructor, and exactly one
// owned Deque acting as the free list. Building happens once per
// entity type; the prototype then lives for the duration of the
// program. Every construction pops the pool (allocating fresh only
// when it is empty) and every deletion pushes the instance back, so
// steady-state operation performs no allocation at all.

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"repool/pkg/container"
)

// Constructor initializes a popped or freshly allocated instance.
// It runs with the dispatch association detached; the prototype is
// passed explicitly so static data stays reachable during setup.
type Constructor func(p *Prototype, inst *Instance, args ...any)

// Destructor is an optional pre-deletion hook, invoked before the
// instance is returned to the pool.
type Destructor func(inst *Instance)

// Accessor implements a computed property. In read mode it is called
// with (inst, nil, false) and its return value is the property value.
// In write mode it is called with (inst, value, true) and is solely
// responsible for where the data lands - commonly a differently named
// raw field.
type Accessor func(inst *Instance, value any, write bool) any

// Decl is the declaration record consumed by Build.
type Decl struct {
	New        Constructor         // required
	Del        Destructor          // optional pre-deletion hook
	Properties map[string]Accessor // computed properties
	Statics    map[string]any      // static fields and methods

	// CleanOnConstruct wipes fields and dispatch when storage is
	// popped for reuse, before the constructor runs. Off by default:
	// a recycled instance may carry stale data from its previous
	// life, allowing lazy cleanup in the constructor.
	CleanOnConstruct bool

	// CleanOnDispose wipes fields and dispatch at delete time,
	// severing dispatch immediately instead of at next reuse. Legal
	// in combination with CleanOnConstruct.
	CleanOnDispose bool
}

// Stats counts a prototype's allocation traffic.
type Stats struct {
	FreshAllocs int // pool was empty, new storage allocated
	Recycles    int // pool supplied recycled storage
	Returns     int // instances pushed back to the pool
	Live        int // instances currently held by callers
}

// Prototype is a completed template produced by Build.
type Prototype struct {
	name             string
	ctor             Constructor
	dtor             Destructor
	properties       map[string]Accessor
	statics          map[string]any
	cleanOnConstruct bool
	cleanOnDispose   bool
	pool             *container.Deque[*Instance]
	log              logrus.FieldLogger
	stats            Stats
}

// discardLogger keeps the library silent unless a caller wires a real
// logger through the registry.
func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Build produces a complete prototype from a declaration. The
// constructor is required; a declaration without one fails loudly
// with ErrNoConstructor rather than producing a factory that has
// nothing to delegate to.
func Build(name string, d Decl) (*Prototype, error) {
	return build(name, d, discardLogger())
}

func build(name string, d Decl, log logrus.FieldLogger) (*Prototype, error) {
	if d.New == nil {
		return nil, fmt.Errorf("build %q: %w", name, ErrNoConstructor)
	}
	props := d.Properties
	if props == nil {
		props = map[string]Accessor{}
	}
	statics := d.Statics
	if statics == nil {
		statics = map[string]any{}
	}
	return &Prototype{
		name:             name,
		ctor:             d.New,
		dtor:             d.Del,
		properties:       props,
		statics:          statics,
		cleanOnConstruct: d.CleanOnConstruct,
		cleanOnDispose:   d.CleanOnDispose,
		pool:             container.NewDeque[*Instance](),
		log:              log.WithField("prototype", name),
	}, nil
}

// New constructs an instance: pop the pool, or allocate fresh storage
// if it is empty. The storage is wiped first when CleanOnConstruct is
// set, otherwise only the dispatch association is cleared and stale
// fields survive into the constructor. The user constructor runs
// detached, then dispatch is reattached and the Live instance
// returned.
func (p *Prototype) New(args ...any) *Instance {
	inst, ok := p.pool.Pop()
	if ok {
		p.stats.Recycles++
	} else {
		inst = &Instance{owner: p, fields: make(map[string]any)}
		p.stats.FreshAllocs++
		p.log.WithFields(logrus.Fields{
			"fresh_allocs": p.stats.FreshAllocs,
			"live":         p.stats.Live + 1,
		}).Debug("pool empty, allocated fresh instance")
	}
	if p.cleanOnConstruct {
		inst.wipe()
	} else {
		inst.proto = nil
	}
	inst.gen++
	inst.state = StateLive
	p.stats.Live++
	p.ctor(p, inst, args...)
	inst.proto = p
	return inst
}

// Del deletes an instance: the user destructor runs first, then the
// fields and dispatch are wiped if CleanOnDispose is set, and the
// instance is pushed onto the pool unconditionally. Deletion is never
// literal deallocation - the storage stays owned by the pool for
// reuse.
//
// Deleting an instance twice would enqueue the same storage twice and
// corrupt the free list, so a non-Live instance fails loudly with
// ErrNotLive.
func (p *Prototype) Del(inst *Instance) error {
	if inst == nil {
		return fmt.Errorf("delete on %q: nil instance: %w", p.name, ErrNotLive)
	}
	if inst.owner != p {
		return fmt.Errorf("delete on %q: %w", p.name, ErrForeignInstance)
	}
	if inst.state != StateLive {
		return fmt.Errorf("delete on %q: instance is %s: %w", p.name, inst.state, ErrNotLive)
	}
	if p.dtor != nil {
		p.dtor(inst)
	}
	if p.cleanOnDispose {
		inst.wipe()
		inst.state = StateWiped
	} else {
		inst.state = StateRecycled
	}
	p.pool.Push(inst)
	p.stats.Returns++
	p.stats.Live--
	return nil
}

// Acquire constructs an instance together with a release function
// meant for defer, so disposal is not solely caller-initiated:
//
//	inst, release := p.Acquire()
//	defer release()
//
// Release is idempotent; a second call is a no-op.
func (p *Prototype) Acquire(args ...any) (*Instance, func()) {
	inst := p.New(args...)
	released := false
	return inst, func() {
		if released {
			return
		}
		released = true
		if err := p.Del(inst); err != nil {
			p.log.WithError(err).Warn("scoped release failed")
		}
	}
}

// Name returns the prototype's registered name.
func (p *Prototype) Name() string {
	return p.name
}

// Pool exposes the prototype's free list with the full deque surface
// (push, pop at both ends, peek, clear, length, traversal).
func (p *Prototype) Pool() *container.Deque[*Instance] {
	return p.pool
}

// Static returns a static field or method by name.
func (p *Prototype) Static(name string) (any, bool) {
	v, ok := p.statics[name]
	return v, ok
}

// Stats returns a snapshot of the prototype's allocation counters.
func (p *Prototype) Stats() Stats {
	return p.stats
}
