package prototype

// Registry - explicit prototype ownership
//
// Prototypes are defined once, at startup, against a registry value
// whose lifecycle is owned by the composition root and passed by
// reference to anything that creates prototypes. There is no
// module-level singleton mutated at load time.

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// Registry holds named prototypes and the logger they share.
type Registry struct {
	protos map[string]*Prototype
	log    logrus.FieldLogger
}

// Option configures a registry at construction.
type Option func(*Registry)

// WithLogger wires a logger into the registry. Every prototype defined
// afterwards logs pool growth and drain batches through it at Debug
// level, tagged with its name.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRegistry creates an empty registry. Without WithLogger the
// registry is silent.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		protos: make(map[string]*Prototype),
		log:    discardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Define builds a prototype from the declaration and registers it
// under name. Redefining a name fails loudly with ErrDuplicate; a
// declaration without a constructor fails with ErrNoConstructor.
func (r *Registry) Define(name string, d Decl) (*Prototype, error) {
	if _, ok := r.protos[name]; ok {
		return nil, fmt.Errorf("define %q: %w", name, ErrDuplicate)
	}
	p, err := build(name, d, r.log)
	if err != nil {
		return nil, err
	}
	r.protos[name] = p
	r.log.WithField("prototype", name).Debug("prototype defined")
	return p, nil
}

// Lookup returns the prototype registered under name.
func (r *Registry) Lookup(name string) (*Prototype, bool) {
	p, ok := r.protos[name]
	return p, ok
}

// NewVolatileQueue creates a volatile queue sharing the registry's
// logger.
func (r *Registry) NewVolatileQueue() *VolatileQueue {
	return &VolatileQueue{log: r.log}
}

// Names returns the registered prototype names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.protos))
	for name := range r.protos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered prototypes.
func (r *Registry) Len() int {
	return len(r.protos)
}
