// Package relational implements functional dependency theory over relation
// schemas: attribute closures, canonical covers, key enumeration, and BCNF/3NF
// decomposition.
//
// Every attribute belongs to a Registry. Attribute sets, dependencies and
// relations built from different registries must not be mixed.
package relational

import "sync"

// Attribute is an interned attribute name. Two attributes from the same
// registry are equal iff their names are equal, so pointer comparison is
// sufficient.
type Attribute struct {
	reg  *Registry
	id   uint
	name string
	typ  string
}

// ID returns the attribute's position in interning order.
func (a *Attribute) ID() uint {
	return a.id
}

// Name returns the attribute name.
func (a *Attribute) Name() string {
	return a.name
}

// Type returns the declared type tag, or "" if none was set.
func (a *Attribute) Type() string {
	a.reg.mu.RLock()
	defer a.reg.mu.RUnlock()
	return a.typ
}

func (a *Attribute) String() string {
	return a.name
}

// Registry interns attribute names for one schema session.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Attribute
	byID   []*Attribute
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Attribute)}
}

// Intern returns the attribute called name, creating it on first use.
func (r *Registry) Intern(name string) *Attribute {
	r.mu.RLock()
	a, ok := r.byName[name]
	r.mu.RUnlock()
	if ok {
		return a
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.byName[name]; ok {
		return a
	}
	a = &Attribute{reg: r, id: uint(len(r.byID)), name: name}
	r.byName[name] = a
	r.byID = append(r.byID, a)
	return a
}

// Lookup returns the attribute called name without creating it.
func (r *Registry) Lookup(name string) (*Attribute, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byName[name]
	return a, ok
}

// SetType sets the type tag of an attribute. This is the only mutation an
// interned attribute allows.
func (r *Registry) SetType(a *Attribute, typ string) {
	if a.reg != r {
		panic("relational: attribute belongs to a different registry")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a.typ = typ
}

// Len returns the number of interned attributes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func (r *Registry) at(id uint) *Attribute {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id]
}
