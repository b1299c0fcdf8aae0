package relational

import (
	"fmt"
)

// Relation is a named attribute set together with the dependencies that hold
// on it. Every attribute used by the dependencies belongs to the relation.
type Relation struct {
	name  string
	attrs *AttributeSet
	fds   *FDSet
}

// NewRelation validates and builds a relation from copies of attrs and fds.
func NewRelation(name string, attrs *AttributeSet, fds *FDSet) (*Relation, error) {
	if attrs.IsEmpty() {
		return nil, fmt.Errorf("relation %s: %w", name, ErrEmptyRelation)
	}
	if fds == nil {
		fds = attrs.reg.NewFDSet()
	}
	if attrs.reg != fds.reg {
		panic("relational: attributes and dependencies from different registries")
	}
	if missing := fds.Attributes().Minus(attrs); !missing.IsEmpty() {
		return nil, &SchemaError{Relation: name, Missing: missing.Names()}
	}
	return &Relation{name: name, attrs: attrs.Clone(), fds: fds.Clone()}, nil
}

// RelationFromFDs builds a relation whose attributes are exactly those used by fds.
func RelationFromFDs(name string, fds *FDSet) (*Relation, error) {
	return NewRelation(name, fds.Attributes(), fds)
}

// Name returns the relation name.
func (r *Relation) Name() string {
	return r.name
}

// Rename returns a copy of r called name.
func (r *Relation) Rename(name string) *Relation {
	return &Relation{name: name, attrs: r.attrs, fds: r.fds}
}

// Attributes returns a copy of the relation's attributes.
func (r *Relation) Attributes() *AttributeSet {
	return r.attrs.Clone()
}

// FDs returns a copy of the relation's dependencies.
func (r *Relation) FDs() *FDSet {
	return r.fds.Clone()
}

// Registry returns the registry of the relation's attributes.
func (r *Relation) Registry() *Registry {
	return r.attrs.reg
}

// Closure returns the closure of attrs under the relation's dependencies.
func (r *Relation) Closure(attrs *AttributeSet) *AttributeSet {
	return r.fds.Closure(attrs)
}

// Project returns the sub-relation on attrs, carrying the dependencies of r
// projected onto attrs.
func (r *Relation) Project(name string, attrs *AttributeSet, lim Limits) (*Relation, error) {
	fds, err := r.fds.Project(attrs, lim)
	if err != nil {
		return nil, err
	}
	return NewRelation(name, attrs, fds)
}

// Project returns a minimal set of dependencies that hold on attrs: for every
// subset X of attrs, X -> (closure(X) ∩ attrs) − X, reduced to a canonical cover.
func (s *FDSet) Project(attrs *AttributeSet, lim Limits) (*FDSet, error) {
	if err := lim.checkSubsets(attrs.Size()); err != nil {
		return nil, err
	}
	projected := s.reg.NewFDSet()
	consider := func(x *AttributeSet) {
		rhs := s.Closure(x).Intersect(attrs)
		rhs.Subtract(x)
		if !rhs.IsEmpty() {
			projected.Add(&FD{lhs: x, rhs: rhs})
		}
	}
	consider(s.reg.NewSet())
	for x := range AllSubsets(attrs) {
		consider(x)
	}
	return projected.CanonicalCover(), nil
}

// Key identifies a relation by name and attributes.
func (r *Relation) Key() string {
	return r.name + "(" + r.attrs.Key() + ")"
}

func (r *Relation) String() string {
	return fmt.Sprintf("%s(%s)", r.name, r.attrs)
}
