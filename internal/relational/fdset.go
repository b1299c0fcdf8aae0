package relational

import (
	"slices"
	"strings"

	"github.com/hurou927/db-normalize/internal/set"
)

// FDSet is a duplicate-free set of functional dependencies over one registry.
type FDSet struct {
	reg *Registry
	fds *set.Set[*FD]
}

// NewFDSet returns a set holding the given dependencies.
func (r *Registry) NewFDSet(fds ...*FD) *FDSet {
	s := &FDSet{reg: r, fds: set.New[*FD]()}
	for _, fd := range fds {
		s.Add(fd)
	}
	return s
}

// Registry returns the registry of the set's attributes.
func (s *FDSet) Registry() *Registry {
	return s.reg
}

// Add inserts fd and returns 1 if it was new.
func (s *FDSet) Add(fd *FD) int {
	if fd.Registry() != s.reg {
		panic("relational: dependency belongs to a different registry")
	}
	return s.fds.Add(fd)
}

// Remove deletes fd (by structure) and returns 1 if it was present.
func (s *FDSet) Remove(fd *FD) int {
	return s.fds.Remove(fd)
}

// Union adds every dependency of o and returns how many were new.
func (s *FDSet) Union(o *FDSet) int {
	added := 0
	for _, fd := range o.fds.ToList() {
		added += s.Add(fd)
	}
	return added
}

// Subtract removes every dependency of o and returns how many were removed.
func (s *FDSet) Subtract(o *FDSet) int {
	return s.fds.Subtract(o.fds)
}

// Contains reports whether fd is a member.
func (s *FDSet) Contains(fd *FD) bool {
	return s.fds.Contains(fd)
}

// SubsetOf reports whether every member of s is a member of o.
func (s *FDSet) SubsetOf(o *FDSet) bool {
	return s.fds.SubsetOf(o.fds)
}

// IsEmpty reports whether the set has no dependencies.
func (s *FDSet) IsEmpty() bool {
	return s.fds.IsEmpty()
}

// Size returns the number of dependencies.
func (s *FDSet) Size() int {
	return s.fds.Size()
}

// Clone returns an independent copy. FDs are immutable and shared.
func (s *FDSet) Clone() *FDSet {
	return &FDSet{reg: s.reg, fds: s.fds.Clone()}
}

// ToList returns the dependencies in insertion order.
func (s *FDSet) ToList() []*FD {
	return s.fds.ToList()
}

// Arbitrary returns some dependency, or false when the set is empty.
func (s *FDSet) Arbitrary() (*FD, bool) {
	return s.fds.Arbitrary()
}

// Attributes returns the union of all attributes mentioned by the set.
func (s *FDSet) Attributes() *AttributeSet {
	attrs := s.reg.NewSet()
	for _, fd := range s.fds.ToList() {
		attrs.Union(fd.lhs)
		attrs.Union(fd.rhs)
	}
	return attrs
}

// Within returns the dependencies whose attributes all lie inside attrs.
func (s *FDSet) Within(attrs *AttributeSet) *FDSet {
	out := s.reg.NewFDSet()
	for _, fd := range s.fds.ToList() {
		if fd.lhs.SubsetOf(attrs) && fd.rhs.SubsetOf(attrs) {
			out.Add(fd)
		}
	}
	return out
}

// SortedByLHS returns the dependencies ordered by ascending LHS size; ties
// keep insertion order.
func (s *FDSet) SortedByLHS() []*FD {
	fds := s.fds.ToList()
	slices.SortStableFunc(fds, func(a, b *FD) int {
		return a.lhs.Size() - b.lhs.Size()
	})
	return fds
}

func (s *FDSet) String() string {
	var b strings.Builder
	for _, fd := range s.SortedByLHS() {
		b.WriteString(fd.String())
		b.WriteByte('\n')
	}
	return b.String()
}
