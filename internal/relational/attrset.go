package relational

import (
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// AttributeSet is an unordered, duplicate-free set of attributes of a single
// registry. Members are enumerated in interning order.
type AttributeSet struct {
	reg  *Registry
	bits *bitset.BitSet
}

// NewSet returns a set holding the given attributes.
func (r *Registry) NewSet(attrs ...*Attribute) *AttributeSet {
	s := &AttributeSet{reg: r, bits: bitset.New(uint(r.Len()))}
	for _, a := range attrs {
		s.Add(a)
	}
	return s
}

// Attrs interns each name and returns the set of the resulting attributes.
func (r *Registry) Attrs(names ...string) *AttributeSet {
	s := r.NewSet()
	for _, n := range names {
		s.Add(r.Intern(n))
	}
	return s
}

// Registry returns the registry the set's members belong to.
func (s *AttributeSet) Registry() *Registry {
	return s.reg
}

func (s *AttributeSet) mustShare(o *AttributeSet) {
	if s.reg != o.reg {
		panic("relational: attribute sets from different registries")
	}
}

// Add inserts a and returns 1 if it was new.
func (s *AttributeSet) Add(a *Attribute) int {
	if a.reg != s.reg {
		panic("relational: attribute belongs to a different registry")
	}
	if s.bits.Test(a.id) {
		return 0
	}
	s.bits.Set(a.id)
	return 1
}

// Remove deletes a and returns 1 if it was present.
func (s *AttributeSet) Remove(a *Attribute) int {
	if a.reg != s.reg || !s.bits.Test(a.id) {
		return 0
	}
	s.bits.Clear(a.id)
	return 1
}

// Union adds all members of o and returns how many were new.
func (s *AttributeSet) Union(o *AttributeSet) int {
	s.mustShare(o)
	added := o.bits.Difference(s.bits).Count()
	if added > 0 {
		s.bits.InPlaceUnion(o.bits)
	}
	return int(added)
}

// Subtract removes all members of o and returns how many were removed.
func (s *AttributeSet) Subtract(o *AttributeSet) int {
	s.mustShare(o)
	removed := s.bits.Intersection(o.bits).Count()
	if removed > 0 {
		s.bits.InPlaceDifference(o.bits)
	}
	return int(removed)
}

// Plus returns s ∪ o.
func (s *AttributeSet) Plus(o *AttributeSet) *AttributeSet {
	s.mustShare(o)
	return &AttributeSet{reg: s.reg, bits: s.bits.Union(o.bits)}
}

// Minus returns s − o.
func (s *AttributeSet) Minus(o *AttributeSet) *AttributeSet {
	s.mustShare(o)
	return &AttributeSet{reg: s.reg, bits: s.bits.Difference(o.bits)}
}

// Intersect returns s ∩ o.
func (s *AttributeSet) Intersect(o *AttributeSet) *AttributeSet {
	s.mustShare(o)
	return &AttributeSet{reg: s.reg, bits: s.bits.Intersection(o.bits)}
}

// Without returns s − {a}.
func (s *AttributeSet) Without(a *Attribute) *AttributeSet {
	c := s.Clone()
	c.Remove(a)
	return c
}

// Contains reports whether a is a member.
func (s *AttributeSet) Contains(a *Attribute) bool {
	return a.reg == s.reg && s.bits.Test(a.id)
}

// SubsetOf reports s ⊆ o.
func (s *AttributeSet) SubsetOf(o *AttributeSet) bool {
	s.mustShare(o)
	return o.bits.IsSuperSet(s.bits)
}

// StrictSubsetOf reports s ⊂ o.
func (s *AttributeSet) StrictSubsetOf(o *AttributeSet) bool {
	return s.Size() < o.Size() && s.SubsetOf(o)
}

// Equal reports set equality.
func (s *AttributeSet) Equal(o *AttributeSet) bool {
	return s.Size() == o.Size() && s.SubsetOf(o)
}

// IsEmpty reports whether the set has no members.
func (s *AttributeSet) IsEmpty() bool {
	return s.bits.None()
}

// Size returns the number of members.
func (s *AttributeSet) Size() int {
	return int(s.bits.Count())
}

// Clone returns an independent copy.
func (s *AttributeSet) Clone() *AttributeSet {
	return &AttributeSet{reg: s.reg, bits: s.bits.Clone()}
}

// ToList returns the members in interning order.
func (s *AttributeSet) ToList() []*Attribute {
	out := make([]*Attribute, 0, s.bits.Count())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		out = append(out, s.reg.at(i))
	}
	return out
}

// Arbitrary returns some member, or false when the set is empty.
func (s *AttributeSet) Arbitrary() (*Attribute, bool) {
	i, ok := s.bits.NextSet(0)
	if !ok {
		return nil, false
	}
	return s.reg.at(i), true
}

// Names returns the member names in interning order.
func (s *AttributeSet) Names() []string {
	attrs := s.ToList()
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.name
	}
	return names
}

// Key identifies the set's contents; equal sets have equal keys.
func (s *AttributeSet) Key() string {
	var b strings.Builder
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		b.WriteString(strconv.FormatUint(uint64(i), 10))
		b.WriteByte('.')
	}
	return b.String()
}

func (s *AttributeSet) String() string {
	return strings.Join(s.Names(), ",")
}
