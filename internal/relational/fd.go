package relational

// FD is a functional dependency lhs -> rhs. FDs are immutable once built;
// identity is structural on the two attribute sets.
type FD struct {
	lhs         *AttributeSet
	rhs         *AttributeSet
	multivalued bool
}

// NewFD builds lhs -> rhs from copies of its arguments.
func NewFD(lhs, rhs *AttributeSet) *FD {
	lhs.mustShare(rhs)
	return &FD{lhs: lhs.Clone(), rhs: rhs.Clone()}
}

// LHS returns a copy of the determinant.
func (f *FD) LHS() *AttributeSet {
	return f.lhs.Clone()
}

// RHS returns a copy of the dependent set.
func (f *FD) RHS() *AttributeSet {
	return f.rhs.Clone()
}

// Multivalued reports whether the dependency was declared with the
// multivalued arrow. The flag does not take part in equality.
func (f *FD) Multivalued() bool {
	return f.multivalued
}

// AsMultivalued returns a copy of f with the multivalued flag set to mv.
func (f *FD) AsMultivalued(mv bool) *FD {
	return &FD{lhs: f.lhs, rhs: f.rhs, multivalued: mv}
}

// Registry returns the registry of the FD's attributes.
func (f *FD) Registry() *Registry {
	return f.lhs.reg
}

// Attributes returns lhs ∪ rhs.
func (f *FD) Attributes() *AttributeSet {
	return f.lhs.Plus(f.rhs)
}

// IsTrivial reports rhs ⊆ lhs.
func (f *FD) IsTrivial() bool {
	return f.rhs.SubsetOf(f.lhs)
}

// IsDegenerate reports an FD with no attributes at all.
func (f *FD) IsDegenerate() bool {
	return f.lhs.IsEmpty() && f.rhs.IsEmpty()
}

// Equal compares lhs and rhs as sets.
func (f *FD) Equal(g *FD) bool {
	return f.lhs.Equal(g.lhs) && f.rhs.Equal(g.rhs)
}

// Augment applies the augmentation rule with a single attribute.
func (f *FD) Augment(a *Attribute) *FD {
	lhs, rhs := f.lhs.Clone(), f.rhs.Clone()
	lhs.Add(a)
	rhs.Add(a)
	return &FD{lhs: lhs, rhs: rhs}
}

// Transitive applies the transitivity rule: when f2.lhs ⊆ f1.rhs it returns
// f1.lhs -> f1.rhs ∪ f2.rhs. Otherwise the rule does not apply and ok is false.
func Transitive(f1, f2 *FD) (fd *FD, ok bool) {
	if !f2.lhs.SubsetOf(f1.rhs) {
		return nil, false
	}
	return &FD{lhs: f1.lhs.Clone(), rhs: f1.rhs.Plus(f2.rhs)}, true
}

// Key identifies the dependency structurally.
func (f *FD) Key() string {
	return f.lhs.Key() + ">" + f.rhs.Key()
}

func (f *FD) String() string {
	arrow := "->"
	if f.multivalued {
		arrow = "->>"
	}
	return f.lhs.String() + arrow + f.rhs.String()
}
