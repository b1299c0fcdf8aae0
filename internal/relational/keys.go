package relational

import "github.com/hurou927/db-normalize/internal/set"

// IsSuperKey reports whether the closure of attrs covers the whole relation.
func (r *Relation) IsSuperKey(attrs *AttributeSet) bool {
	return r.attrs.SubsetOf(r.fds.Closure(attrs))
}

// SuperKeys returns every attribute subset of r that is a superkey, smallest
// first.
func (r *Relation) SuperKeys(lim Limits) (*set.Set[*AttributeSet], error) {
	plus, err := r.fds.ClosureBySubsets(r.attrs, lim)
	if err != nil {
		return nil, err
	}
	keys := set.New[*AttributeSet]()
	for _, fd := range plus.ToList() {
		if r.attrs.SubsetOf(fd.rhs) {
			keys.Add(fd.lhs.Clone())
		}
	}
	return keys, nil
}

// CandidateKeys returns the minimal superkeys of r, smallest first.
func (r *Relation) CandidateKeys(lim Limits) (*set.Set[*AttributeSet], error) {
	supers, err := r.SuperKeys(lim)
	if err != nil {
		return nil, err
	}
	all := supers.ToList()
	keys := set.New[*AttributeSet]()
	for _, k := range all {
		minimal := true
		for _, other := range all {
			if other.StrictSubsetOf(k) {
				minimal = false
				break
			}
		}
		if minimal {
			keys.Add(k)
		}
	}
	return keys, nil
}

// PrimeAttributes returns the union of all candidate keys.
func (r *Relation) PrimeAttributes(lim Limits) (*AttributeSet, error) {
	keys, err := r.CandidateKeys(lim)
	if err != nil {
		return nil, err
	}
	prime := r.attrs.reg.NewSet()
	for _, k := range keys.ToList() {
		prime.Union(k)
	}
	return prime, nil
}
