package relational

import "iter"

// Closure returns the closure of attrs under s: the smallest superset of attrs
// that contains f.rhs whenever it contains f.lhs, for every f in s.
func (s *FDSet) Closure(attrs *AttributeSet) *AttributeSet {
	result := attrs.Clone()
	fds := s.ToList()
	for {
		change := 0
		for _, fd := range fds {
			if fd.lhs.SubsetOf(result) {
				change += result.Union(fd.rhs)
			}
		}
		if change == 0 {
			return result
		}
	}
}

// Implies reports whether fd follows from s.
func (s *FDSet) Implies(fd *FD) bool {
	return fd.rhs.SubsetOf(s.Closure(fd.lhs))
}

// Equivalent reports whether s and o imply each other.
func (s *FDSet) Equivalent(o *FDSet) bool {
	for _, fd := range o.ToList() {
		if !s.Implies(fd) {
			return false
		}
	}
	for _, fd := range s.ToList() {
		if !o.Implies(fd) {
			return false
		}
	}
	return true
}

// ClosureByRules computes F⁺ over universe by applying augmentation (with
// every attribute of universe) and pairwise transitivity until a pass adds
// nothing. The result grows quickly; lim.MaxFDs bounds it.
func (s *FDSet) ClosureByRules(universe *AttributeSet, lim Limits) (*FDSet, error) {
	if universe.IsEmpty() {
		panic("relational: closure over an empty attribute universe")
	}
	closure := s.Clone()
	attrs := universe.ToList()
	for {
		change := 0
		for _, fd := range closure.ToList() {
			for _, a := range attrs {
				change += closure.Add(fd.Augment(a))
			}
			if err := lim.checkFDs(closure.Size()); err != nil {
				return nil, err
			}
		}
		fds := closure.ToList()
		for i, f1 := range fds {
			for j, f2 := range fds {
				if i == j {
					continue
				}
				if fd, ok := Transitive(f1, f2); ok {
					change += closure.Add(fd)
				}
			}
			if err := lim.checkFDs(closure.Size()); err != nil {
				return nil, err
			}
		}
		if change == 0 {
			return closure, nil
		}
	}
}

// ClosureBySubsets computes F⁺ over universe as { T -> closure(T) } for every
// non-empty subset T. It enumerates 2^|universe|-1 subsets and is refused up
// front when that exceeds lim.MaxSubsets.
func (s *FDSet) ClosureBySubsets(universe *AttributeSet, lim Limits) (*FDSet, error) {
	if universe.IsEmpty() {
		panic("relational: closure over an empty attribute universe")
	}
	if err := lim.checkSubsets(universe.Size()); err != nil {
		return nil, err
	}
	closure := s.reg.NewFDSet()
	for t := range AllSubsets(universe) {
		closure.Add(&FD{lhs: t, rhs: s.Closure(t)})
	}
	return closure, nil
}

// AllSubsets yields every non-empty subset of universe, smallest first.
func AllSubsets(universe *AttributeSet) iter.Seq[*AttributeSet] {
	return func(yield func(*AttributeSet) bool) {
		for k := 1; k <= universe.Size(); k++ {
			for t := range Subsets(universe, k) {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// Subsets yields every k-element subset of universe in lexicographic order of
// attribute ids.
func Subsets(universe *AttributeSet, k int) iter.Seq[*AttributeSet] {
	attrs := universe.ToList()
	n := len(attrs)
	return func(yield func(*AttributeSet) bool) {
		if k < 0 || k > n {
			return
		}
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		for {
			t := universe.reg.NewSet()
			for _, i := range idx {
				t.Add(attrs[i])
			}
			if !yield(t) {
				return
			}
			// advance to the next combination
			i := k - 1
			for i >= 0 && idx[i] == n-k+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}
