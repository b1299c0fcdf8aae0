package relational

import (
	log "github.com/sirupsen/logrus"
)

// ExtraneousLHS returns the attributes A of fd.lhs for which
// (fd.lhs − {A}) -> fd.rhs still follows from s.
func (s *FDSet) ExtraneousLHS(fd *FD) *AttributeSet {
	extraneous := s.reg.NewSet()
	for _, a := range fd.lhs.ToList() {
		if s.lhsExtraneous(fd, a) {
			extraneous.Add(a)
		}
	}
	return extraneous
}

// ExtraneousRHS returns the attributes A of fd.rhs that can be derived from
// fd.lhs once fd is replaced by fd.lhs -> (fd.rhs − {A}).
func (s *FDSet) ExtraneousRHS(fd *FD) *AttributeSet {
	extraneous := s.reg.NewSet()
	for _, a := range fd.rhs.ToList() {
		if s.rhsExtraneous(fd, a) {
			extraneous.Add(a)
		}
	}
	return extraneous
}

func (s *FDSet) lhsExtraneous(fd *FD, a *Attribute) bool {
	gamma := fd.lhs.Without(a)
	return fd.rhs.SubsetOf(s.Closure(gamma))
}

func (s *FDSet) rhsExtraneous(fd *FD, a *Attribute) bool {
	prime := s.Clone()
	prime.Remove(fd)
	prime.Add(&FD{lhs: fd.lhs, rhs: fd.rhs.Without(a)})
	return prime.Closure(fd.lhs).Contains(a)
}

// CanonicalCover returns a minimal set equivalent to s: no two dependencies
// share a LHS, and no dependency has an extraneous attribute on either side.
func (s *FDSet) CanonicalCover() *FDSet {
	fc := s.reg.NewFDSet()
	for _, fd := range s.ToList() {
		if !fd.IsDegenerate() && !fd.rhs.IsEmpty() {
			fc.Add(fd)
		}
	}
	for pass := 1; ; pass++ {
		merged := fc.mergeLHS()
		change := fc.Size() - merged.Size()
		fc = merged

		fds := fc.ToList()
		for i := len(fds) - 1; i >= 0; i-- {
			fd := fds[i]
			if !fc.Contains(fd) {
				continue
			}
			for _, a := range fd.lhs.ToList() {
				if fc.lhsExtraneous(fd, a) {
					fd = fc.replace(fd, &FD{lhs: fd.lhs.Without(a), rhs: fd.rhs})
					change++
				}
			}
			for _, a := range fd.rhs.ToList() {
				if fc.rhsExtraneous(fd, a) {
					fd = fc.replace(fd, &FD{lhs: fd.lhs, rhs: fd.rhs.Without(a)})
					change++
				}
			}
			if fd.rhs.IsEmpty() {
				fc.Remove(fd)
				change++
			}
		}
		log.Debugf("canonical cover pass %d: %d changes, %d dependencies", pass, change, fc.Size())
		if change == 0 {
			return fc
		}
	}
}

// mergeLHS groups dependencies by identical LHS and unions their RHS sets.
func (s *FDSet) mergeLHS() *FDSet {
	var order []string
	groups := make(map[string]*FD)
	for _, fd := range s.ToList() {
		k := fd.lhs.Key()
		g, ok := groups[k]
		if !ok {
			order = append(order, k)
			groups[k] = &FD{lhs: fd.lhs, rhs: fd.rhs.Clone()}
			continue
		}
		g.rhs.Union(fd.rhs)
	}
	out := s.reg.NewFDSet()
	for _, k := range order {
		out.Add(groups[k])
	}
	return out
}

// replace swaps old for repl in s and returns repl.
func (s *FDSet) replace(old, repl *FD) *FD {
	s.Remove(old)
	s.Add(repl)
	return repl
}
