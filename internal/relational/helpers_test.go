package relational

import (
	"strings"
)

// letters interns one attribute per rune so that ids follow the given order.
func letters(reg *Registry, s string) *AttributeSet {
	set := reg.NewSet()
	for _, r := range s {
		set.Add(reg.Intern(string(r)))
	}
	return set
}

// newRegistry returns a registry with attributes interned in the order of universe.
func newRegistry(universe string) *Registry {
	reg := NewRegistry()
	letters(reg, universe)
	return reg
}

// dep parses "AB->C" with single-letter attribute names.
func dep(reg *Registry, s string) *FD {
	lhs, rhs, _ := strings.Cut(s, "->")
	return NewFD(letters(reg, lhs), letters(reg, rhs))
}

func deps(reg *Registry, specs ...string) *FDSet {
	fds := reg.NewFDSet()
	for _, s := range specs {
		fds.Add(dep(reg, s))
	}
	return fds
}

func relation(reg *Registry, attrs string, specs ...string) *Relation {
	r, err := NewRelation("R", letters(reg, attrs), deps(reg, specs...))
	if err != nil {
		panic(err)
	}
	return r
}

// keyStrings renders a list of attribute sets for comparison.
func keyStrings(sets []*AttributeSet) []string {
	out := make([]string, len(sets))
	for i, s := range sets {
		out[i] = s.String()
	}
	return out
}

func fdStrings(fds *FDSet) []string {
	list := fds.ToList()
	out := make([]string, len(list))
	for i, fd := range list {
		out[i] = fd.String()
	}
	return out
}
