package relational

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// propertySets are FD sets over ABCD used by the property tests.
var propertySets = [][]string{
	{"AB->C", "A->D", "D->C"},
	{"A->BC", "B->C", "A->B", "AB->C"},
	{"A->B", "B->A", "A->C"},
	{"AB->CD", "C->A", "D->B"},
	{"A->B", "B->C", "C->D", "D->A"},
	{},
}

func TestClosureExample(t *testing.T) {
	reg := newRegistry("ABCD")
	f := deps(reg, "AB->C", "A->D", "D->C")

	assert.Equal(t, "A,C,D", f.Closure(letters(reg, "A")).String())
	assert.Equal(t, "A,B,C,D", f.Closure(letters(reg, "AB")).String())
	assert.Equal(t, "C,D", f.Closure(letters(reg, "D")).String())
	assert.Equal(t, "B", f.Closure(letters(reg, "B")).String())
}

func TestClosureDoesNotMutateInput(t *testing.T) {
	reg := newRegistry("ABCD")
	f := deps(reg, "A->B")
	in := letters(reg, "A")
	f.Closure(in)
	assert.Equal(t, "A", in.String())
}

func TestClosureProperties(t *testing.T) {
	for _, specs := range propertySets {
		reg := newRegistry("ABCD")
		f := deps(reg, specs...)
		universe := letters(reg, "ABCD")
		var subsets []*AttributeSet
		for s := range AllSubsets(universe) {
			subsets = append(subsets, s)
		}

		for _, s := range subsets {
			c := f.Closure(s)
			assert.True(t, s.SubsetOf(c), "monotone: %v ⊆ %v under %v", s, c, specs)
			assert.True(t, f.Closure(c).Equal(c), "idempotent: %v under %v", s, specs)
			for _, s2 := range subsets {
				if s.SubsetOf(s2) {
					assert.True(t, c.SubsetOf(f.Closure(s2)), "monotone in input: %v ⊆ %v under %v", s, s2, specs)
				}
			}
		}
	}
}

func TestTransitiveRule(t *testing.T) {
	reg := newRegistry("ABCD")
	fd, ok := Transitive(dep(reg, "A->B"), dep(reg, "B->C"))
	require.True(t, ok)
	assert.Equal(t, "A->B,C", fd.String())

	fd, ok = Transitive(dep(reg, "A->B"), dep(reg, "C->D"))
	assert.False(t, ok)
	assert.Nil(t, fd)
}

func TestAugmentRule(t *testing.T) {
	reg := newRegistry("ABCD")
	fd := dep(reg, "A->B").Augment(reg.Intern("C"))
	assert.Equal(t, "A,C->B,C", fd.String())
}

func TestFDEqualityIgnoresOrderAndFlag(t *testing.T) {
	reg := newRegistry("ABCD")
	f := dep(reg, "AB->C")
	g := dep(reg, "BA->C").AsMultivalued(true)
	assert.True(t, f.Equal(g))
	assert.Equal(t, f.Key(), g.Key())
	assert.Equal(t, "A,B->>C", g.String())

	s := reg.NewFDSet(f)
	assert.Equal(t, 0, s.Add(g))
	assert.True(t, dep(reg, "AB->A").IsTrivial())
	assert.True(t, reg.NewFDSet().IsEmpty())
	assert.True(t, NewFD(reg.NewSet(), reg.NewSet()).IsDegenerate())
}

func TestSubsets(t *testing.T) {
	reg := newRegistry("ABCD")
	universe := letters(reg, "ABCD")

	var pairs []*AttributeSet
	for s := range Subsets(universe, 2) {
		pairs = append(pairs, s)
	}
	assert.Equal(t, []string{"A,B", "A,C", "A,D", "B,C", "B,D", "C,D"}, keyStrings(pairs))

	n := 0
	for range AllSubsets(universe) {
		n++
	}
	assert.Equal(t, 15, n)
}

func TestClosureBySubsets(t *testing.T) {
	reg := newRegistry("ABCD")
	f := deps(reg, "AB->C", "A->D", "D->C")
	universe := letters(reg, "ABCD")

	plus, err := f.ClosureBySubsets(universe, DefaultLimits)
	require.NoError(t, err)
	assert.Equal(t, 15, plus.Size())
	assert.True(t, plus.Contains(dep(reg, "A->ACD")))
	assert.True(t, plus.Equivalent(f))

	_, err = f.ClosureBySubsets(universe, Limits{MaxSubsets: 10})
	var limitErr *LimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, uint64(15), limitErr.Need)
	assert.ErrorIs(t, err, ErrLimitExceeded)
}

func TestClosureByRulesMatchesSubsets(t *testing.T) {
	reg := newRegistry("ABC")
	f := deps(reg, "A->B", "B->C")
	universe := letters(reg, "ABC")

	rules, err := f.ClosureByRules(universe, DefaultLimits)
	require.NoError(t, err)
	subsets, err := f.ClosureBySubsets(universe, DefaultLimits)
	require.NoError(t, err)

	assert.True(t, rules.Contains(dep(reg, "A->ABC")))
	assert.True(t, f.SubsetOf(rules))
	assert.True(t, rules.Equivalent(subsets))
	for _, fd := range rules.ToList() {
		assert.True(t, f.Implies(fd), "%v is not implied by F", fd)
	}
}

func TestClosureByRulesLimit(t *testing.T) {
	reg := newRegistry("ABCD")
	f := deps(reg, "A->B", "B->C", "C->D")
	_, err := f.ClosureByRules(letters(reg, "ABCD"), Limits{MaxFDs: 5})
	assert.ErrorIs(t, err, ErrLimitExceeded)
}

func TestClosureOverEmptyUniversePanics(t *testing.T) {
	reg := newRegistry("A")
	f := deps(reg, "A->A")
	assert.Panics(t, func() { _, _ = f.ClosureBySubsets(reg.NewSet(), DefaultLimits) })
	assert.Panics(t, func() { _, _ = f.ClosureByRules(reg.NewSet(), DefaultLimits) })
}
