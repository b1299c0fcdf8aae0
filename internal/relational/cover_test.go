package relational

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtraneousLHSKeepsSoleAttribute(t *testing.T) {
	reg := newRegistry("ABCD")
	f := deps(reg, "AB->C", "A->D", "D->C")

	assert.True(t, f.ExtraneousLHS(dep(reg, "A->D")).IsEmpty())
	assert.Equal(t, "B", f.ExtraneousLHS(dep(reg, "AB->C")).String())
}

func TestExtraneousRHSUsesShrunkDependency(t *testing.T) {
	reg := newRegistry("ABCD")
	f := deps(reg, "A->CD", "D->C")
	assert.Equal(t, "C", f.ExtraneousRHS(dep(reg, "A->CD")).String())

	// Against the unmodified set every RHS attribute would look extraneous.
	g := deps(reg, "A->B")
	assert.True(t, g.ExtraneousRHS(dep(reg, "A->B")).IsEmpty())
}

func TestCanonicalCoverExample(t *testing.T) {
	reg := newRegistry("ABCD")
	f := deps(reg, "AB->C", "A->D", "D->C")
	fc := f.CanonicalCover()

	// AB->C is implied by A->D, D->C, so it does not survive.
	assert.ElementsMatch(t, []string{"A->D", "D->C"}, fdStrings(fc))
	assert.True(t, fc.Equivalent(f))
	assert.Equal(t, 3, f.Size(), "input must not be modified")
}

func TestCanonicalCoverTextbook(t *testing.T) {
	reg := newRegistry("ABC")
	f := deps(reg, "A->BC", "B->C", "A->B", "AB->C")
	assert.ElementsMatch(t, []string{"A->B", "B->C"}, fdStrings(f.CanonicalCover()))
}

func TestCanonicalCoverRemovesOneAttributeAtATime(t *testing.T) {
	reg := newRegistry("ABC")
	// Both A and B are individually extraneous in AB->C, but not together.
	f := deps(reg, "AB->C", "A->C", "B->C")
	fc := f.CanonicalCover()
	assert.True(t, fc.Equivalent(f))
	assert.ElementsMatch(t, []string{"A->C", "B->C"}, fdStrings(fc))
}

func TestCanonicalCoverDropsTrivialAndDegenerate(t *testing.T) {
	reg := newRegistry("ABC")
	f := deps(reg, "A->A", "AB->B", "A->C")
	f.Add(NewFD(reg.NewSet(), reg.NewSet()))
	assert.Equal(t, []string{"A->C"}, fdStrings(f.CanonicalCover()))
}

func TestCanonicalCoverProperties(t *testing.T) {
	for _, specs := range propertySets {
		reg := newRegistry("ABCD")
		f := deps(reg, specs...)
		fc := f.CanonicalCover()

		for s := range AllSubsets(letters(reg, "ABCD")) {
			assert.True(t, f.Closure(s).Equal(fc.Closure(s)), "soundness for %v under %v", s, specs)
		}

		seen := map[string]bool{}
		for _, fd := range fc.ToList() {
			assert.False(t, seen[fd.lhs.Key()], "duplicate LHS %v in %v", fd, fc)
			seen[fd.lhs.Key()] = true
			assert.True(t, fc.ExtraneousLHS(fd).IsEmpty(), "extraneous LHS in %v", fd)
			assert.True(t, fc.ExtraneousRHS(fd).IsEmpty(), "extraneous RHS in %v", fd)
			assert.False(t, fd.rhs.IsEmpty())
		}
	}
}

func TestFDSetStringSortsByLHSSize(t *testing.T) {
	reg := newRegistry("ABCD")
	f := deps(reg, "AB->C", "A->D", "D->C")
	assert.Equal(t, "A->D\nD->C\nA,B->C\n", f.String())
	assert.Equal(t, "A,B,C,D", f.Attributes().String())
}
