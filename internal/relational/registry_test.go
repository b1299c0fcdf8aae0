package relational

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternReturnsSameIdentity(t *testing.T) {
	reg := NewRegistry()
	a := reg.Intern("name")
	b := reg.Intern("name")
	c := reg.Intern("city")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, uint(0), a.ID())
	assert.Equal(t, uint(1), c.ID())
	assert.Equal(t, 2, reg.Len())
}

func TestLookupDoesNotCreate(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())

	want := reg.Intern("present")
	got, ok := reg.Lookup("present")
	require.True(t, ok)
	assert.Same(t, want, got)
}

func TestSetType(t *testing.T) {
	reg := NewRegistry()
	a := reg.Intern("age")
	assert.Equal(t, "", a.Type())
	reg.SetType(a, "int4")
	assert.Equal(t, "int4", reg.Intern("age").Type())

	other := NewRegistry()
	assert.Panics(t, func() { other.SetType(a, "text") })
}

func TestRegistriesAreIndependent(t *testing.T) {
	r1, r2 := NewRegistry(), NewRegistry()
	a1 := r1.Intern("A")
	a2 := r2.Intern("A")
	assert.NotSame(t, a1, a2)
	assert.Panics(t, func() { r1.NewSet(a2) })
	assert.Panics(t, func() { r1.NewSet(a1).Union(r2.NewSet(a2)) })
}

func TestConcurrentIntern(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	results := make([][]*Attribute, 8)
	for g := range results {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				results[g] = append(results[g], reg.Intern(fmt.Sprintf("a%d", i)))
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, 50, reg.Len())
	for g := 1; g < len(results); g++ {
		for i := range results[g] {
			assert.Same(t, results[0][i], results[g][i])
		}
	}
}
