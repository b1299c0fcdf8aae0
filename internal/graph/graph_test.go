package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hurou927/db-normalize/internal/notation"
	"github.com/hurou927/db-normalize/internal/relational"
)

func mustRelation(t *testing.T, schema string) *relational.Relation {
	t.Helper()
	rel, err := notation.Letters.ReadRelation(relational.NewRegistry(), strings.NewReader(schema))
	require.NoError(t, err)
	return rel
}

func TestBuild(t *testing.T) {
	g := Build(mustRelation(t, "R(ABCD)\nAB->C\nA->D\nD->C\nA->A\n"))

	assert.Len(t, g.Edges, 4)
	assert.Equal(t, []string{"C", "D"}, g.Determines["A"])
	assert.Equal(t, []string{"A", "B", "D"}, g.DeterminedBy["C"])
	assert.Equal(t, []string{"A", "B"}, g.Roots())
}

func TestRootsBelongToEveryKey(t *testing.T) {
	rel := mustRelation(t, "R(ABCDE)\nAB->C\nC->B\nD->E\n")
	g := Build(rel)
	keys, err := rel.CandidateKeys(relational.DefaultLimits)
	require.NoError(t, err)
	require.False(t, keys.IsEmpty())

	for _, root := range g.Roots() {
		for _, k := range keys.ToList() {
			assert.Contains(t, k.Names(), root)
		}
	}
	assert.Equal(t, []string{"A", "D"}, g.Roots())
}

func TestFindComponents(t *testing.T) {
	g := Build(mustRelation(t, "R(ABCDE)\nA->B\nC->D\n"))
	components := FindComponents(g)
	require.Len(t, components, 3)
	assert.Equal(t, []string{"A", "B"}, components[0].Attrs)
	assert.Equal(t, []string{"C", "D"}, components[1].Attrs)
	assert.Equal(t, []string{"E"}, components[2].Attrs)
}

func TestTopoSort(t *testing.T) {
	g := Build(mustRelation(t, "R(ABCD)\nAB->C\nA->D\nD->C\n"))
	result := TopoSortAll(g)
	assert.False(t, result.HasCycle)
	assert.Equal(t, []string{"A", "B", "D", "C"}, result.Order)
	assert.NoError(t, ValidateCycles(result))
}

func TestTopoSortCycle(t *testing.T) {
	g := Build(mustRelation(t, "R(ABCD)\nA->B\nB->A\nB->C\n"))
	result := TopoSortAll(g)
	assert.True(t, result.HasCycle)
	assert.Equal(t, []string{"D"}, result.Order)
	assert.Equal(t, []string{"A", "B", "C"}, result.CycleAttrs)
	assert.ErrorContains(t, ValidateCycles(result), "determine each other")
}

func TestWriteMermaid(t *testing.T) {
	g := Build(mustRelation(t, "R(ABC)\nAB->C\n"))
	var buf bytes.Buffer
	require.NoError(t, WriteMermaid(&buf, g))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "graph LR\n"))
	assert.Contains(t, out, `a0["A"]`)
	assert.Contains(t, out, `a0 -->|"A, B"| a2`)
	assert.Contains(t, out, `a1 -->|"A, B"| a2`)
	assert.Equal(t, 1, strings.Count(out, "subgraph"))
}

func TestWriteText(t *testing.T) {
	g := Build(mustRelation(t, "R(ABC)\nA->B\nB->A\n"))
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, g))

	out := buf.String()
	assert.Contains(t, out, "Attributes: 3\n")
	assert.Contains(t, out, "Dependencies: 2\n")
	assert.Contains(t, out, "Connected Components: 2\n")
	assert.Contains(t, out, "NOTE: attributes determine each other: [A B]\n")
	assert.Contains(t, out, "Never determined (part of every key): [C]")
}

func TestWriteTextWithoutCycle(t *testing.T) {
	g := Build(mustRelation(t, "R(ABC)\nA->B\nB->C\n"))
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, g))
	assert.NotContains(t, buf.String(), "determine each other")
	assert.Contains(t, buf.String(), "  Dependency order:\n    1. A (root)\n    2. B (from A)\n    3. C (from B)\n")
}

func TestWriteDecomposition(t *testing.T) {
	rel := mustRelation(t, "R(ABCD)\nAB->C\nA->D\nD->C\n")
	d, err := rel.TraceBCNF(relational.DecomposeOptions{Limits: relational.DefaultLimits})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDecomposition(&buf, d))
	out := buf.String()

	assert.Contains(t, out, `n0["R(A,B,C,D)"]`)
	assert.Contains(t, out, `n0 -->|"A->D"| n1`)
	assert.Contains(t, out, `n1["R1(A,B,C)"]`)
	assert.Contains(t, out, "n0 --> n2\n")
	assert.Contains(t, out, `n1 -->|"A->C"| n3`)
	assert.Equal(t, 5, strings.Count(out, `["`))
}
