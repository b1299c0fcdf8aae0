package graph

import (
	"github.com/hurou927/db-normalize/internal/relational"
)

// Edge represents a directed edge from a determinant attribute to an
// attribute it determines.
type Edge struct {
	FD   *relational.FD
	From string
	To   string
}

// Graph is a directed graph over the attributes of a relation, built from
// its functional dependencies.
type Graph struct {
	Relation *relational.Relation

	// Attrs lists attribute names in interning order.
	Attrs []string

	// Edges are lhs-attribute → rhs-attribute edges, trivial pairs excluded
	Edges []Edge

	// Determines maps an attribute → attributes it helps determine
	Determines map[string][]string

	// DeterminedBy maps an attribute → attributes of the determinants it appears under
	DeterminedBy map[string][]string

	// Dependent holds attributes on the non-trivial side of some dependency
	Dependent map[string]bool

	// adjacency for undirected connectivity
	Adjacency map[string]map[string]bool
}

// Build constructs the dependency graph of rel.
func Build(rel *relational.Relation) *Graph {
	attrs := rel.Attributes()
	g := &Graph{
		Relation:     rel,
		Attrs:        attrs.Names(),
		Determines:   make(map[string][]string),
		DeterminedBy: make(map[string][]string),
		Dependent:    make(map[string]bool),
		Adjacency:    make(map[string]map[string]bool),
	}
	for _, name := range g.Attrs {
		g.Adjacency[name] = make(map[string]bool)
	}

	seen := make(map[[2]string]bool)
	for _, fd := range rel.FDs().ToList() {
		lhs := fd.LHS()
		for _, to := range fd.RHS().Minus(lhs).Names() {
			g.Dependent[to] = true
			for _, from := range lhs.Names() {
				g.Edges = append(g.Edges, Edge{FD: fd, From: from, To: to})
				if seen[[2]string{from, to}] {
					continue
				}
				seen[[2]string{from, to}] = true
				g.Determines[from] = append(g.Determines[from], to)
				g.DeterminedBy[to] = append(g.DeterminedBy[to], from)
				g.Adjacency[from][to] = true
				g.Adjacency[to][from] = true
			}
		}
	}

	return g
}

// Roots returns attributes that no dependency determines. Every candidate key
// contains all of them.
func (g *Graph) Roots() []string {
	var roots []string
	for _, name := range g.Attrs {
		if !g.Dependent[name] {
			roots = append(roots, name)
		}
	}
	return roots
}
