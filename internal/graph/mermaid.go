package graph

import (
	"fmt"
	"io"
	"strings"

	"github.com/hurou927/db-normalize/internal/relational"
)

// WriteMermaid writes the graph in Mermaid format to w.
// Each connected component is a subgraph; edges are labelled with the
// determinant of the dependency that produced them.
func WriteMermaid(w io.Writer, g *Graph) error {
	components := FindComponents(g)
	ids := nodeIDs(g)

	fmt.Fprintln(w, "graph LR")

	for i, comp := range components {
		fmt.Fprintf(w, "    subgraph component_%d\n", i+1)

		attrSet := make(map[string]bool, len(comp.Attrs))
		for _, a := range comp.Attrs {
			attrSet[a] = true
			fmt.Fprintf(w, "        %s[%q]\n", ids[a], a)
		}

		edgesWritten := make(map[string]bool)
		for _, edge := range g.Edges {
			if !attrSet[edge.From] {
				continue
			}
			label := strings.Join(edge.FD.LHS().Names(), ", ")
			edgeKey := fmt.Sprintf("%s-->%s:%s", ids[edge.From], ids[edge.To], label)
			if edgesWritten[edgeKey] {
				continue
			}
			edgesWritten[edgeKey] = true
			fmt.Fprintf(w, "        %s -->|%q| %s\n", ids[edge.From], label, ids[edge.To])
		}

		fmt.Fprintln(w, "    end")
		if i < len(components)-1 {
			fmt.Fprintln(w)
		}
	}

	return nil
}

// WriteText writes a text summary of the graph to w.
func WriteText(w io.Writer, g *Graph) error {
	components := FindComponents(g)

	fmt.Fprintf(w, "Attributes: %d\n", len(g.Attrs))
	fmt.Fprintf(w, "Dependencies: %d\n", g.Relation.FDs().Size())
	fmt.Fprintf(w, "Connected Components: %d\n\n", len(components))

	topoResult := TopoSortAll(g)
	if err := ValidateCycles(topoResult); err != nil {
		fmt.Fprintf(w, "NOTE: %v\n\n", err)
	}

	fmt.Fprintf(w, "Never determined (part of every key): %v\n\n", g.Roots())

	for i, comp := range components {
		fmt.Fprintf(w, "=== Component %d (%d attributes) ===\n", i+1, len(comp.Attrs))

		topoComp := TopoSort(g, comp.Attrs)
		if topoComp.HasCycle {
			fmt.Fprintf(w, "  Dependency order (partial, has cycle):\n")
		} else {
			fmt.Fprintf(w, "  Dependency order:\n")
		}
		for j, a := range topoComp.Order {
			by := "root"
			if parents := g.DeterminedBy[a]; len(parents) > 0 {
				by = "from " + strings.Join(parents, ", ")
			} else if g.Dependent[a] {
				by = "constant"
			}
			fmt.Fprintf(w, "    %d. %s (%s)\n", j+1, a, by)
		}
		if topoComp.HasCycle {
			fmt.Fprintf(w, "  Cycle attributes: %v\n", topoComp.CycleAttrs)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// WriteDecomposition writes the split tree of a BCNF decomposition as a
// Mermaid flowchart: each parent points to its two fragments, labelled with
// the violating dependency.
func WriteDecomposition(w io.Writer, d *relational.Decomposition) error {
	ids := make(map[*relational.Relation]string)
	node := func(r *relational.Relation) string {
		if id, ok := ids[r]; ok {
			return id
		}
		id := fmt.Sprintf("n%d", len(ids))
		ids[r] = id
		fmt.Fprintf(w, "    %s[%q]\n", id, r.String())
		return id
	}

	fmt.Fprintln(w, "graph TD")
	node(d.Source)
	for _, s := range d.Steps {
		parent := node(s.Parent)
		left := node(s.Left)
		right := node(s.Right)
		fmt.Fprintf(w, "    %s -->|%q| %s\n", parent, s.Violation.String(), left)
		fmt.Fprintf(w, "    %s --> %s\n", parent, right)
	}
	return nil
}

// nodeIDs assigns Mermaid-safe node IDs to attributes.
func nodeIDs(g *Graph) map[string]string {
	ids := make(map[string]string, len(g.Attrs))
	for i, a := range g.Attrs {
		ids[a] = fmt.Sprintf("a%d", i)
	}
	return ids
}
