package graph

import "fmt"

// TopoResult holds the result of topological sorting.
type TopoResult struct {
	// Order is the topological order (determinants before dependents).
	Order []string
	// HasCycle is true if some attributes determine each other.
	HasCycle bool
	// CycleAttrs lists attributes left on or behind a cycle.
	CycleAttrs []string
}

// TopoSort performs Kahn's algorithm on the given attributes within the graph.
// Returns attributes in dependency order: determinants first.
func TopoSort(g *Graph, attrs []string) TopoResult {
	attrSet := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		attrSet[a] = true
	}

	// In-degree = number of determinant edges within the subset
	inDegree := make(map[string]int, len(attrs))
	for _, a := range attrs {
		inDegree[a] = 0
	}

	localChildren := make(map[string][]string)
	for _, a := range attrs {
		for _, p := range g.DeterminedBy[a] {
			if attrSet[p] {
				localChildren[p] = append(localChildren[p], a)
				inDegree[a]++
			}
		}
	}

	var queue []string
	for _, a := range attrs {
		if inDegree[a] == 0 {
			queue = append(queue, a)
		}
	}

	var order []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		for _, child := range localChildren[node] {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	result := TopoResult{Order: order}

	if len(order) < len(attrs) {
		result.HasCycle = true
		for _, a := range attrs {
			if inDegree[a] > 0 {
				result.CycleAttrs = append(result.CycleAttrs, a)
			}
		}
	}

	return result
}

// TopoSortAll performs topological sort across all attributes in the graph.
func TopoSortAll(g *Graph) TopoResult {
	return TopoSort(g, g.Attrs)
}

// ValidateCycles returns an error naming the attributes on a cycle, if any.
func ValidateCycles(result TopoResult) error {
	if !result.HasCycle {
		return nil
	}
	return fmt.Errorf("attributes determine each other: %v", result.CycleAttrs)
}
