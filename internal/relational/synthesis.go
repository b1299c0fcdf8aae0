package relational

import (
	"fmt"

	"github.com/hurou927/db-normalize/internal/set"
)

// In3NF reports whether every BCNF violation of r only determines prime
// attributes, i.e. each attribute of rhs − lhs belongs to some candidate key.
func (r *Relation) In3NF(lim Limits) (bool, error) {
	violations := r.BCNFViolations()
	if violations.IsEmpty() {
		return true, nil
	}
	prime, err := r.PrimeAttributes(lim)
	if err != nil {
		return false, err
	}
	for _, fd := range violations.ToList() {
		if !fd.rhs.Minus(fd.lhs).SubsetOf(prime) {
			return false, nil
		}
	}
	return true, nil
}

// ThreeNFSynthesis returns a lossless, dependency-preserving 3NF
// decomposition of r, naming fragments opts.Prefix1, opts.Prefix2, ...
// A relation already in BCNF or 3NF is returned as is.
func (r *Relation) ThreeNFSynthesis(opts DecomposeOptions) (*set.Set[*Relation], error) {
	lim := opts.Limits
	if r.InBCNF() {
		return set.New(r), nil
	}
	ok, err := r.In3NF(lim)
	if err != nil {
		return nil, err
	}
	if ok {
		return set.New(r), nil
	}

	fc := r.fds.CanonicalCover()
	keys, err := r.CandidateKeys(lim)
	if err != nil {
		return nil, err
	}

	var schemas []*AttributeSet
	hasKey := false
	for _, fd := range fc.ToList() {
		attrs := fd.Attributes()
		schemas = append(schemas, attrs)
		for _, k := range keys.ToList() {
			if k.SubsetOf(attrs) {
				hasKey = true
			}
		}
	}
	if !hasKey {
		if k, ok := keys.Arbitrary(); ok {
			schemas = append(schemas, k)
		}
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "R"
	}
	result := set.New[*Relation]()
	n := 0
	for i, attrs := range schemas {
		if containedElsewhere(schemas, i) {
			continue
		}
		n++
		rel, err := NewRelation(fmt.Sprintf("%s%d", prefix, n), attrs, fc.Within(attrs))
		if err != nil {
			return nil, fmt.Errorf("synthesizing %s: %w", r.name, err)
		}
		result.Add(rel)
	}
	return result, nil
}

// containedElsewhere reports whether schemas[i] is a subset of another entry.
// Of several equal entries only the first survives.
func containedElsewhere(schemas []*AttributeSet, i int) bool {
	for j, other := range schemas {
		if i == j || !schemas[i].SubsetOf(other) {
			continue
		}
		if schemas[i].Equal(other) && i < j {
			continue
		}
		return true
	}
	return false
}
