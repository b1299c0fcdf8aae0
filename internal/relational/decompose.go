package relational

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/hurou927/db-normalize/internal/set"
)

// Projection selects which dependencies a BCNF fragment carries.
type Projection int

const (
	// ProjectClosure carries the dependencies implied on the fragment
	// (FD projection). Exponential in the fragment size.
	ProjectClosure Projection = iota
	// ProjectRestrict carries only the parent's dependencies that already lie
	// inside the fragment. Cheap, but may hide violations that only arise
	// through transitivity across removed attributes.
	ProjectRestrict
)

func (p Projection) String() string {
	switch p {
	case ProjectClosure:
		return "closure"
	case ProjectRestrict:
		return "restrict"
	default:
		return fmt.Sprintf("Projection(%d)", int(p))
	}
}

// ParseProjection maps "closure" or "restrict" to a Projection.
func ParseProjection(s string) (Projection, error) {
	switch s {
	case "", "closure":
		return ProjectClosure, nil
	case "restrict":
		return ProjectRestrict, nil
	default:
		return 0, fmt.Errorf("unknown projection %q (supported: closure, restrict)", s)
	}
}

// DecomposeOptions configures BCNFDecompose.
type DecomposeOptions struct {
	Limits     Limits
	Projection Projection
	// Prefix names fragments Prefix1, Prefix2, ...; "R" when empty.
	Prefix string
}

// Split records one BCNF decomposition step.
type Split struct {
	Parent    *Relation
	Violation *FD
	Left      *Relation // parent − (rhs − lhs)
	Right     *Relation // lhs ∪ rhs
}

// Decomposition is the result of a BCNF decomposition together with the
// steps that produced it.
type Decomposition struct {
	Source    *Relation
	Fragments []*Relation
	Steps     []Split
}

// Relations returns the fragments as a set.
func (d *Decomposition) Relations() *set.Set[*Relation] {
	return set.New(d.Fragments...)
}

// BCNFViolations returns the non-trivial dependencies of r, lying within r,
// whose LHS is not a superkey.
func (r *Relation) BCNFViolations() *FDSet {
	violations := r.fds.reg.NewFDSet()
	for _, fd := range r.fds.ToList() {
		if fd.IsTrivial() || !fd.Attributes().SubsetOf(r.attrs) {
			continue
		}
		if !r.IsSuperKey(fd.lhs) {
			violations.Add(fd)
		}
	}
	return violations
}

// InBCNF reports whether r has no BCNF violations.
func (r *Relation) InBCNF() bool {
	return r.BCNFViolations().IsEmpty()
}

// BCNFDecompose splits r until every fragment is in BCNF.
func (r *Relation) BCNFDecompose(opts DecomposeOptions) (*set.Set[*Relation], error) {
	d, err := r.TraceBCNF(opts)
	if err != nil {
		return nil, err
	}
	return d.Relations(), nil
}

// TraceBCNF is BCNFDecompose that also returns the individual split steps.
func (r *Relation) TraceBCNF(opts DecomposeOptions) (*Decomposition, error) {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "R"
	}
	d := &Decomposition{Source: r, Fragments: []*Relation{r}}
	next := 0
	name := func() string {
		next++
		return fmt.Sprintf("%s%d", prefix, next)
	}

	for {
		i, v := firstViolation(d.Fragments)
		if v == nil {
			return d, nil
		}
		if err := opts.Limits.checkSplits(len(d.Steps) + 1); err != nil {
			return nil, fmt.Errorf("decomposing %s: %w", r.name, err)
		}
		ri := d.Fragments[i]
		dependent := v.rhs.Intersect(ri.attrs)
		dependent.Subtract(v.lhs)

		left, err := ri.fragment(name(), ri.attrs.Minus(dependent), opts)
		if err != nil {
			return nil, fmt.Errorf("decomposing %s: %w", r.name, err)
		}
		right, err := ri.fragment(name(), v.lhs.Plus(dependent), opts)
		if err != nil {
			return nil, fmt.Errorf("decomposing %s: %w", r.name, err)
		}
		if !IsLossless(left, right) {
			return nil, fmt.Errorf("decomposing %s on %s: %w", ri.name, v, ErrLossyDecomposition)
		}
		log.Debugf("bcnf: split %s on %s into %s and %s", ri, v, left, right)

		d.Steps = append(d.Steps, Split{Parent: ri, Violation: v, Left: left, Right: right})
		fragments := make([]*Relation, 0, len(d.Fragments)+1)
		fragments = append(fragments, d.Fragments[:i]...)
		fragments = append(fragments, left, right)
		fragments = append(fragments, d.Fragments[i+1:]...)
		d.Fragments = fragments
	}
}

func firstViolation(rels []*Relation) (int, *FD) {
	for i, ri := range rels {
		if v, ok := ri.BCNFViolations().Arbitrary(); ok {
			return i, v
		}
	}
	return -1, nil
}

func (r *Relation) fragment(name string, attrs *AttributeSet, opts DecomposeOptions) (*Relation, error) {
	if opts.Projection == ProjectRestrict {
		return NewRelation(name, attrs, r.fds.Within(attrs))
	}
	return r.Project(name, attrs, opts.Limits)
}

// IsLossless reports whether joining r1 and r2 reconstructs their union: the
// shared attributes must be a superkey of one side.
func IsLossless(r1, r2 *Relation) bool {
	common := r1.attrs.Intersect(r2.attrs)
	return r1.IsSuperKey(common) || r2.IsSuperKey(common)
}

// Split projects r onto each of parts, naming the fragments Prefix1,
// Prefix2, ... and carrying dependencies as opts.Projection selects. Every
// part must lie within r and together the parts must cover it.
func (r *Relation) Split(opts DecomposeOptions, parts ...*AttributeSet) ([]*Relation, error) {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "R"
	}
	covered := r.attrs.reg.NewSet()
	fragments := make([]*Relation, 0, len(parts))
	for i, p := range parts {
		if outside := p.Minus(r.attrs); !outside.IsEmpty() {
			return nil, &SchemaError{Relation: r.name, Missing: outside.Names()}
		}
		f, err := r.fragment(fmt.Sprintf("%s%d", prefix, i+1), p, opts)
		if err != nil {
			return nil, fmt.Errorf("splitting %s: %w", r.name, err)
		}
		covered.Union(p)
		fragments = append(fragments, f)
	}
	if missing := r.attrs.Minus(covered); !missing.IsEmpty() {
		return nil, fmt.Errorf("splitting %s: attributes [%s] in no fragment: %w", r.name, missing, ErrIncompleteDecomposition)
	}
	return fragments, nil
}

// IsLosslessJoin reports whether the natural join of fragments reconstructs
// r under r's dependencies. It runs the chase on a tableau with one row per
// fragment; the join is lossless iff some row becomes fully distinguished.
func IsLosslessJoin(r *Relation, fragments []*Relation) bool {
	attrs := r.attrs.ToList()
	col := make(map[uint]int, len(attrs))
	for j, a := range attrs {
		col[a.id] = j
	}
	// 0 is the distinguished symbol; every other value is unique to its cell.
	rows := make([][]int, len(fragments))
	for i, f := range fragments {
		rows[i] = make([]int, len(attrs))
		for j, a := range attrs {
			if !f.attrs.Contains(a) {
				rows[i][j] = i*len(attrs) + j + 1
			}
		}
	}
	columns := func(s *AttributeSet) []int {
		var out []int
		for _, a := range s.Intersect(r.attrs).ToList() {
			out = append(out, col[a.id])
		}
		return out
	}

	fds := r.fds.ToList()
	for changed := true; changed; {
		changed = false
		for _, fd := range fds {
			lhs, rhs := columns(fd.lhs), columns(fd.rhs)
			for i := range rows {
				for k := i + 1; k < len(rows); k++ {
					if !agree(rows[i], rows[k], lhs) {
						continue
					}
					for _, c := range rhs {
						if rows[i][c] == rows[k][c] {
							continue
						}
						keep, drop := min(rows[i][c], rows[k][c]), max(rows[i][c], rows[k][c])
						for _, row := range rows {
							if row[c] == drop {
								row[c] = keep
							}
						}
						changed = true
					}
				}
			}
		}
	}

	for _, row := range rows {
		if allZero(row) {
			return true
		}
	}
	return false
}

func agree(a, b []int, cols []int) bool {
	for _, c := range cols {
		if a[c] != b[c] {
			return false
		}
	}
	return true
}

func allZero(row []int) bool {
	for _, v := range row {
		if v != 0 {
			return false
		}
	}
	return true
}

// PreservesDependencies reports whether every dependency of fds can be
// enforced on the fragments alone, without computing any projection.
func PreservesDependencies(fds *FDSet, fragments []*Relation) bool {
	for _, fd := range fds.ToList() {
		result := fd.lhs.Clone()
		for {
			change := 0
			for _, ri := range fragments {
				t := fds.Closure(result.Intersect(ri.attrs)).Intersect(ri.attrs)
				change += result.Union(t)
			}
			if change == 0 {
				break
			}
		}
		if !fd.rhs.SubsetOf(result) {
			return false
		}
	}
	return true
}
