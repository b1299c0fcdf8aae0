// Package analyze runs the normalization pipeline on a single relation:
// keys, canonical cover, normal-form checks and decomposition.
package analyze

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/hurou927/db-normalize/internal/relational"
)

// Normal forms a relation can be decomposed into.
const (
	FormBCNF = "bcnf"
	Form3NF  = "3nf"
)

// Options configures an Analyzer.
type Options struct {
	// Form is FormBCNF or Form3NF.
	Form      string
	Decompose relational.DecomposeOptions
}

// Fragment is one relation of a decomposition with its candidate keys.
type Fragment struct {
	Relation *relational.Relation
	Keys     []*relational.AttributeSet
}

// Report collects everything Analyze derives for a relation.
type Report struct {
	Relation   *relational.Relation
	Keys       []*relational.AttributeSet
	Prime      *relational.AttributeSet
	Cover      *relational.FDSet
	Violations *relational.FDSet
	InBCNF     bool
	In3NF      bool

	Form string
	// Trace holds the split steps of a BCNF decomposition; nil for 3NF.
	Trace     *relational.Decomposition
	Fragments []Fragment
	// Lossless reports that the fragments join back to the relation.
	Lossless bool
	// Preserving reports that every dependency follows from the dependencies
	// projected onto the fragments.
	Preserving bool
}

// Analyzer orchestrates the analysis of relations.
type Analyzer struct {
	opts Options
}

// New creates a new Analyzer.
func New(opts Options) (*Analyzer, error) {
	switch opts.Form {
	case "":
		opts.Form = FormBCNF
	case FormBCNF, Form3NF:
	default:
		return nil, fmt.Errorf("unknown normal form %q (supported: %s, %s)", opts.Form, FormBCNF, Form3NF)
	}
	return &Analyzer{opts: opts}, nil
}

// Analyze computes the report for rel. The context is checked between phases.
func (a *Analyzer) Analyze(ctx context.Context, rel *relational.Relation) (*Report, error) {
	lim := a.opts.Decompose.Limits
	logger := log.WithField("relation", rel.Name())
	rep := &Report{Relation: rel, Form: a.opts.Form}

	phase := func(name string) error {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("analyzing %s: %w", rel.Name(), err)
		}
		logger.WithField("phase", name).Debug("starting phase")
		return nil
	}

	if err := phase("keys"); err != nil {
		return nil, err
	}
	keys, err := rel.CandidateKeys(lim)
	if err != nil {
		return nil, fmt.Errorf("finding keys of %s: %w", rel.Name(), err)
	}
	rep.Keys = keys.ToList()
	rep.Prime = rel.Registry().NewSet()
	for _, k := range rep.Keys {
		rep.Prime.Union(k)
	}

	if err := phase("cover"); err != nil {
		return nil, err
	}
	rep.Cover = rel.FDs().CanonicalCover()

	if err := phase("normal-forms"); err != nil {
		return nil, err
	}
	rep.Violations = rel.BCNFViolations()
	rep.InBCNF = rep.Violations.IsEmpty()
	if rep.In3NF, err = rel.In3NF(lim); err != nil {
		return nil, fmt.Errorf("checking 3NF of %s: %w", rel.Name(), err)
	}

	if err := phase("decompose"); err != nil {
		return nil, err
	}
	var fragments []*relational.Relation
	switch a.opts.Form {
	case Form3NF:
		rels, err := rel.ThreeNFSynthesis(a.opts.Decompose)
		if err != nil {
			return nil, fmt.Errorf("synthesizing %s: %w", rel.Name(), err)
		}
		fragments = rels.ToList()
		rep.Lossless = containsKey(rel, fragments)
	default:
		trace, err := rel.TraceBCNF(a.opts.Decompose)
		if err != nil {
			return nil, fmt.Errorf("decomposing %s: %w", rel.Name(), err)
		}
		rep.Trace = trace
		fragments = trace.Fragments
		rep.Lossless = true
		for _, s := range trace.Steps {
			rep.Lossless = rep.Lossless && relational.IsLossless(s.Left, s.Right)
		}
	}
	rep.Preserving = relational.PreservesDependencies(rel.FDs(), fragments)

	if err := phase("fragment-keys"); err != nil {
		return nil, err
	}
	for _, f := range fragments {
		fk, err := f.CandidateKeys(lim)
		if err != nil {
			return nil, fmt.Errorf("finding keys of %s: %w", f.Name(), err)
		}
		rep.Fragments = append(rep.Fragments, Fragment{Relation: f, Keys: fk.ToList()})
	}

	logger.WithFields(log.Fields{
		"keys":      len(rep.Keys),
		"fragments": len(rep.Fragments),
		"bcnf":      rep.InBCNF,
		"3nf":       rep.In3NF,
	}).Info("analysis complete")
	return rep, nil
}

// containsKey reports whether some fragment holds a superkey of rel, which
// makes the natural join of the fragments lossless.
func containsKey(rel *relational.Relation, fragments []*relational.Relation) bool {
	for _, f := range fragments {
		if rel.IsSuperKey(f.Attributes()) {
			return true
		}
	}
	return false
}
