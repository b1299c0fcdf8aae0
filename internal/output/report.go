package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/hurou927/db-normalize/internal/analyze"
	"github.com/hurou927/db-normalize/internal/notation"
	"github.com/hurou927/db-normalize/internal/relational"
)

// WriteReport writes a human-readable analysis report using n for
// attribute and dependency syntax.
func WriteReport(w io.Writer, n notation.Notation, rep *analyze.Report) error {
	rel := rep.Relation
	fmt.Fprintf(w, "=== %s (%d attributes, %d dependencies) ===\n",
		rel.Name(), rel.Attributes().Size(), rel.FDs().Size())

	fmt.Fprintf(w, "Candidate keys: %s\n", keyList(n, rep.Keys))
	fmt.Fprintf(w, "Prime attributes: %s\n", n.FormatAttributes(rep.Prime))
	fmt.Fprintf(w, "Normal form: %s\n\n", normalForm(rep))

	fmt.Fprintln(w, "Canonical cover:")
	writeIndented(w, n.FormatFDSet(rep.Cover))

	if !rep.Violations.IsEmpty() {
		fmt.Fprintln(w, "BCNF violations:")
		writeIndented(w, n.FormatFDSet(rep.Violations))
	}

	if rep.Trace != nil && len(rep.Trace.Steps) > 0 {
		fmt.Fprintln(w, "Decomposition steps:")
		for i, s := range rep.Trace.Steps {
			fmt.Fprintf(w, "    %d. %s on %s -> %s + %s\n",
				i+1, s.Parent, n.FormatFD(s.Violation), s.Left, s.Right)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%s decomposition (%d relations):\n", strings.ToUpper(rep.Form), len(rep.Fragments))
	for _, f := range rep.Fragments {
		fmt.Fprintf(w, "    %s(%s)  keys: %s\n",
			f.Relation.Name(), n.FormatAttributes(f.Relation.Attributes()), keyList(n, f.Keys))
		for _, fd := range f.Relation.FDs().SortedByLHS() {
			fmt.Fprintf(w, "        %s\n", n.FormatFD(fd))
		}
	}
	fmt.Fprintf(w, "Lossless join: %s\n", yesNo(rep.Lossless))
	_, err := fmt.Fprintf(w, "Dependency preserving: %s\n\n", yesNo(rep.Preserving))
	return err
}

// WriteClosure writes attrs⁺ under rel's dependencies.
func WriteClosure(w io.Writer, n notation.Notation, rel *relational.Relation, attrs *relational.AttributeSet) error {
	closure := rel.Closure(attrs)
	superkey := ""
	if rel.IsSuperKey(attrs) {
		superkey = "  (superkey)"
	}
	_, err := fmt.Fprintf(w, "{%s}+ = {%s}%s\n", n.FormatAttributes(attrs), n.FormatAttributes(closure), superkey)
	return err
}

// WriteSplit writes a proposed decomposition of rel together with its
// lossless-join and dependency-preservation verdicts.
func WriteSplit(w io.Writer, n notation.Notation, rel *relational.Relation, fragments []*relational.Relation) error {
	fmt.Fprintf(w, "=== %s split into %d relations ===\n", rel.Name(), len(fragments))
	for _, f := range fragments {
		bcnf := ""
		if f.InBCNF() {
			bcnf = "  (BCNF)"
		}
		fmt.Fprintf(w, "    %s(%s)%s\n", f.Name(), n.FormatAttributes(f.Attributes()), bcnf)
		for _, fd := range f.FDs().SortedByLHS() {
			fmt.Fprintf(w, "        %s\n", n.FormatFD(fd))
		}
	}
	fmt.Fprintf(w, "Lossless join: %s\n", yesNo(relational.IsLosslessJoin(rel, fragments)))
	_, err := fmt.Fprintf(w, "Dependency preserving: %s\n", yesNo(relational.PreservesDependencies(rel.FDs(), fragments)))
	return err
}

func normalForm(rep *analyze.Report) string {
	switch {
	case rep.InBCNF:
		return "BCNF"
	case rep.In3NF:
		return "3NF (not BCNF)"
	default:
		return "below 3NF"
	}
}

func keyList(n notation.Notation, keys []*relational.AttributeSet) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = "{" + n.FormatAttributes(k) + "}"
	}
	return strings.Join(parts, " ")
}

func writeIndented(w io.Writer, text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if line != "" {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
	fmt.Fprintln(w)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
