// Package notation reads and writes attribute sets, functional dependencies
// and relation schemas in their textual form, e.g. "Emp(id, dept, mgr)" and
// "dept -> mgr".
package notation

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/hurou927/db-normalize/internal/relational"
)

// Notation selects the separators used in the textual form.
type Notation struct {
	// Delimiter separates attribute names. When empty every non-space rune
	// is an attribute of its own, so "AB->C" reads as {A,B} -> {C}.
	Delimiter  string
	Arrow      string
	MultiArrow string
}

// Default is the notation "a, b -> c" with "->>" marking multivalued dependencies.
var Default = Notation{Delimiter: ",", Arrow: "->", MultiArrow: "->>"}

// Letters is the compact single-letter notation "AB->C".
var Letters = Notation{Delimiter: "", Arrow: "->", MultiArrow: "->>"}

// ParseError reports malformed input. Line is 1-based; 0 means the input
// was not read from a file.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Text)
}

// NormalizeName trims s, applies Unicode NFC and joins inner whitespace runs
// with "_".
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), "_")
}

// splitNames breaks text into normalized attribute names.
func (n Notation) splitNames(text string) ([]string, error) {
	text = norm.NFC.String(text)
	if n.Delimiter == "" {
		var names []string
		for _, r := range text {
			if !unicode.IsSpace(r) {
				names = append(names, string(r))
			}
		}
		return names, nil
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	parts := strings.Split(text, n.Delimiter)
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		name := NormalizeName(p)
		if name == "" {
			return nil, &ParseError{Text: text, Reason: "empty attribute name"}
		}
		names = append(names, name)
	}
	return names, nil
}

// ParseAttributes interns every name in text and returns them as a set.
// Blank text yields the empty set.
func (n Notation) ParseAttributes(reg *relational.Registry, text string) (*relational.AttributeSet, error) {
	names, err := n.splitNames(text)
	if err != nil {
		return nil, err
	}
	return reg.Attrs(names...), nil
}

// ParseFD parses "lhs -> rhs" or "lhs ->> rhs". The right-hand side must not
// be empty.
func (n Notation) ParseFD(reg *relational.Registry, text string) (*relational.FD, error) {
	multivalued := false
	lhs, rhs, ok := "", "", false
	if n.MultiArrow != "" {
		lhs, rhs, ok = strings.Cut(text, n.MultiArrow)
		multivalued = ok
	}
	if !ok {
		lhs, rhs, ok = strings.Cut(text, n.Arrow)
	}
	if !ok {
		return nil, &ParseError{Text: text, Reason: fmt.Sprintf("missing %q", n.Arrow)}
	}
	l, err := n.ParseAttributes(reg, lhs)
	if err != nil {
		return nil, err
	}
	r, err := n.ParseAttributes(reg, rhs)
	if err != nil {
		return nil, err
	}
	if r.IsEmpty() {
		return nil, &ParseError{Text: text, Reason: "empty right-hand side"}
	}
	return relational.NewFD(l, r).AsMultivalued(multivalued), nil
}

// ParseFDList parses dependencies separated by sep, e.g. "AB->C,A->D" with
// the Letters notation and sep ",". Empty items are skipped. A ParseError
// carries the 1-based position of the offending item in Line.
func (n Notation) ParseFDList(reg *relational.Registry, text, sep string) (*relational.FDSet, error) {
	fds := reg.NewFDSet()
	for i, item := range strings.Split(text, sep) {
		if strings.TrimSpace(item) == "" {
			continue
		}
		fd, err := n.ParseFD(reg, item)
		if err != nil {
			return nil, withLine(err, i+1)
		}
		fds.Add(fd)
	}
	return fds, nil
}

func withLine(err error, line int) error {
	if pe, ok := err.(*ParseError); ok {
		return &ParseError{Line: line, Text: pe.Text, Reason: pe.Reason}
	}
	return err
}

// FormatAttributes renders a set in id order.
func (n Notation) FormatAttributes(s *relational.AttributeSet) string {
	sep := n.Delimiter
	if sep != "" {
		sep += " "
	}
	return strings.Join(s.Names(), sep)
}

// FormatFD renders fd with the arrow matching its multivalued flag.
func (n Notation) FormatFD(fd *relational.FD) string {
	arrow := n.Arrow
	if fd.Multivalued() && n.MultiArrow != "" {
		arrow = n.MultiArrow
	}
	if n.Delimiter != "" {
		arrow = " " + arrow + " "
	}
	return n.FormatAttributes(fd.LHS()) + arrow + n.FormatAttributes(fd.RHS())
}

// FormatFDSet renders one dependency per line, smallest LHS first.
func (n Notation) FormatFDSet(fds *relational.FDSet) string {
	var b strings.Builder
	for _, fd := range fds.SortedByLHS() {
		b.WriteString(n.FormatFD(fd))
		b.WriteByte('\n')
	}
	return b.String()
}
