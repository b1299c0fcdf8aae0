package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/hurou927/db-normalize/internal/analyze"
	"github.com/hurou927/db-normalize/internal/relational"
)

// DefaultColumnType is used for attributes without a type tag.
const DefaultColumnType = "text"

// Writer writes CREATE TABLE statements.
type Writer struct {
	w io.Writer
}

// NewWriter creates a new DDL writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteHeader writes BEGIN.
func (dw *Writer) WriteHeader() error {
	_, err := fmt.Fprintln(dw.w, "BEGIN;")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(dw.w)
	return err
}

// WriteFooter writes COMMIT.
func (dw *Writer) WriteFooter() error {
	_, err := fmt.Fprintln(dw.w, "COMMIT;")
	return err
}

// WriteTable writes a CREATE TABLE for rel. The first key becomes the
// primary key and the others unique constraints; the dependencies are
// listed as comments.
func (dw *Writer) WriteTable(rel *relational.Relation, keys []*relational.AttributeSet) error {
	for _, fd := range rel.FDs().SortedByLHS() {
		if _, err := fmt.Fprintf(dw.w, "-- %s\n", commentLine(fd.String())); err != nil {
			return err
		}
	}

	var lines []string
	for _, a := range rel.Attributes().ToList() {
		typ := a.Type()
		if typ == "" {
			typ = DefaultColumnType
		}
		lines = append(lines, fmt.Sprintf("    %s %s", QuoteIdent(a.Name()), typ))
	}
	for i, k := range keys {
		kind := "UNIQUE"
		if i == 0 {
			kind = "PRIMARY KEY"
		}
		lines = append(lines, fmt.Sprintf("    %s (%s)", kind, identList(k)))
	}

	_, err := fmt.Fprintf(dw.w, "CREATE TABLE %s (\n%s\n);\n\n", QuoteIdent(rel.Name()), strings.Join(lines, ",\n"))
	return err
}

// WriteDDL writes a transaction creating every fragment of rep.
func WriteDDL(w io.Writer, rep *analyze.Report) error {
	dw := NewWriter(w)
	if err := dw.WriteHeader(); err != nil {
		return err
	}
	for _, f := range rep.Fragments {
		if err := dw.WriteTable(f.Relation, f.Keys); err != nil {
			return fmt.Errorf("writing %s: %w", f.Relation.Name(), err)
		}
	}
	return dw.WriteFooter()
}

func identList(s *relational.AttributeSet) string {
	names := s.Names()
	for i, n := range names {
		names[i] = QuoteIdent(n)
	}
	return strings.Join(names, ", ")
}
