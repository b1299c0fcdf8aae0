package notation

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/hurou927/db-normalize/internal/relational"
)

var headerRe = regexp.MustCompile(`^\s*([^()]+?)\s*\((.*)\)\s*$`)

// Column is a header attribute with an optional type tag ("id:int").
type Column struct {
	Name string
	Type string
}

// ParseHeader parses "Name(a, b:int, c)". Header attributes are separated by
// the notation's delimiter, or by "," when it has none; a compact header
// such as "R(ABCD)" without any separator names one attribute per rune.
func (n Notation) ParseHeader(text string) (string, []Column, error) {
	m := headerRe.FindStringSubmatch(text)
	if m == nil {
		return "", nil, &ParseError{Text: text, Reason: "expected Name(attributes)"}
	}
	name := NormalizeName(m[1])
	sep := n.Delimiter
	if sep == "" {
		if !strings.Contains(m[2], ",") {
			names, _ := n.splitNames(m[2])
			cols := make([]Column, len(names))
			for i, a := range names {
				cols[i] = Column{Name: a}
			}
			return name, cols, nil
		}
		sep = ","
	}
	var cols []Column
	for _, part := range strings.Split(m[2], sep) {
		attr, typ, _ := strings.Cut(part, ":")
		attr = NormalizeName(attr)
		if attr == "" {
			return "", nil, &ParseError{Text: text, Reason: "empty attribute name"}
		}
		cols = append(cols, Column{Name: attr, Type: strings.TrimSpace(typ)})
	}
	return name, cols, nil
}

// ReadRelation reads a schema: a header line followed by one dependency per
// line. Blank lines and lines starting with "#" are skipped.
func (n Notation) ReadRelation(reg *relational.Registry, r io.Reader) (*relational.Relation, error) {
	scanner := bufio.NewScanner(r)
	var (
		name  string
		attrs *relational.AttributeSet
		fds   = reg.NewFDSet()
		line  int
	)
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if attrs == nil {
			relName, cols, err := n.ParseHeader(text)
			if err != nil {
				return nil, withLine(err, line)
			}
			name = relName
			attrs = reg.NewSet()
			for _, c := range cols {
				a := reg.Intern(c.Name)
				if c.Type != "" {
					reg.SetType(a, c.Type)
				}
				attrs.Add(a)
			}
			continue
		}
		fd, err := n.ParseFD(reg, text)
		if err != nil {
			return nil, withLine(err, line)
		}
		fds.Add(fd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading relation: %w", err)
	}
	if attrs == nil {
		return nil, &ParseError{Line: line, Reason: "missing relation header"}
	}
	return relational.NewRelation(name, attrs, fds)
}

// LoadRelation reads a schema file.
func (n Notation) LoadRelation(reg *relational.Registry, path string) (*relational.Relation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schema file: %w", err)
	}
	defer f.Close()

	rel, err := n.ReadRelation(reg, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rel, nil
}

// FormatRelation writes rel in the form ReadRelation accepts.
func (n Notation) FormatRelation(rel *relational.Relation) string {
	attrs := rel.Attributes()
	names := attrs.Names()
	if n.Delimiter != "" {
		for i, a := range attrs.ToList() {
			if t := a.Type(); t != "" {
				names[i] += ":" + t
			}
		}
	}
	sep := n.Delimiter
	if sep != "" {
		sep += " "
	}
	return fmt.Sprintf("%s(%s)\n", rel.Name(), strings.Join(names, sep)) + n.FormatFDSet(rel.FDs())
}
