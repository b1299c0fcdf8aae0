package schema

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/hurou927/db-normalize/internal/relational"
)

// Column represents a database column.
type Column struct {
	Name     string
	DataType string // PostgreSQL type name (e.g. "int4", "text", "bool")
	Nullable bool
	OrdPos   int // ordinal position (1-based)
}

// Key represents a primary key or unique constraint.
type Key struct {
	Name    string
	Primary bool
	Columns []string
}

// Table represents a database table with its columns and keys.
type Table struct {
	Schema  string
	Name    string
	Columns []Column
	Keys    []Key
}

// FullName returns schema-qualified table name.
func (t *Table) FullName() string {
	return t.Schema + "." + t.Name
}

// ColumnNames returns all column names in ordinal order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// PrimaryKey returns the primary key, or nil if the table has none.
func (t *Table) PrimaryKey() *Key {
	for i := range t.Keys {
		if t.Keys[i].Primary {
			return &t.Keys[i]
		}
	}
	return nil
}

func (t *Table) column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Determines reports whether k identifies a row: a primary key always does,
// a unique constraint only when none of its columns is nullable.
func (t *Table) Determines(k Key) bool {
	if k.Primary {
		return true
	}
	for _, name := range k.Columns {
		if c, ok := t.column(name); !ok || c.Nullable {
			return false
		}
	}
	return true
}

// ToRelation builds a relation over the table's columns. Each column type
// becomes the attribute's type tag and each identifying key contributes
// key -> remaining columns.
func (t *Table) ToRelation(reg *relational.Registry) (*relational.Relation, error) {
	attrs := reg.NewSet()
	for _, c := range t.Columns {
		a := reg.Intern(c.Name)
		reg.SetType(a, c.DataType)
		attrs.Add(a)
	}
	fds := reg.NewFDSet()
	for _, k := range t.Keys {
		if !t.Determines(k) {
			continue
		}
		lhs := reg.NewSet()
		for _, name := range k.Columns {
			a, ok := reg.Lookup(name)
			if !ok {
				return nil, fmt.Errorf("table %s: key %s references unknown column %s", t.FullName(), k.Name, name)
			}
			lhs.Add(a)
		}
		if rhs := attrs.Minus(lhs); !rhs.IsEmpty() {
			fds.Add(relational.NewFD(lhs, rhs))
		}
	}
	return relational.NewRelation(t.Name, attrs, fds)
}

// SortedTables returns the tables ordered by schema-qualified name.
func SortedTables(tables map[string]*Table) []*Table {
	out := make([]*Table, 0, len(tables))
	for _, t := range tables {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b *Table) int {
		return cmp.Compare(a.FullName(), b.FullName())
	})
	return out
}
