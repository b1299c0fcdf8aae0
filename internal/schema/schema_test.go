package schema

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hurou927/db-normalize/internal/relational"
)

// fakeRows replays fixed rows through the pgx.Rows interface.
type fakeRows struct {
	data [][]any
	pos  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return r.data[r.pos-1], nil }

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos <= len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.pos-1]
	if len(row) != len(dest) {
		return fmt.Errorf("scan: %d columns into %d targets", len(row), len(dest))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *bool:
			*p = row[i].(bool)
		case *int:
			*p = row[i].(int)
		default:
			return fmt.Errorf("scan: unsupported target %T", d)
		}
	}
	return nil
}

// fakeQuerier answers the column query and the key query.
type fakeQuerier struct {
	columns [][]any
	keys    [][]any
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	if strings.Contains(sql, "pg_constraint") {
		return &fakeRows{data: q.keys}, nil
	}
	return &fakeRows{data: q.columns}, nil
}

func employeeQuerier() *fakeQuerier {
	return &fakeQuerier{
		columns: [][]any{
			{"public", "emp", "id", "int4", false, 1},
			{"public", "emp", "email", "text", false, 2},
			{"public", "emp", "badge", "text", true, 3},
			{"public", "emp", "dept", "text", false, 4},
			{"public", "dept", "code", "text", false, 1},
			{"public", "dept", "name", "text", false, 2},
		},
		keys: [][]any{
			{"public", "dept", "dept_pkey", true, "code"},
			{"public", "emp", "emp_pkey", true, "id"},
			{"public", "emp", "emp_badge_key", false, "badge"},
			{"public", "emp", "emp_email_dept_key", false, "email"},
			{"public", "emp", "emp_email_dept_key", false, "dept"},
		},
	}
}

func TestIntrospect(t *testing.T) {
	tables, err := Introspect(context.Background(), employeeQuerier(), []string{"public"}, nil)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	emp := tables["public.emp"]
	require.NotNil(t, emp)
	assert.Equal(t, []string{"id", "email", "badge", "dept"}, emp.ColumnNames())
	require.Len(t, emp.Keys, 3)
	assert.Equal(t, []string{"id"}, emp.PrimaryKey().Columns)
	assert.Equal(t, Key{Name: "emp_email_dept_key", Columns: []string{"email", "dept"}}, emp.Keys[2])

	sorted := SortedTables(tables)
	assert.Equal(t, "public.dept", sorted[0].FullName())
	assert.Equal(t, "public.emp", sorted[1].FullName())
}

func TestIntrospectFiltersTables(t *testing.T) {
	tables, err := Introspect(context.Background(), employeeQuerier(), []string{"public"}, map[string]bool{"dept": true})
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Contains(t, tables, "public.dept")
}

func TestToRelation(t *testing.T) {
	tables, err := Introspect(context.Background(), employeeQuerier(), []string{"public"}, nil)
	require.NoError(t, err)
	emp := tables["public.emp"]

	assert.True(t, emp.Determines(emp.Keys[0]))
	assert.False(t, emp.Determines(emp.Keys[1]), "nullable unique column")
	assert.True(t, emp.Determines(emp.Keys[2]))

	reg := relational.NewRegistry()
	rel, err := emp.ToRelation(reg)
	require.NoError(t, err)
	assert.Equal(t, "emp(id,email,badge,dept)", rel.String())

	var got []string
	for _, fd := range rel.FDs().ToList() {
		got = append(got, fd.String())
	}
	assert.Equal(t, []string{"id->email,badge,dept", "email,dept->id,badge"}, got)

	id, ok := reg.Lookup("id")
	require.True(t, ok)
	assert.Equal(t, "int4", id.Type())

	keys, err := rel.CandidateKeys(relational.DefaultLimits)
	require.NoError(t, err)
	assert.Equal(t, 2, keys.Size())
}

func TestToRelationWithoutKeys(t *testing.T) {
	tbl := &Table{Schema: "public", Name: "log", Columns: []Column{{Name: "at", DataType: "timestamptz"}, {Name: "msg", DataType: "text"}}}
	rel, err := tbl.ToRelation(relational.NewRegistry())
	require.NoError(t, err)
	assert.True(t, rel.FDs().IsEmpty())
	assert.Nil(t, tbl.PrimaryKey())
}

func TestToRelationUnknownKeyColumn(t *testing.T) {
	tbl := &Table{
		Schema:  "public",
		Name:    "broken",
		Columns: []Column{{Name: "a", DataType: "int4"}},
		Keys:    []Key{{Name: "broken_pkey", Primary: true, Columns: []string{"b"}}},
	}
	_, err := tbl.ToRelation(relational.NewRegistry())
	assert.ErrorContains(t, err, "unknown column b")
}
