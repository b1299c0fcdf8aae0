package output

import (
	"strings"
	"unicode"
)

// QuoteIdent quotes a PostgreSQL identifier when it is not a plain
// lower-case name. Embedded double quotes are doubled.
func QuoteIdent(name string) string {
	if isPlainIdent(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func isPlainIdent(name string) bool {
	if name == "" || reserved[name] {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z'):
		case i > 0 && (unicode.IsDigit(r) || r == '$'):
		default:
			return false
		}
	}
	return true
}

// reserved holds keywords that cannot appear unquoted as column names.
var reserved = map[string]bool{
	"all": true, "and": true, "any": true, "as": true, "check": true, "column": true,
	"constraint": true, "create": true, "default": true, "desc": true, "from": true,
	"group": true, "in": true, "key": true, "not": true, "null": true, "order": true,
	"primary": true, "references": true, "select": true, "table": true, "to": true,
	"unique": true, "user": true, "where": true,
}

// commentLine escapes s for a single-line SQL comment.
func commentLine(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\n', '\r':
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
