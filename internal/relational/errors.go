package relational

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchemaInvariant is returned when an FD refers to attributes outside its relation.
	ErrSchemaInvariant = errors.New("schema invariant violated")
	// ErrEmptyRelation is returned when a relation is declared without attributes.
	ErrEmptyRelation = errors.New("relation has no attributes")
	// ErrLimitExceeded is returned when an exponential routine would exceed its work limit.
	ErrLimitExceeded = errors.New("work limit exceeded")
	// ErrIncompleteDecomposition is returned when proposed fragments leave attributes uncovered.
	ErrIncompleteDecomposition = errors.New("fragments do not cover the relation")
	// ErrLossyDecomposition is returned if a decomposition step fails the lossless-join test.
	ErrLossyDecomposition = errors.New("decomposition step is not lossless")
)

// SchemaError describes FD attributes that are missing from the declared relation.
type SchemaError struct {
	Relation string
	Missing  []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("relation %s: functional dependencies use undeclared attributes [%s]",
		e.Relation, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaInvariant
}

// LimitError reports which bound was hit and how much work was requested.
type LimitError struct {
	Resource string
	Limit    uint64
	Need     uint64
}

func (e *LimitError) Error() string {
	if e.Need == 0 {
		return fmt.Sprintf("%s limit of %d exceeded", e.Resource, e.Limit)
	}
	return fmt.Sprintf("%s limit of %d exceeded (need %d)", e.Resource, e.Limit, e.Need)
}

func (e *LimitError) Unwrap() error {
	return ErrLimitExceeded
}
