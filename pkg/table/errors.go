package table

import (
	"errors"
	"fmt"
)

// ErrEmptyTableName is returned when building a table without a name.
var ErrEmptyTableName = errors.New("table name is required")

// ErrTableAlreadyBuilt is returned when a table name is built twice in one arena.
var ErrTableAlreadyBuilt = errors.New("table already built")

// ErrNoRows is returned when an insert is given no rows.
var ErrNoRows = errors.New("insert requires at least one row")

// ErrMixedRows is returned when a multi-row insert sets an optional column
// in some rows only. A NULL in the other rows would override the column
// default.
var ErrMixedRows = errors.New("optional column must be set in every row or in none")

// ErrInvalidComparison is returned for a filter that can match no row: an
// empty IN list or an ordering comparison against NULL.
var ErrInvalidComparison = errors.New("comparison can never match")

// DuplicateColumnError is returned when a shape declares a column twice.
type DuplicateColumnError struct {
	Table  string
	Column string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("table %s: duplicate column %q", e.Table, e.Column)
}

// UnresolvedReferenceError is a foreign key whose source does not exist.
type UnresolvedReferenceError struct {
	Table        string
	Column       string
	SourceTable  string
	SourceColumn string
	Reason       string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("table %s column %s: unresolved reference to %s.%s: %s",
		e.Table, e.Column, e.SourceTable, e.SourceColumn, e.Reason)
}

// UnknownColumnError is returned when DML names a column the table cannot
// accept in that position.
type UnknownColumnError struct {
	Table  string
	Column string
	Reason string
}

func (e *UnknownColumnError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("table %s has no column %q", e.Table, e.Column)
	}
	return fmt.Sprintf("table %s column %q: %s", e.Table, e.Column, e.Reason)
}
