// Package loader reads YAML schema documents and compiles them into a
// table arena.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a parsed schema document.
type Document struct {
	Namespace string     `yaml:"namespace"`
	Enums     []EnumDoc  `yaml:"enums"`
	Tables    []TableDoc `yaml:"tables"`
}

// TableDoc declares one table.
type TableDoc struct {
	Name       string      `yaml:"name"`
	Namespace  string      `yaml:"namespace"`
	Temp       bool        `yaml:"temp"`
	Idempotent bool        `yaml:"idempotent"`
	Columns    []ColumnDoc `yaml:"columns"`
	Unique     [][]string  `yaml:"unique"`
	Checks     []string    `yaml:"checks"`
	Lint       LintDoc     `yaml:"lint"`
}

// LintDoc carries the per-table lint switches.
type LintDoc struct {
	IgnoreMissingPrimaryKey bool `yaml:"ignore_missing_primary_key"`
	IgnorePluralName        bool `yaml:"ignore_plural_name"`
}

// ColumnDoc declares one column.
type ColumnDoc struct {
	Name       string   `yaml:"name"`
	Type       string   `yaml:"type"`
	Role       string   `yaml:"role"` // plain, pk, autoinc, unique, uuid
	Max        int      `yaml:"max"`
	Optional   bool     `yaml:"optional"`
	Nullable   bool     `yaml:"nullable"`
	Default    any      `yaml:"default"`
	DefaultSQL string   `yaml:"default_sql"`
	Values     []string `yaml:"values"` // enum values
	Elem       string   `yaml:"elem"`   // array element type
	References *RefDoc  `yaml:"references"`
	NoFilter   bool     `yaml:"no_filter"`
	InsertOpt  bool     `yaml:"optional_in_insert"`
}

// RefDoc points a foreign key at another table's column.
type RefDoc struct {
	Table  string `yaml:"table"`
	Column string `yaml:"column"`
	Nature string `yaml:"nature"` // reference, belongs_to, extends, inherits
}

// EnumDoc declares a seeded lookup table.
type EnumDoc struct {
	Name       string    `yaml:"name"`
	Kind       string    `yaml:"kind"` // ordinal or text
	Namespace  string    `yaml:"namespace"`
	Idempotent bool      `yaml:"idempotent"`
	Values     []string  `yaml:"values"`
	Pairs      []PairDoc `yaml:"pairs"`
}

// PairDoc is one row of a text enum.
type PairDoc struct {
	Code  string `yaml:"code"`
	Value string `yaml:"value"`
}

// ParseError is a schema document that could not be decoded.
type ParseError struct {
	File    string
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// Parse decodes a schema document. Unknown fields are rejected.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, &ParseError{Message: fmt.Sprintf("invalid schema document: %v", err)}
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadFile reads and parses the schema document at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.File = path
		}
		return nil, err
	}
	return doc, nil
}

// Validate reports structural problems that would otherwise surface as
// confusing build errors.
func (d *Document) Validate() error {
	var errs []error
	seen := make(map[string]struct{})
	declare := func(kind, name string) {
		if name == "" {
			errs = append(errs, &ParseError{Message: kind + " without a name"})
			return
		}
		if _, dup := seen[name]; dup {
			errs = append(errs, &ParseError{Message: fmt.Sprintf("%s %q declared twice", kind, name)})
		}
		seen[name] = struct{}{}
	}
	for _, e := range d.Enums {
		declare("enum", e.Name)
		switch e.Kind {
		case "", enumOrdinal:
			if len(e.Pairs) > 0 {
				errs = append(errs, &ParseError{Message: fmt.Sprintf("ordinal enum %q takes values, not pairs", e.Name)})
			}
		case enumText:
			if len(e.Values) > 0 {
				errs = append(errs, &ParseError{Message: fmt.Sprintf("text enum %q takes pairs, not values", e.Name)})
			}
		default:
			errs = append(errs, &ParseError{Message: fmt.Sprintf("enum %q has unknown kind %q", e.Name, e.Kind)})
		}
	}
	for _, t := range d.Tables {
		declare("table", t.Name)
		for _, c := range t.Columns {
			if c.Name == "" {
				errs = append(errs, &ParseError{Message: fmt.Sprintf("table %q has a column without a name", t.Name)})
			}
			if _, ok := roles[c.Role]; !ok {
				errs = append(errs, &ParseError{Message: fmt.Sprintf("table %q column %q has unknown role %q", t.Name, c.Name, c.Role)})
			}
			if c.References != nil && c.Type != "" {
				errs = append(errs, &ParseError{Message: fmt.Sprintf("table %q column %q: a reference takes its type from the referenced column", t.Name, c.Name)})
			}
		}
	}
	return errors.Join(errs...)
}
