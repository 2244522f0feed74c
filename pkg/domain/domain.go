// Package domain maps abstract column types to per-dialect SQL type names,
// defaults and literals.
//
// A Domain is created once per declared column by a Factory and is
// immutable afterwards, apart from its identity (bound once) and its lint
// issues (append-only).
package domain

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/emit"
	"github.com/leapstack-labs/sqlaide/pkg/lint"
)

// NotBound is the identity of a domain that has not been assigned to a
// column. It is rendered visibly when it reaches SQL output.
const NotBound = "SQL_DOMAIN_NOT_IN_COLLECTION"

// VarcharDefaultLength is the fallback length for unbounded VARCHAR domains.
const VarcharDefaultLength = 255

// Domain is a column's semantic type plus its per-dialect rendering.
type Domain struct {
	lint.Issues

	mu       sync.RWMutex
	identity string

	desc           Descriptor
	elem           *Domain
	varcharDefault int
}

// Identity returns the bound column name, or NotBound.
func (d *Domain) Identity() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.identity
}

// IsBound reports whether the domain has a real identity.
func (d *Domain) IsBound() bool {
	return d.Identity() != NotBound
}

// Bind assigns the domain's identity. Binding the same name twice is a
// no-op; binding a bound domain to another name fails with ErrIdentityBound.
func (d *Domain) Bind(name string) error {
	if name == "" || name == NotBound {
		return fmt.Errorf("%w: %q", ErrInvalidIdentity, name)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.identity {
	case NotBound:
		d.identity = name
		return nil
	case name:
		return nil
	default:
		return fmt.Errorf("%w: %q cannot be rebound to %q", ErrIdentityBound, d.identity, name)
	}
}

// Descriptor returns the descriptor the domain was built from.
func (d *Domain) Descriptor() Descriptor { return d.desc }

// Kind returns the abstract type.
func (d *Domain) Kind() core.DataType { return d.desc.kind }

// IsNullable reports whether the column accepts NULL.
func (d *Domain) IsNullable() bool { return d.desc.IsNullable() }

// VarcharLength returns the declared max length, or the factory default
// when none was declared.
func (d *Domain) VarcharLength() (n int, declared bool) {
	if d.desc.max > 0 {
		return d.desc.max, true
	}
	return d.varcharDefault, false
}

// SQLDataType renders the column type for the context's dialect.
func (d *Domain) SQLDataType(ctx *emit.Context) string {
	dia := ctx.Dialect
	switch d.desc.kind {
	case core.DataTypeVarChar:
		n, declared := d.VarcharLength()
		if dia.IsEnterprise() {
			if !declared {
				return "NVARCHAR(MAX)"
			}
			return "NVARCHAR(" + strconv.Itoa(n) + ")"
		}
		return "VARCHAR(" + strconv.Itoa(n) + ")"
	case core.DataTypeBigFloat:
		switch dia.Family {
		case core.FamilyEnterprise:
			return "DOUBLE PRECISION"
		case core.FamilyClientServer:
			return "FLOAT"
		default:
			return "REAL"
		}
	case core.DataTypeArray:
		if dia.SupportsArrays() && d.elem != nil {
			return d.elem.SQLDataType(ctx) + "[]"
		}
		return typeName(ctx, core.DataTypeJSON)
	default:
		return typeName(ctx, d.desc.kind)
	}
}

// DataType returns the column type as a fragment.
func (d *Domain) DataType() emit.Fragment {
	return emit.Func(d.SQLDataType)
}

var ansiTypeNames = map[core.DataType]string{
	core.DataTypeText:       "TEXT",
	core.DataTypeJSON:       "JSON",
	core.DataTypeInteger:    "INTEGER",
	core.DataTypeBigInt:     "BIGINT",
	core.DataTypeFloat:      "REAL",
	core.DataTypeDate:       "DATE",
	core.DataTypeDateTime:   "DATETIME",
	core.DataTypeBoolean:    "BOOLEAN",
	core.DataTypeNativeEnum: "INTEGER",
	core.DataTypeTextEnum:   "TEXT",
}

func typeName(ctx *emit.Context, kind core.DataType) string {
	if name, ok := ctx.Dialect.TypeName(kind); ok {
		return name
	}
	return ansiTypeNames[kind]
}

// SQLDefaultValue renders the DDL default, if any. Func defaults are
// caller-side only and never rendered.
func (d *Domain) SQLDefaultValue(ctx *emit.Context) (string, bool) {
	switch {
	case d.desc.defSQL != "":
		return d.desc.defSQL, true
	case d.desc.hasDef:
		return d.Literal(ctx, PurposeInsert, d.desc.def), true
	default:
		return "", false
	}
}

// CallerDefault evaluates the caller-side default, if any.
func (d *Domain) CallerDefault() (any, bool) {
	if d.desc.defFunc == nil {
		return nil, false
	}
	return d.desc.defFunc(), true
}

// Element returns the element domain of an array domain.
func (d *Domain) Element() *Domain { return d.elem }

// location reports the domain's identity at the time the issue is read.
func (d *Domain) location(maxLen int) string {
	return lint.Truncate("domain "+d.Identity(), maxLen)
}

func (d *Domain) String() string {
	return d.Identity() + " " + d.desc.TypeName()
}
