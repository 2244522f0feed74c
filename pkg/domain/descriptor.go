package domain

import (
	"slices"

	"github.com/leapstack-labs/sqlaide/pkg/core"
)

// Descriptor is an immutable abstract column type plus its dialect
// independent constraints. Modifiers return modified copies.
type Descriptor struct {
	kind     core.DataType
	typeName string // raw type name when parsed from a schema document

	optional bool
	nullable bool
	max      int

	def        any
	hasDef     bool
	defSQL     string
	defFunc    func() any
	enumValues []string
	elem       *Descriptor
}

// Of returns a descriptor for kind.
func Of(kind core.DataType) Descriptor { return Descriptor{kind: kind} }

// Parse returns a descriptor for a schema-document type name. Unknown names
// produce a descriptor the factory refuses with *UnmappedTypeError.
func Parse(typeName string) Descriptor {
	kind, _ := core.ParseDataType(typeName)
	return Descriptor{kind: kind, typeName: typeName}
}

func Text() Descriptor     { return Of(core.DataTypeText) }
func JSON() Descriptor     { return Of(core.DataTypeJSON) }
func Integer() Descriptor  { return Of(core.DataTypeInteger) }
func BigInt() Descriptor   { return Of(core.DataTypeBigInt) }
func Float() Descriptor    { return Of(core.DataTypeFloat) }
func BigFloat() Descriptor { return Of(core.DataTypeBigFloat) }
func Date() Descriptor     { return Of(core.DataTypeDate) }
func DateTime() Descriptor { return Of(core.DataTypeDateTime) }
func Boolean() Descriptor  { return Of(core.DataTypeBoolean) }

// VarChar returns a bounded string. n <= 0 leaves the length to the
// factory's default.
func VarChar(n int) Descriptor {
	return Descriptor{kind: core.DataTypeVarChar, max: max(n, 0)}
}

// NativeEnum returns an ordinal enum stored as the value's index.
func NativeEnum(values ...string) Descriptor {
	return Descriptor{kind: core.DataTypeNativeEnum, enumValues: slices.Clone(values)}
}

// TextEnum returns an enum stored as its text value.
func TextEnum(values ...string) Descriptor {
	return Descriptor{kind: core.DataTypeTextEnum, enumValues: slices.Clone(values)}
}

// ArrayOf returns an array of elem.
func ArrayOf(elem Descriptor) Descriptor {
	return Descriptor{kind: core.DataTypeArray, elem: &elem}
}

// Optional marks the value as optional on input.
func (d Descriptor) Optional() Descriptor {
	d.optional = true
	return d
}

// Nullable marks the column as accepting NULL.
func (d Descriptor) Nullable() Descriptor {
	d.nullable = true
	return d
}

// Max sets the maximum length.
func (d Descriptor) Max(n int) Descriptor {
	d.max = n
	return d
}

// Default sets a literal default value rendered in DDL.
func (d Descriptor) Default(v any) Descriptor {
	d.def, d.hasDef = v, true
	return d
}

// DefaultSQL sets a verbatim SQL default expression such as CURRENT_TIMESTAMP.
func (d Descriptor) DefaultSQL(expr string) Descriptor {
	d.defSQL = expr
	return d
}

// DefaultFunc sets a default computed by the caller when preparing inserts.
// It is never rendered in DDL.
func (d Descriptor) DefaultFunc(fn func() any) Descriptor {
	d.defFunc = fn
	return d
}

// WithoutDefault clears every default.
func (d Descriptor) WithoutDefault() Descriptor {
	d.def, d.hasDef, d.defSQL, d.defFunc = nil, false, "", nil
	return d
}

// Required clears the optional and nullable flags.
func (d Descriptor) Required() Descriptor {
	d.optional, d.nullable = false, false
	return d
}

func (d Descriptor) Kind() core.DataType { return d.kind }
func (d Descriptor) MaxLength() int      { return d.max }
func (d Descriptor) IsOptional() bool    { return d.optional }
func (d Descriptor) EnumValues() []string {
	return slices.Clone(d.enumValues)
}

// Elem returns the element descriptor of an array.
func (d Descriptor) Elem() (Descriptor, bool) {
	if d.elem == nil {
		return Descriptor{}, false
	}
	return *d.elem, true
}

// HasDefault reports whether any default (literal, SQL or func) is set.
func (d Descriptor) HasDefault() bool {
	return d.hasDef || d.defSQL != "" || d.defFunc != nil
}

// IsNullable is the OR of optional, nullable and defaulted.
func (d Descriptor) IsNullable() bool {
	return d.optional || d.nullable || d.HasDefault()
}

// TypeName returns the schema-document name of the type.
func (d Descriptor) TypeName() string {
	if d.typeName != "" {
		return d.typeName
	}
	return d.kind.String()
}
