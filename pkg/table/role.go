package table

import (
	"github.com/google/uuid"

	"github.com/leapstack-labs/sqlaide/pkg/domain"
)

// Role is the structural role of a column. It is one of Plain, PrimaryKey,
// Unique, ForeignKey or AutoIncrement.
type Role interface {
	isRole()
}

// Plain is an ordinary column.
type Plain struct{}

// PrimaryKey marks a primary key column.
type PrimaryKey struct{}

// Unique marks a column covered by a single-column UNIQUE constraint.
type Unique struct{}

// ForeignKey marks a column that references another column.
type ForeignKey struct {
	Ref Placeholder
}

// AutoIncrement marks a database-generated integer primary key.
type AutoIncrement struct{}

func (Plain) isRole()         {}
func (PrimaryKey) isRole()    {}
func (Unique) isRole()        {}
func (ForeignKey) isRole()    {}
func (AutoIncrement) isRole() {}

// ColumnSpec declares one column of a shape.
type ColumnSpec struct {
	Name string
	Type domain.Descriptor
	Role Role

	// Domain is a previously compiled domain to reuse for this column.
	Domain *domain.Domain

	// OptionalInInsert drops the column from inserts when no row sets it.
	OptionalInInsert bool
	// ExcludeFromFilter rejects the column in Select criteria.
	ExcludeFromFilter bool
}

// Shape is the ordered column declaration of a table.
type Shape []ColumnSpec

// Names returns the column names in declaration order.
func (s Shape) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Lookup returns the spec for a column name.
func (s Shape) Lookup(name string) (ColumnSpec, bool) {
	for _, c := range s {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// Col declares a plain column.
func Col(name string, t domain.Descriptor) ColumnSpec {
	return ColumnSpec{Name: name, Type: t, Role: Plain{}}
}

// PK declares a primary key column.
func PK(name string, t domain.Descriptor) ColumnSpec {
	return ColumnSpec{Name: name, Type: t, Role: PrimaryKey{}}
}

// AutoIncPK declares an auto-increment integer primary key. It is excluded
// from generated inserts.
func AutoIncPK(name string) ColumnSpec {
	return ColumnSpec{Name: name, Type: domain.Integer(), Role: AutoIncrement{}}
}

// UADefaultablePK declares a text primary key that the caller fills with a
// random UUID when an insert does not supply one.
func UADefaultablePK(name string) ColumnSpec {
	return ColumnSpec{
		Name: name,
		Type: domain.Text().DefaultFunc(func() any { return uuid.NewString() }),
		Role: PrimaryKey{},
	}
}

// UniqueCol declares a column with a single-column UNIQUE constraint.
func UniqueCol(name string, t domain.Descriptor) ColumnSpec {
	return ColumnSpec{Name: name, Type: t, Role: Unique{}}
}

// FK declares a foreign key column. Its type is copied from the referenced
// column.
func FK(name string, ref Placeholder) ColumnSpec {
	return ColumnSpec{Name: name, Role: ForeignKey{Ref: ref}}
}

// Reuse declares a plain column backed by an existing domain.
func Reuse(name string, d *domain.Domain) ColumnSpec {
	return ColumnSpec{Name: name, Type: d.Descriptor(), Role: Plain{}, Domain: d}
}

// CreatedAt declares the conventional created_at timestamp column.
func CreatedAt() ColumnSpec {
	return ColumnSpec{
		Name:             "created_at",
		Type:             domain.DateTime().Optional().DefaultSQL("CURRENT_TIMESTAMP"),
		Role:             Plain{},
		OptionalInInsert: true,
	}
}
