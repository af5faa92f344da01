// Package orderby declares sortable fields and the joins they need, and turns
// requested field priorities into a planned set of joins and order terms.
//
// A schema is declared once, usually at package initialization, and compiled
// into an immutable Spec:
//
//	var componentOrder = orderby.NewSchema("component").
//	    Join(paging.TC("component", "component_type_id"), paging.TC("component_type", "id")).
//	    Field("type_order", paging.TC("component_type", "order"), orderby.Default(1)).
//	    Field("id", paging.TC("component", "id"), orderby.Unique(), orderby.Default(2)).
//	    MustCompile()
package orderby

import (
	"github.com/friendsofgo/errors"

	paging "github.com/nrfta/rdb-paging-go"
)

// Field is a sortable column of a schema.
type Field struct {
	// Key is the public name of the field, used in requests.
	Key string

	// Column is the column ordered on.
	Column paging.TableColumn

	// Unique marks columns whose values never repeat, so nothing after them
	// can change the order.
	Unique bool

	// Nulls is the placement of NULL values.
	Nulls paging.NullStrategy

	// Default is the priority used when the request does not say otherwise.
	Default paging.Priority
}

// FieldOption configures a Field.
type FieldOption func(*Field)

// Unique marks the column as unique.
func Unique() FieldOption {
	return func(f *Field) {
		f.Unique = true
	}
}

// NullsFirst sorts NULL values before all others.
func NullsFirst() FieldOption {
	return func(f *Field) {
		f.Nulls = paging.NullsFirst
	}
}

// NullsLast sorts NULL values after all others.
func NullsLast() FieldOption {
	return func(f *Field) {
		f.Nulls = paging.NullsLast
	}
}

// Nulls sets the placement of NULL values.
func Nulls(s paging.NullStrategy) FieldOption {
	return func(f *Field) {
		f.Nulls = s
	}
}

// Default sets the default priority of the field.
func Default(p paging.Priority) FieldOption {
	return func(f *Field) {
		f.Default = p
	}
}

type joinDecl struct {
	foreign   paging.TableColumn
	primary   paging.TableColumn
	realTable paging.Name
}

// Schema is a fluent builder for a Spec. Declaration order matters: joins must
// be declared after the table they join to, and fields with equal priorities
// sort in declaration order.
type Schema struct {
	base   paging.Name
	joins  []joinDecl
	fields []Field
}

// NewSchema starts a schema rooted at the base table.
func NewSchema(base string) *Schema {
	return &Schema{base: paging.Name(base)}
}

// Join declares that primary.Table is reached by
// primary.Table.primary.Column = foreign.Table.foreign.Column.
func (s *Schema) Join(foreign, primary paging.TableColumn) *Schema {
	return s.JoinAs(foreign, primary, "")
}

// JoinAs is Join where primary.Table is an alias of realTable.
//
// Example:
//
//	schema.JoinAs(
//	    paging.TC("component", "replacement_id"),
//	    paging.TC("replacement", "id"),
//	    "component",
//	)
func (s *Schema) JoinAs(foreign, primary paging.TableColumn, realTable string) *Schema {
	s.joins = append(s.joins, joinDecl{
		foreign:   foreign,
		primary:   primary,
		realTable: paging.Name(realTable),
	})
	return s
}

// Field declares a sortable field.
func (s *Schema) Field(key string, column paging.TableColumn, opts ...FieldOption) *Schema {
	f := Field{Key: key, Column: column}
	for _, opt := range opts {
		opt(&f)
	}
	s.fields = append(s.fields, f)
	return s
}

// Compile validates the schema and returns its Spec.
//
// Every join must connect to the base table or an earlier join, every field
// must be on a reachable table, and no two fields may name the same column,
// counting a joined primary column and the foreign column it equals as one.
func (s *Schema) Compile() (*Spec, error) {
	rel := paging.NewRelationship(s.base)
	for _, j := range s.joins {
		if err := rel.JoinChecked(j.foreign, j.primary, j.realTable); err != nil {
			return nil, errors.Wrapf(err, "joining %s", j.primary)
		}
	}

	checker := paging.NewPlanner(rel, len(s.fields))
	index := make(map[string]int, len(s.fields))
	for i, f := range s.fields {
		if _, ok := index[f.Key]; ok {
			return nil, errors.Wrapf(ErrFieldDuplicate, "%q", f.Key)
		}
		if err := checker.AddKeyChecked(f.Column, f.Unique); err != nil {
			return nil, errors.Wrapf(err, "field %q", f.Key)
		}
		index[f.Key] = i
	}

	fields := make([]Field, len(s.fields))
	copy(fields, s.fields)

	return &Spec{
		rel:    rel,
		fields: fields,
		index:  index,
	}, nil
}

// MustCompile is like Compile but panics on an invalid schema. It is meant for
// package-level declarations.
func (s *Schema) MustCompile() *Spec {
	spec, err := s.Compile()
	if err != nil {
		panic(err)
	}
	return spec
}
