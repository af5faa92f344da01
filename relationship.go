package paging

import (
	"github.com/friendsofgo/errors"
)

// Edge is the foreign-key link from one joined table toward the base table.
//
// It reads as: Table.Column = ForeignTable.ForeignColumn. When RealTable is set,
// Table is an alias of RealTable.
type Edge struct {
	Table         Name
	Column        Name
	RealTable     Name
	ForeignTable  Name
	ForeignColumn Name
}

// Primary returns the (Table, Column) side of the edge.
func (e Edge) Primary() TableColumn {
	return TableColumn{Table: e.Table, Column: e.Column}
}

// Foreign returns the (ForeignTable, ForeignColumn) side of the edge.
func (e Edge) Foreign() TableColumn {
	return TableColumn{Table: e.ForeignTable, Column: e.ForeignColumn}
}

// Relationship describes how tables relate to a base table.
//
// Every joined table has exactly one outgoing edge, so the structure is a tree
// rooted at the base table and the path from any table to the base is a chain.
//
// Example:
//
//	rel := paging.NewRelationship("component")
//	err := rel.JoinChecked(
//	    paging.TC("component", "component_type_id"),
//	    paging.TC("component_type", "id"),
//	    "",
//	)
type Relationship struct {
	base  Name
	edges map[Name]Edge
}

// NewRelationship returns an empty relationship rooted at base.
func NewRelationship(base Name) *Relationship {
	return &Relationship{
		base:  base,
		edges: make(map[Name]Edge),
	}
}

// Base returns the base table name.
func (r *Relationship) Base() Name {
	return r.base
}

// Len returns the number of registered edges.
func (r *Relationship) Len() int {
	return len(r.edges)
}

// JoinChecked registers that primary.Table reaches foreign.Table via
// primary.Table.primary.Column = foreign.Table.foreign.Column.
//
// Edges must be added so that the graph stays connected to the base table:
// foreign.Table has to be the base table or an already registered table.
// realTable is the underlying table when primary.Table is an alias; pass "" otherwise.
func (r *Relationship) JoinChecked(foreign, primary TableColumn, realTable Name) error {
	if _, ok := r.edges[primary.Table]; ok {
		return errors.Wrapf(ErrPrimaryDuplicate, "table %s", primary.Table)
	}

	if foreign.Table != r.base {
		if _, ok := r.edges[foreign.Table]; !ok {
			return errors.Wrapf(ErrForeignNotFound, "joining %s to %s", primary.Table, foreign.Table)
		}
	}

	r.Join(foreign, primary, realTable)

	return nil
}

// Join registers an edge without validation, overwriting any existing edge of
// primary.Table. It is meant for input that was already validated.
func (r *Relationship) Join(foreign, primary TableColumn, realTable Name) {
	r.edges[primary.Table] = Edge{
		Table:         primary.Table,
		Column:        primary.Column,
		RealTable:     realTable,
		ForeignTable:  foreign.Table,
		ForeignColumn: foreign.Column,
	}
}

// Edge returns the edge registered for table.
func (r *Relationship) Edge(table Name) (Edge, bool) {
	e, ok := r.edges[table]
	return e, ok
}

// IsPrimaryKey reports whether tc is the primary side of a registered edge.
func (r *Relationship) IsPrimaryKey(tc TableColumn) bool {
	e, ok := r.edges[tc.Table]
	return ok && e.Column == tc.Column
}

// Resolve rewrites a reference to the primary side of an edge into the foreign
// side it equals. Any other reference is returned unchanged, so resolving twice
// is the same as resolving once.
func (r *Relationship) Resolve(tc TableColumn) TableColumn {
	if e, ok := r.edges[tc.Table]; ok && e.Column == tc.Column {
		return e.Foreign()
	}
	return tc
}

// RelatedChain returns the tables walked from table toward the base table,
// excluding table itself and ending with the base table. The base table has an
// empty chain.
//
// The walk is bounded by the number of edges, so a cycle introduced through Join
// yields ErrCycleDetected instead of looping.
func (r *Relationship) RelatedChain(table Name) ([]Name, error) {
	var chain []Name
	start := table

	for steps := 0; table != r.base; steps++ {
		if steps > len(r.edges) {
			return nil, errors.Wrapf(ErrCycleDetected, "walking from %s", start)
		}

		e, ok := r.edges[table]
		if !ok {
			return nil, errors.Wrapf(ErrTableNotRecognized, "table %s", table)
		}

		chain = append(chain, e.ForeignTable)
		table = e.ForeignTable
	}

	return chain, nil
}

// JoinPath returns the joins that bring table into a query on the base table,
// starting at the base. The base table needs none.
func (r *Relationship) JoinPath(table Name) ([]Join, error) {
	chain, err := r.RelatedChain(table)
	if err != nil {
		return nil, err
	}

	if len(chain) == 0 {
		return nil, nil
	}

	// chain ends with the base and has no edge for it.
	tables := append([]Name{table}, chain[:len(chain)-1]...)
	joins := make([]Join, 0, len(tables))
	for i := len(tables) - 1; i >= 0; i-- {
		joins = append(joins, JoinFromEdge(r.edges[tables[i]]))
	}
	return joins, nil
}

// Clone returns an independent copy of the relationship.
func (r *Relationship) Clone() *Relationship {
	c := &Relationship{
		base:  r.base,
		edges: make(map[Name]Edge, len(r.edges)),
	}
	for k, v := range r.edges {
		c.edges[k] = v
	}
	return c
}
