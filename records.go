package paging

import (
	"github.com/friendsofgo/errors"
)

// Join is a single LEFT JOIN produced by the planner.
//
// It renders as:
//
//	LEFT JOIN RealTable AS OtherTable ON OtherTable.OtherColumn = UsingTable.UsingColumn
//
// RealTable is empty when OtherTable is not an alias.
type Join struct {
	OtherTable  Name
	OtherColumn Name
	RealTable   Name
	UsingTable  Name
	UsingColumn Name
}

// JoinFromEdge returns the join that brings e.Table into the query.
func JoinFromEdge(e Edge) Join {
	return Join{
		OtherTable:  e.Table,
		OtherColumn: e.Column,
		RealTable:   e.RealTable,
		UsingTable:  e.ForeignTable,
		UsingColumn: e.ForeignColumn,
	}
}

// Target returns the table that is actually read, which is RealTable for an
// aliased join and OtherTable otherwise.
func (j Join) Target() Name {
	if j.RealTable != "" {
		return j.RealTable
	}
	return j.OtherTable
}

// OrderTerm is one component of an ORDER BY clause.
type OrderTerm struct {
	Table     Name
	Column    Name
	Direction Direction
	Nulls     NullStrategy
}

// TableColumn returns the column the term sorts on.
func (t OrderTerm) TableColumn() TableColumn {
	return TableColumn{Table: t.Table, Column: t.Column}
}

// Joins is an ordered list of joins keyed by OtherTable.
type Joins []Join

// Add appends j unless a join for the same OtherTable is already present.
//
// It reports whether j was appended. An existing identical join is left in place
// and reported as false; an existing join for the same table with a different
// condition returns ErrOtherTableNameConflict.
func (js *Joins) Add(j Join) (bool, error) {
	for _, existing := range *js {
		if existing.OtherTable != j.OtherTable {
			continue
		}
		if existing != j {
			return false, errors.Wrapf(ErrOtherTableNameConflict, "table %s", j.OtherTable)
		}
		return false, nil
	}

	*js = append(*js, j)

	return true, nil
}

// Merge adds every join of other in order and stops at the first conflict.
func (js *Joins) Merge(other []Join) error {
	for _, j := range other {
		if _, err := js.Add(j); err != nil {
			return err
		}
	}
	return nil
}
