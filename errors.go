package paging

import (
	"fmt"

	"github.com/friendsofgo/errors"
)

var (
	// ErrTableNotRecognized is returned when an order key references a table that is
	// neither the base table nor joined.
	ErrTableNotRecognized = errors.New("table has not been set, perhaps you want to join it")

	// ErrTableColumnDuplicate is returned when the same resolved table and column is
	// requested twice.
	ErrTableColumnDuplicate = errors.New("the table and the column have been added before")

	// ErrPrimaryDuplicate is returned when a second edge is registered for the same
	// primary table.
	ErrPrimaryDuplicate = errors.New("primary has been set, perhaps you want to use an alias table name instead")

	// ErrForeignNotFound is returned when an edge points at a table that is not yet
	// reachable from the base table.
	ErrForeignNotFound = errors.New("foreign has not been set, you need to join it first")

	// ErrOtherTableNameConflict is returned by Joins.Add when the same table is already
	// joined with a different condition.
	ErrOtherTableNameConflict = errors.New("other table exists but the join clauses are not exactly the same")

	// ErrCycleDetected is returned when walking a relationship chain never reaches
	// the base table.
	ErrCycleDetected = errors.New("relationship chain does not reach the base table")

	// ErrInvalidColumn is returned when a "table.column" reference cannot be parsed.
	ErrInvalidColumn = errors.New("invalid table column reference")

	// ErrInvalidNullStrategy is returned by ParseNullStrategy for unknown values.
	ErrInvalidNullStrategy = errors.New("invalid null strategy")
)

// PageSizeError is returned when the requested items per page exceeds the maximum allowed.
type PageSizeError struct {
	Requested int
	Maximum   int
}

func (e *PageSizeError) Error() string {
	return fmt.Sprintf("requested %d items per page exceeds maximum allowed of %d",
		e.Requested, e.Maximum)
}
