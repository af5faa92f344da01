package paging

import (
	"strings"

	"github.com/friendsofgo/errors"
)

// Name is the name of a table or a column.
//
// Names compare, order and hash by their text, so a name built at runtime
// is interchangeable with one declared as a constant.
type Name string

// String returns the name text.
func (n Name) String() string {
	return string(n)
}

// Compare returns -1, 0 or +1 depending on the lexicographic order of n and other.
func (n Name) Compare(other Name) int {
	return strings.Compare(string(n), string(other))
}

// TableColumn is the name of a table and the name of a column inside that table.
// It is comparable and is used as a deduplication key by the planner.
type TableColumn struct {
	Table  Name
	Column Name
}

// TC is shorthand for TableColumn{Table: table, Column: column}.
//
// Example:
//
//	paging.TC("component_type", "order")
func TC(table, column string) TableColumn {
	return TableColumn{Table: Name(table), Column: Name(column)}
}

// String returns the reference as "table.column".
func (tc TableColumn) String() string {
	return string(tc.Table) + "." + string(tc.Column)
}

// ParseTableColumn parses a "table.column" reference. Only the first dot separates
// the table from the column; both parts must be non-empty.
func ParseTableColumn(s string) (TableColumn, error) {
	table, column, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok || table == "" || column == "" {
		return TableColumn{}, errors.Wrapf(ErrInvalidColumn, "%q is not of the form table.column", s)
	}

	return TC(table, column), nil
}
