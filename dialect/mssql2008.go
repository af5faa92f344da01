package dialect

import (
	paging "github.com/nrfta/rdb-paging-go"
)

var _ Dialect = MSSQL2008{}

// DefaultRowNumberColumn is the ROW_NUMBER() alias used by MSSQL2008 when none is set.
const DefaultRowNumberColumn paging.Name = "rn"

// MSSQL2008 is the SQL Server 2008 dialect. It has no OFFSET clause, so pages
// are selected with a predicate on a ROW_NUMBER() column computed by a subquery:
//
//	SELECT * FROM (
//	    SELECT ..., ROW_NUMBER() OVER (ORDER BY ...) AS [rn] FROM ...
//	) AS [paged]
//	WHERE [rn] BETWEEN 41 AND 60
type MSSQL2008 struct {
	// RowNumber is the alias of the ROW_NUMBER() column. Empty means DefaultRowNumberColumn.
	RowNumber paging.Name
}

// Name returns "mssql2008".
func (MSSQL2008) Name() string {
	return "mssql2008"
}

func (MSSQL2008) QuoteIdent(name paging.Name) string {
	return quote(name, "[", "]")
}

func (d MSSQL2008) OrderByComponent(t paging.OrderTerm) string {
	return nullsByCase(d, t)
}

// RowNumberColumn returns the ROW_NUMBER() alias.
func (d MSSQL2008) RowNumberColumn() paging.Name {
	if d.RowNumber == "" {
		return DefaultRowNumberColumn
	}
	return d.RowNumber
}

// LimitOffset renders the WHERE clause on the row-number column.
func (d MSSQL2008) LimitOffset(opts paging.PaginationOptions) string {
	return pageRows(d, opts)
}

// LimitOffsetRows renders the WHERE clause on the row-number column that keeps
// rows offset+1 through offset+limit.
func (d MSSQL2008) LimitOffsetRows(limit int, offset int64) string {
	rn := d.QuoteIdent(d.RowNumberColumn())

	switch {
	case limit > 0 && offset > 0:
		return "WHERE " + rn + " BETWEEN " + itoa(offset+1) + " AND " + itoa(offset+int64(limit))
	case limit > 0:
		return "WHERE " + rn + " <= " + itoa(int64(limit))
	case offset > 0:
		return "WHERE " + rn + " > " + itoa(offset)
	}
	return ""
}

// RowNumbered is implemented by dialects that page through a ROW_NUMBER() column
// instead of a LIMIT clause.
type RowNumbered interface {
	Dialect
	RowNumberColumn() paging.Name
}

var _ RowNumbered = MSSQL2008{}
