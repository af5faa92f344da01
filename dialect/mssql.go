package dialect

import (
	paging "github.com/nrfta/rdb-paging-go"
)

var _ Dialect = MSSQL{}

// MSSQL is the SQL Server 2012+ dialect.
type MSSQL struct{}

// Name returns "mssql".
func (MSSQL) Name() string {
	return "mssql"
}

// QuoteIdent quotes name with square brackets.
func (MSSQL) QuoteIdent(name paging.Name) string {
	return quote(name, "[", "]")
}

// OrderByComponent renders "[t].[c] ASC". SQL Server sorts NULL first in
// ascending order, so explicit placement is done with a leading CASE term.
func (d MSSQL) OrderByComponent(t paging.OrderTerm) string {
	return nullsByCase(d, t)
}

// LimitOffset renders "OFFSET m ROWS FETCH NEXT n ROWS ONLY". The query must
// have an ORDER BY clause.
func (d MSSQL) LimitOffset(opts paging.PaginationOptions) string {
	return pageRows(d, opts)
}

// LimitOffsetRows renders "OFFSET m ROWS FETCH NEXT n ROWS ONLY", or
// "OFFSET m ROWS" without a limit.
func (MSSQL) LimitOffsetRows(limit int, offset int64) string {
	offset = max(offset, 0)
	if limit > 0 {
		return "OFFSET " + itoa(offset) + " ROWS FETCH NEXT " + itoa(int64(limit)) + " ROWS ONLY"
	}
	if offset > 0 {
		return "OFFSET " + itoa(offset) + " ROWS"
	}
	return ""
}

func nullsByCase(d Dialect, t paging.OrderTerm) string {
	col := Column(d, t.Table, t.Column)
	switch t.Nulls {
	case paging.NullsFirst:
		return "CASE WHEN " + col + " IS NULL THEN 0 ELSE 1 END, " + col + " " + t.Direction.String()
	case paging.NullsLast:
		return "CASE WHEN " + col + " IS NULL THEN 1 ELSE 0 END, " + col + " " + t.Direction.String()
	default:
		return col + " " + t.Direction.String()
	}
}
