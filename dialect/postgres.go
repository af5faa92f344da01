package dialect

import (
	paging "github.com/nrfta/rdb-paging-go"
)

var _ Dialect = Postgres{}

// Postgres is the PostgreSQL dialect.
type Postgres struct{}

// Name returns "postgres".
func (Postgres) Name() string {
	return "postgres"
}

// QuoteIdent quotes name with double quotes.
func (Postgres) QuoteIdent(name paging.Name) string {
	return quote(name, `"`, `"`)
}

// OrderByComponent renders `"t"."c" ASC` with a native NULLS FIRST or NULLS LAST.
func (d Postgres) OrderByComponent(t paging.OrderTerm) string {
	s := Column(d, t.Table, t.Column) + " " + t.Direction.String()
	switch t.Nulls {
	case paging.NullsFirst:
		s += " NULLS FIRST"
	case paging.NullsLast:
		s += " NULLS LAST"
	}
	return s
}

// LimitOffset renders "LIMIT n" or "LIMIT n OFFSET m".
func (d Postgres) LimitOffset(opts paging.PaginationOptions) string {
	return pageRows(d, opts)
}

// LimitOffsetRows renders "LIMIT n OFFSET m", leaving out either part that
// does not apply.
func (Postgres) LimitOffsetRows(limit int, offset int64) string {
	return limitOffset(limit, offset, "")
}
