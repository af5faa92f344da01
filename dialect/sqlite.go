package dialect

import (
	paging "github.com/nrfta/rdb-paging-go"
)

var _ Dialect = SQLite{}

// SQLite renders like MySQL.
type SQLite struct{}

func (SQLite) Name() string {
	return "sqlite"
}

func (SQLite) QuoteIdent(name paging.Name) string {
	return quote(name, "`", "`")
}

func (d SQLite) OrderByComponent(t paging.OrderTerm) string {
	return nullsByPredicate(d, t)
}

func (d SQLite) LimitOffset(opts paging.PaginationOptions) string {
	return pageRows(d, opts)
}

// LimitOffsetRows renders "LIMIT n OFFSET m", with LIMIT -1 for an unlimited
// offset.
func (SQLite) LimitOffsetRows(limit int, offset int64) string {
	return limitOffset(limit, offset, "-1")
}
