package dialect

import (
	"strconv"

	paging "github.com/nrfta/rdb-paging-go"
)

var _ Dialect = MySQL{}

// MySQL is the MySQL and MariaDB dialect.
type MySQL struct{}

// Name returns "mysql".
func (MySQL) Name() string {
	return "mysql"
}

// QuoteIdent quotes name with backticks.
func (MySQL) QuoteIdent(name paging.Name) string {
	return quote(name, "`", "`")
}

// OrderByComponent renders "`t`.`c` ASC", preceded by an IS [NOT] NULL term
// when the null placement is explicit.
func (d MySQL) OrderByComponent(t paging.OrderTerm) string {
	return nullsByPredicate(d, t)
}

// LimitOffset renders "LIMIT n" or "LIMIT n OFFSET m".
func (d MySQL) LimitOffset(opts paging.PaginationOptions) string {
	return pageRows(d, opts)
}

// LimitOffsetRows renders "LIMIT n OFFSET m". MySQL has no OFFSET without
// LIMIT, so an unlimited offset uses the largest row count.
func (MySQL) LimitOffsetRows(limit int, offset int64) string {
	return limitOffset(limit, offset, "18446744073709551615")
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
