// Package dialect renders planner output as SQL fragments for a database.
//
// A Dialect only knows how to quote identifiers, how to write one order term
// and how to limit a result. The clause helpers in this package build the rest
// on top of those primitives:
//
//	joins, terms, err := planner.Build()
//	d := dialect.MySQL{}
//	sql := "SELECT * FROM `component`\n" +
//	    dialect.JoinClauses(d, joins) + "\n" +
//	    dialect.OrderByClause(d, terms) + " " +
//	    d.LimitOffset(opts)
package dialect

import (
	"sort"
	"strings"

	"github.com/friendsofgo/errors"

	paging "github.com/nrfta/rdb-paging-go"
)

// ErrUnknownDialect is returned by ByName for unregistered names.
var ErrUnknownDialect = errors.New("unknown dialect")

// Dialect is the SQL flavor of one database.
type Dialect interface {
	// Name returns the registry name of the dialect.
	Name() string

	// QuoteIdent quotes a table or column name.
	QuoteIdent(name paging.Name) string

	// OrderByComponent renders one order term, including any terms needed to
	// place NULL values.
	OrderByComponent(term paging.OrderTerm) string

	// LimitOffset renders the clause selecting one page, or "" when the whole
	// result is wanted. It is LimitOffsetRows for the page's limit and offset.
	LimitOffset(opts paging.PaginationOptions) string

	// LimitOffsetRows renders the clause that skips offset rows and returns at
	// most limit rows, or "" when neither applies. A limit of zero or less
	// means no limit.
	LimitOffsetRows(limit int, offset int64) string
}

var registry = map[string]func() Dialect{
	"mysql":      func() Dialect { return MySQL{} },
	"sqlite":     func() Dialect { return SQLite{} },
	"sqlite3":    func() Dialect { return SQLite{} },
	"mssql":      func() Dialect { return MSSQL{} },
	"sqlserver":  func() Dialect { return MSSQL{} },
	"mssql2008":  func() Dialect { return MSSQL2008{} },
	"postgres":   func() Dialect { return Postgres{} },
	"postgresql": func() Dialect { return Postgres{} },
}

// ByName returns the dialect registered under name (case-insensitive).
func ByName(name string) (Dialect, error) {
	newDialect, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDialect, "%q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return newDialect(), nil
}

// Names returns the registered dialect names in lexical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Column renders a qualified column reference.
func Column(d Dialect, table, column paging.Name) string {
	return d.QuoteIdent(table) + "." + d.QuoteIdent(column)
}

// QuoteRunes returns the characters d quotes identifiers with.
func QuoteRunes(d Dialect) (left, right rune) {
	q := []rune(d.QuoteIdent(""))
	return q[0], q[len(q)-1]
}

// JoinTarget renders a join without the JOIN keyword:
//
//	`component_type` ON `component_type`.`id` = `component`.`component_type_id`
//
// Aliased joins read "`real` AS `alias` ON ...".
func JoinTarget(d Dialect, j paging.Join) string {
	var b strings.Builder
	if j.RealTable != "" {
		b.WriteString(d.QuoteIdent(j.RealTable))
		b.WriteString(" AS ")
	}
	b.WriteString(d.QuoteIdent(j.OtherTable))
	b.WriteString(" ON ")
	b.WriteString(Column(d, j.OtherTable, j.OtherColumn))
	b.WriteString(" = ")
	b.WriteString(Column(d, j.UsingTable, j.UsingColumn))
	return b.String()
}

// JoinClause renders a single LEFT JOIN.
func JoinClause(d Dialect, j paging.Join) string {
	return "LEFT JOIN " + JoinTarget(d, j)
}

// JoinClauses renders the joins one per line.
func JoinClauses(d Dialect, joins []paging.Join) string {
	parts := make([]string, len(joins))
	for i, j := range joins {
		parts[i] = JoinClause(d, j)
	}
	return strings.Join(parts, "\n")
}

// OrderByComponents renders the terms comma separated, without the ORDER BY keyword.
func OrderByComponents(d Dialect, terms []paging.OrderTerm) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = d.OrderByComponent(t)
	}
	return strings.Join(parts, ", ")
}

// OrderByClause renders "ORDER BY ..." or "" when there are no terms.
func OrderByClause(d Dialect, terms []paging.OrderTerm) string {
	if len(terms) == 0 {
		return ""
	}
	return "ORDER BY " + OrderByComponents(d, terms)
}

// quote wraps name in left and right, doubling any right character inside it.
func quote(name paging.Name, left, right string) string {
	return left + strings.ReplaceAll(string(name), right, right+right) + right
}

// nullsByPredicate places NULL values with a leading "col IS [NOT] NULL" term,
// for databases that sort false before true and lack NULLS FIRST.
func nullsByPredicate(d Dialect, t paging.OrderTerm) string {
	col := Column(d, t.Table, t.Column)
	switch t.Nulls {
	case paging.NullsFirst:
		return col + " IS NOT NULL, " + col + " " + t.Direction.String()
	case paging.NullsLast:
		return col + " IS NULL, " + col + " " + t.Direction.String()
	default:
		return col + " " + t.Direction.String()
	}
}

func pageRows(d Dialect, opts paging.PaginationOptions) string {
	limit, _ := opts.Limit()
	return d.LimitOffsetRows(limit, opts.Offset())
}

// limitOffset renders "LIMIT n OFFSET m". An offset without a limit is written
// with the unlimited row count, or alone when unlimited is empty.
func limitOffset(limit int, offset int64, unlimited string) string {
	var parts []string
	switch {
	case limit > 0:
		parts = append(parts, "LIMIT "+itoa(int64(limit)))
	case offset > 0 && unlimited != "":
		parts = append(parts, "LIMIT "+unlimited)
	}
	if offset > 0 {
		parts = append(parts, "OFFSET "+itoa(offset))
	}
	return strings.Join(parts, " ")
}
