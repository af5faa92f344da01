// Package sqlquery pages plain database/sql queries.
//
// A Query names the base table and optional select list and filter; the
// joins, order and page come from the planner:
//
//	fetcher := sqlquery.NewFetcher(db, dialect.Postgres{},
//	    sqlquery.Query{From: "component", Where: `"component"."retired" = $1`, Args: []any{false}},
//	    func(row sqlquery.Scanner) (Component, error) {
//	        var c Component
//	        err := row.Scan(&c.ID, &c.Name)
//	        return c, err
//	    },
//	)
//	page, err := paging.Paginate(ctx, fetcher, opts, plan)
package sqlquery

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/friendsofgo/errors"

	paging "github.com/nrfta/rdb-paging-go"
	"github.com/nrfta/rdb-paging-go/dialect"
)

// Queryer is the subset of *sql.DB, *sql.Conn and *sql.Tx used by Fetcher.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Scanner reads the current row.
type Scanner interface {
	Scan(dest ...any) error
}

// RowScanner converts one row into an item.
type RowScanner[T any] func(row Scanner) (T, error)

// Query is the fixed part of a paged query.
type Query struct {
	// Select is the select list. Empty selects every column of From.
	Select string

	// From is the base table.
	From paging.Name

	// Where is an optional filter, without the WHERE keyword. It may use
	// placeholders bound to Args.
	Where string

	// Args are bound to the placeholders of Where.
	Args []any
}

// Option configures a Fetcher.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	slowThreshold time.Duration
}

// WithLogger logs every statement at debug level, and statements slower than
// the slow threshold at warn level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSlowThreshold sets the duration above which a statement is logged as slow.
func WithSlowThreshold(d time.Duration) Option {
	return func(o *options) {
		o.slowThreshold = d
	}
}

// Fetcher implements paging.Fetcher[T] over database/sql.
type Fetcher[T any] struct {
	db      Queryer
	dialect dialect.Dialect
	query   Query
	scan    RowScanner[T]
	opts    options
}

var _ paging.Fetcher[struct{}] = (*Fetcher[struct{}])(nil)

// NewFetcher returns a fetcher running q against db, rendered for d.
func NewFetcher[T any](db Queryer, d dialect.Dialect, q Query, scan RowScanner[T], opts ...Option) *Fetcher[T] {
	o := options{
		logger:        slog.New(slog.DiscardHandler),
		slowThreshold: time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Fetcher[T]{
		db:      db,
		dialect: d,
		query:   q,
		scan:    scan,
		opts:    o,
	}
}

// Fetch runs the page query and scans every row.
func (f *Fetcher[T]) Fetch(ctx context.Context, params paging.FetchParams) ([]T, error) {
	query := f.FetchSQL(params)

	start := time.Now()
	rows, err := f.db.QueryContext(ctx, query, f.query.Args...)
	f.log(ctx, query, start, err)
	if err != nil {
		return nil, errors.Wrap(err, "querying page")
	}
	defer rows.Close()

	var row Scanner = rows
	if _, ok := f.dialect.(dialect.RowNumbered); ok {
		row = skipLast{rows}
	}

	items := make([]T, 0, params.Limit)
	for rows.Next() {
		item, err := f.scan(row)
		if err != nil {
			return nil, errors.Wrap(err, "scanning row")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "reading rows")
	}

	return items, nil
}

// Count runs the count query. Joins are left out: every planned join reaches a
// single parent row, so it cannot change the count.
func (f *Fetcher[T]) Count(ctx context.Context, _ paging.FetchParams) (int64, error) {
	query := f.CountSQL()

	var total int64
	start := time.Now()
	err := f.db.QueryRowContext(ctx, query, f.query.Args...).Scan(&total)
	f.log(ctx, query, start, err)
	if err != nil {
		return 0, errors.Wrap(err, "counting rows")
	}

	return total, nil
}

// CountSQL renders the count statement.
func (f *Fetcher[T]) CountSQL() string {
	lines := []string{"SELECT COUNT(*) FROM " + f.dialect.QuoteIdent(f.query.From)}
	if f.query.Where != "" {
		lines = append(lines, "WHERE "+f.query.Where)
	}
	return strings.Join(lines, "\n")
}

// FetchSQL renders the page statement for params.
func (f *Fetcher[T]) FetchSQL(params paging.FetchParams) string {
	if rn, ok := f.dialect.(dialect.RowNumbered); ok {
		return f.rowNumberSQL(rn, params)
	}

	orderBy := dialect.OrderByClause(f.dialect, params.OrderBy)
	limit := f.dialect.LimitOffsetRows(params.Limit, params.Offset)
	if orderBy == "" && limit != "" && needsOrderForOffset(f.dialect) {
		orderBy = "ORDER BY (SELECT NULL)"
	}

	return joinLines(
		"SELECT "+f.selectList()+" FROM "+f.dialect.QuoteIdent(f.query.From),
		dialect.JoinClauses(f.dialect, params.Joins),
		f.whereClause(),
		orderBy,
		limit,
	)
}

func (f *Fetcher[T]) rowNumberSQL(d dialect.RowNumbered, params paging.FetchParams) string {
	over := dialect.OrderByClause(d, params.OrderBy)
	if over == "" {
		over = "ORDER BY (SELECT NULL)"
	}
	rn := d.QuoteIdent(d.RowNumberColumn())

	inner := joinLines(
		"SELECT "+f.selectList()+", ROW_NUMBER() OVER ("+over+") AS "+rn+" FROM "+d.QuoteIdent(f.query.From),
		dialect.JoinClauses(d, params.Joins),
		f.whereClause(),
	)

	return joinLines(
		"SELECT * FROM (",
		inner,
		") AS "+d.QuoteIdent("paged"),
		d.LimitOffsetRows(params.Limit, params.Offset),
		"ORDER BY "+rn,
	)
}

func (f *Fetcher[T]) selectList() string {
	if f.query.Select != "" {
		return f.query.Select
	}
	return f.dialect.QuoteIdent(f.query.From) + ".*"
}

func (f *Fetcher[T]) whereClause() string {
	if f.query.Where == "" {
		return ""
	}
	return "WHERE " + f.query.Where
}

func (f *Fetcher[T]) log(ctx context.Context, query string, start time.Time, err error) {
	duration := time.Since(start)
	switch {
	case err != nil:
		f.opts.logger.ErrorContext(ctx, "query failed", "duration", duration, "query", query, "error", err)
	case duration >= f.opts.slowThreshold:
		f.opts.logger.WarnContext(ctx, "slow query detected", "duration", duration, "query", query)
	default:
		f.opts.logger.DebugContext(ctx, "query", "duration", duration, "query", query)
	}
}

func needsOrderForOffset(d dialect.Dialect) bool {
	_, ok := d.(dialect.MSSQL)
	return ok
}

func joinLines(parts ...string) string {
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			lines = append(lines, p)
		}
	}
	return strings.Join(lines, "\n")
}

// skipLast drops the trailing row-number column of row-numbered queries.
type skipLast struct {
	rows *sql.Rows
}

func (s skipLast) Scan(dest ...any) error {
	var rn any
	return s.rows.Scan(append(dest, &rn)...)
}
