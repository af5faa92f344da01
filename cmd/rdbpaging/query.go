package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aarondl/strmangle"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	paging "github.com/nrfta/rdb-paging-go"
	"github.com/nrfta/rdb-paging-go/dialect"
	"github.com/nrfta/rdb-paging-go/internal/cli"
	"github.com/nrfta/rdb-paging-go/sqlquery"
)

var (
	queryDB      string
	querySchema  string
	queryDialect string
	queryColumns []string
	queryWhere   string
	queryPage    int
	queryPerPage int
	querySorts   []string
	queryTimeout time.Duration
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a paginated query",
	Long: `Run the page query for a request against the configured database and print
the rows as a table followed by the page position.

Columns without a table name belong to the base table. Columns of joined tables
bring their joins along whatever the sort.`,
	Example: `  # Second page of components on a local SQLite file
  rdbpaging query --dialect sqlite --db inventory.db --columns id,name --page 2

  # Joined columns, filtered
  rdbpaging query --columns id,name,component_vendor.name --where "component.retired = false" --sort vendor_name`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, spec, err := loadSchema(cfg.ResolvedSchema(querySchema))
		if err != nil {
			return err
		}

		dialectName := cfg.ResolvedDialect(queryDialect)
		d, err := dialect.ByName(dialectName)
		if err != nil {
			return cli.Exit(cli.ExitConfig, "resolving dialect", err)
		}

		db, err := openDB(dialectName, queryDB)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		ctx, cancel := context.WithTimeout(cmd.Context(), queryTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			return cli.Exit(cli.ExitDBConnect, "connecting to database", err)
		}

		selectList, columnJoins, err := columnList(d, spec.Relationship(), queryColumns)
		if err != nil {
			return cli.GeneralError("parsing columns", err)
		}

		opts := paging.PaginationOptions{
			Page:         queryPage,
			ItemsPerPage: queryPerPage,
			SortBy:       parseSorts(querySorts),
		}
		plan, err := spec.PlanOptions(opts, paging.WithLogger(newLogger()))
		if err != nil {
			return cli.GeneralError("planning order", err)
		}

		joins := paging.Joins(plan.Joins)
		if err := joins.Merge(columnJoins); err != nil {
			return cli.GeneralError("joining selected columns", err)
		}
		plan.Joins = joins

		fetcher := sqlquery.NewFetcher(db, d, sqlquery.Query{
			Select: selectList,
			From:   spec.Base(),
			Where:  queryWhere,
		}, stringRow(len(queryColumns)), sqlquery.WithLogger(newLogger()))

		page, err := paging.Paginate(ctx, fetcher, opts, plan, cfg.Paging.PaginateOptions()...)
		if err != nil {
			return cli.GeneralError("running query", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, strings.Join(queryColumns, "\t"))
		for _, row := range page.Nodes {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if !quiet {
			p := page.Pagination
			fmt.Fprintf(cmd.OutOrStdout(), "\npage %d of %d, %d items (%d ms)\n",
				p.Page(), p.TotalPages(), p.TotalItems(), page.Metadata.QueryTimeMs)
		}
		return nil
	},
}

func init() {
	f := queryCmd.Flags()
	f.StringVar(&queryDB, "db", "", "database URL or SQLite path (default from config)")
	f.StringVar(&querySchema, "schema", "", "path to the order by schema file")
	f.StringVar(&queryDialect, "dialect", "", "SQL dialect (mysql, sqlite, postgres)")
	f.StringSliceVar(&queryColumns, "columns", []string{"id"}, "columns to print, table.column or a base table column")
	f.StringVar(&queryWhere, "where", "", "SQL filter without the WHERE keyword")
	f.IntVar(&queryPage, "page", 1, "1-based page number")
	f.IntVar(&queryPerPage, "per-page", 0, "items per page (default from config)")
	f.StringSliceVar(&querySorts, "sort", nil, "schema field to sort by, -field for descending (repeatable)")
	f.DurationVar(&queryTimeout, "timeout", 30*time.Second, "query timeout")
}

func openDB(dialectName, dsnFlag string) (*sql.DB, error) {
	driver, err := cfg.DriverName(dialectName)
	if err != nil {
		return nil, cli.Exit(cli.ExitConfig, "resolving driver", err)
	}

	dsn := dsnFlag
	if dsn == "" {
		dsn, err = cfg.DSN(dialectName)
		if err != nil {
			return nil, cli.Exit(cli.ExitConfig, "resolving database", err)
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, cli.Exit(cli.ExitDBConnect, "opening database", err)
	}
	return db, nil
}

// columnList quotes columns for the select list and returns the joins that
// reach the tables of joined columns, starting at the base table.
func columnList(d dialect.Dialect, rel *paging.Relationship, columns []string) (string, paging.Joins, error) {
	left, right := dialect.QuoteRunes(d)

	var joins paging.Joins
	parts := make([]string, len(columns))
	for i, c := range columns {
		c = strings.TrimSpace(c)
		if !strings.Contains(c, ".") {
			c = string(rel.Base()) + "." + c
		}

		tc, err := paging.ParseTableColumn(c)
		if err != nil {
			return "", nil, err
		}
		path, err := rel.JoinPath(tc.Table)
		if err != nil {
			return "", nil, err
		}
		if err := joins.Merge(path); err != nil {
			return "", nil, err
		}

		parts[i] = strmangle.IdentQuote(left, right, c)
	}
	return strings.Join(parts, ", "), joins, nil
}

// stringRow scans n columns as text, printing NULL for null values.
func stringRow(n int) sqlquery.RowScanner[[]string] {
	return func(row sqlquery.Scanner) ([]string, error) {
		values := make([]sql.NullString, n)
		dest := make([]any, n)
		for i := range values {
			dest[i] = &values[i]
		}
		if err := row.Scan(dest...); err != nil {
			return nil, err
		}

		out := make([]string, n)
		for i, v := range values {
			if v.Valid {
				out[i] = v.String
			} else {
				out[i] = "NULL"
			}
		}
		return out, nil
	}
}
