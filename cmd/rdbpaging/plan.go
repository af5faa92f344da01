package main

import (
	"fmt"

	"github.com/spf13/cobra"

	paging "github.com/nrfta/rdb-paging-go"
	"github.com/nrfta/rdb-paging-go/dialect"
	"github.com/nrfta/rdb-paging-go/internal/cli"
	"github.com/nrfta/rdb-paging-go/sqlquery"
)

var (
	planSchema  string
	planDialect string
	planPage    int
	planPerPage int
	planSorts   []string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the SQL for a page",
	Long: `Print the statement selecting one page of the base table: the LEFT JOINs
the order needs, the ORDER BY clause and the page clause of the dialect.

Sorts name schema fields; a leading "-" sorts descending. Fields with a default
priority follow the requested sorts.`,
	Example: `  # Default order, first page
  rdbpaging plan --schema schemas/component.yaml

  # Page 3 of 20, by vendor name then newest first
  rdbpaging plan --dialect mysql --page 3 --per-page 20 --sort vendor_name --sort -id`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, spec, err := loadSchema(cfg.ResolvedSchema(planSchema))
		if err != nil {
			return err
		}

		d, err := dialect.ByName(cfg.ResolvedDialect(planDialect))
		if err != nil {
			return cli.Exit(cli.ExitConfig, "resolving dialect", err)
		}

		opts := paging.PaginationOptions{
			Page:         planPage,
			ItemsPerPage: planPerPage,
			SortBy:       parseSorts(planSorts),
		}

		params, err := pageParams(spec.PlanOptions, opts)
		if err != nil {
			return err
		}

		fetcher := sqlquery.NewFetcher[struct{}](nil, d, sqlquery.Query{From: spec.Base()}, nil)
		fmt.Fprintln(cmd.OutOrStdout(), fetcher.FetchSQL(params))
		return nil
	},
}

func init() {
	f := planCmd.Flags()
	f.StringVar(&planSchema, "schema", "", "path to the order by schema file")
	f.StringVar(&planDialect, "dialect", "", "SQL dialect (mysql, sqlite, mssql, mssql2008, postgres)")
	f.IntVar(&planPage, "page", 1, "1-based page number")
	f.IntVar(&planPerPage, "per-page", 0, "items per page (default from config)")
	f.StringSliceVar(&planSorts, "sort", nil, "schema field to sort by, -field for descending (repeatable)")
}

type planFunc func(paging.PaginationOptions, ...paging.PlannerOption) (paging.Plan, error)

// pageParams plans opts and applies the configured page size limits. The total
// is not known here, so the page is not clamped.
func pageParams(plan planFunc, opts paging.PaginationOptions) (paging.FetchParams, error) {
	pageCfg := paging.ApplyPaginateOptions(cfg.Paging.PaginateOptions()...)
	if err := pageCfg.Validate(opts); err != nil {
		return paging.FetchParams{}, cli.GeneralError("checking page size", err)
	}

	planned, err := plan(opts, paging.WithLogger(newLogger()))
	if err != nil {
		return paging.FetchParams{}, cli.GeneralError("planning order", err)
	}

	opts = opts.WithItemsPerPage(pageCfg.EffectiveItemsPerPage(opts))
	return paging.FetchParams{
		Limit:   opts.ItemsPerPage,
		Offset:  opts.Offset(),
		Joins:   planned.Joins,
		OrderBy: planned.OrderBy,
	}, nil
}
