package main

import (
	"fmt"

	"github.com/spf13/cobra"

	paging "github.com/nrfta/rdb-paging-go"
	"github.com/nrfta/rdb-paging-go/dialect"
	"github.com/nrfta/rdb-paging-go/internal/cli"
)

var validateSchema string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an order by schema",
	Long:  `Compile an order by schema, checking every join and field against the declared tables.`,
	Example: `  # Validate a specific schema file
  rdbpaging validate --schema schemas/component.yaml

  # Validate using config file settings
  rdbpaging validate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaPath := cfg.ResolvedSchema(validateSchema)

		schemaCfg, spec, err := loadSchema(schemaPath)
		if err != nil {
			return err
		}

		if quiet {
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Schema %s is valid. Base table %s, %d joins, %d fields:\n",
			schemaCfg.Name, spec.Base(), len(schemaCfg.Joins), len(spec.Fields()))

		for _, j := range schemaCfg.Joins {
			if j.RealTable != "" {
				fmt.Fprintf(out, "  join %s = %s (table %s)\n", j.Foreign, j.Primary, j.RealTable)
			} else {
				fmt.Fprintf(out, "  join %s = %s\n", j.Foreign, j.Primary)
			}
		}

		for _, f := range spec.Fields() {
			fmt.Fprintf(out, "  - %s: %s", f.Key, f.Column)
			if f.Unique {
				fmt.Fprint(out, " unique")
			}
			if f.Nulls != paging.NullsDefault {
				fmt.Fprintf(out, " %s", f.Nulls)
			}
			if f.Default.Enabled() {
				fmt.Fprintf(out, " default=%d", f.Default)
			}
			fmt.Fprintln(out)
		}

		d, err := dialect.ByName(cfg.Dialect)
		if err != nil {
			return cli.Exit(cli.ExitConfig, "resolving dialect", err)
		}

		plan, err := spec.Plan(spec.Defaults(), paging.WithLogger(newLogger()))
		if err != nil {
			return cli.Exit(cli.ExitSchemaParse, "planning default order", err)
		}
		if clause := dialect.OrderByClause(d, plan.OrderBy); clause != "" {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Default order:")
			fmt.Fprintf(out, "  %s\n", clause)
		}

		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "path to the order by schema file")
}
