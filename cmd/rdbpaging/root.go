package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	paging "github.com/nrfta/rdb-paging-go"
	"github.com/nrfta/rdb-paging-go/internal/cli"
	"github.com/nrfta/rdb-paging-go/orderby"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *cli.Config
	configPath string

	// Persistent flags
	cfgFile string
	verbose int
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "rdbpaging",
	Short: "Multi-table ORDER BY planning and page-number pagination",
	Long: `rdbpaging - Multi-table ORDER BY planning and page-number pagination

rdbpaging reads an order by schema describing a base table, the tables joined
to it and the columns a listing can be sorted on. It prints the minimal LEFT
JOINs and ORDER BY terms for a request and can run the paged query.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, configPath, err = cli.LoadConfig(cfgFile)
		if err != nil {
			return cli.Exit(cli.ExitConfig, "loading configuration", err)
		}

		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Command group IDs
const (
	groupSchema  = "schema"
	groupUtility = "utility"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover rdbpaging.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupSchema, Title: "Schema:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	validateCmd.GroupID = groupSchema
	planCmd.GroupID = groupSchema
	queryCmd.GroupID = groupSchema
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(queryCmd)

	configCmd.GroupID = groupUtility
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

// newLogger logs to stderr at warn level, lowered by each -v.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose == 1:
		level = slog.LevelInfo
	case verbose > 1:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadSchema reads and compiles the order by schema at path.
func loadSchema(path string) (*orderby.Config, *orderby.Spec, error) {
	schemaCfg, err := orderby.LoadConfigFile(path)
	if err != nil {
		return nil, nil, cli.Exit(cli.ExitSchemaParse, "reading schema", err)
	}

	spec, err := schemaCfg.Compile()
	if err != nil {
		return nil, nil, cli.Exit(cli.ExitSchemaParse, "compiling schema "+path, err)
	}

	return schemaCfg, spec, nil
}

// parseSorts reads "key" as ascending and "-key" as descending.
func parseSorts(values []string) []paging.Sort {
	sorts := make([]paging.Sort, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		switch {
		case v == "":
			continue
		case strings.HasPrefix(v, "-"):
			sorts = append(sorts, paging.Sort{Field: v[1:], Desc: true})
		default:
			sorts = append(sorts, paging.Sort{Field: strings.TrimPrefix(v, "+")})
		}
	}
	return sorts
}
