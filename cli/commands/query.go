package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/aisola/levyt"
	"github.com/aisola/levyt/cli/internal/config"
	"github.com/aisola/levyt/cli/internal/ui"
	"github.com/aisola/levyt/cli/internal/watch"
	"github.com/aisola/levyt/dataset"
)

var (
	queryFormat string
	queryOutput string
	queryFile   string
	queryWatch  bool
	queryParams []string
)

var queryCmd = &cobra.Command{
	Use:   "query [sql]",
	Short: "Run a query and print or export the result",
	Long: `Run a row-returning query. Without --format the result is printed
as a table; with --format it is encoded and written to stdout or to
--output. SQL comes from the argument or from a file via --file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if queryFormat != "" && !dataset.Supported(queryFormat) {
			return fmt.Errorf("unsupported format %q, supported: %s",
				queryFormat, strings.Join(dataset.Formats(), ", "))
		}
		params, err := parseParams(queryParams)
		if err != nil {
			return err
		}

		readSQL := func() (string, error) {
			if len(args) == 1 {
				return args[0], nil
			}
			if queryFile == "" {
				return "", errors.New("pass a SQL argument or --file")
			}
			data, err := afero.ReadFile(config.AppFs, queryFile)
			if err != nil {
				return "", err
			}
			return string(data), nil
		}

		run := func() error {
			sqlText, err := readSQL()
			if err != nil {
				return err
			}
			return runQuery(cmd.Context(), sqlText, params)
		}

		if queryWatch {
			if queryFile == "" {
				return errors.New("--watch requires --file")
			}
			if err := run(); err != nil {
				ui.PrintError("%v", err)
			}
			w, err := watch.New(queryFile, run)
			if err != nil {
				return err
			}
			ui.PrintInfo("watching %s, press ctrl-c to stop", queryFile)
			return w.Run(cmd.Context(), func(err error) {
				ui.PrintError("%v", err)
			})
		}
		return run()
	},
}

func init() {
	queryCmd.Flags().StringVarP(&queryFormat, "format", "f", "", "export format: "+strings.Join(dataset.Formats(), ", "))
	queryCmd.Flags().StringVarP(&queryOutput, "output", "o", "", "write exported data to a file instead of stdout")
	queryCmd.Flags().StringVar(&queryFile, "file", "", "read SQL from a file")
	queryCmd.Flags().BoolVar(&queryWatch, "watch", false, "re-run when the SQL file changes (requires --file)")
	queryCmd.Flags().StringArrayVarP(&queryParams, "param", "p", nil, "named query parameter as key=value (repeatable)")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(ctx context.Context, sqlText string, params levyt.Params) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	collection, err := db.Query(ctx, sqlText, params)
	if err != nil {
		return err
	}

	format := queryFormat
	if format == "" {
		if cfg, err := config.Load(); err == nil && cfg.Format != "" && dataset.Supported(cfg.Format) {
			format = cfg.Format
		}
	}

	if format == "" {
		return printCollection(collection)
	}

	data, err := collection.Export(format)
	if err != nil {
		return err
	}
	if queryOutput == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := afero.WriteFile(config.AppFs, queryOutput, data, 0o644); err != nil {
		return err
	}
	ui.PrintSuccess("wrote %d rows to %s", collection.Len(), queryOutput)
	return nil
}

func printCollection(collection *levyt.Collection) error {
	ds, err := collection.Dataset()
	if err != nil {
		return err
	}
	rows := make([][]string, ds.Len())
	for i, row := range ds.Rows() {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}
		rows[i] = cells
	}
	ui.PrintTable(ds.Headers(), rows)
	return nil
}
