// Package commands implements the levyt CLI.
package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aisola/levyt"
	"github.com/aisola/levyt/cli/internal/config"
	"github.com/aisola/levyt/cli/internal/ui"
	"github.com/aisola/levyt/internal/debug"
)

var (
	flagURL   string
	flagDebug bool
)

var rootCmd = &cobra.Command{
	Use:     "levyt",
	Short:   "Run SQL against a database and export the results",
	Version: levyt.Version,
	Long: `levyt runs SQL against a database and exports the results to
common tabular formats (csv, tsv, json, yaml, html, xlsx).

The connection URL comes from --url, the DATABASE_URL environment
variable (including .env files), or a .levyt.yaml config file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagDebug {
			debug.Init(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "database connection URL (defaults to DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

// Execute is the main entry point for the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError("%v", err)
		return err
	}
	return nil
}

// openDatabase resolves the connection URL and opens the database.
func openDatabase() (*levyt.Database, error) {
	url := flagURL
	if url == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		url = cfg.DatabaseURL
	}
	if url == "" {
		return nil, errors.New("no database URL: pass --url or set DATABASE_URL")
	}
	return levyt.Open(url)
}

// parseParams turns repeated key=value flags into query parameters.
// Values are passed to the driver as text.
func parseParams(pairs []string) (levyt.Params, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(levyt.Params, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.New("parameters must be key=value, got " + pair)
		}
		params[key] = value
	}
	return params, nil
}
