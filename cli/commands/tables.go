package commands

import (
	"github.com/spf13/cobra"

	"github.com/aisola/levyt/cli/internal/ui"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables of the connected database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		tables, err := db.Tables(cmd.Context())
		if err != nil {
			return err
		}
		ui.PrintList(tables)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
