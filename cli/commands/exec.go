package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

var execYes bool

var execCmd = &cobra.Command{
	Use:   "exec <sql>",
	Short: "Run a statement that returns no rows",
	Long: `Run DDL or DML that returns no rows, such as CREATE TABLE, INSERT
or UPDATE. Asks for confirmation unless --yes is passed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sqlText := args[0]
		params, err := parseParams(queryParams)
		if err != nil {
			return err
		}

		if !execYes {
			confirmed := false
			prompt := &survey.Confirm{
				Message: fmt.Sprintf("Run %q?", sqlText),
			}
			if err := survey.AskOne(prompt, &confirmed); err != nil {
				return err
			}
			if !confirmed {
				return nil
			}
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		return db.Execute(cmd.Context(), sqlText, params)
	},
}

func init() {
	execCmd.Flags().BoolVarP(&execYes, "yes", "y", false, "run without confirmation")
	execCmd.Flags().StringArrayVarP(&queryParams, "param", "p", nil, "named query parameter as key=value (repeatable)")
	rootCmd.AddCommand(execCmd)
}
