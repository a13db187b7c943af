package commands

import (
	"github.com/spf13/cobra"

	"github.com/aisola/levyt/cli/internal/ui"
)

const formatsDoc = `# Export formats

| Format | Description                              |
|--------|------------------------------------------|
| csv    | Comma-separated values with a header row |
| tsv    | Tab-separated values with a header row   |
| json   | Array of objects, one per row            |
| yaml   | Sequence of mappings, one per row        |
| html   | An escaped HTML table                    |
| xlsx   | An Excel workbook with a single sheet    |

Timestamps are rendered as RFC 3339 text. Pick a format with
` + "`levyt query --format <name>`" + ` and set a default with the
` + "`format`" + ` key in .levyt.yaml.
`

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "Describe the supported export formats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return ui.PrintMarkdown(formatsDoc)
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
