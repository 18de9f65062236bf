package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/diredit/internal/engine"
	"github.com/danieljhkim/diredit/internal/entry"
	"github.com/danieljhkim/diredit/internal/pathkey"
)

var previewCmd = &cobra.Command{
	Use:   "preview <path>",
	Short: "Show a directory listing or the head of a file, read-only",
	Long: `Show a read-only preview of a path.

Directories are listed with the "/000" identifier on every new entry, so a
preview never uses up identifiers. Files show their first lines.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, settings, err := newEngine(cmd, nil)
		if err != nil {
			return err
		}

		p, err := eng.Preview(args[0])
		if err != nil {
			return err
		}
		defer eng.ClosePreview()

		if jsonOutput {
			return outputJSON(p)
		}
		printPreview(p, settings.NerdFont)
		return nil
	},
}

func printPreview(p *engine.Preview, icons bool) {
	if p == nil {
		PrintEmptyState("Preview is disabled.")
		return
	}
	if p.IsDir {
		key := pathkey.Trim(p.Path)
		printListing(entry.SplitLines(p.Text), key, icons)
		return
	}
	PrintInfo(p.Text)
	if p.Truncated {
		PrintEmptyState("(truncated)")
	}
}
