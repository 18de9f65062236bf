package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective settings",
	Long: `Print the settings diredit runs with, after reading the settings file,
DIREDIT_* environment variables and flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		if jsonOutput {
			text, err := formatJSON(settings)
			if err != nil {
				return err
			}
			PrintInfo(text)
			return nil
		}

		PrintSection("Settings")
		PrintLabelValue("Settings file", paths.Config)
		PrintLabelValue("editor", settings.Editor)
		PrintLabelValue("use_workspace_edit", fmt.Sprint(settings.UseWorkspaceEdit))
		PrintLabelValue("alternate_confirmation", fmt.Sprint(settings.AlternateConfirmation))
		PrintLabelValue("nerd_font", fmt.Sprint(settings.NerdFont))
		PrintLabelValue("auto_open", fmt.Sprint(settings.AutoOpen))
		PrintLabelValue("disable_vim_keymaps", fmt.Sprint(settings.DisableVimKeymaps))
		PrintLabelValue("log_level", settings.LogLevel)
		if settings.LogFile != "" {
			PrintLabelValue("log_file", settings.LogFile)
		}
		return nil
	},
}
