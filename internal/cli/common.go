package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danieljhkim/diredit/internal/config"
	"github.com/danieljhkim/diredit/internal/engine"
	"github.com/danieljhkim/diredit/internal/fsops"
	"github.com/danieljhkim/diredit/internal/logging"
	"github.com/danieljhkim/diredit/internal/pathkey"
)

// loadSettings reads the settings file and environment, with the global
// flags taking precedence.
func loadSettings(cmd *cobra.Command) (*config.Paths, *config.Settings, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	v := config.NewViper(paths)
	if f := cmd.Flags().Lookup("editor"); f != nil {
		if err := v.BindPFlag("editor", f); err != nil {
			return nil, nil, fmt.Errorf("failed to bind editor flag: %w", err)
		}
	}
	settings, err := config.LoadSettings(v)
	if err != nil {
		return nil, nil, err
	}
	return paths, settings, nil
}

// newLogger builds the logger for settings. --verbose switches to debug
// console output.
func newLogger(settings *config.Settings) (*zap.Logger, error) {
	cfg := logging.DefaultConfig()
	if settings.LogLevel != "" {
		cfg.Level = settings.LogLevel
	}
	if verbose {
		cfg = logging.DevelopmentConfig()
	}
	cfg.File = settings.LogFile
	return logging.New(cfg)
}

// newEngine creates an engine on the real filesystem rooted at the current
// working directory.
func newEngine(cmd *cobra.Command, prompt engine.Prompter) (*engine.Engine, *config.Settings, error) {
	_, settings, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}

	log, err := newLogger(settings)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	cwd, err := pathkey.FromOS(wd)
	if err != nil {
		return nil, nil, err
	}

	eng := engine.New(engine.Options{
		FS:       fsops.NewRealFS(),
		Prompt:   prompt,
		Settings: *settings,
		Logger:   log,
		CWD:      cwd,
	})
	return eng, settings, nil
}

// openListings opens the listings of dirs in key order, so the same set of
// directories always gets the same identifiers whatever order it was named
// in. It returns the keys in the order of dirs.
func openListings(eng *engine.Engine, dirs []string) ([]string, error) {
	keys := lo.Map(dirs, func(dir string, _ int) string {
		return eng.Key(dir)
	})

	sorted := lo.Uniq(keys)
	slices.Sort(sorted)
	for _, key := range sorted {
		if _, _, err := eng.Open(key); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// newPrompter returns the confirmation prompter for the command. With
// --yes every question is answered yes.
func newPrompter(cmd *cobra.Command, assumeYes bool) engine.Prompter {
	if assumeYes {
		return nil
	}
	return newStdinPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
}

// formatJSON formats a value as JSON.
func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// formatError formats an error for display.
func formatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
