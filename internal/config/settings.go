package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Settings are the user-configurable options. They are read once at startup
// and never written back.
type Settings struct {
	// UseWorkspaceEdit routes renames through the editor host when it
	// supports it instead of renaming on disk directly.
	UseWorkspaceEdit bool `mapstructure:"use_workspace_edit" json:"useWorkspaceEdit"`

	// AlternateConfirmation lists every operation in the confirmation prompt
	// instead of a one-line summary.
	AlternateConfirmation bool `mapstructure:"alternate_confirmation" json:"alternateConfirmation"`

	// NerdFont decorates listings with nerd-font icons.
	NerdFont bool `mapstructure:"nerd_font" json:"nerdFont"`

	// AutoOpen opens the current directory when diredit runs without a command.
	AutoOpen bool `mapstructure:"auto_open" json:"autoOpen"`

	// DisableVimKeymaps is passed through to editor integrations that register
	// modal-editing keymaps.
	DisableVimKeymaps bool `mapstructure:"disable_vim_keymaps" json:"disableVimKeymaps"`

	// Editor is the command used to edit listings.
	Editor string `mapstructure:"editor" json:"editor"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" json:"logLevel"`

	// LogFile, when set, receives a rotated copy of the log.
	LogFile string `mapstructure:"log_file" json:"logFile,omitempty"`
}

// NewViper returns a viper instance wired to the settings file and the
// DIREDIT_* environment.
func NewViper(paths *Paths) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(paths.Config)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("DIREDIT")
	v.AutomaticEnv()

	v.SetDefault("use_workspace_edit", false)
	v.SetDefault("alternate_confirmation", false)
	v.SetDefault("nerd_font", false)
	v.SetDefault("auto_open", false)
	v.SetDefault("disable_vim_keymaps", false)
	v.SetDefault("editor", "vi")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_file", "")

	_ = v.BindEnv("editor", "DIREDIT_EDITOR", "VISUAL", "EDITOR")
	return v
}

// LoadSettings reads settings from v. A missing settings file is not an error.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &s, nil
}
