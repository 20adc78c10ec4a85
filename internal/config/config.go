// Package config provides configuration types and defaults for lexstyle.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/lexstyle/internal/log"
)

// DefaultConfigPath is where a project-local config lives.
const DefaultConfigPath = ".lexstyle/config.yaml"

// Config holds all configuration options for lexstyle.
type Config struct {
	Styler  StylerConfig `mapstructure:"styler"`
	Theme   ThemeConfig  `mapstructure:"theme"`
	Watch   WatchConfig  `mapstructure:"watch"`
	Debug   bool         `mapstructure:"debug"`
	LogFile string       `mapstructure:"log_file"`
}

// StylerConfig controls how the category tables are built.
type StylerConfig struct {
	// ModulePaths are scanned for importable module names, in order.
	ModulePaths []string `mapstructure:"module_paths"`
	// UsePythonPath appends the entries of $PYTHONPATH to ModulePaths.
	UsePythonPath bool `mapstructure:"use_pythonpath"`
	// StdlibSnapshot adds the built-in standard library module list.
	StdlibSnapshot bool `mapstructure:"stdlib_snapshot"`

	ExtraModules  []string `mapstructure:"extra_modules"`
	ExtraBuiltins []string `mapstructure:"extra_builtins"`

	// TablesFile is a YAML file whose non-empty sections replace the defaults.
	TablesFile string `mapstructure:"tables_file"`

	// LineComments styles '#' to end of line as one comment run.
	LineComments bool `mapstructure:"line_comments"`
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "light", "catppuccin-mocha",
	// "catppuccin-latte", "dracula", "nord"
	Preset string `mapstructure:"preset"`

	// Mode picks the light or dark partner of the preset.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     syntax:
	//       keyword: "#FF0000"
	// Or quoted dot notation:
	//   colors:
	//     "syntax.keyword": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// WatchConfig controls live reload.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any, len(val))
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Styler: StylerConfig{
			UsePythonPath:  true,
			StdlibSnapshot: true,
		},
		Theme: ThemeConfig{
			Preset: "",
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// Validate checks the parts of the config that can be checked without
// touching the file system or the theme registry.
func (c Config) Validate() error {
	if err := ValidateStyler(c.Styler); err != nil {
		return fmt.Errorf("styler: %w", err)
	}
	switch c.Theme.Mode {
	case "", "dark", "light":
	default:
		return fmt.Errorf("theme.mode must be \"dark\", \"light\" or empty, got %q", c.Theme.Mode)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	return nil
}

// ValidateStyler rejects empty entries in the module and builtin lists.
func ValidateStyler(s StylerConfig) error {
	for i, p := range s.ModulePaths {
		if p == "" {
			return fmt.Errorf("module_paths entry %d is empty", i)
		}
	}
	for i, m := range s.ExtraModules {
		if m == "" {
			return fmt.Errorf("extra_modules entry %d is empty", i)
		}
	}
	for i, b := range s.ExtraBuiltins {
		if b == "" {
			return fmt.Errorf("extra_builtins entry %d is empty", i)
		}
	}
	return nil
}

// UserConfigDir returns ~/.config/lexstyle.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "lexstyle")
	}
	return filepath.Join(home, ".config", "lexstyle")
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# lexstyle configuration

# Styler settings: which names count as modules and builtins
styler:
  # Directories scanned for importable modules, in order
  # module_paths:
  #   - /usr/lib/python3.12
  #   - ./src
  use_pythonpath: true    # Also scan the directories in $PYTHONPATH
  stdlib_snapshot: true   # Include the built-in standard library module list

  # extra_modules: [numpy, pandas]
  # extra_builtins: [reveal_type]

  # YAML file replacing whole tables (run 'lexstyle tables' for the format)
  # tables_file: .lexstyle/tables.yaml

  line_comments: false    # Style '#' to end of line as a comment

# Theme configuration
# Use a preset theme or customize individual colors
theme:
  # Preset used as the base (run 'lexstyle themes' to see available presets)
  preset: default
  #
  # Available presets:
  #   default           - Classic palette on a dark page
  #   light             - Default palette for a white page
  #   catppuccin-mocha  - Soothing pastel theme (dark)
  #   catppuccin-latte  - Soothing pastel theme (light)
  #   dracula           - Dark theme with vibrant colors
  #   nord              - Arctic, north-bluish palette
  #
  # mode: light   # Switch to the preset's light or dark partner
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   syntax.keyword: "#0000FF"
  #   syntax.module: "#FFBF00"
  #   paper: "#1D1C1C"

# Live reload for 'lexstyle view' and 'lexstyle watch'
watch:
  debounce: 200ms

# Write debug logs (same as --debug or LEXSTYLE_DEBUG=1)
# debug: false
# log_file: debug.log
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
