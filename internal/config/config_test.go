package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.True(t, cfg.Styler.UsePythonPath)
	require.True(t, cfg.Styler.StdlibSnapshot)
	require.False(t, cfg.Styler.LineComments)
	require.Empty(t, cfg.Theme.Preset)
	require.Equal(t, 200*time.Millisecond, cfg.Watch.Debounce)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad mode", func(c *Config) { c.Theme.Mode = "dim" }, "theme.mode"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, "watch.debounce"},
		{"empty module path", func(c *Config) { c.Styler.ModulePaths = []string{"lib", ""} }, "module_paths entry 1 is empty"},
		{"empty extra module", func(c *Config) { c.Styler.ExtraModules = []string{""} }, "extra_modules entry 0"},
		{"empty extra builtin", func(c *Config) { c.Styler.ExtraBuiltins = []string{"x", ""} }, "extra_builtins entry 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}

	cfg := Defaults()
	cfg.Theme.Mode = "light"
	require.NoError(t, cfg.Validate())
}

func TestFlattenedColors(t *testing.T) {
	theme := ThemeConfig{Colors: map[string]any{
		"syntax": map[string]any{
			"keyword": "#0000FF",
			"module":  "#FFBF00",
		},
		"paper":           "#1D1C1C",
		"syntax.operator": "#FF8000",
		"legacy":          map[any]any{"key": "#FFFFFF", 3: "#000000"},
		"ignored":         42,
	}}

	require.Equal(t, map[string]string{
		"syntax.keyword":  "#0000FF",
		"syntax.module":   "#FFBF00",
		"syntax.operator": "#FF8000",
		"paper":           "#1D1C1C",
		"legacy.key":      "#FFFFFF",
	}, theme.FlattenedColors())

	require.Empty(t, ThemeConfig{}.FlattenedColors())
}

func TestDefaultConfigTemplate_Parses(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(stringsReader(DefaultConfigTemplate())))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	require.Equal(t, Defaults().Styler, cfg.Styler)
	require.Equal(t, 200*time.Millisecond, cfg.Watch.Debounce)
	require.NoError(t, cfg.Validate())
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lexstyle", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	err = WriteDefaultConfig(filepath.Join(blocker, "config.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "creating config directory")
}
