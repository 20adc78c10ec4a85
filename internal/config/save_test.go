package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

func loadFile(t *testing.T, path string) Config {
	t.Helper()
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg
}

func TestSaveThemePreset_CreatesNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, SaveThemePreset(path, "nord"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "preset: nord")
	require.Equal(t, "nord", loadFile(t, path).Theme.Preset)
}

func TestSaveThemePreset_PreservesOtherConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	initial := `# top comment
styler:
  line_comments: true # keep me
  extra_modules: [numpy]
theme:
  preset: dracula
  colors:
    syntax.keyword: "#FF0000"
`
	require.NoError(t, os.WriteFile(path, []byte(initial), 0o600))

	require.NoError(t, SaveThemePreset(path, "catppuccin-latte"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "# top comment")
	assert.Contains(t, out, "# keep me")

	cfg := loadFile(t, path)
	require.Equal(t, "catppuccin-latte", cfg.Theme.Preset)
	require.True(t, cfg.Styler.LineComments)
	require.Equal(t, []string{"numpy"}, cfg.Styler.ExtraModules)
	require.Equal(t, "#FF0000", cfg.Theme.FlattenedColors()["syntax.keyword"])
}

func TestSaveThemePreset_DefaultTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveThemePreset(path, "light"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Styler settings")
	assert.Contains(t, string(data), "# Live reload")

	cfg := loadFile(t, path)
	require.Equal(t, "light", cfg.Theme.Preset)
	require.True(t, cfg.Styler.StdlibSnapshot)
}

func TestSaveThemePreset_EmptyRemovesKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme:\n  preset: nord\n  mode: dark\n"), 0o600))

	require.NoError(t, SaveThemePreset(path, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "preset")
	assert.Contains(t, string(data), "mode: dark")
}

func TestSaveThemePreset_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unclosed\n"), 0o600))

	err := SaveThemePreset(path, "nord")
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing config")
}
