package environ

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/lexstyle/internal/cachemanager"
)

// layout creates files (and their parent directories) under a temp dir.
func layout(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o600))
	}
	return root
}

func TestScan_PkgutilNamingRules(t *testing.T) {
	dir := layout(t,
		"os.py",
		"json/__init__.py",
		"notpkg/helper.py",
		"_ssl.cpython-312-x86_64-linux-gnu.so",
		"compiled.pyc",
		"__init__.py",
		"my-tool.py",
		"archive.tar.py",
		"README.md",
		"__pycache__/os.cpython-312.pyc",
		"pkg.v2/__init__.py",
		"nested/deep/__init__.py",
	)

	got, err := NewScanner().Scan(context.Background(), []string{dir})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"os", "json", "_ssl", "compiled"}, got)
}

func TestScan_FirstOccurrenceWins(t *testing.T) {
	first := layout(t, "b.py", "a.py")
	second := layout(t, "a.py", "c/__init__.py")

	got, err := NewScanner().Scan(context.Background(), []string{first, second})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestScan_SkipsMissingDirectories(t *testing.T) {
	dir := layout(t, "sys.py")
	file := filepath.Join(dir, "sys.py")

	got, err := NewScanner().Scan(context.Background(), []string{
		filepath.Join(dir, "missing"), "", file, dir,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"sys"}, got)
}

func TestScan_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScanner().Scan(ctx, []string{layout(t, "os.py")})
	require.ErrorIs(t, err, context.Canceled)
}

func TestScan_CachesListings(t *testing.T) {
	dir := layout(t, "os.py")
	cache := cachemanager.NewInMemoryCacheManager[string, []string]("test", DefaultListingTTL, cachemanager.DefaultCleanupInterval)
	s := NewScanner(WithCache(cache))

	got, err := s.Scan(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Equal(t, []string{"os"}, got)

	// A new file is invisible until the cache is flushed.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "re.py"), nil, 0o600))
	got, err = s.Scan(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Equal(t, []string{"os"}, got)

	require.NoError(t, cache.Flush(context.Background()))
	got, err = s.Scan(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Equal(t, []string{"os", "re"}, got)
}

func TestScan_WithoutCache(t *testing.T) {
	dir := layout(t, "os.py")
	s := NewScanner(WithoutCache())

	_, err := s.Scan(context.Background(), []string{dir})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "re.py"), nil, 0o600))

	got, err := s.Scan(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Equal(t, []string{"os", "re"}, got)
}

func TestIsIdentifier(t *testing.T) {
	for _, ok := range []string{"os", "_ssl", "__future__", "py3", "café", "数据"} {
		require.True(t, isIdentifier(ok), ok)
	}
	for _, bad := range []string{"", "3d", "my-tool", "a.b", "a b"} {
		require.False(t, isIdentifier(bad), bad)
	}
}

func TestPathsFromEnv(t *testing.T) {
	sep := string(os.PathListSeparator)
	t.Setenv("PYTHONPATH", "/a"+sep+sep+" /b "+sep)
	require.Equal(t, []string{"/a", "/b"}, PathsFromEnv())

	t.Setenv("PYTHONPATH", "")
	require.Nil(t, PathsFromEnv())
}

func TestSnapshots(t *testing.T) {
	builtins := DefaultBuiltins()
	require.Contains(t, builtins, "print")
	require.Contains(t, builtins, "ZeroDivisionError")
	require.Contains(t, builtins, "__import__")
	builtins[0] = "changed"
	require.NotEqual(t, "changed", DefaultBuiltins()[0])

	modules := StdlibModules()
	require.Contains(t, modules, "os")
	require.Contains(t, modules, "asyncio")
	require.NotContains(t, modules, "sys", "sys is built into the interpreter, not found on a path")
	for _, m := range modules {
		require.True(t, isIdentifier(m), m)
	}
}
