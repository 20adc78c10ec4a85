// Package environ snapshots the parts of a Python environment the styler
// needs: importable top-level module names and builtin names.
package environ

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/zjrosen/lexstyle/internal/cachemanager"
	"github.com/zjrosen/lexstyle/internal/log"
)

// DefaultListingTTL is how long a directory listing stays cached.
const DefaultListingTTL = 5 * time.Minute

// extensionSuffixes mark compiled extension modules. The module name is the
// part of the file name before the first dot.
var extensionSuffixes = []string{".so", ".pyd"}

// Scanner discovers module names on a search path the way Python's
// pkgutil.iter_modules lists them.
type Scanner struct {
	listings *cachemanager.ReadThroughCache[string, []string, string]
	ttl      time.Duration
}

// ScannerOption configures a Scanner.
type ScannerOption func(*scannerOptions)

type scannerOptions struct {
	cache   cachemanager.CacheManager[string, []string]
	ttl     time.Duration
	noCache bool
}

// WithCache shares a listing cache between scanners.
func WithCache(c cachemanager.CacheManager[string, []string]) ScannerOption {
	return func(o *scannerOptions) {
		o.cache = c
	}
}

// WithTTL sets how long directory listings are cached.
func WithTTL(ttl time.Duration) ScannerOption {
	return func(o *scannerOptions) {
		o.ttl = ttl
	}
}

// WithoutCache makes every Scan read the file system.
func WithoutCache() ScannerOption {
	return func(o *scannerOptions) {
		o.noCache = true
	}
}

// NewScanner returns a scanner with a private in-memory listing cache.
func NewScanner(opts ...ScannerOption) *Scanner {
	o := scannerOptions{ttl: DefaultListingTTL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = cachemanager.NewInMemoryCacheManager[string, []string](
			"module-listing", o.ttl, cachemanager.DefaultCleanupInterval)
	}
	return &Scanner{
		listings: cachemanager.NewReadThroughCache[string, []string, string](o.cache, listModules, o.noCache),
		ttl:      o.ttl,
	}
}

// Scan returns the module names found on paths, in path order. The first
// occurrence of a name wins. Missing or unreadable directories are skipped.
// The only error returned is the context's.
func (s *Scanner) Scan(ctx context.Context, paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var modules []string

	for _, dir := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if dir == "" {
			continue
		}

		key, err := filepath.Abs(dir)
		if err != nil {
			key = filepath.Clean(dir)
		}

		names, err := s.listings.GetWithRefresh(ctx, key, key, s.ttl)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Debug(log.CatEnv, "Skipping missing module path", "dir", dir)
			} else {
				log.Warn(log.CatEnv, "Skipping unreadable module path", "dir", dir, "error", err)
			}
			continue
		}

		added := 0
		for _, name := range names {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			modules = append(modules, name)
			added++
		}
		log.Debug(log.CatEnv, "Scanned module path", "dir", dir, "found", len(names), "added", added)
	}

	return modules, nil
}

// listModules lists the top-level module names in one directory, sorted by
// file name like pkgutil does.
func listModules(_ context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	seen := make(map[string]struct{})
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name, ok := moduleName(dir, entry)
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

func moduleName(dir string, entry fs.DirEntry) (string, bool) {
	fn := entry.Name()

	if modname, ok := fileModuleName(fn); ok {
		if modname == "__init__" {
			return "", false
		}
		return modname, isIdentifier(modname)
	}

	if strings.Contains(fn, ".") || !isDir(dir, entry) {
		return "", false
	}
	if !isPackage(filepath.Join(dir, fn)) {
		return "", false
	}
	return fn, isIdentifier(fn)
}

// fileModuleName strips an importable suffix from a file name.
func fileModuleName(fn string) (string, bool) {
	for _, suffix := range []string{".py", ".pyc"} {
		if name, ok := strings.CutSuffix(fn, suffix); ok && name != "" {
			return name, !strings.Contains(name, ".")
		}
	}
	for _, suffix := range extensionSuffixes {
		if strings.HasSuffix(fn, suffix) {
			name, _, _ := strings.Cut(fn, ".")
			return name, name != ""
		}
	}
	return "", false
}

func isDir(dir string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.IsDir()
}

// isPackage reports whether dir holds an __init__ module of any importable kind.
func isPackage(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	return slices.ContainsFunc(entries, func(e fs.DirEntry) bool {
		name, ok := fileModuleName(e.Name())
		return ok && name == "__init__" && !e.IsDir()
	})
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)):
		default:
			return false
		}
	}
	return true
}

// PathsFromEnv splits PYTHONPATH on the OS list separator, dropping empty
// entries.
func PathsFromEnv() []string {
	return pathsFrom(os.Getenv("PYTHONPATH"))
}

func pathsFrom(value string) []string {
	var paths []string
	for _, p := range filepath.SplitList(value) {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
