// Package app wires configuration, environment discovery, the styler and the
// theme registry into one Session shared by every command.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/zjrosen/lexstyle/internal/config"
	"github.com/zjrosen/lexstyle/internal/environ"
	"github.com/zjrosen/lexstyle/internal/log"
	"github.com/zjrosen/lexstyle/internal/pubsub"
	"github.com/zjrosen/lexstyle/internal/styler"
	"github.com/zjrosen/lexstyle/internal/theme"
)

// Session holds the services built from one configuration.
type Session struct {
	id         string
	cfg        config.Config
	configPath string
	styler     *styler.Styler
	registry   *theme.Registry
	broker     *pubsub.Broker[string]
	scanner    *environ.Scanner
	modules    int
}

// SessionOption configures NewSession.
type SessionOption func(*Session)

// WithScanner shares a module scanner (and its listing cache) between sessions.
func WithScanner(s *environ.Scanner) SessionOption {
	return func(sess *Session) {
		sess.scanner = s
	}
}

// WithConfigPath records where the config was loaded from, for saving.
func WithConfigPath(path string) SessionOption {
	return func(sess *Session) {
		sess.configPath = path
	}
}

// NewSession validates cfg, scans for modules, builds the category tables
// and styler, and applies the configured theme.
func NewSession(ctx context.Context, cfg config.Config, opts ...SessionOption) (*Session, error) {
	s := &Session{id: uuid.NewString(), cfg: cfg, broker: pubsub.NewBroker[string]()}
	for _, opt := range opts {
		opt(s)
	}
	if s.scanner == nil {
		s.scanner = environ.NewScanner()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	spec, err := s.buildSpec(ctx)
	if err != nil {
		return nil, err
	}

	var styleOpts []styler.Option
	if cfg.Styler.LineComments {
		styleOpts = append(styleOpts, styler.WithLineComments())
	}
	tables := styler.NewTables(spec)
	s.styler = styler.New(tables, styleOpts...)
	s.modules = tables.Len(styler.CategoryModule)

	s.registry = theme.NewRegistry(theme.WithPublisher(s.broker))
	if err := s.registry.Apply(theme.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
		Colors: cfg.Theme.FlattenedColors(),
	}); err != nil {
		return nil, fmt.Errorf("applying theme: %w", err)
	}

	log.Info(log.CatStyler, "Session ready",
		"session", s.id,
		"modules", s.modules,
		"builtins", tables.Len(styler.CategoryBuiltin),
		"line_comments", cfg.Styler.LineComments,
		"preset", s.registry.PresetName())
	return s, nil
}

func (s *Session) buildSpec(ctx context.Context) (styler.TableSpec, error) {
	sc := s.cfg.Styler

	paths := append([]string(nil), sc.ModulePaths...)
	if sc.UsePythonPath {
		paths = append(paths, environ.PathsFromEnv()...)
	}

	modules, err := s.scanner.Scan(ctx, paths)
	if err != nil {
		return styler.TableSpec{}, fmt.Errorf("scanning module paths: %w", err)
	}
	if sc.StdlibSnapshot {
		modules = append(modules, environ.StdlibModules()...)
	}
	modules = append(modules, sc.ExtraModules...)

	builtins := append(environ.DefaultBuiltins(), sc.ExtraBuiltins...)
	spec := styler.DefaultSpec(modules, builtins)

	if sc.TablesFile != "" {
		f, err := styler.LoadTablesFile(sc.TablesFile)
		if err != nil {
			return styler.TableSpec{}, fmt.Errorf("loading tables file: %w", err)
		}
		spec = styler.ApplyTablesFile(spec, f)
		log.Debug(log.CatConfig, "Applied tables file", "path", sc.TablesFile)
	}
	return spec, nil
}

// ID identifies the session in log entries.
func (s *Session) ID() string { return s.id }

// Config returns the configuration the session was built from.
func (s *Session) Config() config.Config { return s.cfg }

// ConfigPath returns the config file path, or "" if none was given.
func (s *Session) ConfigPath() string { return s.configPath }

func (s *Session) Styler() *styler.Styler { return s.styler }

func (s *Session) Registry() *theme.Registry { return s.registry }

// Events carries theme changes and, when a watcher is attached, file changes.
func (s *Session) Events() *pubsub.Broker[string] { return s.broker }

// Close shuts down the event broker.
func (s *Session) Close() {
	s.broker.Close()
}

// Document is a styled source file.
type Document struct {
	Path string
	Text string
	Runs []styler.StyledRun
}

// StyleFile reads path and styles its whole content.
func (s *Session) StyleFile(path string) (Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-chosen source file
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return s.StyleText(path, string(data))
}

// StyleText styles text that came from somewhere other than a file.
func (s *Session) StyleText(name, text string) (Document, error) {
	runs, err := s.styler.Style(text)
	if err != nil {
		return Document{}, fmt.Errorf("styling %s: %w", name, err)
	}
	return Document{Path: name, Text: text, Runs: runs}, nil
}

// Render paints a document with the active theme.
func (s *Session) Render(doc Document) string {
	return s.registry.Render(doc.Text, doc.Runs)
}
