package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/lexstyle/internal/app"
	"github.com/zjrosen/lexstyle/internal/config"
	"github.com/zjrosen/lexstyle/internal/log"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var version = "dev"

// envPrefix namespaces environment overrides: LEXSTYLE_DEBUG, LEXSTYLE_THEME_PRESET, ...
const envPrefix = "LEXSTYLE"

// cli is the state shared by the root command and its subcommands.
type cli struct {
	v          *viper.Viper
	cfgFile    string
	cfg        config.Config
	configPath string
	logCleanup func()
}

// NewRootCmd builds the command tree. Each call gets its own viper instance,
// so tests can run commands side by side.
func NewRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:   "lexstyle",
		Short: "Lexical syntax styling for Python source",
		Long: `lexstyle splits Python source into whitespace, word and punctuation tokens,
classifies each token (keyword, operator, bracket, module, builtin, comment),
and emits styled runs that exactly cover the input.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if err := c.initConfig(); err != nil {
				return err
			}
			return c.initLogging()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			c.closeLogging()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&c.cfgFile, "config", "c", "",
		"config file (default: .lexstyle/config.yaml, then ~/.config/lexstyle/config.yaml)")
	pf.Bool("debug", false, "write debug logs")
	pf.String("log-file", "", "debug log path (default: debug.log)")
	pf.Bool("line-comments", false, "style '#' to end of line as a comment")

	_ = c.v.BindPFlag("debug", pf.Lookup("debug"))
	_ = c.v.BindPFlag("log_file", pf.Lookup("log-file"))
	_ = c.v.BindPFlag("styler.line_comments", pf.Lookup("line-comments"))

	root.AddCommand(
		newStyleCmd(c),
		newRenderCmd(c),
		newViewCmd(c),
		newWatchCmd(c),
		newTablesCmd(c),
		newThemesCmd(c),
	)
	return root
}

func (c *cli) initConfig() error {
	v := c.v
	defaults := config.Defaults()
	v.SetDefault("styler.module_paths", defaults.Styler.ModulePaths)
	v.SetDefault("styler.use_pythonpath", defaults.Styler.UsePythonPath)
	v.SetDefault("styler.stdlib_snapshot", defaults.Styler.StdlibSnapshot)
	v.SetDefault("styler.extra_modules", defaults.Styler.ExtraModules)
	v.SetDefault("styler.extra_builtins", defaults.Styler.ExtraBuiltins)
	v.SetDefault("styler.tables_file", defaults.Styler.TablesFile)
	v.SetDefault("theme.preset", defaults.Theme.Preset)
	v.SetDefault("theme.mode", defaults.Theme.Mode)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if c.cfgFile != "" {
		v.SetConfigFile(c.cfgFile)
	} else {
		// Config lookup order:
		// 1. .lexstyle/config.yaml (current directory)
		// 2. ~/.config/lexstyle/config.yaml (user config)
		if _, err := os.Stat(config.DefaultConfigPath); err == nil {
			v.SetConfigFile(config.DefaultConfigPath)
		} else {
			v.AddConfigPath(config.UserConfigDir())
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
		// No config file found anywhere - create default at .lexstyle/config.yaml
		if writeErr := config.WriteDefaultConfig(config.DefaultConfigPath); writeErr == nil {
			v.SetConfigFile(config.DefaultConfigPath)
			_ = v.ReadInConfig()
		}
		// If write fails, just continue with defaults (no config file)
	}

	if err := v.Unmarshal(&c.cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}

	c.configPath = v.ConfigFileUsed()
	if c.configPath != "" {
		if abs, err := filepath.Abs(c.configPath); err == nil {
			c.configPath = abs
		}
	}
	return nil
}

func (c *cli) initLogging() error {
	if !c.cfg.Debug {
		return nil
	}
	logPath := c.cfg.LogFile
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	c.logCleanup = cleanup
	log.Info(log.CatConfig, "Loaded config", "path", c.configPath, "version", version)
	return nil
}

func (c *cli) closeLogging() {
	if c.logCleanup != nil {
		c.logCleanup()
		c.logCleanup = nil
	}
}

// session builds the styling services from the loaded config.
func (c *cli) session(cmd *cobra.Command) (*app.Session, error) {
	return app.NewSession(cmd.Context(), c.cfg, app.WithConfigPath(c.configPath))
}

// savePath is where the viewer persists the chosen preset.
func (c *cli) savePath() string {
	if c.configPath != "" {
		return c.configPath
	}
	return config.DefaultConfigPath
}

// Execute runs the root command
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
}
