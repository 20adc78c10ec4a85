package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zjrosen/lexstyle/internal/config"
	"github.com/zjrosen/lexstyle/internal/log"
	"github.com/zjrosen/lexstyle/internal/viewer"
	"github.com/zjrosen/lexstyle/internal/watcher"
)

func newViewCmd(c *cli) *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "view file",
		Short: "Open a styled, live-reloading view of a file",
		Long: `Open a file in a scrollable terminal view. The file is restyled whenever it
is saved. Press t to switch between the light and dark variant of the theme,
p to cycle presets, w to save the current preset to the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			sess, err := c.session(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			if !noWatch {
				w, err := watcher.New(watcher.Config{
					Files:       []string{path},
					DebounceDur: c.cfg.Watch.Debounce,
					Publisher:   sess.Events(),
				})
				if err != nil {
					return fmt.Errorf("creating watcher: %w", err)
				}
				if _, err := w.Start(); err != nil {
					return fmt.Errorf("starting watcher: %w", err)
				}
				defer func() { _ = w.Stop() }()
			}

			savePath := c.savePath()
			model, err := viewer.New(ctx, sess, path,
				viewer.WithEvents(sess.Events()),
				viewer.WithSaveFunc(func(preset string) error {
					log.Info(log.CatConfig, "Saving theme preset", "preset", preset, "path", savePath)
					return config.SaveThemePreset(savePath, preset)
				}),
			)
			if err != nil {
				return err
			}

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("running program: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not restyle when the file changes")
	return cmd
}
