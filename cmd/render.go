package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func newRenderCmd(c *cli) *cobra.Command {
	var (
		preset string
		mode   string
		color  string
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Print a file or stdin with ANSI colors",
		Example: `  lexstyle render main.py
  lexstyle render --theme dracula --color always main.py | less -R`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setColorProfile(color); err != nil {
				return err
			}
			if cmd.Flags().Changed("theme") {
				c.cfg.Theme.Preset = preset
			}
			if cmd.Flags().Changed("mode") {
				c.cfg.Theme.Mode = mode
			}

			sess, err := c.session(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			name, text, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			doc, err := sess.StyleText(name, text)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), sess.Render(doc))
			return err
		},
	}

	cmd.Flags().StringVarP(&preset, "theme", "t", "", "theme preset (see `lexstyle themes`)")
	cmd.Flags().StringVar(&mode, "mode", "", "dark or light variant of the preset")
	cmd.Flags().StringVar(&color, "color", "auto", "color output: auto, always or never")
	return cmd
}

// setColorProfile overrides terminal detection. "auto" keeps whatever
// lipgloss detected for stdout.
func setColorProfile(mode string) error {
	switch mode {
	case "auto":
	case "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", mode)
	}
	return nil
}
