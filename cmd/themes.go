package cmd

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/zjrosen/lexstyle/internal/theme"
)

// descriptionWidth wraps preset descriptions in the themes listing.
const descriptionWidth = 60

func newThemesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the built-in theme presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			active := c.cfg.Theme.Preset
			if active == "" {
				active = theme.DefaultPreset.Name
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), listThemes(active))
			return err
		},
	}
}

func listThemes(active string) string {
	var b strings.Builder
	for _, name := range theme.PresetNames() {
		p := theme.Presets[name]
		marker := " "
		if name == active {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %-18s %-5s  partner: %s\n", marker, name, p.Mode, p.Partner)
		if p.Description != "" {
			desc := wordwrap.String(p.Description, descriptionWidth)
			b.WriteString(indent.String(desc, 4))
			b.WriteByte('\n')
		}
	}
	return b.String()
}
