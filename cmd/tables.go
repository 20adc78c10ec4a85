package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/lexstyle/internal/styler"
)

func newTablesCmd(c *cli) *cobra.Command {
	var rules bool

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Dump the effective category tables as YAML",
		Long: `Dump the keyword, operator, bracket, module and builtin tables the styler
classifies against. The output is a valid tables file for styler.tables_file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if rules {
				return writeRules(out)
			}

			sess, err := c.session(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			data, err := styler.SpecToTablesFile(sess.Styler().Tables().Spec()).Marshal()
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&rules, "rules", false, "print the classification rules in priority order instead")
	return cmd
}

func writeRules(w io.Writer) error {
	for i, r := range styler.Rules() {
		if _, err := fmt.Fprintf(w, "%d. %-8s -> %s\n", i+1, r.Name, r.Style); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "   %-8s -> %s\n", "*", styler.Regular)
	return err
}
