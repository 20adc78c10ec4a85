package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"

	"github.com/zjrosen/lexstyle/internal/styler"
)

// runRecord is one line of `style --format json` output.
type runRecord struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
	Text   string `json:"text"`
}

func newStyleCmd(c *cli) *cobra.Command {
	var (
		start, end int
		format     string
	)

	cmd := &cobra.Command{
		Use:   "style [file]",
		Short: "Print the styled runs of a file or stdin",
		Long: `Style a file (or stdin) and print one record per run.

With --start and --end only that byte range is styled; offsets are still
reported relative to the whole document.`,
		Example: `  lexstyle style main.py
  lexstyle style --format table main.py
  cat main.py | lexstyle style --start 10 --end 42`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "table" {
				return fmt.Errorf("invalid format %q (want json or table)", format)
			}

			sess, err := c.session(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			_, text, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			from, to := 0, len(text)
			if cmd.Flags().Changed("start") {
				from = start
			}
			if cmd.Flags().Changed("end") {
				to = end
			}

			runs, err := sess.Styler().StyleRange(text, from, to)
			if err != nil {
				return err
			}
			records := toRecords(text, from, runs)

			if format == "table" {
				return writeTable(cmd.OutOrStdout(), records)
			}
			return writeJSONLines(cmd.OutOrStdout(), records)
		},
	}

	cmd.Flags().IntVar(&start, "start", 0, "first byte to style")
	cmd.Flags().IntVar(&end, "end", 0, "byte after the last one to style (default: end of input)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or table")
	return cmd
}

func toRecords(doc string, start int, runs []styler.StyledRun) []runRecord {
	spans := styler.Spans(start, runs)
	out := make([]runRecord, len(spans))
	for i, sp := range spans {
		out[i] = runRecord{
			Offset: sp.Start,
			Length: sp.End - sp.Start,
			Style:  sp.Style.String(),
			Text:   doc[sp.Start:sp.End],
		}
	}
	return out
}

func writeJSONLines(w io.Writer, records []runRecord) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding run at %d: %w", r.Offset, err)
		}
	}
	return nil
}

// writeTable aligns columns by display width so wide characters in the
// TEXT column do not shift the rows.
func writeTable(w io.Writer, records []runRecord) error {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, []string{"OFFSET", "LENGTH", "CHARS", "STYLE", "TEXT"})
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.Offset),
			strconv.Itoa(r.Length),
			strconv.Itoa(uniseg.GraphemeClusterCount(r.Text)),
			r.Style,
			strconv.Quote(r.Text),
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
