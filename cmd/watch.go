package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/lexstyle/internal/app"
	"github.com/zjrosen/lexstyle/internal/log"
	"github.com/zjrosen/lexstyle/internal/styler"
	"github.com/zjrosen/lexstyle/internal/watcher"
)

func newWatchCmd(c *cli) *cobra.Command {
	var summaryOnly bool

	cmd := &cobra.Command{
		Use:   "watch file...",
		Short: "Restyle files as they change",
		Long: `Style each file once, then again every time it is saved. Each pass prints a
summary line followed by the rendered file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := c.session(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			w, err := watcher.New(watcher.Config{
				Files:       args,
				DebounceDur: c.cfg.Watch.Debounce,
				Publisher:   sess.Events(),
			})
			if err != nil {
				return fmt.Errorf("creating watcher: %w", err)
			}
			changes, err := w.Start()
			if err != nil {
				return fmt.Errorf("starting watcher: %w", err)
			}
			defer func() { _ = w.Stop() }()

			// Events carry absolute paths; print the name the user typed.
			display := make(map[string]string, len(args))
			for _, f := range args {
				if abs, err := filepath.Abs(f); err == nil {
					display[abs] = f
				}
			}

			p := passPrinter{sess: sess, out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr(), summaryOnly: summaryOnly}
			for _, f := range args {
				p.print(f)
			}

			ctx := cmd.Context()
			for {
				select {
				case <-ctx.Done():
					return nil
				case path := <-changes:
					name, ok := display[path]
					if !ok {
						name = path
					}
					p.print(name)
				}
			}
		},
	}

	cmd.Flags().BoolVarP(&summaryOnly, "summary", "s", false, "print only the summary line of each pass")
	return cmd
}

// passPrinter writes the result of one styling pass.
type passPrinter struct {
	sess        *app.Session
	out         io.Writer
	errOut      io.Writer
	summaryOnly bool
}

// print styles path and writes its summary and rendering. A failed pass is
// reported and the watch goes on.
func (p passPrinter) print(path string) {
	doc, err := p.sess.StyleFile(path)
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Restyle failed", err, "file", path)
		_, _ = fmt.Fprintf(p.errOut, "error: %v\n", err)
		return
	}
	_, _ = fmt.Fprintln(p.out, summarize(doc))
	if !p.summaryOnly {
		_, _ = io.WriteString(p.out, p.sess.Render(doc))
		if !strings.HasSuffix(doc.Text, "\n") {
			_, _ = io.WriteString(p.out, "\n")
		}
	}
}

// summarize reports run counts per style:
//
//	== main.py: 12 runs, 48 bytes (keyword 2, regular 10) ==
func summarize(doc app.Document) string {
	var counts [styler.NumStyles]int
	for _, r := range doc.Runs {
		if r.Style.Valid() {
			counts[r.Style]++
		}
	}

	var parts []string
	for _, s := range styler.AllStyles() {
		if counts[s] > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", styleLabel(s), counts[s]))
		}
	}

	line := fmt.Sprintf("== %s: %d runs, %d bytes", doc.Path, len(doc.Runs), len(doc.Text))
	if len(parts) > 0 {
		line += " (" + strings.Join(parts, ", ") + ")"
	}
	return line + " =="
}

// styleLabel drops the "_style" suffix: keyword_style -> keyword.
func styleLabel(s styler.StyleID) string {
	return strings.TrimSuffix(s.String(), "_style")
}
