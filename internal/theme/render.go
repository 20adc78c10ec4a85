package theme

import (
	"strings"

	"github.com/zjrosen/lexstyle/internal/styler"
)

// Render paints text with the styles of runs and returns ANSI output.
// Stripping the escapes returns text unchanged. Runs must cover text; any
// uncovered tail is written unstyled.
func (r *Registry) Render(text string, runs []styler.StyledRun) string {
	if text == "" {
		return ""
	}

	r.mu.RLock()
	styles := r.styles
	r.mu.RUnlock()

	var b strings.Builder
	b.Grow(len(text) * 2)

	pos := 0
	for _, run := range runs {
		end := min(pos+run.Length, len(text))
		id := run.Style
		if !id.Valid() {
			id = styler.Regular
		}
		style := styles[id]

		// lipgloss pads multi-line blocks to a common width, so newlines are
		// written raw and each line segment is styled on its own.
		for i, line := range strings.Split(text[pos:end], "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line != "" {
				b.WriteString(style.Render(line))
			}
		}
		pos = end
		if pos >= len(text) {
			break
		}
	}
	if pos < len(text) {
		b.WriteString(text[pos:])
	}
	return b.String()
}
