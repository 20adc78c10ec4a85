package styler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingPainter records calls the way the editor widget receives them.
type recordingPainter struct {
	starts []int
	cursor int
	runs   []Span
}

func (p *recordingPainter) StartStyling(pos int) {
	p.starts = append(p.starts, pos)
	p.cursor = pos
}

func (p *recordingPainter) SetStyling(length int, style StyleID) {
	p.runs = append(p.runs, Span{Start: p.cursor, End: p.cursor + length, Style: style})
	p.cursor += length
}

var _ Painter = (*recordingPainter)(nil)

func TestStyleText_PaintsFromStart(t *testing.T) {
	doc := "x = 1\nif x: print(x)\n"
	start := 6
	end := len(doc)

	p := &recordingPainter{}
	require.NoError(t, testStyler().StyleText(p, doc, start, end))

	require.Equal(t, []int{start}, p.starts)
	require.Equal(t, end, p.cursor)
	require.Equal(t, Span{Start: 6, End: 8, Style: Keyword}, p.runs[0])

	for _, sp := range p.runs {
		if doc[sp.Start:sp.End] == "print" {
			require.Equal(t, Function, sp.Style)
		}
	}
}

func TestStyleText_InvalidRangePaintsNothing(t *testing.T) {
	p := &recordingPainter{}
	err := testStyler().StyleText(p, "abc", 2, 1)
	require.ErrorIs(t, err, ErrInvalidRange)
	require.Empty(t, p.starts)
	require.Empty(t, p.runs)
}

func TestStyleText_VerificationFailurePaintsNothing(t *testing.T) {
	s := testStyler()
	s.byteLen = func(string) int { return 1 }

	p := &recordingPainter{}
	err := s.StyleText(p, "hello world", 0, 11)
	require.ErrorIs(t, err, ErrVerificationFailed)
	require.Empty(t, p.runs)
}

func TestSpans(t *testing.T) {
	require.Nil(t, Spans(10, nil))

	runs := []StyledRun{{Length: 2, Style: Keyword}, {Length: 1, Style: Regular}, {Length: 4, Style: Regular}}
	require.Equal(t, []Span{
		{Start: 10, End: 12, Style: Keyword},
		{Start: 12, End: 13, Style: Regular},
		{Start: 13, End: 17, Style: Regular},
	}, Spans(10, runs))
}
