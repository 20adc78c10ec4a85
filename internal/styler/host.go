package styler

// Painter is the part of an editor widget the styler drives. StartStyling
// positions the widget's byte cursor; each SetStyling call paints length
// bytes from the cursor and advances it.
type Painter interface {
	StartStyling(pos int)
	SetStyling(length int, style StyleID)
}

// StyleText styles doc[start:end] and applies the runs to p in order,
// starting at start. Nothing is painted if styling fails.
func (s *Styler) StyleText(p Painter, doc string, start, end int) error {
	runs, err := s.StyleRange(doc, start, end)
	if err != nil {
		return err
	}

	p.StartStyling(start)
	for _, r := range runs {
		p.SetStyling(r.Length, r.Style)
	}
	return nil
}

// Span is a styled byte range [Start, End) of the document.
type Span struct {
	Start int
	End   int
	Style StyleID
}

// Spans converts runs applied from start into absolute byte ranges.
func Spans(start int, runs []StyledRun) []Span {
	if len(runs) == 0 {
		return nil
	}
	spans := make([]Span, 0, len(runs))
	pos := start
	for _, r := range runs {
		spans = append(spans, Span{Start: pos, End: pos + r.Length, Style: r.Style})
		pos += r.Length
	}
	return spans
}
