package styler

import (
	"unicode/utf8"

	"github.com/zjrosen/lexstyle/internal/log"
)

// StyledRun paints Length bytes of text with Style.
type StyledRun struct {
	Length int     `json:"length"`
	Style  StyleID `json:"style"`
}

// Styler tokenizes and classifies text spans. It keeps no state between
// calls, so one Styler may serve any number of concurrent styling passes.
type Styler struct {
	tables       *Tables
	lineComments bool

	// byteLen measures a token for its run. Tests replace it to check that
	// a bad measurement is caught by verification.
	byteLen func(string) int
}

// Option configures a Styler.
type Option func(*Styler)

// WithLineComments makes '#' through the end of the line a single token,
// which then styles as a comment.
func WithLineComments() Option {
	return func(s *Styler) {
		s.lineComments = true
	}
}

// New creates a Styler over tables. A nil tables value classifies every
// token as Regular unless it is a comment.
func New(tables *Tables, opts ...Option) *Styler {
	if tables == nil {
		tables = NewTables(TableSpec{})
	}
	s := &Styler{
		tables:  tables,
		byteLen: func(tok string) int { return len(tok) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tables returns the category tables the styler classifies against.
func (s *Styler) Tables() *Tables {
	return s.tables
}

// Tokenize splits text the way the styling pass does, honouring the
// styler's options.
func (s *Styler) Tokenize(text string) []string {
	return tokenize(text, s.lineComments)
}

// Classify returns the style for a single token.
func (s *Styler) Classify(token string) StyleID {
	return classify(s.tables, token)
}

// Style returns the runs covering text. The runs are verified before they
// are returned; on a mismatch no runs are returned and the error wraps
// ErrVerificationFailed.
func (s *Styler) Style(text string) ([]StyledRun, error) {
	tokens := s.Tokenize(text)
	if len(tokens) == 0 {
		return nil, nil
	}

	runs := make([]StyledRun, 0, len(tokens))
	for _, tok := range tokens {
		runs = append(runs, StyledRun{
			Length: s.byteLen(tok),
			Style:  s.Classify(tok),
		})
	}

	if err := Verify(text, runs); err != nil {
		log.ErrorErr(log.CatStyler, "Styling pass failed verification", err,
			"tokens", len(tokens))
		return nil, err
	}

	log.Debug(log.CatStyler, "Styled text", "bytes", len(text), "runs", len(runs))
	return runs, nil
}

// StyleRange styles doc[start:end]. Offsets are byte offsets and must fall on
// character boundaries.
func (s *Styler) StyleRange(doc string, start, end int) ([]StyledRun, error) {
	if err := checkRange(doc, start, end); err != nil {
		log.Warn(log.CatStyler, "Rejected styling range", "start", start, "end", end, "doc_len", len(doc))
		return nil, err
	}
	return s.Style(doc[start:end])
}

// Verify checks that runs cover exactly the UTF-8 bytes of text.
func Verify(text string, runs []StyledRun) error {
	sum := 0
	for _, r := range runs {
		sum += r.Length
	}
	if sum != len(text) {
		return &VerificationError{TextBytes: len(text), RunBytes: sum}
	}
	return nil
}

func checkRange(doc string, start, end int) error {
	rangeErr := func(reason string) error {
		return &RangeError{Start: start, End: end, DocLen: len(doc), Reason: reason}
	}

	switch {
	case start < 0:
		return rangeErr("negative start")
	case start > end:
		return rangeErr("start after end")
	case end > len(doc):
		return rangeErr("end past document")
	case start < len(doc) && !utf8.RuneStart(doc[start]):
		return rangeErr("start inside a character")
	case end < len(doc) && !utf8.RuneStart(doc[end]):
		return rangeErr("end inside a character")
	}
	return nil
}
