package styler

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned when the requested offsets do not describe
	// a span of the document.
	ErrInvalidRange = errors.New("invalid styling range")

	// ErrVerificationFailed is returned when emitted run lengths do not add
	// up to the byte length of the styled text.
	ErrVerificationFailed = errors.New("styled runs do not cover text")
)

// RangeError reports a rejected (start, end) pair.
type RangeError struct {
	Start, End int
	DocLen     int
	Reason     string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid styling range [%d, %d) for document of %d bytes: %s",
		e.Start, e.End, e.DocLen, e.Reason)
}

func (e *RangeError) Unwrap() error { return ErrInvalidRange }

// VerificationError reports a mismatch between the text and its runs.
type VerificationError struct {
	TextBytes int
	RunBytes  int
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("styled runs cover %d bytes, text has %d", e.RunBytes, e.TextBytes)
}

func (e *VerificationError) Unwrap() error { return ErrVerificationFailed }
