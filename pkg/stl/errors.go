package stl

import (
	"errors"
	"fmt"
)

// Error kinds. Every decode failure matches exactly one of these with
// errors.Is.
var (
	ErrTooSmall          = errors.New("buffer too small for STL")
	ErrMalformedHeader   = errors.New("malformed solid header")
	ErrMalformedNormal   = errors.New("malformed facet normal")
	ErrMalformedLoop     = errors.New("malformed outer loop")
	ErrMalformedVertex   = errors.New("malformed vertex")
	ErrTruncatedTriangle = errors.New("input ended inside a facet")
	ErrTruncated         = errors.New("binary data truncated")
)

// DecodeError describes why a buffer could not be decoded.
type DecodeError struct {
	// Kind is one of the Err* values of this package.
	Kind error
	// Line is the 1-based line number of an ASCII failure, 0 otherwise.
	Line int
	// Text is the offending ASCII line, trimmed.
	Text string
	// Err is the underlying cause, if any.
	Err error
}

func (e *DecodeError) Error() string {
	msg := "stl: " + e.Kind.Error()
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d: %q", e.Line, e.Text)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func lineError(kind error, line int, text string, cause error) *DecodeError {
	return &DecodeError{Kind: kind, Line: line, Text: text, Err: cause}
}
