package query

import (
	"errors"
	"fmt"
)

// Sentinel causes for ParseError.
var (
	ErrMalformedPath      = errors.New("malformed location query")
	ErrInvalidSegmentName = errors.New("segment name must be three alphanumeric characters")
	ErrMissingSegment     = errors.New("location query requires a segment name")
)

// ParseError is returned when a path string does not match the location
// query grammar.
type ParseError struct {
	Path     string
	Fragment string
	Cause    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("query: invalid path %q", e.Path)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// InvalidIndexError is returned when a numeric index in a path, or one
// set via Builder, is zero. All indices in the query language are
// 1-based and must be non-zero.
type InvalidIndexError struct {
	// Component names which index was invalid: "segment occurrence",
	// "field", "repeat", "component", or "subcomponent".
	Component string
	Value     int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("query: invalid %s index %d: indices are 1-based and must be non-zero", e.Component, e.Value)
}
