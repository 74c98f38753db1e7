package timestamp

import "fmt"

// ComponentError indicates a component could not be parsed: it started
// (its first digit was present) but did not complete.
type ComponentError struct {
	Component string
	Position  int
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("timestamp: failed to parse component %s at position %d", e.Component, e.Position)
}

// TrailingCharactersError indicates strict parsing found characters
// after the last recognized component or offset.
type TrailingCharactersError struct {
	Position int
}

func (e *TrailingCharactersError) Error() string {
	return fmt.Sprintf("timestamp: unexpected trailing character at position %d", e.Position)
}

// MissingComponentError indicates a required component (the year, or a
// component requested by a caller such as ParseDate/ParseTime) was
// absent.
type MissingComponentError struct {
	Component string
}

func (e *MissingComponentError) Error() string {
	return fmt.Sprintf("timestamp: missing component %s", e.Component)
}

// RangeError indicates a component's value is outside its calendar
// range (e.g. month 13, or day 30 of February). It is only produced by
// Stamp.ToTime, which is the caller-invoked calendar bridge; Parse
// itself never validates ranges.
type RangeError struct {
	Component string
	Value     int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("timestamp: invalid component range: %s = %d", e.Component, e.Value)
}

// AmbiguousLocalTimeError indicates a wall-clock time that Stamp.ToTime
// could not resolve to a single instant in the given location (a
// spring-forward gap or fall-back overlap).
type AmbiguousLocalTimeError struct {
	Stamp string
}

func (e *AmbiguousLocalTimeError) Error() string {
	return fmt.Sprintf("timestamp: ambiguous local time %q in the given location", e.Stamp)
}
