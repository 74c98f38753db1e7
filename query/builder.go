package query

import "strings"

// Builder constructs a Location programmatically, rejecting zero indices
// and malformed segment names as soon as they are set rather than at
// Build time.
type Builder struct {
	loc Location
	err error
}

// NewBuilder returns a Builder with segment occurrence and repeat
// defaulted to 1, matching Parse's defaults.
func NewBuilder() *Builder {
	return &Builder{loc: Location{SegmentOccurrence: 1, Repeat: 1}}
}

// Segment sets the segment name. name must be exactly three ASCII
// alphanumeric characters; it is upper-cased.
func (b *Builder) Segment(name string) *Builder {
	if b.err != nil {
		return b
	}
	if len(name) != 3 || !isAlnumASCII(name) {
		b.err = &ParseError{Path: name, Cause: ErrInvalidSegmentName}
		return b
	}
	b.loc.Segment = strings.ToUpper(name)
	return b
}

// Occurrence sets the 1-based occurrence among same-named segments.
func (b *Builder) Occurrence(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 1 {
		b.err = &InvalidIndexError{Component: "segment occurrence", Value: n}
		return b
	}
	b.loc.SegmentOccurrence = n
	return b
}

// Field sets the 1-based field sequence number.
func (b *Builder) Field(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 1 {
		b.err = &InvalidIndexError{Component: "field", Value: n}
		return b
	}
	b.loc.Field = n
	return b
}

// Repeat sets the 1-based repeat index.
func (b *Builder) Repeat(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 1 {
		b.err = &InvalidIndexError{Component: "repeat", Value: n}
		return b
	}
	b.loc.Repeat = n
	return b
}

// Component sets the 1-based component index.
func (b *Builder) Component(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 1 {
		b.err = &InvalidIndexError{Component: "component", Value: n}
		return b
	}
	b.loc.Component = n
	return b
}

// SubComponent sets the 1-based subcomponent index.
func (b *Builder) SubComponent(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 1 {
		b.err = &InvalidIndexError{Component: "subcomponent", Value: n}
		return b
	}
	b.loc.SubComponent = n
	return b
}

// Build returns the constructed Location, or the first validation error
// encountered while building it.
func (b *Builder) Build() (*Location, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.loc.Segment == "" {
		return nil, ErrMissingSegment
	}
	loc := b.loc
	return &loc, nil
}

func isAlnumASCII(s string) bool {
	for _, r := range s {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}
