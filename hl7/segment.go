package hl7

import "strings"

// Segment is a three-character alphanumeric name followed by an ordered
// sequence of Fields. MSH is special: its first two fields are
// synthesized from the MSH preamble rather than split out of a field
// list.
type Segment struct {
	text       string
	span       span
	name       string
	fields     []*Field
	occurrence int // 1-based occurrence among segments sharing this name
}

// Name returns the segment's three-character name, exactly as it appears
// in the input (case preserved).
func (s *Segment) Name() string {
	return s.name
}

// Occurrence returns the 1-based index of this segment among all segments
// in the message sharing its name (case-insensitively).
func (s *Segment) Occurrence() int {
	return s.occurrence
}

// Raw returns the exact substring of the original input this segment
// spans (not including its terminator).
func (s *Segment) Raw() string {
	return s.span.slice(s.text)
}

// Field returns the field at the given 1-based sequence number. Returns
// false if no field exists at that position.
func (s *Segment) Field(seq int) (*Field, bool) {
	if seq < 1 || seq > len(s.fields) {
		return nil, false
	}
	return s.fields[seq-1], true
}

// Fields returns every field in this segment, in order.
func (s *Segment) Fields() []*Field {
	return s.fields
}

// FieldCount returns the number of fields in this segment.
func (s *Segment) FieldCount() int {
	return len(s.fields)
}

// Start returns the 0-based byte offset where this node begins.
func (s *Segment) Start() int { return s.span.start }

// End returns the 0-based, exclusive byte offset where this node ends
// (not including the segment terminator).
func (s *Segment) End() int { return s.span.end }

func (s *Segment) nameUpper() string {
	return strings.ToUpper(s.name)
}
