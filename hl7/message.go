package hl7

import "strings"

// Message is a parsed HL7 v2 message: an ordered sequence of Segments
// together with the Separators discovered from its MSH preamble. A
// Message is immutable and borrows its backing text for the lifetime of
// every node in its tree; nothing in this package ever copies the input.
type Message struct {
	text     string
	span     span
	seps     Separators
	segments []*Segment
	byName   map[string][]*Segment
}

// Raw returns the exact substring of the original input spanned by this
// message (every segment plus the terminators between them).
func (m *Message) Raw() string {
	return m.span.slice(m.text)
}

// Text returns the full original input the message was parsed from.
func (m *Message) Text() string {
	return m.text
}

// Separators returns the five separator characters discovered from the
// message's MSH preamble.
func (m *Message) Separators() Separators {
	return m.seps
}

// Segments returns every segment in the message, in order.
func (m *Message) Segments() []*Segment {
	return m.segments
}

// SegmentCount returns the total number of segments in the message.
func (m *Message) SegmentCount() int {
	return len(m.segments)
}

// Segment returns the first segment with the given name (case-insensitive).
// Returns false if no such segment exists.
func (m *Message) Segment(name string) (*Segment, bool) {
	return m.SegmentN(name, 1)
}

// SegmentN returns the nth (1-based) segment with the given name
// (case-insensitive). Returns false if fewer than n segments share that
// name.
func (m *Message) SegmentN(name string, n int) (*Segment, bool) {
	if n < 1 {
		return nil, false
	}
	group := m.byName[strings.ToUpper(name)]
	if n > len(group) {
		return nil, false
	}
	return group[n-1], true
}

// SegmentsNamed returns every segment with the given name (case-insensitive),
// in order.
func (m *Message) SegmentsNamed(name string) []*Segment {
	return m.byName[strings.ToUpper(name)]
}

// SegmentOccurrences returns the number of segments sharing the given name
// (case-insensitive).
func (m *Message) SegmentOccurrences(name string) int {
	return len(m.byName[strings.ToUpper(name)])
}
