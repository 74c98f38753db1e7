package builder

import (
	"runtime"
	"strings"

	"github.com/dshills/golevel7v2/hl7"
)

// Message is the mutable counterpart to hl7.Message: a Separators value
// and an ordered list of Segments.
type Message struct {
	separators hl7.Separators
	segments   []*Segment
}

// NewMessage builds an empty message using seps as its separator set.
func NewMessage(seps hl7.Separators) *Message {
	return &Message{separators: seps}
}

// Separators returns the message's separator set.
func (m *Message) Separators() hl7.Separators {
	return m.separators
}

// Segments returns every segment in the message, in order.
func (m *Message) Segments() []*Segment {
	return m.segments
}

// Segment returns the nth (1-based) segment with the given name
// (case-insensitive), or nil if fewer than n such segments exist.
func (m *Message) Segment(name string, n int) *Segment {
	if n < 1 {
		return nil
	}
	count := 0
	for _, s := range m.segments {
		if strings.EqualFold(s.Name(), name) {
			count++
			if count == n {
				return s
			}
		}
	}
	return nil
}

// SegmentCount returns the number of segments sharing name
// (case-insensitive).
func (m *Message) SegmentCount(name string) int {
	count := 0
	for _, s := range m.segments {
		if strings.EqualFold(s.Name(), name) {
			count++
		}
	}
	return count
}

// AddSegment appends a new, empty segment with the given name to the
// end of the message and returns it.
func (m *Message) AddSegment(name string) *Segment {
	s := NewSegment(name)
	m.segments = append(m.segments, s)
	return s
}

// RemoveSegment removes the segment at the given 0-based position. It is
// a no-op if pos is out of range.
func (m *Message) RemoveSegment(pos int) {
	if pos < 0 || pos >= len(m.segments) {
		return
	}
	m.segments = append(m.segments[:pos], m.segments[pos+1:]...)
}

// RemoveSegmentNamed removes the nth (1-based) segment with the given
// name (case-insensitive). It is a no-op if fewer than n such segments
// exist.
func (m *Message) RemoveSegmentNamed(name string, n int) {
	if n < 1 {
		return
	}
	count := 0
	for i, s := range m.segments {
		if strings.EqualFold(s.Name(), name) {
			count++
			if count == n {
				m.RemoveSegment(i)
				return
			}
		}
	}
}

// IsEmpty reports whether the message has no segments.
func (m *Message) IsEmpty() bool {
	return len(m.segments) == 0
}

// Clear removes every segment, leaving the separators untouched.
func (m *Message) Clear() {
	m.segments = nil
}

// SetSeparators replaces the message's separator set. Existing segment
// content is unaffected; it is reinterpreted under seps the next time it
// is serialized.
func (m *Message) SetSeparators(seps hl7.Separators) {
	m.separators = seps
}

// SetField is a convenience that locates segment/occurrence/seq and sets
// its value, encoding decoded via the message's separators. It is a
// no-op error if the segment does not exist; callers that need a new
// segment should use AddSegment first.
func (m *Message) SetField(segName string, occurrence, seq int, decoded string) bool {
	s := m.Segment(segName, occurrence)
	if s == nil {
		return false
	}
	s.SetField(m.separators, seq, decoded)
	return true
}

// serialize renders every segment joined by terminator, with no
// trailing terminator after the last segment.
func (m *Message) serialize(terminator string) string {
	var b strings.Builder
	for i, s := range m.segments {
		if i > 0 {
			b.WriteString(terminator)
		}
		b.WriteString(s.serialize(m.separators))
	}
	return b.String()
}

// DisplayWithSegmentSeparator serializes the message using the given
// segment terminator, explicitly.
func (m *Message) DisplayWithSegmentSeparator(terminator string) string {
	return m.serialize(terminator)
}

// DisplayWithNewlines serializes the message using the platform default
// segment terminator: CRLF on Windows, CR everywhere else.
func (m *Message) DisplayWithNewlines() string {
	terminator := "\r"
	if runtime.GOOS == "windows" {
		terminator = "\r\n"
	}
	return m.serialize(terminator)
}
