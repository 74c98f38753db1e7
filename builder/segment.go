package builder

import (
	"strings"

	"github.com/dshills/golevel7v2/hl7"
)

// Segment is the mutable counterpart to hl7.Segment: a name and a
// dense, 1-based list of Fields (a nil entry is an empty field).
type Segment struct {
	name   string
	fields []*Field
}

// NewSegment builds an empty segment with the given three-character
// name.
func NewSegment(name string) *Segment {
	return &Segment{name: name}
}

// Name returns the segment's name.
func (s *Segment) Name() string {
	return s.name
}

// Field returns a live, mutable handle to the field at the given
// 1-based sequence number, growing the segment's field list as needed.
// Use PeekField for a read that never mutates.
func (s *Segment) Field(seq int) *Field {
	if seq < 1 {
		return nil
	}
	s.growFields(seq)
	if s.fields[seq-1] == nil {
		s.fields[seq-1] = &Field{seqNum: seq}
	}
	return s.fields[seq-1]
}

// PeekField returns the field at the given 1-based sequence number
// without growing or mutating the segment. It returns nil if absent.
func (s *Segment) PeekField(seq int) *Field {
	if seq < 1 || seq > len(s.fields) {
		return nil
	}
	return s.fields[seq-1]
}

// FieldCount returns the number of fields materialized in this segment.
func (s *Segment) FieldCount() int {
	return len(s.fields)
}

// SetField sets the field at the given 1-based sequence number to a
// plain value, growing the field list as needed. decoded is encoded via
// seps before storage.
//
// MSH-1 and MSH-2 are special-cased to store the given text verbatim:
// they are the field separator and encoding-characters string
// themselves, not content that could collide with a separator, so
// running them through Encode would corrupt them (e.g. "^~\&" is all
// separator runes).
func (s *Segment) SetField(seps hl7.Separators, seq int, decoded string) {
	s.growFields(seq)
	if strings.EqualFold(s.name, "MSH") && (seq == 1 || seq == 2) {
		s.fields[seq-1] = NewFieldValue(decoded)
		return
	}
	s.fields[seq-1] = NewFieldValue(seps.Encode(decoded))
}

// SetFieldBuilder sets the field at the given 1-based sequence number to
// an already-built Field, growing the field list as needed.
func (s *Segment) SetFieldBuilder(seq int, f *Field) {
	s.growFields(seq)
	f.seqNum = seq
	s.fields[seq-1] = f
}

func (s *Segment) growFields(n int) {
	for len(s.fields) < n {
		s.fields = append(s.fields, nil)
	}
}

// serialize renders the segment to wire text, without a trailing
// terminator. MSH is special-cased: its first two fields are the
// literal separator character and encoding-characters string, emitted
// with no separator preceding or between them.
func (s *Segment) serialize(seps hl7.Separators) string {
	var b strings.Builder
	b.WriteString(s.name)

	if strings.EqualFold(s.name, "MSH") && len(s.fields) >= 2 {
		writeField(&b, s.fields[0], seps)
		writeField(&b, s.fields[1], seps)
		for i := 2; i < len(s.fields); i++ {
			b.WriteRune(seps.Field)
			writeField(&b, s.fields[i], seps)
		}
		return b.String()
	}

	for _, f := range s.fields {
		b.WriteRune(seps.Field)
		writeField(&b, f, seps)
	}
	return b.String()
}

func writeField(b *strings.Builder, f *Field, seps hl7.Separators) {
	if f == nil {
		return
	}
	b.WriteString(f.serialize(seps))
}
