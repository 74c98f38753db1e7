package hl7

// Field is an ordered sequence of one or more Repeats, separated by the
// repetition separator. A field with no repetition separator present
// still has exactly one Repeat, which shares the field's range.
type Field struct {
	text    string
	span    span
	seq     int
	repeats []*Repeat
}

// SeqNum returns the field's 1-based sequence number within its segment.
// For MSH, SeqNum 1 and 2 are the synthesized field-separator and
// encoding-characters fields.
func (f *Field) SeqNum() int {
	return f.seq
}

// Raw returns the exact substring of the original input this field spans.
func (f *Field) Raw() string {
	return f.span.slice(f.text)
}

// Value returns the field's text with escape sequences decoded. If the
// field has more than one repeat, the decoded text includes the
// repetition separators joining them.
func (f *Field) Value(seps Separators) string {
	return seps.Decode(f.Raw())
}

// Repeat returns the repeat at the given 1-based index. Returns false if
// the index is out of range.
func (f *Field) Repeat(index int) (*Repeat, bool) {
	if index < 1 || index > len(f.repeats) {
		return nil, false
	}
	return f.repeats[index-1], true
}

// Repeats returns every repeat in this field, in order. A field always has
// at least one.
func (f *Field) Repeats() []*Repeat {
	return f.repeats
}

// RepeatCount returns the number of repeats in this field.
func (f *Field) RepeatCount() int {
	return len(f.repeats)
}

// Start returns the 0-based byte offset where this node begins.
func (f *Field) Start() int { return f.span.start }

// End returns the 0-based, exclusive byte offset where this node ends.
func (f *Field) End() int { return f.span.end }
