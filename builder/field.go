package builder

import "github.com/dshills/golevel7v2/hl7"

type fieldVariant int

const (
	fieldValue fieldVariant = iota
	fieldRepeats
)

// Field is a FieldBuilder: either a bare wire-form value, or a dense,
// 1-based list of Repeats (a nil entry is an empty repeat).
type Field struct {
	variant fieldVariant
	value   string
	repeats []*Repeat
	// seqNum is the 1-based field sequence number within its segment, for
	// informational purposes only (serialization uses position, not this).
	seqNum int
}

// NewFieldValue builds a Field that holds a single wire-form value with
// no repeat structure.
func NewFieldValue(wireValue string) *Field {
	return &Field{variant: fieldValue, value: wireValue}
}

// SeqNum returns the field's 1-based sequence number, if this Field was
// obtained from a Segment (0 otherwise).
func (f *Field) SeqNum() int {
	return f.seqNum
}

// IsContainer reports whether this field has repeat structure.
func (f *Field) IsContainer() bool {
	return f.variant == fieldRepeats
}

// Raw returns the field's wire-form text, recomposing it from repeats if
// it is a container.
func (f *Field) Raw(seps hl7.Separators) string {
	return f.serialize(seps)
}

// Value returns the field's decoded text.
func (f *Field) Value(seps hl7.Separators) string {
	return seps.Decode(f.serialize(seps))
}

// Repeat returns a live, mutable handle to the repeat at the given
// 1-based index, promoting the field to a container (and growing it)
// as needed. Use PeekRepeat for a read that never mutates.
func (f *Field) Repeat(index int) *Repeat {
	if index < 1 {
		return nil
	}
	f.ensureRepeats()
	f.growRepeats(index)
	if f.repeats[index-1] == nil {
		f.repeats[index-1] = &Repeat{}
	}
	return f.repeats[index-1]
}

// PeekRepeat returns the repeat at the given 1-based index without
// promoting or mutating the field. It returns nil if the field is a
// plain value (other than index 1, which is the whole value) or the
// index is out of range.
func (f *Field) PeekRepeat(index int) *Repeat {
	if f.variant != fieldRepeats {
		if index == 1 {
			return &Repeat{variant: repeatValue, value: f.value}
		}
		return nil
	}
	if index < 1 || index > len(f.repeats) {
		return nil
	}
	return f.repeats[index-1]
}

// RepeatCount returns the number of repeats materialized in this field.
// A plain-value field reports 1.
func (f *Field) RepeatCount() int {
	if f.variant != fieldRepeats {
		return 1
	}
	return len(f.repeats)
}

// SetValue replaces the field wholesale with a single wire-form value,
// discarding any repeat structure. decoded is encoded via seps first.
func (f *Field) SetValue(seps hl7.Separators, decoded string) {
	f.variant = fieldValue
	f.value = seps.Encode(decoded)
	f.repeats = nil
}

// SetRepeat sets the repeat at the given 1-based index to a plain value,
// promoting the field to a container if it was a bare value. decoded is
// encoded via seps before storage.
func (f *Field) SetRepeat(seps hl7.Separators, index int, decoded string) {
	f.ensureRepeats()
	f.growRepeats(index)
	f.repeats[index-1] = NewRepeatValue(seps.Encode(decoded))
}

// SetRepeatBuilder sets the repeat at the given 1-based index to an
// already-built Repeat, promoting the field to a container if needed.
func (f *Field) SetRepeatBuilder(index int, r *Repeat) {
	f.ensureRepeats()
	f.growRepeats(index)
	f.repeats[index-1] = r
}

func (f *Field) ensureRepeats() {
	if f.variant == fieldValue {
		f.repeats = []*Repeat{NewRepeatValue(f.value)}
		f.variant = fieldRepeats
		f.value = ""
	}
}

func (f *Field) growRepeats(n int) {
	for len(f.repeats) < n {
		f.repeats = append(f.repeats, nil)
	}
}

func (f *Field) serialize(seps hl7.Separators) string {
	if f.variant == fieldValue {
		return f.value
	}
	parts := make([]string, len(f.repeats))
	for i, r := range f.repeats {
		if r != nil {
			parts[i] = r.serialize(seps)
		}
	}
	return joinTrimTrailing(parts, seps.Repetition)
}

// joinTrimTrailing joins parts with sep, dropping trailing empty parts
// (a trailing empty slot in a container is not emitted).
func joinTrimTrailing(parts []string, sep rune) string {
	end := len(parts)
	for end > 0 && parts[end-1] == "" {
		end--
	}
	joined := ""
	for i := 0; i < end; i++ {
		if i > 0 {
			joined += string(sep)
		}
		joined += parts[i]
	}
	return joined
}
