package cursor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/golevel7v2/hl7"
)

// Cursor describes the deepest structural path containing a byte offset.
// Fields below the segment are present only as deep as the tree actually
// goes at that offset: a cursor landing on a bare segment name with no
// fields leaves Field nil.
type Cursor struct {
	Segment           *hl7.Segment
	SegmentOccurrence int

	Field    *hl7.Field
	FieldSeq int

	// Repeat is set whenever the cursor resolves into a repeat, but its
	// index is only meaningful to display (bracketed) when the field has
	// more than one repeat.
	Repeat      *hl7.Repeat
	RepeatIndex int

	Component      *hl7.Component
	ComponentIndex int

	SubComponent      *hl7.SubComponent
	SubComponentIndex int
}

// String renders the cursor as a compact path, e.g. "IN1.5.3.1" or, when
// the field has multiple repeats, "AL1.5[2].1.1".
func (c Cursor) String() string {
	if c.Segment == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(c.Segment.Name())
	if c.Field == nil {
		return b.String()
	}
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(c.FieldSeq))
	if c.Repeat != nil && c.Field.RepeatCount() > 1 {
		fmt.Fprintf(&b, "[%d]", c.RepeatIndex)
	}
	if c.Component == nil {
		return b.String()
	}
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(c.ComponentIndex))
	if c.SubComponent == nil {
		return b.String()
	}
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(c.SubComponentIndex))
	return b.String()
}

// Locate finds the deepest structural node in msg containing the byte
// offset k. Every interval in the search is closed on both ends: a
// cursor sitting exactly on a separator or segment terminator belongs to
// the node that precedes it, and an empty-range node claims k when k
// equals its single boundary point. An empty field is reported at field
// level only: Repeat, Component and SubComponent stay nil. Locate never
// panics; if k falls
// outside every segment (for example, inside a multi-byte terminator gap
// in lenient mode) it returns ok == false.
func Locate(msg *hl7.Message, k int) (Cursor, bool) {
	var cur Cursor

	for _, seg := range msg.Segments() {
		if k < seg.Start() || k > seg.End() {
			continue
		}
		cur.Segment = seg
		cur.SegmentOccurrence = seg.Occurrence()

		for _, f := range seg.Fields() {
			if k < f.Start() || k > f.End() {
				continue
			}
			cur.Field = f
			cur.FieldSeq = f.SeqNum()
			if f.Start() == f.End() {
				break
			}

			for ri, r := range f.Repeats() {
				if k < r.Start() || k > r.End() {
					continue
				}
				cur.Repeat = r
				cur.RepeatIndex = ri + 1

				for ci, c := range r.Components() {
					if k < c.Start() || k > c.End() {
						continue
					}
					cur.Component = c
					cur.ComponentIndex = ci + 1

					for si, sc := range c.SubComponents() {
						if k < sc.Start() || k > sc.End() {
							continue
						}
						cur.SubComponent = sc
						cur.SubComponentIndex = si + 1
						break
					}
					break
				}
				break
			}
			break
		}
		break
	}

	return cur, cur.Segment != nil
}
