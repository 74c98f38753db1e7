package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dshills/golevel7v2/hl7"
)

// locationPattern anchors the whole grammar in one regex, same approach
// as the teacher's location parser: segment name, optional bracketed
// occurrence, then an optional field/repeat/component/subcomponent tail.
var locationPattern = regexp.MustCompile(
	`^([A-Za-z0-9]{3})(?:\[(\d+)\])?(?:[.\- ](\d+)(?:\[(\d+)\])?(?:[.\- ](\d+)(?:[.\- ](\d+))?)?)?$`,
)

// Location is a fully resolved location query: a segment name, its
// occurrence among same-named segments, and an optional field/repeat/
// component/subcomponent path into it. A zero Field means the query
// addresses the segment itself.
type Location struct {
	Segment           string
	SegmentOccurrence int
	Field             int
	Repeat            int
	Component         int
	SubComponent      int
}

// Parse parses a location path string. Segment names are upper-cased.
// A component or subcomponent fragment is ignored unless the fragment it
// depends on is present; a repeat defaults to 1 when a component or
// subcomponent is given without one.
func Parse(path string) (*Location, error) {
	m := locationPattern.FindStringSubmatch(path)
	if m == nil {
		return nil, &ParseError{Path: path, Cause: ErrMalformedPath}
	}

	loc := &Location{
		Segment:           strings.ToUpper(m[1]),
		SegmentOccurrence: 1,
		Repeat:            1,
	}

	if m[2] != "" {
		n, _ := strconv.Atoi(m[2])
		if n == 0 {
			return nil, &InvalidIndexError{Component: "segment occurrence", Value: n}
		}
		loc.SegmentOccurrence = n
	}
	if m[3] != "" {
		n, _ := strconv.Atoi(m[3])
		if n == 0 {
			return nil, &InvalidIndexError{Component: "field", Value: n}
		}
		loc.Field = n
	}
	if m[4] != "" {
		n, _ := strconv.Atoi(m[4])
		if n == 0 {
			return nil, &InvalidIndexError{Component: "repeat", Value: n}
		}
		loc.Repeat = n
	}
	if m[5] != "" {
		n, _ := strconv.Atoi(m[5])
		if n == 0 {
			return nil, &InvalidIndexError{Component: "component", Value: n}
		}
		loc.Component = n
	}
	if m[6] != "" {
		n, _ := strconv.Atoi(m[6])
		if n == 0 {
			return nil, &InvalidIndexError{Component: "subcomponent", Value: n}
		}
		loc.SubComponent = n
	}

	return loc, nil
}

// String renders the location back to its canonical path form.
func (l *Location) String() string {
	var b strings.Builder
	b.WriteString(l.Segment)
	if l.SegmentOccurrence > 1 {
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(l.SegmentOccurrence))
		b.WriteByte(']')
	}
	if l.Field == 0 {
		return b.String()
	}
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(l.Field))
	if l.Repeat > 1 {
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(l.Repeat))
		b.WriteByte(']')
	}
	if l.Component == 0 {
		return b.String()
	}
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(l.Component))
	if l.SubComponent == 0 {
		return b.String()
	}
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(l.SubComponent))
	return b.String()
}

// ranged is satisfied by every hl7 structural node.
type ranged interface {
	Start() int
	End() int
}

// rawer is satisfied by every hl7 structural node except Message itself.
type rawer interface {
	Raw() string
}

// Eval evaluates the location against msg and returns the deepest
// matching node. The concrete type is one of *hl7.Segment, *hl7.Field,
// *hl7.Repeat, *hl7.Component, or *hl7.SubComponent depending on how far
// the path descends. Eval returns ok == false if any step of the path
// does not exist in msg.
func (l *Location) Eval(msg *hl7.Message) (any, bool) {
	seg, ok := msg.SegmentN(l.Segment, l.SegmentOccurrence)
	if !ok {
		return nil, false
	}
	if l.Field == 0 {
		return seg, true
	}
	f, ok := seg.Field(l.Field)
	if !ok {
		return nil, false
	}
	repeat := l.Repeat
	if repeat == 0 {
		repeat = 1
	}
	r, ok := f.Repeat(repeat)
	if !ok {
		return nil, false
	}
	if l.Component == 0 {
		return r, true
	}
	c, ok := r.Component(l.Component)
	if !ok {
		return nil, false
	}
	if l.SubComponent == 0 {
		return c, true
	}
	sc, ok := c.SubComponent(l.SubComponent)
	if !ok {
		return nil, false
	}
	return sc, true
}

// Range evaluates the location against msg and returns the byte range
// of the node it resolves to.
func (l *Location) Range(msg *hl7.Message) (start, end int, ok bool) {
	node, ok := l.Eval(msg)
	if !ok {
		return 0, 0, false
	}
	r := node.(ranged)
	return r.Start(), r.End(), true
}

// Raw evaluates the location against msg and returns the undecoded text
// of the node it resolves to.
func (l *Location) Raw(msg *hl7.Message) (string, bool) {
	node, ok := l.Eval(msg)
	if !ok {
		return "", false
	}
	if seg, isSeg := node.(*hl7.Segment); isSeg {
		return seg.Raw(), true
	}
	r := node.(rawer)
	return r.Raw(), true
}
