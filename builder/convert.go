package builder

import "github.com/dshills/golevel7v2/hl7"

// MessageFrom converts a parsed hl7.Message into a mutable builder
// Message. Every field, repeat, and component collapses to its Value
// variant when trivial (a field with exactly one repeat, whose sole
// component has exactly one subcomponent) and promotes to a Container
// variant otherwise, bubbling the promotion up through every enclosing
// level so the variants nest consistently.
func MessageFrom(msg *hl7.Message) *Message {
	b := &Message{separators: msg.Separators()}
	for _, seg := range msg.Segments() {
		b.segments = append(b.segments, segmentFrom(seg))
	}
	return b
}

func segmentFrom(seg *hl7.Segment) *Segment {
	s := &Segment{name: seg.Name()}
	for _, f := range seg.Fields() {
		field := fieldFrom(f)
		field.seqNum = f.SeqNum()
		s.fields = append(s.fields, field)
	}
	return s
}

func fieldFrom(f *hl7.Field) *Field {
	if f.RepeatCount() == 1 {
		r := f.Repeats()[0]
		if r.ComponentCount() == 1 {
			c := r.Components()[0]
			if c.SubComponentCount() == 1 {
				return NewFieldValue(f.Raw())
			}
			comp := componentWithSubcomponents(c)
			rep := &Repeat{variant: repeatComponents, components: map[int]*Component{1: comp}}
			return &Field{variant: fieldRepeats, repeats: []*Repeat{rep}}
		}
		rep := repeatWithComponents(r)
		return &Field{variant: fieldRepeats, repeats: []*Repeat{rep}}
	}

	repeats := make([]*Repeat, f.RepeatCount())
	for i, r := range f.Repeats() {
		repeats[i] = repeatFrom(r)
	}
	return &Field{variant: fieldRepeats, repeats: repeats}
}

// repeatFrom converts a repeat in a field that is already known to be a
// container (more than one repeat), so this repeat may still itself
// collapse to a Value if its own structure is trivial.
func repeatFrom(r *hl7.Repeat) *Repeat {
	if r.ComponentCount() == 1 {
		c := r.Components()[0]
		if c.SubComponentCount() == 1 {
			return NewRepeatValue(r.Raw())
		}
		comp := componentWithSubcomponents(c)
		return &Repeat{variant: repeatComponents, components: map[int]*Component{1: comp}}
	}
	return repeatWithComponents(r)
}

// repeatWithComponents converts a repeat known to have more than one
// component into a Components container.
func repeatWithComponents(r *hl7.Repeat) *Repeat {
	comps := make(map[int]*Component, r.ComponentCount())
	for i, c := range r.Components() {
		comps[i+1] = componentFrom(c)
	}
	return &Repeat{variant: repeatComponents, components: comps}
}

// componentFrom converts a component that may still collapse to a
// Value if it has exactly one subcomponent.
func componentFrom(c *hl7.Component) *Component {
	if c.SubComponentCount() == 1 {
		return NewComponentValue(c.Raw())
	}
	return componentWithSubcomponents(c)
}

// componentWithSubcomponents converts a component known to have more
// than one subcomponent into a Subcomponents container.
func componentWithSubcomponents(c *hl7.Component) *Component {
	subs := make(map[int]string, c.SubComponentCount())
	for i, sc := range c.SubComponents() {
		subs[i+1] = sc.Raw()
	}
	return &Component{variant: componentSubcomponents, subcomponents: subs}
}
