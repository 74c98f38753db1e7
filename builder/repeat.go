package builder

import "github.com/dshills/golevel7v2/hl7"

type repeatVariant int

const (
	repeatValue repeatVariant = iota
	repeatComponents
)

// Repeat is a RepeatBuilder: either a bare wire-form value, or a sparse,
// 1-based map of Components.
type Repeat struct {
	variant    repeatVariant
	value      string
	components map[int]*Component
}

// NewRepeatValue builds a Repeat that holds a single wire-form value
// with no component structure.
func NewRepeatValue(wireValue string) *Repeat {
	return &Repeat{variant: repeatValue, value: wireValue}
}

// IsContainer reports whether this repeat has component structure.
func (r *Repeat) IsContainer() bool {
	return r.variant == repeatComponents
}

// Raw returns the repeat's wire-form text, recomposing it from
// components if it is a container.
func (r *Repeat) Raw(seps hl7.Separators) string {
	return r.serialize(seps)
}

// Component returns a live, mutable handle to the component at the
// given 1-based index, promoting the repeat to a container as needed.
// Use PeekComponent for a read that never mutates.
func (r *Repeat) Component(index int) *Component {
	if index < 1 {
		return nil
	}
	r.ensureComponents()
	if r.components[index] == nil {
		r.components[index] = &Component{}
	}
	return r.components[index]
}

// PeekComponent returns the component at the given 1-based index
// without promoting or mutating the repeat. It returns nil if the
// repeat is a plain value (other than index 1) or the index is absent.
func (r *Repeat) PeekComponent(index int) *Component {
	if r.variant != repeatComponents {
		if index == 1 {
			return &Component{variant: componentValue, value: r.value}
		}
		return nil
	}
	return r.components[index]
}

// SetComponent sets the component at the given 1-based index to a plain
// value, promoting the repeat to a container if it was a bare value.
// decoded is encoded via seps before storage.
func (r *Repeat) SetComponent(seps hl7.Separators, index int, decoded string) {
	r.ensureComponents()
	r.components[index] = NewComponentValue(seps.Encode(decoded))
}

// SetComponentBuilder sets the component at the given 1-based index to
// an already-built Component (for example one with subcomponent
// structure), promoting the repeat to a container if needed.
func (r *Repeat) SetComponentBuilder(index int, c *Component) {
	r.ensureComponents()
	r.components[index] = c
}

func (r *Repeat) ensureComponents() {
	if r.variant == repeatValue {
		r.components = map[int]*Component{1: NewComponentValue(r.value)}
		r.variant = repeatComponents
		r.value = ""
		return
	}
	if r.components == nil {
		r.components = map[int]*Component{}
	}
}

func (r *Repeat) serialize(seps hl7.Separators) string {
	if r.variant == repeatValue {
		return r.value
	}
	max := 0
	for k := range r.components {
		if k > max {
			max = k
		}
	}
	parts := make([]string, max)
	for i := 1; i <= max; i++ {
		if c := r.components[i]; c != nil {
			parts[i-1] = c.serialize(seps)
		}
	}
	return joinTrimTrailing(parts, seps.Component)
}
