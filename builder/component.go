package builder

import "github.com/dshills/golevel7v2/hl7"

type componentVariant int

const (
	componentValue componentVariant = iota
	componentSubcomponents
)

// Component is a ComponentBuilder: either a bare wire-form value, or a
// sparse, 1-based map of subcomponent values.
type Component struct {
	variant       componentVariant
	value         string
	subcomponents map[int]string
}

// NewComponentValue builds a Component that holds a single wire-form
// value with no subcomponent structure.
func NewComponentValue(wireValue string) *Component {
	return &Component{variant: componentValue, value: wireValue}
}

// IsContainer reports whether this component has subcomponent structure.
func (c *Component) IsContainer() bool {
	return c.variant == componentSubcomponents
}

// Raw returns the component's wire-form text, recomposing it from
// subcomponents if it is a container.
func (c *Component) Raw(seps hl7.Separators) string {
	return c.serialize(seps)
}

// SubComponent returns the wire-form value at the given 1-based index,
// or "" if absent.
func (c *Component) SubComponent(index int) string {
	if c.variant != componentSubcomponents {
		if index == 1 {
			return c.value
		}
		return ""
	}
	return c.subcomponents[index]
}

// SetSubComponent sets the subcomponent at the given 1-based index to
// decoded, promoting the component to a container if it was a plain
// value. decoded is encoded via seps before storage.
func (c *Component) SetSubComponent(seps hl7.Separators, index int, decoded string) {
	c.ensureSubcomponents()
	c.subcomponents[index] = seps.Encode(decoded)
}

// SetRawSubComponent is like SetSubComponent but stores wire already
// pre-encoded, without re-encoding it.
func (c *Component) SetRawSubComponent(index int, wire string) {
	c.ensureSubcomponents()
	c.subcomponents[index] = wire
}

func (c *Component) ensureSubcomponents() {
	if c.variant == componentValue {
		c.subcomponents = map[int]string{1: c.value}
		c.variant = componentSubcomponents
		c.value = ""
		return
	}
	if c.subcomponents == nil {
		c.subcomponents = map[int]string{}
	}
}

func (c *Component) serialize(seps hl7.Separators) string {
	if c.variant == componentValue {
		return c.value
	}
	max := 0
	for k := range c.subcomponents {
		if k > max {
			max = k
		}
	}
	parts := make([]string, max)
	for i := 1; i <= max; i++ {
		parts[i-1] = c.subcomponents[i]
	}
	return joinTrimTrailing(parts, seps.SubComponent)
}
