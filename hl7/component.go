package hl7

// Component is an ordered sequence of one or more SubComponents, separated
// by the subcomponent separator.
type Component struct {
	text          string
	span          span
	subcomponents []*SubComponent
}

// Raw returns the exact substring of the original input this component
// spans.
func (c *Component) Raw() string {
	return c.span.slice(c.text)
}

// Value returns the component's text with escape sequences decoded.
func (c *Component) Value(seps Separators) string {
	return seps.Decode(c.Raw())
}

// SubComponent returns the subcomponent at the given 1-based index.
// Returns false if the index is out of range.
func (c *Component) SubComponent(index int) (*SubComponent, bool) {
	if index < 1 || index > len(c.subcomponents) {
		return nil, false
	}
	return c.subcomponents[index-1], true
}

// SubComponents returns every subcomponent in this component, in order.
// A component always has at least one.
func (c *Component) SubComponents() []*SubComponent {
	return c.subcomponents
}

// SubComponentCount returns the number of subcomponents in this component.
func (c *Component) SubComponentCount() int {
	return len(c.subcomponents)
}

// Start returns the 0-based byte offset where this node begins.
func (c *Component) Start() int { return c.span.start }

// End returns the 0-based, exclusive byte offset where this node ends.
func (c *Component) End() int { return c.span.end }
