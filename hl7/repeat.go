package hl7

// Repeat is a single instance of a repeating field: an ordered sequence of
// one or more Components, separated by the component separator.
type Repeat struct {
	text       string
	span       span
	components []*Component
}

// Raw returns the exact substring of the original input this repeat spans.
func (r *Repeat) Raw() string {
	return r.span.slice(r.text)
}

// Value returns the repeat's text with escape sequences decoded.
func (r *Repeat) Value(seps Separators) string {
	return seps.Decode(r.Raw())
}

// Component returns the component at the given 1-based index. Returns
// false if the index is out of range.
func (r *Repeat) Component(index int) (*Component, bool) {
	if index < 1 || index > len(r.components) {
		return nil, false
	}
	return r.components[index-1], true
}

// Components returns every component in this repeat, in order. A repeat
// always has at least one.
func (r *Repeat) Components() []*Component {
	return r.components
}

// ComponentCount returns the number of components in this repeat.
func (r *Repeat) ComponentCount() int {
	return len(r.components)
}

// Start returns the 0-based byte offset where this node begins.
func (r *Repeat) Start() int { return r.span.start }

// End returns the 0-based, exclusive byte offset where this node ends.
func (r *Repeat) End() int { return r.span.end }
