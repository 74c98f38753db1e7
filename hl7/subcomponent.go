package hl7

// SubComponent is the atomic, leaf-level value in the message tree. It is
// never further divided; its raw text has not had escape sequences
// resolved.
type SubComponent struct {
	text string
	span span
}

// Raw returns the exact substring of the original input this subcomponent
// spans, escape sequences unresolved.
func (sc *SubComponent) Raw() string {
	return sc.span.slice(sc.text)
}

// Value returns the subcomponent's text with escape sequences decoded
// according to seps.
func (sc *SubComponent) Value(seps Separators) string {
	return seps.Decode(sc.Raw())
}

// Start returns the 0-based byte offset where this node begins in the
// original input.
func (sc *SubComponent) Start() int { return sc.span.start }

// End returns the 0-based, exclusive byte offset where this node ends in
// the original input.
func (sc *SubComponent) End() int { return sc.span.end }
