package hl7

import (
	"strings"
	"unicode/utf8"
)

// parseConfig holds the options a ParseMessage call is customized with.
type parseConfig struct {
	lenient bool
}

// ParseOption customizes ParseMessage.
type ParseOption func(*parseConfig)

// WithLenientTerminators accepts CR, LF, or CRLF (in any mixture) as
// segment terminators. This is the default.
func WithLenientTerminators() ParseOption {
	return func(c *parseConfig) { c.lenient = true }
}

// WithStrictTerminators accepts only CR as a segment terminator, per the
// HL7 v2.x wire format. Input containing a bare LF is treated as data
// belonging to the segment it appears in, not a boundary.
func WithStrictTerminators() ParseOption {
	return func(c *parseConfig) { c.lenient = false }
}

// ParseMessage parses raw HL7 v2.x text into a Message. The returned
// Message borrows text for the lifetime of every node in its tree; the
// caller must not mutate text afterward.
//
// Segment terminators are lenient by default: CR, LF, and CRLF are all
// accepted and may be mixed within a single message. Use
// WithStrictTerminators to require CR only.
func ParseMessage(text string, opts ...ParseOption) (*Message, error) {
	if len(text) == 0 {
		return nil, ErrEmptyMessage
	}
	cfg := parseConfig{lenient: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	seps, err := ParseSeparators(text)
	if err != nil {
		if err == ErrNotMSHPreamble {
			return nil, ErrMissingMSH
		}
		return nil, err
	}

	segSpans := splitSegments(text, cfg.lenient)
	if len(segSpans) == 0 {
		return nil, ErrEmptyMessage
	}
	if !strings.EqualFold(segmentName(text, segSpans[0]), "MSH") {
		return nil, ErrMissingMSH
	}

	segments := make([]*Segment, 0, len(segSpans))
	byName := make(map[string][]*Segment, len(segSpans))
	for i, sp := range segSpans {
		name := strings.ToUpper(segmentName(text, sp))
		occ := len(byName[name]) + 1

		var seg *Segment
		var perr error
		if i == 0 {
			seg, perr = parseMSHSegment(text, sp, seps, occ)
		} else {
			seg, perr = parseRegularSegment(text, sp, seps, occ)
		}
		if perr != nil {
			if pe, ok := perr.(*ParseError); ok {
				pe.Line = i + 1
				pe.Column = pe.Position - sp.start + 1
			}
			return nil, perr
		}
		segments = append(segments, seg)
		byName[name] = append(byName[name], seg)
	}

	return &Message{
		text:     text,
		span:     span{segSpans[0].start, segSpans[len(segSpans)-1].end},
		seps:     seps,
		segments: segments,
		byName:   byName,
	}, nil
}

// segmentName returns the (possibly short) leading name slice of a
// segment span, without validating its length.
func segmentName(text string, sp span) string {
	end := sp.start + 3
	if end > sp.end {
		end = sp.end
	}
	return text[sp.start:end]
}

// splitSegments splits text into segment spans on CR (strict) or on CR,
// LF, or CRLF in any mixture (lenient). Consecutive terminators, and a
// terminator at the very end of the input, never produce an empty
// trailing segment.
func splitSegments(text string, lenient bool) []span {
	var spans []span
	start := 0
	i := 0
	n := len(text)
	for i < n {
		c := text[i]
		switch {
		case c == '\r':
			if i > start {
				spans = append(spans, span{start, i})
			}
			i++
			if lenient && i < n && text[i] == '\n' {
				i++
			}
			start = i
		case lenient && c == '\n':
			if i > start {
				spans = append(spans, span{start, i})
			}
			i++
			start = i
		default:
			i++
		}
	}
	if i > start {
		spans = append(spans, span{start, i})
	}
	return spans
}

// parseMSHSegment builds the MSH segment. Its first two fields are
// synthesized from the preamble rather than split out of a field list:
// MSH-1 is the literal field separator character, MSH-2 is the four
// encoding characters. Remaining fields, if any, are split normally.
func parseMSHSegment(text string, sp span, seps Separators, occurrence int) (*Segment, error) {
	if sp.end-sp.start < 8 {
		return nil, &ParseError{Position: sp.start, Cause: ErrMSHTooShort, Fragment: fragment(text, sp.start, 16)}
	}
	fieldSepSpan := span{sp.start + 3, sp.start + 4}
	encCharsSpan := span{sp.start + 4, sp.start + 8}
	fields := []*Field{
		wrapAtomicField(text, fieldSepSpan, 1),
		wrapAtomicField(text, encCharsSpan, 2),
	}

	rest := span{sp.start + 8, sp.end}
	if rest.end > rest.start {
		r, size := utf8.DecodeRuneInString(text[rest.start:rest.end])
		if r != seps.Field {
			return nil, &ParseError{Position: rest.start, Cause: ErrMissingFieldSeparator, Fragment: fragment(text, rest.start, 16)}
		}
		after := span{rest.start + size, rest.end}
		for idx, fs := range splitList(text, after, seps.Field, seps) {
			fields = append(fields, buildField(text, fs, seps, idx+3))
		}
	}

	return &Segment{
		text:       text,
		span:       sp,
		name:       text[sp.start : sp.start+3],
		fields:     fields,
		occurrence: occurrence,
	}, nil
}

// parseRegularSegment builds any non-MSH segment: a three-character name
// followed by an optional field separator and field list.
func parseRegularSegment(text string, sp span, seps Separators, occurrence int) (*Segment, error) {
	if sp.end-sp.start < 3 {
		return nil, &ParseError{Position: sp.start, Cause: ErrInvalidSegmentName, Fragment: fragment(text, sp.start, 16)}
	}
	name := text[sp.start : sp.start+3]

	var fields []*Field
	rest := span{sp.start + 3, sp.end}
	if rest.end > rest.start {
		r, size := utf8.DecodeRuneInString(text[rest.start:rest.end])
		if r != seps.Field {
			return nil, &ParseError{Position: rest.start, Cause: ErrMissingFieldSeparator, Fragment: fragment(text, rest.start, 16)}
		}
		after := span{rest.start + size, rest.end}
		fieldSpans := splitList(text, after, seps.Field, seps)
		fields = make([]*Field, 0, len(fieldSpans))
		for idx, fs := range fieldSpans {
			fields = append(fields, buildField(text, fs, seps, idx+1))
		}
	}

	return &Segment{
		text:       text,
		span:       sp,
		name:       name,
		fields:     fields,
		occurrence: occurrence,
	}, nil
}

// wrapAtomicField builds a field whose single repeat, component, and
// subcomponent all share the given span unsplit. Used for MSH-1 and
// MSH-2, whose literal text must never be re-split by its own separator
// characters.
func wrapAtomicField(text string, sp span, seqNum int) *Field {
	sub := &SubComponent{text: text, span: sp}
	comp := &Component{text: text, span: sp, subcomponents: []*SubComponent{sub}}
	rep := &Repeat{text: text, span: sp, components: []*Component{comp}}
	return &Field{text: text, span: sp, seq: seqNum, repeats: []*Repeat{rep}}
}

// buildField splits sp on the repetition separator and builds the
// resulting Repeats.
func buildField(text string, sp span, seps Separators, seqNum int) *Field {
	repSpans := splitList(text, sp, seps.Repetition, seps)
	repeats := make([]*Repeat, 0, len(repSpans))
	for _, rs := range repSpans {
		repeats = append(repeats, buildRepeat(text, rs, seps))
	}
	return &Field{text: text, span: sp, seq: seqNum, repeats: repeats}
}

// buildRepeat splits sp on the component separator and builds the
// resulting Components.
func buildRepeat(text string, sp span, seps Separators) *Repeat {
	compSpans := splitList(text, sp, seps.Component, seps)
	comps := make([]*Component, 0, len(compSpans))
	for _, cs := range compSpans {
		comps = append(comps, buildComponent(text, cs, seps))
	}
	return &Repeat{text: text, span: sp, components: comps}
}

// buildComponent splits sp on the subcomponent separator and builds the
// resulting SubComponents.
func buildComponent(text string, sp span, seps Separators) *Component {
	subSpans := splitList(text, sp, seps.SubComponent, seps)
	subs := make([]*SubComponent, 0, len(subSpans))
	for _, ss := range subSpans {
		subs = append(subs, &SubComponent{text: text, span: ss})
	}
	return &Component{text: text, span: sp, subcomponents: subs}
}

// splitList splits sp on target, treating an escape character immediately
// followed by any structural separator (or the segment terminator) as an
// atomic, non-splitting pair. It is the single low-level splitter reused
// at every nesting level (field, repeat, component, subcomponent); the
// only difference between levels is which separator rune is the target.
//
// A span always yields at least one result, mirroring strings.Split: an
// empty sp, or one with no occurrence of target, yields sp unchanged.
func splitList(text string, sp span, target rune, seps Separators) []span {
	var spans []span
	start := sp.start
	i := sp.start
	for i < sp.end {
		r, size := utf8.DecodeRuneInString(text[i:sp.end])
		if r == seps.Escape && i+size < sp.end {
			next, nsize := utf8.DecodeRuneInString(text[i+size : sp.end])
			if isSpecialSeparator(next, seps) {
				i += size + nsize
				continue
			}
		}
		if r == target {
			spans = append(spans, span{start, i})
			i += size
			start = i
			continue
		}
		i += size
	}
	spans = append(spans, span{start, sp.end})
	return spans
}

// isSpecialSeparator reports whether r is one of the five structural
// separators or the segment terminator, for escape-pair detection during
// splitting.
func isSpecialSeparator(r rune, seps Separators) bool {
	switch r {
	case seps.Field, seps.Component, seps.SubComponent, seps.Repetition, seps.Escape, SegmentTerminator:
		return true
	default:
		return false
	}
}
