package hl7

import "strings"

// Encode translates raw segment text into its wire form: every character
// that collides with one of s's five separators, plus CR and LF, is
// replaced by its HL7 escape token. All other characters pass through
// unchanged. Encode never fails.
func (s Separators) Encode(raw string) string {
	if raw == "" {
		return raw
	}

	needsEscape := false
	for _, r := range raw {
		if s.isSeparator(r) || r == '\r' || r == '\n' {
			needsEscape = true
			break
		}
	}
	if !needsEscape {
		return raw
	}

	esc := s.Escape
	var b strings.Builder
	b.Grow(len(raw) + len(raw)/4)
	for _, r := range raw {
		switch {
		case r == s.Field:
			b.WriteRune(esc)
			b.WriteByte('F')
			b.WriteRune(esc)
		case r == s.Repetition:
			b.WriteRune(esc)
			b.WriteByte('R')
			b.WriteRune(esc)
		case r == s.Component:
			b.WriteRune(esc)
			b.WriteByte('S')
			b.WriteRune(esc)
		case r == s.SubComponent:
			b.WriteRune(esc)
			b.WriteByte('T')
			b.WriteRune(esc)
		case r == s.Escape:
			b.WriteRune(esc)
			b.WriteByte('E')
			b.WriteRune(esc)
		case r == '\r':
			b.WriteRune(esc)
			b.WriteString("X0D")
			b.WriteRune(esc)
		case r == '\n':
			b.WriteRune(esc)
			b.WriteString("X0A")
			b.WriteRune(esc)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Decode translates wire-form text back into raw characters. A token is
// the text between two escape characters; recognized tokens are F, R, S,
// T, E (mapped to the corresponding separator), X0A (LF), X0D and .br
// (both CR). Any other token is emitted verbatim, without its delimiting
// escape characters. An unterminated opening escape character suppresses
// everything after it until the next escape character or end of input.
// Decode never fails.
func (s Separators) Decode(wire string) string {
	if wire == "" {
		return wire
	}
	esc := s.Escape
	if !strings.ContainsRune(wire, esc) {
		return wire
	}

	runes := []rune(wire)
	var b strings.Builder
	b.Grow(len(wire))

	i := 0
	for i < len(runes) {
		if runes[i] != esc {
			b.WriteRune(runes[i])
			i++
			continue
		}

		// Find the closing escape character.
		closeIdx := -1
		for j := i + 1; j < len(runes); j++ {
			if runes[j] == esc {
				closeIdx = j
				break
			}
		}
		if closeIdx == -1 {
			// Unterminated: suppress the rest of the input.
			break
		}

		token := string(runes[i+1 : closeIdx])
		b.WriteString(s.decodeToken(token))
		i = closeIdx + 1
	}

	return b.String()
}

// decodeToken maps the text between a pair of escape characters to its
// decoded form. Unrecognized tokens are returned verbatim (without the
// escape characters that bracketed them).
func (s Separators) decodeToken(token string) string {
	switch token {
	case "F":
		return string(s.Field)
	case "R":
		return string(s.Repetition)
	case "S":
		return string(s.Component)
	case "T":
		return string(s.SubComponent)
	case "E":
		return string(s.Escape)
	case "X0A":
		return "\n"
	case "X0D", ".br":
		return "\r"
	default:
		return token
	}
}
