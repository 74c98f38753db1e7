// Package hl7 provides the core, borrowed view over an HL7 v2.x message.
//
// A call to ParseMessage turns a raw message string into a hierarchical
// tree of nodes — Message, Segment, Field, Repeat, Component,
// SubComponent — each of which records the half-open byte range it spans
// in the original input. No node copies its text at parse time; Raw
// returns a substring of the original input, and Value only allocates
// when the caller asks for the decoded (escape-resolved) form.
//
// # Message Structure
//
//	Message
//	  └─ Segment (MSH, PID, OBX, ...)
//	       └─ Field
//	            └─ Repeat (separated by ~)
//	                 └─ Component (separated by ^)
//	                      └─ SubComponent (separated by &)
//
// A field with no repetition separator still has exactly one Repeat; a
// repeat with no component separator still has exactly one Component, and
// so on. The tree is never ragged at the bottom: every field has at least
// one repeat, every repeat at least one component, every component at
// least one subcomponent.
//
// # Separators
//
// The five structural separators (field, component, subcomponent,
// repetition, escape) are discovered from the first nine bytes of input
// and carried per-message as a Separators value — there is no process-wide
// default beyond the HL7-standard one returned by DefaultSeparators.
//
// # What this package does not do
//
// hl7 is read-only. Constructing or mutating a message is the job of the
// builder package; querying by path is the job of query; localizing a byte
// offset to a node is the job of cursor. This package only parses and
// exposes the borrowed tree.
package hl7
