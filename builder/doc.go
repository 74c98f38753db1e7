// Package builder provides the mutable counterpart to the read-only
// view tree in package hl7. Message, Segment, Field, Repeat, and
// Component here can be constructed from a parsed hl7.Message, mutated
// in place, and serialized back to wire text.
//
// Field, Repeat, and Component are tagged Value-or-Container variants:
// a Field with a single trivial repeat collapses to a bare string
// instead of materializing a one-element repeat list, and likewise down
// the chain. This avoids allocating structure a caller never asked for.
// Component and Repeat containers are sparse (keyed by 1-based index) so
// a caller can set, say, component 3 of a repeat without materializing
// components 1 and 2 as blanks; the serializer fills the gaps.
//
// Every Value stored in the tree, whether it arrived via conversion from
// a parsed view or via a mutation setter, is wire-form (escape-encoded)
// text. Conversion from a view copies Raw() byte-for-byte, guaranteeing
// an untouched field round-trips exactly; setters encode their decoded
// argument once at call time via the message's Separators, so
// serialization itself never re-encodes and can never double-escape an
// already-wire value.
package builder
