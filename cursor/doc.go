// Package cursor maps a byte offset into an hl7 message onto the
// deepest structural node containing it: segment, field, repeat,
// component, and subcomponent.
//
// Locate is a free function rather than a method on hl7.Message because
// it imports hl7 from the outside; making it a method would require hl7
// to import cursor in turn.
package cursor
