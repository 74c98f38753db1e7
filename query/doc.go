// Package query implements the compact location path language used to
// address a single structural node inside an hl7 message:
//
//	segment ( '[' N ']' )? ( sep field ( '[' N ']' )? ( sep component ( sep subcomponent )? )? )?
//	sep := '.' | '-' | ' '
//
// All numeric indices are 1-based; a zero or missing repeat defaults to
// 1. Eval and Range are free functions (not hl7.Message methods) for the
// same reason as package cursor: hl7 cannot import query without a
// cycle.
package query
