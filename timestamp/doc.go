// Package timestamp parses and prints HL7 v2.x timestamps:
//
//	YYYY [MM [DD [HH [MM [SS [. F{1,4} ]]]]]] [ (+|-) HHMM ]
//
// Every component but the year is optional, but a component may only be
// present if every component before it is also present. Parsing never
// validates calendar ranges (a caller can do that by calling
// Stamp.ToTime); it only validates the grammar itself.
package timestamp
