package parse

import "github.com/dshills/golevel7v2/hl7"

// Default parser configuration values.
const (
	defaultMaxSegments    = 1000  // DoS protection: maximum segments per message
	defaultMaxFieldLength = 65536 // DoS protection: maximum field length in bytes
)

// parserConfig holds the parser configuration.
type parserConfig struct {
	maxSegments    int               // maximum segments allowed (DoS protection)
	maxFieldLength int               // maximum field raw length allowed (DoS protection)
	parseOpts      []hl7.ParseOption // forwarded to hl7.ParseMessage (terminator leniency)
	strict         bool              // mirrors parseOpts for callers that need a plain bool, e.g. Scanner's boundary detection
}

// defaultConfig returns a parser configuration with default values.
func defaultConfig() parserConfig {
	return parserConfig{
		maxSegments:    defaultMaxSegments,
		maxFieldLength: defaultMaxFieldLength,
	}
}

// ParserOption is a functional option for configuring the parser.
type ParserOption func(*parserConfig)

// WithMaxSegments sets the maximum number of segments allowed in a message.
// This is a DoS protection mechanism to prevent processing of maliciously
// large messages. Default is 1000.
func WithMaxSegments(limit int) ParserOption {
	return func(c *parserConfig) {
		if limit > 0 {
			c.maxSegments = limit
		}
	}
}

// WithMaxFieldLength sets the maximum raw length, in bytes, allowed for any
// single field. This is a DoS protection mechanism to prevent processing of
// messages with excessively large fields. Default is 65536 bytes.
func WithMaxFieldLength(limit int) ParserOption {
	return func(c *parserConfig) {
		if limit > 0 {
			c.maxFieldLength = limit
		}
	}
}

// WithStrictTerminators requires CR as the only segment terminator,
// rejecting bare LF and CRLF. By default the parser is lenient, accepting
// CR, LF, or CRLF in any mixture.
func WithStrictTerminators() ParserOption {
	return func(c *parserConfig) {
		c.parseOpts = append(c.parseOpts, hl7.WithStrictTerminators())
		c.strict = true
	}
}
