// Package parse wraps hl7.ParseMessage with DoS-protection limits, context
// cancellation, MLLP framing removal, and streaming message boundary
// detection, for callers that read HL7 traffic from a socket or file rather
// than parsing an already-isolated message string.
package parse

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/golevel7v2/hl7"
)

// MLLP (Minimal Lower Layer Protocol) framing bytes.
const (
	mllpStartByte = 0x0B // Vertical Tab (VT)
	mllpEndByte1  = 0x1C // File Separator (FS)
	mllpEndByte2  = 0x0D // Carriage Return (CR)
)

// Parser-specific errors.
var (
	// ErrTooManySegments is returned when the message exceeds maxSegments.
	ErrTooManySegments = errors.New("message exceeds maximum segment count")
	// ErrFieldTooLong is returned when a field exceeds maxFieldLength.
	ErrFieldTooLong = errors.New("field exceeds maximum length")
	// ErrContextCanceled is returned when the parsing context is canceled.
	ErrContextCanceled = errors.New("parsing canceled")
)

// Parser parses raw HL7 message bytes, stripping MLLP framing if present and
// enforcing the configured size limits.
type Parser interface {
	// Parse parses raw HL7 message data into a Message. The input data may
	// include MLLP framing, which is stripped before parsing.
	Parse(data []byte) (*hl7.Message, error)

	// ParseContext parses raw HL7 message data with context support,
	// allowing for cancellation during parsing of large messages.
	ParseContext(ctx context.Context, data []byte) (*hl7.Message, error)
}

// parser is the concrete implementation of Parser.
type parser struct {
	config parserConfig
}

// New creates a new Parser with the given options.
func New(opts ...ParserOption) Parser {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &parser{config: cfg}
}

// Parse parses raw HL7 message data into a Message.
func (p *parser) Parse(data []byte) (*hl7.Message, error) {
	return p.ParseContext(context.Background(), data)
}

// ParseContext parses raw HL7 message data with context support.
func (p *parser) ParseContext(ctx context.Context, data []byte) (*hl7.Message, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrContextCanceled, ctx.Err())
	default:
	}

	data = stripMLLP(data)

	if err := p.checkFieldLengths(data); err != nil {
		return nil, err
	}

	msg, err := hl7.ParseMessage(string(data), p.config.parseOpts...)
	if err != nil {
		return nil, err
	}

	if segs := msg.Segments(); len(segs) > p.config.maxSegments {
		return nil, fmt.Errorf("%w: got %d, max %d", ErrTooManySegments, len(segs), p.config.maxSegments)
	}

	return msg, nil
}

// stripMLLP removes MLLP framing from the data if present.
// MLLP format: <VT>message<FS><CR> where VT=0x0B, FS=0x1C, CR=0x0D
func stripMLLP(data []byte) []byte {
	if len(data) == 0 {
		return data
	}

	if data[0] == mllpStartByte {
		data = data[1:]
	}

	if len(data) >= 2 {
		if data[len(data)-2] == mllpEndByte1 && data[len(data)-1] == mllpEndByte2 {
			data = data[:len(data)-2]
		} else if data[len(data)-1] == mllpEndByte1 {
			data = data[:len(data)-1]
		}
	}

	return data
}

// checkFieldLengths validates that no field in the raw message exceeds the
// maximum length, scanning at the field-delimiter level only (the field
// separator is always the fourth byte of a well-formed MSH segment).
func (p *parser) checkFieldLengths(data []byte) error {
	if len(data) < 4 {
		return nil
	}
	fieldDelim := data[3]
	start := 0
	fieldNum := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == fieldDelim || data[i] == hl7.SegmentTerminator {
			fieldLen := i - start
			if fieldLen > p.config.maxFieldLength {
				return fmt.Errorf("%w: field %d is %d bytes, max %d",
					ErrFieldTooLong, fieldNum, fieldLen, p.config.maxFieldLength)
			}
			start = i + 1
			fieldNum++
		}
	}

	return nil
}
