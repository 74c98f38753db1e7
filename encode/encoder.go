package encode

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/dshills/golevel7v2/builder"
	"github.com/dshills/golevel7v2/hl7"
)

// Encoder renders HL7 messages to their wire format, optionally wrapped
// in MLLP framing. It accepts both the parse-time view (*hl7.Message)
// and the mutable builder (*builder.Message), since either may need to
// go out over the wire: a view re-serialized after no changes (e.g. to
// normalize line endings), or a builder message assembled or mutated in
// memory (e.g. an ACK).
type Encoder interface {
	// Encode renders a parsed message's segments, joined by the
	// configured line ending.
	Encode(msg *hl7.Message) ([]byte, error)

	// EncodeBuilder renders a builder message's segments, joined by the
	// configured line ending.
	EncodeBuilder(msg *builder.Message) ([]byte, error)

	// EncodeToWriter streams a parsed message to w, checking ctx between
	// segments.
	EncodeToWriter(ctx context.Context, w io.Writer, msg *hl7.Message) error

	// EncodeBuilderToWriter writes a builder message to w. It checks ctx
	// once before writing, then writes the serialized body in one call;
	// ctx is not checked between segments.
	EncodeBuilderToWriter(ctx context.Context, w io.Writer, msg *builder.Message) error
}

// encoder is the concrete implementation of Encoder.
type encoder struct {
	config encoderConfig
}

// New creates a new Encoder with the given options. Defaults: line
// ending "\r", MLLP framing disabled.
func New(opts ...EncoderOption) Encoder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &encoder{config: cfg}
}

// Encode renders a parsed message's segments, joined by the configured
// line ending.
func (e *encoder) Encode(msg *hl7.Message) ([]byte, error) {
	if msg == nil {
		return nil, &Error{Message: "cannot encode nil message"}
	}
	segments := msg.Segments()
	if len(segments) == 0 {
		return nil, &Error{Message: "message has no segments"}
	}

	var buf bytes.Buffer
	buf.Grow(len(segments)*100 + 3)
	e.writeStart(&buf)
	for i, seg := range segments {
		if i > 0 {
			buf.WriteString(e.config.lineEnding)
		}
		buf.WriteString(seg.Raw())
	}
	buf.WriteString(e.config.lineEnding)
	e.writeEnd(&buf)
	return buf.Bytes(), nil
}

// EncodeBuilder renders a builder message's segments, joined by the
// configured line ending.
func (e *encoder) EncodeBuilder(msg *builder.Message) ([]byte, error) {
	if msg == nil {
		return nil, &Error{Message: "cannot encode nil message"}
	}
	if len(msg.Segments()) == 0 {
		return nil, &Error{Message: "message has no segments"}
	}

	var buf bytes.Buffer
	e.writeStart(&buf)
	buf.WriteString(msg.DisplayWithSegmentSeparator(e.config.lineEnding))
	buf.WriteString(e.config.lineEnding)
	e.writeEnd(&buf)
	return buf.Bytes(), nil
}

// EncodeToWriter streams a parsed message to w, checking ctx between
// segment writes.
func (e *encoder) EncodeToWriter(ctx context.Context, w io.Writer, msg *hl7.Message) error {
	if msg == nil {
		return &Error{Message: "cannot encode nil message"}
	}
	segments := msg.Segments()
	if len(segments) == 0 {
		return &Error{Message: "message has no segments"}
	}
	if err := ctxDone(ctx); err != nil {
		return err
	}

	if e.config.includeMLLP {
		if _, err := w.Write([]byte{MLLPStartBlock}); err != nil {
			return &Error{Message: "failed to write MLLP start block", Cause: err}
		}
	}

	lineEndingBytes := []byte(e.config.lineEnding)
	for i, seg := range segments {
		if err := ctxDone(ctx); err != nil {
			return err
		}
		if i > 0 {
			if _, err := w.Write(lineEndingBytes); err != nil {
				return &Error{Message: "failed to write line ending", Segment: seg.Name(), Position: i, Cause: err}
			}
		}
		if _, err := io.WriteString(w, seg.Raw()); err != nil {
			return &Error{Message: "failed to write segment", Segment: seg.Name(), Position: i, Cause: err}
		}
	}
	if _, err := w.Write(lineEndingBytes); err != nil {
		return &Error{Message: "failed to write final line ending", Cause: err}
	}
	if e.config.includeMLLP {
		if _, err := w.Write([]byte{MLLPEndBlock, MLLPCarriageReturn}); err != nil {
			return &Error{Message: "failed to write MLLP end block", Cause: err}
		}
	}
	return nil
}

// EncodeBuilderToWriter writes a builder message to w, checking ctx once
// before the first write; the body is written in a single call.
func (e *encoder) EncodeBuilderToWriter(ctx context.Context, w io.Writer, msg *builder.Message) error {
	if msg == nil {
		return &Error{Message: "cannot encode nil message"}
	}
	if len(msg.Segments()) == 0 {
		return &Error{Message: "message has no segments"}
	}
	if err := ctxDone(ctx); err != nil {
		return err
	}

	if e.config.includeMLLP {
		if _, err := w.Write([]byte{MLLPStartBlock}); err != nil {
			return &Error{Message: "failed to write MLLP start block", Cause: err}
		}
	}
	body := msg.DisplayWithSegmentSeparator(e.config.lineEnding)
	if _, err := io.WriteString(w, body); err != nil {
		return &Error{Message: "failed to write message body", Cause: err}
	}
	if _, err := io.WriteString(w, e.config.lineEnding); err != nil {
		return &Error{Message: "failed to write final line ending", Cause: err}
	}
	if e.config.includeMLLP {
		if _, err := w.Write([]byte{MLLPEndBlock, MLLPCarriageReturn}); err != nil {
			return &Error{Message: "failed to write MLLP end block", Cause: err}
		}
	}
	return nil
}

func (e *encoder) writeStart(buf *bytes.Buffer) {
	if e.config.includeMLLP {
		buf.WriteByte(MLLPStartBlock)
	}
}

func (e *encoder) writeEnd(buf *bytes.Buffer) {
	if e.config.includeMLLP {
		buf.WriteByte(MLLPEndBlock)
		buf.WriteByte(MLLPCarriageReturn)
	}
}

func ctxDone(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// Error represents an error that occurred during message encoding.
type Error struct {
	// Message describes what went wrong.
	Message string
	// Segment is the segment name where the error occurred (if applicable).
	Segment string
	// Position is the segment index where the error occurred (if applicable).
	Position int
	// Cause is the underlying error that caused this encode error.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := "encode error"
	if e.Segment != "" {
		msg = fmt.Sprintf("%s at segment %s", msg, e.Segment)
		if e.Position > 0 {
			msg = fmt.Sprintf("%s (position %d)", msg, e.Position)
		}
	}
	if e.Message != "" {
		msg = msg + ": " + e.Message
	}
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause of the encode error.
func (e *Error) Unwrap() error {
	return e.Cause
}
