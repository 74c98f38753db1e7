package ack

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/golevel7v2/builder"
	"github.com/dshills/golevel7v2/hl7"
	"github.com/google/uuid"
)

// Errors returned by the ACK builder.
var (
	// ErrNilMessage indicates a nil message was provided.
	ErrNilMessage = errors.New("nil message")

	// ErrMissingControlID indicates the original message has no control ID.
	ErrMissingControlID = errors.New("original message missing control ID (MSH-10)")

	// ErrMissingMSH indicates the original message has no MSH segment.
	ErrMissingMSH = errors.New("original message missing MSH segment")

	// ErrInvalidACKCode indicates an invalid acknowledgment code was provided.
	ErrInvalidACKCode = errors.New("invalid acknowledgment code")
)

// Builder creates HL7 acknowledgment messages from original messages.
// It handles the construction of MSH, MSA, and optional ERR segments.
type Builder interface {
	// Accept creates an acceptance ACK (AA) for the original message.
	Accept(original *hl7.Message) (*builder.Message, error)

	// Reject creates a rejection ACK (AR) for the original message, with
	// reason placed in MSA-3.
	Reject(original *hl7.Message, reason string) (*builder.Message, error)

	// Error creates an error ACK (AE) for the original message, with
	// err.Error() placed in MSA-3 and an ERR segment describing it.
	Error(original *hl7.Message, err error) (*builder.Message, error)

	// Custom creates an ACK with fully customized acknowledgment data.
	Custom(original *hl7.Message, ack ACK) (*builder.Message, error)
}

// ackBuilder is the concrete implementation of Builder.
type ackBuilder struct {
	// timeFunc returns the current time. Overridable for testing.
	timeFunc func() time.Time

	// controlIDFunc generates the ACK's own MSH-10. Defaults to a
	// uuid.NewString()-backed generator.
	controlIDFunc func() string
}

// Option configures a Builder.
type Option func(*ackBuilder)

// WithTimeFunc sets a custom time function for testing.
func WithTimeFunc(fn func() time.Time) Option {
	return func(b *ackBuilder) {
		b.timeFunc = fn
	}
}

// WithControlIDFunc sets a custom control ID generator.
func WithControlIDFunc(fn func() string) Option {
	return func(b *ackBuilder) {
		b.controlIDFunc = fn
	}
}

// NewBuilder creates a new ACK Builder with the given options.
func NewBuilder(opts ...Option) Builder {
	b := &ackBuilder{timeFunc: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	if b.controlIDFunc == nil {
		b.controlIDFunc = uuid.NewString
	}
	return b
}

func controlIDOf(original *hl7.Message) string {
	msh, ok := original.Segment("MSH")
	if !ok {
		return ""
	}
	f, ok := msh.Field(10)
	if !ok {
		return ""
	}
	return f.Value(original.Separators())
}

func fieldValueOf(seg *hl7.Segment, seq int, seps hl7.Separators) string {
	f, ok := seg.Field(seq)
	if !ok {
		return ""
	}
	return f.Value(seps)
}

// Accept creates an acceptance ACK (AA) for the original message.
func (b *ackBuilder) Accept(original *hl7.Message) (*builder.Message, error) {
	if original == nil {
		return nil, ErrNilMessage
	}
	controlID := controlIDOf(original)
	if controlID == "" {
		return nil, ErrMissingControlID
	}
	return b.Custom(original, NewAcceptACK(controlID))
}

// Reject creates a rejection ACK (AR) for the original message.
func (b *ackBuilder) Reject(original *hl7.Message, reason string) (*builder.Message, error) {
	if original == nil {
		return nil, ErrNilMessage
	}
	controlID := controlIDOf(original)
	if controlID == "" {
		return nil, ErrMissingControlID
	}
	return b.Custom(original, NewRejectACK(controlID, reason))
}

// Error creates an error ACK (AE) for the original message.
func (b *ackBuilder) Error(original *hl7.Message, err error) (*builder.Message, error) {
	if original == nil {
		return nil, ErrNilMessage
	}
	controlID := controlIDOf(original)
	if controlID == "" {
		return nil, ErrMissingControlID
	}
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	return b.Custom(original, NewErrorACK(controlID, "207", errMsg)) // 207 = Application internal error
}

// Custom creates an ACK with fully customized acknowledgment data.
func (b *ackBuilder) Custom(original *hl7.Message, ack ACK) (*builder.Message, error) {
	if original == nil {
		return nil, ErrNilMessage
	}
	if !ack.Code.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidACKCode, ack.Code)
	}

	originalMSH, ok := original.Segment("MSH")
	if !ok {
		return nil, ErrMissingMSH
	}

	seps := original.Separators()
	msg := builder.NewMessage(seps)

	b.buildMSHSegment(msg, originalMSH, seps)
	b.buildMSASegment(msg, seps, ack)
	if ack.NeedsERRSegment() {
		b.buildERRSegment(msg, seps, ack)
	}

	return msg, nil
}

// buildMSHSegment builds the ACK's MSH segment, swapping sending and
// receiving applications/facilities from the original.
func (b *ackBuilder) buildMSHSegment(msg *builder.Message, originalMSH *hl7.Segment, seps hl7.Separators) {
	seg := msg.AddSegment("MSH")
	seg.SetField(seps, 1, string(seps.Field))
	seg.SetField(seps, 2, seps.EncodingCharacters())

	originalSendingApp := fieldValueOf(originalMSH, 3, seps)
	originalSendingFacility := fieldValueOf(originalMSH, 4, seps)
	originalReceivingApp := fieldValueOf(originalMSH, 5, seps)
	originalReceivingFacility := fieldValueOf(originalMSH, 6, seps)

	// MSH-3/4 (Sending App/Facility) <- original's Receiving App/Facility.
	seg.SetField(seps, 3, originalReceivingApp)
	seg.SetField(seps, 4, originalReceivingFacility)
	// MSH-5/6 (Receiving App/Facility) <- original's Sending App/Facility.
	seg.SetField(seps, 5, originalSendingApp)
	seg.SetField(seps, 6, originalSendingFacility)

	seg.SetField(seps, 7, b.timeFunc().Format("20060102150405"))

	// MSH-9: ACK^<trigger event from original MSH-9>. The value is built in
	// wire form (only the trigger is escaped) and stored without SetField,
	// which would escape the component separator.
	ackMsgType := "ACK"
	if field, ok := originalMSH.Field(9); ok {
		if rep, ok := field.Repeat(1); ok {
			if comp, ok := rep.Component(2); ok {
				if trigger := comp.Value(seps); trigger != "" {
					ackMsgType = "ACK" + string(seps.Component) + seps.Encode(trigger)
				}
			}
		}
	}
	seg.SetFieldBuilder(9, builder.NewFieldValue(ackMsgType))

	seg.SetField(seps, 10, b.controlIDFunc())

	if processingID := fieldValueOf(originalMSH, 11, seps); processingID != "" {
		seg.SetField(seps, 11, processingID)
	}
	if versionID := fieldValueOf(originalMSH, 12, seps); versionID != "" {
		seg.SetField(seps, 12, versionID)
	}
}

// buildMSASegment builds the MSA (Message Acknowledgment) segment.
func (b *ackBuilder) buildMSASegment(msg *builder.Message, seps hl7.Separators, ack ACK) {
	seg := msg.AddSegment("MSA")
	seg.SetField(seps, 1, string(ack.Code))
	seg.SetField(seps, 2, ack.ControlID)
	if ack.TextMessage != "" {
		seg.SetField(seps, 3, ack.TextMessage)
	}
}

// buildERRSegment builds the ERR (Error) segment for error/reject ACKs.
func (b *ackBuilder) buildERRSegment(msg *builder.Message, seps hl7.Separators, ack ACK) {
	seg := msg.AddSegment("ERR")
	// ERR-1: pre-v2.4 error location, kept for backward compatibility.
	if ack.ErrorLocation != "" {
		seg.SetField(seps, 1, ack.ErrorLocation)
		seg.SetField(seps, 2, ack.ErrorLocation)
	}
	if ack.ErrorCode != "" {
		seg.SetField(seps, 3, ack.ErrorCode)
	}
	if ack.Severity != "" {
		seg.SetField(seps, 4, ack.Severity)
	}
	if ack.ErrorMessage != "" {
		seg.SetField(seps, 7, ack.ErrorMessage)
	}
}
