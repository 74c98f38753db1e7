// Package ack builds HL7 v2.x acknowledgment (ACK) messages in response
// to a parsed message.
//
// # ACK Message Structure
//
// An ACK message consists of:
//   - MSH: message header, mirrored from the original with sending and
//     receiving application/facility swapped
//   - MSA: acknowledgment code and the original message's control ID
//   - ERR: optional, present for AE/AR/CE/CR responses that carry error
//     detail
//
// # Basic Usage
//
//	msg, err := hl7.ParseMessage(string(data))
//	if err != nil {
//		return err
//	}
//
//	b := ack.NewBuilder()
//	ackMsg, err := b.Accept(msg)
//	if err != nil {
//		return err
//	}
//	response := ackMsg.DisplayWithNewlines()
//
// Generate a negative acknowledgment:
//
//	ackMsg, err := b.Error(msg, fmt.Errorf("patient ID not found"))
//
// Generate a rejection:
//
//	ackMsg, err := b.Reject(msg, "unsupported message type")
//
// # Acknowledgment Codes
//
//	AA - Application Accept  : message accepted for processing
//	AE - Application Error   : message received but contains errors
//	AR - Application Reject  : message rejected, not processed
//	CA - Commit Accept       : message committed to storage
//	CE - Commit Error        : commit failed
//	CR - Commit Reject       : commit rejected
//
// # Options
//
//	b := ack.NewBuilder(
//		ack.WithTimeFunc(func() time.Time { return fixedTime }),
//		ack.WithControlIDFunc(func() string { return "ACK-0001" }),
//	)
//
// Without WithControlIDFunc, each ACK's own MSH-10 is a fresh
// github.com/google/uuid string.
//
// # Custom ACKs
//
// Custom gives full control over the acknowledgment data, including
// ERR segment fields:
//
//	ackMsg, err := b.Custom(msg, ack.ACK{
//		Code:          ack.ApplicationError,
//		ControlID:     controlID,
//		TextMessage:   "validation failed",
//		ErrorCode:     "101",
//		ErrorLocation: "PID-3-1",
//		ErrorMessage:  "patient identifier is required",
//		Severity:      "E",
//	})
package ack
