// Package encode renders [hl7.Message] (the parse-time view) and
// [builder.Message] (the mutable model) back to HL7 v2.x wire format,
// with configurable line endings and optional MLLP framing.
//
// # Basic Usage
//
//	enc := encode.New()
//	data, err := enc.Encode(viewMsg)       // from hl7.ParseMessage
//	data, err := enc.EncodeBuilder(bldMsg) // from builder.NewMessage / builder.MessageFrom
//
// Encode directly to a writer (e.g., network connection):
//
//	ctx := context.Background()
//	err := enc.EncodeBuilderToWriter(ctx, conn, ackMsg)
//
// # Encoder Options
//
//	enc := encode.New(encode.WithLineEnding("\r\n"))
//	enc := encode.New(encode.WithMLLP(true))
//	enc := encode.New(
//		encode.WithMLLP(true),
//		encode.WithLineEnding("\r"),
//	)
//
// # Line Endings
//
// HL7 v2.x specifies carriage return (CR, 0x0D) as the segment
// terminator; some systems expect CRLF or bare LF instead.
//
// # MLLP Framing
//
// MLLP (Minimal Lower Layer Protocol) is the standard transport framing
// for HL7 over TCP/IP. When enabled, messages are wrapped with:
//   - Start block: 0x0B (vertical tab)
//   - End block: 0x1C 0x0D (file separator + carriage return)
//
//	<VT>MSH|^~\&|...<CR>PID|...<CR>...<FS><CR>
//
// # Streaming
//
// EncodeToWriter checks the context before each segment write, for large
// messages or slow connections. EncodeBuilderToWriter checks it once
// before writing and then writes the whole serialized body in one call.
//
// # Error Handling
//
//	data, err := enc.Encode(msg)
//	if err != nil {
//		var encErr *encode.Error
//		if errors.As(err, &encErr) {
//			fmt.Printf("encode failed: %s (segment %s)\n", encErr.Message, encErr.Segment)
//		}
//	}
package encode
