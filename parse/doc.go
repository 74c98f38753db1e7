// Package parse wraps [hl7.ParseMessage] for stream-oriented callers: it
// strips MLLP framing, enforces DoS-protection size limits, supports
// context cancellation, and can split a continuous byte stream (a socket or
// file containing many messages back to back) into individual message
// boundaries.
//
// Most callers parsing a single, already-isolated message string should
// call [hl7.ParseMessage] directly; this package exists for the surrounding
// transport concerns.
//
// # Basic Usage
//
//	p := parse.New()
//	msg, err := p.Parse(data)
//	if err != nil {
//	    log.Fatal("parse error:", err)
//	}
//
//	msgType, err := query.Parse("MSH.9")
//	if err == nil {
//	    raw, _ := msgType.Raw(msg)
//	    fmt.Println(raw) // e.g. "ADT^A01"
//	}
//
// # Parser Options
//
//	// DoS protection limits
//	p := parse.New(
//	    parse.WithMaxSegments(500),
//	    parse.WithMaxFieldLength(32768),
//	)
//
//	// Require CR-only segment terminators (default is lenient: CR, LF, CRLF)
//	p := parse.New(parse.WithStrictTerminators())
//
// # MLLP Framing
//
// Parse accepts input with or without MLLP framing (0x0B ... 0x1C 0x0D);
// framing bytes are stripped before the message body is handed to
// [hl7.ParseMessage].
//
// # Streaming
//
// Scanner reads a sequence of messages from an [io.Reader], detecting
// message boundaries by MLLP framing, a double segment terminator, or the
// start of a new MSH segment:
//
//	s := parse.NewScanner(conn)
//	for s.Scan() {
//	    msg := s.Message()
//	    // ...
//	}
//	if err := s.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// # DoS Protection
//
// Built-in limits guard against maliciously crafted input consuming
// excessive memory or CPU time:
//   - Maximum segment count (default: 1000)
//   - Maximum field length (default: 65536 bytes)
//   - Maximum message size for Scanner (default: 10 MB)
package parse
