package parse

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/dshills/golevel7v2/hl7"
)

// Scanner-specific errors.
var (
	// ErrMessageTooLarge is returned when a message exceeds the maximum size.
	ErrMessageTooLarge = errors.New("message exceeds maximum size")
)

// Default scanner configuration values.
const (
	defaultMaxMessageSize = 10 * 1024 * 1024 // 10 MB max message size
	defaultBufferSize     = 64 * 1024        // 64 KB buffer
)

// Scanner provides streaming HL7 message parsing from an io.Reader. It
// supports both MLLP-framed messages and plain, terminator-delimited
// messages, and is meant for reading a socket or file containing a
// sequence of messages back to back.
type Scanner interface {
	// Scan advances to the next message. Returns true if a message was found.
	Scan() bool

	// Message returns the last parsed message.
	// Returns nil if Scan hasn't been called or returned false.
	Message() *hl7.Message

	// Err returns any error encountered during scanning.
	// Returns nil if no error occurred.
	Err() error
}

// scanner is the concrete implementation of Scanner.
type scanner struct {
	reader         *bufio.Reader
	parser         Parser
	config         parserConfig // shared with the Parser, so boundary detection honors the same terminator leniency
	message        *hl7.Message
	err            error
	maxMessageSize int
	pending        []byte // bytes read ahead that belong to the next message
}

// ScannerOption is a functional option for configuring the scanner.
type ScannerOption func(*scanner)

// WithMaxMessageSize sets the maximum allowed message size in bytes.
// Default is 10 MB.
func WithMaxMessageSize(size int) ScannerOption {
	return func(s *scanner) {
		if size > 0 {
			s.maxMessageSize = size
		}
	}
}

// NewScanner creates a new Scanner that reads from the given io.Reader.
// The same ParserOptions configure both how each isolated message is
// parsed and, via WithStrictTerminators, which bytes the scanner itself
// treats as a message boundary while splitting the stream.
func NewScanner(r io.Reader, opts ...ParserOption) Scanner {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &scanner{
		reader:         bufio.NewReaderSize(r, defaultBufferSize),
		parser:         New(opts...),
		config:         cfg,
		maxMessageSize: defaultMaxMessageSize,
	}
}

// NewScannerWithOptions creates a new Scanner with additional scanner-specific options.
func NewScannerWithOptions(r io.Reader, parserOpts []ParserOption, scannerOpts ...ScannerOption) Scanner {
	s := NewScanner(r, parserOpts...).(*scanner)
	for _, opt := range scannerOpts {
		opt(s)
	}
	return s
}

// Scan advances to the next message.
func (s *scanner) Scan() bool {
	s.message = nil

	data, err := s.readMessage()
	if err != nil {
		if err != io.EOF {
			s.err = err
		}
		return false
	}

	if len(data) == 0 {
		return false
	}

	msg, err := s.parser.Parse(data)
	if err != nil {
		s.err = err
		return false
	}

	s.message = msg
	return true
}

// Message returns the last parsed message.
func (s *scanner) Message() *hl7.Message {
	return s.message
}

// Err returns any error encountered during scanning.
func (s *scanner) Err() error {
	return s.err
}

// isTerminator reports whether b ends a segment under the scanner's
// configured leniency: CR always, plus bare LF when the parser isn't
// configured with WithStrictTerminators. This mirrors hl7.splitSegments'
// own CR/LF/CRLF leniency so the scanner carves the same message
// boundaries out of the stream that hl7.ParseMessage would carve out of
// an already-isolated message.
func (s *scanner) isTerminator(b byte) bool {
	if b == hl7.SegmentTerminator {
		return true
	}
	return !s.config.strict && b == '\n'
}

// readMessage reads a complete HL7 message from the reader.
// It handles both MLLP-framed and plain, terminator-delimited messages.
func (s *scanner) readMessage() ([]byte, error) {
	var firstByte byte
	if len(s.pending) > 0 {
		firstByte = s.pending[0]
	} else {
		peeked, err := s.reader.Peek(1)
		if err != nil {
			return nil, err
		}
		firstByte = peeked[0]
	}

	if firstByte == mllpStartByte {
		return s.readMLLPMessage()
	}

	return s.readPlainMessage()
}

// readMLLPMessage reads an MLLP-framed message.
// MLLP format: <VT>message<FS><CR> where VT=0x0B, FS=0x1C, CR=0x0D
func (s *scanner) readMLLPMessage() ([]byte, error) {
	if len(s.pending) > 0 && s.pending[0] == mllpStartByte {
		s.pending = s.pending[1:]
	} else {
		if _, err := s.reader.ReadByte(); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	size := 0

	for len(s.pending) > 0 {
		b := s.pending[0]
		s.pending = s.pending[1:]

		if b == mllpEndByte1 {
			if len(s.pending) > 0 && s.pending[0] == mllpEndByte2 {
				s.pending = s.pending[1:]
			}
			return buf.Bytes(), nil
		}

		size++
		if size > s.maxMessageSize {
			return nil, ErrMessageTooLarge
		}
		buf.WriteByte(b)
	}

	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			return nil, err
		}

		if b == mllpEndByte1 {
			nextByte, err := s.reader.Peek(1)
			if err == nil && len(nextByte) > 0 && nextByte[0] == mllpEndByte2 {
				_, _ = s.reader.ReadByte()
			}
			break
		}

		size++
		if size > s.maxMessageSize {
			return nil, ErrMessageTooLarge
		}

		buf.WriteByte(b)
	}

	return buf.Bytes(), nil
}

// readPlainMessage reads one non-MLLP HL7 message, splitting the stream
// on the same boundary convention hl7.ParseMessage uses for segments,
// raised one level to message framing: a message ends at a run of two
// or more terminator bytes, at a terminator immediately followed by a
// new MSH segment, or at EOF. Which bytes count as a terminator is
// governed by the scanner's parserConfig (see isTerminator) — strict
// mode narrows this to CR only, matching WithStrictTerminators' effect
// on the per-message parse.
func (s *scanner) readPlainMessage() ([]byte, error) {
	var buf bytes.Buffer
	size := 0

	for i := 0; i < len(s.pending); i++ {
		b := s.pending[i]
		if !s.isTerminator(b) {
			continue
		}

		if i+1 < len(s.pending) && s.isTerminator(s.pending[i+1]) {
			buf.Write(s.pending[:i])
			s.pending = s.pending[i+2:]
			return buf.Bytes(), nil
		}

		if i+4 < len(s.pending) && s.pending[i+1] == 'M' && s.pending[i+2] == 'S' && s.pending[i+3] == 'H' {
			buf.Write(s.pending[:i])
			s.pending = s.pending[i+1:]
			return buf.Bytes(), nil
		}
	}

	if len(s.pending) > 0 {
		buf.Write(s.pending)
		size = len(s.pending)
		s.pending = nil
	}

	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			if err == io.EOF {
				if buf.Len() > 0 {
					return buf.Bytes(), nil
				}
				return nil, io.EOF
			}
			return nil, err
		}

		if s.isTerminator(b) {
			peek, peekErr := s.reader.Peek(1)
			if peekErr == nil && len(peek) > 0 {
				if s.isTerminator(peek[0]) {
					_, _ = s.reader.ReadByte()
					return buf.Bytes(), nil
				}
				if peek[0] == 'M' {
					peek3, peekErr := s.reader.Peek(3)
					if peekErr == nil && len(peek3) >= 3 && peek3[0] == 'M' && peek3[1] == 'S' && peek3[2] == 'H' {
						return buf.Bytes(), nil
					}
				}
			}
		}

		size++
		if size > s.maxMessageSize {
			return nil, ErrMessageTooLarge
		}

		buf.WriteByte(b)
	}
}
