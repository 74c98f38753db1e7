package parse

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dshills/golevel7v2/hl7"
)

// Sample HL7 messages for testing
const (
	simpleADT = "MSH|^~\\&|SENDING|FACILITY|RECEIVING|FACILITY|202301011200||ADT^A01|MSG001|P|2.5\rPID|1||12345^^^MRN||Doe^John^A||19800101|M\r"

	mllpFramedADT = "\x0BMSH|^~\\&|SENDING|FACILITY|RECEIVING|FACILITY|202301011200||ADT^A01|MSG001|P|2.5\rPID|1||12345^^^MRN||Doe^John^A||19800101|M\r\x1C\x0D"

	oru = "MSH|^~\\&|LAB|HOSPITAL|HIS|HOSPITAL|202301011200||ORU^R01|MSG002|P|2.5\rPID|1||67890^^^MRN||Smith^Jane||19750515|F\rOBR|1|ORD001|ACC001|CBC^Complete Blood Count\rOBX|1|NM|WBC^White Blood Cell Count||7.5|10*3/uL|4.5-11.0|N|||F\r"

	mshOnly = "MSH|^~\\&|SENDING|FACILITY|RECEIVING|FACILITY|202301011200||ACK|MSG003|P|2.5\r"

	noTerminator = "MSH|^~\\&|SENDING|FACILITY|RECEIVING|FACILITY|202301011200||ADT^A01|MSG004|P|2.5"
)

// fieldValue returns the decoded value of segName's seq'th field, or "" if
// the segment or field is absent.
func fieldValue(t *testing.T, msg *hl7.Message, segName string, seq int) string {
	t.Helper()
	seg, ok := msg.Segment(segName)
	if !ok {
		return ""
	}
	f, ok := seg.Field(seq)
	if !ok {
		return ""
	}
	return f.Value(msg.Separators())
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []ParserOption
	}{
		{name: "default parser", opts: nil},
		{name: "with strict terminators", opts: []ParserOption{WithStrictTerminators()}},
		{name: "with custom max segments", opts: []ParserOption{WithMaxSegments(100)}},
		{
			name: "with multiple options",
			opts: []ParserOption{
				WithStrictTerminators(),
				WithMaxSegments(500),
				WithMaxFieldLength(32768),
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := New(tt.opts...)
			if p == nil {
				t.Fatal("New() returned nil")
			}
		})
	}
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		opts        []ParserOption
		wantErr     bool
		errContains string
		validate    func(*testing.T, *hl7.Message)
	}{
		{
			name:    "simple ADT message",
			input:   simpleADT,
			wantErr: false,
			validate: func(t *testing.T, msg *hl7.Message) {
				segs := msg.Segments()
				if len(segs) != 2 {
					t.Errorf("expected 2 segments, got %d", len(segs))
				}
				if _, ok := msg.Segment("MSH"); !ok {
					t.Fatal("MSH segment not found")
				}
				if _, ok := msg.Segment("PID"); !ok {
					t.Fatal("PID segment not found")
				}
			},
		},
		{
			name:    "MLLP framed message",
			input:   mllpFramedADT,
			wantErr: false,
			validate: func(t *testing.T, msg *hl7.Message) {
				segs := msg.Segments()
				if len(segs) != 2 {
					t.Errorf("expected 2 segments, got %d", len(segs))
				}
			},
		},
		{
			name:    "ORU message with multiple segments",
			input:   oru,
			wantErr: false,
			validate: func(t *testing.T, msg *hl7.Message) {
				segs := msg.Segments()
				if len(segs) != 4 {
					t.Errorf("expected 4 segments, got %d", len(segs))
				}
				if _, ok := msg.Segment("OBX"); !ok {
					t.Fatal("OBX segment not found")
				}
			},
		},
		{
			name:    "MSH only message",
			input:   mshOnly,
			wantErr: false,
			validate: func(t *testing.T, msg *hl7.Message) {
				if got := len(msg.Segments()); got != 1 {
					t.Errorf("expected 1 segment, got %d", got)
				}
			},
		},
		{
			name:    "message without final terminator",
			input:   noTerminator,
			wantErr: false,
			validate: func(t *testing.T, msg *hl7.Message) {
				if got := len(msg.Segments()); got != 1 {
					t.Errorf("expected 1 segment, got %d", got)
				}
			},
		},
		{
			name:        "empty input",
			input:       "",
			wantErr:     true,
			errContains: "empty",
		},
		{
			name:        "no MSH segment",
			input:       "PID|1||12345^^^MRN||Doe^John\r",
			wantErr:     true,
			errContains: "MSH",
		},
		{
			name:        "MSH not first segment",
			input:       "PID|1||12345\rMSH|^~\\&|SENDING|FACILITY|||202301011200||ADT^A01|MSG|P|2.5\r",
			wantErr:     true,
			errContains: "MSH",
		},
		{
			name:    "message with LF terminators (lenient default)",
			input:   "MSH|^~\\&|SENDING|FACILITY|||202301011200||ADT^A01|MSG|P|2.5\nPID|1||12345\n",
			wantErr: false,
			validate: func(t *testing.T, msg *hl7.Message) {
				if got := len(msg.Segments()); got != 2 {
					t.Errorf("expected 2 segments, got %d", got)
				}
			},
		},
		{
			name:    "message with LF terminators (strict mode rejects)",
			input:   "MSH|^~\\&|SENDING|FACILITY|||202301011200||ADT^A01|MSG|P|2.5\nPID|1||12345\n",
			opts:    []ParserOption{WithStrictTerminators()},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := New(tt.opts...)
			msg, err := p.Parse([]byte(tt.input))

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(strings.ToLower(err.Error()), strings.ToLower(tt.errContains)) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, msg)
			}
		})
	}
}

func TestParser_ParseContext(t *testing.T) {
	t.Parallel()

	t.Run("context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := New()
		_, err := p.ParseContext(ctx, []byte(simpleADT))

		if err == nil {
			t.Fatal("expected error for canceled context")
		}
		if !errors.Is(err, ErrContextCanceled) {
			t.Errorf("expected ErrContextCanceled, got %v", err)
		}
	})

	t.Run("context timeout", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Nanosecond)
		defer cancel()
		time.Sleep(1 * time.Millisecond)

		p := New()
		_, err := p.ParseContext(ctx, []byte(simpleADT))
		if err == nil {
			t.Fatal("expected error for timed out context")
		}
	})

	t.Run("successful parse with context", func(t *testing.T) {
		t.Parallel()

		p := New()
		msg, err := p.ParseContext(context.Background(), []byte(simpleADT))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if msg == nil {
			t.Fatal("message is nil")
		}
	})
}

func TestParser_MaxSegments(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sb.WriteString("MSH|^~\\&|SENDING|FACILITY|||202301011200||ADT^A01|MSG|P|2.5\r")
	for i := 0; i < 10; i++ {
		sb.WriteString("PID|1||12345\r")
	}
	input := sb.String()

	tests := []struct {
		name        string
		maxSegments int
		wantErr     bool
	}{
		{name: "within limit", maxSegments: 100, wantErr: false},
		{name: "at limit", maxSegments: 11, wantErr: false},
		{name: "exceeds limit", maxSegments: 5, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := New(WithMaxSegments(tt.maxSegments))
			_, err := p.Parse([]byte(input))

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, ErrTooManySegments) {
					t.Errorf("expected ErrTooManySegments, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestParser_MaxFieldLength(t *testing.T) {
	t.Parallel()

	longValue := strings.Repeat("X", 100)
	input := "MSH|^~\\&|SENDING|FACILITY|||202301011200||ADT^A01|MSG|P|2.5\rPID|1||" + longValue + "\r"

	tests := []struct {
		name           string
		maxFieldLength int
		wantErr        bool
	}{
		{name: "within limit", maxFieldLength: 200, wantErr: false},
		{name: "at limit", maxFieldLength: 100, wantErr: false},
		{name: "exceeds limit", maxFieldLength: 50, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := New(WithMaxFieldLength(tt.maxFieldLength))
			_, err := p.Parse([]byte(input))

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("expected ErrFieldTooLong, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestStripMLLP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []byte
		expected []byte
	}{
		{name: "no MLLP framing", input: []byte("MSH|^~\\&|"), expected: []byte("MSH|^~\\&|")},
		{name: "full MLLP framing", input: []byte{0x0B, 'M', 'S', 'H', '|', 0x1C, 0x0D}, expected: []byte{'M', 'S', 'H', '|'}},
		{name: "start byte only", input: []byte{0x0B, 'M', 'S', 'H', '|'}, expected: []byte{'M', 'S', 'H', '|'}},
		{name: "end bytes only (FS CR)", input: []byte{'M', 'S', 'H', '|', 0x1C, 0x0D}, expected: []byte{'M', 'S', 'H', '|'}},
		{name: "FS without CR", input: []byte{'M', 'S', 'H', '|', 0x1C}, expected: []byte{'M', 'S', 'H', '|'}},
		{name: "empty input", input: []byte{}, expected: []byte{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := stripMLLP(tt.input)
			if string(result) != string(tt.expected) {
				t.Errorf("stripMLLP() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestParser_MessageValues(t *testing.T) {
	t.Parallel()

	p := New()
	msg, err := p.Parse([]byte(simpleADT))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := fieldValue(t, msg, "MSH", 9); got != "ADT^A01" {
		t.Errorf("expected message type ADT^A01, got %s", got)
	}
	if got := fieldValue(t, msg, "MSH", 10); got != "MSG001" {
		t.Errorf("expected control ID MSG001, got %s", got)
	}
	if got := fieldValue(t, msg, "MSH", 12); got != "2.5" {
		t.Errorf("expected version 2.5, got %s", got)
	}

	seps := msg.Separators()
	if seps.Field != '|' {
		t.Errorf("expected field separator |, got %c", seps.Field)
	}
	if seps.Component != '^' {
		t.Errorf("expected component separator ^, got %c", seps.Component)
	}
}

func BenchmarkParser_Parse_SimpleADT(b *testing.B) {
	p := New()
	data := []byte(simpleADT)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Parse(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParser_Parse_ORU(b *testing.B) {
	p := New()
	data := []byte(oru)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Parse(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParser_Parse_MLLP(b *testing.B) {
	p := New()
	data := []byte(mllpFramedADT)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Parse(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParser_Parse_LargeMessage(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("MSH|^~\\&|SENDING|FACILITY|||202301011200||ORU^R01|MSG|P|2.5\r")
	sb.WriteString("PID|1||12345^^^MRN||Doe^John^A||19800101|M\r")
	for i := 0; i < 100; i++ {
		sb.WriteString("OBX|1|NM|WBC||7.5|10*3/uL|4.5-11.0|N|||F\r")
	}
	data := []byte(sb.String())

	p := New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Parse(data); err != nil {
			b.Fatal(err)
		}
	}
}
