package hl7

import (
	"errors"
	"testing"
)

func TestParseMessageMinimalMSH(t *testing.T) {
	msg, err := ParseMessage("MSH|^~\\&|")
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if msg.SegmentCount() != 1 {
		t.Fatalf("SegmentCount = %d, want 1", msg.SegmentCount())
	}
	msh, ok := msg.Segment("MSH")
	if !ok {
		t.Fatal("missing MSH segment")
	}
	// Trailing field separator with nothing after it still yields a third,
	// empty field: a field list always has at least one element, even if
	// that element is empty.
	if msh.FieldCount() != 3 {
		t.Fatalf("FieldCount = %d, want 3", msh.FieldCount())
	}
	f1, _ := msh.Field(1)
	if f1.Raw() != "|" {
		t.Errorf("field 1 raw = %q, want %q", f1.Raw(), "|")
	}
	f2, _ := msh.Field(2)
	if f2.Raw() != "^~\\&" {
		t.Errorf("field 2 raw = %q, want %q", f2.Raw(), "^~\\&")
	}
	f3, _ := msh.Field(3)
	if f3.Raw() != "" {
		t.Errorf("field 3 raw = %q, want empty", f3.Raw())
	}
}

func TestParseMessageMinimalMSHNoTrailingSeparator(t *testing.T) {
	msg, err := ParseMessage("MSH|^~\\&")
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	msh, _ := msg.Segment("MSH")
	if msh.FieldCount() != 2 {
		t.Fatalf("FieldCount = %d, want 2 (no separator after MSH-2 means no MSH-3)", msh.FieldCount())
	}
}

func TestParseMessageMultipleSegments(t *testing.T) {
	raw := "MSH|^~\\&|SENDAPP|FAC|RECVAPP|FAC|20240101120000||ADT^A01|MSG001|P|2.5\rEVN|A01|20240101120000\rPID|1||123456^^^MRN||DOE^JOHN\r"
	msg, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if msg.SegmentCount() != 3 {
		t.Fatalf("SegmentCount = %d, want 3", msg.SegmentCount())
	}
	pid, ok := msg.Segment("PID")
	if !ok {
		t.Fatal("missing PID segment")
	}
	f3, ok := pid.Field(3)
	if !ok {
		t.Fatal("missing PID-3")
	}
	comp1, ok := f3.Repeat(1)
	if !ok {
		t.Fatal("missing PID-3 repeat 1")
	}
	c1, _ := comp1.Component(1)
	if c1.Raw() != "123456" {
		t.Errorf("PID-3.1 = %q, want 123456", c1.Raw())
	}
	f5, _ := pid.Field(5)
	r1, _ := f5.Repeat(1)
	c1, _ = r1.Component(1)
	c2, _ := r1.Component(2)
	if c1.Raw() != "DOE" || c2.Raw() != "JOHN" {
		t.Errorf("PID-5 = %q^%q, want DOE^JOHN", c1.Raw(), c2.Raw())
	}
}

func TestParseMessageRepeatingField(t *testing.T) {
	raw := "MSH|^~\\&|||||||||||\rAL1|1|DA|PENICILLIN~ASPIRIN~LATEX\r"
	msg, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	al1, ok := msg.Segment("AL1")
	if !ok {
		t.Fatal("missing AL1 segment")
	}
	f3, _ := al1.Field(3)
	if f3.RepeatCount() != 3 {
		t.Fatalf("RepeatCount = %d, want 3", f3.RepeatCount())
	}
	r2, _ := f3.Repeat(2)
	if r2.Raw() != "ASPIRIN" {
		t.Errorf("repeat 2 = %q, want ASPIRIN", r2.Raw())
	}
}

func TestParseMessageEscapedFieldSeparatorDoesNotSplit(t *testing.T) {
	raw := "MSH|^~\\&|||||||||||\rNTE|1||before\\F\\after\r"
	msg, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	nte, _ := msg.Segment("NTE")
	f3, _ := nte.Field(3)
	if f3.Raw() != "before\\F\\after" {
		t.Errorf("NTE-3 raw = %q, want unsplit escape token", f3.Raw())
	}
	if f3.RepeatCount() != 1 {
		t.Fatalf("RepeatCount = %d, want 1", f3.RepeatCount())
	}
}

func TestParseMessageEscapedLiteralSeparatorDoesNotSplit(t *testing.T) {
	// An escape character directly preceding a literal field separator byte
	// is an atomic two-rune unit, not a split point.
	raw := "MSH|^~\\&|||||||||||\rNTE|1||a\\|b\r"
	msg, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	nte, _ := msg.Segment("NTE")
	if nte.FieldCount() != 3 {
		t.Fatalf("FieldCount = %d, want 3 (escaped separator must not split the field)", nte.FieldCount())
	}
	f3, _ := nte.Field(3)
	if f3.Raw() != "a\\|b" {
		t.Errorf("NTE-3 raw = %q, want a\\|b", f3.Raw())
	}
}

func TestParseMessageLenientTerminators(t *testing.T) {
	raw := "MSH|^~\\&|||||||||||\nPID|1\r\nEVN|A01\r"
	msg, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if msg.SegmentCount() != 3 {
		t.Fatalf("SegmentCount = %d, want 3", msg.SegmentCount())
	}
}

func TestParseMessageStrictTerminatorsRejectsBareLF(t *testing.T) {
	raw := "MSH|^~\\&|||||||||||\nPID|1\r"
	msg, err := ParseMessage(raw, WithStrictTerminators())
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	// Under strict mode the bare LF is data, not a terminator, so there is
	// exactly one segment spanning both lines.
	if msg.SegmentCount() != 1 {
		t.Fatalf("SegmentCount = %d, want 1", msg.SegmentCount())
	}
}

func TestParseMessageRepeatedSegmentOccurrence(t *testing.T) {
	raw := "MSH|^~\\&|||||||||||\rOBX|1\rOBX|2\rOBX|3\r"
	msg, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if msg.SegmentOccurrences("OBX") != 3 {
		t.Fatalf("SegmentOccurrences = %d, want 3", msg.SegmentOccurrences("OBX"))
	}
	second, ok := msg.SegmentN("OBX", 2)
	if !ok {
		t.Fatal("missing second OBX")
	}
	if second.Occurrence() != 2 {
		t.Errorf("Occurrence = %d, want 2", second.Occurrence())
	}
	f1, _ := second.Field(1)
	if f1.Raw() != "2" {
		t.Errorf("second OBX field 1 = %q, want 2", f1.Raw())
	}
}

func TestParseMessageEmptyInput(t *testing.T) {
	if _, err := ParseMessage(""); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("err = %v, want ErrEmptyMessage", err)
	}
}

func TestParseMessageMissingMSH(t *testing.T) {
	raw := "PID|1||123456\r"
	if _, err := ParseMessage(raw); !errors.Is(err, ErrMissingMSH) {
		t.Fatalf("err = %v, want ErrMissingMSH", err)
	}
}

func TestParseMessageRangesAreMonotonicAndContained(t *testing.T) {
	raw := "MSH|^~\\&|A|B^C|D&E~F\rPID|1||123456^^^MRN\r"
	msg, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	for _, seg := range msg.Segments() {
		if seg.Start() < 0 || seg.End() > len(raw) || seg.Start() > seg.End() {
			t.Fatalf("segment %s range [%d,%d) invalid", seg.Name(), seg.Start(), seg.End())
		}
		for _, f := range seg.Fields() {
			if f.Start() < seg.Start() || f.End() > seg.End() {
				t.Fatalf("field %d range [%d,%d) escapes segment [%d,%d)", f.SeqNum(), f.Start(), f.End(), seg.Start(), seg.End())
			}
			for _, r := range f.Repeats() {
				if r.Start() < f.Start() || r.End() > f.End() {
					t.Fatalf("repeat range [%d,%d) escapes field [%d,%d)", r.Start(), r.End(), f.Start(), f.End())
				}
				for _, c := range r.Components() {
					if c.Start() < r.Start() || c.End() > r.End() {
						t.Fatalf("component range [%d,%d) escapes repeat [%d,%d)", c.Start(), c.End(), r.Start(), r.End())
					}
					for _, sc := range c.SubComponents() {
						if sc.Start() < c.Start() || sc.End() > c.End() {
							t.Fatalf("subcomponent range [%d,%d) escapes component [%d,%d)", sc.Start(), sc.End(), c.Start(), c.End())
						}
						if sc.Raw() != raw[sc.Start():sc.End()] {
							t.Fatalf("subcomponent Raw() does not match backing text slice")
						}
					}
				}
			}
		}
	}
}

func TestParseMessageRawRecomposesWithSeparators(t *testing.T) {
	raw := "MSH|^~\\&|A|B^C^D|E&F\r"
	msg, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	msh, _ := msg.Segment("MSH")
	seps := msg.Separators()
	f4, _ := msh.Field(4)
	var comps []string
	r1, _ := f4.Repeat(1)
	for _, c := range r1.Components() {
		comps = append(comps, c.Raw())
	}
	joined := comps[0]
	for _, c := range comps[1:] {
		joined += string(seps.Component) + c
	}
	if joined != f4.Raw() {
		t.Errorf("recomposed %q != field raw %q", joined, f4.Raw())
	}
}
