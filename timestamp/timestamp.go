package timestamp

import (
	"strconv"
	"strings"
	"time"
)

// Precision records the deepest component present in a Stamp.
type Precision int

const (
	PrecisionYear Precision = iota
	PrecisionMonth
	PrecisionDay
	PrecisionHour
	PrecisionMinute
	PrecisionSecond
	PrecisionFraction
)

// Stamp is a partially-specified HL7 timestamp. Only the fields through
// Precision are meaningful; the rest are zero. An offset, when present,
// is independent of Precision and is always printed if HasOffset is
// true.
type Stamp struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int

	// Microsecond is the fractional-seconds component scaled to
	// microseconds (a 1-digit fraction "1" becomes 100000, matching
	// multiplying by 10^(6-1)).
	Microsecond int
	// FractionDigits is the number of digits originally parsed (1-4),
	// needed to print the fraction back with its original width.
	FractionDigits int

	Precision Precision

	HasOffset bool
	// OffsetMinutes is the signed total offset in minutes, e.g. -420 for
	// "-0700".
	OffsetMinutes int
}

// Parse parses s as an HL7 timestamp. In strict mode, any character
// after the last recognized component or offset is an error. In lenient
// mode, trailing characters are ignored — used when the timestamp is
// embedded inside a larger component.
func Parse(s string, lenient bool) (Stamp, error) {
	if len(s) < 4 {
		return Stamp{}, &ComponentError{Component: "year", Position: 0}
	}
	year, err := digits(s, 0, 4)
	if err != nil {
		return Stamp{}, &ComponentError{Component: "year", Position: 0}
	}
	st := Stamp{Year: year, Precision: PrecisionYear}
	pos := 4

	type step struct {
		name string
		prec Precision
		dst  *int
	}
	steps := []step{
		{"month", PrecisionMonth, &st.Month},
		{"day", PrecisionDay, &st.Day},
		{"hour", PrecisionHour, &st.Hour},
		{"minute", PrecisionMinute, &st.Minute},
		{"second", PrecisionSecond, &st.Second},
	}

	for _, st2 := range steps {
		v, consumed := tryDigits2(s, pos)
		if !consumed {
			break
		}
		*st2.dst = v
		st.Precision = st2.prec
		pos += 2
	}

	if st.Precision == PrecisionSecond && pos < len(s) && s[pos] == '.' {
		fracPos := pos + 1
		n := 0
		for fracPos+n < len(s) && n < 4 && isDigit(s[fracPos+n]) {
			n++
		}
		if n > 0 {
			frac, _ := strconv.Atoi(s[fracPos : fracPos+n])
			st.Microsecond = frac * pow10(6-n)
			st.FractionDigits = n
			st.Precision = PrecisionFraction
			pos = fracPos + n
		}
	}

	st.HasOffset, st.OffsetMinutes, pos = parseOffset(s, pos)

	if pos != len(s) && !lenient {
		return Stamp{}, &TrailingCharactersError{Position: pos}
	}

	return st, nil
}

// ParseDate parses s as a date-only timestamp (year, optionally month
// and day; no time-of-day or offset components are accepted).
func ParseDate(s string, lenient bool) (Stamp, error) {
	st, err := Parse(s, lenient)
	if err != nil {
		return Stamp{}, err
	}
	if st.Precision > PrecisionDay {
		return Stamp{}, &TrailingCharactersError{Position: 8}
	}
	return st, nil
}

// ParseTime parses s as a time-of-day (hour, optionally minute, second,
// fraction, and offset), with no implicit date. The year, month, and day
// fields of the returned Stamp are zero and must be supplied separately
// by the caller if a full instant is needed.
func ParseTime(s string, lenient bool) (Stamp, error) {
	if len(s) < 2 {
		return Stamp{}, &ComponentError{Component: "hour", Position: 0}
	}
	hour, err := digits(s, 0, 2)
	if err != nil {
		return Stamp{}, &ComponentError{Component: "hour", Position: 0}
	}
	st := Stamp{Hour: hour, Precision: PrecisionHour}
	pos := 2

	if v, consumed := tryDigits2(s, pos); consumed {
		st.Minute = v
		st.Precision = PrecisionMinute
		pos += 2

		if v2, consumed2 := tryDigits2(s, pos); consumed2 {
			st.Second = v2
			st.Precision = PrecisionSecond
			pos += 2
		}
	}

	if st.Precision == PrecisionSecond && pos < len(s) && s[pos] == '.' {
		fracPos := pos + 1
		n := 0
		for fracPos+n < len(s) && n < 4 && isDigit(s[fracPos+n]) {
			n++
		}
		if n > 0 {
			frac, _ := strconv.Atoi(s[fracPos : fracPos+n])
			st.Microsecond = frac * pow10(6-n)
			st.FractionDigits = n
			st.Precision = PrecisionFraction
			pos = fracPos + n
		}
	}

	st.HasOffset, st.OffsetMinutes, pos = parseOffset(s, pos)

	if pos != len(s) && !lenient {
		return Stamp{}, &TrailingCharactersError{Position: pos}
	}

	return st, nil
}

// String prints the timestamp to its canonical HL7 form, re-emitting
// components only through the deepest one present. Omitted components
// are never zero-padded in; they are simply absent.
func (t Stamp) String() string {
	var b strings.Builder
	b.WriteString(pad(t.Year, 4))
	if t.Precision >= PrecisionMonth {
		b.WriteString(pad(t.Month, 2))
	}
	if t.Precision >= PrecisionDay {
		b.WriteString(pad(t.Day, 2))
	}
	if t.Precision >= PrecisionHour {
		b.WriteString(pad(t.Hour, 2))
	}
	if t.Precision >= PrecisionMinute {
		b.WriteString(pad(t.Minute, 2))
	}
	if t.Precision >= PrecisionSecond {
		b.WriteString(pad(t.Second, 2))
	}
	if t.Precision >= PrecisionFraction {
		b.WriteByte('.')
		frac := t.Microsecond / pow10(6-t.FractionDigits)
		b.WriteString(pad(frac, t.FractionDigits))
	}
	if t.HasOffset {
		sign := byte('+')
		abs := t.OffsetMinutes
		if abs < 0 {
			sign = '-'
			abs = -abs
		}
		b.WriteByte(sign)
		b.WriteString(pad(abs/60, 2))
		b.WriteString(pad(abs%60, 2))
	}
	return b.String()
}

// ToTime converts the stamp to a time.Time in loc, treating any absent
// component below Precision as its zero value (month/day default to 1,
// everything else to 0). It validates calendar ranges, something Parse
// itself never does; an out-of-range component returns a *RangeError
// naming the first one.
func (t Stamp) ToTime(loc *time.Location) (time.Time, error) {
	if err := t.rangeCheck(); err != nil {
		return time.Time{}, err
	}
	month := t.Month
	if month == 0 {
		month = 1
	}
	day := t.Day
	if day == 0 {
		day = 1
	}
	location := loc
	if location == nil {
		location = time.UTC
	}
	if t.HasOffset {
		location = time.FixedZone("", t.OffsetMinutes*60)
	}
	tm := time.Date(t.Year, time.Month(month), day, t.Hour, t.Minute, t.Second, t.Microsecond*1000, location)
	if tm.Year() != t.Year || int(tm.Month()) != month || tm.Day() != day {
		return time.Time{}, &RangeError{Component: "day", Value: t.Day}
	}
	return tm, nil
}

func (t Stamp) rangeCheck() error {
	if t.Precision >= PrecisionMonth && (t.Month < 1 || t.Month > 12) {
		return &RangeError{Component: "month", Value: t.Month}
	}
	if t.Precision >= PrecisionDay && (t.Day < 1 || t.Day > 31) {
		return &RangeError{Component: "day", Value: t.Day}
	}
	if t.Precision >= PrecisionHour && (t.Hour < 0 || t.Hour > 23) {
		return &RangeError{Component: "hour", Value: t.Hour}
	}
	if t.Precision >= PrecisionMinute && (t.Minute < 0 || t.Minute > 59) {
		return &RangeError{Component: "minute", Value: t.Minute}
	}
	if t.Precision >= PrecisionSecond && (t.Second < 0 || t.Second > 59) {
		return &RangeError{Component: "second", Value: t.Second}
	}
	return nil
}

func digits(s string, pos, n int) (int, error) {
	if pos+n > len(s) {
		return 0, &ComponentError{Position: pos}
	}
	for i := pos; i < pos+n; i++ {
		if !isDigit(s[i]) {
			return 0, &ComponentError{Position: pos}
		}
	}
	v, err := strconv.Atoi(s[pos : pos+n])
	if err != nil {
		return 0, &ComponentError{Position: pos}
	}
	return v, nil
}

// tryDigits2 attempts to read a 2-digit component at pos. Anything short
// of a full, in-bounds digit pair — running past the end of s, a sign or
// separator byte, a lone trailing digit — backtracks to "absent" with
// zero bytes consumed rather than failing. A partially-matched component
// is never an error here; only the trailing-character check at the end
// of Parse/ParseTime decides pass or fail, in both strict and lenient
// mode.
func tryDigits2(s string, pos int) (value int, consumed bool) {
	if pos+2 > len(s) || !isDigit(s[pos]) || !isDigit(s[pos+1]) {
		return 0, false
	}
	v, _ := strconv.Atoi(s[pos : pos+2])
	return v, true
}

// parseOffset scans an optional timezone offset starting at pos: a sign,
// then independently an hours pair and a minutes pair. Each piece
// backtracks on its own if it doesn't match, so a sign with no digits
// after it, or hours with no minutes after them, still advances pos past
// whatever did match — it just doesn't produce an offset. Only a
// complete sign-hours-minutes run yields hasOffset.
func parseOffset(s string, pos int) (hasOffset bool, minutes int, newPos int) {
	sign := 1
	p := pos
	if p < len(s) && (s[p] == '+' || s[p] == '-') {
		if s[p] == '-' {
			sign = -1
		}
		p++
	}
	hh, hhOK := tryDigits2(s, p)
	if hhOK {
		p += 2
	}
	mm, mmOK := tryDigits2(s, p)
	if mmOK {
		p += 2
	}
	if hhOK && mmOK {
		return true, sign * (hh*60 + mm), p
	}
	return false, 0, p
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

func pow10(n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}
