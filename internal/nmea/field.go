package nmea

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
	"unsafe"
)

// Field accessors all follow the same contract: the value is absent (ok is
// false) when the index is out of range, the field is empty, or the text does
// not parse as the requested type. The three causes are not distinguished.

type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type Floating interface {
	~float32 | ~float64
}

type Number interface {
	Integer | Floating
}

// ValueWithUnit pairs a value with the single-character unit or flag read
// from an adjacent field, e.g. 3.2,N.
type ValueWithUnit[T any] struct {
	Value T    `json:"value"`
	Unit  rune `json:"unit"`
}

func (v ValueWithUnit[T]) String() string {
	return fmt.Sprintf("%v %c", v.Value, v.Unit)
}

// MarshalJSON renders the unit as a one-character string rather than a code point.
func (v ValueWithUnit[T]) MarshalJSON() ([]byte, error) {
	return marshalPair(v.Value, v.Unit)
}

// TimeOfDay is a UTC time of day with millisecond resolution.
type TimeOfDay struct {
	Hour        int
	Minute      int
	Second      int
	Millisecond int
}

// Duration returns the offset of t from midnight.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t.Hour)*time.Hour +
		time.Duration(t.Minute)*time.Minute +
		time.Duration(t.Second)*time.Second +
		time.Duration(t.Millisecond)*time.Millisecond
}

// On returns t on the calendar day of date, in UTC.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Add(t.Duration())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d", t.Hour, t.Minute, t.Second, t.Millisecond)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Int parses field i as a base-10 integer that fits T.
func Int[T Integer](s Sentence, i int) (T, bool) {
	v, ok := s.raw(i)
	if !ok {
		return 0, false
	}
	return parseInteger[T](v, 10)
}

// Float parses field i as a decimal floating-point number.
func Float[T Floating](s Sentence, i int) (T, bool) {
	v, ok := s.raw(i)
	if !ok {
		return 0, false
	}
	var zero T
	f, ok := parseDecimal(v, int(unsafe.Sizeof(zero))*8)
	if !ok {
		return 0, false
	}
	return T(f), true
}

// Hex parses field i as a base-16 numeral. For floating-point targets the
// digits are read as a numeral in base 16 (so "E" is 14.0 and "1.8" is 1.5);
// no fixed-point scaling is applied.
func Hex[T Number](s Sentence, i int) (T, bool) {
	v, ok := s.raw(i)
	if !ok {
		return 0, false
	}
	if isFloat[T]() {
		f, ok := parseHexFloat(v)
		if !ok {
			return 0, false
		}
		return T(f), true
	}

	v, ok = trimPlus(v)
	if !ok {
		return 0, false
	}
	var zero T
	bits := int(unsafe.Sizeof(zero)) * 8
	if zero-1 < zero {
		n, err := strconv.ParseInt(v, 16, bits)
		if err != nil {
			return 0, false
		}
		return T(n), true
	}
	n, err := strconv.ParseUint(v, 16, bits)
	if err != nil {
		return 0, false
	}
	return T(n), true
}

// Pair reads a value with get at valueIdx and a one-character unit at
// unitIdx. Both must be present for the pair to be present.
func Pair[T any](s Sentence, valueIdx, unitIdx int, get func(Sentence, int) (T, bool)) (ValueWithUnit[T], bool) {
	v, ok := get(s, valueIdx)
	if !ok {
		return ValueWithUnit[T]{}, false
	}
	u, ok := s.Char(unitIdx)
	if !ok {
		return ValueWithUnit[T]{}, false
	}
	return ValueWithUnit[T]{Value: v, Unit: u}, true
}

// FloatPair is Pair for the common float64 value + unit layout.
func (s Sentence) FloatPair(valueIdx, unitIdx int) (ValueWithUnit[float64], bool) {
	return Pair(s, valueIdx, unitIdx, Float[float64])
}

// Char returns field i when it holds exactly one character.
func (s Sentence) Char(i int) (rune, bool) {
	v, ok := s.raw(i)
	if !ok || utf8.RuneCountInString(v) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(v)
	if r == utf8.RuneError {
		return 0, false
	}
	return r, true
}

// Text returns field i when it is non-empty.
func (s Sentence) Text(i int) (string, bool) {
	return s.raw(i)
}

// Time parses field i as hhmmss with an optional fractional-seconds suffix
// (hhmmss.sss). Hours and minutes are the first two pairs; seconds and their
// fraction are read from offset 5 onward, so "173617" yields 17:36:07.
// Fractional seconds are truncated to milliseconds.
func (s Sentence) Time(i int) (TimeOfDay, bool) {
	v, ok := s.raw(i)
	if !ok || len(v) < 6 {
		return TimeOfDay{}, false
	}
	h, err := strconv.ParseUint(v[0:2], 10, 32)
	if err != nil {
		return TimeOfDay{}, false
	}
	m, err := strconv.ParseUint(v[2:4], 10, 32)
	if err != nil {
		return TimeOfDay{}, false
	}
	sec, ok := parseDecimal(v[5:], 64)
	if !ok || sec < 0 || math.IsInf(sec, 0) || math.IsNaN(sec) {
		return TimeOfDay{}, false
	}
	whole := math.Floor(sec)
	// The epsilon absorbs binary representation error, e.g. .123 -> 122.99999.
	millis := int(math.Floor((sec-whole)*1000 + 1e-6))
	if millis > 999 {
		millis = 999
	}
	if h > 23 || m > 59 || whole > 59 {
		return TimeOfDay{}, false
	}
	return TimeOfDay{Hour: int(h), Minute: int(m), Second: int(whole), Millisecond: millis}, true
}

// Date parses field i as ddmmyy (years 2000-2099) and returns midnight UTC of
// that day. Non-numeric components fall through to an invalid date.
func (s Sentence) Date(i int) (time.Time, bool) {
	v, ok := s.raw(i)
	if !ok || len(v) != 6 {
		return time.Time{}, false
	}
	day := atoiOrZero(v[0:2])
	month := atoiOrZero(v[2:4])
	year := atoiOrZero(v[4:6]) + 2000
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

// Coordinate reads a numeric coordinate and its hemisphere letter. The value
// is negated when the hemisphere is exactly "S" or "W"; any other letter
// (including lower case) leaves the sign alone. The magnitude is returned in
// the wire's (d)ddmm.mmmm form; see DecimalDegrees.
func (s Sentence) Coordinate(valueIdx, hemisphereIdx int) (float64, bool) {
	v, ok := Float[float64](s, valueIdx)
	if !ok {
		return 0, false
	}
	h, ok := s.Char(hemisphereIdx)
	if !ok {
		return 0, false
	}
	if h == 'S' || h == 'W' {
		return -v, true
	}
	return v, true
}

// DecimalDegrees converts a (d)ddmm.mmmm coordinate to decimal degrees,
// keeping its sign.
func DecimalDegrees(v float64) float64 {
	sign := 1.0
	if v < 0 {
		sign = -1
		v = -v
	}
	deg := math.Floor(v / 100)
	mins := v - deg*100
	return sign * (deg + mins/60)
}

func parseInteger[T Integer](v string, base int) (T, bool) {
	v, ok := trimPlus(v)
	if !ok {
		return 0, false
	}
	var zero T
	bits := int(unsafe.Sizeof(zero)) * 8
	if zero-1 < zero {
		n, err := strconv.ParseInt(v, base, bits)
		if err != nil {
			return 0, false
		}
		return T(n), true
	}
	n, err := strconv.ParseUint(v, base, bits)
	if err != nil {
		return 0, false
	}
	return T(n), true
}

// trimPlus drops one leading '+' so signed and unsigned integer targets
// accept the same text.
func trimPlus(v string) (string, bool) {
	if !strings.HasPrefix(v, "+") {
		return v, true
	}
	v = v[1:]
	if strings.HasPrefix(v, "+") || strings.HasPrefix(v, "-") {
		return "", false
	}
	return v, true
}

// parseDecimal reads a decimal float: optional sign, digits, fraction and
// exponent, or inf/nan. strconv's hex floats (0x1p4) are rejected.
func parseDecimal(v string, bits int) (float64, bool) {
	u := strings.TrimPrefix(strings.TrimPrefix(v, "-"), "+")
	if len(u) >= 2 && u[0] == '0' && (u[1] == 'x' || u[1] == 'X') {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, bits)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isFloat[T Number]() bool {
	half := 0.5
	return T(half) != 0
}

// parseHexFloat reads [+-]hhh[.hhh] as a base-16 numeral.
func parseHexFloat(v string) (float64, bool) {
	neg := false
	switch {
	case strings.HasPrefix(v, "-"):
		neg = true
		v = v[1:]
	case strings.HasPrefix(v, "+"):
		v = v[1:]
	}
	intPart, fracPart, hasDot := strings.Cut(v, ".")
	if intPart == "" && fracPart == "" {
		return 0, false
	}
	if hasDot && strings.ContainsRune(fracPart, '.') {
		return 0, false
	}

	out := 0.0
	for i := 0; i < len(intPart); i++ {
		d, ok := hexDigit(intPart[i])
		if !ok {
			return 0, false
		}
		out = out*16 + float64(d)
	}
	scale := 1.0 / 16
	for i := 0; i < len(fracPart); i++ {
		d, ok := hexDigit(fracPart[i])
		if !ok {
			return 0, false
		}
		out += float64(d) * scale
		scale /= 16
	}
	if neg {
		out = -out
	}
	return out, true
}

func atoiOrZero(s string) int {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return int(n)
}
