package nmea

import (
	"errors"
	"strings"
)

// minSentenceLen is the shortest line that can carry a talker, a tag and a
// checksum suffix: $SSMMM*HH.
const minSentenceLen = 9

var (
	ErrTooShort         = errors.New("nmea: sentence too short")
	ErrNoChecksumMarker = errors.New("nmea: missing checksum marker")
	ErrBadChecksum      = errors.New("nmea: bad checksum")
	ErrChecksumMismatch = errors.New("nmea: checksum mismatch")
	ErrNoFields         = errors.New("nmea: missing field separator")
)

// Sentence is the validated decomposition of one NMEA line.
//
// A Sentence is either valid (talker, tag and fields populated, checksum
// verified) or the malformed sentinel: empty talker and tag, no fields, zero
// checksum, with only the original text kept for diagnostics.
type Sentence struct {
	valid    bool
	sender   string
	tag      string
	fields   []string
	checksum byte
	original string
}

func malformed(line string) Sentence {
	return Sentence{original: line}
}

// Decode validates line and splits it into fields. It never fails; a line
// that does not pass the structural and checksum checks yields the malformed
// sentinel.
func Decode(line string) Sentence {
	s, _ := Parse(line)
	return s
}

// Parse is Decode but also reports which check rejected the line.
func Parse(line string) (Sentence, error) {
	n := len(line)
	if n < minSentenceLen {
		return malformed(line), ErrTooShort
	}
	star := n - 3
	if line[star] != '*' {
		return malformed(line), ErrNoChecksumMarker
	}

	want, ok := parseHexByte(line[n-2:])
	if !ok {
		return malformed(line), ErrBadChecksum
	}
	got := byte(0)
	for i := 1; i < star; i++ {
		got ^= line[i]
	}
	if got != want {
		return malformed(line), ErrChecksumMismatch
	}

	// The prolog keeps the leading '$' or '!', so it belongs to the sender.
	prolog, epilog, found := strings.Cut(line, ",")
	if !found || len(prolog) < 3 {
		return malformed(line), ErrNoFields
	}

	fields := strings.Split(epilog, ",")
	last := fields[len(fields)-1]
	if i := strings.IndexByte(last, '*'); i >= 0 {
		last = last[:i]
	}
	fields[len(fields)-1] = last

	return Sentence{
		valid:    true,
		sender:   prolog[:len(prolog)-3],
		tag:      prolog[len(prolog)-3:],
		fields:   fields,
		checksum: got,
		original: line,
	}, nil
}

func parseHexByte(s string) (byte, bool) {
	if len(s) != 2 {
		return 0, false
	}
	hi, ok1 := hexDigit(s[0])
	lo, ok2 := hexDigit(s[1])
	if !ok1 || !ok2 {
		return 0, false
	}
	return hi<<4 | lo, true
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// Valid reports whether the sentence passed validation.
func (s Sentence) Valid() bool { return s.valid }

// Sender returns everything before the tag, sentinel included: "$GP" for
// "$GPGGA", "!AI" for "!AIVDM". It is empty when the prolog is only a tag.
func (s Sentence) Sender() string { return s.sender }

// Tag returns the three-character message tag.
func (s Sentence) Tag() string { return s.tag }

// Checksum returns the verified checksum byte, or 0 for a malformed sentence.
func (s Sentence) Checksum() byte { return s.checksum }

// Original returns the line the sentence was decoded from.
func (s Sentence) Original() string { return s.original }

func (s Sentence) NumFields() int { return len(s.fields) }

// Fields returns a copy of the raw field strings in transmission order.
func (s Sentence) Fields() []string {
	if len(s.fields) == 0 {
		return nil
	}
	out := make([]string, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the raw text at index i. ok is false only when i is out of
// range; a present but empty field returns ("", true).
func (s Sentence) Field(i int) (string, bool) {
	if i < 0 || i >= len(s.fields) {
		return "", false
	}
	return s.fields[i], true
}

// raw returns the text at i when it is present and non-empty.
func (s Sentence) raw(i int) (string, bool) {
	v, ok := s.Field(i)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
