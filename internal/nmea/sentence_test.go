package nmea

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

const (
	lineAAM = "$YDAAM,A,A,3.2,N,waypoint*1E"
	lineGGA = "$GPGGA,173617,4844.8683,N,12313.7709,W,2,11,1.00,2,M,-17.0,M,,*52"
	lineHDG = "$IIHDG,108.4,,,15.7,E*1C"
)

// nmeaLine frames payload with '$' and a valid checksum.
func nmeaLine(payload string) string {
	ck := byte(0)
	for i := 0; i < len(payload); i++ {
		ck ^= payload[i]
	}
	return fmt.Sprintf("$%s*%02X", payload, ck)
}

func requireMalformed(t *testing.T, s Sentence, line string) {
	t.Helper()
	if s.Valid() {
		t.Fatalf("expected malformed sentence for %q", line)
	}
	if s.Sender() != "" || s.Tag() != "" {
		t.Fatalf("sender=%q tag=%q want empty", s.Sender(), s.Tag())
	}
	if s.NumFields() != 0 || s.Fields() != nil {
		t.Fatalf("fields=%v want none", s.Fields())
	}
	if s.Checksum() != 0 {
		t.Fatalf("checksum=%d want 0", s.Checksum())
	}
	if s.Original() != line {
		t.Fatalf("original=%q want %q", s.Original(), line)
	}
}

func TestDecode_AAM(t *testing.T) {
	s := Decode(lineAAM)
	if !s.Valid() {
		t.Fatalf("expected valid sentence")
	}
	if s.Sender() != "$YD" || s.Tag() != "AAM" {
		t.Fatalf("sender=%q tag=%q", s.Sender(), s.Tag())
	}
	want := []string{"A", "A", "3.2", "N", "waypoint"}
	if !reflect.DeepEqual(s.Fields(), want) {
		t.Fatalf("fields=%q want %q", s.Fields(), want)
	}
	if s.Checksum() != 0x1E {
		t.Fatalf("checksum=%02X want 1E", s.Checksum())
	}
	if s.Original() != lineAAM {
		t.Fatalf("original=%q", s.Original())
	}
}

func TestDecode_ChecksumValue(t *testing.T) {
	s := Decode("$AAAAA,,*41")
	if !s.Valid() {
		t.Fatalf("expected valid sentence")
	}
	if s.Checksum() != 65 {
		t.Fatalf("checksum=%d want 65", s.Checksum())
	}
	if !reflect.DeepEqual(s.Fields(), []string{"", ""}) {
		t.Fatalf("fields=%q", s.Fields())
	}
}

func TestDecode_EmptyTrailingFieldsKept(t *testing.T) {
	s := Decode(lineGGA)
	if s.NumFields() != 14 {
		t.Fatalf("nfields=%d want 14", s.NumFields())
	}
	v, ok := s.Field(13)
	if !ok || v != "" {
		t.Fatalf("field 13 = %q,%v want present and empty", v, ok)
	}
	if _, ok := s.Field(14); ok {
		t.Fatalf("field 14 should be absent")
	}
}

func TestDecode_LowercaseChecksumAccepted(t *testing.T) {
	line := nmeaLine("GPXTE,A,A,0.67,L,N")
	lower := line[:len(line)-2] + fmt.Sprintf("%02x", Decode(line).Checksum())
	if !Decode(lower).Valid() {
		t.Fatalf("lowercase checksum rejected: %q", lower)
	}
}

func TestDecode_AISSentinel(t *testing.T) {
	line := nmeaLine("AIVDM,1,1,,A,13aEOK?P00PD2wVMdLDRhgvL289?,0")
	line = "!" + line[1:]
	s := Decode(line)
	if !s.Valid() {
		t.Fatalf("expected valid AIS sentence")
	}
	if s.Sender() != "!AI" || s.Tag() != "VDM" {
		t.Fatalf("sender=%q tag=%q", s.Sender(), s.Tag())
	}
}

func TestDecode_SenderKeepsSentinel(t *testing.T) {
	cases := []struct {
		line   string
		sender string
		tag    string
		fields []string
	}{
		{lineGGA, "$GP", "GGA", nil},
		{lineHDG, "$II", "HDG", []string{"108.4", "", "", "15.7", "E"}},
		{"$GP,1,2*14", "", "$GP", []string{"1", "2"}},
		{nmeaLine("PGRME,15.0,M"), "$PG", "RME", []string{"15.0", "M"}},
	}
	for _, tc := range cases {
		s := Decode(tc.line)
		if !s.Valid() {
			t.Fatalf("%q: expected valid sentence", tc.line)
		}
		if s.Sender() != tc.sender || s.Tag() != tc.tag {
			t.Fatalf("%q: sender=%q tag=%q want %q %q", tc.line, s.Sender(), s.Tag(), tc.sender, tc.tag)
		}
		if tc.fields != nil && !reflect.DeepEqual(s.Fields(), tc.fields) {
			t.Fatalf("%q: fields=%q want %q", tc.line, s.Fields(), tc.fields)
		}
	}
}

func TestParse_Malformed(t *testing.T) {
	good := nmeaLine("GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W")

	cases := []struct {
		name string
		line string
		want error
	}{
		{name: "Empty", line: "", want: ErrTooShort},
		{name: "TooShort", line: "$GPG*00", want: ErrTooShort},
		{name: "NoMarker", line: good[:len(good)-3] + "#" + good[len(good)-2:], want: ErrNoChecksumMarker},
		{name: "TrailingNewline", line: good + "\r\n", want: ErrNoChecksumMarker},
		{name: "BadHex", line: good[:len(good)-2] + "ZZ", want: ErrBadChecksum},
		{name: "SignedHex", line: good[:len(good)-2] + "+1", want: ErrBadChecksum},
		{name: "Mismatch", line: good[:len(good)-2] + "00", want: ErrChecksumMismatch},
		{name: "NoComma", line: nmeaLine("GPGGAXYZ"), want: ErrNoFields},
		{name: "ShortProlog", line: nmeaLine("G,1,23"), want: ErrNoFields},
		{name: "SentinelOnlyProlog", line: nmeaLine(",1,234"), want: ErrNoFields},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Parse(tc.line)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err=%v want %v", err, tc.want)
			}
			requireMalformed(t, s, tc.line)
			requireMalformed(t, Decode(tc.line), tc.line)
		})
	}
}

func TestDecode_SingleAlteredChecksumDigit(t *testing.T) {
	bad := lineGGA[:len(lineGGA)-1] + "3"
	requireMalformed(t, Decode(bad), bad)
}

func TestDecode_CorruptedPayloadByte(t *testing.T) {
	bad := []byte(lineGGA)
	bad[10] = '9'
	requireMalformed(t, Decode(string(bad)), string(bad))
}

func TestDecode_ChecksumIsXORBetweenSentinelAndMarker(t *testing.T) {
	payloads := []string{
		"GPGLL,4916.45,N,12311.12,W,225444,A",
		"IIMWV,214.8,R,0.1,K,A",
		"SDDBT,7.8,f,2.4,M,1.3,F",
		"PGRME,15.0,M,45.0,M,25.0,M",
	}
	for _, p := range payloads {
		line := nmeaLine(p)
		s := Decode(line)
		if !s.Valid() {
			t.Fatalf("%q: expected valid", line)
		}
		want := byte(0)
		for i := 0; i < len(p); i++ {
			want ^= p[i]
		}
		if s.Checksum() != want {
			t.Fatalf("%q: checksum=%02X want %02X", line, s.Checksum(), want)
		}
	}
}

func TestDecode_Deterministic(t *testing.T) {
	for _, line := range []string{lineAAM, lineGGA, lineHDG, "$GPGGA,bad*00", ""} {
		a, b := Decode(line), Decode(line)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("decode not deterministic for %q: %+v vs %+v", line, a, b)
		}
	}
}

func TestSentence_FieldsReturnsCopy(t *testing.T) {
	s := Decode(lineAAM)
	f := s.Fields()
	f[0] = "mutated"
	if v, _ := s.Field(0); v != "A" {
		t.Fatalf("field 0 = %q after mutating copy", v)
	}
}
