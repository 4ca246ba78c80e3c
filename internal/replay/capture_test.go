package replay

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"marine-nmea/internal/nmea"
)

type fakeSleeper struct {
	slept []time.Duration
}

func (fs *fakeSleeper) Sleep(_ context.Context, d time.Duration) error {
	fs.slept = append(fs.slept, d)
	return nil
}

func TestReaderReadAll(t *testing.T) {
	in := strings.NewReader(`
# comment

START
0, $GPGLL,4916.45,N,12311.12,W,225444,A*31
10,$IIHDG,108.4,,,15.7,E*1C
$YDAAM,A,A,3.2,N,waypoint*1E
`)

	recs, err := NewReader(in).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	want := []Record{
		{Start: true},
		{At: 0, Line: "$GPGLL,4916.45,N,12311.12,W,225444,A*31"},
		{At: 10, Line: "$IIHDG,108.4,,,15.7,E*1C"},
		{At: 10, Line: "$YDAAM,A,A,3.2,N,waypoint*1E"},
	}
	if !reflect.DeepEqual(recs, want) {
		t.Fatalf("records=%+v\nwant %+v", recs, want)
	}
	if got := Lines(recs); len(got) != 3 || got[2] != "$YDAAM,A,A,3.2,N,waypoint*1E" {
		t.Fatalf("lines=%q", got)
	}
}

func TestReaderReadAll_StartResetsBareTimestamp(t *testing.T) {
	in := strings.NewReader("START\n500,$A\nSTART\n!B\n")
	recs, err := NewReader(in).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if recs[3].At != 0 || recs[3].Line != "!B" {
		t.Fatalf("bare line after START = %+v", recs[3])
	}
}

func TestReaderReadAll_InvalidLines(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"MissingComma", "not-a-valid-line\n"},
		{"EmptySentence", "10,\n"},
		{"BadTimestamp", "ten,$GPGGA\n"},
		{"NegativeTimestamp", "-5,$GPGGA\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewReader(strings.NewReader(tc.in)).ReadAll(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestPlay_RespectsTimingAndStart(t *testing.T) {
	var lines []string
	fs := &fakeSleeper{}

	recs := []Record{
		{At: 1 * time.Second, Start: true},
		{At: 1 * time.Second, Line: "a"},
		{At: 1*time.Second + 100*time.Nanosecond, Line: "b"},
		{At: 2 * time.Second, Start: true},
		{At: 2*time.Second + 50*time.Nanosecond, Line: "c"},
	}

	err := Play(context.Background(), recs, 1.0, false, fs, func(line string) error {
		lines = append(lines, line)
		return nil
	})
	if err != nil {
		t.Fatalf("Play() error: %v", err)
	}
	if !reflect.DeepEqual(lines, []string{"a", "b", "c"}) {
		t.Fatalf("lines=%q", lines)
	}
	if !reflect.DeepEqual(fs.slept, []time.Duration{100 * time.Nanosecond}) {
		t.Fatalf("slept = %v, want [100ns]", fs.slept)
	}
}

func TestPlay_SpeedMultiplier(t *testing.T) {
	fs := &fakeSleeper{}
	recs := []Record{
		{At: 0, Line: "a"},
		{At: 100 * time.Nanosecond, Line: "b"},
	}

	err := Play(context.Background(), recs, 2.0, false, fs, func(string) error { return nil })
	if err != nil {
		t.Fatalf("Play() error: %v", err)
	}
	if !reflect.DeepEqual(fs.slept, []time.Duration{50 * time.Nanosecond}) {
		t.Fatalf("slept = %v, want [50ns]", fs.slept)
	}
}

func TestPlay_InvalidArgs(t *testing.T) {
	recs := []Record{{At: 0, Line: "a"}}
	noop := func(string) error { return nil }
	if err := Play(context.Background(), recs, 0, false, nil, noop); err == nil {
		t.Fatalf("expected error for zero speed")
	}
	if err := Play(context.Background(), recs, 1, false, nil, nil); err == nil {
		t.Fatalf("expected error for nil callback")
	}
	if err := Play(context.Background(), []Record{{Start: true}}, 1, true, nil, noop); err == nil {
		t.Fatalf("expected error for log without sentences")
	}
}

func TestPlay_LoopStopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	n := 0
	recs := []Record{{Start: true}, {Line: "a"}, {Line: "b"}}
	err := Play(context.Background(), recs, 1, true, &fakeSleeper{}, func(string) error {
		n++
		if n == 5 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || n != 5 {
		t.Fatalf("err=%v n=%d", err, n)
	}
}

func TestPlay_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Play(ctx, []Record{{Line: "a"}}, 1, true, nil, func(string) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v want context.Canceled", err)
	}
}

func TestWriter_WritesExpectedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")

	w, err := CreateWriter(path)
	if err != nil {
		t.Fatalf("CreateWriter() error: %v", err)
	}
	w.start = time.Unix(0, 0)

	if err := w.WriteLine(time.Unix(0, 20), "$IIHDG,108.4,,,15.7,E*1C"); err != nil {
		t.Fatalf("WriteLine() error: %v", err)
	}
	if err := w.WriteLine(time.Unix(0, 30), "bad\r\n"); err == nil {
		t.Fatalf("expected error for line break")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := w.WriteLine(time.Unix(0, 40), "x"); err == nil {
		t.Fatalf("expected error after Close")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(b) != "START\n20,$IIHDG,108.4,,,15.7,E*1C\n" {
		t.Fatalf("unexpected file contents: %q", string(b))
	}
}

func TestRecordReplay_RoundTripDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nmea-record.log")

	w, err := CreateWriter(path)
	if err != nil {
		t.Fatalf("CreateWriter() error: %v", err)
	}
	now := time.Now()
	in := []string{
		"$YDAAM,A,A,3.2,N,waypoint*1E",
		"$GPGGA,173617,4844.8683,N,12313.7709,W,2,11,1.00,2,M,-17.0,M,,*52",
		"$GPGGA,bad*00",
	}
	for _, line := range in {
		if err := w.WriteLine(now, line); err != nil {
			_ = w.Close()
			t.Fatalf("WriteLine() error: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	recs, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}

	var kinds []nmea.Kind
	fs := &fakeSleeper{}
	err = Play(context.Background(), recs, 1.0, false, fs, func(line string) error {
		if m, ok := nmea.DecodeMessage(line).(nmea.Message); ok {
			kinds = append(kinds, m.Kind)
		} else {
			kinds = append(kinds, nmea.KindUnknown)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Play() error: %v", err)
	}
	if len(fs.slept) != 0 {
		t.Fatalf("expected no sleeps, got %v", fs.slept)
	}
	want := []nmea.Kind{nmea.KindAAM, nmea.KindGGA, nmea.KindUnknown}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("kinds=%v want %v", kinds, want)
	}
}
