package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"marine-nmea/internal/nmea"
	"marine-nmea/internal/replay"
)

const (
	lineAAM = "$YDAAM,A,A,3.2,N,waypoint*1E"
	lineGGA = "$GPGGA,173617,4844.8683,N,12313.7709,W,2,11,1.00,2,M,-17.0,M,,*52"
	lineHDG = "$IIHDG,108.4,,,15.7,E*1C"
)

func TestSummarizeCaptureLog(t *testing.T) {
	recs := []replay.Record{
		{Start: true},
		{At: 0, Line: lineGGA},
		{At: 200 * time.Millisecond, Line: lineAAM},
		{At: 300 * time.Millisecond, Line: "$GPGGA,bad*00"},
		{At: 300 * time.Millisecond, Line: "$AAAAA,,*41"},
		{Start: true},
		{At: 1 * time.Second, Line: lineGGA},
	}

	s := summarizeCaptureLog(recs)
	if s.Segments != 2 {
		t.Fatalf("segments=%d want %d", s.Segments, 2)
	}
	if s.Sentences != 5 {
		t.Fatalf("sentences=%d want %d", s.Sentences, 5)
	}
	if s.Malformed != 1 {
		t.Fatalf("malformed=%d want %d", s.Malformed, 1)
	}
	if s.Unknown != 1 {
		t.Fatalf("unknown=%d want %d", s.Unknown, 1)
	}
	if s.KindCounts[nmea.KindGGA] != 2 {
		t.Fatalf("count[GGA]=%d want %d", s.KindCounts[nmea.KindGGA], 2)
	}
	if s.KindCounts[nmea.KindAAM] != 1 {
		t.Fatalf("count[AAM]=%d want %d", s.KindCounts[nmea.KindAAM], 1)
	}
	if s.Talkers["$GP"] != 2 || s.Talkers["$YD"] != 1 {
		t.Fatalf("talkers=%v", s.Talkers)
	}
	if s.MaxDuration != 1*time.Second {
		t.Fatalf("maxDuration=%s want %s", s.MaxDuration, 1*time.Second)
	}
}

func TestSummarizeCaptureLog_NoStartIsOneSegment(t *testing.T) {
	s := summarizeCaptureLog([]replay.Record{{Line: lineHDG}})
	if s.Segments != 1 || s.Sentences != 1 {
		t.Fatalf("summary=%+v", s)
	}
	if empty := summarizeCaptureLog(nil); empty.Segments != 0 {
		t.Fatalf("empty summary segments=%d", empty.Segments)
	}
}

func TestPrintLogSummary_PrintsExpectedFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nmea.log")

	w, err := replay.CreateWriter(logPath)
	if err != nil {
		t.Fatalf("CreateWriter() error: %v", err)
	}
	now := time.Now()
	for _, line := range []string{lineGGA, lineHDG} {
		if err := w.WriteLine(now, line); err != nil {
			_ = w.Close()
			t.Fatalf("WriteLine() error: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	var buf bytes.Buffer
	if err := printLogSummary(&buf, logPath); err != nil {
		t.Fatalf("printLogSummary() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"path: ", "segments: 1", "sentences: 2", "malformed: 0", "kind_counts:", "  GGA: 1", "  HDG: 1", "talker_counts:", "  $II: 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output: %q", want, out)
		}
	}
}

func TestPrintLogSummary_EmptyPath(t *testing.T) {
	if err := printLogSummary(&bytes.Buffer{}, " "); err == nil {
		t.Fatalf("expected error")
	}
}
