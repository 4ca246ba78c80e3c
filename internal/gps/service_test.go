package gps

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"marine-nmea/internal/nmea"
)

func TestService_StartStream(t *testing.T) {
	input := strings.Join([]string{
		"garbage from the receiver boot banner",
		nmeaLine("GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W"),
		"",
		nmeaLine("GNGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,"),
		"$GPGGA,bad*00",
	}, "\r\n")

	var (
		mu    sync.Mutex
		lines []string
		kinds []nmea.Kind
	)
	svc := New(Config{
		Enable: true,
		OnSentence: func(_ time.Time, line string, c nmea.Classified) {
			mu.Lock()
			defer mu.Unlock()
			lines = append(lines, line)
			if m, ok := c.(nmea.Message); ok {
				kinds = append(kinds, m.Kind)
			}
		},
	})

	if err := svc.StartStream(context.Background(), "test", io.NopCloser(strings.NewReader(input))); err != nil {
		t.Fatalf("StartStream() error: %v", err)
	}
	select {
	case <-svc.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("reader did not finish")
	}
	svc.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(lines) != 3 {
		t.Fatalf("lines=%q want 3 sentences", lines)
	}
	if len(kinds) != 2 || kinds[0] != nmea.KindRMC || kinds[1] != nmea.KindGGA {
		t.Fatalf("kinds=%v", kinds)
	}

	snap := svc.Snapshot()
	if !snap.Valid || snap.Device != "test" {
		t.Fatalf("snapshot=%+v", snap)
	}
	if snap.Sentences != 3 || snap.Malformed != 1 {
		t.Fatalf("sentences=%d malformed=%d", snap.Sentences, snap.Malformed)
	}
	if snap.AltM == nil || *snap.AltM != 545.4 {
		t.Fatalf("alt=%+v", snap.AltM)
	}
	if !strings.Contains(snap.LastError, "EOF") {
		t.Fatalf("last error=%q want read stopped at EOF", snap.LastError)
	}
}

func TestService_DisabledStartIsNoop(t *testing.T) {
	svc := New(Config{})
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if svc.Done() != nil {
		t.Fatalf("disabled service should not start a reader")
	}
	svc.Close()
	if svc.Snapshot().Enabled {
		t.Fatalf("expected disabled snapshot")
	}
}

func TestService_StartStreamTwice(t *testing.T) {
	svc := New(Config{Enable: true})
	pr, pw := io.Pipe()
	defer pw.Close()
	if err := svc.StartStream(context.Background(), "a", pr); err != nil {
		t.Fatalf("StartStream() error: %v", err)
	}
	if err := svc.StartStream(context.Background(), "b", io.NopCloser(strings.NewReader(""))); err == nil {
		t.Fatalf("expected error on second start")
	}
	svc.Close()
}

func TestNilService(t *testing.T) {
	var svc *Service
	if err := svc.Start(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	svc.Close()
	if svc.Snapshot().Enabled {
		t.Fatalf("nil snapshot should be zero")
	}
}
