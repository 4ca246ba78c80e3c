package gps

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"marine-nmea/internal/nmea"
)

// Config controls the receiver.
//
// Device may be empty to auto-detect. Baud must be a supported rate by the
// platform implementation; 0 means 4800, the NMEA 0183 standard rate.
//
// OnSentence, when set, is called from the reader goroutine for every line
// that looks like a sentence, after it has been folded into the snapshot.
type Config struct {
	Enable bool

	Device string
	Baud   int

	OnSentence func(now time.Time, line string, c nmea.Classified)
}

type Snapshot struct {
	Enabled bool `json:"enabled"`
	Valid   bool `json:"valid"`

	Device string `json:"device,omitempty"`
	Baud   int    `json:"baud,omitempty"`

	LatDeg     float64  `json:"lat_deg,omitempty"`
	LonDeg     float64  `json:"lon_deg,omitempty"`
	AltM       *float64 `json:"alt_m,omitempty"`
	SOGKt      *float64 `json:"sog_kt,omitempty"`
	COGDeg     *float64 `json:"cog_deg,omitempty"`
	HeadingDeg *float64 `json:"heading_deg,omitempty"`
	FixQuality *int     `json:"fix_quality,omitempty"`
	Satellites *int     `json:"satellites,omitempty"`
	HDOP       *float64 `json:"hdop,omitempty"`

	GNSSTimeUTC string `json:"gnss_time_utc,omitempty"`
	LastFixUTC  string `json:"last_fix_utc,omitempty"`

	Sentences int            `json:"sentences"`
	Malformed int            `json:"malformed"`
	Kinds     map[string]int `json:"kinds,omitempty"`

	LastError string `json:"last_error,omitempty"`
}

type Service struct {
	cfg Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
	done   chan struct{}

	last atomic.Value // Snapshot

	mu     sync.Mutex
	closer io.Closer
}

func New(cfg Config) *Service {
	s := &Service{cfg: cfg}
	s.last.Store(Snapshot{Enabled: cfg.Enable, Device: cfg.Device, Baud: cfg.Baud})
	return s
}

// Start opens the serial device and begins reading in the background.
func (s *Service) Start(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("gps service is nil")
	}
	if !s.cfg.Enable {
		return nil
	}
	if ctx == nil {
		return fmt.Errorf("ctx is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return nil
	}

	device := strings.TrimSpace(s.cfg.Device)
	if device == "" {
		device = autoDetectDevice()
		if device == "" {
			s.setErrorLocked("gps auto-detect failed: no serial device found")
			return fmt.Errorf("gps auto-detect failed")
		}
	}

	baud := s.cfg.Baud
	if baud == 0 {
		baud = 4800
	}

	port, err := openSerial(device, baud)
	if err != nil {
		s.setErrorLocked(fmt.Sprintf("gps open failed device=%s baud=%d: %v", device, baud, err))
		return err
	}
	log.Printf("gps enabled device=%s baud=%d", device, baud)
	s.startLocked(ctx, port, device, baud)
	return nil
}

// StartStream reads sentences from r instead of a serial device. name is
// reported as the snapshot's device.
func (s *Service) StartStream(ctx context.Context, name string, r io.ReadCloser) error {
	if s == nil {
		return fmt.Errorf("gps service is nil")
	}
	if ctx == nil {
		return fmt.Errorf("ctx is nil")
	}
	if r == nil {
		return fmt.Errorf("reader is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return fmt.Errorf("gps service already started")
	}
	s.startLocked(ctx, r, name, 0)
	return nil
}

func (s *Service) startLocked(ctx context.Context, r io.ReadCloser, device string, baud int) {
	// Keep the reference for Close().
	s.closer = r

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	// Publish initial snapshot.
	s.last.Store(Snapshot{Enabled: true, Valid: false, Device: device, Baud: baud})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(s.done)
		defer func() {
			_ = r.Close()
		}()

		reader := bufio.NewScanner(r)
		// NMEA sentences are at most 82 chars, but allow some headroom.
		reader.Buffer(make([]byte, 0, 256), 4096)

		st := fixState{device: device, baud: baud}

		for {
			select {
			case <-childCtx.Done():
				return
			default:
			}

			if !reader.Scan() {
				err := reader.Err()
				if err == nil {
					err = io.EOF
				}
				if childCtx.Err() == nil {
					s.setError(fmt.Sprintf("gps read stopped: %v", err))
				}
				return
			}

			line := strings.TrimSpace(reader.Text())
			if line == "" {
				continue
			}
			// Some receivers may include non-NMEA chatter; filter quickly.
			if line[0] != '$' && line[0] != '!' {
				continue
			}

			now := time.Now().UTC()
			c := nmea.DecodeMessage(line)
			st.apply(now, c)

			snap := st.snapshot()
			if e, ok := c.(*nmea.Error); ok {
				snap.LastError = e.Error()
			} else {
				snap.LastError = s.Snapshot().LastError
			}
			s.last.Store(snap)

			if s.cfg.OnSentence != nil {
				s.cfg.OnSentence(now, line, c)
			}
		}
	}()
}

// Done is closed when the reader goroutine exits, or nil before Start.
func (s *Service) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Service) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	cancel := s.cancel
	closer := s.closer
	s.cancel = nil
	s.closer = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if closer != nil {
		_ = closer.Close()
	}
	s.wg.Wait()
}

func (s *Service) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	v := s.last.Load()
	if v == nil {
		return Snapshot{}
	}
	return v.(Snapshot)
}

func (s *Service) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setErrorLocked(msg)
}

func (s *Service) setErrorLocked(msg string) {
	cur := s.Snapshot()
	cur.LastError = msg
	// Do not force Valid=false here; transient read issues shouldn't flip validity.
	s.last.Store(cur)
}
