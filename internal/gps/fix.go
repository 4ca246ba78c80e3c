package gps

import (
	"math"
	"time"

	"marine-nmea/internal/nmea"
)

type fixState struct {
	device string
	baud   int

	latDeg float64
	lonDeg float64
	latOK  bool
	lonOK  bool

	sogKt float64
	sogOK bool

	cogDeg float64
	cogOK  bool

	headingDeg float64
	headingOK  bool

	altM  float64
	altOK bool

	fixQuality   int
	fixQualityOK bool
	satellites   int
	satsOK       bool
	hdop         float64
	hdopOK       bool

	gnssTime time.Time

	lastFix time.Time
	valid   bool

	sentences int
	malformed int
	kinds     map[nmea.Kind]int
}

// apply folds one classified sentence into the state and reports whether
// the published snapshot should change.
func (s *fixState) apply(nowUTC time.Time, c nmea.Classified) bool {
	s.sentences++
	m, ok := c.(nmea.Message)
	if !ok {
		s.malformed++
		return false
	}
	if s.kinds == nil {
		s.kinds = make(map[nmea.Kind]int)
	}
	s.kinds[m.Kind]++

	switch m.Kind {
	case nmea.KindRMC:
		return s.applyRMC(nowUTC, m)
	case nmea.KindGGA:
		return s.applyGGA(nowUTC, m)
	case nmea.KindGLL:
		return s.applyGLL(nowUTC, m)
	case nmea.KindVTG:
		return s.applyVTG(m)
	case nmea.KindHDT:
		return s.applyHDT(m)
	default:
		return false
	}
}

func (s *fixState) setPosition(m nmea.Message, latIdx, lonIdx int) bool {
	updated := false
	if lat, ok := m.Coordinate(latIdx, latIdx+1); ok {
		s.latDeg = nmea.DecimalDegrees(lat)
		s.latOK = true
		updated = true
	}
	if lon, ok := m.Coordinate(lonIdx, lonIdx+1); ok {
		s.lonDeg = nmea.DecimalDegrees(lon)
		s.lonOK = true
		updated = true
	}
	return updated
}

func (s *fixState) markFix(nowUTC time.Time) bool {
	if s.latOK && s.lonOK {
		s.lastFix = nowUTC
		s.valid = true
		return true
	}
	return false
}

// RMC: Recommended Minimum Specific GNSS Data
//
//	0: time (hhmmss.sss)
//	1: status (A=active, V=void)
//	2,3: latitude, N/S
//	4,5: longitude, E/W
//	6: speed over ground (knots)
//	7: course over ground (deg true)
//	8: date (ddmmyy)
func (s *fixState) applyRMC(nowUTC time.Time, m nmea.Message) bool {
	if status, ok := m.Char(1); !ok || status != 'A' {
		// Do not update validity on void fixes.
		return false
	}
	s.setPosition(m, 2, 4)
	if sog, ok := nmea.Float[float64](m.Sentence, 6); ok {
		s.sogKt = sog
		s.sogOK = true
	}
	if cog, ok := nmea.Float[float64](m.Sentence, 7); ok {
		s.cogDeg = math.Mod(cog+360.0, 360.0)
		s.cogOK = true
	}
	if ts, ok := m.Timestamp(); ok {
		s.gnssTime = ts
	}
	return s.markFix(nowUTC)
}

// GGA: Global Positioning System Fix Data
//
//	0: time
//	1,2: latitude, N/S
//	3,4: longitude, E/W
//	5: fix quality (0=invalid)
//	6: satellites in use
//	7: HDOP
//	8,9: antenna altitude, unit (M)
func (s *fixState) applyGGA(nowUTC time.Time, m nmea.Message) bool {
	q, ok := nmea.Int[int](m.Sentence, 5)
	if !ok || q == 0 {
		return false
	}
	s.fixQuality = q
	s.fixQualityOK = true
	if sats, ok := nmea.Int[int](m.Sentence, 6); ok {
		s.satellites = sats
		s.satsOK = true
	}
	if hdop, ok := nmea.Float[float64](m.Sentence, 7); ok {
		s.hdop = hdop
		s.hdopOK = true
	}

	updated := s.setPosition(m, 1, 3)
	if alt, ok := m.FloatPair(8, 9); ok && alt.Unit == 'M' {
		s.altM = alt.Value
		s.altOK = true
		updated = true
	}
	if s.markFix(nowUTC) {
		return updated
	}
	return false
}

// GLL: Geographic Position
//
//	0,1: latitude, N/S
//	2,3: longitude, E/W
//	4: time
//	5: status (A=valid)
func (s *fixState) applyGLL(nowUTC time.Time, m nmea.Message) bool {
	if status, ok := m.Char(5); ok && status != 'A' {
		return false
	}
	if !s.setPosition(m, 0, 2) {
		return false
	}
	return s.markFix(nowUTC)
}

// VTG: Track made good and ground speed
//
//	0,1: course true, T
//	4,5: speed, N (knots)
func (s *fixState) applyVTG(m nmea.Message) bool {
	updated := false
	if cog, ok := m.FloatPair(0, 1); ok && cog.Unit == 'T' {
		s.cogDeg = math.Mod(cog.Value+360.0, 360.0)
		s.cogOK = true
		updated = true
	}
	if sog, ok := m.FloatPair(4, 5); ok && sog.Unit == 'N' {
		s.sogKt = sog.Value
		s.sogOK = true
		updated = true
	}
	return updated
}

// HDT: Heading true
func (s *fixState) applyHDT(m nmea.Message) bool {
	hdg, ok := m.FloatPair(0, 1)
	if !ok || hdg.Unit != 'T' {
		return false
	}
	s.headingDeg = math.Mod(hdg.Value+360.0, 360.0)
	s.headingOK = true
	return true
}

func (s *fixState) snapshot() Snapshot {
	out := Snapshot{
		Enabled:   true,
		Valid:     s.valid,
		Device:    s.device,
		Baud:      s.baud,
		LatDeg:    s.latDeg,
		LonDeg:    s.lonDeg,
		Sentences: s.sentences,
		Malformed: s.malformed,
	}
	if s.altOK {
		v := s.altM
		out.AltM = &v
	}
	if s.sogOK {
		v := s.sogKt
		out.SOGKt = &v
	}
	if s.cogOK {
		v := s.cogDeg
		out.COGDeg = &v
	}
	if s.headingOK {
		v := s.headingDeg
		out.HeadingDeg = &v
	}
	if s.fixQualityOK {
		v := s.fixQuality
		out.FixQuality = &v
	}
	if s.satsOK {
		v := s.satellites
		out.Satellites = &v
	}
	if s.hdopOK {
		v := s.hdop
		out.HDOP = &v
	}
	if !s.gnssTime.IsZero() {
		out.GNSSTimeUTC = s.gnssTime.Format(time.RFC3339Nano)
	}
	if !s.lastFix.IsZero() {
		out.LastFixUTC = s.lastFix.UTC().Format(time.RFC3339Nano)
	}
	if len(s.kinds) > 0 {
		out.Kinds = make(map[string]int, len(s.kinds))
		for k, n := range s.kinds {
			out.Kinds[k.String()] = n
		}
	}
	return out
}
