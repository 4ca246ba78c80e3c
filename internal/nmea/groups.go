package nmea

import "time"

// Satellite is one in-view satellite entry from a GSV sentence.
type Satellite struct {
	ID        uint16  `json:"id"`
	Elevation float64 `json:"elevation_deg"`
	Azimuth   float64 `json:"azimuth_deg"`
	SNR       float64 `json:"snr_db"`
}

// Satellites decodes the repeating four-field satellite blocks of a GSV
// message. Blocks with any absent member are skipped.
func (m Message) Satellites() ([]Satellite, bool) {
	if m.Kind != KindGSV {
		return nil, false
	}
	var out []Satellite
	for i := 3; i < m.NumFields(); i += 4 {
		id, ok := Int[uint16](m.Sentence, i)
		if !ok {
			continue
		}
		el, ok := Float[float64](m.Sentence, i+1)
		if !ok {
			continue
		}
		az, ok := Float[float64](m.Sentence, i+2)
		if !ok {
			continue
		}
		snr, ok := Float[float64](m.Sentence, i+3)
		if !ok {
			continue
		}
		out = append(out, Satellite{ID: id, Elevation: el, Azimuth: az, SNR: snr})
	}
	return out, len(out) > 0
}

// Waypoints returns the waypoint identifiers of an RTE or R00 message.
func (m Message) Waypoints() ([]string, bool) {
	start := 0
	switch m.Kind {
	case KindRTE:
		start = 4
	case KindR00:
	default:
		return nil, false
	}
	var out []string
	for i := start; i < m.NumFields(); i++ {
		if w, ok := m.Text(i); ok {
			out = append(out, w)
		}
	}
	return out, len(out) > 0
}

// Measurement is one transducer reading from an XDR message.
type Measurement struct {
	Type rune                   `json:"type"`
	Data ValueWithUnit[float64] `json:"data"`
	Name string                 `json:"name"`
}

// Measurements decodes the repeating type,value,unit,name blocks of an XDR
// message.
func (m Message) Measurements() ([]Measurement, bool) {
	if m.Kind != KindXDR {
		return nil, false
	}
	var out []Measurement
	for i := 0; i < m.NumFields(); i += 4 {
		typ, ok := m.Char(i)
		if !ok {
			continue
		}
		data, ok := m.FloatPair(i+1, i+2)
		if !ok {
			continue
		}
		name, ok := m.Text(i + 3)
		if !ok {
			continue
		}
		out = append(out, Measurement{Type: typ, Data: data, Name: name})
	}
	return out, len(out) > 0
}

// Timestamp combines the time of day with the calendar date carried by ZDA,
// ACS and RMC messages.
func (m Message) Timestamp() (time.Time, bool) {
	var (
		tIdx             int
		dIdx, mIdx, yIdx int
	)
	switch m.Kind {
	case KindRMC:
		t, ok := m.Time(0)
		if !ok {
			return time.Time{}, false
		}
		d, ok := m.Date(8)
		if !ok {
			return time.Time{}, false
		}
		return t.On(d), true
	case KindZDA:
		tIdx, dIdx, mIdx, yIdx = 0, 1, 2, 3
	case KindACS:
		tIdx, dIdx, mIdx, yIdx = 2, 3, 4, 5
	default:
		return time.Time{}, false
	}

	t, ok := m.Time(tIdx)
	if !ok {
		return time.Time{}, false
	}
	day, ok := Int[int](m.Sentence, dIdx)
	if !ok {
		return time.Time{}, false
	}
	month, ok := Int[int](m.Sentence, mIdx)
	if !ok {
		return time.Time{}, false
	}
	year, ok := Int[int](m.Sentence, yIdx)
	if !ok {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || int(d.Month()) != month {
		return time.Time{}, false
	}
	return t.On(d), true
}
