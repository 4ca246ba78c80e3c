package nmea

import (
	"encoding/json"
	"fmt"
	"time"
)

func marshalPair(v any, unit rune) ([]byte, error) {
	return json.Marshal(struct {
		Value any    `json:"value"`
		Unit  string `json:"unit"`
	}{Value: v, Unit: string(unit)})
}

// Record is a JSON-friendly view of a decoded message.
type Record struct {
	Kind        Kind           `json:"kind"`
	Description string         `json:"description,omitempty"`
	Sender      string         `json:"sender"`
	Checksum    string         `json:"checksum"`
	Fields      []string       `json:"fields"`
	Values      map[string]any `json:"values,omitempty"`
}

// Record resolves m through c into a Record. Char values become one-letter
// strings and dates are formatted as YYYY-MM-DD.
func (c *Catalogue) Record(m Message) Record {
	values := make(map[string]any)
	for _, b := range c.bindings[m.Kind] {
		v, ok := b.Resolve(m.Sentence)
		if !ok {
			continue
		}
		switch x := v.(type) {
		case rune:
			if b.Extract == ExtractChar {
				v = string(x)
			}
		case time.Time:
			v = x.Format(time.DateOnly)
		}
		values[b.Name] = v
	}
	return Record{
		Kind:        m.Kind,
		Description: m.Kind.Description(),
		Sender:      m.Sender(),
		Checksum:    fmt.Sprintf("%02X", m.Checksum()),
		Fields:      m.Fields(),
		Values:      values,
	}
}

func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(DefaultCatalogue().Record(m))
}

func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Error    string `json:"error"`
		Original string `json:"original,omitempty"`
	}{Error: e.Reason, Original: e.Original})
}

// MarshalJSON renders the transducer type as a one-letter string.
func (m Measurement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string                 `json:"type"`
		Data ValueWithUnit[float64] `json:"data"`
		Name string                 `json:"name"`
	}{Type: string(m.Type), Data: m.Data, Name: m.Name})
}
