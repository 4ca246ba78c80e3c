package nmea

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Extraction names how a bound field is interpreted.
type Extraction string

const (
	ExtractText       Extraction = "text"
	ExtractChar       Extraction = "char"
	ExtractU8         Extraction = "u8"
	ExtractU16        Extraction = "u16"
	ExtractU32        Extraction = "u32"
	ExtractI8         Extraction = "i8"
	ExtractI32        Extraction = "i32"
	ExtractF32        Extraction = "f32"
	ExtractHexU8      Extraction = "hex_u8"
	ExtractHexF32     Extraction = "hex_f32"
	ExtractTime       Extraction = "time"
	ExtractDate       Extraction = "date"
	ExtractCoordinate Extraction = "coordinate"
)

func (e Extraction) numeric() bool {
	switch e {
	case ExtractU8, ExtractU16, ExtractU32, ExtractI8, ExtractI32, ExtractF32:
		return true
	}
	return false
}

func (e Extraction) valid() bool {
	switch e {
	case ExtractText, ExtractChar, ExtractHexU8, ExtractHexF32, ExtractTime, ExtractDate, ExtractCoordinate:
		return true
	}
	return e.numeric()
}

// Binding ties an accessor name to a field of one message kind.
//
// Unit is the index of the single-character unit field for value+unit pairs,
// or of the hemisphere field for coordinates. It is nil otherwise.
type Binding struct {
	Name    string     `yaml:"name"`
	Index   int        `yaml:"index"`
	Unit    *int       `yaml:"unit,omitempty"`
	Extract Extraction `yaml:"kind"`
}

// Resolve extracts the bound value from s. The dynamic type follows Extract:
// text is string, char is rune, integers and f32 are their Go counterparts
// (or ValueWithUnit of them when Unit is set), time is TimeOfDay, date is
// time.Time and coordinate is float64.
func (b Binding) Resolve(s Sentence) (any, bool) {
	switch b.Extract {
	case ExtractText:
		v, ok := s.Text(b.Index)
		return box(v, ok)
	case ExtractChar:
		v, ok := s.Char(b.Index)
		return box(v, ok)
	case ExtractU8:
		return resolveNumber(s, b, Int[uint8])
	case ExtractU16:
		return resolveNumber(s, b, Int[uint16])
	case ExtractU32:
		return resolveNumber(s, b, Int[uint32])
	case ExtractI8:
		return resolveNumber(s, b, Int[int8])
	case ExtractI32:
		return resolveNumber(s, b, Int[int32])
	case ExtractF32:
		return resolveNumber(s, b, Float[float32])
	case ExtractHexU8:
		v, ok := Hex[uint8](s, b.Index)
		return box(v, ok)
	case ExtractHexF32:
		v, ok := Hex[float32](s, b.Index)
		return box(v, ok)
	case ExtractTime:
		v, ok := s.Time(b.Index)
		return box(v, ok)
	case ExtractDate:
		v, ok := s.Date(b.Index)
		return box(v, ok)
	case ExtractCoordinate:
		if b.Unit == nil {
			return nil, false
		}
		v, ok := s.Coordinate(b.Index, *b.Unit)
		return box(v, ok)
	default:
		return nil, false
	}
}

func resolveNumber[T Number](s Sentence, b Binding, get func(Sentence, int) (T, bool)) (any, bool) {
	if b.Unit != nil {
		v, ok := Pair(s, b.Index, *b.Unit, get)
		return box(v, ok)
	}
	v, ok := get(s, b.Index)
	return box(v, ok)
}

func box[T any](v T, ok bool) (any, bool) {
	if !ok {
		return nil, false
	}
	return v, true
}

// Catalogue holds the accessor bindings for each message kind. A Catalogue
// is immutable once loaded and safe for concurrent use.
type Catalogue struct {
	bindings map[Kind][]Binding
}

//go:embed catalogue.yaml
var catalogueYAML []byte

var defaultCatalogue = sync.OnceValue(func() *Catalogue {
	c, err := LoadCatalogue(bytes.NewReader(catalogueYAML))
	if err != nil {
		panic(fmt.Sprintf("nmea: embedded catalogue: %v", err))
	}
	return c
})

// DefaultCatalogue returns the built-in bindings.
func DefaultCatalogue() *Catalogue {
	return defaultCatalogue()
}

// LoadCatalogue reads a YAML mapping of message tag to binding list.
func LoadCatalogue(r io.Reader) (*Catalogue, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var raw map[string][]Binding
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("catalogue: %w", err)
	}

	c := &Catalogue{bindings: make(map[Kind][]Binding, len(raw))}
	for tag, list := range raw {
		k := KindOf(tag)
		if k == KindUnknown {
			return nil, fmt.Errorf("catalogue: unknown message tag %q", tag)
		}
		seen := make(map[string]bool, len(list))
		for _, b := range list {
			if err := validateBinding(b); err != nil {
				return nil, fmt.Errorf("catalogue: %s.%s: %w", tag, b.Name, err)
			}
			if seen[b.Name] {
				return nil, fmt.Errorf("catalogue: %s.%s: duplicate name", tag, b.Name)
			}
			seen[b.Name] = true
		}
		c.bindings[k] = append([]Binding(nil), list...)
	}
	return c, nil
}

// LoadCatalogueFile is LoadCatalogue on the named file.
func LoadCatalogueFile(path string) (*Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCatalogue(f)
}

func validateBinding(b Binding) error {
	if b.Name == "" {
		return errors.New("name is required")
	}
	if b.Index < 0 {
		return fmt.Errorf("index must be >= 0, got %d", b.Index)
	}
	if !b.Extract.valid() {
		return fmt.Errorf("unknown kind %q", b.Extract)
	}
	if b.Unit != nil {
		if *b.Unit < 0 {
			return fmt.Errorf("unit must be >= 0, got %d", *b.Unit)
		}
		if !b.Extract.numeric() && b.Extract != ExtractCoordinate {
			return fmt.Errorf("unit is not supported for kind %q", b.Extract)
		}
	}
	if b.Extract == ExtractCoordinate && b.Unit == nil {
		return errors.New("coordinate requires a unit (hemisphere) index")
	}
	return nil
}

// Merge returns a catalogue holding c's bindings overlaid with other's. A
// binding in other replaces the one with the same name; new names are
// appended.
func (c *Catalogue) Merge(other *Catalogue) *Catalogue {
	out := &Catalogue{bindings: make(map[Kind][]Binding, len(c.bindings))}
	for k, list := range c.bindings {
		out.bindings[k] = append([]Binding(nil), list...)
	}
	if other == nil {
		return out
	}
	for k, list := range other.bindings {
		cur := out.bindings[k]
		for _, b := range list {
			replaced := false
			for i := range cur {
				if cur[i].Name == b.Name {
					cur[i] = b
					replaced = true
					break
				}
			}
			if !replaced {
				cur = append(cur, b)
			}
		}
		out.bindings[k] = cur
	}
	return out
}

// Kinds returns the kinds that have at least one binding, in tag order.
func (c *Catalogue) Kinds() []Kind {
	out := make([]Kind, 0, len(c.bindings))
	for k, list := range c.bindings {
		if len(list) > 0 {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Bindings returns the bindings for k in declaration order.
func (c *Catalogue) Bindings(k Kind) []Binding {
	return append([]Binding(nil), c.bindings[k]...)
}

// Binding finds the binding named name for k.
func (c *Catalogue) Binding(k Kind, name string) (Binding, bool) {
	for _, b := range c.bindings[k] {
		if b.Name == name {
			return b, true
		}
	}
	return Binding{}, false
}

// Lookup resolves the accessor name on m.
func (c *Catalogue) Lookup(m Message, name string) (any, bool) {
	b, ok := c.Binding(m.Kind, name)
	if !ok {
		return nil, false
	}
	return b.Resolve(m.Sentence)
}

// Values resolves every binding of m's kind, omitting absent values.
func (c *Catalogue) Values(m Message) map[string]any {
	list := c.bindings[m.Kind]
	out := make(map[string]any, len(list))
	for _, b := range list {
		if v, ok := b.Resolve(m.Sentence); ok {
			out[b.Name] = v
		}
	}
	return out
}

// Value resolves name on m using the default catalogue.
func (m Message) Value(name string) (any, bool) {
	return DefaultCatalogue().Lookup(m, name)
}

// Values resolves every default-catalogue binding of m's kind.
func (m Message) Values() map[string]any {
	return DefaultCatalogue().Values(m)
}

// FieldNames lists the default-catalogue accessor names for m's kind.
func (m Message) FieldNames() []string {
	list := DefaultCatalogue().bindings[m.Kind]
	out := make([]string, 0, len(list))
	for _, b := range list {
		out = append(out, b.Name)
	}
	return out
}
