package nmea

import (
	"sort"
)

// ReasonUnknownKind is the Error reason for sentences whose tag is not a
// known message kind, including every malformed sentence.
const ReasonUnknownKind = "invalid or unknown message type"

// Kind identifies an NMEA message type.
type Kind uint8

type kindInfo struct {
	tag  string
	desc string
}

// KindOf returns the Kind for a three-character tag, or KindUnknown.
func KindOf(tag string) Kind {
	// kindTable[0] is KindUnknown; search the rest.
	known := kindTable[1:]
	i := sort.Search(len(known), func(i int) bool { return known[i].tag >= tag })
	if i < len(known) && known[i].tag == tag {
		return Kind(i + 1)
	}
	return KindUnknown
}

// Kinds returns every known kind in tag order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindTable)-1)
	for k := 1; k < len(kindTable); k++ {
		out = append(out, Kind(k))
	}
	return out
}

func (k Kind) Known() bool {
	return k > KindUnknown && int(k) < len(kindTable)
}

// String returns the message tag, e.g. "GGA".
func (k Kind) String() string {
	if !k.Known() {
		return "unknown"
	}
	return kindTable[k].tag
}

// Description is a short human-readable name for the kind.
func (k Kind) Description() string {
	if !k.Known() {
		return ""
	}
	return kindTable[k].desc
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Classified is the result of classifying a sentence: either a Message of a
// known kind or an *Error.
type Classified interface {
	classified()
}

// Message is a valid sentence of a known kind.
type Message struct {
	Kind Kind
	Sentence
}

func (Message) classified() {}

// Error reports a sentence that could not be classified.
type Error struct {
	Reason   string
	Original string
}

func (*Error) classified() {}

func (e *Error) Error() string {
	if e.Original == "" {
		return "nmea: " + e.Reason
	}
	return "nmea: " + e.Reason + ": " + e.Original
}

// Classify maps a sentence to its message kind. Malformed sentences carry an
// empty tag and therefore always classify as an *Error.
func Classify(s Sentence) Classified {
	k := KindOf(s.Tag())
	if !s.Valid() || k == KindUnknown {
		return &Error{Reason: ReasonUnknownKind, Original: s.Original()}
	}
	s.fields = s.Fields()
	return Message{Kind: k, Sentence: s}
}

// DecodeMessage is Classify(Decode(line)).
func DecodeMessage(line string) Classified {
	return Classify(Decode(line))
}
