// Package nmea decodes NMEA 0183 sentences.
//
// Decoding is split in three stages:
//   - Decode validates a raw line (shape and XOR checksum) and splits it into
//     talker id, message tag and fields. It never fails; a bad line yields a
//     malformed Sentence.
//   - Typed accessors (Int, Float, Hex, Pair and the Sentence methods Char,
//     Text, Time, Date, Coordinate) interpret single fields on demand.
//   - Classify maps the message tag to a Kind, returning a Message or an
//     *Error.
//
// Named per-message accessors are data, not code: the Catalogue binds
// (tag, name, index, extraction) and resolves them through the accessors.
package nmea
