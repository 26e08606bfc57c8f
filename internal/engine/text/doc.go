// Package text provides character addressing for immutable document snapshots.
//
// Offsets are linear character (rune) indexes into the document, in the range
// [0, Len()]. Positions are 0-indexed line/column pairs where the column counts
// characters from the start of the line.
//
// A line ends before its line break. Both "\n" and "\r\n" are recognized as
// line breaks; a lone "\r" is ordinary text.
//
// # Addressing
//
// Document implements Snapshot and satisfies the round-trip properties:
//
//	doc.OffsetAt(doc.PositionAt(o)) == o   // for every o in [0, Len()]
//	doc.PositionAt(doc.OffsetAt(p)) == p   // for every valid Position p
//
// Out-of-range input is clamped rather than rejected, so both conversions are
// total functions over a snapshot.
package text
