package text

import "fmt"

// Position represents a line and column position.
// Both Line and Column are 0-indexed. Column is measured in characters.
type Position struct {
	Line   int
	Column int
}

// NewPosition creates a position, clamping negative values to zero.
func NewPosition(line, column int) Position {
	if line < 0 {
		line = 0
	}
	if column < 0 {
		column = 0
	}
	return Position{Line: line, Column: column}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// Translate returns a position shifted by the given line and column deltas.
// The result is clamped to non-negative values; it is not validated against
// any document.
func (p Position) Translate(lineDelta, columnDelta int) Position {
	return NewPosition(p.Line+lineDelta, p.Column+columnDelta)
}

// WithColumn returns a copy of p with the column replaced.
func (p Position) WithColumn(column int) Position {
	return NewPosition(p.Line, column)
}

// Snapshot is a read-only view of a document, valid for the duration of one
// transform call. Implementations must not change while in use.
type Snapshot interface {
	// Len returns the document length in characters.
	Len() int

	// LineCount returns the number of lines (at least 1).
	LineCount() int

	// LineStart returns the offset of the first character of a line.
	LineStart(line int) int

	// LineEnd returns the position at the end of a line's content,
	// before its line break.
	LineEnd(line int) Position

	// OffsetAt converts a position to an offset.
	OffsetAt(p Position) int

	// PositionAt converts an offset to a position.
	PositionAt(offset int) Position

	// TextBetween returns the text in the offset range [start, end).
	TextBetween(start, end int) string
}
