package text

import "sort"

// Document is an immutable text snapshot with a line-start index.
// It is safe for concurrent reads.
type Document struct {
	runes []rune

	// lineStarts holds the offset of the first character of every line.
	// lineStarts[0] is always 0.
	lineStarts []int
}

// NewDocument creates a document snapshot of the given text.
func NewDocument(s string) *Document {
	runes := []rune(s)
	return &Document{
		runes:      runes,
		lineStarts: computeLineStarts(runes),
	}
}

// computeLineStarts scans the text and records where every line begins.
func computeLineStarts(runes []rune) []int {
	starts := make([]int, 1, 16)
	for i, r := range runes {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Text returns the full document content.
func (d *Document) Text() string {
	return string(d.runes)
}

// Len returns the document length in characters.
func (d *Document) Len() int {
	return len(d.runes)
}

// LineCount returns the number of lines. An empty document has one line.
func (d *Document) LineCount() int {
	return len(d.lineStarts)
}

// LineStart returns the offset of the start of a line.
// Lines past the end resolve to the document length.
func (d *Document) LineStart(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(d.lineStarts) {
		return len(d.runes)
	}
	return d.lineStarts[line]
}

// lineLimit returns the offset of the line's '\n', or the document length for
// the last line. Every offset in [LineStart(line), lineLimit(line)] addresses
// the line, including a trailing '\r'.
func (d *Document) lineLimit(line int) int {
	if line+1 < len(d.lineStarts) {
		return d.lineStarts[line+1] - 1
	}
	return len(d.runes)
}

// LineEnd returns the position at the end of a line's content.
// A "\r\n" break is excluded from the content.
func (d *Document) LineEnd(line int) Position {
	if line < 0 {
		line = 0
	}
	if line >= len(d.lineStarts) {
		line = len(d.lineStarts) - 1
	}
	start := d.lineStarts[line]
	end := d.lineLimit(line)
	if line+1 < len(d.lineStarts) && end > start && d.runes[end-1] == '\r' {
		end--
	}
	return Position{Line: line, Column: end - start}
}

// LineText returns the content of a line without its line break.
func (d *Document) LineText(line int) string {
	end := d.LineEnd(line)
	start := d.LineStart(end.Line)
	return string(d.runes[start : start+end.Column])
}

// OffsetAt converts a position to an offset.
// Lines past the end map to the document length; columns past the line map to
// the line's last addressable offset.
func (d *Document) OffsetAt(p Position) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(d.lineStarts) {
		return len(d.runes)
	}
	start := d.lineStarts[p.Line]
	limit := d.lineLimit(p.Line)
	col := p.Column
	if col < 0 {
		col = 0
	}
	if start+col > limit {
		return limit
	}
	return start + col
}

// PositionAt converts an offset to a position.
// Offsets are clamped to [0, Len()].
func (d *Document) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.runes) {
		offset = len(d.runes)
	}

	// Largest line whose start is <= offset.
	line := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	}) - 1

	return Position{Line: line, Column: offset - d.lineStarts[line]}
}

// TextBetween returns the text in the offset range [start, end).
// The range is clamped to the document and normalized if reversed.
func (d *Document) TextBetween(start, end int) string {
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end > len(d.runes) {
		end = len(d.runes)
	}
	if start >= end {
		return ""
	}
	return string(d.runes[start:end])
}

// IsValid reports whether p addresses an existing character slot without
// clamping.
func (d *Document) IsValid(p Position) bool {
	if p.Line < 0 || p.Line >= len(d.lineStarts) || p.Column < 0 {
		return false
	}
	return d.lineStarts[p.Line]+p.Column <= d.lineLimit(p.Line)
}
