package transform

import (
	"fmt"
	"strings"

	"github.com/dshills/selex/internal/engine/selection"
	"github.com/dshills/selex/internal/engine/text"
)

// EdgePolicy controls how SelectFirstLast measures one character.
type EdgePolicy uint8

const (
	// EdgeColumn steps one column on the same line and clamps to the line.
	// An active end at column 0 yields an empty last region.
	EdgeColumn EdgePolicy = iota

	// EdgeOffset steps one grapheme cluster by offset and may cross a line
	// break.
	EdgeOffset
)

// String returns the policy name.
func (p EdgePolicy) String() string {
	switch p {
	case EdgeColumn:
		return "column"
	case EdgeOffset:
		return "offset"
	default:
		return "unknown"
	}
}

// ParseEdgePolicy parses "column" or "offset".
func ParseEdgePolicy(s string) (EdgePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "column":
		return EdgeColumn, nil
	case "offset", "grapheme":
		return EdgeOffset, nil
	default:
		return EdgeColumn, fmt.Errorf("unknown edge policy %q", s)
	}
}

// SplitLines cuts every multi-line region at line boundaries. For each such
// region it emits, in order: start to end of the start line, start of the end
// line to the end, then each full intermediate line in ascending order. All
// pieces are forward. Single-line regions are passed through unchanged.
func SplitLines(snap text.Snapshot, regions []selection.Region) []selection.Region {
	result := make([]selection.Region, 0, len(regions))

	for _, r := range regions {
		if r.IsSingleLine() {
			result = append(result, r)
			continue
		}

		start, end := r.Start(), r.End()

		result = append(result, selection.NewRegion(start, snap.LineEnd(start.Line)))
		result = append(result, selection.NewRegion(text.Position{Line: end.Line}, end))

		for line := start.Line + 1; line < end.Line; line++ {
			result = append(result, selection.NewRegion(text.Position{Line: line}, snap.LineEnd(line)))
		}
	}

	return result
}

// SelectFirstLast reduces every non-empty region to two forward regions: the
// character after its anchor and the character before its active end. Empty
// regions are passed through unchanged.
func SelectFirstLast(snap text.Snapshot, regions []selection.Region, policy EdgePolicy) []selection.Region {
	result := make([]selection.Region, 0, len(regions)*2)

	for _, r := range regions {
		if r.IsEmpty() {
			result = append(result, r)
			continue
		}

		switch policy {
		case EdgeOffset:
			anchor, active := selection.Offsets(snap, r)
			result = append(result,
				selection.FromOffsets(snap, anchor, text.NextCluster(snap, anchor)),
				selection.FromOffsets(snap, text.PrevCluster(snap, active), active),
			)
		default:
			result = append(result,
				selection.NewRegion(r.Anchor, stepColumn(snap, r.Anchor, 1)),
				selection.NewRegion(stepColumn(snap, r.Active, -1), r.Active),
			)
		}
	}

	return result
}

// stepColumn moves p by delta columns without leaving its line.
func stepColumn(snap text.Snapshot, p text.Position, delta int) text.Position {
	col := p.Column + delta
	if col < 0 {
		col = 0
	}
	limit := snap.LineEnd(p.Line).Column
	if limit < p.Column {
		limit = p.Column
	}
	if col > limit {
		col = limit
	}
	return p.WithColumn(col)
}
