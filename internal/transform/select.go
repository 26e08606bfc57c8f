package transform

import (
	"fmt"

	"github.com/dshills/selex/internal/engine/match"
	"github.com/dshills/selex/internal/engine/selection"
	"github.com/dshills/selex/internal/engine/text"
)

// Select replaces every region with one forward region per match of pat in
// the region's text. Regions without matches contribute nothing, so the result
// may be empty.
func Select(snap text.Snapshot, regions []selection.Region, pat *match.Pattern) ([]selection.Region, error) {
	result := make([]selection.Region, 0, len(regions))

	for _, r := range regions {
		base := selection.StartOffset(snap, r)
		seq := pat.Matches(selection.Text(snap, r))

		for m, ok := seq.Next(); ok; m, ok = seq.Next() {
			result = append(result, selection.FromOffsets(snap, base+m.Start, base+m.End()))
		}
		if err := seq.Err(); err != nil {
			return nil, fmt.Errorf("select: %w", err)
		}
	}

	return result, nil
}

// Split replaces every region with the pieces of its text between matches of
// pat. The last piece runs from the end of the final match to the region's
// end, so a region without matches is returned as one piece covering it.
func Split(snap text.Snapshot, regions []selection.Region, pat *match.Pattern) ([]selection.Region, error) {
	result := make([]selection.Region, 0, len(regions))

	for _, r := range regions {
		base := selection.StartOffset(snap, r)
		cursor := base
		seq := pat.Matches(selection.Text(snap, r))

		for m, ok := seq.Next(); ok; m, ok = seq.Next() {
			result = append(result, selection.FromOffsets(snap, cursor, base+m.Start))
			cursor = base + m.End()
		}
		if err := seq.Err(); err != nil {
			return nil, fmt.Errorf("split: %w", err)
		}

		result = append(result, selection.NewRegion(snap.PositionAt(cursor), r.End()))
	}

	return result, nil
}
