package transform

import (
	"fmt"

	"github.com/dshills/selex/internal/engine/match"
	"github.com/dshills/selex/internal/engine/selection"
	"github.com/dshills/selex/internal/engine/text"
)

// Clear replaces the region set with the primary region.
func Clear(primary PrimaryProvider) []selection.Region {
	return []selection.Region{primary.Primary()}
}

// ClearMain removes the first region equal to the primary region, preserving
// the order of the rest. Sets of one or zero regions, and sets that do not
// contain the primary region, are returned unchanged.
func ClearMain(regions []selection.Region, primary PrimaryProvider) []selection.Region {
	if len(regions) <= 1 {
		return selection.Clone(regions)
	}
	return selection.RemoveAt(regions, selection.IndexOf(regions, primary.Primary()))
}

// KeepMatching keeps the regions whose text contains a match of pat.
// If none match, the result is the primary region alone.
func KeepMatching(snap text.Snapshot, regions []selection.Region, pat *match.Pattern, primary PrimaryProvider) ([]selection.Region, error) {
	return filter(snap, regions, pat, primary, true)
}

// ClearMatching drops the regions whose text contains a match of pat.
// If all match, the result is the primary region alone.
func ClearMatching(snap text.Snapshot, regions []selection.Region, pat *match.Pattern, primary PrimaryProvider) ([]selection.Region, error) {
	return filter(snap, regions, pat, primary, false)
}

func filter(snap text.Snapshot, regions []selection.Region, pat *match.Pattern, primary PrimaryProvider, keep bool) ([]selection.Region, error) {
	result := make([]selection.Region, 0, len(regions))

	for _, r := range regions {
		matched, err := pat.Test(selection.Text(snap, r))
		if err != nil {
			return nil, fmt.Errorf("filter: %w", err)
		}
		if matched == keep {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return Clear(primary), nil
	}
	return result, nil
}
