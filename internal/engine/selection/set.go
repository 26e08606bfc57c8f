package selection

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/selex/internal/engine/text"
)

// IndexOf returns the index of the first region equal to r, or -1.
func IndexOf(regions []Region, r Region) int {
	for i, candidate := range regions {
		if candidate.Equals(r) {
			return i
		}
	}
	return -1
}

// RemoveAt returns a new slice without the region at index.
// The relative order of the remaining regions is preserved.
// An out-of-range index returns a copy of the input.
func RemoveAt(regions []Region, index int) []Region {
	if index < 0 || index >= len(regions) {
		return Clone(regions)
	}
	result := make([]Region, 0, len(regions)-1)
	result = append(result, regions[:index]...)
	return append(result, regions[index+1:]...)
}

// Clone returns a copy of the region slice.
func Clone(regions []Region) []Region {
	if regions == nil {
		return nil
	}
	result := make([]Region, len(regions))
	copy(result, regions)
	return result
}

// Equal reports whether two region sets hold equal regions in the same order.
func Equal(a, b []Region) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}

// ParseRegions parses a comma-separated list of offset pairs such as
// "0:12,20:15" into regions of snap. Each pair is anchor:active; a single
// offset yields an empty region.
func ParseRegions(snap text.Snapshot, spec string) ([]Region, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	var regions []Region
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		anchorStr, activeStr, found := strings.Cut(part, ":")
		if !found {
			activeStr = anchorStr
		}

		anchor, err := parseOffset(snap, anchorStr)
		if err != nil {
			return nil, fmt.Errorf("region %q: %w", part, err)
		}
		active, err := parseOffset(snap, activeStr)
		if err != nil {
			return nil, fmt.Errorf("region %q: %w", part, err)
		}
		regions = append(regions, FromOffsets(snap, anchor, active))
	}
	return regions, nil
}

func parseOffset(snap text.Snapshot, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q", s)
	}
	if n < 0 || n > snap.Len() {
		return 0, fmt.Errorf("%w: %d not in [0, %d]", ErrOffsetOutOfRange, n, snap.Len())
	}
	return n, nil
}

// FormatRegions renders regions as anchor:active offset pairs, the inverse of
// ParseRegions.
func FormatRegions(snap text.Snapshot, regions []Region) string {
	parts := make([]string, len(regions))
	for i, r := range regions {
		anchor, active := Offsets(snap, r)
		parts[i] = fmt.Sprintf("%d:%d", anchor, active)
	}
	return strings.Join(parts, ",")
}
