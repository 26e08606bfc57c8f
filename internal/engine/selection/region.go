package selection

import (
	"fmt"

	"github.com/dshills/selex/internal/engine/text"
)

// Position is an alias for text.Position for convenience.
type Position = text.Position

// Region represents one selection.
// When Anchor == Active the region is empty (a bare cursor).
type Region struct {
	Anchor Position // Stationary end
	Active Position // Moving end
}

// NewRegion creates a region from anchor to active.
func NewRegion(anchor, active Position) Region {
	return Region{Anchor: anchor, Active: active}
}

// NewCursorRegion creates an empty region at the given position.
func NewCursorRegion(p Position) Region {
	return Region{Anchor: p, Active: p}
}

// FromOffsets creates a region from anchor and active offsets in snap.
func FromOffsets(snap text.Snapshot, anchor, active int) Region {
	return Region{
		Anchor: snap.PositionAt(anchor),
		Active: snap.PositionAt(active),
	}
}

// IsEmpty returns true if the region has no extent.
func (r Region) IsEmpty() bool {
	return r.Anchor == r.Active
}

// IsSingleLine returns true if both ends are on the same line.
func (r Region) IsSingleLine() bool {
	return r.Anchor.Line == r.Active.Line
}

// IsForward returns true if the active end is at or after the anchor.
func (r Region) IsForward() bool {
	return r.Active.Compare(r.Anchor) >= 0
}

// IsBackward returns true if the active end is before the anchor.
func (r Region) IsBackward() bool {
	return r.Active.Before(r.Anchor)
}

// Start returns the lower bound of the region.
func (r Region) Start() Position {
	if r.Anchor.Compare(r.Active) <= 0 {
		return r.Anchor
	}
	return r.Active
}

// End returns the upper bound of the region.
func (r Region) End() Position {
	if r.Anchor.Compare(r.Active) >= 0 {
		return r.Anchor
	}
	return r.Active
}

// Flip returns a region with anchor and active swapped.
func (r Region) Flip() Region {
	return Region{Anchor: r.Active, Active: r.Anchor}
}

// Normalize returns a forward region covering the same span.
func (r Region) Normalize() Region {
	return Region{Anchor: r.Start(), Active: r.End()}
}

// Equals returns true if both regions have the same anchor and active ends.
func (r Region) Equals(other Region) bool {
	return r.Anchor == other.Anchor && r.Active == other.Active
}

// String returns a string representation of the region.
func (r Region) String() string {
	return fmt.Sprintf("Region(%s->%s)", r.Anchor, r.Active)
}

// StartOffset returns the offset of the region's start in snap.
func StartOffset(snap text.Snapshot, r Region) int {
	return snap.OffsetAt(r.Start())
}

// EndOffset returns the offset of the region's end in snap.
func EndOffset(snap text.Snapshot, r Region) int {
	return snap.OffsetAt(r.End())
}

// Offsets returns the anchor and active offsets of r in snap.
func Offsets(snap text.Snapshot, r Region) (anchor, active int) {
	return snap.OffsetAt(r.Anchor), snap.OffsetAt(r.Active)
}

// Text returns the text covered by r, independent of its direction.
func Text(snap text.Snapshot, r Region) string {
	return snap.TextBetween(StartOffset(snap, r), EndOffset(snap, r))
}
