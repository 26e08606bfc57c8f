// Package selection provides the Region value type and helpers for ordered
// region sets.
//
// A Region is a selection defined by an anchor (the stationary end) and an
// active position (the moving end). Direction is significant: a region whose
// active end precedes its anchor is backward. Region is an immutable value type.
//
// A region set is a plain []Region. Sets handed over by a host need not be
// sorted or disjoint, so helpers in this package never reorder or merge.
package selection
