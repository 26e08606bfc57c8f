// Package transform computes new region sets from existing ones.
//
// Each mode is a pure function of its inputs: the current regions, a document
// snapshot, and where required a compiled pattern and the host's primary
// region. Nothing is retained between calls and inputs are never modified.
//
// Modes:
//
//	select           every match inside every region becomes a region
//	split            the text between matches becomes regions
//	splitLines       multi-line regions are cut at line boundaries
//	selectFirstLast  each non-empty region yields its first and last character
//	selectionsClear  only the primary region remains
//	selectionsClearMain  the primary region is removed
//	keepMatching     regions whose text matches are kept
//	clearMatching    regions whose text matches are dropped
//
// Output order follows input region order, then match or line order within a
// region. keepMatching and clearMatching never return an empty set; they fall
// back to the primary region instead.
package transform
