// Package engine groups the document and selection model.
//
// The sub-packages are:
//
//   - text: immutable documents with line/column and grapheme helpers
//   - selection: regions, region sets and their offset-pair notation
//   - match: pattern compilation for the regex dialects
package engine
