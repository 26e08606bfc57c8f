package text

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// clusterWindow bounds how far NextCluster and PrevCluster look around an
// offset. Clusters longer than this are split.
const clusterWindow = 32

// NextCluster returns the offset just past the grapheme cluster that starts at
// offset. At the end of the document it returns Len().
func NextCluster(s Snapshot, offset int) int {
	n := s.Len()
	if offset >= n {
		return n
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + clusterWindow
	if end > n {
		end = n
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s.TextBetween(offset, end), -1)
	size := utf8.RuneCountInString(cluster)
	if size == 0 {
		size = 1
	}
	return offset + size
}

// PrevCluster returns the offset of the start of the grapheme cluster that ends
// at offset. At the start of the document it returns 0.
func PrevCluster(s Snapshot, offset int) int {
	if offset <= 0 {
		return 0
	}
	if n := s.Len(); offset > n {
		offset = n
	}
	start := offset - clusterWindow
	if start < 0 {
		start = 0
	}

	rest := s.TextBetween(start, offset)
	last := 1
	state := -1
	var cluster string
	for len(rest) > 0 {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		last = utf8.RuneCountInString(cluster)
	}
	return offset - last
}
