package match

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// Match is one occurrence of a pattern within a text slice.
// Start and Length are measured in characters relative to the searched text.
type Match struct {
	Start  int
	Length int
}

// End returns the offset just past the match.
func (m Match) End() int {
	return m.Start + m.Length
}

// IsEmpty returns true for a zero-length match.
func (m Match) IsEmpty() bool {
	return m.Length == 0
}

// String returns a string representation of the match.
func (m Match) String() string {
	return fmt.Sprintf("Match(%d+%d)", m.Start, m.Length)
}

// iterator produces matches left to right.
type iterator interface {
	next() (Match, bool, error)
}

// Sequence is a lazy, finite, restartable sequence of non-overlapping matches.
// A Sequence is not safe for concurrent use.
type Sequence struct {
	engine engine
	text   string
	it     iterator
	done   bool
	err    error
}

// Next returns the next match. The second result is false once the sequence
// is exhausted or an error occurred; check Err afterwards.
func (s *Sequence) Next() (Match, bool) {
	if s.done {
		return Match{}, false
	}
	m, ok, err := s.it.next()
	if err != nil {
		s.err = err
		s.done = true
		return Match{}, false
	}
	if !ok {
		s.done = true
		return Match{}, false
	}
	return m, true
}

// Err returns the first error encountered during iteration.
func (s *Sequence) Err() error {
	return s.err
}

// Reset rewinds the sequence to the start of the text.
func (s *Sequence) Reset() {
	s.it = s.engine.iterate(s.text)
	s.done = false
	s.err = nil
}

// All rewinds the sequence and collects every match.
func (s *Sequence) All() ([]Match, error) {
	s.Reset()
	var matches []Match
	for m, ok := s.Next(); ok; m, ok = s.Next() {
		matches = append(matches, m)
	}
	return matches, s.Err()
}

// ecmaIterator resumes each scan at start + max(length, 1).
type ecmaIterator struct {
	re    *regexp2.Regexp
	runes []rune
	pos   int
}

func (it *ecmaIterator) next() (Match, bool, error) {
	if it.pos > len(it.runes) {
		return Match{}, false, nil
	}
	m, err := it.re.FindRunesMatchStartingAt(it.runes, it.pos)
	if err != nil {
		return Match{}, false, err
	}
	if m == nil {
		it.pos = len(it.runes) + 1
		return Match{}, false, nil
	}

	step := m.Length
	if step < 1 {
		step = 1
	}
	it.pos = m.Index + step
	return Match{Start: m.Index, Length: m.Length}, true, nil
}

// re2Iterator collects byte spans on first use and converts them to
// character offsets. FindAllStringIndex skips an empty match that starts
// where a non-empty match ended; those are restored so scanning follows the
// same start + max(length, 1) rule as the ECMAScript dialect.
type re2Iterator struct {
	re      *regexp.Regexp
	at      *regexp.Regexp
	text    string
	matches []Match
	loaded  bool
	index   int
}

func (it *re2Iterator) next() (Match, bool, error) {
	if !it.loaded {
		it.matches = runeSpans(it.text, it.spans())
		it.loaded = true
	}
	if it.index >= len(it.matches) {
		return Match{}, false, nil
	}
	m := it.matches[it.index]
	it.index++
	return m, true, nil
}

func (it *re2Iterator) spans() [][]int {
	found := it.re.FindAllStringIndex(it.text, -1)
	spans := make([][]int, 0, len(found))
	for _, span := range found {
		spans = append(spans, span)
		if span[1] > span[0] && it.emptyAt(span[1]) {
			spans = append(spans, []int{span[1], span[1]})
		}
	}
	return spans
}

// emptyAt reports whether the preferred match starting at byte offset pos
// is empty. pos must be greater than zero; the preceding rune is kept so
// that ^, \b and \B see the right context.
func (it *re2Iterator) emptyAt(pos int) bool {
	_, width := utf8.DecodeLastRuneInString(it.text[:pos])
	loc := it.at.FindStringSubmatchIndex(it.text[pos-width:])
	return loc != nil && loc[2] == width && loc[3] == width
}

// runeSpans converts ascending byte spans into character-based matches.
func runeSpans(text string, spans [][]int) []Match {
	matches := make([]Match, 0, len(spans))
	bytePos, runePos := 0, 0
	advance := func(to int) int {
		runePos += utf8.RuneCountInString(text[bytePos:to])
		bytePos = to
		return runePos
	}
	for _, span := range spans {
		start := advance(span[0])
		end := advance(span[1])
		matches = append(matches, Match{Start: start, Length: end - start})
	}
	return matches
}
