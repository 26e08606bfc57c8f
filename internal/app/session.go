package app

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/selex/internal/dispatcher/handler"
	"github.com/dshills/selex/internal/engine/selection"
	"github.com/dshills/selex/internal/engine/text"
)

// Session is an in-memory host: one document and its non-empty region set.
// The primary region is the first region unless changed with SetPrimary;
// every applied transform resets it to the first region.
type Session struct {
	mu      sync.RWMutex
	id      string
	doc     *text.Document
	regions []selection.Region
	primary int
}

// NewSession creates a session over doc. Without regions the session holds
// a single cursor at the start of the document.
func NewSession(doc *text.Document, regions []selection.Region) *Session {
	if doc == nil {
		doc = text.NewDocument("")
	}
	if len(regions) == 0 {
		regions = []selection.Region{selection.NewCursorRegion(text.Position{})}
	}
	return &Session{
		id:      uuid.NewString(),
		doc:     doc,
		regions: selection.Clone(regions),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Document returns the session document.
func (s *Session) Document() *text.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// SetDocument replaces the document and resets the regions to a cursor at
// its start.
func (s *Session) SetDocument(doc *text.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.regions = []selection.Region{selection.NewCursorRegion(text.Position{})}
	s.primary = 0
}

// Regions returns a copy of the current regions.
func (s *Session) Regions() []selection.Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return selection.Clone(s.regions)
}

// Len returns the number of regions.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.regions)
}

// SetRegions replaces the region set and makes the first region primary.
func (s *Session) SetRegions(regions []selection.Region) error {
	if len(regions) == 0 {
		return ErrNoRegions
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regions = selection.Clone(regions)
	s.primary = 0
	return nil
}

// SetRegionSpec parses offset pairs such as "0:5,8:8" and installs them.
func (s *Session) SetRegionSpec(spec string) error {
	regions, err := selection.ParseRegions(s.Document(), spec)
	if err != nil {
		return err
	}
	return s.SetRegions(regions)
}

// Primary returns the primary region.
func (s *Session) Primary() selection.Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.regions[s.primary]
}

// PrimaryIndex returns the index of the primary region.
func (s *Session) PrimaryIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.primary
}

// SetPrimary selects which region is primary.
func (s *Session) SetPrimary(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.regions) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrPrimaryOutOfRange, index, len(s.regions))
	}
	s.primary = index
	return nil
}

// Text returns the text covered by region i.
func (s *Session) Text(i int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.regions) {
		return "", fmt.Errorf("%w: %d not in [0, %d)", ErrRegionOutOfRange, i, len(s.regions))
	}
	return selection.Text(s.doc, s.regions[i]), nil
}

// Apply installs the regions of a successful result. Results that are not
// OK, or carry no regions, leave the session untouched. It reports whether
// the session changed.
func (s *Session) Apply(r handler.Result) bool {
	if !r.IsOK() || len(r.Regions) == 0 {
		return false
	}
	return s.SetRegions(r.Regions) == nil
}

// Format renders the regions as anchor:active offset pairs.
func (s *Session) Format() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return selection.FormatRegions(s.doc, s.regions)
}
