package selection

import (
	"errors"
	"testing"

	"github.com/dshills/selex/internal/engine/text"
)

func pos(line, col int) Position {
	return Position{Line: line, Column: col}
}

func TestNewRegion(t *testing.T) {
	r := NewRegion(pos(0, 1), pos(2, 3))

	if r.Anchor != pos(0, 1) {
		t.Errorf("expected anchor (0:1), got %s", r.Anchor)
	}
	if r.Active != pos(2, 3) {
		t.Errorf("expected active (2:3), got %s", r.Active)
	}
}

func TestRegionIsEmpty(t *testing.T) {
	if !NewCursorRegion(pos(1, 1)).IsEmpty() {
		t.Error("cursor region should be empty")
	}
	if NewRegion(pos(1, 1), pos(1, 2)).IsEmpty() {
		t.Error("region with extent should not be empty")
	}
}

func TestRegionIsSingleLine(t *testing.T) {
	if !NewRegion(pos(3, 0), pos(3, 9)).IsSingleLine() {
		t.Error("should be single line")
	}
	if NewRegion(pos(3, 0), pos(4, 0)).IsSingleLine() {
		t.Error("should span two lines")
	}
}

func TestRegionStartEnd(t *testing.T) {
	forward := NewRegion(pos(0, 2), pos(1, 0))
	if forward.Start() != pos(0, 2) || forward.End() != pos(1, 0) {
		t.Error("forward region Start/End incorrect")
	}

	backward := NewRegion(pos(1, 0), pos(0, 2))
	if backward.Start() != pos(0, 2) || backward.End() != pos(1, 0) {
		t.Error("backward region Start/End incorrect")
	}
}

func TestRegionDirection(t *testing.T) {
	forward := NewRegion(pos(0, 0), pos(0, 5))
	if !forward.IsForward() || forward.IsBackward() {
		t.Error("should be forward")
	}

	backward := forward.Flip()
	if backward.IsForward() || !backward.IsBackward() {
		t.Error("flipped region should be backward")
	}

	if !backward.Normalize().Equals(forward) {
		t.Error("normalize should restore the forward region")
	}
}

func TestRegionText(t *testing.T) {
	doc := text.NewDocument("abc\ndef")

	forward := FromOffsets(doc, 1, 6)
	if got := Text(doc, forward); got != "bc\nde" {
		t.Errorf("expected 'bc\\nde', got %q", got)
	}

	backward := FromOffsets(doc, 6, 1)
	if got := Text(doc, backward); got != "bc\nde" {
		t.Errorf("text should not depend on direction, got %q", got)
	}

	if StartOffset(doc, backward) != 1 || EndOffset(doc, backward) != 6 {
		t.Error("backward region offsets should be normalized")
	}
}

func TestRemoveAtPreservesOrder(t *testing.T) {
	regions := []Region{
		NewCursorRegion(pos(0, 0)),
		NewCursorRegion(pos(0, 1)),
		NewCursorRegion(pos(0, 2)),
	}

	result := RemoveAt(regions, 1)
	if len(result) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(result))
	}
	if result[0] != regions[0] || result[1] != regions[2] {
		t.Error("remaining regions should keep their relative order")
	}
	if len(regions) != 3 {
		t.Error("input slice should not be modified")
	}

	if got := RemoveAt(regions, 7); !Equal(got, regions) {
		t.Error("out of range index should return an equal copy")
	}
}

func TestIndexOfFirstOccurrence(t *testing.T) {
	a := NewCursorRegion(pos(0, 0))
	b := NewRegion(pos(0, 1), pos(0, 3))
	regions := []Region{a, b, b}

	if IndexOf(regions, b) != 1 {
		t.Errorf("expected first occurrence at 1, got %d", IndexOf(regions, b))
	}
	if IndexOf(regions, b.Flip()) != -1 {
		t.Error("direction is part of region equality")
	}
}

func TestParseRegions(t *testing.T) {
	doc := text.NewDocument("abc\ndef\nghi")

	regions, err := ParseRegions(doc, "0:3, 7:4,9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(regions) != 3 {
		t.Fatalf("expected 3 regions, got %d", len(regions))
	}
	if regions[1].Anchor != pos(1, 3) || regions[1].Active != pos(1, 0) {
		t.Errorf("unexpected second region %s", regions[1])
	}
	if !regions[2].IsEmpty() {
		t.Error("single offset should yield an empty region")
	}

	if got := FormatRegions(doc, regions); got != "0:3,7:4,9:9" {
		t.Errorf("expected '0:3,7:4,9:9', got %q", got)
	}
}

func TestParseRegionsErrors(t *testing.T) {
	doc := text.NewDocument("abc")

	if _, err := ParseRegions(doc, "0:x"); err == nil {
		t.Error("expected error for non-numeric offset")
	}
	if _, err := ParseRegions(doc, "0:10"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
	if regions, err := ParseRegions(doc, "  "); err != nil || regions != nil {
		t.Error("blank spec should yield no regions and no error")
	}
}
