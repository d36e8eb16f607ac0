package cursor

import (
	"fmt"

	"github.com/dshills/textops/internal/engine/buffer"
)

// Offset is a character offset.
type Offset = buffer.Offset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Selection is a caret with an optional extent.
type Selection struct {
	Anchor Offset
	Head   Offset
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head Offset) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a caret with no extent.
func NewCursorSelection(offset Offset) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// IsEmpty reports whether the selection is just a caret.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Start returns the lower bound.
func (s Selection) Start() Offset {
	return min(s.Anchor, s.Head)
}

// End returns the upper bound.
func (s Selection) End() Offset {
	return max(s.Anchor, s.Head)
}

// Range returns the selection with Start <= End.
func (s Selection) Range() Range {
	return Range{Start: s.Start(), End: s.End()}
}

// Len returns the number of selected characters.
func (s Selection) Len() int {
	return s.End() - s.Start()
}

// Cursor returns the head.
func (s Selection) Cursor() Offset {
	return s.Head
}

// IsBackward reports whether the head precedes the anchor.
func (s Selection) IsBackward() bool {
	return s.Head < s.Anchor
}

// Collapse drops the extent, keeping the caret at the head.
func (s Selection) Collapse() Selection {
	return NewCursorSelection(s.Head)
}

// CollapseToStart drops the extent, keeping the caret at the lower bound.
func (s Selection) CollapseToStart() Selection {
	return NewCursorSelection(s.Start())
}

// Clamp limits both ends to [0, maxOffset].
func (s Selection) Clamp(maxOffset Offset) Selection {
	return Selection{
		Anchor: clampOffset(s.Anchor, maxOffset),
		Head:   clampOffset(s.Head, maxOffset),
	}
}

func clampOffset(v, maxOffset Offset) Offset {
	if v < 0 {
		return 0
	}
	if v > maxOffset {
		return maxOffset
	}
	return v
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor(%d)", s.Head)
	}
	dir := "→"
	if s.IsBackward() {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%d%s%d)", s.Anchor, dir, s.Head)
}
