package buffer

import "fmt"

// Range represents a character range in the buffer.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start Offset
	End   Offset
}

// NewRange creates a new Range from start and end offsets.
func NewRange(start, end Offset) Range {
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in characters.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if the range is valid (Start <= End).
func (r Range) IsValid() bool {
	return r.Start <= r.End
}

// Contains returns true if the given offset is within the range.
func (r Range) Contains(offset Offset) bool {
	return offset >= r.Start && offset < r.End
}

// Clamp returns the range clamped to [0, max].
func (r Range) Clamp(max Offset) Range {
	clamp := func(v Offset) Offset {
		if v < 0 {
			return 0
		}
		if v > max {
			return max
		}
		return v
	}
	return Range{Start: clamp(r.Start), End: clamp(r.End)}
}

// Edit describes a replacement of Range with NewText.
type Edit struct {
	Range   Range
	NewText string
}

// NewLen returns the length of the inserted text in characters.
func (e Edit) NewLen() int {
	return len([]rune(e.NewText))
}

// Delta returns the change in buffer length caused by the edit.
func (e Edit) Delta() int {
	return e.NewLen() - e.Range.Len()
}
