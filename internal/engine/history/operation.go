package history

import (
	"time"
	"unicode/utf8"

	"github.com/dshills/textops/internal/engine/buffer"
	"github.com/dshills/textops/internal/engine/cursor"
)

// Offset is an alias for buffer.Offset for convenience.
type Offset = buffer.Offset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Selection is an alias for cursor.Selection for convenience.
type Selection = cursor.Selection

// Operation is the record of one applied replacement, enough to reverse it.
type Operation struct {
	Range   Range  // range replaced, in the document as it was before
	OldText string // text that was replaced
	NewText string // text that took its place

	SelectionBefore Selection
	SelectionAfter  Selection

	Timestamp time.Time
}

// NewOperation creates a new operation.
func NewOperation(r Range, oldText, newText string) *Operation {
	return &Operation{
		Range:     r,
		OldText:   oldText,
		NewText:   newText,
		Timestamp: time.Now(),
	}
}

// IsInsert returns true if this operation is a pure insertion.
func (op *Operation) IsInsert() bool {
	return op.Range.IsEmpty() && op.NewText != ""
}

// IsDelete returns true if this operation is a pure deletion.
func (op *Operation) IsDelete() bool {
	return !op.Range.IsEmpty() && op.NewText == ""
}

// IsNoop returns true if this operation makes no changes.
func (op *Operation) IsNoop() bool {
	return op.Range.IsEmpty() && op.NewText == ""
}

// Delta returns the change in document length in characters.
func (op *Operation) Delta() int {
	return utf8.RuneCountInString(op.NewText) - op.Range.Len()
}

// NewRange returns where the new text sits after the operation.
func (op *Operation) NewRange() Range {
	return Range{
		Start: op.Range.Start,
		End:   op.Range.Start + utf8.RuneCountInString(op.NewText),
	}
}

// Invert returns an operation that undoes this one.
func (op *Operation) Invert() *Operation {
	return &Operation{
		Range:           op.NewRange(),
		OldText:         op.NewText,
		NewText:         op.OldText,
		SelectionBefore: op.SelectionAfter,
		SelectionAfter:  op.SelectionBefore,
		Timestamp:       time.Now(),
	}
}

// OperationInfo is a read-only view of an undo entry.
type OperationInfo struct {
	ID          string // unique per entry; stable across undo/redo
	Description string
	Timestamp   time.Time
	Delta       int // positive for growth, negative for shrinkage
}
