package cursor

import "github.com/dshills/textops/internal/engine/buffer"

// Edit is an alias for buffer.Edit for convenience.
type Edit = buffer.Edit

// TransformOffset maps an offset across an edit.
//
// Offsets after the edited range shift by the edit's delta and offsets
// before it stay put. An offset exactly at a pure insertion point moves
// after the inserted text, like a caret typing it. An offset at the start
// of a non-empty replaced range stays put, and offsets strictly inside it
// land at the end of the new text.
func TransformOffset(offset Offset, edit Edit) Offset {
	switch {
	case edit.Range.IsEmpty() && edit.Range.Start == offset:
		return offset + edit.NewLen()
	case edit.Range.End <= offset:
		return offset + edit.Delta()
	case edit.Range.Start >= offset:
		return offset
	default:
		return edit.Range.Start + edit.NewLen()
	}
}

// TransformSelection maps both ends of a selection across an edit.
func TransformSelection(sel Selection, edit Edit) Selection {
	return Selection{
		Anchor: TransformOffset(sel.Anchor, edit),
		Head:   TransformOffset(sel.Head, edit),
	}
}

// AdjustForDeletion maps an offset across the removal of r. Offsets inside
// the removed text collapse to its start.
func AdjustForDeletion(offset Offset, r Range) Offset {
	if offset <= r.Start {
		return offset
	}
	if offset < r.End {
		return r.Start
	}
	return offset - r.Len()
}

// AdjustSelectionForDeletion applies AdjustForDeletion to both ends.
func AdjustSelectionForDeletion(sel Selection, r Range) Selection {
	return Selection{
		Anchor: AdjustForDeletion(sel.Anchor, r),
		Head:   AdjustForDeletion(sel.Head, r),
	}
}

// AdjustForInsertion maps an offset across an insertion of n characters at
// at. Offsets at the insertion point move after the new text.
func AdjustForInsertion(offset, at Offset, n int) Offset {
	if offset < at {
		return offset
	}
	return offset + n
}
