// Package cursor holds the caret/selection model of the reference document.
//
// A Selection is a value: Anchor is where the user started selecting and Head
// is where the caret sits. Offsets are character offsets into a
// buffer.Buffer. When Anchor == Head there is no selection, only a caret.
//
// The transform helpers keep a selection valid across edits made elsewhere in
// the buffer:
//
//	sel := cursor.NewSelection(4, 9)
//	sel = cursor.AdjustSelectionForDeletion(sel, buffer.NewRange(0, 2)) // (2, 7)
package cursor
