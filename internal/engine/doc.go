// Package engine provides the reference document the text operations run
// against.
//
// An Engine holds text addressed by character offsets, one caret with an
// optional selection, the byte encoding the text was loaded from and a
// grouped undo history. It satisfies the document interface of the
// textops, charset and stats packages, and it is what the CLI and the Lua
// host edit.
//
// # Architecture
//
//   - buffer: rune storage with line/column conversion
//   - cursor: the caret/selection value and how it moves across edits
//   - history: replace commands and nested undo groups
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("b\na\n"))
//	e.SetSelection(0, 3)
//	e.BeginEdit("Sort Lines")
//	e.Delete(0, 3)
//	e.InsertAtCursor("a\nb")
//	e.EndEdit()
//	e.Undo() // "b\na\n" again, in one step
//
// # Caret Rules
//
// Deleting text that contains the caret collapses it to the start of the
// deleted range; deleting text before it shifts it left. InsertAtCursor
// always drops the selection and leaves the caret after the inserted text.
//
// # Thread Safety
//
// All Engine operations are thread-safe. Listeners registered with
// Subscribe run after the engine lock is released.
package engine
