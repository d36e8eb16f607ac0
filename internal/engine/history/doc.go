// Package history provides grouped undo/redo for the reference document.
//
// # Commands
//
// Every edit is a ReplaceCommand: a range and the text that replaces it.
// Insertions and deletions are the degenerate cases. A command records the
// Operation it applied so it can be undone and re-executed.
//
// # Groups
//
// Groups turn many commands into one undo entry. They nest, so an operation
// that opens a group can call another that opens its own:
//
//	h.BeginGroup("Sort Lines")
//	h.BeginGroup("Dedup")   // nested, no separate entry
//	// ... edits ...
//	h.EndGroup()
//	h.EndGroup()            // one entry recorded here
//
// Each recorded entry gets a UUID so a caller can later check that the entry
// on top of the stack is still the one it created.
package history
