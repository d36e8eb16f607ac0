// Package command maps action names to the text operations.
//
// A host binds menu items, key bindings or script calls to action names
// such as "lines.sort" and dispatches them against a document through a
// Registry. NewDefaultRegistry registers every built-in operation.
package command
