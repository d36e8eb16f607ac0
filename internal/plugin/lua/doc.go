// Package lua runs editor scripts against a document.
//
// A State is a gopher-lua interpreter with only the base, table, string
// and math libraries and without the functions that load code from disk or
// strings. Bind installs a global "textops" table whose functions run the
// registered actions on a document:
//
//	textops.sort{reverse = true, caseSensitive = true}
//	textops.run("lines.dedup", {offset = 2})
//	local s = textops.stats()
//	print(s.document.words, s.selection)  -- selection is nil without one
//
// Errors raised by scripts, and panics in Go callbacks, come back from
// DoString and DoFile as Go errors.
package lua
