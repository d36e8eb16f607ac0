// Package textops implements the line and percent-encoding transforms an
// editor applies to a document.
//
// Every operation takes a Document, works out the span it applies to from
// the selection (see ResolveSelection and ResolveSelectedLines) and edits
// the document only through the Document primitives, inside one atomic
// edit. Operations report whether they changed anything; conditions that
// leave nothing to do are not errors.
//
// Line operations run in one of two modes. With no selection they cover the
// whole document and edit it line by line in place, so the caret stays on
// the text it was on. With a selection the selected lines are replaced as a
// block and the caret ends up after the new text.
package textops
