package textops

// Document is the editing surface the operations need from a host buffer.
// Offsets count characters (Unicode scalar values), not bytes.
type Document interface {
	Len() int
	LineCount() int
	Text(start, end int) string
	Delete(start, end int) error
	InsertAtCursor(text string) error

	// BeginEdit and EndEdit bracket edits that must undo as one step.
	BeginEdit(name string)
	EndEdit()
	// Transaction runs fn as one atomic edit and reverts it if fn fails.
	Transaction(name string, fn func() error) error

	Cursor() int
	SetCursor(offset int)
	// Selection returns ok == false when nothing is selected.
	Selection() (start, end int, ok bool)
	SetSelection(start, end int)

	Encoding() string
	SetEncoding(name string)

	// Undo reverts the most recent atomic edit.
	Undo() error
}
