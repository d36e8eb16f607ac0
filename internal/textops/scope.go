package textops

// editScope collects the edits of one atomic operation. It stops applying
// edits after the first failure.
type editScope struct {
	doc   Document
	edits int
	err   error
}

// applyEdit runs fn as one atomic edit. If any edit fails, everything fn
// applied is reverted, so a failed operation leaves the document as it
// found it. It reports whether the document changed.
func applyEdit(doc Document, name string, fn func(s *editScope)) bool {
	s := &editScope{doc: doc}
	err := doc.Transaction(name, func() error {
		fn(s)
		return s.err
	})
	return err == nil && s.edits > 0
}

func (s *editScope) delete(start, end int) {
	if s.err != nil || start >= end {
		return
	}
	if s.err = s.doc.Delete(start, end); s.err == nil {
		s.edits++
	}
}

func (s *editScope) insert(text string) {
	if s.err != nil || text == "" {
		return
	}
	if s.err = s.doc.InsertAtCursor(text); s.err == nil {
		s.edits++
	}
}

// replace swaps [start, end) for text and leaves the caret after it.
func (s *editScope) replace(start, end int, text string) {
	s.delete(start, end)
	if s.err == nil {
		s.doc.SetCursor(start)
	}
	s.insert(text)
}
