package charset

import "testing"

func TestPreviewKeepsOneRedecode(t *testing.T) {
	broken := mojibake(t, "Grüße")
	doc := newDoc(broken, "latin_1")
	p := NewPreview(doc)

	if !p.Apply("utf-8", false) {
		t.Fatal("first preview should change the document")
	}
	if doc.Content() != "Grüße" {
		t.Errorf("utf-8 preview = %q", doc.Content())
	}

	if !p.Apply("cp1252", false) {
		t.Fatal("second preview should change the document")
	}
	if doc.Content() != "GrÃ¼ÃŸe" {
		t.Errorf("cp1252 preview = %q", doc.Content())
	}
	if doc.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", doc.UndoCount())
	}

	p.Cancel()
	if doc.Content() != broken {
		t.Errorf("cancel left %q", doc.Content())
	}
	if p.Active() || doc.UndoCount() != 0 {
		t.Errorf("active %v, UndoCount %d after cancel", p.Active(), doc.UndoCount())
	}
}

func TestPreviewNoOpApplyRevertsPrevious(t *testing.T) {
	broken := mojibake(t, "Grüße")
	doc := newDoc(broken, "latin_1")
	p := NewPreview(doc)

	p.Apply("utf-8", false)
	if p.Apply("latin-1", false) {
		t.Error("previewing the declared encoding should be a no-op")
	}
	if doc.Content() != broken || p.Active() {
		t.Errorf("content %q, active %v", doc.Content(), p.Active())
	}

	// Nothing applied, so there is nothing to undo.
	p.Cancel()
	if doc.Content() != broken {
		t.Errorf("content %q", doc.Content())
	}
}

func TestPreviewAccept(t *testing.T) {
	doc := newDoc(mojibake(t, "Grüße"), "latin_1")
	p := NewPreview(doc)

	p.Apply("utf-8", false)
	p.Accept()
	p.Cancel()

	if doc.Content() != "Grüße" {
		t.Errorf("accepted preview reverted: %q", doc.Content())
	}
	if doc.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", doc.UndoCount())
	}
}

func TestPreviewLeavesForeignEdits(t *testing.T) {
	doc := newDoc(mojibake(t, "Grüße"), "latin_1")
	p := NewPreview(doc)

	p.Apply("utf-8", false)
	if err := doc.InsertAtCursor("!"); err != nil {
		t.Fatal(err)
	}
	p.Cancel()

	if doc.Content() != "Grüße!" {
		t.Errorf("cancel undid someone else's edit: %q", doc.Content())
	}
}
