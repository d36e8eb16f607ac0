package engine

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

// ============================================================================
// Basic Operations
// ============================================================================

func TestNew(t *testing.T) {
	e := New()
	if e.Len() != 0 {
		t.Errorf("expected empty engine, got len %d", e.Len())
	}
	if e.Content() != "" {
		t.Errorf("expected empty text, got %q", e.Content())
	}
	if e.Encoding() != DefaultEncoding {
		t.Errorf("expected default encoding, got %q", e.Encoding())
	}
}

func TestNewWithContent(t *testing.T) {
	content := "Grüße\nWelt"
	e := New(WithContent(content), WithEncoding("latin_1"))

	if e.Content() != content {
		t.Errorf("expected %q, got %q", content, e.Content())
	}
	if e.Len() != 10 {
		t.Errorf("expected len 10, got %d", e.Len())
	}
	if e.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", e.LineCount())
	}
	if e.Encoding() != "latin_1" {
		t.Errorf("encoding = %q", e.Encoding())
	}
}

func TestNewFromReader(t *testing.T) {
	e, err := NewFromReader(strings.NewReader("a\r\nb"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Content() != "a\nb" {
		t.Errorf("got %q", e.Content())
	}
}

func TestTextClamps(t *testing.T) {
	e := New(WithContent("abcdef"))
	if got := e.Text(2, 4); got != "cd" {
		t.Errorf("Text(2,4) = %q", got)
	}
	if got := e.Text(4, 99); got != "ef" {
		t.Errorf("Text(4,99) = %q", got)
	}
}

// ============================================================================
// Caret and Selection
// ============================================================================

func TestSelection(t *testing.T) {
	e := New(WithContent("hello world"))

	if _, _, ok := e.Selection(); ok {
		t.Error("new engine should have no selection")
	}

	e.SetSelection(6, 11)
	start, end, ok := e.Selection()
	if !ok || start != 6 || end != 11 {
		t.Errorf("Selection = %d, %d, %v", start, end, ok)
	}
	if e.Cursor() != 11 {
		t.Errorf("caret should sit at selection end, got %d", e.Cursor())
	}

	e.SetSelection(3, 3)
	if _, _, ok := e.Selection(); ok {
		t.Error("equal bounds should not be a selection")
	}

	e.SetCursor(50)
	if e.Cursor() != 11 {
		t.Errorf("caret should clamp to Len, got %d", e.Cursor())
	}
}

// ============================================================================
// Write Operations
// ============================================================================

func TestDeleteMovesCaret(t *testing.T) {
	tests := []struct {
		name       string
		caret      Offset
		start, end Offset
		want       Offset
	}{
		{"caret before", 1, 3, 5, 1},
		{"caret inside", 4, 3, 6, 3},
		{"caret after", 8, 3, 5, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(WithContent("0123456789"))
			e.SetCursor(tt.caret)
			if err := e.Delete(tt.start, tt.end); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if e.Cursor() != tt.want {
				t.Errorf("caret = %d, want %d", e.Cursor(), tt.want)
			}
		})
	}
}

func TestDeleteErrors(t *testing.T) {
	e := New(WithContent("abc"))
	if err := e.Delete(2, 10); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
	if err := e.Delete(1, 1); err != nil {
		t.Errorf("empty delete should be a no-op, got %v", err)
	}
	if e.UndoCount() != 0 {
		t.Errorf("failed and empty deletes should not record undo, got %d", e.UndoCount())
	}
}

func TestInsertAtCursor(t *testing.T) {
	e := New(WithContent("ad"))
	e.SetSelection(1, 1)

	if err := e.InsertAtCursor("bc"); err != nil {
		t.Fatalf("InsertAtCursor: %v", err)
	}
	if e.Content() != "abcd" {
		t.Errorf("got %q", e.Content())
	}
	if e.Cursor() != 3 {
		t.Errorf("caret = %d, want 3", e.Cursor())
	}
}

func TestInsertAtCursorDropsSelection(t *testing.T) {
	e := New(WithContent("xyz"))
	e.SetSelection(0, 2)

	if err := e.InsertAtCursor("!"); err != nil {
		t.Fatal(err)
	}
	if e.Content() != "xy!z" {
		t.Errorf("got %q", e.Content())
	}
	if _, _, ok := e.Selection(); ok {
		t.Error("selection should be dropped")
	}
}

func TestReadOnly(t *testing.T) {
	e := New(WithContent("abc"), WithReadOnly())

	if err := e.Delete(0, 1); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Delete: expected ErrReadOnly, got %v", err)
	}
	if err := e.InsertAtCursor("x"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("InsertAtCursor: expected ErrReadOnly, got %v", err)
	}
	if err := e.SetContent("x"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("SetContent: expected ErrReadOnly, got %v", err)
	}
	if !e.IsReadOnly() {
		t.Error("IsReadOnly should be true")
	}
}

func TestMaxLen(t *testing.T) {
	e := New(WithContent("abc"), WithMaxLen(4))
	if err := e.InsertAtCursor("xy"); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
	if e.Content() != "abc" {
		t.Errorf("failed insert changed content: %q", e.Content())
	}
}

func TestSetContentClearsHistory(t *testing.T) {
	e := New(WithContent("abc"))
	_ = e.Delete(0, 1)
	if err := e.SetContent("new"); err != nil {
		t.Fatal(err)
	}
	if e.CanUndo() {
		t.Error("SetContent should clear history")
	}
	if e.Content() != "new" || e.Cursor() != 0 {
		t.Errorf("content %q caret %d", e.Content(), e.Cursor())
	}
}

// ============================================================================
// Atomic Edits and Undo
// ============================================================================

func TestAtomicEditUndoesAsOneStep(t *testing.T) {
	e := New(WithContent("b\na"))
	e.SetSelection(0, 3)

	e.BeginEdit("Sort Lines")
	_ = e.Delete(0, 3)
	_ = e.InsertAtCursor("a\nb")
	e.EndEdit()

	if e.Content() != "a\nb" {
		t.Fatalf("got %q", e.Content())
	}
	if e.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", e.UndoCount())
	}
	info, ok := e.PeekUndo()
	if !ok || info.Description != "Sort Lines" || info.ID == "" {
		t.Errorf("PeekUndo = %+v, %v", info, ok)
	}

	if e.LastEditID() != info.ID {
		t.Errorf("LastEditID = %q, want %q", e.LastEditID(), info.ID)
	}

	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.LastEditID() != "" {
		t.Errorf("LastEditID after undo = %q", e.LastEditID())
	}
	if e.Content() != "b\na" {
		t.Errorf("after undo: %q", e.Content())
	}
	start, end, ok := e.Selection()
	if !ok || start != 0 || end != 3 {
		t.Errorf("undo should restore selection, got %d %d %v", start, end, ok)
	}

	if err := e.Redo(); err != nil {
		t.Fatal(err)
	}
	if e.Content() != "a\nb" {
		t.Errorf("after redo: %q", e.Content())
	}
}

func TestNestedAtomicEdits(t *testing.T) {
	e := New(WithContent("abc"))

	e.BeginEdit("outer")
	_ = e.Delete(0, 1)
	e.BeginEdit("inner")
	_ = e.Delete(0, 1)
	e.EndEdit()
	if !e.IsEditing() {
		t.Error("outer edit should still be open")
	}
	e.EndEdit()

	if e.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", e.UndoCount())
	}
	if len(e.UndoHistory()) != 1 {
		t.Errorf("UndoHistory length = %d", len(e.UndoHistory()))
	}
}

func TestEmptyAtomicEditRecordsNothing(t *testing.T) {
	e := New(WithContent("abc"))
	e.BeginEdit("nothing")
	e.EndEdit()
	if e.CanUndo() {
		t.Error("empty edit should not be undoable")
	}
	if err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
	if err := e.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestTransaction(t *testing.T) {
	e := New(WithContent("abc"))
	e.SetSelection(1, 3)

	wantErr := errors.New("refused")
	err := e.Transaction("Redecode", func() error {
		if err := e.Delete(0, 3); err != nil {
			return err
		}
		_ = e.InsertAtCursor("xyz")
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Transaction error = %v, want %v", err, wantErr)
	}
	if e.Content() != "abc" {
		t.Errorf("content = %q, want %q", e.Content(), "abc")
	}
	if start, end, ok := e.Selection(); !ok || start != 1 || end != 3 {
		t.Errorf("selection = %d, %d, %v", start, end, ok)
	}
	if e.CanUndo() || e.IsEditing() {
		t.Errorf("CanUndo = %v, IsEditing = %v", e.CanUndo(), e.IsEditing())
	}

	if err := e.Transaction("Pick Color", func() error {
		return e.InsertAtCursor("#fff")
	}); err != nil {
		t.Fatal(err)
	}
	if e.Content() != "abc#fff" || e.UndoCount() != 1 {
		t.Errorf("content %q, UndoCount %d", e.Content(), e.UndoCount())
	}
}

func TestInsertAtCaretMovesCaret(t *testing.T) {
	e := New(WithContent("abcd"))
	e.SetCursor(2)
	if err := e.Insert(2, "xy"); err != nil {
		t.Fatal(err)
	}
	if e.Cursor() != 4 {
		t.Errorf("caret = %d, want 4", e.Cursor())
	}

	e.SetSelection(1, 4)
	if err := e.Insert(1, "!"); err != nil {
		t.Fatal(err)
	}
	if start, end, _ := e.Selection(); start != 2 || end != 5 {
		t.Errorf("selection = %d, %d, want 2, 5", start, end)
	}
}

func TestSubscribe(t *testing.T) {
	e := New(WithContent("abc"))

	var kinds []ChangeKind
	e.Subscribe(func(k ChangeKind) {
		kinds = append(kinds, k)
		_ = e.Len() // listeners may read the engine
	})

	e.SetCursor(1)
	_ = e.InsertAtCursor("x")
	_ = e.Undo()

	want := []ChangeKind{ChangeCursor, ChangeText, ChangeText}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestPositionConversion(t *testing.T) {
	e := New(WithContent("ab\ncd"))
	if p := e.OffsetToPoint(4); p != (Point{Line: 1, Column: 1}) {
		t.Errorf("OffsetToPoint = %v", p)
	}
	if o := e.PointToOffset(Point{Line: 1, Column: 0}); o != 3 {
		t.Errorf("PointToOffset = %d", o)
	}
	if e.LineText(1) != "cd" {
		t.Errorf("LineText = %q", e.LineText(1))
	}
}

// ============================================================================
// Concurrency
// ============================================================================

func TestConcurrentEdits(t *testing.T) {
	e := New()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = e.Insert(0, "x")
				_ = e.Content()
				_, _, _ = e.Selection()
			}
		}()
	}
	wg.Wait()

	if e.Len() != 400 {
		t.Errorf("expected 400 characters, got %d", e.Len())
	}
}
