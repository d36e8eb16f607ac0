package engine

import (
	"errors"
	"io"
	"sync"

	"github.com/dshills/textops/internal/engine/buffer"
	"github.com/dshills/textops/internal/engine/cursor"
	"github.com/dshills/textops/internal/engine/history"
)

// Re-export commonly used types for convenience.
type (
	// Offset is a character position in the document.
	Offset = buffer.Offset

	// Point represents a line/column position.
	Point = buffer.Point

	// Range represents a character range in the document.
	Range = buffer.Range

	// Selection represents a caret with an optional extent.
	Selection = cursor.Selection

	// OperationInfo describes an undo entry.
	OperationInfo = history.OperationInfo
)

// ChangeKind tells listeners what changed.
type ChangeKind uint8

const (
	// ChangeText is reported after the document text changed.
	ChangeText ChangeKind = iota + 1
	// ChangeCursor is reported after the caret or selection moved without
	// the text changing.
	ChangeCursor
)

// Listener receives change notifications. It is called after the engine has
// released its lock, so it may read the engine.
type Listener func(ChangeKind)

// Engine is a reference document: text, a caret with an optional
// selection, a declared byte encoding and grouped undo history.
//
// All operations are thread-safe.
type Engine struct {
	mu sync.RWMutex

	buf     *buffer.Buffer
	sel     cursor.Selection
	history *history.History

	encoding       string
	lineEnding     buffer.LineEnding
	maxUndoEntries int
	maxLen         int
	readOnly       bool

	initContent string

	listenersMu sync.Mutex
	listeners   []Listener
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := newEngine(opts)
	e.buf = buffer.NewBufferFromString(e.initContent, e.bufferOptions()...)
	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	e := newEngine(opts)
	buf, err := buffer.NewBufferFromReader(r, e.bufferOptions()...)
	if err != nil {
		return nil, err
	}
	e.buf = buf
	return e, nil
}

func newEngine(opts []Option) *Engine {
	e := &Engine{
		encoding:       DefaultEncoding,
		lineEnding:     buffer.LineEndingLF,
		maxUndoEntries: DefaultMaxUndoEntries,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.history = history.NewHistory(e.maxUndoEntries)
	return e
}

func (e *Engine) bufferOptions() []buffer.Option {
	return []buffer.Option{
		buffer.WithLineEnding(e.lineEnding),
		buffer.WithMaxLen(e.maxLen),
	}
}

// Subscribe registers a change listener.
func (e *Engine) Subscribe(fn Listener) {
	e.listenersMu.Lock()
	defer e.listenersMu.Unlock()
	e.listeners = append(e.listeners, fn)
}

func (e *Engine) emit(kind ChangeKind) {
	e.listenersMu.Lock()
	listeners := append([]Listener(nil), e.listeners...)
	e.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(kind)
	}
}

// ============================================================================
// Read Operations
// ============================================================================

// Content returns the full document text.
func (e *Engine) Content() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Text()
}

// Text returns the text in [start, end). Bounds are clamped.
func (e *Engine) Text(start, end Offset) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.TextRange(start, end)
}

// Len returns the document length in characters.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Len()
}

// LineCount returns the number of lines; an empty document has one.
func (e *Engine) LineCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineCount()
}

// LineText returns the text of a line without its newline.
func (e *Engine) LineText(line int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineText(line)
}

// OffsetToPoint converts an offset to line/column.
func (e *Engine) OffsetToPoint(offset Offset) Point {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.OffsetToPoint(offset)
}

// PointToOffset converts line/column to an offset.
func (e *Engine) PointToOffset(p Point) Offset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.PointToOffset(p)
}

// IsReadOnly returns true if the engine rejects edits.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// ============================================================================
// Caret and Selection
// ============================================================================

// Cursor returns the caret offset.
func (e *Engine) Cursor() Offset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel.Head
}

// SetCursor moves the caret and drops any selection. The offset is clamped.
func (e *Engine) SetCursor(offset Offset) {
	e.mu.Lock()
	e.sel = cursor.NewCursorSelection(offset).Clamp(e.buf.Len())
	e.mu.Unlock()
	e.emit(ChangeCursor)
}

// Selection returns the selected range. ok is false when nothing is
// selected, in which case start and end both equal the caret.
func (e *Engine) Selection() (start, end Offset, ok bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel.Start(), e.sel.End(), !e.sel.IsEmpty()
}

// SetSelection selects [start, end) with the caret at end. Bounds are
// clamped; start == end leaves only a caret.
func (e *Engine) SetSelection(start, end Offset) {
	e.mu.Lock()
	e.sel = cursor.NewSelection(start, end).Clamp(e.buf.Len())
	e.mu.Unlock()
	e.emit(ChangeCursor)
}

// ============================================================================
// Encoding
// ============================================================================

// Encoding returns the declared source encoding.
func (e *Engine) Encoding() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.encoding
}

// SetEncoding changes the declared source encoding. The text is untouched.
func (e *Engine) SetEncoding(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.encoding = name
}

// ============================================================================
// Write Operations
// ============================================================================

// Delete removes [start, end). A caret or selection inside the removed
// text collapses to start; one after it shifts left.
func (e *Engine) Delete(start, end Offset) error {
	if start == end {
		return nil
	}
	return e.apply(history.NewDeleteCommand(buffer.NewRange(start, end)))
}

// InsertAtCursor inserts text at the caret, drops the selection and leaves
// the caret after the new text.
func (e *Engine) InsertAtCursor(text string) error {
	if text == "" {
		return nil
	}
	e.mu.RLock()
	at := e.sel.Head
	e.mu.RUnlock()
	return e.apply(history.NewInsertCommand(at, text))
}

// Insert inserts text at offset.
func (e *Engine) Insert(offset Offset, text string) error {
	if text == "" {
		return nil
	}
	return e.apply(history.NewReplaceCommand(buffer.NewRange(offset, offset), text))
}

// Replace replaces [start, end) with text.
func (e *Engine) Replace(start, end Offset, text string) error {
	return e.apply(history.NewReplaceCommand(buffer.NewRange(start, end), text))
}

// SetContent replaces the whole text, moves the caret to the start and
// clears the undo history.
func (e *Engine) SetContent(text string) error {
	e.mu.Lock()
	if e.readOnly {
		e.mu.Unlock()
		return ErrReadOnly
	}
	e.buf.SetText(text)
	e.sel = cursor.NewCursorSelection(0)
	e.history.Clear()
	e.mu.Unlock()

	e.emit(ChangeText)
	return nil
}

func (e *Engine) apply(cmd *history.ReplaceCommand) error {
	e.mu.Lock()
	if e.readOnly {
		e.mu.Unlock()
		return ErrReadOnly
	}
	err := e.history.Execute(cmd, e.buf, &e.sel)
	e.mu.Unlock()

	if err != nil {
		return mapBufferError(err)
	}
	e.emit(ChangeText)
	return nil
}

func mapBufferError(err error) error {
	switch {
	case errors.Is(err, buffer.ErrOffsetOutOfRange):
		return ErrOffsetOutOfRange
	case errors.Is(err, buffer.ErrRangeInvalid):
		return ErrRangeInvalid
	case errors.Is(err, buffer.ErrTooLarge):
		return ErrTooLarge
	}
	return err
}

// ============================================================================
// Atomic Edits and Undo
// ============================================================================

// BeginEdit opens an atomic edit. Edits until the matching EndEdit undo as
// one step. Calls nest.
func (e *Engine) BeginEdit(name string) {
	e.history.BeginGroup(name)
}

// EndEdit closes the innermost open atomic edit.
func (e *Engine) EndEdit() {
	e.history.EndGroup()
}

// Transaction runs fn as an atomic edit. If fn fails, the edits it made are
// undone, the caret and selection return to where they were, and fn's error
// is returned. Earlier edits of an enclosing atomic edit are kept.
func (e *Engine) Transaction(name string, fn func() error) error {
	scope := e.history.GroupScope(name)
	defer scope.End()

	err := fn()
	if err == nil {
		return nil
	}

	e.mu.Lock()
	rerr := scope.Rollback(e.buf, &e.sel)
	e.mu.Unlock()
	e.emit(ChangeText)

	if rerr != nil {
		return errors.Join(err, mapBufferError(rerr))
	}
	return err
}

// IsEditing returns true while an atomic edit is open.
func (e *Engine) IsEditing() bool {
	return e.history.IsGrouping()
}

// Undo reverts the most recent undo entry.
func (e *Engine) Undo() error {
	e.mu.Lock()
	err := e.history.Undo(e.buf, &e.sel)
	e.mu.Unlock()

	if errors.Is(err, history.ErrNothingToUndo) {
		return ErrNothingToUndo
	}
	if err != nil {
		return mapBufferError(err)
	}
	e.emit(ChangeText)
	return nil
}

// Redo re-applies the most recently undone entry.
func (e *Engine) Redo() error {
	e.mu.Lock()
	err := e.history.Redo(e.buf, &e.sel)
	e.mu.Unlock()

	if errors.Is(err, history.ErrNothingToRedo) {
		return ErrNothingToRedo
	}
	if err != nil {
		return mapBufferError(err)
	}
	e.emit(ChangeText)
	return nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoCount returns the number of undo entries.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}

// PeekUndo describes the entry Undo would revert.
func (e *Engine) PeekUndo() (OperationInfo, bool) {
	return e.history.PeekUndo()
}

// LastEditID returns the ID of the entry Undo would revert, or "" when
// there is none.
func (e *Engine) LastEditID() string {
	info, ok := e.history.PeekUndo()
	if !ok {
		return ""
	}
	return info.ID
}

// UndoHistory describes all undo entries, oldest first.
func (e *Engine) UndoHistory() []OperationInfo {
	return e.history.UndoInfo()
}
