package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrTooLarge         = errors.New("buffer size limit exceeded")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer holds text as a slice of runes so that character offsets index it
// directly. All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	text       []rune
	revisionID RevisionID
	lineEnding LineEnding
	maxLen     int
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.text = []rune(b.normalizeLineEndings(s))
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read everything first: a CRLF pair may straddle read boundaries.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

// normalizeLineEndings converts all line endings to the buffer's style.
func (b *Buffer) normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') && b.lineEnding == LineEndingLF {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	switch b.lineEnding {
	case LineEndingCRLF:
		s = strings.ReplaceAll(s, "\n", "\r\n")
	case LineEndingCR:
		s = strings.ReplaceAll(s, "\n", "\r")
	}
	return s
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.text)
}

// TextRange returns text in [start, end). Out-of-range bounds are clamped.
func (b *Buffer) TextRange(start, end Offset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r := Range{Start: start, End: end}.Clamp(len(b.text))
	if r.Start >= r.End {
		return ""
	}
	return string(b.text[r.Start:r.End])
}

// Len returns the buffer length in characters.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text)
}

// IsEmpty returns true if the buffer has no content.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// LineText returns the text of a line without its newline.
// Lines past the end return "".
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, ok := b.lineStartLocked(line)
	if !ok {
		return ""
	}
	return string(b.text[start:b.lineEndLocked(start)])
}

// LineEnding returns the style text is normalized to.
func (b *Buffer) LineEnding() LineEnding {
	return b.lineEnding
}

// RuneAt returns the character at offset, or false if out of range.
func (b *Buffer) RuneAt(offset Offset) (rune, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset >= len(b.text) {
		return 0, false
	}
	return b.text[offset], true
}

// LineCount returns the number of lines as an editor shows them: one more
// than the number of line feeds, so an empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 1
	for _, r := range b.text {
		if r == '\n' {
			n++
		}
	}
	return n
}

// RevisionID returns the current revision.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// Coordinate Conversion

// OffsetToPoint converts an offset to line/column. The offset is clamped.
func (b *Buffer) OffsetToPoint(offset Offset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset > len(b.text) {
		offset = len(b.text)
	}
	var p Point
	for i := 0; i < offset; i++ {
		if b.text[i] == '\n' {
			p.Line++
			p.Column = 0
		} else {
			p.Column++
		}
	}
	return p
}

// PointToOffset converts line/column to an offset. Lines past the end map to
// the buffer end; columns past the line end map to the line end.
func (b *Buffer) PointToOffset(point Point) Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, ok := b.lineStartLocked(point.Line)
	if !ok {
		return len(b.text)
	}
	end := b.lineEndLocked(start)
	col := point.Column
	if col < 0 {
		col = 0
	}
	if start+col > end {
		return end
	}
	return start + col
}

// LineStartOffset returns the offset of the first character of a line.
func (b *Buffer) LineStartOffset(line int) Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, ok := b.lineStartLocked(line)
	if !ok {
		return len(b.text)
	}
	return start
}

// LineEndOffset returns the offset of the end of a line (before its newline).
func (b *Buffer) LineEndOffset(line int) Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, ok := b.lineStartLocked(line)
	if !ok {
		return len(b.text)
	}
	return b.lineEndLocked(start)
}

func (b *Buffer) lineStartLocked(line int) (Offset, bool) {
	if line <= 0 {
		return 0, line == 0
	}
	seen := 0
	for i, r := range b.text {
		if r == '\n' {
			seen++
			if seen == line {
				return i + 1, true
			}
		}
	}
	return len(b.text), false
}

func (b *Buffer) lineEndLocked(start Offset) Offset {
	for i := start; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			return i
		}
	}
	return len(b.text)
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset Offset, text string) (Offset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > len(b.text) {
		return 0, ErrOffsetOutOfRange
	}

	ins := []rune(b.normalizeLineEndings(text))
	if b.maxLen > 0 && len(b.text)+len(ins) > b.maxLen {
		return offset, ErrTooLarge
	}

	b.text = append(b.text[:offset], append(ins, b.text[offset:]...)...)
	b.revisionID = NewRevisionID()

	return offset + len(ins), nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end Offset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > len(b.text) {
		return ErrRangeInvalid
	}
	if start == end {
		return nil
	}

	b.text = append(b.text[:start], b.text[end:]...)
	b.revisionID = NewRevisionID()

	return nil
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end Offset, text string) (Offset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > len(b.text) {
		return 0, ErrRangeInvalid
	}

	ins := []rune(b.normalizeLineEndings(text))
	if b.maxLen > 0 && len(b.text)-(end-start)+len(ins) > b.maxLen {
		return start, ErrTooLarge
	}

	tail := append([]rune(nil), b.text[end:]...)
	b.text = append(append(b.text[:start], ins...), tail...)
	b.revisionID = NewRevisionID()

	return start + len(ins), nil
}

// SetText replaces the whole content.
func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = []rune(b.normalizeLineEndings(text))
	b.revisionID = NewRevisionID()
}
