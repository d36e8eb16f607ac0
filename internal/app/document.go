package app

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/dshills/textops/internal/charset"
	"github.com/dshills/textops/internal/engine"
	"github.com/dshills/textops/internal/engine/buffer"
)

// Document is a file loaded into an engine. The engine always holds LF line
// breaks; the file's own line ending is restored when it is written.
type Document struct {
	// Path is the absolute file path (empty for scratch documents).
	Path string

	// Name is the display name (file name, "<stdin>" or "Untitled").
	Name string

	// Engine holds the text, caret, selection and undo history.
	Engine *engine.Engine

	// LineEnding is the line break style written back to the file.
	LineEnding buffer.LineEnding

	modified atomic.Bool
}

// NewDocument creates a document from decoded text. encoding is the
// declared encoding the text will be written back in.
func NewDocument(name, text, encoding string) *Document {
	ending := detectLineEnding(text)
	d := &Document{
		Name:       name,
		Engine:     engine.New(engine.WithContent(text), engine.WithEncoding(encoding)),
		LineEnding: ending,
	}
	if d.Name == "" {
		d.Name = "Untitled"
	}
	d.Engine.Subscribe(func(kind engine.ChangeKind) {
		if kind == engine.ChangeText {
			d.modified.Store(true)
		}
	})
	return d
}

// OpenDocument reads path in the named encoding. "autodetect" guesses the
// encoding; the document then declares the encoding found.
func OpenDocument(path, encoding string, opts ...charset.Option) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	d, err := decodeDocument(filepath.Base(abs), data, encoding, opts)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	d.Path = abs
	return d, nil
}

// ReadDocument reads a scratch document from r.
func ReadDocument(name string, r io.Reader, encoding string, opts ...charset.Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, NewOperationError("read", name, err)
	}
	d, err := decodeDocument(name, data, encoding, opts)
	if err != nil {
		return nil, NewOperationError("read", name, err)
	}
	return d, nil
}

func decodeDocument(name string, data []byte, encoding string, opts []charset.Option) (*Document, error) {
	text, declared, err := charset.Decode(encoding, data, opts...)
	if err != nil {
		return nil, err
	}
	return NewDocument(name, text, string(declared)), nil
}

// detectLineEnding reports the first line break style in text.
func detectLineEnding(text string) buffer.LineEnding {
	i := strings.IndexAny(text, "\r\n")
	switch {
	case i < 0 || text[i] == '\n':
		return buffer.LineEndingLF
	case i+1 < len(text) && text[i+1] == '\n':
		return buffer.LineEndingCRLF
	default:
		return buffer.LineEndingCR
	}
}

// IsModified returns true if the text changed since the document was
// loaded or last saved.
func (d *Document) IsModified() bool {
	return d.modified.Load()
}

// IsScratch returns true if this document has no file.
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// Content returns the full document text with LF line breaks.
func (d *Document) Content() string {
	return d.Engine.Content()
}

// Bytes returns the text encoded in the document's declared encoding with
// its original line breaks.
func (d *Document) Bytes() ([]byte, error) {
	text := d.Engine.Content()
	if d.LineEnding != buffer.LineEndingLF {
		text = strings.ReplaceAll(text, "\n", d.LineEnding.Sequence())
	}
	return charset.Encode(d.Engine.Encoding(), text)
}

// WriteTo writes the encoded document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := d.Bytes()
	if err != nil {
		return 0, NewOperationError("write", d.Name, err)
	}
	return bytes.NewReader(data).WriteTo(w)
}

// Save writes the document back to its file, keeping the file mode.
func (d *Document) Save() error {
	if d.IsScratch() {
		return ErrScratchDocument
	}

	data, err := d.Bytes()
	if err != nil {
		return NewOperationError("save", d.Path, err)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(d.Path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(d.Path, data, mode); err != nil {
		return NewOperationError("save", d.Path, err)
	}

	d.modified.Store(false)
	return nil
}

// String returns the display name and encoding.
func (d *Document) String() string {
	return fmt.Sprintf("%s (%s)", d.Name, d.Engine.Encoding())
}
