package charset

import "github.com/dshills/textops/internal/textops"

// editIdentifier is implemented by documents that can name their most
// recent undo entry.
type editIdentifier interface {
	LastEditID() string
}

// Preview lets a user try encodings one after another before settling on
// one. At most one redecode is applied at any time: each Apply first undoes
// the previous preview, provided it actually edited the document.
type Preview struct {
	doc    textops.Document
	opts   []Option
	active bool
	editID string
}

// NewPreview starts a preview session on doc.
func NewPreview(doc textops.Document, opts ...Option) *Preview {
	return &Preview{doc: doc, opts: opts}
}

// Apply reverts the current preview and redecodes the document as name.
// It reports whether the new preview changed the document.
func (p *Preview) Apply(name string, transliterate bool) bool {
	p.revert()
	if !Redecode(p.doc, name, transliterate, p.opts...) {
		return false
	}
	p.active = true
	if ids, ok := p.doc.(editIdentifier); ok {
		p.editID = ids.LastEditID()
	}
	return true
}

// Accept keeps the current preview.
func (p *Preview) Accept() {
	p.active = false
	p.editID = ""
}

// Cancel reverts the current preview, if any.
func (p *Preview) Cancel() {
	p.revert()
}

// Active reports whether a preview edit is currently applied.
func (p *Preview) Active() bool {
	return p.active
}

func (p *Preview) revert() {
	if !p.active {
		return
	}
	p.active = false
	id := p.editID
	p.editID = ""

	// Someone else edited since; the preview is no longer ours to undo.
	if ids, ok := p.doc.(editIdentifier); ok && ids.LastEditID() != id {
		return
	}
	_ = p.doc.Undo()
}
