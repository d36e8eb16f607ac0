package command

import (
	"github.com/dshills/textops/internal/charset"
	"github.com/dshills/textops/internal/textops"
)

// Built-in action names.
const (
	ActionRemoveTrailingSpaces   = "lines.removeTrailingSpaces"
	ActionRemoveTrailingNewlines = "lines.removeTrailingNewlines"
	ActionRemoveEmptyLines       = "lines.removeEmpty"
	ActionRemoveLines            = "lines.remove"
	ActionJoinLines              = "lines.join"
	ActionReverseLines           = "lines.reverse"
	ActionDedupLines             = "lines.dedup"
	ActionShuffleLines           = "lines.shuffle"
	ActionSortLines              = "lines.sort"
	ActionPercentEncode          = "percent.encode"
	ActionPercentDecode          = "percent.decode"
	ActionRedecode               = "encoding.redecode"
)

// NewDefaultRegistry creates a registry with every built-in action.
func NewDefaultRegistry(opts ...Option) *Registry {
	r := NewRegistry(opts...)
	RegisterBuiltins(r)
	return r
}

// RegisterBuiltins adds the built-in actions to r.
func RegisterBuiltins(r *Registry) {
	r.Register(ActionRemoveTrailingSpaces, HandlerFunc(func(doc textops.Document, a Args) Result {
		return Changed(textops.RemoveTrailingSpaces(doc, textops.TrimOptions{OnSave: a.OnSave}))
	}))
	r.Register(ActionRemoveTrailingNewlines, HandlerFunc(func(doc textops.Document, _ Args) Result {
		return Changed(textops.RemoveTrailingNewlines(doc))
	}))
	r.Register(ActionRemoveEmptyLines, HandlerFunc(func(doc textops.Document, _ Args) Result {
		return Changed(textops.RemoveEmptyLines(doc))
	}))
	r.Register(ActionRemoveLines, HandlerFunc(func(doc textops.Document, _ Args) Result {
		return Changed(textops.RemoveLines(doc))
	}))
	r.Register(ActionJoinLines, HandlerFunc(func(doc textops.Document, a Args) Result {
		return Changed(textops.JoinLines(doc, a.Spaces))
	}))
	r.Register(ActionReverseLines, HandlerFunc(func(doc textops.Document, _ Args) Result {
		return Changed(textops.ReverseLines(doc))
	}))
	r.Register(ActionDedupLines, HandlerFunc(func(doc textops.Document, a Args) Result {
		return Changed(textops.DedupLines(doc, textops.DedupOptions{
			CaseSensitive: a.CaseSensitive,
			Offset:        a.Offset,
			Reverse:       a.Reverse,
		}))
	}))
	r.Register(ActionShuffleLines, HandlerFunc(func(doc textops.Document, a Args) Result {
		return Changed(textops.ShuffleLines(doc, textops.ShuffleOptions{
			Dedup:         a.Dedup,
			CaseSensitive: a.CaseSensitive,
			Offset:        a.Offset,
		}))
	}))
	r.Register(ActionSortLines, HandlerFunc(func(doc textops.Document, a Args) Result {
		return Changed(textops.SortLines(doc, textops.SortOptions{
			Reverse:       a.Reverse,
			Dedup:         a.Dedup,
			CaseSensitive: a.CaseSensitive,
			Offset:        a.Offset,
		}))
	}))
	r.Register(ActionPercentEncode, HandlerFunc(func(doc textops.Document, a Args) Result {
		return Changed(textops.PercentEncode(doc, a.Keep))
	}))
	r.Register(ActionPercentDecode, HandlerFunc(func(doc textops.Document, _ Args) Result {
		return Changed(textops.PercentDecode(doc))
	}))
	r.Register(ActionRedecode, HandlerFunc(func(doc textops.Document, a Args) Result {
		name := a.Encoding
		if name == "" {
			name = charset.Autodetect
		}
		return Changed(charset.Redecode(doc, name, a.Transliterate))
	}))
}
