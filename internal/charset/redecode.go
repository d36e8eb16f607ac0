package charset

import (
	"strings"

	"golang.org/x/text/encoding"

	"github.com/dshills/textops/internal/textops"
)

// Option configures Redecode and Preview.
type Option func(*options)

type options struct {
	detector Detector
}

// WithDetector replaces the detector used for "autodetect".
func WithDetector(d Detector) Option {
	return func(o *options) {
		if d != nil {
			o.detector = d
		}
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.detector == nil {
		o.detector = DefaultDetector()
	}
	return o
}

// Redecode reinterprets the document text. The text is encoded back to bytes
// under the document's declared encoding and decoded again under declared,
// or under the detected encoding when declared is "autodetect". With
// transliterate set the result is folded towards ASCII.
//
// Redecode reports whether the document changed. Unknown encodings, a target
// equal to the encoding in use and an empty document are no-ops. The whole
// buffer is replaced inside one atomic edit; if the replacement cannot be
// inserted the edit is undone. The declared encoding is left as it was.
func Redecode(doc textops.Document, declared string, transliterate bool, opts ...Option) bool {
	o := buildOptions(opts)

	target := Normalize(declared)
	auto := target == Autodetect

	inUse, inEnc, ok := Lookup(doc.Encoding())
	if !ok {
		return false
	}

	var (
		outName Name
		outEnc  encoding.Encoding
	)
	if !auto {
		if outName, outEnc, ok = Lookup(target); !ok || outName == inUse {
			return false
		}
	}

	n := doc.Len()
	if n == 0 {
		return false
	}
	text := doc.Text(0, n)
	raw := encodeLossy(inEnc, text)

	if auto {
		det, err := o.detector.Detect(raw)
		if err != nil {
			return false
		}
		if outName, outEnc, ok = Lookup(string(det.Encoding)); !ok || outName == inUse {
			return false
		}
	}

	decoded := decodeReplacing(outEnc, raw)
	if transliterate {
		decoded = Transliterate(decoded)
	}
	if decoded == text {
		return false
	}

	return replaceAll(doc, decoded)
}

// replaceAll swaps the whole buffer for text in one atomic edit.
func replaceAll(doc textops.Document, text string) bool {
	err := doc.Transaction("Redecode", func() error {
		if err := doc.Delete(0, doc.Len()); err != nil {
			return err
		}
		doc.SetCursor(0)
		return doc.InsertAtCursor(text)
	})
	return err == nil
}

// encodeLossy encodes s, dropping the characters enc cannot represent.
func encodeLossy(enc encoding.Encoding, s string) []byte {
	if b, err := enc.NewEncoder().String(s); err == nil {
		return []byte(b)
	}
	// Filter first and encode once, so stateful encodings such as
	// ISO-2022-JP see one continuous stream.
	kept := strings.Map(func(r rune) rune {
		if _, err := enc.NewEncoder().String(string(r)); err != nil {
			return -1
		}
		return r
	}, s)
	b, err := enc.NewEncoder().String(kept)
	if err != nil {
		return nil
	}
	return []byte(b)
}

// decodeReplacing decodes b, turning invalid sequences into U+FFFD.
func decodeReplacing(enc encoding.Encoding, b []byte) string {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(out)
}
