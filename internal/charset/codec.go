package charset

import (
	"errors"
	"fmt"
)

// ErrUnknownEncoding is returned for a label Lookup cannot resolve.
var ErrUnknownEncoding = errors.New("charset: unknown encoding")

// Decode converts data read in the named encoding to text, returning the
// canonical name used. With "autodetect" the encoding is guessed first.
// Invalid sequences become U+FFFD.
func Decode(label string, data []byte, opts ...Option) (string, Name, error) {
	if Normalize(label) == Autodetect {
		o := buildOptions(opts)
		det, err := o.detector.Detect(data)
		if err != nil {
			return "", "", err
		}
		label = string(det.Encoding)
	}

	name, enc, ok := Lookup(label)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	return decodeReplacing(enc, data), name, nil
}

// Encode converts text to bytes in the named encoding. Unlike Redecode it
// refuses to drop characters the encoding cannot represent.
func Encode(label string, text string) ([]byte, error) {
	name, enc, ok := Lookup(label)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	out, err := enc.NewEncoder().String(text)
	if err != nil {
		return nil, fmt.Errorf("encoding as %s: %w", name, err)
	}
	return []byte(out), nil
}
