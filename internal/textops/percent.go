package textops

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

const upperhex = "0123456789ABCDEF"

func isUnreserved(r rune) bool {
	switch {
	case 'A' <= r && r <= 'Z', 'a' <= r && r <= 'z', '0' <= r && r <= '9':
		return true
	case r == '-', r == '_', r == '.', r == '~':
		return true
	}
	return false
}

// EncodePercent percent-encodes s. Unreserved characters and those in keep
// are written as they are; '%' is always encoded. Everything else becomes
// the %XX escapes of its UTF-8 bytes. Invalid UTF-8 is encoded as U+FFFD.
func EncodePercent(s, keep string) string {
	keep = strings.ReplaceAll(keep, "%", "")
	s = strings.ToValidUTF8(s, string(utf8.RuneError))

	var sb strings.Builder
	sb.Grow(len(s))
	var buf [utf8.UTFMax]byte
	for _, r := range s {
		if isUnreserved(r) || strings.ContainsRune(keep, r) {
			sb.WriteRune(r)
			continue
		}
		n := utf8.EncodeRune(buf[:], r)
		for _, c := range buf[:n] {
			sb.WriteByte('%')
			sb.WriteByte(upperhex[c>>4])
			sb.WriteByte(upperhex[c&0x0f])
		}
	}
	return sb.String()
}

// DecodePercent turns %XX escapes back into bytes and reads the result as
// UTF-8. Malformed escapes are kept as they are; invalid byte sequences
// become U+FFFD.
func DecodePercent(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	raw := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			raw = append(raw, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		raw = append(raw, s[i])
	}
	out, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
	}
	return string(out)
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// isEscape reports whether s is exactly one %XX escape.
func isEscape(s string) bool {
	return len(s) == 3 && s[0] == '%' && isHex(s[1]) && isHex(s[2])
}

// PercentEncode percent-encodes the selection, or the character at the
// caret when nothing is selected. A lone caret character that needs no
// encoding is left alone.
func PercentEncode(doc Document, keepUnencoded string) bool {
	r, wasEmpty := ResolveSelection(doc, false)
	text := doc.Text(r.Start, r.End)
	if wasEmpty {
		if c, _ := utf8.DecodeRuneInString(text); text == "" || isUnreserved(c) {
			return false
		}
	}

	out := EncodePercent(text, keepUnencoded)
	if out == text {
		return false
	}
	return applyEdit(doc, "Percent Encode", func(s *editScope) {
		s.replace(r.Start, r.End, out)
	})
}

// PercentDecode decodes the escapes in the selection. With nothing
// selected it decodes the single %XX escape starting at the caret, if any.
func PercentDecode(doc Document) bool {
	r, wasEmpty := ResolveSelection(doc, false)
	if wasEmpty {
		r.End = min(r.Start+3, doc.Len())
	}
	text := doc.Text(r.Start, r.End)
	if wasEmpty && !isEscape(text) {
		return false
	}

	out := DecodePercent(text)
	if out == text {
		return false
	}
	return applyEdit(doc, "Percent Decode", func(s *editScope) {
		s.replace(r.Start, r.End, out)
	})
}
