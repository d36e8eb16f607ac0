package textops

import "testing"

func TestEncodePercent(t *testing.T) {
	tests := []struct {
		in, keep, want string
	}{
		{"a b", "", "a%20b"},
		{"AZaz09-_.~", "", "AZaz09-_.~"},
		{"é", "", "%C3%A9"},
		{"a/b?c", "/", "a/b%3Fc"},
		{"50%", "%", "50%25"},
		{"日本", "本", "%E6%97%A5本"},
	}
	for _, tt := range tests {
		if got := EncodePercent(tt.in, tt.keep); got != tt.want {
			t.Errorf("EncodePercent(%q, %q) = %q, want %q", tt.in, tt.keep, got, tt.want)
		}
	}
}

func TestDecodePercent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a%20b", "a b"},
		{"%c3%A9", "é"},
		{"100%", "100%"},
		{"%zz%4", "%zz%4"},
		{"%FF", "\uFFFD"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := DecodePercent(tt.in); got != tt.want {
			t.Errorf("DecodePercent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercentRoundTrip(t *testing.T) {
	inputs := []string{
		"hello world",
		"key=value&other=ü",
		"日本語 テキスト",
		"tabs\tand\nnewlines",
		"emoji 🎉!",
	}
	for _, in := range inputs {
		doc := newSelectedDoc(in, 0, len([]rune(in)))
		PercentEncode(doc, "")

		doc.SetSelection(0, doc.Len())
		PercentDecode(doc)

		if doc.Content() != in {
			t.Errorf("round trip of %q gave %q", in, doc.Content())
		}
	}
}

func TestPercentEncodeDocument(t *testing.T) {
	doc := newSelectedDoc("a b", 0, 3)
	if !PercentEncode(doc, "") {
		t.Fatal("expected a change")
	}
	if doc.Content() != "a%20b" {
		t.Errorf("got %q", doc.Content())
	}
	if doc.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", doc.UndoCount())
	}
}

func TestPercentEncodeCaret(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		caret   int
		want    string
		changed bool
	}{
		{"unreserved char", "abc", 1, "abc", false},
		{"space", "a b", 1, "a%20b", true},
		{"at end", "abc", 3, "abc", false},
		{"multibyte", "xéy", 1, "x%C3%A9y", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDoc(tt.text)
			doc.SetCursor(tt.caret)
			if got := PercentEncode(doc, ""); got != tt.changed {
				t.Errorf("changed = %v, want %v", got, tt.changed)
			}
			if doc.Content() != tt.want {
				t.Errorf("got %q, want %q", doc.Content(), tt.want)
			}
		})
	}
}

func TestPercentEncodeKeepsSelectionOfUnreserved(t *testing.T) {
	doc := newSelectedDoc("safe-text", 0, 9)
	if PercentEncode(doc, "") {
		t.Error("nothing to encode should be a no-op")
	}
	if doc.CanUndo() {
		t.Error("no-op should not record undo")
	}
}

func TestPercentDecodeDocument(t *testing.T) {
	doc := newSelectedDoc("a%20b", 0, 5)
	if !PercentDecode(doc) {
		t.Fatal("expected a change")
	}
	if doc.Content() != "a b" {
		t.Errorf("got %q", doc.Content())
	}
}

func TestPercentDecodeCaret(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		caret   int
		want    string
		changed bool
	}{
		{"escape at caret", "x%41y", 1, "xAy", true},
		{"lower-case hex", "%2f", 0, "/", true},
		{"caret not on escape", "x%41y", 0, "x%41y", false},
		{"truncated escape", "ab%4", 2, "ab%4", false},
		{"bad hex", "%G1", 0, "%G1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDoc(tt.text)
			doc.SetCursor(tt.caret)
			if got := PercentDecode(doc); got != tt.changed {
				t.Errorf("changed = %v, want %v", got, tt.changed)
			}
			if doc.Content() != tt.want {
				t.Errorf("got %q, want %q", doc.Content(), tt.want)
			}
		})
	}
}
