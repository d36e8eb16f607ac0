package textops

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"unicode"
)

func TestRemoveTrailingSpaces(t *testing.T) {
	tests := []struct {
		name string
		text string
		sel  [2]int
		opts TrimOptions
		want string
	}{
		{"whole document", "a  \nb\t\f\nc\u3000\u2003\n\n\n", [2]int{0, 0}, TrimOptions{}, "a\nb\nc"},
		{"space-only tail lines", "a\n   \n\t\n", [2]int{0, 0}, TrimOptions{}, "a"},
		{"selection keeps trailing newlines", "a  \nb  \nc  \n\n", [2]int{0, 5}, TrimOptions{}, "a\nb\nc  \n\n"},
		{"on save ignores selection", "a  \nb  \n\n", [2]int{0, 1}, TrimOptions{OnSave: true}, "a\nb"},
		{"keeps leading space", "  x  ", [2]int{0, 0}, TrimOptions{}, "  x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newSelectedDoc(tt.text, tt.sel[0], tt.sel[1])
			if !RemoveTrailingSpaces(doc, tt.opts) {
				t.Fatal("expected a change")
			}
			if got := doc.Content(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if doc.UndoCount() != 1 {
				t.Errorf("UndoCount = %d, want 1", doc.UndoCount())
			}
		})
	}
}

func TestRemoveTrailingSpacesNoOp(t *testing.T) {
	doc := newDoc("clean\ntext")
	if RemoveTrailingSpaces(doc, TrimOptions{}) {
		t.Error("clean text should be a no-op")
	}
	if doc.CanUndo() {
		t.Error("no-op should not record undo")
	}
}

func TestRemoveTrailingSpacesKeepsCaret(t *testing.T) {
	doc := newDoc("ab  \ncd  ")
	doc.SetCursor(6)
	RemoveTrailingSpaces(doc, TrimOptions{})
	if doc.Content() != "ab\ncd" || doc.Cursor() != 4 {
		t.Errorf("content %q caret %d", doc.Content(), doc.Cursor())
	}
}

func TestRemoveTrailingNewlines(t *testing.T) {
	doc := newDoc("x\n  \n\n\n")
	if !RemoveTrailingNewlines(doc) {
		t.Fatal("expected a change")
	}
	if doc.Content() != "x\n  " {
		t.Errorf("got %q", doc.Content())
	}
	if RemoveTrailingNewlines(doc) {
		t.Error("second call should be a no-op")
	}
}

func TestRemoveEmptyLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		sel  [2]int
		want string
	}{
		{"whole document", "x\n\n\ny", [2]int{0, 0}, "x\ny"},
		{"whitespace lines", "x\n \t\ny\n\n", [2]int{0, 0}, "x\ny"},
		{"unterminated blank tail", "x\n  ", [2]int{0, 0}, "x"},
		{"blank head", "\n\nx", [2]int{0, 0}, "x"},
		{"selection", "a\n\n \nb\nc", [2]int{2, 6}, "a\nb\nc"},
		{"all blank selection", "a\n\n \nb", [2]int{2, 4}, "a\nb"},
		{"selection at start", "\n\na\nb", [2]int{0, 3}, "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newSelectedDoc(tt.text, tt.sel[0], tt.sel[1])
			if !RemoveEmptyLines(doc) {
				t.Fatal("expected a change")
			}
			if got := doc.Content(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemoveEmptyLinesSelectionAddsNoSeparator(t *testing.T) {
	doc := newSelectedDoc("a\nb\n\nc\nz", 2, 7)
	RemoveEmptyLines(doc)
	if got := doc.Content(); got != "a\nb\nc\nz" {
		t.Errorf("got %q", got)
	}
	if strings.Contains(doc.Content(), "\n\n") {
		t.Error("selection mode introduced an empty line")
	}
}

func TestRemoveLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		sel  [2]int
		want string
	}{
		{"caret line", "a\nb\nc", [2]int{3, 3}, "a\nc"},
		{"caret on last line", "a\nb\nc", [2]int{5, 5}, "a\nb\n"},
		{"selection", "a\nb\nc\nd", [2]int{3, 5}, "a\nd"},
		{"selection reaching end", "a\nb\nc", [2]int{2, 5}, "a"},
		{"everything", "a\nb", [2]int{0, 3}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newSelectedDoc(tt.text, tt.sel[0], tt.sel[1])
			if !RemoveLines(doc) {
				t.Fatal("expected a change")
			}
			if got := doc.Content(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if RemoveLines(newDoc("")) {
		t.Error("empty document should be a no-op")
	}
}

func TestJoinLines(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		sel    [2]int
		spaces bool
		want   string
	}{
		{"spaces", "foo\n\nbar", [2]int{0, 0}, true, "foo bar"},
		{"no separator", "foo\n\nbar", [2]int{0, 0}, false, "foobar"},
		{"keeps trailing newline", "foo\nbar\n", [2]int{0, 0}, true, "foo bar\n"},
		{"trims ends", "  foo\n\t\nbar  ", [2]int{0, 0}, true, "foo bar"},
		{"selection", "x\na\nb\ny", [2]int{2, 5}, true, "x\na b\ny"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newSelectedDoc(tt.text, tt.sel[0], tt.sel[1])
			if !JoinLines(doc, tt.spaces) {
				t.Fatal("expected a change")
			}
			if got := doc.Content(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReverseLines(t *testing.T) {
	doc := newDoc("one\ntwo\nthree\n")
	doc.SetCursor(2)

	if !ReverseLines(doc) {
		t.Fatal("expected a change")
	}
	if doc.Content() != "three\ntwo\none\n" {
		t.Errorf("got %q", doc.Content())
	}
	if doc.Cursor() != 12 {
		t.Errorf("caret should follow to mirrored line, got %d", doc.Cursor())
	}

	if err := doc.Undo(); err != nil {
		t.Fatal(err)
	}
	if doc.Content() != "one\ntwo\nthree\n" {
		t.Errorf("undo: %q", doc.Content())
	}
}

func TestReverseLinesCaretFollowsLine(t *testing.T) {
	doc := newDoc("a\nlonger")
	doc.SetCursor(7) // line 1, column 5
	ReverseLines(doc)
	if doc.Content() != "longer\na" {
		t.Fatalf("got %q", doc.Content())
	}
	if doc.Cursor() != 5 {
		t.Errorf("caret = %d, want line 0 column 5", doc.Cursor())
	}
}

func TestReverseLinesSelection(t *testing.T) {
	doc := newSelectedDoc("x\n1\n2\n3\ny", 2, 7)
	ReverseLines(doc)
	if doc.Content() != "x\n3\n2\n1\ny" {
		t.Errorf("got %q", doc.Content())
	}
}

func TestDedupLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		sel  [2]int
		opts DedupOptions
		want string
	}{
		{"case insensitive", "a\nb\nA\nb\nc", [2]int{0, 0}, DedupOptions{}, "a\nb\nc"},
		{"case sensitive", "a\nb\nA\nb\nc", [2]int{0, 0}, DedupOptions{CaseSensitive: true}, "a\nb\nA\nc"},
		{"offset", "1:x\n2:y\n3:x", [2]int{0, 0}, DedupOptions{Offset: 2}, "1:x\n2:y"},
		{"unterminated duplicate tail", "a\nb\nb", [2]int{0, 0}, DedupOptions{}, "a\nb"},
		{"duplicate run at end", "a\nb\nb\nb", [2]int{0, 0}, DedupOptions{}, "a\nb"},
		{"keeps final newline", "a\na\n", [2]int{0, 0}, DedupOptions{}, "a\n"},
		{"reverse", "b\na\nb", [2]int{0, 0}, DedupOptions{Reverse: true}, "a\nb"},
		{"selection", "x\na\na\nb\nx", [2]int{2, 7}, DedupOptions{}, "x\na\nb\nx"},
		{"selection reverse", "x\na\na\nb\nx", [2]int{2, 7}, DedupOptions{Reverse: true}, "x\nb\na\nx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newSelectedDoc(tt.text, tt.sel[0], tt.sel[1])
			if !DedupLines(doc, tt.opts) {
				t.Fatal("expected a change")
			}
			if got := doc.Content(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if doc.UndoCount() != 1 {
				t.Errorf("UndoCount = %d, want 1", doc.UndoCount())
			}
		})
	}
}

func TestDedupLinesIdempotent(t *testing.T) {
	inputs := []string{
		"a\nb\na\nB\nc\nc",
		"x\n\n\ny\n\nx\n",
		"same\nsame\nsame",
	}
	for _, in := range inputs {
		doc := newDoc(in)
		DedupLines(doc, DedupOptions{})
		once := doc.Content()
		undo := doc.UndoCount()

		if DedupLines(doc, DedupOptions{}) {
			t.Errorf("%q: second dedup reported a change", in)
		}
		if doc.Content() != once || doc.UndoCount() != undo {
			t.Errorf("%q: second dedup changed %q -> %q", in, once, doc.Content())
		}
	}
}

func TestDedupLinesKeepsCaretLine(t *testing.T) {
	doc := newDoc("a\na\nb")
	doc.SetCursor(5) // end of "b"
	DedupLines(doc, DedupOptions{})
	if doc.Content() != "a\nb" || doc.Cursor() != 3 {
		t.Errorf("content %q caret %d", doc.Content(), doc.Cursor())
	}
}

func TestShuffleLinesDedupMultiset(t *testing.T) {
	in := []string{"b", "a", "B", "c", "a", "d"}
	doc := newDoc(strings.Join(in, "\n"))

	ShuffleLines(doc, ShuffleOptions{Dedup: true, Rand: rand.New(rand.NewPCG(1, 2))})

	got := strings.Split(doc.Content(), "\n")
	want := dedupLines(in, LineKey{})
	slices.Sort(got)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestShuffleLinesPermutes(t *testing.T) {
	in := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
	doc := newDoc(strings.Join(in, "\n") + "\n")
	doc.SetCursor(4)

	if !ShuffleLines(doc, ShuffleOptions{Rand: rand.New(rand.NewPCG(7, 7))}) {
		t.Fatal("eight lines should not shuffle to the same order with this seed")
	}
	if !strings.HasSuffix(doc.Content(), "\n") {
		t.Error("trailing newline should be kept")
	}
	got := strings.Split(strings.TrimSuffix(doc.Content(), "\n"), "\n")
	slices.Sort(got)
	if !slices.Equal(got, in) {
		t.Errorf("shuffle lost lines: %v", got)
	}
	if doc.Cursor() != 4 {
		t.Errorf("caret should be restored, got %d", doc.Cursor())
	}
}

func TestSortLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts SortOptions
		want string
	}{
		{"dedup case insensitive", "b\na\nb\n A", SortOptions{Dedup: true}, "a\n A\nb"},
		{"stable ties", "B\nb\nA\na", SortOptions{}, "A\na\nB\nb"},
		{"case sensitive", "b\nB\na", SortOptions{CaseSensitive: true}, "B\na\nb"},
		{"reverse", "a\nc\nb", SortOptions{Reverse: true}, "c\nb\na"},
		{"offset", "3:a\n1:c\n2:b", SortOptions{Offset: 2}, "3:a\n2:b\n1:c"},
		{"whitespace ignored", "b\n  a\nc", SortOptions{}, "  a\nb\nc"},
		{"keeps trailing newlines", "b\na\n\n", SortOptions{}, "a\nb\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDoc(tt.text)
			if !SortLines(doc, tt.opts) {
				t.Fatal("expected a change")
			}
			if got := doc.Content(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSortLinesCaseSwapInvariant(t *testing.T) {
	in := []string{"Delta", "alpha", "Charlie", "bravo", "ALPHA", "echo"}
	swapped := make([]string, len(in))
	for i, line := range in {
		swapped[i] = strings.Map(func(r rune) rune {
			if unicode.IsUpper(r) {
				return unicode.ToLower(r)
			}
			return unicode.ToUpper(r)
		}, line)
	}

	a := newDoc(strings.Join(in, "\n"))
	b := newDoc(strings.Join(swapped, "\n"))
	SortLines(a, SortOptions{})
	SortLines(b, SortOptions{})

	if strings.ToLower(a.Content()) != strings.ToLower(b.Content()) {
		t.Errorf("order differs:\n%q\n%q", a.Content(), b.Content())
	}
}

func TestSortLinesSelection(t *testing.T) {
	doc := newSelectedDoc("z\nc\nb\na\n0", 2, 7)
	SortLines(doc, SortOptions{})
	if doc.Content() != "z\na\nb\nc\n0" {
		t.Errorf("got %q", doc.Content())
	}
	if _, _, ok := doc.Selection(); ok {
		t.Error("selection should be replaced by a caret")
	}
	if doc.Cursor() != 7 {
		t.Errorf("caret should follow the new text, got %d", doc.Cursor())
	}
}

func TestSortLinesNoOp(t *testing.T) {
	doc := newDoc("a\nb\nc")
	if SortLines(doc, SortOptions{}) {
		t.Error("sorted input should be a no-op")
	}
	if SortLines(newDoc(""), SortOptions{}) {
		t.Error("empty document should be a no-op")
	}
}
