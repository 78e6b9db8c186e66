package skyscroll

import "testing"

func testFont(t *testing.T) *Font {
	t.Helper()
	f, err := DefaultFont(16)
	if err != nil {
		t.Fatalf("DefaultFont: %v", err)
	}
	return f
}

func TestLoadFontRejectsGarbage(t *testing.T) {
	if _, err := LoadFont([]byte("not a font"), 12); err == nil {
		t.Error("expected error for invalid font data")
	}
}

func TestTextWrap(t *testing.T) {
	f := testFont(t)
	n := NewText("body", "the quick brown fox jumps over the lazy dog", f)
	tb := n.TextBlock

	if lines := tb.Lines(); len(lines) != 1 {
		t.Fatalf("unwrapped lines = %d, want 1", len(lines))
	}

	wordW, _ := f.MeasureString("quick brown")
	tb.SetWrapWidth(wordW)
	lines := tb.Lines()
	if len(lines) < 3 {
		t.Fatalf("wrapped lines = %v, want at least 3", lines)
	}
	for _, l := range lines {
		if w, _ := f.MeasureString(l); w > wordW+0.001 {
			t.Errorf("line %q width %f exceeds wrap %f", l, w, wordW)
		}
	}
	_, h := tb.Measure()
	if want := float64(len(lines)) * f.LineHeight(); h != want {
		t.Errorf("height = %f, want %f", h, want)
	}
}

func TestTextLongWordOwnLine(t *testing.T) {
	f := testFont(t)
	tb := NewText("t", "a supercalifragilistic b", f).TextBlock
	tb.SetWrapWidth(1)
	lines := tb.Lines()
	if len(lines) != 3 || lines[1] != "supercalifragilistic" {
		t.Errorf("lines = %q, want one word per line", lines)
	}
}

func TestTextNewlines(t *testing.T) {
	tb := NewText("t", "one\ntwo\nthree", testFont(t)).TextBlock
	if got := len(tb.Lines()); got != 3 {
		t.Errorf("lines = %d, want 3", got)
	}
}

func TestSetContentInvalidates(t *testing.T) {
	tb := NewText("t", "short", testFont(t)).TextBlock
	w1, _ := tb.Measure()
	tb.SetContent("a much longer line of text")
	w2, _ := tb.Measure()
	if w2 <= w1 {
		t.Errorf("width did not grow after SetContent: %f -> %f", w1, w2)
	}
}
