package indent

import "testing"

func TestIndentCaret(t *testing.T) {
	out, start, end := Indent("hello", 2, 2)
	if out != "he    llo" {
		t.Fatalf("text = %q", out)
	}
	if start != 6 || end != 6 {
		t.Fatalf("caret = %d,%d, want 6,6", start, end)
	}
}

func TestIndentSelection(t *testing.T) {
	text := "one\ntwo\nthree"
	// Selection from inside "one" to inside "three" covers all three lines.
	out, start, end := Indent(text, 1, 9)
	want := "    one\n    two\n    three"
	if out != want {
		t.Fatalf("text = %q, want %q", out, want)
	}
	if start != 0 || end != len(want) {
		t.Fatalf("selection = %d,%d, want 0,%d", start, end, len(want))
	}
}

func TestIndentSelectionKeepsEmptyLines(t *testing.T) {
	out, _, _ := Indent("a\n\nb", 0, 4)
	if out != "    a\n    \n    b" {
		t.Fatalf("text = %q", out)
	}
}

func TestUnindentCaret(t *testing.T) {
	tests := []struct {
		text  string
		caret int
		want  string
		at    int
	}{
		{"    x", 5, "x", 1},
		{"  x", 3, "x", 1},
		{"   x", 4, " x", 2}, // three spaces strip two
		{"x", 1, "x", 1},
		{"    x", 2, "x", 0}, // caret inside the stripped run clamps to line start
	}
	for _, tt := range tests {
		out, start, _ := Unindent(tt.text, tt.caret, tt.caret)
		if out != tt.want || start != tt.at {
			t.Fatalf("Unindent(%q, %d) = %q caret %d, want %q caret %d",
				tt.text, tt.caret, out, start, tt.want, tt.at)
		}
	}
}

func TestUnindentSelection(t *testing.T) {
	text := "    a\n  b\nc"
	out, start, end := Unindent(text, 0, len(text))
	want := "a\nb\nc"
	if out != want {
		t.Fatalf("text = %q, want %q", out, want)
	}
	if start != 0 || end != len(want) {
		t.Fatalf("selection = %d,%d", start, end)
	}
}

func TestIndentRoundTrip(t *testing.T) {
	text := "alpha\nbeta\ngamma"
	indented, start, end := Indent(text, 0, len(text))
	back, _, _ := Unindent(indented, start, end)
	if back != text {
		t.Fatalf("round trip = %q, want %q", back, text)
	}
}

func TestNewline(t *testing.T) {
	text := "    code here"
	if got := Newline(text, len(text)); got != "\n    " {
		t.Fatalf("got %q", got)
	}
	if got := Newline("plain", 5); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
	if got := Newline("\tx", 2); got != "\n\t" {
		t.Fatalf("got %q", got)
	}
}

func TestLineBounds(t *testing.T) {
	text := "ab\ncd\nef"
	start, end := LineBounds(text, 4)
	if start != 3 || end != 5 {
		t.Fatalf("bounds = %d,%d, want 3,5", start, end)
	}
	start, end = LineBounds(text, 8)
	if start != 6 || end != 8 {
		t.Fatalf("bounds = %d,%d, want 6,8", start, end)
	}
}
