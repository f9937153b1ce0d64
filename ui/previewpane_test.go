package ui

import "testing"

func TestPreviewPaneScrollClamps(t *testing.T) {
	p := NewPreviewPane()
	p.SetSize(20, 5)
	lines := make([]string, 12)
	for i := range lines {
		lines[i] = "line"
	}
	p.SetContent(lines)

	p.SetScrollTop(100)
	if p.ScrollTop() != 7 { // 12 rows - 5 visible
		t.Fatalf("scroll = %d, want 7", p.ScrollTop())
	}
	p.SetScrollTop(-3)
	if p.ScrollTop() != 0 {
		t.Fatalf("scroll = %d, want 0", p.ScrollTop())
	}
}

func TestPreviewPaneWrapCountsRows(t *testing.T) {
	p := NewPreviewPane()
	p.SetSize(4, 10)
	p.SetContent([]string{"abcdefgh"}) // 8 cells in a 4-cell pane
	if p.ScrollHeight() != 2 {
		t.Fatalf("ScrollHeight = %d, want 2", p.ScrollHeight())
	}
}

func TestPreviewPaneScrollBy(t *testing.T) {
	p := NewPreviewPane()
	p.SetSize(20, 2)
	p.SetContent([]string{"a", "b", "c", "d"})
	if !p.ScrollBy(1) {
		t.Fatal("ScrollBy(1) should move")
	}
	if p.ScrollBy(10) && p.ScrollTop() != 2 {
		t.Fatalf("scroll = %d, want 2", p.ScrollTop())
	}
	if p.ScrollBy(1) {
		t.Fatal("ScrollBy past the end should not move")
	}
}

func TestWrapLine(t *testing.T) {
	segs := wrapLine("abcdef", 4)
	if len(segs) != 2 || segs[0] != "abcd" || segs[1] != "ef" {
		t.Fatalf("got %q", segs)
	}
	segs = wrapLine("short", 0)
	if len(segs) != 1 {
		t.Fatalf("zero width must not wrap: %q", segs)
	}
	// Wide runes never split mid-rune.
	segs = wrapLine("ああa", 3)
	if len(segs) != 2 || segs[0] != "あ" {
		t.Fatalf("got %q", segs)
	}
}
