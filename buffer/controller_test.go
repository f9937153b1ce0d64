package buffer

import "testing"

func newWith(text string, caret int) *Controller {
	c := NewController()
	c.SetText(text)
	c.SetSelection(caret, caret)
	return c
}

func TestInsertReplacesSelection(t *testing.T) {
	c := newWith("hello world", 0)
	c.SetSelection(0, 5)
	c.InsertText("goodbye")
	if c.Text() != "goodbye world" {
		t.Fatalf("text = %q", c.Text())
	}
	if start, end := c.Selection(); start != 7 || end != 7 {
		t.Fatalf("selection = %d,%d, want caret at 7", start, end)
	}
}

func TestSetSelectionClamps(t *testing.T) {
	c := newWith("abc", 0)
	c.SetSelection(-5, 99)
	if start, end := c.Selection(); start != 0 || end != 3 {
		t.Fatalf("selection = %d,%d, want 0,3", start, end)
	}
	c.SetSelection(2, 1) // reversed pairs normalize
	if start, end := c.Selection(); start != 1 || end != 2 {
		t.Fatalf("selection = %d,%d, want 1,2", start, end)
	}
}

func TestBackspaceRune(t *testing.T) {
	c := newWith("héllo", 3) // after the two-byte é
	c.Backspace()
	if c.Text() != "hllo" {
		t.Fatalf("text = %q", c.Text())
	}
	if c.Caret() != 1 {
		t.Fatalf("caret = %d, want 1", c.Caret())
	}
}

func TestBackspaceAtStart(t *testing.T) {
	c := newWith("abc", 0)
	c.Backspace()
	if c.Text() != "abc" {
		t.Fatalf("text = %q", c.Text())
	}
}

func TestDeleteForward(t *testing.T) {
	c := newWith("héllo", 1)
	c.DeleteForward()
	if c.Text() != "hllo" {
		t.Fatalf("text = %q", c.Text())
	}
	c = newWith("ab", 2)
	c.DeleteForward()
	if c.Text() != "ab" {
		t.Fatalf("delete at end changed text: %q", c.Text())
	}
}

func TestHandleTabCaret(t *testing.T) {
	c := newWith("word", 2)
	c.HandleTab(false)
	if c.Text() != "wo    rd" || c.Caret() != 6 {
		t.Fatalf("text = %q, caret = %d", c.Text(), c.Caret())
	}
}

func TestHandleTabSelectionBlock(t *testing.T) {
	c := newWith("one\ntwo\nthree", 0)
	c.SetSelection(1, 9)
	c.HandleTab(false)
	want := "    one\n    two\n    three"
	if c.Text() != want {
		t.Fatalf("text = %q, want %q", c.Text(), want)
	}
	if start, end := c.Selection(); start != 0 || end != len(want) {
		t.Fatalf("selection = %d,%d", start, end)
	}
	c.HandleTab(true)
	if c.Text() != "one\ntwo\nthree" {
		t.Fatalf("after shift+tab: %q", c.Text())
	}
}

func TestHandleEnterContinuesList(t *testing.T) {
	c := newWith("1. First item", 13)
	c.HandleEnter()
	if c.Text() != "1. First item\n2. " {
		t.Fatalf("text = %q", c.Text())
	}
	if c.Caret() != len(c.Text()) {
		t.Fatalf("caret = %d", c.Caret())
	}
}

func TestHandleEnterChecklist(t *testing.T) {
	c := newWith("- [x] done", 10)
	c.HandleEnter()
	if c.Text() != "- [x] done\n- [ ] " {
		t.Fatalf("text = %q", c.Text())
	}
}

func TestHandleEnterEmptyItemEndsList(t *testing.T) {
	c := newWith("- one\n- ", 8)
	c.HandleEnter()
	if c.Text() != "- one\n\n" {
		t.Fatalf("text = %q, want %q", c.Text(), "- one\n\n")
	}
	if c.Caret() != 7 {
		t.Fatalf("caret = %d, want 7", c.Caret())
	}
}

func TestHandleEnterEmptyItemMidDocument(t *testing.T) {
	c := newWith("- one\n- \n- three", 8)
	c.HandleEnter()
	if c.Text() != "- one\n\n\n- three" {
		t.Fatalf("text = %q", c.Text())
	}
	if c.Caret() != 7 {
		t.Fatalf("caret = %d, want 7", c.Caret())
	}
}

func TestHandleEnterAutoIndent(t *testing.T) {
	c := newWith("    indented", 12)
	c.SetMarkdown(false)
	c.HandleEnter()
	if c.Text() != "    indented\n    " {
		t.Fatalf("text = %q", c.Text())
	}
}

func TestHandleEnterPlain(t *testing.T) {
	c := newWith("plain", 5)
	c.SetMarkdown(false)
	c.HandleEnter()
	if c.Text() != "plain\n" {
		t.Fatalf("text = %q", c.Text())
	}
}

func TestHandleEnterMarkdownOffNoContinuation(t *testing.T) {
	c := newWith("- item", 6)
	c.SetMarkdown(false)
	c.HandleEnter()
	if c.Text() != "- item\n" {
		t.Fatalf("text = %q", c.Text())
	}
}

func TestLineColumn(t *testing.T) {
	c := newWith("ab\nhé", 0)
	line, col := c.LineColumn(5) // between é's bytes clamps back to rune start
	if line != 2 || col != 2 {
		t.Fatalf("line,col = %d,%d, want 2,2", line, col)
	}
	line, col = c.LineColumn(0)
	if line != 1 || col != 1 {
		t.Fatalf("line,col = %d,%d, want 1,1", line, col)
	}
}

func TestOnChangeFires(t *testing.T) {
	c := NewController()
	n := 0
	c.OnChange = func() { n++ }
	c.SetText("x")
	c.InsertText("y")
	c.SetSelection(0, 1) // selection moves do not count as changes
	if n != 2 {
		t.Fatalf("OnChange fired %d times, want 2", n)
	}
}
