package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"markedit/config"

	"github.com/gdamore/tcell/v2"
)

func newTestEditor(t *testing.T, width, height int) *Editor {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)

	e := New(config.Default())
	e.screen = screen
	return e
}

func TestLineColRoundTrip(t *testing.T) {
	e := newTestEditor(t, 80, 24)
	e.ctrl.SetText("héllo\nworld\nwide 宽")

	cases := []struct {
		pos  int
		line int
		col  int
	}{
		{0, 0, 0},
		{6, 0, 5},  // end of "héllo", é is two bytes
		{7, 1, 0},  // start of "world"
		{12, 1, 5}, // end of "world"
		{18, 2, 5}, // before the wide rune
		{21, 2, 6}, // end of text
	}
	for _, c := range cases {
		line, col := e.lineColOf(c.pos)
		if line != c.line || col != c.col {
			t.Errorf("lineColOf(%d) = (%d, %d), want (%d, %d)", c.pos, line, col, c.line, c.col)
		}
		if back := e.offsetOf(c.line, c.col); back != c.pos {
			t.Errorf("offsetOf(%d, %d) = %d, want %d", c.line, c.col, back, c.pos)
		}
	}

	// Columns past the end of a line clamp to the line end.
	if got := e.offsetOf(1, 99); got != 12 {
		t.Errorf("offsetOf(1, 99) = %d, want 12", got)
	}
}

func TestWrapSegments(t *testing.T) {
	segs := wrapSegments("abcdefghij", 4)
	want := []string{"abcd", "efgh", "ij"}
	if len(segs) != len(want) {
		t.Fatalf("got %d segments, want %d: %q", len(segs), len(want), segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segment %d = %q, want %q", i, segs[i], want[i])
		}
	}

	// A wide rune never splits across rows.
	segs = wrapSegments("宽宽宽", 4)
	if len(segs) != 2 || segs[0] != "宽宽" || segs[1] != "宽" {
		t.Errorf("wide rune segments = %q", segs)
	}

	// Short lines stay whole.
	segs = wrapSegments("abc", 10)
	if len(segs) != 1 || segs[0] != "abc" {
		t.Errorf("short line segments = %q", segs)
	}
}

func TestCursorPositionWrapped(t *testing.T) {
	e := newTestEditor(t, 30, 10)
	e.wordWrap = true
	e.ctrl.SetText(strings.Repeat("a", 40) + "\nb")
	e.layout()

	if e.textW != 27 {
		t.Fatalf("textW = %d, want 27", e.textW)
	}
	if len(e.rows) != 3 {
		t.Fatalf("row count = %d, want 3", len(e.rows))
	}

	e.ctrl.SetSelection(30, 30)
	row, col := e.cursorPosition()
	if row != 1 || col != 3 {
		t.Errorf("cursorPosition = (%d, %d), want (1, 3)", row, col)
	}

	if got := e.offsetAt(1, 3); got != 30 {
		t.Errorf("offsetAt(1, 3) = %d, want 30", got)
	}
	if got := e.offsetAt(0, 5); got != 5 {
		t.Errorf("offsetAt(0, 5) = %d, want 5", got)
	}
	if got := e.offsetAt(99, 0); got != len(e.ctrl.Text()) {
		t.Errorf("offsetAt past end = %d, want %d", got, len(e.ctrl.Text()))
	}
}

func TestScrollPaneMirrorsPreview(t *testing.T) {
	e := newTestEditor(t, 100, 20)
	e.showPreview = true
	e.syncScroll = true

	var lines []string
	for i := 0; i < 100; i++ {
		lines = append(lines, "line")
	}
	e.ctrl.SetText(strings.Join(lines, "\n"))
	e.preview.SetContent(lines)
	e.layout()

	e.scrollPane(0, 40)
	if e.scrollRow != 40 {
		t.Fatalf("scrollRow = %d, want 40", e.scrollRow)
	}
	if got := e.preview.ScrollTop(); got != 40 {
		t.Errorf("preview scroll = %d, want 40", got)
	}

	// The mirrored write must not echo back into the editor pane.
	e.scrollPane(e.paneW+5, 1)
	if e.scrollRow != 40 {
		t.Errorf("scrollRow moved to %d after preview echo", e.scrollRow)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "notes.md")
	text := "one\ntwo\nthree\nfour\n"

	e := newTestEditor(t, 80, 24)
	e.doc.Path = path
	e.ctrl.SetText(text)
	e.ctrl.SetSelection(5, 5)
	e.anchor = 5
	e.scrollRow = 2
	e.saveSession()

	e2 := newTestEditor(t, 80, 24)
	e2.doc.Path = path
	e2.ctrl.SetText(text)
	if !e2.restoreSession() {
		t.Fatal("restoreSession found nothing")
	}
	if got := e2.caretOffset(); got != 5 {
		t.Errorf("restored caret = %d, want 5", got)
	}
	if e2.scrollRow != 2 {
		t.Errorf("restored scrollRow = %d, want 2", e2.scrollRow)
	}

	// A session for a different file stays untouched.
	e3 := newTestEditor(t, 80, 24)
	e3.doc.Path = filepath.Join(t.TempDir(), "other.md")
	e3.ctrl.SetText(text)
	if e3.restoreSession() {
		t.Error("restoreSession matched the wrong file")
	}
}

func TestBackupRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	path := filepath.Join(dir, "draft.md")
	if err := os.WriteFile(path, []byte("old\n"), 0644); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-time.Hour)
	os.Chtimes(path, past, past)

	e := newTestEditor(t, 80, 24)
	e.doc.Path = path
	e.ctrl.SetText("edited but unsaved\n")
	e.dirty = true
	e.saveBackup()

	e2 := newTestEditor(t, 80, 24)
	e2.doc.Path = path
	text, ok := e2.checkForBackup()
	if !ok {
		t.Fatal("checkForBackup found nothing")
	}
	if text != "edited but unsaved\n" {
		t.Errorf("backup text = %q", text)
	}

	e2.cleanBackup()
	if _, ok := e2.checkForBackup(); ok {
		t.Error("backup survived cleanBackup")
	}
}

func TestBackupSkippedWhenClean(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "clean.md")
	e := newTestEditor(t, 80, 24)
	e.doc.Path = path
	e.ctrl.SetText("content\n")
	e.dirty = false
	e.saveBackup()

	if _, ok := e.checkForBackup(); ok {
		t.Error("clean document produced a backup")
	}
}
