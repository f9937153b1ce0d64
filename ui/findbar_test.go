package ui

import (
	"strings"
	"testing"

	"markedit/search"

	"github.com/gdamore/tcell/v2"
)

func typeRunes(f *FindBar, s string) {
	for _, r := range s {
		f.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestFindBarTyping(t *testing.T) {
	f := NewFindBar(false)
	var lastQuery string
	var lastOpts search.Options
	f.OnChange = func(q string, o search.Options) {
		lastQuery = q
		lastOpts = o
	}
	typeRunes(f, "abc")
	if f.Input != "abc" || lastQuery != "abc" {
		t.Fatalf("input = %q, last query = %q", f.Input, lastQuery)
	}
	f.HandleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	if f.Input != "ab" || lastQuery != "ab" {
		t.Fatalf("after backspace: %q / %q", f.Input, lastQuery)
	}
	if lastOpts.Regex || lastOpts.CaseSensitive || lastOpts.WholeWord {
		t.Fatalf("default options = %+v", lastOpts)
	}
}

func TestFindBarToggles(t *testing.T) {
	f := NewFindBar(false)
	changes := 0
	f.OnChange = func(string, search.Options) { changes++ }
	f.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModAlt))
	if !f.Regex {
		t.Fatal("Alt+R must toggle regex mode")
	}
	f.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModAlt))
	if !f.CaseSensitive {
		t.Fatal("Alt+C must toggle case sensitivity")
	}
	f.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModAlt))
	if !f.WholeWord {
		t.Fatal("Alt+W must toggle whole-word")
	}
	if changes != 3 {
		t.Fatalf("OnChange fired %d times, want 3", changes)
	}
}

func TestFindBarReplaceFieldSwitch(t *testing.T) {
	f := NewFindBar(true)
	changes := 0
	f.OnChange = func(string, search.Options) { changes++ }
	typeRunes(f, "find")
	f.HandleKey(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	if !f.ReplaceActive {
		t.Fatal("Tab must switch to the replace field")
	}
	before := changes
	typeRunes(f, "repl")
	if f.ReplaceInput != "repl" {
		t.Fatalf("replace input = %q", f.ReplaceInput)
	}
	if changes != before {
		t.Fatal("typing a replacement must not rerun the search")
	}
}

func TestFindBarEnterNavigatesAndReplaces(t *testing.T) {
	f := NewFindBar(true)
	nexts, replaces := 0, 0
	f.OnNext = func() { nexts++ }
	f.OnReplace = func(string) { replaces++ }
	f.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if nexts != 1 || replaces != 0 {
		t.Fatalf("find-field enter: nexts=%d replaces=%d", nexts, replaces)
	}
	f.ReplaceActive = true
	f.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if replaces != 1 {
		t.Fatalf("replace-field enter: replaces=%d", replaces)
	}
}

func TestFindBarRendersCounter(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init sim screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(60, 4)

	f := NewFindBar(false)
	f.Input = "x"
	f.Cursor = 1
	f.MatchIndex = 1
	f.MatchTotal = 5
	f.Render(screen, 0, 0, 60)
	screen.Show()

	contents, w, _ := screen.GetContents()
	var row string
	for i := 0; i < w; i++ {
		row += string(contents[i].Runes)
	}
	if !strings.Contains(row, "(2/5)") {
		t.Fatalf("counter missing from row: %q", row)
	}
	if !strings.Contains(row, "Find: ") {
		t.Fatalf("prompt missing from row: %q", row)
	}
}
