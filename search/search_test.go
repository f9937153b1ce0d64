package search

import (
	"errors"
	"testing"
)

func TestFindCaseInsensitive(t *testing.T) {
	text := "Hello world, hello universe, HELLO cosmos"
	results, err := Find(text, "hello", Options{})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	wantIdx := []int{0, 13, 29}
	for i, r := range results {
		if r.Index != wantIdx[i] || r.Length != 5 {
			t.Fatalf("result %d = %+v, want index %d length 5", i, r, wantIdx[i])
		}
	}
}

func TestFindCaseSensitive(t *testing.T) {
	text := "Hello world, hello universe, HELLO cosmos"
	results, err := Find(text, "hello", Options{CaseSensitive: true})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(results) != 1 || results[0].Index != 13 {
		t.Fatalf("got %+v, want single match at 13", results)
	}
}

func TestFindLiteralMetacharacters(t *testing.T) {
	results, err := Find("a.c abc a.c", "a.c", Options{})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (dot must not match b)", len(results))
	}
}

func TestFindRegex(t *testing.T) {
	results, err := Find("cat cot cut", "c[ao]t", Options{Regex: true})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
}

func TestFindBadPattern(t *testing.T) {
	_, err := Find("text", "[unclosed", Options{Regex: true})
	if !errors.Is(err, ErrBadPattern) {
		t.Fatalf("err = %v, want ErrBadPattern", err)
	}
}

func TestFindWholeWord(t *testing.T) {
	results, err := Find("cat category cat", "cat", Options{WholeWord: true})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Index != 0 || results[1].Index != 13 {
		t.Fatalf("got %+v", results)
	}
}

func TestFindEmptyQuery(t *testing.T) {
	results, err := Find("text", "", Options{})
	if err != nil || results != nil {
		t.Fatalf("got %v, %v, want nil, nil", results, err)
	}
}

func TestFindZeroWidthRegex(t *testing.T) {
	// Zero-width matches are real results; the one-rune advance only
	// guarantees the scan terminates.
	results, err := Find("ab", "x*", Options{Regex: true})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %+v", results)
	}
	for i, want := range []int{0, 1, 2} {
		if results[i].Index != want || results[i].Length != 0 {
			t.Fatalf("match %d = %+v, want zero-width at %d", i, results[i], want)
		}
	}

	results, err = Find("baab", "a+|x*", Options{Regex: true})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(results) != 4 || results[1].Index != 1 || results[1].Text != "aa" {
		t.Fatalf("got %+v", results)
	}
}

func TestReplaceAllZeroWidth(t *testing.T) {
	text, n, err := ReplaceAll("ab", "x*", "-", Options{Regex: true})
	if err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	if text != "-a-b-" {
		t.Fatalf("text = %q, want %q", text, "-a-b-")
	}
	if n != 3 {
		t.Fatalf("count = %d, want 3", n)
	}
}

func TestReplaceAll(t *testing.T) {
	text, n, err := ReplaceAll("hello hello hello", "hello", "hi", Options{})
	if err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	if text != "hi hi hi" {
		t.Fatalf("text = %q, want %q", text, "hi hi hi")
	}
	if n != 3 {
		t.Fatalf("count = %d, want 3", n)
	}
}

func TestReplaceAllNoMatch(t *testing.T) {
	text, n, err := ReplaceAll("abc", "zzz", "x", Options{})
	if err != nil || text != "abc" || n != 0 {
		t.Fatalf("got %q, %d, %v", text, n, err)
	}
}

func TestSessionNavigation(t *testing.T) {
	var s Session
	s.Run("x x x", "x", Options{})
	if s.Current != 0 || len(s.Results) != 3 {
		t.Fatalf("after Run: current %d, %d results", s.Current, len(s.Results))
	}
	s.Next()
	s.Next()
	if s.Current != 2 {
		t.Fatalf("current = %d, want 2", s.Current)
	}
	s.Next()
	if s.Current != 0 {
		t.Fatalf("Next should wrap to 0, got %d", s.Current)
	}
	s.Prev()
	if s.Current != 2 {
		t.Fatalf("Prev should wrap to 2, got %d", s.Current)
	}
}

func TestSessionNoMatches(t *testing.T) {
	var s Session
	s.Run("abc", "zzz", Options{})
	if s.Current != -1 {
		t.Fatalf("current = %d, want -1", s.Current)
	}
	s.Next()
	s.Prev()
	if _, ok := s.Selected(); ok {
		t.Fatal("Selected should report no match")
	}
}

func TestSessionReplaceCurrent(t *testing.T) {
	var s Session
	text := "aa bb aa"
	s.Run(text, "aa", Options{})
	text, ok := s.ReplaceCurrent(text, "cc")
	if !ok || text != "cc bb aa" {
		t.Fatalf("got %q, ok=%v", text, ok)
	}
	// The pointer stays at position 0, now the remaining match.
	r, ok := s.Selected()
	if !ok || r.Index != 6 {
		t.Fatalf("selected = %+v, ok=%v", r, ok)
	}
	text, ok = s.ReplaceCurrent(text, "cc")
	if !ok || text != "cc bb cc" {
		t.Fatalf("got %q, ok=%v", text, ok)
	}
	if _, ok := s.Selected(); ok {
		t.Fatal("no matches should remain")
	}
}
