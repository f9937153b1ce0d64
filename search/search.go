// Package search finds and replaces text in a document using literal or
// regular-expression queries.
package search

import (
	"errors"
	"regexp"
	"unicode/utf8"
)

// ErrBadPattern is returned when a regex query fails to compile. Callers
// show an "invalid pattern" state instead of clearing results.
var ErrBadPattern = errors.New("invalid search pattern")

// Options control how a query is interpreted.
type Options struct {
	CaseSensitive bool
	WholeWord     bool
	Regex         bool
}

// Result is one match in the document, with byte offsets into the searched
// text.
type Result struct {
	Index  int
	Length int
	Text   string
}

// compile builds the matcher for a query. Literal queries are quoted so
// metacharacters match themselves. A nil regexp with nil error means the
// query is empty and matches nothing.
func compile(query string, opts Options) (*regexp.Regexp, error) {
	if query == "" {
		return nil, nil
	}
	pat := query
	if !opts.Regex {
		pat = regexp.QuoteMeta(query)
	}
	if opts.WholeWord {
		pat = `\b(?:` + pat + `)\b`
	}
	if !opts.CaseSensitive {
		pat = "(?i)" + pat
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, ErrBadPattern
	}
	return re, nil
}

// Find returns every non-overlapping match of query in text, in document
// order. An empty query yields no matches and no error.
func Find(text, query string, opts Options) ([]Result, error) {
	re, err := compile(query, opts)
	if err != nil {
		return nil, err
	}
	if re == nil {
		return nil, nil
	}
	var results []Result
	pos := 0
	for pos <= len(text) {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if start == end {
			// Zero-width match: keep it, then step one rune so the
			// scan terminates.
			results = append(results, Result{Index: start})
			if start >= len(text) {
				break
			}
			_, sz := utf8.DecodeRuneInString(text[start:])
			pos = start + sz
			continue
		}
		results = append(results, Result{Index: start, Length: end - start, Text: text[start:end]})
		pos = end
	}
	return results, nil
}

// ReplaceAll replaces every match of query in text and returns the new text
// and the number of replacements. Matches are rewritten from last to first
// so earlier offsets stay valid while splicing.
func ReplaceAll(text, query, replacement string, opts Options) (string, int, error) {
	results, err := Find(text, query, opts)
	if err != nil {
		return text, 0, err
	}
	for i := len(results) - 1; i >= 0; i-- {
		r := results[i]
		text = text[:r.Index] + replacement + text[r.Index+r.Length:]
	}
	return text, len(results), nil
}

// Session holds find state between keystrokes: the current result set and
// which match is selected.
type Session struct {
	Query   string
	Opts    Options
	Results []Result
	Current int // index into Results, -1 when there are none
	Err     error
}

// Run recomputes the result set for a query against text. The selection
// resets to the first match. On a bad pattern the previous results are
// discarded and Err is set.
func (s *Session) Run(text, query string, opts Options) {
	s.Query = query
	s.Opts = opts
	s.Results, s.Err = Find(text, query, opts)
	if len(s.Results) > 0 {
		s.Current = 0
	} else {
		s.Current = -1
	}
}

// Next advances the selection, wrapping from the last match to the first.
func (s *Session) Next() {
	if len(s.Results) == 0 {
		return
	}
	s.Current = (s.Current + 1) % len(s.Results)
}

// Prev moves the selection back, wrapping from the first match to the last.
func (s *Session) Prev() {
	if len(s.Results) == 0 {
		return
	}
	s.Current--
	if s.Current < 0 {
		s.Current = len(s.Results) - 1
	}
}

// Selected returns the current match, or false when there is none.
func (s *Session) Selected() (Result, bool) {
	if s.Current < 0 || s.Current >= len(s.Results) {
		return Result{}, false
	}
	return s.Results[s.Current], true
}

// ReplaceCurrent replaces the selected match and reruns the search on the
// new text. The selection stays at the same position so repeated replaces
// walk forward through the document, clamped to the final match.
func (s *Session) ReplaceCurrent(text, replacement string) (string, bool) {
	r, ok := s.Selected()
	if !ok {
		return text, false
	}
	keep := s.Current
	text = text[:r.Index] + replacement + text[r.Index+r.Length:]
	s.Run(text, s.Query, s.Opts)
	if len(s.Results) > 0 {
		if keep >= len(s.Results) {
			keep = len(s.Results) - 1
		}
		s.Current = keep
	}
	return text, true
}
