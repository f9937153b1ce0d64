// Package markdown recognizes list constructs in single lines of text and
// generates the continuation items an editor inserts on Enter.
package markdown

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// ListKind classifies the list construct found at the start of a line.
type ListKind int

const (
	None ListKind = iota
	Unordered
	Ordered
	Checkbox
	Blockquote
)

// ListPattern describes a recognized list item. Indent is the leading
// whitespace exactly as it appeared, Marker the literal marker text, and
// Content everything after the marker and its separator.
type ListPattern struct {
	Kind    ListKind
	Indent  string
	Marker  string
	Content string
	Checked bool // Checkbox only
	Number  int  // Ordered only
}

var (
	unorderedRe  = regexp.MustCompile(`^(\s*)([-*+])\s+(.*)$`)
	checkboxRe   = regexp.MustCompile(`^\[([ x])\]\s+(.*)$`)
	orderedRe    = regexp.MustCompile(`^(\s*)(\d+)\.\s+(.*)$`)
	blockquoteRe = regexp.MustCompile(`^(\s*)>\s*(.*)$`)
)

// Parse inspects a single line and returns the list pattern it starts with,
// if any. Unordered items take precedence, and a "- " item whose content
// begins with a checkbox token is reclassified as a checkbox. "*" and "+"
// bullets never carry checkboxes.
func Parse(line string) ListPattern {
	if m := unorderedRe.FindStringSubmatch(line); m != nil {
		if m[2] == "-" {
			if cb := checkboxRe.FindStringSubmatch(m[3]); cb != nil {
				return ListPattern{
					Kind:    Checkbox,
					Indent:  m[1],
					Marker:  "- [" + cb[1] + "]",
					Content: cb[2],
					Checked: cb[1] != " ",
				}
			}
		}
		return ListPattern{Kind: Unordered, Indent: m[1], Marker: m[2], Content: m[3]}
	}
	if m := orderedRe.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[2])
		if err == nil {
			return ListPattern{Kind: Ordered, Indent: m[1], Marker: m[2] + ".", Content: m[3], Number: n}
		}
	}
	if m := blockquoteRe.FindStringSubmatch(line); m != nil {
		return ListPattern{Kind: Blockquote, Indent: m[1], Marker: ">", Content: m[2]}
	}
	// Not a list line: Content carries the whole line unchanged.
	return ListPattern{Kind: None, Content: line}
}

// IsEmpty reports whether p is a list item with no content, such as a line
// holding only "- " or "3. ". Pressing Enter on such a line should end the
// list rather than continue it.
func IsEmpty(p ListPattern) bool {
	return p.Kind != None && strings.TrimSpace(p.Content) == ""
}

// NextItem returns the text to insert after the current line to continue the
// list: a newline followed by the next item's prefix. Ordered items
// increment the number, checkboxes always continue unchecked.
func NextItem(p ListPattern) string {
	switch p.Kind {
	case Unordered:
		return "\n" + p.Indent + p.Marker + " "
	case Ordered:
		return "\n" + p.Indent + strconv.Itoa(p.Number+1) + ". "
	case Checkbox:
		return "\n" + p.Indent + "- [ ] "
	case Blockquote:
		return "\n" + p.Indent + "> "
	}
	return "\n"
}

// RemoveItem deletes the line spanning [lineStart, lineEnd) from text and
// returns the new text with the caret position at the start of the removed
// line. Used to terminate a list when Enter is pressed on an empty item.
func RemoveItem(text string, lineStart, lineEnd int) (string, int) {
	if lineStart < 0 {
		lineStart = 0
	}
	if lineEnd > len(text) {
		lineEnd = len(text)
	}
	if lineStart > lineEnd {
		return text, lineStart
	}
	return text[:lineStart] + text[lineEnd:], lineStart
}

// IsMarkdownFile reports whether list continuation should be active for the
// given path. Untitled documents (empty path) are treated as markdown.
func IsMarkdownFile(path string) bool {
	if path == "" {
		return true
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdown", ".mkd":
		return true
	}
	return false
}
