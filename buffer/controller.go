// Package buffer holds the document being edited: its text, the selection,
// and the keystroke-level editing operations the UI dispatches into.
package buffer

import (
	"strings"
	"unicode/utf8"

	"markedit/indent"
	"markedit/markdown"
)

// Controller owns the document text and selection. Offsets are byte offsets
// into the UTF-8 text; selStart <= selEnd always holds, and both stay within
// the text. A caret is a selection with selStart == selEnd.
type Controller struct {
	text     string
	selStart int
	selEnd   int
	markdown bool

	// OnChange fires after every text mutation, before the caller regains
	// control. Selection-only moves do not fire it.
	OnChange func()
}

func NewController() *Controller {
	return &Controller{markdown: true}
}

// SetMarkdown switches list continuation on Enter on or off. The host sets
// this from the file extension.
func (c *Controller) SetMarkdown(on bool) { c.markdown = on }

// SetText replaces the document and collapses the selection to the start.
func (c *Controller) SetText(text string) {
	c.text = text
	c.selStart = 0
	c.selEnd = 0
	c.changed()
}

// LoadText replaces the document while keeping the selection in place,
// clamped to the new bounds. Used for external reloads.
func (c *Controller) LoadText(text string) {
	c.text = text
	c.SetSelection(c.selStart, c.selEnd)
	c.changed()
}

func (c *Controller) Text() string { return c.text }

// Selection returns the current byte span, start <= end.
func (c *Controller) Selection() (int, int) { return c.selStart, c.selEnd }

// Caret returns the active end of the selection.
func (c *Controller) Caret() int { return c.selEnd }

// HasSelection reports whether the selection spans any text.
func (c *Controller) HasSelection() bool { return c.selStart != c.selEnd }

// SelectedText returns the text inside the selection.
func (c *Controller) SelectedText() string {
	return c.text[c.selStart:c.selEnd]
}

// SetSelection sets the span, swapping a reversed pair and clamping both
// ends to the document.
func (c *Controller) SetSelection(start, end int) {
	start = c.clamp(start)
	end = c.clamp(end)
	if start > end {
		start, end = end, start
	}
	c.selStart = start
	c.selEnd = end
}

// SelectAll spans the whole document.
func (c *Controller) SelectAll() {
	c.selStart = 0
	c.selEnd = len(c.text)
}

func (c *Controller) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(c.text) {
		return len(c.text)
	}
	// Never land inside a multibyte rune.
	for pos > 0 && pos < len(c.text) && !utf8.RuneStart(c.text[pos]) {
		pos--
	}
	return pos
}

func (c *Controller) changed() {
	if c.OnChange != nil {
		c.OnChange()
	}
}

// replaceSelection splices s over the selection and puts the caret after
// the inserted text.
func (c *Controller) replaceSelection(s string) {
	c.text = c.text[:c.selStart] + s + c.text[c.selEnd:]
	c.selStart += len(s)
	c.selEnd = c.selStart
	c.changed()
}

// InsertText types s at the caret, replacing any selection.
func (c *Controller) InsertText(s string) {
	c.replaceSelection(s)
}

// DeleteSelection removes the selected text. Reports whether anything was
// selected.
func (c *Controller) DeleteSelection() bool {
	if !c.HasSelection() {
		return false
	}
	c.replaceSelection("")
	return true
}

// Backspace deletes the selection, or the rune before the caret.
func (c *Controller) Backspace() {
	if c.DeleteSelection() {
		return
	}
	if c.selStart == 0 {
		return
	}
	_, sz := utf8.DecodeLastRuneInString(c.text[:c.selStart])
	c.selStart -= sz
	c.replaceSelection("")
}

// DeleteForward deletes the selection, or the rune after the caret.
func (c *Controller) DeleteForward() {
	if c.DeleteSelection() {
		return
	}
	if c.selEnd >= len(c.text) {
		return
	}
	_, sz := utf8.DecodeRuneInString(c.text[c.selEnd:])
	c.selEnd += sz
	c.replaceSelection("")
}

// HandleTab indents, or with shift outdents, the caret line or every line
// the selection touches.
func (c *Controller) HandleTab(shift bool) {
	var start, end int
	if shift {
		c.text, start, end = indent.Unindent(c.text, c.selStart, c.selEnd)
	} else {
		c.text, start, end = indent.Indent(c.text, c.selStart, c.selEnd)
	}
	c.selStart = start
	c.selEnd = end
	c.changed()
}

// HandleEnter inserts a newline with context: inside a markdown list it
// continues the list (or ends it when the current item is empty), otherwise
// it copies the current line's indentation.
func (c *Controller) HandleEnter() {
	c.DeleteSelection()
	caret := c.selStart
	lineStart, lineEnd := indent.LineBounds(c.text, caret)
	line := c.text[lineStart:lineEnd]

	if c.markdown {
		if p := markdown.Parse(line); p.Kind != markdown.None {
			if markdown.IsEmpty(p) {
				// Enter on a bare marker ends the list: the marker
				// goes away and a plain newline takes its place.
				c.text, caret = markdown.RemoveItem(c.text, lineStart, lineEnd)
				c.text = c.text[:caret] + "\n" + c.text[caret:]
				caret++
				c.selStart = caret
				c.selEnd = caret
				c.changed()
				return
			}
			c.replaceSelection(markdown.NextItem(p))
			return
		}
	}
	if ins := indent.Newline(c.text, caret); ins != "" {
		c.replaceSelection(ins)
		return
	}
	c.replaceSelection("\n")
}

// LineColumn converts a byte offset to 1-based line and column numbers,
// counting columns in runes.
func (c *Controller) LineColumn(pos int) (int, int) {
	pos = c.clamp(pos)
	line := 1 + strings.Count(c.text[:pos], "\n")
	start := strings.LastIndexByte(c.text[:pos], '\n') + 1
	col := 1 + utf8.RuneCountInString(c.text[start:pos])
	return line, col
}

// LineCount returns the number of logical lines in the document.
func (c *Controller) LineCount() int {
	return 1 + strings.Count(c.text, "\n")
}
