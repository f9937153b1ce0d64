package editor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"markedit/search"
	"markedit/ui"

	"github.com/gdamore/tcell/v2"
)

func (e *Editor) handleKey(ev *tcell.EventKey) {
	if e.confirm != nil {
		e.confirm.HandleKey(ev)
		return
	}
	if e.findBar != nil && e.findBar.HandleKey(ev) {
		return
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		e.requestQuit()
	case tcell.KeyCtrlS:
		e.save()
	case tcell.KeyCtrlF:
		e.openFind(false)
	case tcell.KeyCtrlR:
		e.openFind(true)
	case tcell.KeyCtrlP:
		e.showPreview = !e.showPreview
		if e.showPreview {
			e.refreshPreview()
			e.setMessage("preview on")
		} else {
			e.setMessage("preview off")
		}
	case tcell.KeyCtrlA:
		e.ctrl.SelectAll()
		e.anchor = 0
		e.caretAtStart = false
	case tcell.KeyCtrlC:
		e.copySelection(false)
	case tcell.KeyCtrlX:
		e.copySelection(true)
	case tcell.KeyCtrlV:
		e.paste()
	case tcell.KeyF3:
		if ev.Modifiers()&tcell.ModShift != 0 {
			e.session.Prev()
		} else {
			e.session.Next()
		}
		e.jumpToMatch()
	case tcell.KeyTab:
		e.ctrl.HandleTab(false)
		e.ensureCursorVisible()
	case tcell.KeyBacktab:
		e.ctrl.HandleTab(true)
		e.ensureCursorVisible()
	case tcell.KeyEnter:
		e.ctrl.HandleEnter()
		e.ensureCursorVisible()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.ctrl.Backspace()
		e.ensureCursorVisible()
	case tcell.KeyDelete:
		e.ctrl.DeleteForward()
		e.ensureCursorVisible()
	case tcell.KeyLeft:
		e.moveHorizontal(-1, ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyRight:
		e.moveHorizontal(1, ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyUp:
		e.moveVertical(-1, ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyDown:
		e.moveVertical(1, ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyPgUp:
		e.moveVertical(-e.pageSize(), ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyPgDn:
		e.moveVertical(e.pageSize(), ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyHome:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			e.moveTo(0, ev.Modifiers()&tcell.ModShift != 0)
		} else {
			e.moveLineEdge(true, ev.Modifiers()&tcell.ModShift != 0)
		}
	case tcell.KeyEnd:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			e.moveTo(len(e.ctrl.Text()), ev.Modifiers()&tcell.ModShift != 0)
		} else {
			e.moveLineEdge(false, ev.Modifiers()&tcell.ModShift != 0)
		}
	case tcell.KeyEscape:
		if e.findBar != nil {
			e.closeFind()
			return
		}
		caret := e.caretOffset()
		e.ctrl.SetSelection(caret, caret)
		e.anchor = caret
		e.caretAtStart = false
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			switch ev.Rune() {
			case 'z', 'Z':
				e.wordWrap = !e.wordWrap
				e.scrollCol = 0
				if e.wordWrap {
					e.setMessage("word wrap on")
				} else {
					e.setMessage("word wrap off")
				}
			case 's', 'S':
				e.syncScroll = !e.syncScroll
				if e.syncScroll {
					e.setMessage("scroll sync on")
				} else {
					e.setMessage("scroll sync off")
				}
			}
			return
		}
		e.ctrl.InsertText(string(ev.Rune()))
		e.ensureCursorVisible()
	}
}

func (e *Editor) pageSize() int {
	if e.textH > 1 {
		return e.textH - 1
	}
	return 1
}

// caretOffset returns the moving end of the selection.
func (e *Editor) caretOffset() int {
	start, end := e.ctrl.Selection()
	if e.caretAtStart {
		return start
	}
	return end
}

// moveTo places the caret, extending the selection from the anchor when
// extend is set.
func (e *Editor) moveTo(pos int, extend bool) {
	if extend {
		e.ctrl.SetSelection(e.anchor, pos)
		e.caretAtStart = pos < e.anchor
	} else {
		e.ctrl.SetSelection(pos, pos)
		e.anchor = pos
		e.caretAtStart = false
	}
	e.ensureCursorVisible()
}

func (e *Editor) moveHorizontal(dir int, extend bool) {
	e.goalCol = -1
	start, end := e.ctrl.Selection()
	if !extend && start != end {
		// Plain arrows collapse the selection to its edge.
		if dir < 0 {
			e.moveTo(start, false)
		} else {
			e.moveTo(end, false)
		}
		return
	}
	pos := e.caretOffset()
	text := e.ctrl.Text()
	if dir < 0 {
		if pos > 0 {
			_, sz := utf8.DecodeLastRuneInString(text[:pos])
			pos -= sz
		}
	} else {
		if pos < len(text) {
			_, sz := utf8.DecodeRuneInString(text[pos:])
			pos += sz
		}
	}
	e.moveTo(pos, extend)
}

func (e *Editor) moveVertical(delta int, extend bool) {
	text := e.ctrl.Text()
	pos := e.caretOffset()
	line, col := e.lineColOf(pos)
	if e.goalCol >= 0 {
		col = e.goalCol
	} else {
		e.goalCol = col
	}
	target := line + delta
	lineCount := strings.Count(text, "\n") + 1
	if target < 0 {
		target = 0
	}
	if target >= lineCount {
		target = lineCount - 1
	}
	goal := e.goalCol
	e.moveTo(e.offsetOf(target, col), extend)
	e.goalCol = goal // moveTo's cursor churn must not clear the sticky column
}

func (e *Editor) moveLineEdge(home bool, extend bool) {
	e.goalCol = -1
	text := e.ctrl.Text()
	pos := e.caretOffset()
	start := strings.LastIndexByte(text[:pos], '\n') + 1
	if home {
		e.moveTo(start, extend)
		return
	}
	end := strings.IndexByte(text[pos:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += pos
	}
	e.moveTo(end, extend)
}

// lineColOf converts a byte offset to 0-based line index and rune column.
func (e *Editor) lineColOf(pos int) (int, int) {
	text := e.ctrl.Text()
	line := strings.Count(text[:pos], "\n")
	start := strings.LastIndexByte(text[:pos], '\n') + 1
	return line, utf8.RuneCountInString(text[start:pos])
}

// offsetOf converts a 0-based line index and rune column to a byte offset,
// clamping the column to the line's length.
func (e *Editor) offsetOf(line, col int) int {
	text := e.ctrl.Text()
	start := 0
	for i := 0; i < line; i++ {
		nl := strings.IndexByte(text[start:], '\n')
		if nl < 0 {
			break
		}
		start += nl + 1
	}
	end := strings.IndexByte(text[start:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += start
	}
	pos := start
	for i := 0; i < col && pos < end; i++ {
		_, sz := utf8.DecodeRuneInString(text[pos:end])
		pos += sz
	}
	return pos
}

func (e *Editor) copySelection(cut bool) {
	var snippet string
	if e.ctrl.HasSelection() {
		snippet = e.ctrl.SelectedText()
		if cut {
			e.ctrl.DeleteSelection()
		}
	} else {
		// No selection: operate on the whole current line.
		text := e.ctrl.Text()
		pos := e.caretOffset()
		start := strings.LastIndexByte(text[:pos], '\n') + 1
		end := strings.IndexByte(text[pos:], '\n')
		if end < 0 {
			end = len(text)
		} else {
			end += pos + 1 // include the newline
		}
		snippet = text[start:end]
		if cut {
			e.ctrl.SetSelection(start, end)
			e.ctrl.DeleteSelection()
		}
	}
	if snippet == "" {
		return
	}
	if e.clip.Write(snippet) {
		if cut {
			e.setMessage("cut to clipboard")
		} else {
			e.setMessage("copied to clipboard")
		}
	} else {
		e.setMessage("copied (internal clipboard only)")
	}
	e.ensureCursorVisible()
}

func (e *Editor) paste() {
	text := e.clip.Read()
	if text == "" {
		return
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	e.ctrl.InsertText(text)
	e.ensureCursorVisible()
}

func (e *Editor) openFind(replace bool) {
	bar := ui.NewFindBar(replace)
	bar.Theme = e.theme
	if e.ctrl.HasSelection() {
		sel := e.ctrl.SelectedText()
		if !strings.Contains(sel, "\n") {
			bar.Input = sel
			bar.Cursor = len([]rune(sel))
		}
	}
	bar.OnChange = func(query string, opts search.Options) {
		e.session.Run(e.ctrl.Text(), query, opts)
		e.jumpToMatch()
	}
	bar.OnNext = func() {
		e.session.Next()
		e.jumpToMatch()
	}
	bar.OnPrev = func() {
		e.session.Prev()
		e.jumpToMatch()
	}
	bar.OnReplace = func(replacement string) {
		newText, ok := e.session.ReplaceCurrent(e.ctrl.Text(), replacement)
		if !ok {
			return
		}
		e.replacing = true
		e.ctrl.LoadText(newText)
		e.replacing = false
		e.jumpToMatch()
	}
	bar.OnReplaceAll = func(replacement string) {
		newText, n, err := search.ReplaceAll(e.ctrl.Text(), bar.Input, replacement, bar.Options())
		if err != nil {
			e.setMessage("invalid pattern")
			return
		}
		if n == 0 {
			e.setMessage("no matches")
			return
		}
		e.replacing = true
		e.ctrl.LoadText(newText)
		e.replacing = false
		e.session.Run(newText, bar.Input, bar.Options())
		e.setMessage(fmt.Sprintf("replaced %d occurrences", n))
	}
	bar.OnCancel = func() {
		e.closeFind()
	}
	e.findBar = bar
	if bar.Input != "" {
		e.session.Run(e.ctrl.Text(), bar.Input, bar.Options())
		e.jumpToMatch()
	}
}

func (e *Editor) closeFind() {
	e.findBar = nil
	e.session = search.Session{}
}

// jumpToMatch selects the session's current match and scrolls it into view.
func (e *Editor) jumpToMatch() {
	r, ok := e.session.Selected()
	if !ok {
		return
	}
	e.ctrl.SetSelection(r.Index, r.Index+r.Length)
	e.anchor = r.Index
	e.caretAtStart = false
	e.ensureCursorVisible()
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		e.scrollPane(x, -3)
		return
	case buttons&tcell.WheelDown != 0:
		e.scrollPane(x, 3)
		return
	}

	inText := x >= e.textX && x < e.textX+e.textW &&
		y >= e.textY && y < e.textY+e.textH

	if buttons&tcell.Button1 != 0 {
		if !e.mouseDown && inText {
			pos := e.offsetAt(e.scrollRow+y-e.textY, x-e.textX)
			e.moveTo(pos, false)
			e.mouseDown = true
		} else if e.mouseDown {
			row := e.scrollRow + y - e.textY
			cell := x - e.textX
			if cell < 0 {
				cell = 0
			}
			e.moveTo(e.offsetAt(row, cell), true)
		}
		return
	}
	e.mouseDown = false
}

// scrollPane wheels whichever pane the pointer is over, then mirrors the
// other pane when sync is on.
func (e *Editor) scrollPane(x, delta int) {
	if e.previewW > 0 && x > e.paneW {
		if e.preview.ScrollBy(delta) && e.syncScroll {
			e.sync.SecondScrolled()
		}
		return
	}
	before := e.scrollRow
	e.scrollRow += delta
	e.clampScroll()
	if e.scrollRow != before && e.syncScroll && e.showPreview {
		e.sync.FirstScrolled()
	}
}
