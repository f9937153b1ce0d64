package editor

import (
	"path/filepath"
	"strconv"
	"strings"

	"markedit/wrap"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// The editor itself is the measurement oracle for the wrap calculator:
// width comes from the current pane geometry, line widths from the
// terminal cell widths.
func (e *Editor) AvailableWidth() int { return e.textW }

func (e *Editor) TextWidth(line string) int { return runewidth.StringWidth(line) }

// layout recomputes pane geometry and the wrapped row model from the
// current screen size.
func (e *Editor) layout() {
	e.width, e.height = e.screen.Size()
	contentH := e.height - 1 // status bar
	if contentH < 1 {
		contentH = 1
	}

	if e.showPreview && e.width >= 40 {
		e.paneW = e.width / 2
		e.previewX = e.paneW + 1
		e.previewW = e.width - e.previewX
	} else {
		e.paneW = e.width
		e.previewX = 0
		e.previewW = 0
	}

	e.gutterW = len(strconv.Itoa(e.ctrl.LineCount())) + 1
	e.textX = e.gutterW
	e.textY = 0
	if e.findBar != nil {
		e.textY = e.findBar.Height()
	}
	e.textW = e.paneW - e.gutterW - 1 // one column for the scrollbar
	if e.textW < 1 {
		e.textW = 1
	}
	e.textH = contentH - e.textY
	if e.textH < 1 {
		e.textH = 1
	}

	if e.wordWrap {
		e.rows = wrap.Compute(e.ctrl.Text(), e)
	} else {
		e.rows = wrap.Compute(e.ctrl.Text(), nil)
	}
	e.preview.SetSize(e.previewW, contentH)
	e.clampScroll()
}

func (e *Editor) clampScroll() {
	max := len(e.rows) - e.textH
	if max < 0 {
		max = 0
	}
	if e.scrollRow > max {
		e.scrollRow = max
	}
	if e.scrollRow < 0 {
		e.scrollRow = 0
	}
}

// wrapSegments splits a line the same way the renderer draws it: greedy
// fill by cell width. Without wrapping the whole line is one segment.
func wrapSegments(line string, width int) []string {
	if width <= 0 || runewidth.StringWidth(line) <= width {
		return []string{line}
	}
	var segs []string
	var cur strings.Builder
	w := 0
	for _, r := range line {
		rw := runewidth.RuneWidth(r)
		if w+rw > width && cur.Len() > 0 {
			segs = append(segs, cur.String())
			cur.Reset()
			w = 0
		}
		cur.WriteRune(r)
		w += rw
	}
	if cur.Len() > 0 {
		segs = append(segs, cur.String())
	}
	return segs
}

// cursorPosition maps the caret to its visual row and cell column.
func (e *Editor) cursorPosition() (int, int) {
	text := e.ctrl.Text()
	caret := e.caretOffset()
	lineIdx := strings.Count(text[:caret], "\n")
	lineStart := strings.LastIndexByte(text[:caret], '\n') + 1
	lineEnd := strings.IndexByte(text[lineStart:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text)
	} else {
		lineEnd += lineStart
	}
	line := text[lineStart:lineEnd]
	lineOff := caret - lineStart

	segs := []string{line}
	if e.wordWrap {
		segs = wrapSegments(line, e.textW)
	}
	segIdx := 0
	pos := 0
	for segIdx < len(segs)-1 && lineOff >= pos+len(segs[segIdx]) {
		pos += len(segs[segIdx])
		segIdx++
	}
	col := runewidth.StringWidth(line[pos:lineOff])

	row, ok := wrap.VisualIndex(e.rows, lineIdx+1)
	if !ok {
		return 0, col
	}
	if n := wrap.RowCount(e.rows, lineIdx+1); segIdx >= n {
		segIdx = n - 1
	}
	return row + segIdx, col
}

// offsetAt maps a visual row and cell column back to a byte offset, for
// mouse clicks.
func (e *Editor) offsetAt(row, cell int) int {
	text := e.ctrl.Text()
	if row < 0 {
		return 0
	}
	if row >= len(e.rows) {
		return len(text)
	}
	info := e.rows[row]
	first, _ := wrap.VisualIndex(e.rows, info.Line)
	wrapIdx := row - first

	lines := strings.Split(text, "\n")
	lineStart := 0
	for i := 0; i < info.Line-1; i++ {
		lineStart += len(lines[i]) + 1
	}
	line := lines[info.Line-1]

	segs := []string{line}
	if e.wordWrap {
		segs = wrapSegments(line, e.textW)
	}
	if wrapIdx >= len(segs) {
		wrapIdx = len(segs) - 1
	}
	segStart := 0
	for i := 0; i < wrapIdx; i++ {
		segStart += len(segs[i])
	}
	if !e.wordWrap {
		cell += e.scrollCol
	}
	off := segStart
	w := 0
	for _, r := range segs[wrapIdx] {
		rw := runewidth.RuneWidth(r)
		if w+rw > cell {
			break
		}
		w += rw
		off += len(string(r))
	}
	return lineStart + off
}

// ensureCursorVisible scrolls the editor pane so the caret stays on
// screen, then mirrors the preview if sync is on.
func (e *Editor) ensureCursorVisible() {
	if e.screen == nil {
		return
	}
	e.layout()
	row, col := e.cursorPosition()
	moved := false
	if row < e.scrollRow {
		e.scrollRow = row
		moved = true
	}
	if row >= e.scrollRow+e.textH {
		e.scrollRow = row - e.textH + 1
		moved = true
	}
	if !e.wordWrap {
		if col < e.scrollCol {
			e.scrollCol = col
			moved = true
		}
		if col >= e.scrollCol+e.textW {
			e.scrollCol = col - e.textW + 1
			moved = true
		}
	}
	if moved && e.syncScroll && e.showPreview {
		e.sync.FirstScrolled()
	}
}

func (e *Editor) render() {
	e.layout()
	theme := e.theme

	baseStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	e.screen.Fill(' ', baseStyle)

	e.renderText()
	e.renderScrollbar()
	if e.previewW > 0 {
		borderStyle := baseStyle.Foreground(theme.PaneBorder)
		for y := 0; y < e.height-1; y++ {
			e.screen.SetContent(e.paneW, y, '│', nil, borderStyle)
		}
		e.preview.Render(e.screen, e.previewX, 0)
	}
	e.renderStatus()
	if e.findBar != nil {
		e.findBar.MatchIndex = e.session.Current
		e.findBar.MatchTotal = len(e.session.Results)
		e.findBar.BadPattern = e.session.Err != nil
		e.findBar.Render(e.screen, 0, 0, e.paneW)
	}
	if e.confirm != nil {
		e.confirm.Render(e.screen, 0, e.height-1, e.width)
	}

	if e.findBar == nil && e.confirm == nil {
		row, col := e.cursorPosition()
		if row >= e.scrollRow && row < e.scrollRow+e.textH {
			x := e.textX + col - e.scrollCol
			if x >= e.textX && x < e.textX+e.textW {
				e.screen.ShowCursor(x, e.textY+row-e.scrollRow)
			} else {
				e.screen.HideCursor()
			}
		} else {
			e.screen.HideCursor()
		}
	} else {
		e.screen.HideCursor()
	}

	e.screen.Show()
}

func (e *Editor) renderText() {
	theme := e.theme
	baseStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	gutterStyle := baseStyle.Foreground(theme.LineNumber)
	gutterActiveStyle := baseStyle.Foreground(theme.LineNumberActive)
	selStyle := baseStyle.Background(theme.Selection)
	matchStyle := baseStyle.Background(theme.MatchBg)
	matchActiveStyle := baseStyle.Background(theme.MatchActiveBg).Foreground(tcell.ColorBlack)

	text := e.ctrl.Text()
	lines := strings.Split(text, "\n")
	lineStarts := make([]int, len(lines))
	pos := 0
	for i, line := range lines {
		lineStarts[i] = pos
		pos += len(line) + 1
	}

	selStart, selEnd := e.ctrl.Selection()
	cursorLine, _ := e.ctrl.LineColumn(e.caretOffset())

	// styleAt layers selection and match highlights over the base style.
	styleAt := func(off int) tcell.Style {
		st := baseStyle
		for i, m := range e.session.Results {
			if off >= m.Index && off < m.Index+m.Length {
				if i == e.session.Current {
					st = matchActiveStyle
				} else {
					st = matchStyle
				}
				break
			}
		}
		if selStart != selEnd && off >= selStart && off < selEnd {
			st = selStyle
		}
		return st
	}

	var segs []string
	segLine := -1

	for vy := 0; vy < e.textH; vy++ {
		r := e.scrollRow + vy
		if r >= len(e.rows) {
			break
		}
		info := e.rows[r]
		lineIdx := info.Line - 1
		if lineIdx >= len(lines) {
			break
		}
		line := lines[lineIdx]
		if segLine != lineIdx {
			if e.wordWrap {
				segs = wrapSegments(line, e.textW)
			} else {
				segs = []string{line}
			}
			segLine = lineIdx
		}
		first, _ := wrap.VisualIndex(e.rows, info.Line)
		wrapIdx := r - first

		// Gutter: the number on the first row of a line, blank on
		// continuation rows.
		y := e.textY + vy
		if !info.Wrapped {
			num := strconv.Itoa(info.Line)
			gst := gutterStyle
			if info.Line == cursorLine {
				gst = gutterActiveStyle
			}
			for i, ch := range num {
				x := e.gutterW - 1 - len(num) + i
				if x >= 0 {
					e.screen.SetContent(x, y, ch, nil, gst)
				}
			}
		}

		if wrapIdx >= len(segs) {
			continue
		}
		segStart := lineStarts[lineIdx]
		for i := 0; i < wrapIdx; i++ {
			segStart += len(segs[i])
		}

		x := e.textX - e.scrollCol
		off := segStart
		for _, ch := range segs[wrapIdx] {
			rw := runewidth.RuneWidth(ch)
			if x >= e.textX+e.textW {
				break
			}
			if x >= e.textX {
				e.screen.SetContent(x, y, ch, nil, styleAt(off))
			}
			x += rw
			off += len(string(ch))
		}
		// Show a selected newline as a highlighted cell at line end.
		if selStart != selEnd && segStart+len(segs[wrapIdx]) == lineStarts[lineIdx]+len(line) {
			eol := lineStarts[lineIdx] + len(line)
			if eol >= selStart && eol < selEnd && x >= e.textX && x < e.textX+e.textW {
				e.screen.SetContent(x, y, ' ', nil, selStyle)
			}
		}
	}
}

func (e *Editor) renderScrollbar() {
	if len(e.rows) <= e.textH {
		return
	}
	theme := e.theme
	trackStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.LineNumber)
	thumbStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)

	x := e.paneW - 1
	thumbH := e.textH * e.textH / len(e.rows)
	if thumbH < 1 {
		thumbH = 1
	}
	maxScroll := len(e.rows) - e.textH
	thumbY := 0
	if maxScroll > 0 {
		thumbY = e.scrollRow * (e.textH - thumbH) / maxScroll
	}
	for i := 0; i < e.textH; i++ {
		ch := '│'
		st := trackStyle
		if i >= thumbY && i < thumbY+thumbH {
			ch = '█'
			st = thumbStyle
		}
		e.screen.SetContent(x, e.textY+i, ch, nil, st)
	}
}

func (e *Editor) renderStatus() {
	line, col := e.ctrl.LineColumn(e.caretOffset())
	e.status.Filename = e.doc.Path
	if e.status.Filename != "" {
		e.status.Filename = filepath.Base(e.status.Filename)
	}
	e.status.Dirty = e.dirty
	e.status.Line = line
	e.status.Col = col
	e.status.Encoding = e.doc.Encoding
	e.status.LineEnd = e.doc.LineEnding
	e.status.Message = e.currentMessage()
	selStart, selEnd := e.ctrl.Selection()
	e.status.SelChars = 0
	if selStart != selEnd {
		e.status.SelChars = len([]rune(e.ctrl.SelectedText()))
	}
	e.status.FindActive = e.findBar != nil
	e.status.FindIndex = e.session.Current
	e.status.FindTotal = len(e.session.Results)
	e.status.FindBad = e.session.Err != nil
	e.status.Render(e.screen, 0, e.height-1, e.width)
}
