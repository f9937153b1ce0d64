// Package indent implements Tab and Shift+Tab behavior over a document
// string, plus newline auto-indentation.
package indent

import "strings"

// Unit is the text inserted per indent level.
const Unit = "    "

// LineBounds returns the byte span [start, end) of the line containing pos,
// excluding the trailing newline.
func LineBounds(text string, pos int) (int, int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(text) {
		pos = len(text)
	}
	start := strings.LastIndexByte(text[:pos], '\n') + 1
	end := strings.IndexByte(text[pos:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += pos
	}
	return start, end
}

// leadingSpaces counts the spaces at the start of line, up to max.
func leadingSpaces(line string, max int) int {
	n := 0
	for n < len(line) && n < max && line[n] == ' ' {
		n++
	}
	return n
}

// Indent applies Tab to the span [start, end). With an empty selection it
// inserts Unit at the caret; otherwise every line the selection touches is
// prefixed with Unit and the returned selection covers the rewritten block.
func Indent(text string, start, end int) (string, int, int) {
	if start == end {
		out := text[:start] + Unit + text[start:]
		return out, start + len(Unit), start + len(Unit)
	}
	first, _ := LineBounds(text, start)
	_, last := LineBounds(text, end)
	block := text[first:last]
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = Unit + line
	}
	rewritten := strings.Join(lines, "\n")
	out := text[:first] + rewritten + text[last:]
	return out, first, first + len(rewritten)
}

// Unindent applies Shift+Tab to the span [start, end). Each affected line
// loses four leading spaces if it has them, otherwise two, otherwise it is
// left alone. With an empty selection the caret shifts left by the amount
// removed, clamped to the line start.
func Unindent(text string, start, end int) (string, int, int) {
	if start == end {
		first, last := LineBounds(text, start)
		removed := stripAmount(text[first:last])
		if removed == 0 {
			return text, start, start
		}
		out := text[:first] + text[first+removed:]
		caret := start - removed
		if caret < first {
			caret = first
		}
		return out, caret, caret
	}
	first, _ := LineBounds(text, start)
	_, last := LineBounds(text, end)
	block := text[first:last]
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = line[stripAmount(line):]
	}
	rewritten := strings.Join(lines, "\n")
	out := text[:first] + rewritten + text[last:]
	return out, first, first + len(rewritten)
}

func stripAmount(line string) int {
	switch n := leadingSpaces(line, len(Unit)); {
	case n >= 4:
		return 4
	case n >= 2:
		return 2
	}
	return 0
}

// Newline returns the text to insert for Enter at the caret, copying the
// current line's leading whitespace so the next line starts at the same
// depth. An empty string means the caller should insert a plain newline.
func Newline(text string, caret int) string {
	first, last := LineBounds(text, caret)
	line := text[first:last]
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	if i == 0 {
		return ""
	}
	return "\n" + line[:i]
}
