// Package wrap computes the visual row layout of a wrapped document. It is
// measurement-agnostic: callers supply the pane width and a way to measure
// line widths, typically backed by a terminal cell-width oracle.
package wrap

import "strings"

// Measurement supplies the geometry needed to lay out lines.
type Measurement interface {
	// AvailableWidth is the width of the text area in cells.
	AvailableWidth() int
	// TextWidth measures the rendered width of a line in cells.
	TextWidth(line string) int
}

// LineInfo describes one visual row. Line is the 1-based logical line
// number; Wrapped is true on continuation rows, which render without a
// gutter number.
type LineInfo struct {
	Line    int
	Wrapped bool
}

// Compute returns one LineInfo per visual row of text. A nil measurement or
// non-positive width disables wrapping and yields exactly one row per
// logical line. A line wider than the pane gets ceil(width/avail)-1
// continuation rows after its first row, never fewer than one.
func Compute(text string, m Measurement) []LineInfo {
	lines := strings.Split(text, "\n")
	infos := make([]LineInfo, 0, len(lines))
	avail := 0
	if m != nil {
		avail = m.AvailableWidth()
	}
	for i, line := range lines {
		num := i + 1
		infos = append(infos, LineInfo{Line: num})
		if avail <= 0 || line == "" {
			continue
		}
		w := m.TextWidth(line)
		if w <= avail {
			continue
		}
		extra := (w+avail-1)/avail - 1
		if extra < 1 {
			extra = 1
		}
		for j := 0; j < extra; j++ {
			infos = append(infos, LineInfo{Line: num, Wrapped: true})
		}
	}
	return infos
}

// VisualIndex returns the index of the first visual row showing the given
// 1-based logical line, and false when the line is not present.
func VisualIndex(infos []LineInfo, line int) (int, bool) {
	for i, info := range infos {
		if info.Line == line && !info.Wrapped {
			return i, true
		}
	}
	return 0, false
}

// RowCount returns the number of visual rows occupied by a logical line.
func RowCount(infos []LineInfo, line int) int {
	n := 0
	for _, info := range infos {
		if info.Line == line {
			n++
		}
	}
	return n
}
