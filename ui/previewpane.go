package ui

import (
	"strings"

	"markedit/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// PreviewPane shows the rendered-markdown line projection next to the raw
// editor. It scrolls independently and satisfies the scroll-sync region
// contract: offsets are visual rows after soft wrapping.
type PreviewPane struct {
	Theme *config.ColorScheme

	lines  []string
	rows   []previewRow
	scroll int
	width  int
	height int
}

type previewRow struct {
	text    string
	heading bool
}

func NewPreviewPane() *PreviewPane {
	return &PreviewPane{}
}

// SetContent replaces the pane's lines and reflows them at the current
// width. The scroll offset is clamped to the new extent.
func (p *PreviewPane) SetContent(lines []string) {
	p.lines = lines
	p.reflow()
}

// SetSize informs the pane of its drawable area ahead of rendering.
func (p *PreviewPane) SetSize(width, height int) {
	if width == p.width && height == p.height {
		return
	}
	p.width = width
	p.height = height
	p.reflow()
}

func (p *PreviewPane) reflow() {
	p.rows = p.rows[:0]
	for _, line := range p.lines {
		heading := strings.HasPrefix(line, "#")
		for _, seg := range wrapLine(line, p.width) {
			p.rows = append(p.rows, previewRow{text: seg, heading: heading})
		}
	}
	p.SetScrollTop(p.scroll)
}

// wrapLine splits a line into segments no wider than width cells. A
// non-positive width disables wrapping.
func wrapLine(line string, width int) []string {
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

func (p *PreviewPane) ScrollTop() int { return p.scroll }

func (p *PreviewPane) SetScrollTop(top int) {
	max := len(p.rows) - p.height
	if max < 0 {
		max = 0
	}
	if top > max {
		top = max
	}
	if top < 0 {
		top = 0
	}
	p.scroll = top
}

func (p *PreviewPane) ScrollHeight() int { return len(p.rows) }
func (p *PreviewPane) ClientHeight() int { return p.height }

// ScrollBy moves the pane and reports whether the offset changed.
func (p *PreviewPane) ScrollBy(delta int) bool {
	before := p.scroll
	p.SetScrollTop(p.scroll + delta)
	return p.scroll != before
}

func (p *PreviewPane) Render(screen tcell.Screen, x, y int) {
	theme := p.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}
	style := tcell.StyleDefault.Background(theme.Background).Foreground(theme.PreviewFg)
	headingStyle := style.Foreground(theme.PreviewHeading).Bold(true)

	for row := 0; row < p.height; row++ {
		for cx := 0; cx < p.width; cx++ {
			screen.SetContent(x+cx, y+row, ' ', nil, style)
		}
		idx := p.scroll + row
		if idx >= len(p.rows) {
			continue
		}
		st := style
		if p.rows[idx].heading {
			st = headingStyle
		}
		col := x
		for _, r := range p.rows[idx].text {
			rw := runewidth.RuneWidth(r)
			if col+rw > x+p.width {
				break
			}
			screen.SetContent(col, y+row, r, nil, st)
			col += rw
		}
	}
}
