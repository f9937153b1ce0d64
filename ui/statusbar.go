package ui

import (
	"fmt"

	"markedit/config"

	"github.com/gdamore/tcell/v2"
)

type StatusBar struct {
	Filename string
	Dirty    bool
	Line     int // 1-based caret position
	Col      int
	Encoding string
	LineEnd  string
	SelChars int // number of selected characters (0 = no selection)
	Message  string
	Theme    *config.ColorScheme

	// Match counters shown while the find bar is open.
	FindActive bool
	FindIndex  int // 0-based index of the selected match
	FindTotal  int
	FindBad    bool // query failed to compile
}

func NewStatusBar() *StatusBar {
	return &StatusBar{
		Encoding: "UTF-8",
		LineEnd:  "LF",
		Line:     1,
		Col:      1,
	}
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width int) {
	theme := s.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}

	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)
	badgeStyle := tcell.StyleDefault.Background(theme.StatusBarModeBg).Foreground(tcell.ColorBlack).Bold(true)

	// Clear the line
	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x

	badge := " MD "
	for _, ch := range badge {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, badgeStyle)
			col++
		}
	}
	if col < x+width {
		screen.SetContent(col, y, ' ', nil, style)
		col++
	}

	// A temporary message replaces the filename until it expires
	if s.Message != "" {
		for _, ch := range s.Message {
			if col < x+width {
				screen.SetContent(col, y, ch, nil, style)
				col++
			}
		}
		return
	}

	fname := s.Filename
	if fname == "" {
		fname = "untitled"
	}
	if s.Dirty {
		fname += " ●"
	}
	for _, ch := range fname {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, style)
			col++
		}
	}

	// Right-aligned info
	findPart := ""
	if s.FindActive {
		switch {
		case s.FindBad:
			findPart = "invalid pattern │ "
		case s.FindTotal == 0:
			findPart = "no matches │ "
		default:
			findPart = fmt.Sprintf("%d/%d matches │ ", s.FindIndex+1, s.FindTotal)
		}
	}
	var right string
	if s.SelChars > 0 {
		right = fmt.Sprintf("%sSel: %d chars │ Ln %d, Col %d │ %s │ %s ", findPart, s.SelChars, s.Line, s.Col, s.Encoding, s.LineEnd)
	} else {
		right = fmt.Sprintf("%sLn %d, Col %d │ %s │ %s ", findPart, s.Line, s.Col, s.Encoding, s.LineEnd)
	}
	rightRunes := []rune(right)
	rightStart := x + width - len(rightRunes)
	if rightStart > col+2 {
		for i, ch := range rightRunes {
			screen.SetContent(rightStart+i, y, ch, nil, style)
		}
	}
}
