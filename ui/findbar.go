package ui

import (
	"strconv"

	"markedit/config"
	"markedit/search"

	"github.com/gdamore/tcell/v2"
)

// FindBar is the find / find+replace input rendered over the top of the
// editor pane. It owns the query text and option toggles; the editor owns
// the search session and feeds the match counters back in for display.
type FindBar struct {
	Input  string
	Cursor int

	ReplaceInput  string
	ReplaceCursor int
	ReplaceActive bool // cursor is in the replace field
	ReplaceMode   bool // replace field is shown at all

	Regex         bool
	CaseSensitive bool
	WholeWord     bool

	// Display state fed back by the editor after each search run.
	MatchIndex int
	MatchTotal int
	BadPattern bool

	Theme *config.ColorScheme

	OnChange     func(query string, opts search.Options)
	OnNext       func()
	OnPrev       func()
	OnReplace    func(replacement string)
	OnReplaceAll func(replacement string)
	OnCancel     func()
}

func NewFindBar(replace bool) *FindBar {
	return &FindBar{ReplaceMode: replace}
}

// Options returns the search options matching the current toggles.
func (f *FindBar) Options() search.Options {
	return search.Options{
		CaseSensitive: f.CaseSensitive,
		WholeWord:     f.WholeWord,
		Regex:         f.Regex,
	}
}

// Height is the number of rows the bar occupies.
func (f *FindBar) Height() int {
	if f.ReplaceMode {
		return 2
	}
	return 1
}

func (f *FindBar) changed() {
	if f.OnChange != nil {
		f.OnChange(f.Input, f.Options())
	}
}

func (f *FindBar) Render(screen tcell.Screen, x, y, width int) {
	f.renderField(screen, x, y, width, "Find: ", f.Input, f.Cursor, !f.ReplaceActive, true)
	if f.ReplaceMode {
		f.renderField(screen, x, y+1, width, "Replace: ", f.ReplaceInput, f.ReplaceCursor, f.ReplaceActive, false)
	}
}

func (f *FindBar) renderField(screen tcell.Screen, x, y, width int, prompt, input string, cursor int, active, find bool) {
	theme := f.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}
	style := tcell.StyleDefault.Background(theme.FindBarInputBg).Foreground(theme.FindBarFg)
	promptStyle := style.Foreground(tcell.ColorYellow).Bold(true)
	if !active {
		promptStyle = style.Foreground(tcell.ColorOlive)
	}

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x
	for _, ch := range prompt {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, promptStyle)
			col++
		}
	}

	for i, ch := range []rune(input) {
		if col >= x+width {
			break
		}
		if i == cursor && active {
			screen.SetContent(col, y, ch, nil, style.Reverse(true))
		} else {
			screen.SetContent(col, y, ch, nil, style)
		}
		col++
	}
	if active && cursor >= len([]rune(input)) && col < x+width {
		screen.SetContent(col, y, ' ', nil, style.Reverse(true))
		col++
	}

	var info string
	if find {
		if f.Regex {
			info += " [.*]"
		}
		if f.CaseSensitive {
			info += " [Aa]"
		}
		if f.WholeWord {
			info += " [\\b]"
		}
		switch {
		case f.BadPattern:
			info += " (?)"
		case f.MatchTotal > 0:
			info += " (" + strconv.Itoa(f.MatchIndex+1) + "/" + strconv.Itoa(f.MatchTotal) + ")"
		case f.Input != "":
			info += " (0)"
		}
	} else {
		info = " Enter=Replace  Ctrl+A=All"
	}
	if info != "" {
		infoStart := x + width - len(info)
		if infoStart > col {
			infoStyle := style.Foreground(tcell.ColorGray)
			for i, ch := range info {
				screen.SetContent(infoStart+i, y, ch, nil, infoStyle)
			}
		}
	}
}

// HandleKey consumes a keystroke. It reports whether the bar handled it;
// unhandled keys fall through to the editor.
func (f *FindBar) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyF3:
		if ev.Modifiers()&tcell.ModShift != 0 {
			if f.OnPrev != nil {
				f.OnPrev()
			}
		} else if f.OnNext != nil {
			f.OnNext()
		}
		return true
	case tcell.KeyTab, tcell.KeyBacktab:
		if f.ReplaceMode {
			f.ReplaceActive = !f.ReplaceActive
		}
		return true
	case tcell.KeyEscape:
		if f.OnCancel != nil {
			f.OnCancel()
		}
		return true
	case tcell.KeyEnter:
		if f.ReplaceMode && f.ReplaceActive {
			if f.OnReplace != nil {
				f.OnReplace(f.ReplaceInput)
			}
			return true
		}
		if f.OnNext != nil {
			f.OnNext()
		}
		return true
	case tcell.KeyCtrlA:
		if f.ReplaceMode && f.ReplaceActive {
			if f.OnReplaceAll != nil {
				f.OnReplaceAll(f.ReplaceInput)
			}
			return true
		}
		return false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		input, cursor := f.activeField()
		if *cursor > 0 {
			runes := []rune(*input)
			*input = string(runes[:*cursor-1]) + string(runes[*cursor:])
			*cursor--
			f.fieldChanged()
		}
		return true
	case tcell.KeyDelete:
		input, cursor := f.activeField()
		runes := []rune(*input)
		if *cursor < len(runes) {
			*input = string(runes[:*cursor]) + string(runes[*cursor+1:])
			f.fieldChanged()
		}
		return true
	case tcell.KeyLeft:
		_, cursor := f.activeField()
		if *cursor > 0 {
			*cursor--
		}
		return true
	case tcell.KeyRight:
		input, cursor := f.activeField()
		if *cursor < len([]rune(*input)) {
			*cursor++
		}
		return true
	case tcell.KeyHome:
		_, cursor := f.activeField()
		*cursor = 0
		return true
	case tcell.KeyEnd:
		input, cursor := f.activeField()
		*cursor = len([]rune(*input))
		return true
	case tcell.KeyRune:
		ch := ev.Rune()
		if ev.Modifiers()&tcell.ModAlt != 0 {
			switch ch {
			case 'r', 'R':
				f.Regex = !f.Regex
				f.changed()
				return true
			case 'c', 'C':
				f.CaseSensitive = !f.CaseSensitive
				f.changed()
				return true
			case 'w', 'W':
				f.WholeWord = !f.WholeWord
				f.changed()
				return true
			}
			return false
		}
		input, cursor := f.activeField()
		runes := []rune(*input)
		*input = string(runes[:*cursor]) + string(ch) + string(runes[*cursor:])
		*cursor++
		f.fieldChanged()
		return true
	}
	return false
}

func (f *FindBar) activeField() (*string, *int) {
	if f.ReplaceMode && f.ReplaceActive {
		return &f.ReplaceInput, &f.ReplaceCursor
	}
	return &f.Input, &f.Cursor
}

// fieldChanged reruns the search only when the find field itself changed;
// edits to the replacement text leave the result set alone.
func (f *FindBar) fieldChanged() {
	if f.ReplaceMode && f.ReplaceActive {
		return
	}
	f.changed()
}
