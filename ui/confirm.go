package ui

import "github.com/gdamore/tcell/v2"

// ConfirmKind selects the prompt wording and accepted answers.
type ConfirmKind int

const (
	ConfirmSave    ConfirmKind = iota // y / n / c
	ConfirmReload                     // y / c
	ConfirmRecover                    // y / n
)

// ConfirmBar is a one-line prompt shown over the status bar for unsaved
// changes and external-modification reloads.
type ConfirmBar struct {
	Kind     ConfirmKind
	Filename string

	// OnAnswer receives 'y', 'n' or 'c'.
	OnAnswer func(answer rune)
}

func NewConfirmBar(kind ConfirmKind, filename string) *ConfirmBar {
	return &ConfirmBar{Kind: kind, Filename: filename}
}

func (c *ConfirmBar) Render(screen tcell.Screen, x, y, width int) {
	style := tcell.StyleDefault.Background(tcell.ColorDarkRed).Foreground(tcell.ColorWhite)
	msg := " Save changes to " + c.Filename + "? [Y]es [N]o [C]ancel "
	switch c.Kind {
	case ConfirmReload:
		style = tcell.StyleDefault.Background(tcell.ColorOrange).Foreground(tcell.ColorBlack)
		msg = " " + c.Filename + " changed on disk. Reload? [Y]es [C]ancel "
	case ConfirmRecover:
		style = tcell.StyleDefault.Background(tcell.ColorOrange).Foreground(tcell.ColorBlack)
		msg = " Unsaved backup found for " + c.Filename + ". Recover? [Y]es [N]o "
	}

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x
	for _, ch := range msg {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, style)
			col++
		}
	}
}

func (c *ConfirmBar) HandleKey(ev *tcell.EventKey) bool {
	ch := ev.Rune()
	switch {
	case ch == 'y' || ch == 'Y':
		if c.OnAnswer != nil {
			c.OnAnswer('y')
		}
	case (ch == 'n' || ch == 'N') && c.Kind != ConfirmReload:
		if c.OnAnswer != nil {
			c.OnAnswer('n')
		}
	case ch == 'c' || ch == 'C' || ev.Key() == tcell.KeyEscape:
		if c.OnAnswer != nil {
			c.OnAnswer('c')
		}
	}
	return true
}
