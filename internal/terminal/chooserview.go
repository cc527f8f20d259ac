package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/gridkey/internal/chooser"
)

// Chooser view geometry.
const (
	chooserWidth   = 48
	chooserMaxRows = 12
)

var (
	chooserFrameStyle    = tcell.StyleDefault.Background(tcell.NewRGBColor(28, 28, 36)).Foreground(tcell.NewRGBColor(220, 220, 228))
	chooserQueryStyle    = chooserFrameStyle.Bold(true)
	chooserSelectedStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(60, 60, 84)).Foreground(tcell.NewRGBColor(240, 240, 248))
	chooserSublabelStyle = chooserFrameStyle.Foreground(tcell.NewRGBColor(150, 150, 164))
)

// ChooserView paints a chooser session as a centered list: the query
// line on top, ranked results below, cursor row highlighted.
type ChooserView struct {
	screen  tcell.Screen
	session *chooser.Session

	// top is the first visible result index. Paint slides it so the
	// cursor row never leaves the visible window.
	top int
}

// NewChooserView creates a view over a session.
func NewChooserView(screen tcell.Screen, session *chooser.Session) *ChooserView {
	return &ChooserView{screen: screen, session: session}
}

// Paint redraws the chooser.
func (v *ChooserView) Paint() {
	results := v.session.Results()
	cursor := v.session.Cursor()
	rows := len(results)
	if rows > chooserMaxRows {
		rows = chooserMaxRows
	}

	if v.top > len(results)-rows {
		v.top = len(results) - rows
	}
	if v.top < 0 {
		v.top = 0
	}
	if cursor < v.top {
		v.top = cursor
	}
	if rows > 0 && cursor >= v.top+rows {
		v.top = cursor - rows + 1
	}

	sw, sh := v.screen.Size()
	w := chooserWidth
	if w > sw {
		w = sw
	}
	h := rows + 2
	x := (sw - w) / 2
	y := (sh - h) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	v.fillRow(x, y, w, chooserFrameStyle)
	v.drawText(x+1, y, "> "+v.session.Query(), w-2, chooserQueryStyle)
	v.fillRow(x, y+1, w, chooserFrameStyle)

	for i := 0; i < rows; i++ {
		idx := v.top + i
		style := chooserFrameStyle
		if idx == cursor {
			style = chooserSelectedStyle
		}
		row := y + 2 + i
		v.fillRow(x, row, w, style)

		entry := results[idx].Entry
		v.drawText(x+1, row, entry.Label, w-2, style)
		if entry.Sublabel != "" {
			subW := runewidth.StringWidth(entry.Sublabel)
			sx := x + w - 1 - subW
			if sx > x+1+runewidth.StringWidth(entry.Label)+1 {
				subStyle := chooserSublabelStyle
				if idx == cursor {
					subStyle = style
				}
				v.drawText(sx, row, entry.Sublabel, subW, subStyle)
			}
		}
	}

	v.screen.Show()
}

// Clear wipes the screen after the chooser closes.
func (v *ChooserView) Clear() {
	v.screen.Clear()
	v.screen.Show()
}

func (v *ChooserView) fillRow(x, y, w int, style tcell.Style) {
	for col := x; col < x+w; col++ {
		v.screen.SetContent(col, y, ' ', nil, style)
	}
}

func (v *ChooserView) drawText(x, y int, text string, maxW int, style tcell.Style) {
	if maxW < 1 {
		return
	}
	text = runewidth.Truncate(text, maxW, "…")
	col := x
	for _, r := range text {
		v.screen.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
}
