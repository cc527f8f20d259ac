package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var noticeStyle = tcell.StyleDefault.
	Background(tcell.NewRGBColor(90, 60, 30)).
	Foreground(tcell.NewRGBColor(240, 230, 200))

// Notice paints a one-shot message centered on the bottom row. The
// next repaint wipes it; there is no dedicated status area.
func Notice(screen tcell.Screen, msg string) {
	sw, sh := screen.Size()
	w := runewidth.StringWidth(msg) + 2
	if w > sw {
		w = sw
	}
	x := (sw - w) / 2
	y := sh - 1
	if x < 0 {
		x = 0
	}

	for col := x; col < x+w; col++ {
		screen.SetContent(col, y, ' ', nil, noticeStyle)
	}
	col := x + 1
	for _, r := range runewidth.Truncate(msg, w-2, "…") {
		screen.SetContent(col, y, r, nil, noticeStyle)
		col += runewidth.RuneWidth(r)
	}
	screen.Show()
}
