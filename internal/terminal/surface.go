package terminal

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/gridkey/internal/render"
)

// fadeSteps is how many intensity increments a timed fade paints.
const fadeSteps = 4

// surfaceSet tracks every surface sharing one screen, so that a
// surface clearing its region can restore any still-visible siblings
// it overlapped.
type surfaceSet struct {
	mu       sync.Mutex
	surfaces []*Surface
}

func (ss *surfaceSet) add(s *Surface) {
	ss.mu.Lock()
	ss.surfaces = append(ss.surfaces, s)
	ss.mu.Unlock()
}

// repaintOthers repaints every visible surface except skip.
func (ss *surfaceSet) repaintOthers(skip *Surface) {
	ss.mu.Lock()
	surfaces := make([]*Surface, len(ss.surfaces))
	copy(surfaces, ss.surfaces)
	ss.mu.Unlock()

	for _, s := range surfaces {
		if s != skip {
			s.paint()
		}
	}
}

// Surface paints render elements onto a region of a tcell screen,
// centered on the terminal. It implements render.Surface.
type Surface struct {
	mu sync.Mutex

	screen tcell.Screen
	set    *surfaceSet

	width, height int
	elements      []render.Element

	visible bool

	// intensity scales all colors during fades, 0 (black) to 1.
	intensity float64

	// fadeGen invalidates a running fade when a newer one starts.
	fadeGen uint64

	// Last painted region. Clearing blanks only this rectangle so
	// other surfaces sharing the screen keep their content.
	lastX, lastY, lastW, lastH int
}

// NewSurface creates a surface over a screen. Surfaces created by the
// same Backend share a set so clears restore overlapping siblings;
// standalone surfaces get a set of their own.
func NewSurface(screen tcell.Screen) *Surface {
	return newSurfaceInSet(screen, &surfaceSet{})
}

func newSurfaceInSet(screen tcell.Screen, set *surfaceSet) *Surface {
	s := &Surface{screen: screen, set: set}
	set.add(s)
	return s
}

// SetSize records the canvas extents used for centering.
func (s *Surface) SetSize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

// ReplaceAll swaps the whole element list in one batch. Repaints only
// if the surface is visible.
func (s *Surface) ReplaceAll(elements []render.Element) {
	s.mu.Lock()
	s.elements = make([]render.Element, len(elements))
	copy(s.elements, elements)
	repaint := s.visible
	s.mu.Unlock()

	if repaint {
		s.paint()
	}
}

// Insert adds one element on top of the current list.
func (s *Surface) Insert(el render.Element) {
	s.mu.Lock()
	s.elements = append(s.elements, el)
	repaint := s.visible
	s.mu.Unlock()

	if repaint {
		s.paint()
	}
}

// RemoveByID removes the element with the given ID, if present.
func (s *Surface) RemoveByID(id string) {
	s.mu.Lock()
	for i, el := range s.elements {
		if el.ID == id {
			s.elements = append(s.elements[:i], s.elements[i+1:]...)
			break
		}
	}
	repaint := s.visible
	s.mu.Unlock()

	if repaint {
		s.paint()
	}
}

// ShowFade makes the surface visible, stepping intensity up over d.
// Zero duration shows at once.
func (s *Surface) ShowFade(d time.Duration) {
	s.mu.Lock()
	s.visible = true
	s.fadeGen++
	gen := s.fadeGen
	s.mu.Unlock()

	s.fade(gen, d, false)
}

// HideFade steps intensity down over d, then clears the region.
func (s *Surface) HideFade(d time.Duration) {
	s.mu.Lock()
	s.fadeGen++
	gen := s.fadeGen
	s.mu.Unlock()

	s.fade(gen, d, true)
}

// Release hides the surface and drops its elements.
func (s *Surface) Release() {
	s.mu.Lock()
	s.visible = false
	s.fadeGen++
	s.elements = nil
	s.mu.Unlock()

	s.clear()
}

// fade animates intensity toward 1 (in) or 0 (out). A terminal has no
// real alpha, so the fade scales colors toward black in steps.
func (s *Surface) fade(gen uint64, d time.Duration, out bool) {
	target := func(step int) float64 {
		f := float64(step) / float64(fadeSteps)
		if out {
			f = 1 - f
		}
		return f
	}

	if d <= 0 {
		s.applyStep(gen, target(fadeSteps), out)
		return
	}

	interval := d / fadeSteps
	go func() {
		for step := 1; step <= fadeSteps; step++ {
			time.Sleep(interval)
			if !s.applyStep(gen, target(step), out && step == fadeSteps) {
				return
			}
		}
	}()
}

// applyStep sets the intensity and repaints, unless a newer fade
// superseded this one. final marks the last step of a fade-out, which
// clears instead of painting black.
func (s *Surface) applyStep(gen uint64, intensity float64, final bool) bool {
	s.mu.Lock()
	if s.fadeGen != gen {
		s.mu.Unlock()
		return false
	}
	s.intensity = intensity
	if final {
		s.visible = false
	}
	s.mu.Unlock()

	if final {
		s.clear()
		return true
	}
	s.paint()
	return true
}

// paint redraws every element, centered on the screen.
func (s *Surface) paint() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.visible {
		return
	}

	sw, sh := s.screen.Size()
	ox := (sw - s.width) / 2
	oy := (sh - s.height) / 2
	if ox < 0 {
		ox = 0
	}
	if oy < 0 {
		oy = 0
	}
	s.lastX, s.lastY, s.lastW, s.lastH = ox, oy, s.width, s.height

	for _, el := range s.elements {
		s.paintElement(el, ox, oy)
	}
	s.screen.Show()
}

func (s *Surface) paintElement(el render.Element, ox, oy int) {
	x, y := ox+el.X, oy+el.Y

	switch el.Kind {
	case render.KindFrame, render.KindCellBackground:
		s.fillRect(x, y, el.W, el.H, s.style(el.Fill))

	case render.KindIcon, render.KindPlaceholder:
		style := s.style(el.Fill)
		s.fillRect(x, y, el.W, el.H, style)
		if el.Glyph != 0 {
			gx := x + (el.W-runewidth.RuneWidth(el.Glyph))/2
			gy := y + el.H/2
			s.screen.SetContent(gx, gy, el.Glyph, nil, style.Foreground(s.color(el.Color)))
		}

	case render.KindCellBorder:
		s.strokeRect(x, y, el.W, el.H, tcell.StyleDefault.Foreground(s.color(el.Color)))

	case render.KindHotkeyLabel, render.KindDescLabel:
		s.drawText(x, y, el.Text, tcell.StyleDefault.Foreground(s.color(el.Color)))
	}
}

func (s *Surface) fillRect(x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

func (s *Surface) strokeRect(x, y, w, h int, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	for col := x + 1; col < x+w-1; col++ {
		s.screen.SetContent(col, y, tcell.RuneHLine, nil, style)
		s.screen.SetContent(col, y+h-1, tcell.RuneHLine, nil, style)
	}
	for row := y + 1; row < y+h-1; row++ {
		s.screen.SetContent(x, row, tcell.RuneVLine, nil, style)
		s.screen.SetContent(x+w-1, row, tcell.RuneVLine, nil, style)
	}
	s.screen.SetContent(x, y, tcell.RuneULCorner, nil, style)
	s.screen.SetContent(x+w-1, y, tcell.RuneURCorner, nil, style)
	s.screen.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, style)
	s.screen.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, style)
}

func (s *Surface) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		s.screen.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
}

// clear blanks the surface's own painted region only. Screens are
// shared between surfaces, so a parent dismissing must not erase a
// child grid that is still showing.
func (s *Surface) clear() {
	s.mu.Lock()
	x, y, w, h := s.lastX, s.lastY, s.lastW, s.lastH
	s.lastW, s.lastH = 0, 0
	s.mu.Unlock()

	if w == 0 || h == 0 {
		return
	}
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
		}
	}
	s.set.repaintOthers(s)
	s.screen.Show()
}

// style builds a background style for a fill color under the current
// intensity. Dimming for empty cells already happened upstream; the
// element colors arrive final.
func (s *Surface) style(c colorful.Color) tcell.Style {
	return tcell.StyleDefault.Background(s.color(c))
}

// color converts a colorful color to tcell, scaled by the current
// fade intensity.
func (s *Surface) color(c colorful.Color) tcell.Color {
	f := s.intensity
	r := int32(clamp01(c.R*f) * 255)
	g := int32(clamp01(c.G*f) * 255)
	b := int32(clamp01(c.B*f) * 255)
	return tcell.NewRGBColor(r, g, b)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
