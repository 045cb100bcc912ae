package render

import (
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pointer-trail/constants"
	"github.com/lixenwraith/pointer-trail/trail"
)

// Terminal draws trail frames onto a tcell screen, one cell per glyph
// Glyphs are drawn in frame order so the newest point wins a shared cell
type Terminal struct {
	screen tcell.Screen
	bg     RGB

	mu     sync.Mutex
	footer string
	last   trail.Frame
}

// NewTerminal creates a renderer for screen
func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		bg:     RGBBackground,
	}
}

// SetFooter sets a status line drawn on the last row of every frame
func (r *Terminal) SetFooter(text string) {
	r.mu.Lock()
	r.footer = text
	r.mu.Unlock()
}

// Publish implements trail.Publisher
func (r *Terminal) Publish(frame trail.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = frame
	r.draw()
}

// Redraw repaints the last frame, used after a resize
func (r *Terminal) Redraw() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screen.Sync()
	r.draw()
}

// draw requires r.mu
func (r *Terminal) draw() {
	bgStyle := tcell.StyleDefault.Background(RGBToTcell(r.bg))
	r.screen.SetStyle(bgStyle)
	r.screen.Clear()

	width, height := r.screen.Size()

	for _, g := range r.last.Glyphs {
		if g.Opacity < constants.GlyphMinOpacity {
			continue
		}
		x := int(math.Round(g.X))
		y := int(math.Round(g.Y))
		if x < 0 || x >= width || y < 0 || y >= height {
			continue
		}
		style := bgStyle.Foreground(RGBToTcell(TrailColor(r.bg, g.Opacity)))
		r.screen.SetContent(x, y, GlyphRune(g.Scale), nil, style)
	}

	if r.footer != "" && height > 0 {
		footerStyle := bgStyle.Foreground(RGBToTcell(Lerp(r.bg, RGBTrailOuter, 0.6)))
		col := 0
		for _, ch := range r.footer {
			if col >= width {
				break
			}
			r.screen.SetContent(col, height-1, ch, nil, footerStyle)
			col++
		}
	}

	r.screen.Show()
}

// GlyphRune picks the dot size for a glyph scale
func GlyphRune(scale float64) rune {
	switch {
	case scale > constants.GlyphLargeThreshold:
		return constants.GlyphLarge
	case scale > constants.GlyphMediumThreshold:
		return constants.GlyphMedium
	default:
		return constants.GlyphSmall
	}
}
