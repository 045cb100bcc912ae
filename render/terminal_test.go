package render

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pointer-trail/trail"
)

func newSimScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestTerminal_DrawsGlyphBySize(t *testing.T) {
	screen := newSimScreen(t, 20, 10)
	r := NewTerminal(screen)

	r.Publish(trail.Frame{
		At: time.Unix(1000, 0),
		Glyphs: []trail.Glyph{
			{ID: 0, X: 1, Y: 1, Opacity: 1, Scale: 1},
			{ID: 1, X: 2, Y: 1, Opacity: 0.5, Scale: 0.5},
			{ID: 2, X: 3, Y: 1, Opacity: 0.2, Scale: 0.2},
			{ID: 3, X: 4, Y: 1, Opacity: 0.01, Scale: 0.01},
			{ID: 4, X: -1, Y: 50, Opacity: 1, Scale: 1},
		},
	})

	require.Equal(t, '●', runeAt(screen, 1, 1))
	require.Equal(t, '•', runeAt(screen, 2, 1))
	require.Equal(t, '·', runeAt(screen, 3, 1))
	require.Equal(t, ' ', runeAt(screen, 4, 1))
}

func TestTerminal_NewestGlyphWinsSharedCell(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	r := NewTerminal(screen)

	r.Publish(trail.Frame{Glyphs: []trail.Glyph{
		{ID: 0, X: 2, Y: 2, Opacity: 0.2, Scale: 0.2},
		{ID: 1, X: 2.2, Y: 1.8, Opacity: 0.9, Scale: 0.9},
	}})
	require.Equal(t, '●', runeAt(screen, 2, 2))
}

func TestTerminal_EmptyFrameClears(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	r := NewTerminal(screen)

	r.Publish(trail.Frame{Glyphs: []trail.Glyph{{X: 1, Y: 1, Opacity: 1, Scale: 1}}})
	require.Equal(t, '●', runeAt(screen, 1, 1))

	r.Publish(trail.Frame{})
	require.Equal(t, ' ', runeAt(screen, 1, 1))
}

func TestTerminal_FooterAndRedraw(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	r := NewTerminal(screen)
	r.SetFooter("q quit and more text than fits")

	r.Publish(trail.Frame{Glyphs: []trail.Glyph{{X: 5, Y: 2, Opacity: 1, Scale: 1}}})
	require.Equal(t, 'q', runeAt(screen, 0, 4))
	require.Equal(t, 'q', runeAt(screen, 2, 4))

	screen.SetSize(12, 6)
	r.Redraw()
	require.Equal(t, '●', runeAt(screen, 5, 2))
	require.Equal(t, 'q', runeAt(screen, 0, 5))
}

func TestGlyphRune(t *testing.T) {
	require.Equal(t, '●', GlyphRune(1))
	require.Equal(t, '●', GlyphRune(0.7))
	require.Equal(t, '•', GlyphRune(0.5))
	require.Equal(t, '·', GlyphRune(0.33))
	require.Equal(t, '·', GlyphRune(0))
}
