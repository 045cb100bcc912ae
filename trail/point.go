// Package trail implements a time-decayed pointer trail: throttled sampling of pointer motion,
// an ordered store of live sample points, and a pure projection of each point to a fading glyph.
package trail

import "time"

// Point is one accepted pointer sample
// ID is unique and strictly increasing for the lifetime of the owning Trail and is never reused
type Point struct {
	ID        uint64
	X, Y      float64
	CreatedAt time.Time
}

// Age returns how long the point has been alive at now
func (p Point) Age(now time.Time) time.Duration {
	return now.Sub(p.CreatedAt)
}

// Glyph is the visual descriptor of a live point
type Glyph struct {
	ID      uint64
	X, Y    float64
	Opacity float64
	Scale   float64
}

// Frame is the projected trail published by one tick, in store order
type Frame struct {
	At     time.Time
	Glyphs []Glyph
}

// Empty reports whether the frame has nothing to draw
func (f Frame) Empty() bool {
	return len(f.Glyphs) == 0
}
