package trail

import "time"

// Project maps a point to its glyph at now
// Opacity falls linearly from 1 at age 0 to 0 at age >= lifetime; scale follows opacity
// Pure: the same inputs always give the same glyph
func Project(p Point, now time.Time, lifetime time.Duration) Glyph {
	progress := 1.0
	if lifetime > 0 {
		progress = float64(p.Age(now)) / float64(lifetime)
	}
	progress = clamp01(progress)

	opacity := max(0, 1-progress)

	return Glyph{
		ID:      p.ID,
		X:       p.X,
		Y:       p.Y,
		Opacity: opacity,
		Scale:   opacity,
	}
}

// ProjectAll projects points in order into a frame stamped with now
func ProjectAll(points []Point, now time.Time, lifetime time.Duration) Frame {
	glyphs := make([]Glyph, len(points))
	for i, p := range points {
		glyphs[i] = Project(p, now, lifetime)
	}
	return Frame{At: now, Glyphs: glyphs}
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
