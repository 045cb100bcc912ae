package render

import "github.com/lixenwraith/pointer-trail/constants"

// RGB is a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBackground = RGB{constants.BackgroundR, constants.BackgroundG, constants.BackgroundB}
	RGBTrailInner = RGB{constants.TrailInnerR, constants.TrailInnerG, constants.TrailInnerB}
	RGBTrailOuter = RGB{constants.TrailOuterR, constants.TrailOuterG, constants.TrailOuterB}
)

// clamp converts float to uint8 without wrapping
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Blend composites src over c with the given alpha
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}

	inv := 1.0 - alpha

	return RGB{
		R: clamp(float64(src.R)*alpha + float64(c.R)*inv + 0.5),
		G: clamp(float64(src.G)*alpha + float64(c.G)*inv + 0.5),
		B: clamp(float64(src.B)*alpha + float64(c.B)*inv + 0.5),
	}
}

// Lerp linearly interpolates from a to b
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return RGB{
		R: uint8(float64(a.R) + t*float64(int(b.R)-int(a.R))),
		G: uint8(float64(a.G) + t*float64(int(b.G)-int(a.G))),
		B: uint8(float64(a.B) + t*float64(int(b.B)-int(a.B))),
	}
}

// TrailColor returns the cell color of a glyph at the given opacity over bg
// Young points lean to the inner blue, old points fade through violet into the background
func TrailColor(bg RGB, opacity float64) RGB {
	hue := Lerp(RGBTrailOuter, RGBTrailInner, opacity)
	return Blend(bg, hue, opacity)
}
