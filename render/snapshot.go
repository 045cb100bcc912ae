package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/gogpu/gg"

	"github.com/lixenwraith/pointer-trail/constants"
	"github.com/lixenwraith/pointer-trail/trail"
)

// Snapshot rasterizes trail frames to images, mapping terminal cells to pixels
// Each glyph is a radial-gradient dot, blue at the center fading to violet at the rim,
// with the glyph opacity applied on top of the gradient alpha
type Snapshot struct {
	cols, rows            int
	cellWidth, cellHeight float64
	background            gg.RGBA
}

// NewSnapshot creates a rasterizer for a cols x rows cell grid on a transparent background
func NewSnapshot(cols, rows int) *Snapshot {
	return &Snapshot{
		cols:       max(cols, 1),
		rows:       max(rows, 1),
		cellWidth:  constants.SnapshotCellWidth,
		cellHeight: constants.SnapshotCellHeight,
		background: gg.Transparent,
	}
}

// SetBackground replaces the transparent background with an opaque color
func (s *Snapshot) SetBackground(bg RGB) {
	s.background = toGG(bg, 1)
}

// Bounds returns the output image size in pixels
func (s *Snapshot) Bounds() (width, height int) {
	return int(float64(s.cols) * s.cellWidth), int(float64(s.rows) * s.cellHeight)
}

// Render draws frame and returns the image
func (s *Snapshot) Render(frame trail.Frame) (img image.Image, err error) {
	width, height := s.Bounds()
	dc := gg.NewContext(width, height)
	defer func() {
		if cerr := dc.Close(); cerr != nil && err == nil {
			img, err = nil, fmt.Errorf("failed to close drawing context: %w", cerr)
		}
	}()

	dc.ClearWithColor(s.background)

	for _, g := range frame.Glyphs {
		if g.Opacity <= 0 || g.Scale <= 0 {
			continue
		}
		cx := (g.X + 0.5) * s.cellWidth
		cy := (g.Y + 0.5) * s.cellHeight
		radius := constants.SnapshotGlyphRadius * g.Scale

		brush := gg.NewRadialGradientBrush(cx, cy, 0, radius).
			AddColorStop(0, toGG(RGBTrailInner, constants.TrailInnerAlpha*g.Opacity*g.Opacity)).
			AddColorStop(1, toGG(RGBTrailOuter, constants.TrailOuterAlpha*g.Opacity*g.Opacity))
		dc.SetFillBrush(brush)
		dc.DrawCircle(cx, cy, radius)
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("failed to draw glyph %d: %w", g.ID, err)
		}
	}

	// Pending accelerated shapes must land in the pixmap before it is read
	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("failed to flush drawing context: %w", err)
	}
	return dc.Image(), nil
}

// WritePNG encodes the rendered frame as PNG to w
func (s *Snapshot) WritePNG(w io.Writer, frame trail.Frame) error {
	img, err := s.Render(frame)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// SavePNG writes the rendered frame to path
func (s *Snapshot) SavePNG(path string, frame trail.Frame) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close snapshot file: %w", cerr)
		}
	}()
	return s.WritePNG(f, frame)
}

func toGG(c RGB, alpha float64) gg.RGBA {
	return gg.RGBA2(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, alpha)
}
