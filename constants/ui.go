package constants

// Glyph appearance in the terminal
const (
	// GlyphLarge is drawn for points with scale above GlyphLargeThreshold
	GlyphLarge = '●'
	// GlyphMedium is drawn for points with scale above GlyphMediumThreshold
	GlyphMedium = '•'
	// GlyphSmall is drawn for any other visible point
	GlyphSmall = '·'

	GlyphLargeThreshold  = 0.66
	GlyphMediumThreshold = 0.33

	// GlyphMinOpacity below which a glyph is not drawn at all
	GlyphMinOpacity = 0.02
)

// Trail gradient colors (inner -> outer), alpha scaled by opacity
const (
	TrailInnerR, TrailInnerG, TrailInnerB = 59, 130, 246
	TrailOuterR, TrailOuterG, TrailOuterB = 139, 92, 246

	// TrailInnerAlpha and TrailOuterAlpha are the gradient alphas at full opacity
	TrailInnerAlpha = 0.8
	TrailOuterAlpha = 0.3
)

// Terminal background (Tokyo Night)
const (
	BackgroundR, BackgroundG, BackgroundB = 26, 27, 38
)

// Snapshot geometry
const (
	// SnapshotGlyphRadius is the dot radius in pixels at scale 1 (12px dot)
	SnapshotGlyphRadius = 6.0

	// SnapshotCellWidth and SnapshotCellHeight map terminal cells to pixels
	SnapshotCellWidth  = 8
	SnapshotCellHeight = 16
)
