package canvas

import (
	"image"
	"image/color"
	"math"
)

// BrushMode selects the stroke composition rule.
type BrushMode string

const (
	BrushDraw  BrushMode = "draw"
	BrushErase BrushMode = "erase"
)

// Brush size limits in canvas pixels, matching the slider range the editor
// exposes. Sizes outside the range are clamped, never rejected.
const (
	MinBrushSize = 5
	MaxBrushSize = 100
)

// maskColor is the constant semi-transparent paint for draw mode. The mask is
// a boolean selection indicator: covered pixels are set to exactly this value,
// so overlapping strokes never get more opaque than a single stroke.
var maskColor = color.RGBA{R: 255, G: 255, B: 255, A: 178}

// MaskEngine is the free-hand mask painter. It owns a transparent overlay
// raster congruent with the working image and is the only writer to it.
//
// The engine is a two-state machine (idle / drawing). BeginStroke enters
// drawing and records the start position, ContinueStroke paints a segment from
// the last position, EndStroke returns to idle. All mutation is synchronous on
// the caller's goroutine.
type MaskEngine struct {
	overlay *image.RGBA

	drawing bool
	lastPos Point
}

// NewMaskEngine allocates a fully transparent overlay of the given intrinsic
// canvas dimensions.
func NewMaskEngine(width, height int) *MaskEngine {
	return &MaskEngine{
		overlay: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Bounds returns the overlay dimensions.
func (m *MaskEngine) Bounds() image.Rectangle {
	return m.overlay.Bounds()
}

// Drawing reports whether a stroke is in progress.
func (m *MaskEngine) Drawing() bool {
	return m.drawing
}

// BeginStroke enters the drawing state at p and deposits the initial dab.
// A pointer-down immediately followed by pointer-up must still leave a
// brush-sized mark, so the dab is stamped here rather than waiting for
// movement.
func (m *MaskEngine) BeginStroke(p Point, brushSize int, mode BrushMode) {
	m.drawing = true
	m.lastPos = p
	m.stampDisc(p, brushSize, mode)
}

// ContinueStroke paints a segment from the last position to p. It is a no-op
// while idle. Brush size and mode are read per segment, so changing either
// mid-stroke takes effect on the next segment.
func (m *MaskEngine) ContinueStroke(p Point, brushSize int, mode BrushMode) {
	if !m.drawing {
		return
	}
	m.strokeSegment(m.lastPos, p, brushSize, mode)
	m.lastPos = p
}

// EndStroke leaves the drawing state. Safe to call while idle (pointer-leave
// events arrive regardless of state).
func (m *MaskEngine) EndStroke() {
	m.drawing = false
	m.lastPos = Point{}
}

// Clear wipes the overlay to fully transparent.
func (m *MaskEngine) Clear() {
	pix := m.overlay.Pix
	for i := range pix {
		pix[i] = 0
	}
}

// Image exposes the overlay raster for inspection and serialization.
func (m *MaskEngine) Image() *image.RGBA {
	return m.overlay
}

// strokeSegment stamps discs along the segment at sub-pixel intervals, which
// gives round caps and joins and leaves no gaps on slow strokes.
func (m *MaskEngine) strokeSegment(from, to Point, brushSize int, mode BrushMode) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		m.stampDisc(to, brushSize, mode)
		return
	}

	steps := int(math.Ceil(dist * 2))
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		m.stampDisc(Point{X: from.X + dx*t, Y: from.Y + dy*t}, brushSize, mode)
	}
}

// stampDisc sets every pixel within brushSize/2 of center. Draw mode writes
// the constant mask color, erase mode zeroes the pixel regardless of what was
// painted there.
func (m *MaskEngine) stampDisc(center Point, brushSize int, mode BrushMode) {
	if brushSize < MinBrushSize {
		brushSize = MinBrushSize
	} else if brushSize > MaxBrushSize {
		brushSize = MaxBrushSize
	}
	radius := float64(brushSize) / 2

	b := m.overlay.Bounds()
	minX := int(math.Floor(center.X - radius))
	maxX := int(math.Ceil(center.X + radius))
	minY := int(math.Floor(center.Y - radius))
	maxY := int(math.Ceil(center.Y + radius))
	if minX < b.Min.X {
		minX = b.Min.X
	}
	if maxX > b.Max.X-1 {
		maxX = b.Max.X - 1
	}
	if minY < b.Min.Y {
		minY = b.Min.Y
	}
	if maxY > b.Max.Y-1 {
		maxY = b.Max.Y - 1
	}

	r2 := radius * radius
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			ddx := float64(x) + 0.5 - center.X
			ddy := float64(y) + 0.5 - center.Y
			if ddx*ddx+ddy*ddy > r2 {
				continue
			}
			off := m.overlay.PixOffset(x, y)
			if mode == BrushErase {
				m.overlay.Pix[off] = 0
				m.overlay.Pix[off+1] = 0
				m.overlay.Pix[off+2] = 0
				m.overlay.Pix[off+3] = 0
			} else {
				m.overlay.Pix[off] = maskColor.R
				m.overlay.Pix[off+1] = maskColor.G
				m.overlay.Pix[off+2] = maskColor.B
				m.overlay.Pix[off+3] = maskColor.A
			}
		}
	}
}
