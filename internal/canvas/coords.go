package canvas

// Point is a position in canvas space (intrinsic pixel coordinates of the
// overlay raster, independent of the current zoom level).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is the canvas element's bounding box in client (screen) space.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TouchPoint is a single touch contact in client space.
type TouchPoint struct {
	ClientX float64 `json:"client_x"`
	ClientY float64 `json:"client_y"`
}

// PointerEvent is a mouse or touch event as reported by the view layer.
// For touch input only the first contact point is used.
type PointerEvent struct {
	ClientX float64      `json:"client_x"`
	ClientY float64      `json:"client_y"`
	Touches []TouchPoint `json:"touches,omitempty"`
}

// CanvasPoint maps a pointer event into canvas space.
//
// The drawing surface is kept at a fixed intrinsic resolution and zoom is
// applied as a view-layer transform on its container, so client coordinates
// are always divided by the current zoom factor. This is the single mapping
// rule for the whole editor; no other coordinate math exists elsewhere.
//
// Returns ok=false when the canvas is not mounted (zero bounding box).
func CanvasPoint(ev PointerEvent, rect Rect, zoom float64) (Point, bool) {
	if rect.Width == 0 && rect.Height == 0 {
		return Point{}, false
	}
	if zoom <= 0 {
		zoom = 1
	}

	clientX, clientY := ev.ClientX, ev.ClientY
	if len(ev.Touches) > 0 {
		clientX = ev.Touches[0].ClientX
		clientY = ev.Touches[0].ClientY
	}

	return Point{
		X: (clientX - rect.Left) / zoom,
		Y: (clientY - rect.Top) / zoom,
	}, true
}
