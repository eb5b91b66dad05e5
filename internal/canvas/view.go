package canvas

// Zoom limits: 20% to 500%.
const (
	MinZoom = 0.2
	MaxZoom = 5.0

	zoomStep = 1.1
)

// Offset is the pan translation in client pixels.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ViewTransform holds the zoom/pan state of the canvas viewport. It is
// decoupled from drawing: the mask engine never reads it directly, only the
// coordinate mapper consumes the zoom factor.
type ViewTransform struct {
	zoom      float64
	panOffset Offset

	panning  bool
	panStart Offset
}

func NewViewTransform() *ViewTransform {
	return &ViewTransform{zoom: 1}
}

// Zoom returns the current zoom scalar.
func (v *ViewTransform) Zoom() float64 {
	return v.zoom
}

// PanOffset returns the current pan translation.
func (v *ViewTransform) PanOffset() Offset {
	return v.panOffset
}

// Panning reports whether a drag is in progress.
func (v *ViewTransform) Panning() bool {
	return v.panning
}

// HandleWheel applies one scroll tick. Zoom only engages while ctrl/cmd is
// held, to keep plain scrolling as page scroll. Negative deltaY (scroll up)
// zooms in by 1.1, positive zooms out by 1/1.1, clamped to [0.2, 5.0].
func (v *ViewTransform) HandleWheel(deltaY float64, modifier bool) {
	if !modifier {
		return
	}
	if deltaY < 0 {
		v.zoom *= zoomStep
	} else {
		v.zoom /= zoomStep
	}
	if v.zoom < MinZoom {
		v.zoom = MinZoom
	} else if v.zoom > MaxZoom {
		v.zoom = MaxZoom
	}
}

// StartPan begins a drag at the given client position. The caller gates this
// on "no drawing tool active and an image is loaded".
func (v *ViewTransform) StartPan(clientX, clientY float64) {
	v.panning = true
	v.panStart = Offset{X: clientX, Y: clientY}
}

// MovePan accumulates the drag delta into the pan offset.
func (v *ViewTransform) MovePan(clientX, clientY float64) {
	if !v.panning {
		return
	}
	v.panOffset.X += clientX - v.panStart.X
	v.panOffset.Y += clientY - v.panStart.Y
	v.panStart = Offset{X: clientX, Y: clientY}
}

// EndPan finishes the drag. At exactly 100% zoom the view snaps back to the
// origin so the canvas re-centers.
func (v *ViewTransform) EndPan() {
	if !v.panning {
		return
	}
	v.panning = false
	if v.zoom == 1 {
		v.panOffset = Offset{}
	}
}

// Reset returns to 100% zoom centered at the origin. Called whenever a new
// base image is loaded.
func (v *ViewTransform) Reset() {
	v.zoom = 1
	v.panOffset = Offset{}
	v.panning = false
}
