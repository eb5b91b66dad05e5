package canvas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"ktirio-backend/internal/canvas"
)

func TestCanvasPoint_IdentityAtFullZoom(t *testing.T) {
	rect := canvas.Rect{Left: 10, Top: 20, Width: 800, Height: 600}
	ev := canvas.PointerEvent{ClientX: 110, ClientY: 220}

	p, ok := canvas.CanvasPoint(ev, rect, 1.0)

	assert.True(t, ok)
	assert.Equal(t, 100.0, p.X)
	assert.Equal(t, 200.0, p.Y)
}

func TestCanvasPoint_DividesByZoom(t *testing.T) {
	rect := canvas.Rect{Left: 0, Top: 0, Width: 800, Height: 600}
	ev := canvas.PointerEvent{ClientX: 200, ClientY: 100}

	p, ok := canvas.CanvasPoint(ev, rect, 2.0)

	assert.True(t, ok)
	assert.Equal(t, 100.0, p.X)
	assert.Equal(t, 50.0, p.Y)
}

func TestCanvasPoint_FirstTouchWins(t *testing.T) {
	rect := canvas.Rect{Left: 0, Top: 0, Width: 800, Height: 600}
	ev := canvas.PointerEvent{
		ClientX: 999,
		ClientY: 999,
		Touches: []canvas.TouchPoint{
			{ClientX: 40, ClientY: 60},
			{ClientX: 500, ClientY: 500},
		},
	}

	p, ok := canvas.CanvasPoint(ev, rect, 1.0)

	assert.True(t, ok)
	assert.Equal(t, 40.0, p.X)
	assert.Equal(t, 60.0, p.Y)
}

func TestCanvasPoint_UnmountedCanvas(t *testing.T) {
	ev := canvas.PointerEvent{ClientX: 100, ClientY: 100}

	_, ok := canvas.CanvasPoint(ev, canvas.Rect{}, 1.0)

	assert.False(t, ok)
}
