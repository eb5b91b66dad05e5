package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"ktirio-backend/internal/editor"
)

func TestCanvasSize_ContainFit(t *testing.T) {
	// Wide container, tall-ish image: height binds.
	w, h := editor.CanvasSize(400, 300, 1600, 600)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	// Narrow container: width binds.
	w, h = editor.CanvasSize(400, 300, 400, 600)
	assert.Equal(t, 400, w)
	assert.Equal(t, 300, h)
}

func TestCanvasSize_ZeroContainerUsesImageSize(t *testing.T) {
	w, h := editor.CanvasSize(640, 480, 0, 0)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}

func TestFitToCanvas_ScalesToExactDimensions(t *testing.T) {
	src := pngImage(t, 200, 100)

	fitted, err := editor.FitToCanvas(src, 100, 50)

	assert.NoError(t, err)
	w, h, err := fitted.Dimensions()
	assert.NoError(t, err)
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, h)
	assert.Equal(t, "image/png", fitted.Mime)
}

func TestFitToCanvas_PassthroughWhenAlreadyFitted(t *testing.T) {
	src := pngImage(t, 100, 50)

	fitted, err := editor.FitToCanvas(src, 100, 50)

	assert.NoError(t, err)
	assert.Equal(t, src.Data, fitted.Data)
}

func TestFitToCanvas_RejectsGarbage(t *testing.T) {
	_, err := editor.FitToCanvas(editor.Image{Data: []byte("not an image")}, 100, 50)

	assert.Error(t, err)
}

func TestImage_Dimensions(t *testing.T) {
	img := pngImage(t, 64, 48)

	w, h, err := img.Dimensions()

	assert.NoError(t, err)
	assert.Equal(t, 64, w)
	assert.Equal(t, 48, h)
}
