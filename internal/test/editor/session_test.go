package editor_test

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"ktirio-backend/internal/canvas"
	"ktirio-backend/internal/editor"
	"ktirio-backend/internal/gemini"
)

// pngImage builds an opaque PNG payload of the given dimensions.
func pngImage(t *testing.T, width, height int) editor.Image {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return editor.Image{Data: buf.Bytes(), Mime: "image/png"}
}

type stubGenerator struct {
	calls   int
	lastReq gemini.EditRequest
	result  *gemini.EditResult
	err     error
}

func (g *stubGenerator) EditImage(req gemini.EditRequest) (*gemini.EditResult, error) {
	g.calls++
	g.lastReq = req
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

func newTestSession(t *testing.T, gen *stubGenerator) *editor.Session {
	t.Helper()
	base := pngImage(t, 100, 80)
	return editor.NewSession(uuid.New(), "Sala de Estar", base, nil, gen, nil)
}

// drawMask paints a stroke through the session so the mask is non-empty.
func drawMask(t *testing.T, s *editor.Session) {
	t.Helper()
	s.ToggleTool(editor.ToolDraw)
	rect := canvas.Rect{Left: 0, Top: 0, Width: 100, Height: 80}
	s.BeginStroke(canvas.PointerEvent{ClientX: 30, ClientY: 40}, rect)
	s.ContinueStroke(canvas.PointerEvent{ClientX: 70, ClientY: 40}, rect)
	s.EndStroke(canvas.PointerEvent{ClientX: 70, ClientY: 40})
	s.ToggleTool(editor.ToolDraw) // back to navigation
	assert.False(t, s.MaskEmpty())
}

func TestSession_GenerateSuccess(t *testing.T) {
	result := pngImage(t, 100, 80)
	gen := &stubGenerator{result: &gemini.EditResult{
		Image:    result.Data,
		MimeType: "image/png",
		Text:     "Adicionei um sofá azul.",
	}}
	s := newTestSession(t, gen)
	drawMask(t, s)
	s.SetPrompt("adicionar um sofá azul")

	out, err := s.Generate("adicionar um sofá azul", nil)

	assert.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 0, out.VersionIndex)
	assert.Equal(t, "Adicionei um sofá azul.", out.Text)

	length, current := s.History()
	assert.Equal(t, 1, length)
	assert.Equal(t, 0, current)

	// Mask and prompt clear so the next edit starts fresh.
	assert.True(t, s.MaskEmpty())
	assert.Empty(t, s.Prompt())
	assert.False(t, s.Generating())
	assert.Empty(t, s.LastError())
}

func TestSession_GenerateSendsMaskAndPrompt(t *testing.T) {
	result := pngImage(t, 100, 80)
	gen := &stubGenerator{result: &gemini.EditResult{Image: result.Data, MimeType: "image/png"}}
	s := newTestSession(t, gen)
	drawMask(t, s)

	_, err := s.Generate("  trocar o piso  ", nil)

	assert.NoError(t, err)
	assert.Equal(t, "trocar o piso", gen.lastReq.Prompt)
	assert.NotEmpty(t, gen.lastReq.BaseImage.Data)
	assert.NotEmpty(t, gen.lastReq.Mask.Data)
	assert.Equal(t, "image/png", gen.lastReq.Mask.Mime)
}

func TestSession_GenerateEmptyPrompt(t *testing.T) {
	gen := &stubGenerator{}
	s := newTestSession(t, gen)
	drawMask(t, s)

	_, err := s.Generate("   ", nil)

	assert.ErrorIs(t, err, editor.ErrEmptyPrompt)
	assert.True(t, editor.IsValidation(err))
	assert.Zero(t, gen.calls)
	assert.Equal(t, "please provide a prompt", s.LastError())
}

func TestSession_GenerateWithoutImage(t *testing.T) {
	gen := &stubGenerator{}
	s := editor.NewSession(uuid.New(), "Vazio", editor.Image{}, nil, gen, nil)

	_, err := s.Generate("adicionar um sofá", nil)

	assert.ErrorIs(t, err, editor.ErrNoImageLoaded)
	assert.Zero(t, gen.calls)
	assert.Equal(t, "please upload an image first", s.LastError())
}

func TestSession_GenerateFailurePreservesMask(t *testing.T) {
	gen := &stubGenerator{err: fmt.Errorf("wrap: %w", gemini.ErrRejected)}
	s := newTestSession(t, gen)
	drawMask(t, s)

	_, err := s.Generate("adicionar um sofá azul", nil)

	assert.Error(t, err)
	// The mask survives so the user can retry without re-drawing.
	assert.False(t, s.MaskEmpty())

	length, current := s.History()
	assert.Equal(t, 0, length)
	assert.Equal(t, editor.OriginalVersion, current)
	assert.False(t, s.Generating())
	assert.Contains(t, s.LastError(), "could not process")
}

func TestSession_GenerateNoImageReturned(t *testing.T) {
	gen := &stubGenerator{err: gemini.ErrNoImage}
	s := newTestSession(t, gen)
	drawMask(t, s)

	_, err := s.Generate("adicionar um sofá azul", nil)

	assert.ErrorIs(t, err, gemini.ErrNoImage)
	assert.Equal(t, "The AI did not return an image. Please try again.", s.LastError())

	s.DismissError()
	assert.Empty(t, s.LastError())
}

func TestSession_SelectVersionNeverTruncates(t *testing.T) {
	result := pngImage(t, 100, 80)
	gen := &stubGenerator{result: &gemini.EditResult{Image: result.Data, MimeType: "image/png"}}
	s := newTestSession(t, gen)

	for i := 0; i < 2; i++ {
		drawMask(t, s)
		_, err := s.Generate("editar", nil)
		assert.NoError(t, err)
	}

	assert.NoError(t, s.SelectVersion(0))

	drawMask(t, s)
	_, err := s.Generate("editar", nil)
	assert.NoError(t, err)

	length, current := s.History()
	assert.Equal(t, 3, length)
	assert.Equal(t, 2, current)
}

func TestSession_SelectOriginal(t *testing.T) {
	result := pngImage(t, 100, 80)
	gen := &stubGenerator{result: &gemini.EditResult{Image: result.Data, MimeType: "image/png"}}
	s := newTestSession(t, gen)
	drawMask(t, s)
	_, err := s.Generate("editar", nil)
	assert.NoError(t, err)

	assert.NoError(t, s.SelectVersion(editor.OriginalVersion))

	img, ok := s.CurrentImage()
	assert.True(t, ok)
	base := pngImage(t, 100, 80)
	assert.Equal(t, base.Data, img.Data)

	length, _ := s.History()
	assert.Equal(t, 1, length)
}

func TestSession_SelectVersionClearsMask(t *testing.T) {
	result := pngImage(t, 100, 80)
	gen := &stubGenerator{result: &gemini.EditResult{Image: result.Data, MimeType: "image/png"}}
	s := newTestSession(t, gen)
	drawMask(t, s)
	_, err := s.Generate("editar", nil)
	assert.NoError(t, err)

	drawMask(t, s)
	assert.NoError(t, s.SelectVersion(editor.OriginalVersion))

	assert.True(t, s.MaskEmpty())
}

func TestSession_EndStrokeOpensPromptForSelectTool(t *testing.T) {
	s := newTestSession(t, &stubGenerator{})
	s.ToggleTool(editor.ToolSelect)
	rect := canvas.Rect{Left: 0, Top: 0, Width: 100, Height: 80}

	s.BeginStroke(canvas.PointerEvent{ClientX: 30, ClientY: 40}, rect)
	anchor := s.EndStroke(canvas.PointerEvent{ClientX: 31, ClientY: 41})

	assert.NotNil(t, anchor)
	assert.Equal(t, 31.0, anchor.X)
	assert.Equal(t, 41.0, anchor.Y)
}

func TestSession_EndStrokeWithoutDrawingToolOpensNothing(t *testing.T) {
	s := newTestSession(t, &stubGenerator{})
	rect := canvas.Rect{Left: 0, Top: 0, Width: 100, Height: 80}

	// No tool active: the stroke never registers.
	s.BeginStroke(canvas.PointerEvent{ClientX: 30, ClientY: 40}, rect)
	anchor := s.EndStroke(canvas.PointerEvent{ClientX: 30, ClientY: 40})

	assert.Nil(t, anchor)
	assert.True(t, s.MaskEmpty())
}

func TestSession_ToggleToolDeselects(t *testing.T) {
	s := newTestSession(t, &stubGenerator{})

	s.ToggleTool(editor.ToolDraw)
	assert.Equal(t, editor.ToolDraw, s.Tool())

	s.ToggleTool(editor.ToolDraw)
	assert.Equal(t, editor.ToolNone, s.Tool())
}

func TestSession_BrushSizeClamps(t *testing.T) {
	s := newTestSession(t, &stubGenerator{})

	assert.Equal(t, 44, s.State().BrushSize)

	s.SetBrushSize(300)
	assert.Equal(t, canvas.MaxBrushSize, s.State().BrushSize)

	s.SetBrushSize(1)
	assert.Equal(t, canvas.MinBrushSize, s.State().BrushSize)
}

func TestSession_PanGatedOnActiveTool(t *testing.T) {
	s := newTestSession(t, &stubGenerator{})
	s.ToggleTool(editor.ToolDraw)
	s.Wheel(-100, true) // zoomed, EndPan keeps the offset

	s.StartPan(0, 0)
	s.MovePan(50, 50)
	s.EndPan()

	assert.Equal(t, canvas.Offset{}, s.State().PanOffset)
}

func TestSession_SetBaseImageResets(t *testing.T) {
	var persisted []editor.ProjectUpdate
	persist := func(projectID uuid.UUID, update editor.ProjectUpdate) error {
		persisted = append(persisted, update)
		return nil
	}

	result := pngImage(t, 100, 80)
	gen := &stubGenerator{result: &gemini.EditResult{Image: result.Data, MimeType: "image/png"}}
	base := pngImage(t, 100, 80)
	s := editor.NewSession(uuid.New(), "Sala", base, nil, gen, persist)

	drawMask(t, s)
	_, err := s.Generate("editar", nil)
	assert.NoError(t, err)

	err = s.SetBaseImage(pngImage(t, 640, 480), 800, 600)
	assert.NoError(t, err)

	state := s.State()
	assert.Equal(t, 0, state.HistoryLength)
	assert.Equal(t, editor.OriginalVersion, state.CurrentVersion)
	assert.True(t, state.MaskEmpty)
	assert.Equal(t, 1.0, state.Zoom)
	assert.Empty(t, state.Prompt)

	// Generation persisted one version, the upload persisted the base.
	assert.Len(t, persisted, 2)
	assert.NotNil(t, persisted[0].NewVersion)
	assert.NotNil(t, persisted[1].BaseImage)
}

func TestSession_AddAndRemoveReferences(t *testing.T) {
	s := newTestSession(t, &stubGenerator{})
	ref := editor.ReferenceImage{
		ID:    uuid.New(),
		Name:  "sofa-azul",
		Types: []editor.ReferenceType{editor.ReferenceObject},
		Image: pngImage(t, 10, 10),
	}

	s.AddReference(ref)
	assert.Len(t, s.References(), 1)

	assert.True(t, s.RemoveReference(ref.ID))
	assert.Empty(t, s.References())
	assert.False(t, s.RemoveReference(ref.ID))
}

func TestSession_GenerateStartedHook(t *testing.T) {
	result := pngImage(t, 100, 80)
	gen := &stubGenerator{result: &gemini.EditResult{Image: result.Data, MimeType: "image/png"}}
	s := newTestSession(t, gen)
	drawMask(t, s)

	var started []string
	s.OnGenerateStarted(func(prompt string) { started = append(started, prompt) })

	// A rejected submission never announces a generation.
	_, err := s.Generate("   ", nil)
	assert.ErrorIs(t, err, editor.ErrEmptyPrompt)
	assert.Empty(t, started)
	assert.Zero(t, gen.calls)

	_, err = s.Generate("  trocar o piso  ", nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"trocar o piso"}, started)
}

func TestSession_GenerateStartedHookFiresOnFailedAttempt(t *testing.T) {
	gen := &stubGenerator{err: gemini.ErrNoImage}
	s := newTestSession(t, gen)
	drawMask(t, s)

	fired := 0
	s.OnGenerateStarted(func(string) { fired++ })

	_, err := s.Generate("trocar o piso", nil)

	assert.Error(t, err)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, fired)
}

func TestSession_BranchImageFollowsSelection(t *testing.T) {
	gen := &stubGenerator{result: &gemini.EditResult{Image: pngImage(t, 100, 80).Data, MimeType: "image/png"}}
	s := newTestSession(t, gen)

	drawMask(t, s)
	_, err := s.Generate("primeira edição", nil)
	assert.NoError(t, err)

	gen.result = &gemini.EditResult{Image: pngImage(t, 50, 40).Data, MimeType: "image/png"}
	drawMask(t, s)
	_, err = s.Generate("segunda edição", nil)
	assert.NoError(t, err)

	// The branch seed follows the current selection; the latest entry first.
	v1, err := s.HistoryEntry(1)
	assert.NoError(t, err)
	img, ok := s.BranchImage()
	assert.True(t, ok)
	assert.Equal(t, v1.Data, img.Data)

	assert.NoError(t, s.SelectVersion(0))
	v0, err := s.HistoryEntry(0)
	assert.NoError(t, err)
	img, ok = s.BranchImage()
	assert.True(t, ok)
	assert.Equal(t, v0.Data, img.Data)

	// Selecting the original falls back to the base upload.
	assert.NoError(t, s.SelectVersion(editor.OriginalVersion))
	img, ok = s.BranchImage()
	assert.True(t, ok)
	assert.Equal(t, pngImage(t, 100, 80).Data, img.Data)
}

func TestSession_BranchImageWithoutImages(t *testing.T) {
	s := editor.NewSession(uuid.New(), "Vazio", editor.Image{}, nil, &stubGenerator{}, nil)

	_, ok := s.BranchImage()

	assert.False(t, ok)
}

func TestSession_GenerateIncludesReferences(t *testing.T) {
	result := pngImage(t, 100, 80)
	gen := &stubGenerator{result: &gemini.EditResult{Image: result.Data, MimeType: "image/png"}}
	s := newTestSession(t, gen)
	drawMask(t, s)

	s.AddReference(editor.ReferenceImage{
		ID:    uuid.New(),
		Name:  "sofa-azul",
		Types: []editor.ReferenceType{editor.ReferenceObject, editor.ReferenceStyle},
		Image: pngImage(t, 10, 10),
	})

	_, err := s.Generate("usar /sofa-azul aqui", nil)

	assert.NoError(t, err)
	assert.Len(t, gen.lastReq.References, 1)
	assert.Equal(t, "sofa-azul", gen.lastReq.References[0].Name)
	assert.Equal(t, []string{"object", "style"}, gen.lastReq.References[0].Types)
}
