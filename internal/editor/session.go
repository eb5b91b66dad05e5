package editor

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"ktirio-backend/internal/canvas"
	"ktirio-backend/internal/gemini"
)

// Tool is the active editor tool. Exactly one of the three states holds; there
// is no nullable in-between.
type Tool string

const (
	ToolNone   Tool = "none"
	ToolDraw   Tool = "draw"
	ToolSelect Tool = "select"
)

// Generator is the inference collaborator. *gemini.Client satisfies it; tests
// substitute a stub.
type Generator interface {
	EditImage(req gemini.EditRequest) (*gemini.EditResult, error)
}

// ProjectUpdate is handed to the persistence collaborator after a mutation.
// BaseImage non-nil means the project's contents were replaced (history reset);
// NewVersion non-nil means a generated image was appended.
type ProjectUpdate struct {
	Name       string
	BaseImage  *Image
	NewVersion *Image
}

// PersistFunc persists an updated project. The session never talks to storage
// directly.
type PersistFunc func(projectID uuid.UUID, update ProjectUpdate) error

// PromptAnchor is the screen-space position of a stroke-terminating event,
// used to anchor the contextual edit prompt near the cursor.
type PromptAnchor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GenerateResult is the outcome of a successful generation.
type GenerateResult struct {
	Image        Image
	Text         string
	VersionIndex int
}

// Session is the in-memory editing state for one open project: working image,
// mask overlay, version history, view transform and tool configuration. One
// session exists per project view; switching projects discards and rebuilds it
// from the persisted history.
//
// The overlay canvas is exclusively owned by the session's mask engine. At
// most one generation is in flight at a time; the busy flag rejects
// re-submission until the call settles.
type Session struct {
	mu sync.Mutex

	projectID uuid.UUID
	name      string

	base    Image
	history *History
	mask    *canvas.MaskEngine
	view    *canvas.ViewTransform

	tool      Tool
	brushSize int
	brushMode canvas.BrushMode

	prompt     string
	references []ReferenceImage

	generating bool
	lastError  string

	generator Generator
	persist   PersistFunc
	started   func(prompt string)
}

// NewSession reconstructs editing state from a project's persisted images.
// A project with no upload yet has an empty base and history.
func NewSession(projectID uuid.UUID, name string, base Image, history []Image, gen Generator, persist PersistFunc) *Session {
	s := &Session{
		projectID: projectID,
		name:      name,
		base:      base,
		history:   NewHistory(history),
		view:      canvas.NewViewTransform(),
		tool:      ToolNone,
		brushSize: 44,
		brushMode: canvas.BrushDraw,
		generator: gen,
		persist:   persist,
	}
	if !base.Empty() {
		if w, h, err := base.Dimensions(); err == nil {
			s.mask = canvas.NewMaskEngine(w, h)
		}
	}
	return s
}

func (s *Session) ProjectID() uuid.UUID {
	return s.projectID
}

// OnGenerateStarted registers a callback fired once a generation has passed
// validation, just before the inference call. Rejected submissions never fire
// it.
func (s *Session) OnGenerateStarted(fn func(prompt string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = fn
}

// SetBaseImage replaces the project's contents with a fresh upload: history,
// mask, view transform, references, prompt and error state all reset. The
// image is re-encoded at the intrinsic canvas resolution computed from the
// container dimensions so mask and image stay pixel-congruent.
func (s *Session) SetBaseImage(img Image, containerW, containerH int) error {
	imgW, imgH, err := img.Dimensions()
	if err != nil {
		return fmt.Errorf("invalid base image: %w", err)
	}
	w, h := CanvasSize(imgW, imgH, containerW, containerH)

	fitted, err := FitToCanvas(img, w, h)
	if err != nil {
		return fmt.Errorf("invalid base image: %w", err)
	}

	s.mu.Lock()
	s.base = fitted
	s.history.Reset()
	s.mask = canvas.NewMaskEngine(w, h)
	s.view.Reset()
	s.references = nil
	s.prompt = ""
	s.lastError = ""
	name := s.name
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist(s.projectID, ProjectUpdate{Name: name, BaseImage: &fitted}); err != nil {
			return fmt.Errorf("failed to persist base image: %w", err)
		}
	}
	return nil
}

// BeginStroke enters the drawing state if a drawing tool is active and the
// pointer resolves to a canvas coordinate. A missing canvas is a not-yet-
// mounted view, not an error: the stroke is silently ignored.
func (s *Session) BeginStroke(ev canvas.PointerEvent, rect canvas.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mask == nil || s.tool == ToolNone {
		return
	}
	p, ok := canvas.CanvasPoint(ev, rect, s.view.Zoom())
	if !ok {
		return
	}
	s.mask.BeginStroke(p, s.brushSize, s.brushMode)
}

// ContinueStroke strokes a segment from the last position. No-op while idle.
func (s *Session) ContinueStroke(ev canvas.PointerEvent, rect canvas.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mask == nil {
		return
	}
	p, ok := canvas.CanvasPoint(ev, rect, s.view.Zoom())
	if !ok {
		return
	}
	s.mask.ContinueStroke(p, s.brushSize, s.brushMode)
}

// EndStroke leaves the drawing state. When the select tool is active and the
// stroke left a usable mask, the returned anchor signals that the edit prompt
// should open at the terminating event's screen position. An empty mask never
// opens the prompt.
func (s *Session) EndStroke(ev canvas.PointerEvent) *PromptAnchor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mask == nil || !s.mask.Drawing() {
		if s.mask != nil {
			s.mask.EndStroke()
		}
		return nil
	}
	s.mask.EndStroke()

	if s.tool == ToolSelect && !s.mask.Empty() {
		return &PromptAnchor{X: ev.ClientX, Y: ev.ClientY}
	}
	return nil
}

// ClearMask wipes the overlay; used when an edit is cancelled.
func (s *Session) ClearMask() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mask != nil {
		s.mask.Clear()
	}
}

// MaskPNG serializes the current overlay.
func (s *Session) MaskPNG() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mask == nil {
		return nil, ErrMaskUnavailable
	}
	return s.mask.EncodePNG()
}

// MaskEmpty reports whether the overlay holds any selection.
func (s *Session) MaskEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mask == nil || s.mask.Empty()
}

// Generate runs one edit: validates input, serializes the mask, calls the
// inference collaborator and applies the result. On success the new image is
// appended to history and becomes current, and mask and prompt are cleared.
// On failure nothing is mutated and the mask is preserved so the user can
// retry without re-drawing. The busy flag always clears.
func (s *Session) Generate(prompt string, refs []ReferenceImage) (*GenerateResult, error) {
	s.mu.Lock()

	if s.generating {
		s.mu.Unlock()
		return nil, ErrGenerationInFlight
	}

	working, ok := s.currentImageLocked()
	if !ok {
		s.mu.Unlock()
		s.setError(ErrNoImageLoaded.Error())
		return nil, ErrNoImageLoaded
	}

	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		s.mu.Unlock()
		s.setError(ErrEmptyPrompt.Error())
		return nil, ErrEmptyPrompt
	}

	if s.mask == nil {
		s.mu.Unlock()
		s.setError(ErrMaskUnavailable.Error())
		return nil, ErrMaskUnavailable
	}
	maskPNG, err := s.mask.EncodePNG()
	if err != nil {
		s.mu.Unlock()
		s.setError(ErrMaskUnavailable.Error())
		return nil, ErrMaskUnavailable
	}

	if refs == nil {
		refs = append([]ReferenceImage(nil), s.references...)
	}
	bounds := s.mask.Bounds()

	s.generating = true
	s.lastError = ""
	name := s.name
	started := s.started
	s.mu.Unlock()

	if started != nil {
		started(trimmed)
	}

	req := gemini.EditRequest{
		BaseImage: gemini.ImagePart{Data: working.Data, Mime: working.Mime},
		Mask:      gemini.ImagePart{Data: maskPNG, Mime: "image/png"},
		Prompt:    trimmed,
	}
	for _, ref := range refs {
		part := gemini.ReferencePart{
			Image: gemini.ImagePart{Data: ref.Image.Data, Mime: ref.Image.Mime},
			Name:  ref.Name,
		}
		for _, t := range ref.Types {
			part.Types = append(part.Types, string(t))
		}
		req.References = append(req.References, part)
	}

	out, genErr := s.generator.EditImage(req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false

	if genErr != nil {
		s.lastError = generationMessage(genErr)
		return nil, genErr
	}

	fitted, err := FitToCanvas(Image{Data: out.Image, Mime: out.MimeType}, bounds.Dx(), bounds.Dy())
	if err != nil {
		s.lastError = generationMessage(err)
		return nil, fmt.Errorf("generated image unreadable: %w", err)
	}

	s.history.Append(fitted)
	s.mask.Clear()
	s.prompt = ""

	if s.persist != nil {
		if err := s.persist(s.projectID, ProjectUpdate{Name: name, NewVersion: &fitted}); err != nil {
			// History already advanced in memory; surface but don't roll back.
			log.Printf("Warning: failed to persist generated version for project %s: %v", s.projectID, err)
			s.lastError = "generated image could not be saved"
		}
	}

	return &GenerateResult{
		Image:        fitted,
		Text:         out.Text,
		VersionIndex: s.history.Current(),
	}, nil
}

// SelectVersion moves the current pointer to an existing entry, or to the
// original upload when index is OriginalVersion. History is never truncated;
// the next generation appends at the end regardless of what is selected. The
// overlay is cleared since the working image changed underneath it.
func (s *Session) SelectVersion(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index == OriginalVersion && s.base.Empty() {
		return fmt.Errorf("project has no base image")
	}
	if err := s.history.Select(index); err != nil {
		return err
	}
	if s.mask != nil {
		s.mask.Clear()
	}
	return nil
}

// CurrentImage returns the working image: the selected history entry, or the
// base upload when the original sentinel is current.
func (s *Session) CurrentImage() (Image, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentImageLocked()
}

func (s *Session) currentImageLocked() (Image, bool) {
	if idx := s.history.Current(); idx != OriginalVersion {
		img, err := s.history.Entry(idx)
		if err == nil {
			return img, true
		}
	}
	if s.base.Empty() {
		return Image{}, false
	}
	return s.base, true
}

// History returns (length, current index).
func (s *Session) History() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Len(), s.history.Current()
}

// HistoryEntry returns the image stored at index.
func (s *Session) HistoryEntry(index int) (Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Entry(index)
}

// BranchImage resolves the image a branch ("new project from version") should
// seed from: the current view, falling back through last history entry to the
// base image.
func (s *Session) BranchImage() (Image, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if img, ok := s.currentImageLocked(); ok {
		return img, true
	}
	return Image{}, false
}

// ToggleTool selects a tool, or deselects back to navigation when the active
// tool is picked again.
func (s *Session) ToggleTool(tool Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tool == tool {
		s.tool = ToolNone
	} else {
		s.tool = tool
	}
}

func (s *Session) Tool() Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool
}

// SetBrushSize clamps to the 5-100 slider range. Takes effect on the next
// stroke segment.
func (s *Session) SetBrushSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if size < canvas.MinBrushSize {
		size = canvas.MinBrushSize
	} else if size > canvas.MaxBrushSize {
		size = canvas.MaxBrushSize
	}
	s.brushSize = size
}

// ToggleBrushMode switches between draw and erase without changing which tool
// is active.
func (s *Session) ToggleBrushMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.brushMode == canvas.BrushDraw {
		s.brushMode = canvas.BrushErase
	} else {
		s.brushMode = canvas.BrushDraw
	}
}

// SetPrompt stores the sidebar prompt text.
func (s *Session) SetPrompt(prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompt = prompt
}

func (s *Session) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompt
}

// AddReference attaches a reference image to the session.
func (s *Session) AddReference(ref ReferenceImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.references = append(s.references, ref)
}

// RemoveReference detaches by id.
func (s *Session) RemoveReference(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, ref := range s.references {
		if ref.ID == id {
			s.references = append(s.references[:i], s.references[i+1:]...)
			return true
		}
	}
	return false
}

// References returns a copy of the attached reference images.
func (s *Session) References() []ReferenceImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ReferenceImage(nil), s.references...)
}

// Autocomplete runs the slash-command lookup against the session's reference
// names.
func (s *Session) Autocomplete(text string, cursor int) Completion {
	s.mu.Lock()
	refs := append([]ReferenceImage(nil), s.references...)
	s.mu.Unlock()
	return Complete(text, cursor, refs)
}

// Wheel applies a zoom tick (modifier-gated).
func (s *Session) Wheel(deltaY float64, modifier bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.HandleWheel(deltaY, modifier)
}

// StartPan begins a drag, only while no drawing tool is active and an image
// is loaded.
func (s *Session) StartPan(clientX, clientY float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tool != ToolNone || s.base.Empty() {
		return
	}
	s.view.StartPan(clientX, clientY)
}

func (s *Session) MovePan(clientX, clientY float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.MovePan(clientX, clientY)
}

func (s *Session) EndPan() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.EndPan()
}

// ResetView returns to 100% zoom centered.
func (s *Session) ResetView() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Reset()
}

func (s *Session) ViewZoom() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.Zoom()
}

// Rename updates the display name and persists it.
func (s *Session) Rename(name string) error {
	s.mu.Lock()
	s.name = name
	s.mu.Unlock()
	if s.persist != nil {
		return s.persist(s.projectID, ProjectUpdate{Name: name})
	}
	return nil
}

func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Generating reports whether a generation is in flight.
func (s *Session) Generating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generating
}

// LastError is the inline banner text, empty when there is nothing to show.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// DismissError clears the banner.
func (s *Session) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

func (s *Session) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = msg
}

// SessionState is a snapshot of the session for the view layer.
type SessionState struct {
	ProjectID      string           `json:"project_id"`
	Name           string           `json:"name"`
	HasBaseImage   bool             `json:"has_base_image"`
	HistoryLength  int              `json:"history_length"`
	CurrentVersion int              `json:"current_version"`
	Tool           Tool             `json:"tool"`
	BrushSize      int              `json:"brush_size"`
	BrushMode      canvas.BrushMode `json:"brush_mode"`
	Zoom           float64          `json:"zoom"`
	PanOffset      canvas.Offset    `json:"pan_offset"`
	MaskEmpty      bool             `json:"mask_empty"`
	Generating     bool             `json:"generating"`
	LastError      string           `json:"last_error,omitempty"`
	Prompt         string           `json:"prompt"`
	References     []ReferenceImage `json:"references"`
}

// State snapshots the session.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{
		ProjectID:      s.projectID.String(),
		Name:           s.name,
		HasBaseImage:   !s.base.Empty(),
		HistoryLength:  s.history.Len(),
		CurrentVersion: s.history.Current(),
		Tool:           s.tool,
		BrushSize:      s.brushSize,
		BrushMode:      s.brushMode,
		Zoom:           s.view.Zoom(),
		PanOffset:      s.view.PanOffset(),
		MaskEmpty:      s.mask == nil || s.mask.Empty(),
		Generating:     s.generating,
		LastError:      s.lastError,
		Prompt:         s.prompt,
		References:     append([]ReferenceImage(nil), s.references...),
	}
}

// generationMessage maps collaborator failures to the dismissible banner text.
// Errors never escape the orchestrator boundary uncaught.
func generationMessage(err error) string {
	switch {
	case errors.Is(err, gemini.ErrNoImage):
		return "The AI did not return an image. Please try again."
	case errors.Is(err, gemini.ErrPayloadTooLarge):
		return "The image could not be processed. Try a smaller image."
	case errors.Is(err, gemini.ErrRejected):
		return "The service could not process this request. Check that the image and mask are valid."
	default:
		return "An unknown error occurred while generating the image."
	}
}
