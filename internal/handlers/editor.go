package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ktirio-backend/internal/editor"
	"ktirio-backend/internal/models"
	"ktirio-backend/internal/services"
	"ktirio-backend/internal/supabase"
)

// EditorHandler drives the per-project editing session: base image upload,
// mask strokes, view transform, references, prompt and generation.
type EditorHandler struct {
	dbClient     *supabase.DatabaseClient
	mediaService *services.MediaService
	sessions     *editor.Manager
	generator    editor.Generator
}

func NewEditorHandler(
	dbClient *supabase.DatabaseClient,
	mediaService *services.MediaService,
	sessions *editor.Manager,
	generator editor.Generator,
) *EditorHandler {
	return &EditorHandler{
		dbClient:     dbClient,
		mediaService: mediaService,
		sessions:     sessions,
		generator:    generator,
	}
}

// session fetches the open session for the project in the path, writing the
// 404 response when none is open.
func (h *EditorHandler) session(c *gin.Context) (*editor.Session, uuid.UUID, bool) {
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return nil, uuid.Nil, false
	}
	session, err := h.sessions.Get(projectID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "no session open",
			Message: err.Error(),
		})
		return nil, uuid.Nil, false
	}
	return session, projectID, true
}

// OpenSession godoc
// @Summary     Open an editing session
// @Description Reconstructs the in-memory editing state from the project's persisted images; an already-open session is discarded and rebuilt
// @Tags        editor
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} editor.SessionState
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/session [post]
func (h *EditorHandler) OpenSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	project, err := h.dbClient.GetProject(projectID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "project not found",
			Message: err.Error(),
		})
		return
	}
	versions, err := h.dbClient.GetProjectVersions(projectID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get versions",
			Message: err.Error(),
		})
		return
	}

	base, history, err := h.mediaService.LoadProjectImages(project, versions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load project images",
			Message: err.Error(),
		})
		return
	}

	session := editor.NewSession(projectID, project.Name, base, history,
		h.generator, h.mediaService.PersistFunc(userID))
	session.OnGenerateStarted(func(prompt string) {
		h.mediaService.GetRealtimeClient().PublishProjectEvent(projectID, "generation_started",
			supabase.GenerationStartedPayload(projectID, prompt))
	})
	h.sessions.Open(session)

	c.JSON(http.StatusOK, session.State())
}

// CloseSession godoc
// @Summary     Close an editing session
// @Description Discards the in-memory editing state; persisted history is unaffected
// @Tags        editor
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     204 "No Content"
// @Failure     400 {object} models.ErrorResponse
// @Router      /projects/{project_id}/session [delete]
func (h *EditorHandler) CloseSession(c *gin.Context) {
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}
	h.sessions.Close(projectID)
	c.Status(http.StatusNoContent)
}

// GetState godoc
// @Summary     Get session state
// @Tags        editor
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} editor.SessionState
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/session [get]
func (h *EditorHandler) GetState(c *gin.Context) {
	session, _, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.State())
}

// UploadBaseImage godoc
// @Summary     Upload the base image
// @Description Replaces the project's contents with a fresh upload: history, mask, view and references reset. The image is fitted to the canvas resolution computed from the container dimensions
// @Tags        editor
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       file formData file true "Image file"
// @Param       container_width formData int true "Canvas container width in px"
// @Param       container_height formData int true "Canvas container height in px"
// @Success     200 {object} editor.SessionState
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/image [post]
func (h *EditorHandler) UploadBaseImage(c *gin.Context) {
	session, _, ok := h.session(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "image file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read image file", Message: err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read image file", Message: err.Error()})
		return
	}

	var dims struct {
		Width  int `form:"container_width"`
		Height int `form:"container_height"`
	}
	if err := c.ShouldBind(&dims); err != nil || dims.Width <= 0 || dims.Height <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "container dimensions are required"})
		return
	}

	mime := fileHeader.Header.Get("Content-Type")
	if err := session.SetBaseImage(editor.Image{Data: data, Mime: mime}, dims.Width, dims.Height); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to set base image",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, session.State())
}

// Strokes godoc
// @Summary     Apply a stroke batch
// @Description Replays a batch of pointer events against the mask overlay. Client coordinates are mapped to canvas space with the session's zoom. A select-tool stroke ending over a non-empty mask asks the client to open the edit prompt
// @Tags        editor
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.StrokeRequest true "Pointer events and canvas rect"
// @Success     200 {object} models.StrokeResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/strokes [post]
func (h *EditorHandler) Strokes(c *gin.Context) {
	session, _, ok := h.session(c)
	if !ok {
		return
	}

	var req models.StrokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	var anchor *editor.PromptAnchor
	for _, ev := range req.Events {
		switch ev.Phase {
		case "begin":
			session.BeginStroke(ev.PointerEvent, req.Rect)
		case "move":
			session.ContinueStroke(ev.PointerEvent, req.Rect)
		case "end":
			if a := session.EndStroke(ev.PointerEvent); a != nil {
				anchor = a
			}
		default:
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown stroke phase: " + ev.Phase})
			return
		}
	}

	resp := models.StrokeResponse{
		MaskEmpty:  session.MaskEmpty(),
		OpenPrompt: anchor != nil,
	}
	if anchor != nil {
		resp.PromptAnchor = &models.Position{X: anchor.X, Y: anchor.Y}
	}
	c.JSON(http.StatusOK, resp)
}

// GetMask godoc
// @Summary     Get the mask overlay
// @Description Returns the current mask overlay as a PNG
// @Tags        editor
// @Produce     png
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/mask [get]
func (h *EditorHandler) GetMask(c *gin.Context) {
	session, _, ok := h.session(c)
	if !ok {
		return
	}

	data, err := session.MaskPNG()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "mask unavailable",
			Message: err.Error(),
		})
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

// ClearMask godoc
// @Summary     Clear the mask overlay
// @Tags        editor
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     204 "No Content"
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/mask [delete]
func (h *EditorHandler) ClearMask(c *gin.Context) {
	session, _, ok := h.session(c)
	if !ok {
		return
	}
	session.ClearMask()
	c.Status(http.StatusNoContent)
}

// SelectVersion godoc
// @Summary     Select a version
// @Description Moves the working image to a history entry, or back to the original upload. History is never truncated; the next generation appends at the end
// @Tags        editor
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.SelectVersionRequest true "Version index, or original"
// @Success     200 {object} editor.SessionState
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/version [post]
func (h *EditorHandler) SelectVersion(c *gin.Context) {
	session, _, ok := h.session(c)
	if !ok {
		return
	}

	var req models.SelectVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	index := editor.OriginalVersion
	if !req.Original {
		if req.Version == nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "version index is required"})
			return
		}
		index = *req.Version
	}

	if err := session.SelectVersion(index); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to select version",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, session.State())
}

// Wheel godoc
// @Summary     Apply a zoom scroll tick
// @Description Multiplies or divides the zoom by the step when the modifier key is held; ticks without the modifier are ignored
// @Tags        editor
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.WheelRequest true "Scroll delta and modifier state"
// @Success     200 {object} editor.SessionState
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/view/wheel [post]
func (h *EditorHandler) Wheel(c *gin.Context) {
	session, _, ok := h.session(c)
	if !ok {
		return
	}

	var req models.WheelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	session.Wheel(req.DeltaY, req.Modifier)
	c.JSON(http.StatusOK, session.State())
}

// Pan godoc
// @Summary     Drive a canvas drag
// @Description Start, move or end a pan; panning only engages while no drawing tool is active
// @Tags        editor
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.PanRequest true "Drag phase and pointer position"
// @Success     200 {object} editor.SessionState
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/view/pan [post]
func (h *EditorHandler) Pan(c *gin.Context) {
	session, _, ok := h.session(c)
	if !ok {
		return
	}

	var req models.PanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	switch req.Phase {
	case "start":
		session.StartPan(req.ClientX, req.ClientY)
	case "move":
		session.MovePan(req.ClientX, req.ClientY)
	case "end":
		session.EndPan()
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown pan phase: " + req.Phase})
		return
	}

	c.JSON(http.StatusOK, session.State())
}

// ResetView godoc
// @Summary     Reset the view transform
// @Tags        editor
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} editor.SessionState
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/view/reset [post]
func (h *EditorHandler) ResetView(c *gin.Context) {
	session, _, ok := h.session(c)
	if !ok {
		return
	}
	session.ResetView()
	c.JSON(http.StatusOK, session.State())
}

// SetTool godoc
// @Summary     Toggle a tool
// @Description Selects the draw or select tool, or deselects back to navigation when the active tool is picked again
// @Tags        editor
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.ToolRequest true "Tool name"
// @Success     200 {object} editor.SessionState
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/tool [post]
func (h *EditorHandler) SetTool(c *gin.Context) {
	session, _, ok := h.session(c)
	if !ok {
		return
	}

	var req models.ToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	tool := editor.Tool(req.Tool)
	switch tool {
	case editor.ToolDraw, editor.ToolSelect:
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown tool: " + req.Tool})
		return
	}

	session.ToggleTool(tool)
	c.JSON(http.StatusOK, session.State())
}

// SetBrush godoc
// @Summary     Configure the brush
// @Description Sets the brush size (clamped to the slider range) and optionally flips between draw and erase
// @Tags        editor
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.BrushRequest true "Brush settings"
// @Success     200 {object} editor.SessionState
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/brush [post]
func (h *EditorHandler) SetBrush(c *gin.Context) {
	session, _, ok := h.session(c)
	if !ok {
		return
	}

	var req models.BrushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	if req.Size != nil {
		session.SetBrushSize(*req.Size)
	}
	if req.ToggleMode {
		session.ToggleBrushMode()
	}
	c.JSON(http.StatusOK, session.State())
}

// SetPrompt godoc
// @Summary     Set the prompt text
// @Tags        editor
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.PromptRequest true "Prompt text"
// @Success     200 {object} editor.SessionState
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/prompt [put]
func (h *EditorHandler) SetPrompt(c *gin.Context) {
	session, _, ok := h.session(c)
	if !ok {
		return
	}

	var req models.PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	session.SetPrompt(req.Prompt)
	c.JSON(http.StatusOK, session.State())
}

// AddReference godoc
// @Summary     Attach a reference image
// @Description Attaches an auxiliary image with semantic type tags (style, object, lighting, background). References are session-scoped and never enter the version history
// @Tags        references
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       file formData file true "Reference image"
// @Param       name formData string true "Reference name, used by the /slash autocomplete"
// @Param       types formData []string true "Semantic type tags" collectionFormat(multi)
// @Success     201 {object} models.ReferenceResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/references [post]
func (h *EditorHandler) AddReference(c *gin.Context) {
	session, _, ok := h.session(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "reference image file is required"})
		return
	}
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "reference name is required"})
		return
	}

	types, err := editor.ParseReferenceTypes(c.PostFormArray("types"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid reference types", Message: err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read reference file", Message: err.Error()})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read reference file", Message: err.Error()})
		return
	}

	ref := editor.ReferenceImage{
		ID:    uuid.New(),
		Name:  name,
		Types: types,
		Image: editor.Image{Data: data, Mime: fileHeader.Header.Get("Content-Type")},
	}
	session.AddReference(ref)

	c.JSON(http.StatusCreated, toReferenceResponse(ref))
}

// ListReferences godoc
// @Summary     List attached references
// @Tags        references
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.ReferenceListResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/references [get]
func (h *EditorHandler) ListReferences(c *gin.Context) {
	session, _, ok := h.session(c)
	if !ok {
		return
	}

	refs := session.References()
	responses := make([]models.ReferenceResponse, len(refs))
	for i, ref := range refs {
		responses[i] = toReferenceResponse(ref)
	}
	c.JSON(http.StatusOK, models.ReferenceListResponse{References: responses})
}

// RemoveReference godoc
// @Summary     Detach a reference image
// @Tags        references
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       reference_id path string true "Reference ID (UUID)"
// @Success     204 "No Content"
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/references/{reference_id} [delete]
func (h *EditorHandler) RemoveReference(c *gin.Context) {
	session, _, ok := h.session(c)
	if !ok {
		return
	}
	refID, ok := pathUUID(c, "reference_id")
	if !ok {
		return
	}

	if !session.RemoveReference(refID) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "reference not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Autocomplete godoc
// @Summary     Slash-command autocomplete
// @Description Looks up reference names matching the /token at the cursor; with a choice the token is replaced by the chosen name
// @Tags        references
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.AutocompleteRequest true "Text, cursor and optional choice"
// @Success     200 {object} models.AutocompleteResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/autocomplete [post]
func (h *EditorHandler) Autocomplete(c *gin.Context) {
	session, _, ok := h.session(c)
	if !ok {
		return
	}

	var req models.AutocompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	if req.Choice != "" {
		text, cursor := editor.Splice(req.Text, req.Cursor, req.Choice)
		c.JSON(http.StatusOK, models.AutocompleteResponse{Text: text, Cursor: cursor})
		return
	}

	completion := session.Autocomplete(req.Text, req.Cursor)
	c.JSON(http.StatusOK, models.AutocompleteResponse{
		Active:     completion.Active,
		Candidates: completion.Candidates,
	})
}

// Generate godoc
// @Summary     Generate an edit
// @Description Runs one AI edit over the current image and mask. On success the result is appended to history and becomes current; on failure the mask is preserved for retry
// @Tags        editor
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.GenerateRequest true "Edit prompt"
// @Success     200 {object} models.GenerateResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /projects/{project_id}/generate [post]
func (h *EditorHandler) Generate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	session, projectID, ok := h.session(c)
	if !ok {
		return
	}

	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	result, err := session.Generate(req.Prompt, nil)
	if err != nil {
		if errors.Is(err, editor.ErrGenerationInFlight) {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "generation in progress", Message: err.Error()})
			return
		}
		// Validation failures happen before anything starts, so no realtime
		// events are emitted for them.
		if editor.IsValidation(err) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid edit request", Message: err.Error()})
			return
		}
		h.mediaService.GetRealtimeClient().PublishProjectEvent(projectID, "generation_failed",
			supabase.GenerationFailedPayload(projectID, session.LastError()))
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "generation failed",
			Message: session.LastError(),
		})
		return
	}

	resp := models.GenerateResponse{
		Version:       result.VersionIndex,
		Text:          result.Text,
		HistoryLength: func() int { n, _ := session.History(); return n }(),
	}
	if versions, err := h.dbClient.GetProjectVersions(projectID, userID); err == nil {
		for _, v := range versions {
			if v.Position == result.VersionIndex {
				resp.StorageURL = v.StorageURL
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

// DismissError godoc
// @Summary     Dismiss the error banner
// @Tags        editor
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     204 "No Content"
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/error [delete]
func (h *EditorHandler) DismissError(c *gin.Context) {
	session, _, ok := h.session(c)
	if !ok {
		return
	}
	session.DismissError()
	c.Status(http.StatusNoContent)
}

func toReferenceResponse(ref editor.ReferenceImage) models.ReferenceResponse {
	types := make([]string, len(ref.Types))
	for i, t := range ref.Types {
		types[i] = string(t)
	}
	return models.ReferenceResponse{
		ID:    ref.ID.String(),
		Name:  ref.Name,
		Types: types,
	}
}
