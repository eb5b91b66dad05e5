package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"ktirio-backend/internal/editor"
	"ktirio-backend/internal/models"
)

type ExportHandler struct {
	sessions *editor.Manager
}

func NewExportHandler(sessions *editor.Manager) *ExportHandler {
	return &ExportHandler{
		sessions: sessions,
	}
}

// Export godoc
// @Summary     Download the current image
// @Description Streams the working image (selected version, or the original upload) as an attachment named after the project
// @Tags        editor
// @Produce     png
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}
	session, err := h.sessions.Get(projectID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "no session open",
			Message: err.Error(),
		})
		return
	}

	img, ok := session.CurrentImage()
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "project has no image to export"})
		return
	}

	filename := editor.ExportFilename(session.Name())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	mime := img.Mime
	if mime == "" {
		mime = "image/png"
	}
	c.Data(http.StatusOK, mime, img.Data)
}
