package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"ktirio-backend/internal/models"
	"ktirio-backend/internal/supabase"
)

type FoldersHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewFoldersHandler(dbClient *supabase.DatabaseClient) *FoldersHandler {
	return &FoldersHandler{
		dbClient: dbClient,
	}
}

// CreateFolder godoc
// @Summary     Create a folder
// @Tags        folders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateFolderRequest true "Folder name"
// @Success     201 {object} models.FolderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /folders [post]
func (h *FoldersHandler) CreateFolder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "folder name is required"})
		return
	}

	folder, err := h.dbClient.CreateFolder(userID, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create folder",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.FolderResponse{
		ID:        folder.ID.String(),
		Name:      folder.Name,
		CreatedAt: folder.CreatedAt,
	})
}

// ListFolders godoc
// @Summary     List folders
// @Tags        folders
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.FolderListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /folders [get]
func (h *FoldersHandler) ListFolders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	folders, err := h.dbClient.ListFolders(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list folders",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.FolderResponse, len(folders))
	for i, f := range folders {
		responses[i] = models.FolderResponse{
			ID:        f.ID.String(),
			Name:      f.Name,
			CreatedAt: f.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, models.FolderListResponse{Folders: responses})
}

// RenameFolder godoc
// @Summary     Rename a folder
// @Tags        folders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       folder_id path string true "Folder ID (UUID)"
// @Param       request body models.UpdateFolderRequest true "New name"
// @Success     204 "No Content"
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /folders/{folder_id} [patch]
func (h *FoldersHandler) RenameFolder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	folderID, ok := pathUUID(c, "folder_id")
	if !ok {
		return
	}

	var req models.UpdateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "folder name is required"})
		return
	}

	if err := h.dbClient.RenameFolder(folderID, userID, req.Name); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to rename folder",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteFolder godoc
// @Summary     Delete a folder
// @Description Removes the folder; projects inside it become unfiled
// @Tags        folders
// @Produce     json
// @Security    Bearer
// @Param       folder_id path string true "Folder ID (UUID)"
// @Success     204 "No Content"
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /folders/{folder_id} [delete]
func (h *FoldersHandler) DeleteFolder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	folderID, ok := pathUUID(c, "folder_id")
	if !ok {
		return
	}

	if err := h.dbClient.DeleteFolder(folderID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete folder",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
