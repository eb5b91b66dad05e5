package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ktirio-backend/internal/editor"
	"ktirio-backend/internal/models"
	"ktirio-backend/internal/services"
	"ktirio-backend/internal/supabase"
)

type ProjectsHandler struct {
	dbClient      *supabase.DatabaseClient
	storageClient *supabase.StorageClient
	mediaService  *services.MediaService
	sessions      *editor.Manager
}

func NewProjectsHandler(
	dbClient *supabase.DatabaseClient,
	storageClient *supabase.StorageClient,
	mediaService *services.MediaService,
	sessions *editor.Manager,
) *ProjectsHandler {
	return &ProjectsHandler{
		dbClient:      dbClient,
		storageClient: storageClient,
		mediaService:  mediaService,
		sessions:      sessions,
	}
}

// CreateProject godoc
// @Summary     Create a project
// @Description Creates an empty project; the base image is uploaded separately through the editor
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateProjectRequest true "Project name"
// @Success     201 {object} models.ProjectResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects [post]
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Name == "" {
		req.Name = "Novo Projeto"
	}

	project, err := h.dbClient.CreateProject(userID, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create project",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project, nil))
}

// ListProjects godoc
// @Summary     List projects
// @Description Returns the user's projects with version counts; favorite, archived and folder_id (UUID or "none" for unfiled) narrow the listing
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       favorite  query bool   false "Only (non-)favorites"
// @Param       archived  query bool   false "Only (non-)archived"
// @Param       folder_id query string false "Only projects in this folder, or 'none' for unfiled"
// @Success     200 {object} models.ProjectListResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects [get]
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filter, err := models.ProjectFilterFromQuery(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid filter", Message: err.Error()})
		return
	}

	projects, err := h.dbClient.ListProjects(userID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list projects",
			Message: err.Error(),
		})
		return
	}

	counts, err := h.dbClient.CountProjectVersionsByProject(userID)
	if err != nil {
		// The listing is still useful without counts.
		log.Printf("Warning: failed to count versions for user %s: %v", userID, err)
		counts = map[uuid.UUID]int{}
	}

	summaries := make([]models.ProjectSummary, len(projects))
	for i, p := range projects {
		summaries[i] = toProjectSummary(&p, counts[p.ID])
	}

	c.JSON(http.StatusOK, models.ProjectListResponse{Projects: summaries})
}

// GetProject godoc
// @Summary     Get a project
// @Description Returns a project with its full version history
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.ProjectResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id} [get]
func (h *ProjectsHandler) GetProject(c *gin.Context) {
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

	c.JSON(http.StatusOK, toProjectResponse(project, versions))
}

// UpdateProject godoc
// @Summary     Update a project
// @Description Patches project metadata: name, folder, favorite and archived flags
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.UpdateProjectRequest true "Fields to update"
// @Success     200 {object} models.ProjectResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id} [patch]
func (h *ProjectsHandler) UpdateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
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

	if req.Name != nil && *req.Name != "" && *req.Name != project.Name {
		if err := h.dbClient.UpdateProjectName(projectID, userID, *req.Name); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to rename project",
				Message: err.Error(),
			})
			return
		}
		// Keep an open session's display name in sync.
		if session, err := h.sessions.Get(projectID); err == nil {
			session.Rename(*req.Name)
		}
	}

	if req.FolderID != nil {
		var folderID uuid.NullUUID
		if *req.FolderID != "" {
			id, err := uuid.Parse(*req.FolderID)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid folder id"})
				return
			}
			folderID = uuid.NullUUID{UUID: id, Valid: true}
		}
		if err := h.dbClient.UpdateProjectFolder(projectID, userID, folderID); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to move project",
				Message: err.Error(),
			})
			return
		}
	}

	if req.IsFavorite != nil || req.IsArchived != nil {
		favorite := project.IsFavorite
		archived := project.IsArchived
		if req.IsFavorite != nil {
			favorite = *req.IsFavorite
		}
		if req.IsArchived != nil {
			archived = *req.IsArchived
		}
		if err := h.dbClient.UpdateProjectFlags(projectID, userID, favorite, archived); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to update project flags",
				Message: err.Error(),
			})
			return
		}
	}

	project, err = h.dbClient.GetProject(projectID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to reload project",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project, nil))
}

// DeleteProject godoc
// @Summary     Delete a project
// @Description Removes the project, its version rows and its stored images
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     204 "No Content"
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id} [delete]
func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	h.sessions.Close(projectID)

	if err := h.storageClient.DeleteProjectFiles(userID, projectID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete project files",
			Message: err.Error(),
		})
		return
	}

	if err := h.dbClient.DeleteProject(projectID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete project",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// DuplicateProject godoc
// @Summary     Duplicate a project
// @Description Creates a full copy of a project, base image and history included, named "<name> (Cópia)"
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     201 {object} models.ProjectResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/duplicate [post]
func (h *ProjectsHandler) DuplicateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	source, err := h.dbClient.GetProject(projectID, userID)
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

	dup, err := h.dbClient.CreateProject(userID, source.Name+" (Cópia)")
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create copy",
			Message: err.Error(),
		})
		return
	}

	if source.BaseImagePath.Valid {
		paths, urls, err := h.mediaService.CopyVersionFiles(userID, source.ID, dup.ID,
			[]string{source.BaseImagePath.String}, []string{"base.png"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to copy base image",
				Message: err.Error(),
			})
			return
		}
		if err := h.dbClient.SetProjectBaseImage(dup.ID, userID, paths[0], urls[0]); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to copy base image",
				Message: err.Error(),
			})
			return
		}
	}

	var copied []models.ProjectVersion
	for _, v := range versions {
		filename := fmt.Sprintf("version-%s.png", uuid.New().String())
		paths, urls, err := h.mediaService.CopyVersionFiles(userID, source.ID, dup.ID,
			[]string{v.StoragePath}, []string{filename})
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to copy version",
				Message: err.Error(),
			})
			return
		}
		version := models.ProjectVersion{
			ProjectID:   dup.ID,
			UserID:      userID,
			StoragePath: paths[0],
			StorageURL:  urls[0],
			MimeType:    v.MimeType,
		}
		if err := h.dbClient.AppendProjectVersion(&version); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to copy version",
				Message: err.Error(),
			})
			return
		}
		copied = append(copied, version)
	}

	dup, err = h.dbClient.GetProject(dup.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to reload copy",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(dup, copied))
}

// BranchProject godoc
// @Summary     New project from version
// @Description Creates a project named "<name> (Versão)" seeded from a chosen version; without an explicit version the source's current image is used, falling back through the last version to the base image. The seed becomes both the base image and the first history entry
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.BranchProjectRequest true "Version to branch from"
// @Success     201 {object} models.ProjectResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/branch [post]
func (h *ProjectsHandler) BranchProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	var req models.BranchProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	source, err := h.dbClient.GetProject(projectID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "project not found",
			Message: err.Error(),
		})
		return
	}

	seed, err := h.resolveBranchSeed(source, userID, req.Version)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no image to branch from",
			Message: err.Error(),
		})
		return
	}

	branch, err := h.dbClient.CreateProject(userID, source.Name+" (Versão)")
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create project",
			Message: err.Error(),
		})
		return
	}

	// The seed is stored twice: once as the base image and once as history
	// entry 0, so the branch opens with the image already on its timeline.
	filename := fmt.Sprintf("version-%s.png", uuid.New().String())
	var paths, urls []string
	if seed.image != nil {
		for _, name := range []string{"base.png", filename} {
			path, url, err := h.storageClient.UploadImage(userID, branch.ID, name, seed.image.Data, seed.image.Mime)
			if err != nil {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse{
					Error:   "failed to store image",
					Message: err.Error(),
				})
				return
			}
			paths = append(paths, path)
			urls = append(urls, url)
		}
	} else {
		paths, urls, err = h.mediaService.CopyVersionFiles(userID, source.ID, branch.ID,
			[]string{seed.path, seed.path}, []string{"base.png", filename})
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to copy image",
				Message: err.Error(),
			})
			return
		}
	}

	if err := h.dbClient.SetProjectBaseImage(branch.ID, userID, paths[0], urls[0]); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to set base image",
			Message: err.Error(),
		})
		return
	}

	version := models.ProjectVersion{
		ProjectID:   branch.ID,
		UserID:      userID,
		StoragePath: paths[1],
		StorageURL:  urls[1],
		MimeType:    "image/png",
	}
	if err := h.dbClient.AppendProjectVersion(&version); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to seed history",
			Message: err.Error(),
		})
		return
	}

	branch, err = h.dbClient.GetProject(branch.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to reload project",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(branch, []models.ProjectVersion{version}))
}

// branchSeed is the image a branch starts from: either a stored file to copy
// or in-memory bytes taken from a live session.
type branchSeed struct {
	path  string
	image *editor.Image
}

// resolveBranchSeed picks the seed image. An explicit version wins; otherwise
// an open session supplies its current view, then the stored fallback chain
// applies.
func (h *ProjectsHandler) resolveBranchSeed(source *models.Project, userID uuid.UUID, explicit *int) (branchSeed, error) {
	versions, err := h.dbClient.GetProjectVersions(source.ID, userID)
	if err != nil {
		return branchSeed{}, err
	}

	if explicit == nil {
		if session, err := h.sessions.Get(source.ID); err == nil {
			if img, ok := session.BranchImage(); ok {
				return branchSeed{image: &img}, nil
			}
		}
	}

	path, err := BranchSeedPath(source, versions, explicit)
	if err != nil {
		return branchSeed{}, err
	}
	return branchSeed{path: path}, nil
}

// BranchSeedPath resolves the stored image a branch seeds from when no live
// session supplies one: the explicitly requested version, else the last
// version, else the base image.
func BranchSeedPath(source *models.Project, versions []models.ProjectVersion, explicit *int) (string, error) {
	if explicit != nil {
		for _, v := range versions {
			if v.Position == *explicit {
				return v.StoragePath, nil
			}
		}
		return "", fmt.Errorf("version %d not found", *explicit)
	}

	if len(versions) > 0 {
		return versions[len(versions)-1].StoragePath, nil
	}
	if source.BaseImagePath.Valid {
		return source.BaseImagePath.String, nil
	}
	return "", fmt.Errorf("project has no images")
}

func toProjectResponse(p *models.Project, versions []models.ProjectVersion) models.ProjectResponse {
	resp := models.ProjectResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		IsFavorite: p.IsFavorite,
		IsArchived: p.IsArchived,
		History:    make([]models.VersionResponse, 0, len(versions)),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.BaseImageURL.Valid {
		resp.BaseImageURL = p.BaseImageURL.String
	}
	if p.FolderID.Valid {
		resp.FolderID = p.FolderID.UUID.String()
	}
	for _, v := range versions {
		resp.History = append(resp.History, models.VersionResponse{
			Position:   v.Position,
			StorageURL: v.StorageURL,
			MimeType:   v.MimeType,
			CreatedAt:  v.CreatedAt,
		})
	}
	return resp
}

func toProjectSummary(p *models.Project, versionCount int) models.ProjectSummary {
	summary := models.ProjectSummary{
		ID:           p.ID.String(),
		Name:         p.Name,
		IsFavorite:   p.IsFavorite,
		IsArchived:   p.IsArchived,
		VersionCount: versionCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.BaseImageURL.Valid {
		summary.BaseImageURL = p.BaseImageURL.String
	}
	if p.FolderID.Valid {
		summary.FolderID = p.FolderID.UUID.String()
	}
	return summary
}
