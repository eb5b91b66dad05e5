package services

import (
	"fmt"

	"github.com/google/uuid"
	"ktirio-backend/internal/editor"
	"ktirio-backend/internal/models"
	"ktirio-backend/internal/supabase"
)

// MediaService is the persistence collaborator for editor sessions: it moves
// image payloads between the in-memory core and Supabase storage, keeps the
// project rows in sync and publishes realtime events. The editing core itself
// never touches storage.
type MediaService struct {
	dbClient       *supabase.DatabaseClient
	storageClient  *supabase.StorageClient
	realtimeClient *supabase.RealtimeClient
}

func NewMediaService(
	dbClient *supabase.DatabaseClient,
	storageClient *supabase.StorageClient,
	realtimeClient *supabase.RealtimeClient,
) *MediaService {
	return &MediaService{
		dbClient:       dbClient,
		storageClient:  storageClient,
		realtimeClient: realtimeClient,
	}
}

// GetRealtimeClient returns the realtime client for publishing events.
func (s *MediaService) GetRealtimeClient() *supabase.RealtimeClient {
	return s.realtimeClient
}

// LoadProjectImages downloads a project's base image and history payloads so
// a session can be reconstructed from them.
func (s *MediaService) LoadProjectImages(project *models.Project, versions []models.ProjectVersion) (editor.Image, []editor.Image, error) {
	var base editor.Image
	if project.BaseImagePath.Valid {
		data, err := s.storageClient.DownloadImage(project.BaseImagePath.String)
		if err != nil {
			return editor.Image{}, nil, fmt.Errorf("failed to load base image: %w", err)
		}
		base = editor.Image{Data: data, Mime: "image/png"}
	}

	history := make([]editor.Image, 0, len(versions))
	for _, v := range versions {
		data, err := s.storageClient.DownloadImage(v.StoragePath)
		if err != nil {
			return editor.Image{}, nil, fmt.Errorf("failed to load version %d: %w", v.Position, err)
		}
		history = append(history, editor.Image{Data: data, Mime: v.MimeType})
	}

	return base, history, nil
}

// PersistFunc builds the session's persistence callback for one user.
func (s *MediaService) PersistFunc(userID uuid.UUID) editor.PersistFunc {
	return func(projectID uuid.UUID, update editor.ProjectUpdate) error {
		if update.Name != "" {
			if err := s.dbClient.UpdateProjectName(projectID, userID, update.Name); err != nil {
				return fmt.Errorf("failed to persist project name: %w", err)
			}
		}

		if update.BaseImage != nil {
			path, url, err := s.storageClient.UploadImage(userID, projectID, "base.png", update.BaseImage.Data, update.BaseImage.Mime)
			if err != nil {
				return fmt.Errorf("failed to store base image: %w", err)
			}
			if err := s.dbClient.SetProjectBaseImage(projectID, userID, path, url); err != nil {
				return fmt.Errorf("failed to persist base image: %w", err)
			}
			s.realtimeClient.PublishProjectEvent(projectID, "base_image_updated",
				supabase.BaseImageUpdatedPayload(projectID))
		}

		if update.NewVersion != nil {
			filename := fmt.Sprintf("version-%s.png", uuid.New().String())
			path, url, err := s.storageClient.UploadImage(userID, projectID, filename, update.NewVersion.Data, update.NewVersion.Mime)
			if err != nil {
				return fmt.Errorf("failed to store generated image: %w", err)
			}
			version := &models.ProjectVersion{
				ProjectID:   projectID,
				UserID:      userID,
				StoragePath: path,
				StorageURL:  url,
				MimeType:    update.NewVersion.Mime,
			}
			if err := s.dbClient.AppendProjectVersion(version); err != nil {
				return fmt.Errorf("failed to persist generated version: %w", err)
			}
			s.realtimeClient.PublishProjectEvent(projectID, "generation_completed",
				supabase.GenerationCompletedPayload(projectID, version.Position))
		}

		return nil
	}
}

// CopyVersionFiles duplicates a source project's stored images under a new
// project's prefix; used by duplicate and branch operations.
func (s *MediaService) CopyVersionFiles(userID, sourceID, targetID uuid.UUID, sourcePaths []string, targetNames []string) ([]string, []string, error) {
	if len(sourcePaths) != len(targetNames) {
		return nil, nil, fmt.Errorf("paths and names length mismatch")
	}

	paths := make([]string, 0, len(sourcePaths))
	urls := make([]string, 0, len(sourcePaths))
	for i, src := range sourcePaths {
		data, err := s.storageClient.DownloadImage(src)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read source image: %w", err)
		}
		path, url, err := s.storageClient.UploadImage(userID, targetID, targetNames[i], data, "image/png")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to copy image: %w", err)
		}
		paths = append(paths, path)
		urls = append(urls, url)
	}
	return paths, urls, nil
}
