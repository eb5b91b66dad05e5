package supabase

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) (*StorageClient, error) {
	baseURL := supabaseURL
	if len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// VersionPath builds the storage path for a project image:
// users/{user_id}/projects/{project_id}/{filename}
func VersionPath(userID, projectID uuid.UUID, filename string) string {
	return fmt.Sprintf("users/%s/projects/%s/%s", userID.String(), projectID.String(), filename)
}

// UploadImage stores an image payload and returns (storagePath, publicURL).
func (s *StorageClient) UploadImage(userID, projectID uuid.UUID, filename string, data []byte, contentType string) (string, string, error) {
	storagePath := VersionPath(userID, projectID, filename)

	if contentType == "" {
		contentType = "image/png"
	}
	upsert := true
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image: %w", err)
	}

	return storagePath, s.GetPublicURL(storagePath), nil
}

func (s *StorageClient) GetPublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, storagePath)
}

func (s *StorageClient) DownloadImage(storagePath string) ([]byte, error) {
	data, err := s.client.DownloadFile(s.bucket, storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	return data, nil
}

func (s *StorageClient) DeleteFile(storagePath string) error {
	_, err := s.client.RemoveFile(s.bucket, []string{storagePath})
	return err
}

// DeleteProjectFiles removes every stored image under a project's prefix.
func (s *StorageClient) DeleteProjectFiles(userID, projectID uuid.UUID) error {
	prefix := fmt.Sprintf("users/%s/projects/%s/", userID.String(), projectID.String())

	files, err := s.client.ListFiles(s.bucket, prefix, storage.FileSearchOptions{
		Limit: 1000,
	})
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	if len(files) > 0 {
		filePaths := make([]string, len(files))
		for i, file := range files {
			filePaths[i] = file.Name
		}
		_, err = s.client.RemoveFile(s.bucket, filePaths)
		if err != nil {
			return fmt.Errorf("failed to delete files: %w", err)
		}
	}

	return nil
}
