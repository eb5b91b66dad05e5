package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Project is a staging project row. The base image and history entries live in
// object storage; the row keeps their paths and public URLs.
type Project struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	FolderID      uuid.NullUUID
	BaseImagePath sql.NullString
	BaseImageURL  sql.NullString
	IsFavorite    bool
	IsArchived    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProjectVersion is one generated image in a project's append-only history.
// Position is the 0-based history index; rows are never reordered.
type ProjectVersion struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	UserID      uuid.UUID
	Position    int
	StoragePath string
	StorageURL  string
	MimeType    string
	CreatedAt   time.Time
}

// Folder groups projects. A project with no folder is "unfiled".
type Folder struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
}
