package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ProjectResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	BaseImageURL string            `json:"base_image_url,omitempty"`
	FolderID     string            `json:"folder_id,omitempty"`
	IsFavorite   bool              `json:"is_favorite"`
	IsArchived   bool              `json:"is_archived"`
	History      []VersionResponse `json:"history"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type ProjectSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	BaseImageURL string    `json:"base_image_url,omitempty"`
	FolderID     string    `json:"folder_id,omitempty"`
	IsFavorite   bool      `json:"is_favorite"`
	IsArchived   bool      `json:"is_archived"`
	VersionCount int       `json:"version_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ProjectListResponse struct {
	Projects []ProjectSummary `json:"projects"`
}

type VersionResponse struct {
	Position   int       `json:"position"`
	StorageURL string    `json:"storage_url"`
	MimeType   string    `json:"mime_type"`
	CreatedAt  time.Time `json:"created_at"`
}

type FolderResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type FolderListResponse struct {
	Folders []FolderResponse `json:"folders"`
}

// Position is a screen-space point, used to anchor the edit prompt popup.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StrokeResponse reports the mask state after a stroke batch. OpenPrompt with
// its anchor is set when a select-tool stroke finished over a non-empty mask.
type StrokeResponse struct {
	MaskEmpty    bool      `json:"mask_empty"`
	OpenPrompt   bool      `json:"open_prompt"`
	PromptAnchor *Position `json:"prompt_anchor,omitempty"`
}

type GenerateResponse struct {
	Version       int    `json:"version"`
	StorageURL    string `json:"storage_url,omitempty"`
	Text          string `json:"text,omitempty"`
	HistoryLength int    `json:"history_length"`
}

type ReferenceResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Types []string `json:"types"`
}

type ReferenceListResponse struct {
	References []ReferenceResponse `json:"references"`
}

// AutocompleteResponse carries either the candidate list or, when a choice
// was spliced, the updated text and cursor.
type AutocompleteResponse struct {
	Active     bool     `json:"active"`
	Candidates []string `json:"candidates,omitempty"`
	Text       string   `json:"text,omitempty"`
	Cursor     int      `json:"cursor,omitempty"`
}
