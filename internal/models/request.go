package models

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"ktirio-backend/internal/canvas"
)

type CreateProjectRequest struct {
	Name string `json:"name" example:"Sala de estar"`
}

// ProjectFilter narrows a project listing. Nil fields apply no filter;
// Unfiled selects projects outside any folder.
type ProjectFilter struct {
	Favorite *bool
	Archived *bool
	FolderID *uuid.UUID
	Unfiled  bool
}

// ProjectFilterFromQuery parses the gallery's listing filters from query
// parameters: favorite, archived and folder_id, where folder_id may be "none"
// to select unfiled projects.
func ProjectFilterFromQuery(values url.Values) (ProjectFilter, error) {
	var f ProjectFilter
	if v := values.Get("favorite"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return ProjectFilter{}, fmt.Errorf("invalid favorite filter: %w", err)
		}
		f.Favorite = &b
	}
	if v := values.Get("archived"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return ProjectFilter{}, fmt.Errorf("invalid archived filter: %w", err)
		}
		f.Archived = &b
	}
	if v := values.Get("folder_id"); v != "" {
		if v == "none" {
			f.Unfiled = true
		} else {
			id, err := uuid.Parse(v)
			if err != nil {
				return ProjectFilter{}, fmt.Errorf("invalid folder_id filter: %w", err)
			}
			f.FolderID = &id
		}
	}
	return f, nil
}

// UpdateProjectRequest patches project metadata. Nil fields are left
// untouched; FolderID set to the empty string unfiles the project.
type UpdateProjectRequest struct {
	Name       *string `json:"name,omitempty"`
	FolderID   *string `json:"folder_id,omitempty"`
	IsFavorite *bool   `json:"is_favorite,omitempty"`
	IsArchived *bool   `json:"is_archived,omitempty"`
}

// BranchProjectRequest creates a new project seeded from a source project's
// state. Version picks an explicit history entry; when absent the source's
// current view is used, falling back through last history entry to the base
// image.
type BranchProjectRequest struct {
	Version *int `json:"version,omitempty"`
}

type CreateFolderRequest struct {
	Name string `json:"name"`
}

type UpdateFolderRequest struct {
	Name string `json:"name"`
}

// StrokeEvent is one pointer event in a stroke batch. Phase is one of
// "begin", "move", "end"; end events may carry the screen position used to
// anchor the edit prompt.
type StrokeEvent struct {
	Phase string `json:"phase"`
	canvas.PointerEvent
}

// StrokeRequest is a batch of pointer events plus the canvas bounding box
// they were measured against. Coordinates are client-space; the server maps
// them into canvas space using the session's zoom.
type StrokeRequest struct {
	Rect   canvas.Rect   `json:"rect"`
	Events []StrokeEvent `json:"events"`
}

// SelectVersionRequest selects a history entry, or the original upload when
// Original is set.
type SelectVersionRequest struct {
	Version  *int `json:"version,omitempty"`
	Original bool `json:"original,omitempty"`
}

// WheelRequest is one zoom scroll tick. Modifier mirrors ctrl/cmd being held;
// without it the tick is ignored (normal page scroll).
type WheelRequest struct {
	DeltaY   float64 `json:"delta_y"`
	Modifier bool    `json:"modifier"`
}

// PanRequest drives the canvas drag. Phase is "start", "move" or "end".
type PanRequest struct {
	Phase   string  `json:"phase"`
	ClientX float64 `json:"client_x"`
	ClientY float64 `json:"client_y"`
}

type GenerateRequest struct {
	Prompt string `json:"prompt" example:"adicionar um sofá azul"`
}

type PromptRequest struct {
	Prompt string `json:"prompt"`
}

type BrushRequest struct {
	Size *int `json:"size,omitempty"`
	// ToggleMode flips between draw and erase.
	ToggleMode bool `json:"toggle_mode,omitempty"`
}

type ToolRequest struct {
	Tool string `json:"tool" example:"draw"`
}

// AutocompleteRequest looks up reference names for the slash-command at the
// cursor; when Choice is set the token is spliced with that name instead.
type AutocompleteRequest struct {
	Text   string `json:"text"`
	Cursor int    `json:"cursor"`
	Choice string `json:"choice,omitempty"`
}
