package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Supabase Go client has no direct Realtime publish; database updates
	// trigger Realtime automatically. Kept as the single publish point so an
	// explicit Realtime REST call can slot in later.
	return nil
}

func (r *RealtimeClient) PublishProjectEvent(projectID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("project:%s", projectID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads

func GenerationStartedPayload(projectID uuid.UUID, prompt string) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"status":     "generating",
		"prompt":     prompt,
	}
}

func GenerationCompletedPayload(projectID uuid.UUID, version int) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"status":     "completed",
		"version":    version,
	}
}

func GenerationFailedPayload(projectID uuid.UUID, message string) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"status":     "failed",
		"error":      message,
	}
}

func BaseImageUpdatedPayload(projectID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"status":     "base_image_updated",
	}
}
