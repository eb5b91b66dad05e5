package editor_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"ktirio-backend/internal/editor"
)

func TestManager_OpenGetClose(t *testing.T) {
	m := editor.NewManager()
	projectID := uuid.New()
	s := editor.NewSession(projectID, "Sala", editor.Image{}, nil, &stubGenerator{}, nil)

	m.Open(s)

	got, err := m.Get(projectID)
	assert.NoError(t, err)
	assert.Equal(t, s, got)

	m.Close(projectID)
	_, err = m.Get(projectID)
	assert.ErrorIs(t, err, editor.ErrNoSession)
}

func TestManager_GetUnknownProject(t *testing.T) {
	m := editor.NewManager()

	_, err := m.Get(uuid.New())

	assert.ErrorIs(t, err, editor.ErrNoSession)
}

func TestManager_ReopenReplacesSession(t *testing.T) {
	m := editor.NewManager()
	projectID := uuid.New()

	first := editor.NewSession(projectID, "Sala", editor.Image{}, nil, &stubGenerator{}, nil)
	second := editor.NewSession(projectID, "Sala", editor.Image{}, nil, &stubGenerator{}, nil)

	m.Open(first)
	m.Open(second)

	got, err := m.Get(projectID)
	assert.NoError(t, err)
	assert.Equal(t, second, got)
}
