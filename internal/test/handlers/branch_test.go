package handlers_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"ktirio-backend/internal/handlers"
	"ktirio-backend/internal/models"
)

func projectWithBase(path string) *models.Project {
	p := &models.Project{Name: "Sala de Estar"}
	if path != "" {
		p.BaseImagePath = sql.NullString{String: path, Valid: true}
	}
	return p
}

func storedVersions(paths ...string) []models.ProjectVersion {
	versions := make([]models.ProjectVersion, len(paths))
	for i, path := range paths {
		versions[i] = models.ProjectVersion{Position: i, StoragePath: path}
	}
	return versions
}

func TestBranchSeedPath_ExplicitVersion(t *testing.T) {
	versions := storedVersions("v0.png", "v1.png", "v2.png")
	want := 1

	path, err := handlers.BranchSeedPath(projectWithBase("base.png"), versions, &want)

	assert.NoError(t, err)
	assert.Equal(t, "v1.png", path)
}

func TestBranchSeedPath_ExplicitVersionMissing(t *testing.T) {
	versions := storedVersions("v0.png")
	want := 7

	_, err := handlers.BranchSeedPath(projectWithBase("base.png"), versions, &want)

	assert.Error(t, err)
}

func TestBranchSeedPath_FallsBackToLastVersion(t *testing.T) {
	versions := storedVersions("v0.png", "v1.png")

	path, err := handlers.BranchSeedPath(projectWithBase("base.png"), versions, nil)

	assert.NoError(t, err)
	assert.Equal(t, "v1.png", path)
}

func TestBranchSeedPath_FallsBackToBaseImage(t *testing.T) {
	// A project with an upload but no generated versions branches from the
	// upload itself.
	path, err := handlers.BranchSeedPath(projectWithBase("base.png"), nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, "base.png", path)
}

func TestBranchSeedPath_NoImages(t *testing.T) {
	_, err := handlers.BranchSeedPath(projectWithBase(""), nil, nil)

	assert.Error(t, err)
}
