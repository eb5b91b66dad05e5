package handlers_test

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"ktirio-backend/internal/editor"
	"ktirio-backend/internal/gemini"
	"ktirio-backend/internal/handlers"
)

type noopGenerator struct{}

func (noopGenerator) EditImage(gemini.EditRequest) (*gemini.EditResult, error) {
	return nil, gemini.ErrNoImage
}

func testImage(t *testing.T) editor.Image {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 32, 24))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return editor.Image{Data: buf.Bytes(), Mime: "image/png"}
}

func TestExportHandler_DownloadsCurrentImage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sessions := editor.NewManager()
	projectID := uuid.New()
	img := testImage(t)
	session := editor.NewSession(projectID, "Sala de Estar", img, nil, noopGenerator{}, nil)
	sessions.Open(session)

	router := gin.New()
	router.GET("/projects/:project_id/export", handlers.NewExportHandler(sessions).Export)

	req, _ := http.NewRequest("GET", "/projects/"+projectID.String()+"/export", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="Sala_de_Estar.png"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, img.Data, w.Body.Bytes())
}

func TestExportHandler_NoSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/projects/:project_id/export", handlers.NewExportHandler(editor.NewManager()).Export)

	req, _ := http.NewRequest("GET", "/projects/"+uuid.New().String()+"/export", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportHandler_NoImage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sessions := editor.NewManager()
	projectID := uuid.New()
	sessions.Open(editor.NewSession(projectID, "Vazio", editor.Image{}, nil, noopGenerator{}, nil))

	router := gin.New()
	router.GET("/projects/:project_id/export", handlers.NewExportHandler(sessions).Export)

	req, _ := http.NewRequest("GET", "/projects/"+projectID.String()+"/export", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
