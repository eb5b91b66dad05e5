package gemini_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"ktirio-backend/internal/gemini"
)

func testPayload(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func editRequest() gemini.EditRequest {
	return gemini.EditRequest{
		BaseImage: gemini.ImagePart{Data: testPayload(2048), Mime: "image/png"},
		Mask:      gemini.ImagePart{Data: testPayload(1024), Mime: "image/png"},
		Prompt:    "adicionar um sofá azul",
	}
}

func TestClient_EditImage_Success(t *testing.T) {
	generated := testPayload(512)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Contains(t, r.URL.Path, "models/test-model:generateContent")
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		contents := body["contents"].([]interface{})
		parts := contents[0].(map[string]interface{})["parts"].([]interface{})
		// Instruction+prompt text, base image, mask: three parts minimum.
		assert.GreaterOrEqual(t, len(parts), 3)

		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{
						{"text": "Pronto."},
						{"inlineData": map[string]string{
							"mimeType": "image/png",
							"data":     base64.StdEncoding.EncodeToString(generated),
						}},
					},
				},
			}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := gemini.NewClient(server.URL, "test-key", "test-model")
	result, err := client.EditImage(editRequest())

	assert.NoError(t, err)
	assert.Equal(t, generated, result.Image)
	assert.Equal(t, "image/png", result.MimeType)
	assert.Equal(t, "Pronto.", result.Text)
}

func TestClient_EditImage_NoImageInResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{
						{"text": "Não consegui gerar a imagem."},
					},
				},
			}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := gemini.NewClient(server.URL, "test-key", "test-model")
	_, err := client.EditImage(editRequest())

	assert.ErrorIs(t, err, gemini.ErrNoImage)
}

func TestClient_EditImage_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer server.Close()

	client := gemini.NewClient(server.URL, "test-key", "test-model")
	_, err := client.EditImage(editRequest())

	assert.ErrorIs(t, err, gemini.ErrNoImage)
}

func TestClient_EditImage_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "invalid request"}`))
	}))
	defer server.Close()

	client := gemini.NewClient(server.URL, "test-key", "test-model")
	_, err := client.EditImage(editRequest())

	assert.ErrorIs(t, err, gemini.ErrRejected)
}

func TestClient_EditImage_PayloadTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
	}))
	defer server.Close()

	client := gemini.NewClient(server.URL, "test-key", "test-model")
	_, err := client.EditImage(editRequest())

	assert.ErrorIs(t, err, gemini.ErrPayloadTooLarge)
}

func TestClient_EditImage_RejectsTinyPayloads(t *testing.T) {
	client := gemini.NewClient("https://api.test.com/v1beta/", "test-key", "test-model")

	req := editRequest()
	req.BaseImage.Data = []byte("tiny")
	_, err := client.EditImage(req)

	assert.ErrorIs(t, err, gemini.ErrPayloadTooLarge)
}

func TestClient_RetryWithBackoff(t *testing.T) {
	client := gemini.NewClient("https://api.test.com/v1beta/", "test-key", "test-model")

	callCount := 0
	err := client.RetryWithBackoff(func() error {
		callCount++
		if callCount < 3 {
			return assert.AnError
		}
		return nil
	}, 3)

	assert.NoError(t, err)
	assert.Equal(t, 3, callCount)
}

func TestClient_RetryWithBackoff_Exhausted(t *testing.T) {
	client := gemini.NewClient("https://api.test.com/v1beta/", "test-key", "test-model")

	err := client.RetryWithBackoff(func() error {
		return assert.AnError
	}, 3)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 3 retries")
}

func TestRetryClient_RetriesTransientFailures(t *testing.T) {
	generated := testPayload(512)

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{
						{"inlineData": map[string]string{
							"mimeType": "image/png",
							"data":     base64.StdEncoding.EncodeToString(generated),
						}},
					},
				},
			}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := gemini.NewRetryClient(gemini.NewClient(server.URL, "test-key", "test-model"), 3)
	result, err := client.EditImage(editRequest())

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, generated, result.Image)
}

func TestRetryClient_DoesNotRetryRejectedRequests(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "invalid request"}`))
	}))
	defer server.Close()

	client := gemini.NewRetryClient(gemini.NewClient(server.URL, "test-key", "test-model"), 3)
	_, err := client.EditImage(editRequest())

	assert.ErrorIs(t, err, gemini.ErrRejected)
	assert.Equal(t, 1, calls)
}
