package gemini

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Failure modes the editing core distinguishes. They surface as distinct
// user-visible messages, never as crashes.
var (
	// ErrNoImage: the call succeeded transport-wise but the model returned no
	// image part. Treated as a hard failure.
	ErrNoImage = errors.New("model did not return an image")
	// ErrRejected: the service rejected the request shape or content.
	ErrRejected = errors.New("service rejected the request")
	// ErrPayloadTooLarge: an image payload was malformed or oversized.
	ErrPayloadTooLarge = errors.New("image payload too large")
)

const minImagePayload = 100

// instruction is prepended to every edit prompt. The mask is sent as a
// separate image aligned pixel-for-pixel with the working image.
const instruction = "Edit only the region marked by the attached mask image; keep everything outside the mask identical to the original. "

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// ImagePart is an embedded raster payload.
type ImagePart struct {
	Data []byte
	Mime string
}

// ReferencePart is an auxiliary image with its semantic tags.
type ReferencePart struct {
	Image ImagePart
	Name  string
	Types []string
}

// EditRequest carries the full input of one generation: working image, mask
// (same pixel dimensions), prompt text and zero or more reference images.
type EditRequest struct {
	BaseImage  ImagePart
	Mask       ImagePart
	Prompt     string
	References []ReferencePart
}

// EditResult is the generated image plus optional descriptive text. The text
// is informational only.
type EditResult struct {
	Image    []byte
	MimeType string
	Text     string
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type requestPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type generateRequest struct {
	Contents []struct {
		Parts []requestPart `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		ResponseModalities []string `json:"responseModalities"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text       string `json:"text,omitempty"`
				InlineData *struct {
					MimeType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData,omitempty"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// EditImage performs one masked edit. Exactly one call is in flight per
// editing session; the caller enforces that.
func (c *Client) EditImage(editReq EditRequest) (*EditResult, error) {
	if len(editReq.BaseImage.Data) < minImagePayload {
		return nil, fmt.Errorf("%w: base image data is invalid or too small", ErrPayloadTooLarge)
	}
	if len(editReq.Mask.Data) < minImagePayload {
		return nil, fmt.Errorf("%w: mask data is invalid or too small", ErrPayloadTooLarge)
	}

	parts := []requestPart{
		{Text: instruction + editReq.Prompt},
		{InlineData: &inlineData{
			MimeType: mimeOrPNG(editReq.BaseImage.Mime),
			Data:     base64.StdEncoding.EncodeToString(editReq.BaseImage.Data),
		}},
	}
	for _, ref := range editReq.References {
		part := requestPart{InlineData: &inlineData{
			MimeType: mimeOrPNG(ref.Image.Mime),
			Data:     base64.StdEncoding.EncodeToString(ref.Image.Data),
		}}
		if len(ref.Types) > 0 {
			parts = append(parts, requestPart{
				Text: fmt.Sprintf("Reference image %q (%s):", ref.Name, strings.Join(ref.Types, ", ")),
			})
		}
		parts = append(parts, part)
	}
	parts = append(parts, requestPart{InlineData: &inlineData{
		MimeType: mimeOrPNG(editReq.Mask.Mime),
		Data:     base64.StdEncoding.EncodeToString(editReq.Mask.Data),
	}})

	var reqBody generateRequest
	reqBody.Contents = make([]struct {
		Parts []requestPart `json:"parts"`
	}, 1)
	reqBody.Contents[0].Parts = parts
	reqBody.GenerationConfig.ResponseModalities = []string{"IMAGE", "TEXT"}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + "/models/" + c.model + ":generateContent"
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusRequestEntityTooLarge:
		return nil, fmt.Errorf("%w: status %d", ErrPayloadTooLarge, resp.StatusCode)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrRejected, resp.StatusCode, string(body))
	default:
		return nil, fmt.Errorf("generation failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))
	}

	if len(result.Candidates) == 0 {
		return nil, ErrNoImage
	}

	out := &EditResult{}
	for _, part := range result.Candidates[0].Content.Parts {
		if part.InlineData != nil && out.Image == nil {
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("failed to decode image data: %w", err)
			}
			out.Image = data
			out.MimeType = part.InlineData.MimeType
		}
		if part.Text != "" {
			out.Text = part.Text
		}
	}

	if out.Image == nil {
		return nil, ErrNoImage
	}
	if out.MimeType == "" {
		out.MimeType = "image/png"
	}

	return out, nil
}

// RetryWithBackoff executes a function with exponential backoff retry logic.
func (c *Client) RetryWithBackoff(fn func() error, maxRetries int) error {
	backoffs := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if i < len(backoffs) {
			time.Sleep(backoffs[i])
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}

// RetryClient wraps EditImage in the backoff policy. Requests the service has
// definitively rejected are returned immediately instead of being retried.
type RetryClient struct {
	client     *Client
	maxRetries int
}

func NewRetryClient(client *Client, maxRetries int) *RetryClient {
	return &RetryClient{client: client, maxRetries: maxRetries}
}

func (r *RetryClient) EditImage(req EditRequest) (*EditResult, error) {
	var out *EditResult
	var permanent error
	err := r.client.RetryWithBackoff(func() error {
		res, err := r.client.EditImage(req)
		if err != nil {
			if errors.Is(err, ErrRejected) || errors.Is(err, ErrPayloadTooLarge) {
				permanent = err
				return nil
			}
			return err
		}
		out = res
		return nil
	}, r.maxRetries)
	if err != nil {
		return nil, err
	}
	if permanent != nil {
		return nil, permanent
	}
	return out, nil
}

func mimeOrPNG(mime string) string {
	if mime == "" {
		return "image/png"
	}
	return mime
}
