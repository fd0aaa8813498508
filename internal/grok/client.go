package grok

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"mirror-mirror/internal/models"
)

// APIKeyEnv is the environment variable the xAI tooling reads its
// credential from. The workflow exports the user-supplied key here for
// the lifetime of the client.
const APIKeyEnv = "XAI_API_KEY"

const defaultBaseURL = "https://api.x.ai"

var (
	ErrMissingKey = errors.New("grok: API key is missing")
	ErrAuth       = errors.New("grok: authentication failed")
)

type Options struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client calls the xAI image generation endpoint. One request per
// generation; no retry or backoff.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	token := strings.TrimSpace(opts.APIKey)
	if token == "" {
		token = strings.TrimSpace(os.Getenv(APIKeyEnv))
	}
	return &Client{
		httpClient: client,
		baseURL:    base,
		token:      token,
	}
}

// SampleRequest carries one image transformation request: the prompt,
// the model identifier, and the source image as a base64 data URI.
type SampleRequest struct {
	Prompt   string
	Model    models.Model
	ImageURL string
}

type sampleRequestBody struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	ImageURL       string `json:"image_url,omitempty"`
	ResponseFormat string `json:"response_format"`
}

type sampleResponseBody struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SampleImage submits the prompt and encoded source image and returns
// the URL of the generated result.
func (c *Client) SampleImage(ctx context.Context, req SampleRequest) (string, error) {
	if c.token == "" {
		return "", ErrMissingKey
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return "", errors.New("grok: prompt required")
	}

	body, err := json.Marshal(sampleRequestBody{
		Model:          req.Model.String(),
		Prompt:         req.Prompt,
		ImageURL:       req.ImageURL,
		ResponseFormat: "url",
	})
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/v1/images/generations"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("User-Agent", "MirrorMirror/1.0")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("grok: request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("grok: could not read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", fmt.Errorf("%w (%s)", ErrAuth, resp.Status)
	default:
		return "", fmt.Errorf("grok: service error %s: %s", resp.Status, errorMessage(payload))
	}

	var decoded sampleResponseBody
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", fmt.Errorf("grok: malformed response: %w", err)
	}
	if len(decoded.Data) == 0 || decoded.Data[0].URL == "" {
		return "", errors.New("grok: response contained no result URL")
	}

	return decoded.Data[0].URL, nil
}

func errorMessage(payload []byte) string {
	var decoded sampleResponseBody
	if err := json.Unmarshal(payload, &decoded); err == nil && decoded.Error.Message != "" {
		return decoded.Error.Message
	}
	msg := strings.TrimSpace(string(payload))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
