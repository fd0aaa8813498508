package grok

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mirror-mirror/internal/models"
)

func TestSampleImage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images/generations", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload sampleRequestBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "grok-imagine-image-pro", payload.Model)
		assert.Equal(t, "make it sparkle", payload.Prompt)
		assert.Equal(t, "data:image/jpeg;base64,Zm9v", payload.ImageURL)
		assert.Equal(t, "url", payload.ResponseFormat)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{{"url": "https://images.x.ai/result.png"}},
		})
	}))
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL, APIKey: "test-key"})
	url, err := client.SampleImage(context.Background(), SampleRequest{
		Prompt:   "make it sparkle",
		Model:    models.ModelImaginePro,
		ImageURL: "data:image/jpeg;base64,Zm9v",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://images.x.ai/result.png", url)
}

func TestSampleImageMissingKey(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	client := NewClient(Options{BaseURL: "http://unused"})
	_, err := client.SampleImage(context.Background(), SampleRequest{Prompt: "p", Model: models.ModelImagine})
	require.ErrorIs(t, err, ErrMissingKey)
}

func TestSampleImageKeyFromEnvironment(t *testing.T) {
	t.Setenv(APIKeyEnv, "env-key")

	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{{"url": "https://images.x.ai/out.png"}},
		})
	}))
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL})
	_, err := client.SampleImage(context.Background(), SampleRequest{Prompt: "p", Model: models.ModelImagine})
	require.NoError(t, err)
	assert.Equal(t, "Bearer env-key", gotAuth)
}

func TestSampleImageAuthFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL, APIKey: "wrong"})
	_, err := client.SampleImage(context.Background(), SampleRequest{Prompt: "p", Model: models.ModelImagine})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAuth))
}

func TestSampleImageServiceError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "model overloaded"},
		})
	}))
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL, APIKey: "k"})
	_, err := client.SampleImage(context.Background(), SampleRequest{Prompt: "p", Model: models.ModelImagine})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service error")
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestSampleImageMalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL, APIKey: "k"})
	_, err := client.SampleImage(context.Background(), SampleRequest{Prompt: "p", Model: models.ModelImagine})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed response")
}

func TestSampleImageEmptyResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": []map[string]string{}})
	}))
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL, APIKey: "k"})
	_, err := client.SampleImage(context.Background(), SampleRequest{Prompt: "p", Model: models.ModelImagine})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no result URL")
}
