package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/christinemirimba/VibeCodingHackathon/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) Client {
	return NewClient(Config{
		APIKey:  "test-key",
		Model:   "gemini-1.5-flash",
		BaseURL: serverURL,
	})
}

func TestGenerateContent_Success(t *testing.T) {
	var gotPath string
	var gotBody generateContentRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"[{\"title\":\"Omelette\"}]"}]}}]}`))
	}))
	defer server.Close()

	text, err := newTestClient(server.URL).GenerateContent(context.Background(), "suggest recipes")

	require.NoError(t, err)
	assert.Equal(t, `[{"title":"Omelette"}]`, text)
	assert.Equal(t, "/models/gemini-1.5-flash:generateContent", gotPath)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "suggest recipes", gotBody.Contents[0].Parts[0].Text)
}

func TestGenerateContent_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GenerateContent(context.Background(), "prompt")

	assert.ErrorIs(t, err, domain.ErrModelRateLimited)
}

func TestGenerateContent_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GenerateContent(context.Background(), "prompt")

	assert.ErrorIs(t, err, domain.ErrModelInvalidCredentials)
}

func TestGenerateContent_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GenerateContent(context.Background(), "prompt")

	assert.ErrorIs(t, err, domain.ErrModelUnavailable)
}

func TestGenerateContent_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GenerateContent(context.Background(), "prompt")

	assert.ErrorIs(t, err, domain.ErrModelUnavailable)
}

func TestGenerateContent_MissingAPIKey(t *testing.T) {
	c := NewClient(Config{Model: "gemini-1.5-flash"})

	_, err := c.GenerateContent(context.Background(), "prompt")

	assert.ErrorIs(t, err, domain.ErrModelInvalidCredentials)
}
