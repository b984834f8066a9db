package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pokedex-bot/internal/domain/entity"
)

func newTestServer(t *testing.T, status int, content string, inspect func(r *http.Request, body map[string]any)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if inspect != nil {
			inspect(r, body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
			return
		}
		resp := map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestClient_IdentifyReturnsName(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, "  pikachu\n", func(r *http.Request, body map[string]any) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.Equal(t, "gpt-4o", body["model"])
		require.Equal(t, float64(0), body["temperature"])
		require.Equal(t, float64(maxTokens), body["max_tokens"])

		messages := body["messages"].([]any)
		require.Len(t, messages, 2)
		system := messages[0].(map[string]any)
		require.Equal(t, systemPrompt, system["content"])
		parts := messages[1].(map[string]any)["content"].([]any)
		image := parts[1].(map[string]any)["image_url"].(map[string]any)
		require.Equal(t, entity.ImageDataURI([]byte("jpeg")), image["url"])
	})
	defer srv.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})
	result, err := client.Identify(context.Background(), []byte("jpeg"))
	require.NoError(t, err)
	require.True(t, result.Found())
	require.Equal(t, "pikachu", result.Name)
	require.Equal(t, entity.IdentifyIdentified, result.Outcome)
}

func TestClient_IdentifyDenylist(t *testing.T) {
	for _, answer := range []string{"none", "Unknown", "NOT A POKEMON", " no pokemon ", "Unable to identify"} {
		srv := newTestServer(t, http.StatusOK, answer, nil)
		client := NewClient(Config{APIKey: "k", BaseURL: srv.URL})

		result, err := client.Identify(context.Background(), []byte("jpeg"))
		srv.Close()

		require.NoError(t, err)
		require.False(t, result.Found(), answer)
		require.Equal(t, entity.IdentifyDenylisted, result.Outcome, answer)
	}
}

func TestClient_IdentifyEmptyAnswer(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, "   ", nil)
	defer srv.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: srv.URL})
	result, err := client.Identify(context.Background(), []byte("jpeg"))
	require.NoError(t, err)
	require.False(t, result.Found())
	require.Equal(t, entity.IdentifyEmpty, result.Outcome)
}

func TestClient_IdentifyAPIErrorIsSwallowed(t *testing.T) {
	srv := newTestServer(t, http.StatusUnauthorized, "", nil)
	defer srv.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: srv.URL})
	result, err := client.Identify(context.Background(), []byte("jpeg"))
	require.NoError(t, err)
	require.False(t, result.Found())
	require.Equal(t, entity.IdentifyFailed, result.Outcome)
	require.Error(t, result.Err)
}

func TestClient_IdentifyMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": "nope"`)
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: srv.URL})
	result, err := client.Identify(context.Background(), []byte("jpeg"))
	require.NoError(t, err)
	require.Equal(t, entity.IdentifyFailed, result.Outcome)
}

func TestClient_IdentifyTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(Config{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	result, err := client.Identify(context.Background(), []byte("jpeg"))
	require.NoError(t, err)
	require.Equal(t, entity.IdentifyFailed, result.Outcome)
}

func TestClient_IdentifyWithoutAPIKey(t *testing.T) {
	t.Setenv(apiKeyEnv, "")

	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	result, err := client.Identify(context.Background(), []byte("jpeg"))
	require.ErrorIs(t, err, entity.ErrConfiguration)
	require.False(t, result.Found())
}

func TestClient_APIKeyReadAtCallTime(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, "eevee", func(r *http.Request, _ map[string]any) {
		require.Equal(t, "Bearer from-env", r.Header.Get("Authorization"))
	})
	defer srv.Close()

	t.Setenv(apiKeyEnv, "")
	client := NewClient(Config{BaseURL: srv.URL})
	t.Setenv(apiKeyEnv, "from-env")

	result, err := client.Identify(context.Background(), []byte("jpeg"))
	require.NoError(t, err)
	require.Equal(t, "eevee", result.Name)
}
