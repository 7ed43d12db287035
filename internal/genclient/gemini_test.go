package genclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
}

func newTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(server.Close)
	return server
}

func TestGeminiScript(t *testing.T) {
	var gotReq generateRequest
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/script-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		payload := `{"title":"Ramen Zero","script":[{"id":"1","character":"Kai","dialogue":"Tea?","cameraAngle":"Close-up","action":"pours"}]}`
		require.NoError(t, json.NewEncoder(w).Encode(textResponse(payload)))
	})

	g := NewGemini(Config{APIKey: "test-key", BaseURL: server.URL, ScriptModel: "script-model"})
	script, err := g.Script(context.Background(), "Sci-Fi", "ramen")
	require.NoError(t, err)

	assert.Equal(t, "Ramen Zero", script.Title)
	require.Len(t, script.Lines, 1)
	assert.Equal(t, "Kai", script.Lines[0].Character)

	require.NotNil(t, gotReq.GenerationConfig)
	assert.Equal(t, "application/json", gotReq.GenerationConfig.ResponseMimeType)
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, `"ramen"`)
}

func TestGeminiScript_CodeFence(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(textResponse("```json\n{\"title\":\"Fenced\",\"script\":[]}\n```"))
	})

	g := NewGemini(Config{APIKey: "k", BaseURL: server.URL})
	script, err := g.Script(context.Background(), "Mystery", "idea")
	require.NoError(t, err)
	assert.Equal(t, "Fenced", script.Title)
}

func TestGeminiScript_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler func(w http.ResponseWriter, r *http.Request)
		wantErr error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"boom"}`))
			},
			wantErr: ErrTransport,
		},
		{
			name: "non json body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
			wantErr: ErrMalformedResponse,
		},
		{
			name: "empty candidates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[]}`))
			},
			wantErr: ErrMalformedResponse,
		},
		{
			name: "unparseable script",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(textResponse("not json at all"))
			},
			wantErr: ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, tt.handler)
			g := NewGemini(Config{APIKey: "k", BaseURL: server.URL})
			_, err := g.Script(context.Background(), "Sci-Fi", "idea")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestGeminiStatusError(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("denied"))
	})

	g := NewGemini(Config{APIKey: "bad", BaseURL: server.URL})
	_, err := g.Image(context.Background(), "a shot")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Contains(t, statusErr.Error(), "denied")
}

func TestGeminiImage(t *testing.T) {
	var gotReq generateRequest
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/image-model:generateContent", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"here"},{"inlineData":{"mimeType":"image/jpeg","data":"QUJD"}}]}}]}`))
	})

	g := NewGemini(Config{APIKey: "k", BaseURL: server.URL, ImageModel: "image-model"})
	image, err := g.Image(context.Background(), "Kai pours tea")
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,QUJD", image)

	assert.True(t, strings.HasPrefix(gotReq.Contents[0].Parts[0].Text, imageStylePrefix))
	require.NotNil(t, gotReq.GenerationConfig.ImageConfig)
	assert.Equal(t, "16:9", gotReq.GenerationConfig.ImageConfig.AspectRatio)
}

func TestGeminiImage_NoPayload(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(textResponse("I cannot draw that"))
	})

	g := NewGemini(Config{APIKey: "k", BaseURL: server.URL})
	_, err := g.Image(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGemini_MissingKey(t *testing.T) {
	g := NewGemini(Config{})
	_, err := g.Script(context.Background(), "Sci-Fi", "idea")
	assert.ErrorIs(t, err, ErrMissingCredential)
	_, err = g.Image(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`  {"a":1} `))
}
