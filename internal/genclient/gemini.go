package genclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Defaults applied by NewGemini to unset Config fields.
const (
	DefaultBaseURL     = "https://generativelanguage.googleapis.com/v1beta"
	DefaultScriptModel = "gemini-3-flash-preview"
	DefaultImageModel  = "gemini-2.5-flash-image"
	DefaultTimeout     = 60 * time.Second
)

const maxErrorBody = 512

// Config captures the settings needed to reach the Gemini API.
type Config struct {
	APIKey      string
	BaseURL     string
	ScriptModel string
	ImageModel  string
	Language    string
	Timeout     time.Duration
}

// Gemini is a Backend speaking the generateContent REST endpoint.
type Gemini struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the Gemini backend.
type Option func(*Gemini)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gemini) {
		if client != nil {
			g.httpClient = client
		}
	}
}

// NewGemini constructs a Gemini backend, filling unset fields with defaults.
func NewGemini(cfg Config, opts ...Option) *Gemini {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ScriptModel == "" {
		cfg.ScriptModel = DefaultScriptModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = DefaultImageModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	g := &Gemini{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType   string         `json:"responseMimeType,omitempty"`
	ResponseSchema     map[string]any `json:"responseSchema,omitempty"`
	ResponseModalities []string       `json:"responseModalities,omitempty"`
	ImageConfig        *imageConfig   `json:"imageConfig,omitempty"`
}

type imageConfig struct {
	AspectRatio string `json:"aspectRatio"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

// Script asks the script model for a title and a short shot list.
func (g *Gemini) Script(ctx context.Context, genre, idea string) (Script, error) {
	if g.cfg.APIKey == "" {
		return Script{}, ErrMissingCredential
	}

	req := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: scriptPrompt(genre, idea, g.cfg.Language)}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   scriptSchema,
		},
	}
	resp, err := g.generate(ctx, g.cfg.ScriptModel, req)
	if err != nil {
		return Script{}, err
	}

	text := strings.TrimSpace(resp.text())
	if text == "" {
		return Script{}, malformed("empty script text")
	}

	var script Script
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &script); err != nil {
		return Script{}, fmt.Errorf("%w: decode script: %v", ErrMalformedResponse, err)
	}
	return script, nil
}

// Image asks the image model for a still and returns it as a data URI.
func (g *Gemini) Image(ctx context.Context, prompt string) (string, error) {
	if g.cfg.APIKey == "" {
		return "", ErrMissingCredential
	}

	req := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: imagePrompt(prompt)}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"IMAGE"},
			ImageConfig:        &imageConfig{AspectRatio: "16:9"},
		},
	}
	resp, err := g.generate(ctx, g.cfg.ImageModel, req)
	if err != nil {
		return "", err
	}

	data := resp.firstInlineData()
	if data == nil || data.Data == "" {
		return "", malformed("no image payload")
	}
	mime := data.MimeType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + data.Data, nil
}

func (g *Gemini) generate(ctx context.Context, model string, payload generateRequest) (generateResponse, error) {
	var out generateResponse

	endpoint, err := url.JoinPath(g.cfg.BaseURL, "models", model+":generateContent")
	if err != nil {
		return out, fmt.Errorf("genclient: build url: %w", err)
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("genclient: encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return out, fmt.Errorf("genclient: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.cfg.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(body)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return out, &StatusError{StatusCode: resp.StatusCode, Body: snippet}
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("%w: decode response: %v", ErrMalformedResponse, err)
	}
	return out, nil
}

func (r generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

func (r generateResponse) firstInlineData() *inlineData {
	for _, c := range r.Candidates {
		for _, p := range c.Content.Parts {
			if p.InlineData != nil {
				return p.InlineData
			}
		}
	}
	return nil
}

// stripCodeFence removes a surrounding ```json fence some models emit.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
