// Package genclient talks to the hosted generative model that writes
// scripts and renders shot stills.
//
// Backend implementations return errors. Client wraps a Backend with the
// fail-soft contract the studio relies on: every call yields a usable
// value, and failures are logged and replaced by fallbacks.
package genclient

import (
	"context"
	"errors"
	"strings"

	"github.com/mark3labs/filmmaker/internal/logger"
)

const (
	// FallbackTitle is the title returned when no script could be generated.
	FallbackTitle = "Untitled Project"
	// PlaceholderImage is returned when no still could be generated.
	PlaceholderImage = "https://picsum.photos/1280/720"
)

// Backend performs the raw generation calls.
type Backend interface {
	Script(ctx context.Context, genre, idea string) (Script, error)
	Image(ctx context.Context, prompt string) (string, error)
}

// Client is the fail-soft generation client.
type Client struct {
	backend           Backend
	missingCredential bool
}

// New builds a Client over the Gemini backend. A missing API key is
// reported once here; every later call short-circuits to its fallback.
func New(cfg Config, opts ...Option) *Client {
	c := NewWithBackend(NewGemini(cfg, opts...))
	if strings.TrimSpace(cfg.APIKey) == "" {
		c.missingCredential = true
		logger.Warn("No API key configured; scripts and images will use fallbacks")
	}
	return c
}

// NewWithBackend wraps an arbitrary backend.
func NewWithBackend(b Backend) *Client {
	return &Client{backend: b}
}

// Available reports whether calls can reach the backend.
func (c *Client) Available() bool {
	return !c.missingCredential
}

// GenerateScript never fails. On any error it returns FallbackTitle and no lines.
func (c *Client) GenerateScript(ctx context.Context, genre, idea string) Script {
	if c.missingCredential {
		return Script{Title: FallbackTitle}
	}

	script, err := c.backend.Script(ctx, genre, idea)
	if err != nil {
		logScriptError(err)
		return Script{Title: FallbackTitle}
	}
	if script.Title == "" {
		script.Title = FallbackTitle
	}
	logger.Debug("Generated script %q with %d lines", script.Title, len(script.Lines))
	return script
}

// GenerateImage never fails. On any error it returns PlaceholderImage.
func (c *Client) GenerateImage(ctx context.Context, prompt string) string {
	if c.missingCredential {
		return PlaceholderImage
	}

	image, err := c.backend.Image(ctx, prompt)
	if err != nil || image == "" {
		if err != nil {
			logger.Warn("Image generation failed: %v", err)
		}
		return PlaceholderImage
	}
	return image
}

func logScriptError(err error) {
	switch {
	case errors.Is(err, ErrMissingCredential):
		logger.Warn("Script generation skipped: %v", err)
	case errors.Is(err, ErrMalformedResponse):
		logger.Error("Script response could not be parsed: %v", err)
	default:
		logger.Error("Script generation failed: %v", err)
	}
}
