// Package studiomcp exposes the studio's generation client and catalogs as
// MCP tools over streamable HTTP.
package studiomcp

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mark3labs/filmmaker/internal/catalog"
	"github.com/mark3labs/filmmaker/internal/genclient"
	"github.com/mark3labs/filmmaker/internal/logger"
)

// Generator is the fail-soft generation boundary the tools call.
type Generator interface {
	GenerateScript(ctx context.Context, genre, idea string) genclient.Script
	GenerateImage(ctx context.Context, prompt string) string
}

// Server serves the filmmaker tools.
type Server struct {
	gen     Generator
	catalog *catalog.Catalog

	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
	port       int
	mu         sync.Mutex
}

// New creates a server. It does not listen until Start is called.
func New(gen Generator, cat *catalog.Catalog) *Server {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Server{gen: gen, catalog: cat}
}

// Start listens on 127.0.0.1:port, or a random free port when port is 0,
// and returns the port in use.
func (s *Server) Start(ctx context.Context, port int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	s.mcpServer = server.NewMCPServer(
		"filmmaker",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools()

	if port == 0 {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return 0, fmt.Errorf("failed to find available port: %w", err)
		}
		port = listener.Addr().(*net.TCPAddr).Port
		_ = listener.Close()
	}
	s.port = port

	s.httpServer = server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	)

	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	httpServer := s.httpServer
	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Start(addr); err != nil {
			logger.Error("MCP server error: %v", err)
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.httpServer = nil
			return 0, fmt.Errorf("failed to start HTTP server: %w", err)
		}
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		s.httpServer = nil
		return 0, ctx.Err()
	}

	logger.Info("MCP server ready on port %d", s.port)
	return s.port, nil
}

// Stop shuts the HTTP server down. It is safe to call more than once.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Warn("Error stopping MCP server: %v", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	s.httpServer = nil
	s.mcpServer = nil
	logger.Debug("MCP server stopped")
	return nil
}

// URL returns the MCP endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://localhost:%d/mcp", s.port)
}
