package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mark3labs/filmmaker/internal/studiomcp"
)

var mcpFlags struct {
	port int
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the studio tools over MCP",
	Long: `Start an MCP server exposing generate-script, generate-image,
list-actors and list-scenes over streamable HTTP on 127.0.0.1.`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().IntVar(&mcpFlags.port, "port", 0, "Port to listen on (0 picks a free port)")
}

func runMCP(cmd *cobra.Command, args []string) error {
	if mcpFlags.port < 0 || mcpFlags.port > 65535 {
		return fmt.Errorf("invalid port: %d", mcpFlags.port)
	}

	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := studiomcp.New(rt.client, rt.catalog)
	if _, err := srv.Start(ctx, mcpFlags.port); err != nil {
		return fmt.Errorf("failed to start MCP server: %w", err)
	}
	defer func() {
		if err := srv.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("MCP server listening on %s\n", srv.URL())
	if !rt.client.Available() {
		fmt.Println("No API key configured; tools return placeholder output.")
	}

	<-ctx.Done()
	if err := ctx.Err(); err != nil && err != context.Canceled {
		return err
	}
	fmt.Println("\nShutting down gracefully...")
	return nil
}
