package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/mark3labs/filmmaker/internal/logger"
	"github.com/mark3labs/filmmaker/internal/tui/theme"
)

const (
	logoText1 = "█▀▀ █ █   █▀▄▀█ █▀▄▀█ ▄▀█ █▄▀ █▀▀ █▀█"
	logoText2 = "█▀  █ █▄▄ █ ▀ █ █ ▀ █ █▀█ █ █ ██▄ █▀▄"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "filmmaker",
	Short: "Storyboard a short film from a one-line idea",
	RunE:  runStudio,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

filmmaker walks you through a six-step studio: pitch an idea, watch the
writers' room draft a script, cast digital actors, pick a set, block every
shot and export a final master.

Scripts and storyboard stills come from Gemini. Without an API key the
studio still runs, using placeholder output.`

	addRuntimeFlags(rootCmd)

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(catalogCmd)
}
