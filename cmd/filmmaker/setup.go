package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mark3labs/filmmaker/internal/config"
)

var setupFlags struct {
	project bool
	force   bool
	apiKey  string
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create filmmaker configuration file",
	Long: `Create a filmmaker configuration file with sensible defaults.

By default, creates a global config at ~/.config/filmmaker/filmmaker.yml.
Use --project to create a project-local config in the current directory.
The file is written with 0600 permissions because it may hold an API key.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	setupCmd.Flags().StringVar(&setupFlags.apiKey, "api-key", "", "Gemini API key to store in the config")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := config.Default()
	cfg.APIKey = strings.TrimSpace(setupFlags.apiKey)

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Config written to: %s\n\n", targetPath)
	if !cfg.HasCredential() {
		fmt.Println("No API key stored. Set GEMINI_API_KEY or edit the file to enable generation.")
	}
	fmt.Println("Run 'filmmaker' to open the studio.")
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
