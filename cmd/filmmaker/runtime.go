package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mark3labs/filmmaker/internal/catalog"
	"github.com/mark3labs/filmmaker/internal/config"
	"github.com/mark3labs/filmmaker/internal/genclient"
	"github.com/mark3labs/filmmaker/internal/logger"
)

var runtimeFlags struct {
	scriptModel string
	imageModel  string
	language    string
	catalogFile string
	logLevel    string
	logFile     string
}

// addRuntimeFlags registers the flags that override configuration.
func addRuntimeFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&runtimeFlags.scriptModel, "script-model", "", "Model used to write scripts")
	cmd.PersistentFlags().StringVar(&runtimeFlags.imageModel, "image-model", "", "Model used to render stills")
	cmd.PersistentFlags().StringVar(&runtimeFlags.language, "language", "", "Language of generated dialogue")
	cmd.PersistentFlags().StringVar(&runtimeFlags.catalogFile, "catalog", "", "YAML file replacing the built-in actor and scene catalog")
	cmd.PersistentFlags().StringVar(&runtimeFlags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&runtimeFlags.logFile, "log-file", "", "Write logs to this file")
}

// applyFlags copies explicitly set flags over the loaded configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	set := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}
	set("script-model", &cfg.ScriptModel, runtimeFlags.scriptModel)
	set("image-model", &cfg.ImageModel, runtimeFlags.imageModel)
	set("language", &cfg.Language, runtimeFlags.language)
	set("catalog", &cfg.CatalogFile, runtimeFlags.catalogFile)
	set("log-level", &cfg.LogLevel, runtimeFlags.logLevel)
	set("log-file", &cfg.LogFile, runtimeFlags.logFile)
}

// backends is everything a command needs to talk to the studio backends.
type backends struct {
	catalog *catalog.Catalog
	client  *genclient.Client
}

func loadRuntime(cmd *cobra.Command) (*backends, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, cfg)

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	client := genclient.New(genclient.Config{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		ScriptModel: cfg.ScriptModel,
		ImageModel:  cfg.ImageModel,
		Language:    cfg.Language,
		Timeout:     cfg.Timeout(),
	})

	return &backends{catalog: cat, client: client}, nil
}
