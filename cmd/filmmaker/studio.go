package main

import (
	"github.com/spf13/cobra"

	"github.com/mark3labs/filmmaker/internal/tui/studio"
)

func runStudio(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	return studio.Run(cmd.Context(), studio.Options{
		Generator: rt.client,
		Catalog:   rt.catalog,
	})
}
