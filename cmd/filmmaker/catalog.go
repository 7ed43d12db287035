package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the genres, actors and scenes available to the studio",
	RunE:  runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(rt.catalog)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
