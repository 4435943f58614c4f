/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/bindb/pkg/config"
)

func newInitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a configuration file with a generated api key.

Examples:
  bindb init
  bindb init --config ./bindb.yaml --data-dir ./data --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			configPath, _ := cmd.Flags().GetString("config")
			if configPath == "" {
				configPath = config.GetDefaultConfigPath()
			}

			if config.ConfigExists(configPath) && !force {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", configPath)
			}

			cfg, err := config.BootstrapConfig(configPath, a.config.DataDir)
			if err != nil {
				return err
			}

			cmd.Printf("Wrote %s\n", configPath)
			cmd.Printf("Data directory: %s\n", cfg.DataDir)
			cmd.Printf("API key: %s...\n", cfg.Security.APIKey[:8])
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
	return cmd
}
