/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/bindb/pkg/config"
	"github.com/ssargent/bindb/pkg/storage"
)

// app carries the resolved configuration and logger to subcommands
type app struct {
	config *config.Config
	logger *slog.Logger
}

// newRootCmd builds the command tree. Building it per call keeps flag state
// from leaking between executions.
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "bindb",
		Short: "bindb - binary database decoder",
		Long: `bindb decodes tagged binary databases into id/value mappings.

Databases can be decoded from files, built from YAML manifests, kept in a
local store and served over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "Data directory for the store")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newDecodeCmd(a),
		newEncodeCmd(a),
		newPutCmd(a),
		newGetCmd(a),
		newListCmd(a),
		newDeleteCmd(a),
		newServeCmd(a),
		newInitCmd(a),
	)
	return rootCmd
}

// setup resolves configuration: an explicit --config file, else the default
// path when it exists, else built-in defaults. Flags override the file. init
// writes the file named by --config rather than reading it.
func (a *app) setup(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if cmd.Name() == "init" {
		configPath = ""
	} else if configPath == "" && config.ConfigExists(config.GetDefaultConfigPath()) {
		configPath = config.GetDefaultConfigPath()
	}

	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.DataDir = dataDir
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}

	logger, err := cfg.Logging.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.config = cfg
	a.logger = logger
	return nil
}

// openStore opens the pebble store under the configured data directory
func (a *app) openStore() (*storage.Store, error) {
	if err := os.MkdirAll(a.config.DataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return storage.Open(a.config.DataDir, a.logger)
}

// readInput reads a whole database from path, or stdin when path is "-"
func (a *app) readInput(cmd *cobra.Command, path string) ([]byte, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	limit := a.config.Decode.MaxInputSize
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("input exceeds %d bytes", limit)
	}
	return data, nil
}

// Execute runs the bindb command line. It is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
