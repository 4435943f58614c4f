/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/bindb/pkg/api"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start the bindb REST API server.

Routes are served under /api/v1 and Prometheus metrics at /metrics. When an
api key is configured every /api/v1 request must carry it in X-API-Key.

Examples:
  bindb serve
  bindb serve --port 9000 --api-key mysecretkey`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.config.Port, _ = cmd.Flags().GetInt("port")
			}
			if cmd.Flags().Changed("bind") {
				a.config.Bind, _ = cmd.Flags().GetString("bind")
			}
			if cmd.Flags().Changed("api-key") {
				a.config.Security.APIKey, _ = cmd.Flags().GetString("api-key")
			}
			if err := a.config.Validate(); err != nil {
				return err
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return api.StartServer(ctx, s, api.ServerConfig{
				Addr:         a.config.Addr(),
				APIKey:       a.config.Security.APIKey,
				MaxInputSize: a.config.Decode.MaxInputSize,
			}, a.logger)
		},
	}
	cmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	cmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	cmd.Flags().String("api-key", "", "API key required in X-API-Key")
	return cmd
}
