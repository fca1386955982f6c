package main

import (
	"github.com/spf13/cobra"

	"hours-reconciliation/internal/gateway"
	"hours-reconciliation/internal/server"
	"hours-reconciliation/internal/usecase"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reconciliation results over HTTP",
		Long: `serve exposes the reconciliation result as a JSON API. The pipeline
runs lazily on the first request and the result is cached for the configured
TTL, so repeated dashboard polls do not re-read the source files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			repo := gateway.NewFileSourceRepository()
			uc := usecase.NewReconciliationUseCase(repo, cfg, root.log)
			srv := server.New(uc, cfg, root.log)

			root.log.Info().Int("port", cfg.Server.Port).Msg("starting result API")
			return srv.Run()
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port")
	return cmd
}
