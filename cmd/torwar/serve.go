package main

import (
	"github.com/spf13/cobra"

	"github.com/toraif/torwar/pkg/logger"
	"github.com/toraif/torwar/pkg/server"
	"github.com/toraif/torwar/pkg/store"
)

func newServeCmd() *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the report JSON API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRuntimeConfig()
			if err != nil {
				return err
			}
			if listenAddr != "" {
				cfg.ListenAddr = listenAddr
			}

			log, err := logger.New(cfg.LogMode)
			if err != nil {
				return err
			}
			defer log.Sync()

			s := store.New(cfg.DataDir, log)
			router := server.NewRouter(server.RouterConfig{
				ReportHandler: server.NewReportHandler(s, log),
				CORSOrigins:   cfg.CORSOrigins,
			})

			log.Info("starting report server", "addr", cfg.ListenAddr, "data_dir", cfg.DataDir)
			return router.Run(cfg.ListenAddr)
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "", "Bind address (overrides configuration)")

	return cmd
}
