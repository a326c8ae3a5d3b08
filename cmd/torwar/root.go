package main

import (
	"github.com/spf13/cobra"

	"github.com/toraif/torwar/pkg/config"
	"github.com/toraif/torwar/pkg/store"
)

var (
	configFile string
	dataDir    string
)

// newRootCmd creates the torwar root command
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "torwar",
		Short: "Save, browse and compare Well-Architected review reports",
		Long: `torwar manages versioned snapshots of AWS Well-Architected review reports.

Reports are captured from a review catalog (or a raw report file), stored as
versioned JSON snapshots per workload, and can be listed, viewed, exported
and compared across versions to track risk remediation over time.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to YAML configuration file")
	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Report store directory (overrides configuration)")

	cmd.AddCommand(newSaveCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newViewCmd())
	cmd.AddCommand(newVersionsCmd())
	cmd.AddCommand(newDeleteCmd())
	cmd.AddCommand(newCompareCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// loadRuntimeConfig resolves configuration from file, environment and flags.
func loadRuntimeConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

func openStore(cfg *config.Config) *store.Store {
	return store.New(cfg.DataDir, nil)
}
