package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions <workload-id>",
		Short: "List all report versions of a workload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRuntimeConfig()
			if err != nil {
				return err
			}

			versions, err := openStore(cfg).WorkloadVersions(args[0])
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				fmt.Printf("No reports found for workload %s.\n", args[0])
				return nil
			}

			fmt.Printf("Workload %s (%s)\n\n", versions[0].WorkloadName, args[0])
			fmt.Printf("%7s  %-36s  %-16s  %5s  %6s  %s\n",
				"VERSION", "REPORT ID", "CREATED", "HIGH", "MEDIUM", "NAME")
			for _, meta := range versions {
				fmt.Printf("%7d  %-36s  %-16s  %5d  %6d  %s\n",
					meta.Version,
					meta.ReportID,
					meta.CreatedAt.Format("2006-01-02 15:04"),
					meta.Summary.HighRisks,
					meta.Summary.MediumRisks,
					meta.CustomName)
			}
			return nil
		},
	}

	return cmd
}
