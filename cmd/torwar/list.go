package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var workloadID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved reports, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRuntimeConfig()
			if err != nil {
				return err
			}

			reports, err := openStore(cfg).List(workloadID)
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				fmt.Println("No reports found.")
				return nil
			}

			fmt.Printf("%-36s  %-20s  %7s  %-16s  %s\n",
				"REPORT ID", "WORKLOAD", "VERSION", "CREATED", "NAME")
			for _, meta := range reports {
				fmt.Printf("%-36s  %-20s  %7d  %-16s  %s\n",
					meta.ReportID,
					meta.WorkloadName,
					meta.Version,
					meta.CreatedAt.Format("2006-01-02 15:04"),
					meta.CustomName)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&workloadID, "workload", "", "Only list reports for this workload id")

	return cmd
}
