package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <report-id>",
		Short: "Delete a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRuntimeConfig()
			if err != nil {
				return err
			}

			deleted, err := openStore(cfg).Delete(args[0])
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("report %s not found", args[0])
			}

			fmt.Printf("Deleted report %s\n", args[0])
			return nil
		},
	}

	return cmd
}
