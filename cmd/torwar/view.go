package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toraif/torwar/pkg/render"
)

func newViewCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "view <report-id>",
		Short: "View a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRuntimeConfig()
			if err != nil {
				return err
			}

			record, err := openStore(cfg).Get(args[0])
			if err != nil {
				return err
			}

			out, err := render.RenderRecord(record, render.ParseFormat(format))
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, markdown, html, json)")

	return cmd
}
