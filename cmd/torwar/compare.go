package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toraif/torwar/pkg/diff"
	"github.com/toraif/torwar/pkg/render"
)

func newCompareCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "compare <report-id-1> <report-id-2>",
		Short: "Compare two report versions",
		Long: `Compare two saved reports and show what changed between them.

The first report is treated as the older snapshot. Output covers changed
answers, risk level transitions, new and removed questions, and a summary
delta of risk counts.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := diff.ValidateComparePair(args[0], args[1]); err != nil {
				return err
			}

			cfg, err := loadRuntimeConfig()
			if err != nil {
				return err
			}
			s := openStore(cfg)

			rec1, err := s.Get(args[0])
			if err != nil {
				return err
			}
			rec2, err := s.Get(args[1])
			if err != nil {
				return err
			}

			cmpResult, err := diff.CompareRecords(rec1, rec2)
			if err != nil {
				return err
			}

			out, err := render.RenderComparison(cmpResult, render.ParseFormat(format))
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
