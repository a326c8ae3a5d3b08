package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toraif/torwar/pkg/render"
)

func newExportCmd() *cobra.Command {
	var (
		format    string
		outputDir string
		filename  string
	)

	cmd := &cobra.Command{
		Use:   "export <report-id>",
		Short: "Export a saved report to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRuntimeConfig()
			if err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = cfg.OutputDir
			}

			record, err := openStore(cfg).Get(args[0])
			if err != nil {
				return err
			}

			parsed := render.ParseFormat(format)
			out, err := render.RenderRecord(record, parsed)
			if err != nil {
				return err
			}

			path, err := render.Export(out, &render.Options{
				Format:    parsed,
				OutputDir: outputDir,
				Filename:  filename,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Exported report %s to %s\n", args[0], path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "html", "Output format (text, markdown, html, json)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory to write the export into")
	cmd.Flags().StringVar(&filename, "filename", "", "Export filename without extension (default: timestamped)")

	return cmd
}
