package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toraif/torwar/pkg/review"
	"github.com/toraif/torwar/pkg/source"
)

func newSaveCmd() *cobra.Command {
	var (
		catalogPath string
		inputFile   string
		workloadID  string
		customName  string
		userNotes   string
		pillars     []string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Capture and save a new report version",
		Long: `Capture the current review state and save it as a new report version.

The report is read either from a TOML review catalog (--catalog) or from a
raw report tree JSON file (--input). Each save gets a fresh report id and
the next version number for its workload.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRuntimeConfig()
			if err != nil {
				return err
			}

			if catalogPath == "" {
				catalogPath = cfg.CatalogPath
			}

			var tree *review.ReportTree
			switch {
			case inputFile != "":
				tree, err = loadTreeFile(inputFile)
			case catalogPath != "":
				tree, err = buildFromCatalog(cmd.Context(), catalogPath, workloadID, pillars)
			default:
				return fmt.Errorf("either --catalog or --input is required")
			}
			if err != nil {
				return err
			}

			if workloadID == "" {
				workloadID = tree.Workload.WorkloadID
			}

			s := openStore(cfg)
			reportID, err := s.Save(workloadID, tree.Workload.WorkloadName, tree, userNotes, customName)
			if err != nil {
				return err
			}

			record, err := s.Get(reportID)
			if err != nil {
				return err
			}

			fmt.Printf("Saved report %s\n", reportID)
			fmt.Printf("  Workload: %s (%s)\n", record.Metadata.WorkloadName, record.Metadata.WorkloadID)
			fmt.Printf("  Version:  %d\n", record.Metadata.Version)
			fmt.Printf("  Name:     %s\n", record.Metadata.CustomName)
			fmt.Printf("  Risks:    %d high / %d medium / %d low\n",
				record.Metadata.Summary.HighRisks,
				record.Metadata.Summary.MediumRisks,
				record.Metadata.Summary.LowRisks)
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to a TOML review catalog")
	cmd.Flags().StringVar(&inputFile, "input", "", "Path to a raw report tree JSON file")
	cmd.Flags().StringVar(&workloadID, "workload", "", "Workload id (defaults to the one in the source)")
	cmd.Flags().StringVar(&customName, "name", "", "Custom display name for this report version")
	cmd.Flags().StringVar(&userNotes, "notes", "", "Free-form notes to attach to this report version")
	cmd.Flags().StringSliceVar(&pillars, "pillars", nil, "Pillars to capture (defaults to all six)")

	return cmd
}

func buildFromCatalog(ctx context.Context, path, workloadID string, pillars []string) (*review.ReportTree, error) {
	catalog, err := source.LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	if workloadID == "" {
		workloadID = catalog.WorkloadID()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return source.NewBuilder(catalog, nil).Build(ctx, workloadID, pillars)
}

func loadTreeFile(path string) (*review.ReportTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file %s: %w", path, err)
	}
	var tree review.ReportTree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse report file %s: %w", path, err)
	}
	return &tree, nil
}
