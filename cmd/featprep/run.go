package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"featprep/internal/config"
	"featprep/internal/pipeline"
)

func newRunCmd(global *globalOptions) *cobra.Command {
	var req pipeline.Request

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Split a table, fit on the training rows and export every split",
		Example: `  featprep run --data data/raw/houses.csv --target price
  featprep run --data data/raw/houses.xlsx --target price --out data/processed --trace trace.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, err := global.open(ctx)
			if err != nil {
				return err
			}
			defer s.close(ctx)

			result, err := pipeline.NewRunner(s.cfg, s.telemetry, s.logger).Run(ctx, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s\n", result.RunID)
			for _, split := range []string{config.SplitTrain, config.SplitValidation, config.SplitTest} {
				fmt.Fprintf(out, "  %-10s %d rows\n", split, result.Rows[split])
			}
			fmt.Fprintf(out, "  features   %d\n", len(result.FeatureNames))

			files := append([]string(nil), result.Files...)
			sort.Strings(files)
			for _, f := range files {
				fmt.Fprintf(out, "  wrote      %s\n", f)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.DataPath, "data", "", "CSV or XLSX file to preprocess")
	cmd.Flags().StringVar(&req.Target, "target", "", "Label column kept out of the features")
	cmd.Flags().StringVar(&req.OutputDir, "out", "", "Output directory (overrides paths.output_dir)")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}
