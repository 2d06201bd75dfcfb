package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"featprep/internal/pipeline"
	"featprep/pkg/contracts/domain"
)

func newDescribeCmd(global *globalOptions) *cobra.Command {
	var (
		dataPath   string
		target     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Fit on a whole table and print what was learned per column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, err := global.open(ctx)
			if err != nil {
				return err
			}
			defer s.close(ctx)

			summary, err := pipeline.NewRunner(s.cfg, s.telemetry, s.logger).Describe(ctx, dataPath, target)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			return writeSummaryTable(cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "CSV or XLSX file to describe")
	cmd.Flags().StringVar(&target, "target", "", "Label column left out of the summary")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the summary as JSON")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func writeSummaryTable(w io.Writer, summary []domain.ColumnSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tKIND\tSTRATEGY\tFILL\tMISSING\tDETAIL")
	for _, s := range summary {
		var detail string
		if s.Kind == domain.KindCategorical {
			detail = fmt.Sprintf("classes=%s fallback=%s", strings.Join(s.Classes, ","), s.Fallback)
		} else {
			detail = fmt.Sprintf("mean=%g std=%g", s.Mean, s.Std)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", s.Name, s.Kind, s.Strategy, s.Fill, s.Missing, detail)
	}
	return tw.Flush()
}
