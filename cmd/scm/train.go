package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/pipeline"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/formatting"
)

func (a *app) trainCmd() *cobra.Command {
	var (
		input         string
		withArtifacts bool
		target        targetFlags
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Regenerate the model, ledger and record store from a CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input != "" {
				a.cfg.Pipeline.InputPath = input
			}

			p := pipeline.New(&a.cfg.Pipeline, a.infra.Records, a.infra.Ledger, a.infra.Logger)
			report, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s: %d records (%d authentic, %d suspect)\n",
				report.RunID, report.Rows, report.Authentic, report.Suspect)
			fmt.Fprintf(out, "  fallbacks %d, price defaults %d, carried forward %d, dropped %d\n",
				report.Fallbacks, report.PriceDefaults, report.CarriedForward, report.Dropped)
			fmt.Fprintf(out, "  years: input %d, prior %d, config %d, clock %d\n",
				report.Years.Input, report.Years.Prior, report.Years.Config, report.Years.Clock)
			if info, err := os.Stat(a.infra.Records.Path()); err == nil {
				fmt.Fprintf(out, "  wrote %s (%s)\n", a.infra.Records.Path(), formatting.FormatBytes(info.Size(), 1))
			}

			if !withArtifacts {
				return nil
			}
			target.apply(cmd, &a.cfg.Tracking)
			return a.generateArtifacts(cmd)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "input CSV (default: pipeline.input_path)")
	cmd.Flags().BoolVar(&withArtifacts, "with-artifacts", false, "render tracking artifacts after training")
	target.register(cmd)

	return cmd
}
