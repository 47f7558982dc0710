package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/pipeline"
)

func (a *app) predictCmd() *cobra.Command {
	var (
		color string
		price string
		year  int
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Score one product with the trained model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			model, err := pipeline.LoadModel(a.cfg.Pipeline.ModelFile)
			if err != nil {
				return err
			}

			if year == 0 {
				year = a.cfg.Pipeline.IngestYear
			}
			if year == 0 {
				year = time.Now().Year()
			}

			amount := pipeline.ParsePrice(price)
			pred := model.Predict(color, amount, year)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (p=%s) color=%q price=%s year=%d\n",
				pred.Status(),
				decimal.NewFromFloat(pred.Proba).StringFixed(4),
				color,
				decimal.NewFromFloat(amount).StringFixed(2),
				year,
			)
			if pred.IsFallback() {
				fmt.Fprintf(out, "fallback: %s\n", pred.Reason)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "product color")
	cmd.Flags().StringVar(&price, "price", "", "product price, currency symbols allowed")
	cmd.Flags().IntVar(&year, "year", 0, "ingestion year (default: pipeline.ingest_year or the current year)")
	_ = cmd.MarkFlagRequired("color")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}
