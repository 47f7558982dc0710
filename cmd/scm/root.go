package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/config"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/infrastructure"
)

// app carries state shared by every subcommand once the root pre-run has loaded it.
type app struct {
	cfgFile   string
	logLevel  string
	logFormat string

	cfg   *config.Config
	infra *infrastructure.Infrastructure
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "scm",
		Short: "Supply-chain catalogue pipeline",
		Long: `scm builds the product record store from a CSV export: it trains the
status classifier, hashes every record into the ledger, and renders the
tracking QR codes the catalogue links to.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./config.toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format (text, json)")

	root.AddCommand(a.trainCmd())
	root.AddCommand(a.artifactsCmd())
	root.AddCommand(a.predictCmd())

	return root
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	var (
		cfg *config.Config
		err error
	)
	if a.cfgFile != "" {
		cfg, err = config.LoadFile(a.cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if err := cfg.Logging.Override(a.logLevel, a.logFormat); err != nil {
		return fmt.Errorf("logging flags: %w", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.infra = infra
	a.infra.Logger = a.infra.Logger.With("command", cmd.Name())
	return nil
}
