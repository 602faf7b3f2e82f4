package main

import (
	"fmt"

	"github.com/Veraticus/tradeflow/internal/cli"
	"github.com/Veraticus/tradeflow/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultRawInput      = "data/raw/import_data_2017_2025.csv"
	defaultCleanedOutput = "data/processed/trade_cleaned_new.csv"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [input] [output]",
		Short: "Process a raw import CSV into the cleaned dataset",
		Long: `Run the full processing pipeline over a raw import file.

Stages run in order: load, clean, parse goods descriptions, engineer
features and save. Nothing is written unless every stage succeeds.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runPipeline,
	}

	cmd.Flags().IntP("workers", "w", 0, "parallel workers for description parsing (default: number of CPUs)")
	cmd.Flags().String("rules", "", "YAML file overriding the category rules")
	cmd.Flags().Bool("load", false, "load the processed data into the database after saving")
	addLoadFlags(cmd)

	// Bind to viper
	_ = viper.BindPFlag("pipeline.rules_file", cmd.Flags().Lookup("rules"))

	return cmd
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	input, output := defaultRawInput, defaultCleanedOutput
	if len(args) > 0 {
		input = args[0]
	}
	if len(args) > 1 {
		output = args[1]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	workers := cfg.Pipeline.Workers
	if cmd.Flags().Changed("workers") {
		workers, _ = cmd.Flags().GetInt("workers")
	}

	opts := []pipeline.Option{pipeline.WithReporter(cli.NewConsoleReporter(out))}

	if load, _ := cmd.Flags().GetBool("load"); load {
		table, policy, err := loadTarget(cmd, cfg.Database)
		if err != nil {
			return err
		}

		store, err := initStorage(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		opts = append(opts, pipeline.WithSink(store, table, policy))
	}

	p, err := pipeline.New(pipeline.Config{
		Workers:   workers,
		RulesFile: cfg.Pipeline.RulesFile,
	}, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatTitle("Processing trade data"))

	if _, err := p.Run(ctx, input, output); err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s Processed data saved to %s", cli.FolderIcon, output)))
	return nil
}
