package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Veraticus/tradeflow/internal/cli"
	"github.com/Veraticus/tradeflow/internal/common"
	"github.com/spf13/cobra"
)

const defaultLoadInput = "data/processed/trade_cleaned.csv"

func loadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load [csv]",
		Short: "Load a processed CSV into the database",
		Long: `Load a processed trade CSV into the configured database table.

Columns are mapped to the table's snake_case names; columns the table does
not have are dropped. The load runs in a single transaction.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLoad,
	}

	addLoadFlags(cmd)
	return cmd
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	path := defaultLoadInput
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err != nil {
		return common.NewUserError(
			fmt.Sprintf("CSV file not found: %s", path),
			fmt.Errorf("%w: %w", common.ErrNotFound, err),
		)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	table, policy, err := loadTarget(cmd, cfg.Database)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Loading %s into %s", path, table)))

	result, err := store.LoadCSV(ctx, path, table, policy)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	if len(result.Dropped) > 0 {
		fmt.Fprintln(out, cli.FormatWarning("Dropped columns not in table: "+strings.Join(result.Dropped, ", ")))
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Loaded %d rows into %s", result.Rows, result.Table)))
	return nil
}
