package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tradeflow/internal/config"
	"github.com/Veraticus/tradeflow/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadConfig resolves the configuration bound into viper.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context, db config.DatabaseConfig) (*storage.Store, error) {
	store, err := storage.Open(db.Storage())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("Database ready", "driver", store.Driver(), "table", db.Table)
	return store, nil
}

// loadTarget returns the table and policy for a load, preferring flags over config.
func loadTarget(cmd *cobra.Command, db config.DatabaseConfig) (string, storage.IfExists, error) {
	table := db.Table
	if cmd.Flags().Changed("table") {
		table, _ = cmd.Flags().GetString("table")
	}

	policyName := db.IfExists
	if cmd.Flags().Changed("if-exists") {
		policyName, _ = cmd.Flags().GetString("if-exists")
	}

	policy, err := storage.ParseIfExists(policyName)
	if err != nil {
		return "", "", err
	}
	return table, policy, nil
}

// addLoadFlags registers the flags shared by commands that write to the database.
func addLoadFlags(cmd *cobra.Command) {
	cmd.Flags().String("table", storage.DefaultTable, "database table to load into")
	cmd.Flags().String("if-exists", string(storage.IfExistsAppend), "what to do with existing rows (fail, replace, append)")
}
