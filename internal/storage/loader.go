package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/tradeflow/internal/csvio"
	"github.com/Veraticus/tradeflow/internal/model"
)

// IfExists decides what happens to rows already in the target table.
type IfExists string

// Load policies.
const (
	IfExistsFail    IfExists = "fail"
	IfExistsReplace IfExists = "replace"
	IfExistsAppend  IfExists = "append"
)

// chunkSize bounds the rows sent per INSERT statement.
const chunkSize = 500

// ParseIfExists validates a policy name. An empty name means append.
func ParseIfExists(s string) (IfExists, error) {
	switch p := IfExists(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return IfExistsAppend, nil
	case IfExistsFail, IfExistsReplace, IfExistsAppend:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q (want fail, replace or append)", ErrInvalidPolicy, s)
	}
}

// LoadResult describes a completed load.
type LoadResult struct {
	Table     string
	Dropped   []string
	Defaulted []string
	Rows      int
}

// TableColumns lists the columns of table.
func (s *Store) TableColumns(ctx context.Context, table string) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateIdentifier(table); err != nil {
		return nil, err
	}
	return s.dialect.tableColumns(ctx, s.db, table)
}

// FilterColumns restricts batch to the columns the table can hold. Managed
// columns are never loaded. It returns the batch columns that were dropped and
// the table columns the batch does not supply. A nil tableColumns disables
// filtering.
func FilterColumns(batch *model.Batch, tableColumns []string) (*model.Batch, []string, []string) {
	if tableColumns == nil {
		return batch, nil, nil
	}

	allowed := make(map[string]bool, len(tableColumns))
	for _, col := range tableColumns {
		if !managedColumns[col] {
			allowed[col] = true
		}
	}

	out := batch.Clone()
	var dropped []string
	for _, col := range batch.Columns {
		if !allowed[col] {
			dropped = append(dropped, col)
		}
	}
	out.DropColumn(dropped...)

	var defaulted []string
	for _, col := range tableColumns {
		if allowed[col] && !out.HasColumn(col) {
			defaulted = append(defaulted, col)
		}
	}
	return out, dropped, defaulted
}

// Load writes batch into table inside a single transaction. The table is
// created when missing. Any failure rolls back every row of the load.
func (s *Store) Load(ctx context.Context, batch *model.Batch, table string, policy IfExists) (*LoadResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateIdentifier(table); err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, fmt.Errorf("%w: batch", ErrNilParameter)
	}
	policy, err := ParseIfExists(string(policy))
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, s.dialect.createTableSQL(table)); err != nil {
		return nil, fmt.Errorf("failed to create table %s: %w", table, err)
	}

	prepared := PrepareBatch(batch)
	tableCols, err := s.dialect.tableColumns(ctx, tx, table)
	if err != nil {
		slog.Warn("Could not inspect table columns, loading all columns",
			"table", table,
			"error", err)
		tableCols = nil
	}

	filtered, dropped, defaulted := FilterColumns(prepared, tableCols)
	if len(dropped) > 0 {
		slog.Info("Dropping columns not present in table", "table", table, "columns", dropped)
	}
	if len(defaulted) > 0 {
		slog.Info("Table columns not supplied by batch", "table", table, "columns", defaulted)
	}
	if err := validateBatch(filtered); err != nil {
		return nil, err
	}

	if err := s.applyPolicy(ctx, tx, table, policy); err != nil {
		return nil, err
	}

	if err := s.insertRows(ctx, tx, table, filtered); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit load: %w", err)
	}

	slog.Info("Loaded shipments",
		"table", table,
		"rows", filtered.Len(),
		"columns", len(filtered.Columns),
		"policy", string(policy))

	return &LoadResult{
		Table:     table,
		Rows:      filtered.Len(),
		Dropped:   dropped,
		Defaulted: defaulted,
	}, nil
}

func (s *Store) applyPolicy(ctx context.Context, tx *sql.Tx, table string, policy IfExists) error {
	switch policy {
	case IfExistsFail:
		count, err := countRows(ctx, tx, table)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %s has %d rows", ErrTableExists, table, count)
		}
	case IfExistsReplace:
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", quoteIdent(table))); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	case IfExistsAppend:
	}
	return nil
}

// CountRows returns the number of rows in table.
func (s *Store) CountRows(ctx context.Context, table string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateIdentifier(table); err != nil {
		return 0, err
	}
	return countRows(ctx, s.db, table)
}

func countRows(ctx context.Context, q querier, table string) (int, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(table))
	if err := q.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}

func (s *Store) insertRows(ctx context.Context, tx *sql.Tx, table string, batch *model.Batch) error {
	if len(batch.Columns) == 0 || batch.Len() == 0 {
		return nil
	}

	for start := 0; start < batch.Len(); start += chunkSize {
		end := min(start+chunkSize, batch.Len())
		chunk := batch.Records[start:end]

		args := make([]any, 0, len(chunk)*len(batch.Columns))
		for _, rec := range chunk {
			for _, col := range batch.Columns {
				args = append(args, rec[col])
			}
		}

		query := s.dialect.insertSQL(table, batch.Columns, len(chunk))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert rows %d-%d: %w", start, end-1, err)
		}
	}
	return nil
}

// LoadCSV reads a processed CSV file and loads it into table.
func (s *Store) LoadCSV(ctx context.Context, path, table string, policy IfExists) (*LoadResult, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}

	batch, err := csvio.ReadFile(path)
	if err != nil {
		if errors.Is(err, csvio.ErrNoHeader) {
			return nil, fmt.Errorf("nothing to load from %s: %w", path, err)
		}
		return nil, err
	}
	return s.Load(ctx, batch, table, policy)
}
