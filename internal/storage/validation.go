// Package storage loads processed shipment batches into a SQL database.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Veraticus/tradeflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrInvalidIdentifier  = errors.New("invalid SQL identifier")
	ErrInvalidPolicy      = errors.New("invalid if-exists policy")
	ErrUnsupportedDriver  = errors.New("unsupported database driver")
	ErrTableExists        = errors.New("table already contains rows")
	ErrTableNotFound      = errors.New("table not found")
	ErrSchemaVersionDrift = errors.New("database schema version mismatch")
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateIdentifier ensures name can be interpolated as a quoted table or column name.
func validateIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return nil
}

// validateBatch ensures every column of batch is a usable identifier.
func validateBatch(batch *model.Batch) error {
	if batch == nil {
		return fmt.Errorf("%w: batch", ErrNilParameter)
	}
	for _, col := range batch.Columns {
		if err := validateIdentifier(col); err != nil {
			return fmt.Errorf("column %q: %w", col, err)
		}
	}
	return nil
}
