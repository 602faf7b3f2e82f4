package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/Veraticus/tradeflow/internal/classification"
	"github.com/Veraticus/tradeflow/internal/cleaning"
	"github.com/Veraticus/tradeflow/internal/common"
	"github.com/Veraticus/tradeflow/internal/csvio"
	"github.com/Veraticus/tradeflow/internal/features"
	"github.com/Veraticus/tradeflow/internal/model"
	"github.com/Veraticus/tradeflow/internal/parsing"
	"github.com/Veraticus/tradeflow/internal/storage"
)

// Stage names.
const (
	StageLoad     = model.StageLoad
	StageClean    = model.StageClean
	StageParse    = model.StageParse
	StageFeatures = model.StageFeatures
	StageSave     = model.StageSave
	StageDatabase = model.StageDatabase
)

// LoadStage reads the raw CSV input. Its input batch is ignored.
type LoadStage struct {
	Path string
}

// Name implements Stage.
func (s LoadStage) Name() string { return StageLoad }

// Run implements Stage.
func (s LoadStage) Run(_ context.Context, _ *model.Batch) (*model.Batch, error) {
	batch, err := csvio.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.NewUserError("input file not found",
				fmt.Errorf("%w: %s", common.ErrNotFound, s.Path))
		}
		return nil, err
	}
	slog.Info("Loaded raw data", "path", s.Path, "rows", batch.Len(), "columns", len(batch.Columns))
	return batch, nil
}

// CleanStage normalizes dates, numbers and units.
type CleanStage struct{}

// Name implements Stage.
func (CleanStage) Name() string { return StageClean }

// Run implements Stage.
func (CleanStage) Run(_ context.Context, batch *model.Batch) (*model.Batch, error) {
	return cleaning.CleanBaseData(batch), nil
}

// ParseStage extracts and reconciles fields from goods descriptions.
type ParseStage struct {
	Parser *parsing.Parser
}

// Name implements Stage.
func (ParseStage) Name() string { return StageParse }

// Run implements Stage.
func (s ParseStage) Run(ctx context.Context, batch *model.Batch) (*model.Batch, error) {
	parser := s.Parser
	if parser == nil {
		parser = parsing.NewParser()
	}
	return parser.Parse(ctx, batch)
}

// FeatureStage computes grand totals and assigns categories.
type FeatureStage struct {
	Categorizer *classification.Categorizer
}

// Name implements Stage.
func (FeatureStage) Name() string { return StageFeatures }

// Run implements Stage.
func (s FeatureStage) Run(_ context.Context, batch *model.Batch) (*model.Batch, error) {
	return features.EngineerFeatures(batch, s.Categorizer), nil
}

// SaveStage writes the processed batch as CSV and passes it through.
type SaveStage struct {
	Path string
}

// Name implements Stage.
func (s SaveStage) Name() string { return StageSave }

// Run implements Stage.
func (s SaveStage) Run(_ context.Context, batch *model.Batch) (*model.Batch, error) {
	if err := csvio.WriteFile(s.Path, batch); err != nil {
		return nil, err
	}
	slog.Info("Saved processed data", "path", s.Path, "rows", batch.Len())
	return batch, nil
}

// DatabaseStage loads the processed batch into a database table.
type DatabaseStage struct {
	Sink   Sink
	Table  string
	Policy storage.IfExists
}

// Name implements Stage.
func (s DatabaseStage) Name() string { return StageDatabase }

// Run implements Stage.
func (s DatabaseStage) Run(ctx context.Context, batch *model.Batch) (*model.Batch, error) {
	if _, err := s.Sink.Load(ctx, batch, s.Table, s.Policy); err != nil {
		return nil, err
	}
	return batch, nil
}
