package pipeline

import (
	"context"

	"github.com/Veraticus/tradeflow/internal/model"
	"github.com/Veraticus/tradeflow/internal/storage"
)

// Stage is one step of a pipeline run. Run must not mutate its input.
type Stage interface {
	Name() string
	Run(ctx context.Context, batch *model.Batch) (*model.Batch, error)
}

// Reporter receives progress notifications while a pipeline runs.
type Reporter interface {
	StageStarted(name string, index, total int)
	StageFinished(result model.StageResult)
	StageFailed(name string, err error)
	Summary(summary *model.RunSummary)
}

// Sink persists a finished batch, typically into a database table.
type Sink interface {
	Load(ctx context.Context, batch *model.Batch, table string, policy storage.IfExists) (*storage.LoadResult, error)
}

// NopReporter discards every notification.
type NopReporter struct{}

// StageStarted implements Reporter.
func (NopReporter) StageStarted(string, int, int) {}

// StageFinished implements Reporter.
func (NopReporter) StageFinished(model.StageResult) {}

// StageFailed implements Reporter.
func (NopReporter) StageFailed(string, error) {}

// Summary implements Reporter.
func (NopReporter) Summary(*model.RunSummary) {}
