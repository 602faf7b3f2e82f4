// Package pipeline runs the shipment processing stages in order:
// load, clean, parse, features and save.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/tradeflow/internal/classification"
	"github.com/Veraticus/tradeflow/internal/common"
	"github.com/Veraticus/tradeflow/internal/model"
	"github.com/Veraticus/tradeflow/internal/parsing"
	"github.com/Veraticus/tradeflow/internal/storage"
	"github.com/google/uuid"
)

// Config holds configuration options for the pipeline.
type Config struct {
	RulesFile string
	Workers   int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Workers: 1}
}

// Pipeline orchestrates a processing run.
type Pipeline struct {
	reporter    Reporter
	sink        Sink
	parser      *parsing.Parser
	categorizer *classification.Categorizer
	now         func() time.Time
	table       string
	policy      storage.IfExists
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithReporter sets the progress reporter.
func WithReporter(r Reporter) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.reporter = r
		}
	}
}

// WithCategorizer overrides the categorization rules.
func WithCategorizer(c *classification.Categorizer) Option {
	return func(p *Pipeline) {
		if c != nil {
			p.categorizer = c
		}
	}
}

// WithSink adds a database stage after the CSV is written.
func WithSink(sink Sink, table string, policy storage.IfExists) Option {
	return func(p *Pipeline) {
		p.sink = sink
		p.table = table
		p.policy = policy
	}
}

// New creates a pipeline from cfg. A configured rules file replaces the
// built-in categorization tables.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	categorizer := classification.NewDefaultCategorizer()
	if cfg.RulesFile != "" {
		rules, err := classification.LoadRules(cfg.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load category rules: %w", err)
		}
		categorizer, err = classification.NewCategorizer(rules)
		if err != nil {
			return nil, fmt.Errorf("failed to build categorizer: %w", err)
		}
	}

	p := &Pipeline{
		reporter:    NopReporter{},
		parser:      parsing.NewParser(parsing.WithWorkers(cfg.Workers)),
		categorizer: categorizer,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Stages returns the stages of a run from input to output.
func (p *Pipeline) Stages(input, output string) []Stage {
	stages := []Stage{
		LoadStage{Path: input},
		CleanStage{},
		ParseStage{Parser: p.parser},
		FeatureStage{Categorizer: p.categorizer},
		SaveStage{Path: output},
	}
	if p.sink != nil {
		stages = append(stages, DatabaseStage{Sink: p.sink, Table: p.table, Policy: p.policy})
	}
	return stages
}

// Run processes input into output. Output is written only after every
// transform stage has succeeded.
func (p *Pipeline) Run(ctx context.Context, input, output string) (*model.RunSummary, error) {
	summary := &model.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: p.now(),
		Input:     input,
		Output:    output,
	}

	slog.Info("Starting pipeline run", "run_id", summary.RunID, "input", input, "output", output)

	if err := p.RunStages(ctx, p.Stages(input, output), summary); err != nil {
		return summary, err
	}
	return summary, nil
}

// RunStages executes stages in order, recording each into summary. The first
// failure aborts the run.
func (p *Pipeline) RunStages(ctx context.Context, stages []Stage, summary *model.RunSummary) error {
	var batch *model.Batch
	start := p.now()

	for i, stage := range stages {
		name := stage.Name()

		if err := ctx.Err(); err != nil {
			return p.fail(summary, name, batch, err)
		}

		p.reporter.StageStarted(name, i, len(stages))
		stageStart := p.now()

		out, err := stage.Run(ctx, batch)
		if err != nil {
			return p.fail(summary, name, batch, err)
		}
		if out == nil {
			return p.fail(summary, name, batch, fmt.Errorf("stage returned no data"))
		}
		batch = out

		if i == 0 {
			summary.RowsIn = batch.Len()
		}

		result := model.StageResult{
			Name:     name,
			Rows:     batch.Len(),
			Columns:  len(batch.Columns),
			Duration: p.now().Sub(stageStart),
		}
		summary.Stages = append(summary.Stages, result)
		p.reporter.StageFinished(result)

		slog.Debug("Stage complete",
			"run_id", summary.RunID,
			"stage", name,
			"rows", result.Rows,
			"columns", result.Columns,
			"duration", result.Duration)
	}

	if batch != nil {
		summary.RowsOut = batch.Len()
		summary.Columns = len(batch.Columns)
	}
	summary.Duration = p.now().Sub(start)
	p.reporter.Summary(summary)

	slog.Info("Pipeline run complete",
		"run_id", summary.RunID,
		"rows_in", summary.RowsIn,
		"rows_out", summary.RowsOut,
		"columns", summary.Columns,
		"duration", summary.Duration)
	return nil
}

func (p *Pipeline) fail(summary *model.RunSummary, stage string, batch *model.Batch, err error) error {
	rows := 0
	if batch != nil {
		rows = batch.Len()
	}

	common.LogError(err, "Pipeline stage failed", common.Fields{
		"run_id": summary.RunID,
		"stage":  stage,
		"rows":   rows,
	})
	p.reporter.StageFailed(stage, err)

	return &StageError{Stage: stage, Err: err}
}
