package model

import "time"

// Pipeline stage names, shared by the orchestrator and its reporters.
const (
	StageLoad     = "load"
	StageClean    = "clean"
	StageParse    = "parse"
	StageFeatures = "features"
	StageSave     = "save"
	StageDatabase = "database"
)

// RunSummary describes a completed pipeline run.
type RunSummary struct {
	StartedAt time.Time
	RunID     string
	Input     string
	Output    string
	Stages    []StageResult
	RowsIn    int
	RowsOut   int
	Columns   int
	Duration  time.Duration
}

// StageResult records the outcome of a single pipeline stage.
type StageResult struct {
	Name     string
	Rows     int
	Columns  int
	Duration time.Duration
}
