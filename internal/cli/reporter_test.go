package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/tradeflow/internal/model"
	"github.com/Veraticus/tradeflow/internal/pipeline"
	"github.com/stretchr/testify/assert"
)

var _ pipeline.Reporter = (*ConsoleReporter)(nil)

func testSummary() *model.RunSummary {
	return &model.RunSummary{
		RunID:   "run-123",
		Output:  "data/processed/trade_cleaned_new.csv",
		RowsIn:  10,
		RowsOut: 10,
		Columns: 33,
		Stages: []model.StageResult{
			{Name: "load", Rows: 10, Duration: 1500 * time.Microsecond},
			{Name: "parse", Rows: 10, Duration: 2 * time.Millisecond},
		},
		Duration: 12 * time.Millisecond,
	}
}

func TestFormatSummary(t *testing.T) {
	out := FormatSummary(testSummary())

	assert.Contains(t, out, "Rows: 10 in, 10 out")
	assert.Contains(t, out, "Columns: 33")
	assert.Contains(t, out, "Output: data/processed/trade_cleaned_new.csv")
	assert.Contains(t, out, "Loading raw data: 2ms")
	assert.Contains(t, out, "Parsing goods descriptions: 2ms")
	assert.Contains(t, out, "Time taken: 12ms")
	assert.Contains(t, out, "run-123")
}

func TestConsoleReporter(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewConsoleReporter(&buf)

	for i, name := range []string{"load", "clean"} {
		reporter.StageStarted(name, i, 2)
		reporter.StageFinished(model.StageResult{Name: name})
	}
	reporter.Summary(testSummary())

	out := buf.String()
	assert.Contains(t, out, "Cleaning base data")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "Pipeline Complete")
}

func TestConsoleReporter_StageFailed(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewConsoleReporter(&buf)

	reporter.StageStarted("parse", 0, 3)
	reporter.StageFailed("parse", errors.New("context canceled"))
	reporter.StageFailed("custom", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, ErrorIcon+" Parsing goods descriptions failed: context canceled")
	assert.Contains(t, out, "custom failed: boom")
}

func TestStageLabel(t *testing.T) {
	stages := []string{
		pipeline.StageLoad, pipeline.StageClean, pipeline.StageParse,
		pipeline.StageFeatures, pipeline.StageSave, pipeline.StageDatabase,
	}
	for _, name := range stages {
		assert.NotEqual(t, name, stageLabel(name), "stage %s has no label", name)
	}
	assert.Equal(t, "custom", stageLabel("custom"))
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatSuccess("done"), SuccessIcon+" done")
	assert.Contains(t, FormatError("bad"), ErrorIcon+" bad")
	assert.Contains(t, FormatWarning("careful"), "careful")
	assert.Contains(t, FormatTitle("tradeflow"), CrateIcon+" tradeflow")
	assert.Contains(t, RenderBox("Title", "body"), "body")
}
