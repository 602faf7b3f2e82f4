package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/tradeflow/internal/model"
	"github.com/schollz/progressbar/v3"
)

var stageLabels = map[string]string{
	model.StageLoad:     "Loading raw data",
	model.StageClean:    "Cleaning base data",
	model.StageParse:    "Parsing goods descriptions",
	model.StageFeatures: "Engineering features",
	model.StageSave:     "Saving processed data",
	model.StageDatabase: "Loading into database",
}

// ConsoleReporter renders pipeline progress on a terminal.
type ConsoleReporter struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
	mu     sync.Mutex
}

// NewConsoleReporter creates a reporter writing to w, or stdout when w is nil.
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleReporter{writer: w}
}

// StageStarted advances the description of the stage progress bar.
func (r *ConsoleReporter) StageStarted(name string, _, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bar == nil {
		r.initProgressBar(total)
	}
	r.bar.Describe(fmt.Sprintf("[cyan][bold]%s...[reset]", stageLabel(name)))
}

// StageFinished ticks the progress bar.
func (r *ConsoleReporter) StageFinished(model.StageResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bar == nil {
		return
	}
	if err := r.bar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// StageFailed stops the progress bar and prints the failure.
func (r *ConsoleReporter) StageFailed(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bar != nil {
		_ = r.bar.Exit()
		r.bar = nil
	}
	r.println("\n" + FormatError(fmt.Sprintf("%s failed: %v", stageLabel(name), err)))
}

// Summary prints the run summary box.
func (r *ConsoleReporter) Summary(summary *model.RunSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.println(RenderBox("Pipeline Complete", FormatSummary(summary)))
}

// FormatSummary renders a run summary as plain lines.
func FormatSummary(summary *model.RunSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Rows: %d in, %d out\n", ChartIcon, summary.RowsIn, summary.RowsOut)
	fmt.Fprintf(&b, "  • Columns: %d\n", summary.Columns)
	fmt.Fprintf(&b, "  • Output: %s\n", summary.Output)
	for _, stage := range summary.Stages {
		fmt.Fprintf(&b, "  • %s: %s\n", stageLabel(stage.Name), stage.Duration.Round(time.Millisecond))
	}
	fmt.Fprintf(&b, "  • Time taken: %s\n", summary.Duration.Round(time.Millisecond))
	b.WriteString(FormatSubtle("Run " + summary.RunID))
	return b.String()
}

func (r *ConsoleReporter) initProgressBar(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Starting pipeline...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(r.writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

func (r *ConsoleReporter) println(s string) {
	if _, err := fmt.Fprintln(r.writer, s); err != nil {
		slog.Warn("Failed to write pipeline output", "error", err)
	}
}

func stageLabel(name string) string {
	if label, ok := stageLabels[name]; ok {
		return label
	}
	return name
}
