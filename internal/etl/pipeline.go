package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/mayank1ahuja/da-walmart-project/internal/logging"
)

// Pipeline wires the three stages together: Loader -> Cleaner -> Sink.
// A run is single-pass and synchronous; the first error aborts it.
type Pipeline struct {
	Loader  *Loader
	Cleaner *Cleaner
	Sink    Sink
}

// NewPipeline creates a pipeline over the sales transaction schema.
func NewPipeline(loader *Loader, sink Sink) *Pipeline {
	return &Pipeline{
		Loader:  loader,
		Cleaner: NewCleaner(),
		Sink:    sink,
	}
}

// Run executes one full load. Re-running on identical input produces an
// identical final table because the sink replaces all prior contents.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	frame, err := p.Loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	// Run-scoped logger so every stage carries the source file.
	log := logging.WithFields("file", frame.SourceFile)

	rows, cols := frame.Shape()
	log.Info("file loaded", "rows", rows, "columns", cols)

	records, report, err := p.Cleaner.Clean(frame)
	if err != nil {
		return nil, fmt.Errorf("clean: %w", err)
	}

	log.Info("frame cleaned",
		"input", report.Input,
		"duplicates", report.Duplicates,
		"incomplete", report.Incomplete,
		"invalid", report.Invalid,
		"output", report.Output,
	)

	written, err := p.Sink.Replace(ctx, frame.SourceFile, report, records)
	if err != nil {
		return nil, fmt.Errorf("sink: %w", err)
	}

	result := &Result{
		SourceFile:  frame.SourceFile,
		RowsRead:    rows,
		Columns:     cols,
		Report:      report,
		RowsWritten: written,
		Duration:    time.Since(start),
	}

	log.Info("pipeline complete",
		"written", result.RowsWritten,
		"dropped", report.Dropped(),
		"duration", result.Duration.Round(time.Millisecond),
	)

	return result, nil
}
