package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vaibhaw-/LogLens/internal/loglens/analyzer"
	"github.com/vaibhaw-/LogLens/internal/loglens/config"
	"github.com/vaibhaw-/LogLens/internal/loglens/logger"
	"github.com/vaibhaw-/LogLens/internal/loglens/stats"
)

// RunSummary is one appended line of the machine-readable run log.
type RunSummary struct {
	Timestamp    string `json:"timestamp"`
	Input        string `json:"input"`
	Format       string `json:"format"`
	TotalLines   int    `json:"total_lines"`
	ParsedLines  int    `json:"parsed_lines"`
	SkippedLines int    `json:"skipped_lines"`
	Anomalies    int    `json:"anomalies"`
}

// RunOptions configures one analyze run.
type RunOptions struct {
	InputPath    string // empty means stdin
	EventsOut    string // empty means stdout
	AnomaliesOut string // empty means stdout
	PrintSummary bool
	AnalyzerOpts analyzer.Options
}

func appendRunLog(path string, summary RunSummary) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	return enc.Encode(summary)
}

func readAll(path string) (string, error) {
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(b), nil
}

func openOut(path string) (io.WriteCloser, error) {
	if path == "" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

// writeNDJSON encodes each value on its own line.
func writeNDJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
	}
	return nil
}

// RunAnalyze is the core loop behind the analyze command: read the whole
// input as one batch, run the pipeline, write events and anomalies as
// NDJSON, optionally print a human summary, and append a run-log line when
// configured. Factored out of the Cobra command so it can be unit tested.
func RunAnalyze(ctx context.Context, opts RunOptions, cfg *config.Config) error {
	log := logger.L()
	start := time.Now()

	rawText, err := readAll(opts.InputPath)
	if err != nil {
		return err
	}

	result, err := analyzer.Analyze(ctx, rawText, opts.AnalyzerOpts)
	if err != nil {
		return err
	}

	eventsOut, err := openOut(opts.EventsOut)
	if err != nil {
		return fmt.Errorf("create events output: %w", err)
	}
	if opts.EventsOut != "" {
		defer eventsOut.Close()
	}
	if err := writeNDJSON(eventsOut, result.Events); err != nil {
		return err
	}

	anomaliesOut, err := openOut(opts.AnomaliesOut)
	if err != nil {
		return fmt.Errorf("create anomalies output: %w", err)
	}
	if opts.AnomaliesOut != "" {
		defer anomaliesOut.Close()
	}
	if err := writeNDJSON(anomaliesOut, result.Anomalies); err != nil {
		return err
	}

	if opts.PrintSummary {
		st := stats.Build(result.Events)
		fmt.Fprintf(os.Stderr, "Format: %s\n", result.Format)
		st.PrintSummary(os.Stderr)
		fmt.Fprintf(os.Stderr, "  Anomalies: %d\n", len(result.Anomalies))
	}

	if cfg != nil && cfg.Logging.RunLog != "" {
		summary := RunSummary{
			Timestamp:    time.Now().UTC().Format(time.RFC3339Nano),
			Input:        opts.InputPath,
			Format:       string(result.Format),
			TotalLines:   result.Diag.TotalLines,
			ParsedLines:  result.Diag.ParsedLines,
			SkippedLines: result.Diag.SkippedLines,
			Anomalies:    len(result.Anomalies),
		}
		if err := appendRunLog(cfg.Logging.RunLog, summary); err != nil {
			log.Errorw("failed to write run log",
				"path", cfg.Logging.RunLog,
				"err", err.Error())
		}
	}

	log.Infow("completed analyze run",
		"duration", time.Since(start),
		"format", result.Format,
		"events", len(result.Events),
		"anomalies", len(result.Anomalies))

	return nil
}
