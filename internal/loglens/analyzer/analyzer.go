// Package analyzer ties the pipeline together: format detection, extraction,
// statistics, the six-rule battery, and ranking. The whole pipeline is
// single-threaded and synchronous; the optional collaborator call inside the
// unknown-format fallback is the only operation that may touch the network.
package analyzer

import (
	"context"
	"strings"

	"github.com/vaibhaw-/LogLens/internal/loglens/logger"
	"github.com/vaibhaw-/LogLens/internal/loglens/parsers"
	"github.com/vaibhaw-/LogLens/internal/loglens/rules"
	"github.com/vaibhaw-/LogLens/internal/loglens/stats"
)

// Options configures one analysis invocation.
type Options struct {
	// Format forces an extractor instead of auto-detection. Leave empty or
	// set to parsers.FormatUnknown for auto.
	Format parsers.Format

	// Collaborator, when non-nil, handles unknown-format input. Failures
	// fall back to the Apache parser and are never surfaced.
	Collaborator parsers.SampleParser

	// Thresholds for the rule battery. Zero value means defaults.
	Thresholds *rules.Thresholds

	// Cache, when non-nil, memoizes results keyed by the cache's version
	// and the input text.
	Cache *Cache
}

// Result is the complete outcome of one analysis: the normalized event
// list, the ranked anomaly list (empty means clean), and parse diagnostics.
type Result struct {
	Format    parsers.Format  `json:"format"`
	Events    []parsers.Event `json:"events"`
	Anomalies []rules.Anomaly `json:"anomalies"`
	Diag      parsers.Diag    `json:"diag"`
}

// Analyze runs the full pipeline over a batch of raw log text.
//
// Only two failures are caller-visible: ErrEmptyInput and
// *NoParseableLinesError. Everything else (skipped lines, unparseable
// timestamps, collaborator unavailability) is absorbed and compensated for,
// so the caller always gets a best-effort result.
func Analyze(ctx context.Context, rawText string, opts Options) (*Result, error) {
	log := logger.L()

	if strings.TrimSpace(rawText) == "" {
		return nil, ErrEmptyInput
	}

	if opts.Cache != nil {
		if cached, ok := opts.Cache.get(rawText); ok {
			log.Debugw("analysis cache hit")
			return cached, nil
		}
	}

	format := opts.Format
	if format == "" || format == parsers.FormatUnknown {
		format = parsers.DetectFormat(rawText)
	}
	log.Infow("analyzing batch", "format", format)

	var (
		events []parsers.Event
		diag   parsers.Diag
	)
	if format == parsers.FormatUnknown {
		events, diag = parsers.ParseUnknown(ctx, rawText, opts.Collaborator, parsers.ParserOptions{})
	} else {
		factory := parsers.NewFactory()
		p, err := factory.NewParser(format, parsers.ParserOptions{})
		if err != nil {
			// detector never yields a format the factory refuses; treat as unknown
			events, diag = parsers.ParseUnknown(ctx, rawText, opts.Collaborator, parsers.ParserOptions{})
		} else {
			events, diag = parsers.ParseText(ctx, rawText, p)
		}
	}

	if len(events) == 0 {
		return nil, &NoParseableLinesError{
			Format:       format,
			TotalLines:   diag.TotalLines - diag.BlankLines,
			SkippedLines: diag.SkippedLines,
		}
	}

	th := rules.DefaultThresholds()
	if opts.Thresholds != nil {
		th = *opts.Thresholds
	}

	st := stats.Build(events)
	anomalies := rules.DetectAll(events, st, th)

	result := &Result{
		Format:    format,
		Events:    events,
		Anomalies: anomalies,
		Diag:      diag,
	}
	if opts.Cache != nil {
		opts.Cache.put(rawText, result)
	}
	return result, nil
}
