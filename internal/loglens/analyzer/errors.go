package analyzer

import (
	"errors"
	"fmt"

	"github.com/vaibhaw-/LogLens/internal/loglens/parsers"
)

// ErrEmptyInput is returned when the raw text is empty or whitespace-only.
var ErrEmptyInput = errors.New("input is empty or whitespace-only")

// NoParseableLinesError is returned when every extractor, including the
// fallback, produced zero records. It carries enough context to tell a
// format mismatch apart from genuinely empty input without reading logs.
type NoParseableLinesError struct {
	Format       parsers.Format
	TotalLines   int
	SkippedLines int
}

func (e *NoParseableLinesError) Error() string {
	if e.TotalLines == 0 {
		return "no parseable lines: input contained no data lines"
	}
	return fmt.Sprintf(
		"no parseable lines: %d line(s) seen, %d skipped; input does not match the detected %q format",
		e.TotalLines, e.SkippedLines, e.Format)
}
