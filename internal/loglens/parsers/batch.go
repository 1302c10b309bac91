package parsers

import (
	"context"
	"strings"

	"github.com/vaibhaw-/LogLens/internal/loglens/logger"
)

// Diag carries per-batch parse diagnostics. Informational only; skipped
// lines never abort a batch.
type Diag struct {
	TotalLines   int `json:"total_lines"` // all lines seen, blanks included
	BlankLines   int `json:"blank_lines"`
	ParsedLines  int `json:"parsed_lines"`
	SkippedLines int `json:"skipped_lines"`
}

// ParseText runs a line parser over a whole batch of raw text. Line numbers
// are 1-based positions in the source text. Non-matching lines are counted
// and dropped, never fatal.
func ParseText(ctx context.Context, text string, p Parser) ([]Event, Diag) {
	log := logger.L()

	var events []Event
	var diag Diag

	for i, line := range strings.Split(text, "\n") {
		diag.TotalLines++
		if strings.TrimSpace(line) == "" {
			diag.BlankLines++
			continue
		}

		evt, err := p.ParseLine(ctx, line)
		if err != nil || evt == nil {
			diag.SkippedLines++
			continue
		}

		evt.LineNumber = i + 1
		events = append(events, *evt)
		diag.ParsedLines++
	}

	nonBlank := diag.TotalLines - diag.BlankLines
	if nonBlank > 0 {
		log.Infow("parsed batch",
			"parsed", diag.ParsedLines,
			"skipped", diag.SkippedLines,
			"ratio", float64(diag.ParsedLines)/float64(nonBlank))
	}

	return events, diag
}
