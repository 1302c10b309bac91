package parsers

import (
	"context"
	"errors"
)

// ErrSkipLine indicates the parser couldn't parse the line but processing should continue.
var ErrSkipLine = errors.New("skip line")

type ParserOptions struct {
	// KeepRaw preserves the raw timestamp text on emitted events.
	KeepRaw bool
}

// Parser defines a parser capable of converting a raw log line to a canonical Event.
type Parser interface {
	// ParseLine should return an Event, or ErrSkipLine if the line is ignorable,
	// or other error for fatal parse failures.
	ParseLine(ctx context.Context, line string) (*Event, error)
}

// SampleParser is the optional text-understanding collaborator consumed by
// the unknown-format fallback. Implementations must honor ctx cancellation;
// callers apply a bounded timeout around the call.
type SampleParser interface {
	// ParseSample converts a small batch of raw lines into canonical-shaped
	// JSON objects. Field naming may vary; callers resolve fields with the
	// same candidate tables as the JSON-lines parser.
	ParseSample(ctx context.Context, lines []string) ([]map[string]interface{}, error)
}
