package parsers

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/vaibhaw-/LogLens/internal/loglens/logger"
)

// JSONLinesParser parses one JSON object per line. Field naming varies
// between emitters, so canonical fields resolve through the candidate
// tables in fields.go.
type JSONLinesParser struct {
	opts ParserOptions
}

func NewJSONLinesParser(opts ParserOptions) *JSONLinesParser {
	return &JSONLinesParser{opts: opts}
}

func (p *JSONLinesParser) ParseLine(ctx context.Context, line string) (*Event, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, ErrSkipLine
	}

	var rec map[string]interface{}
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		logger.L().Debugw("line is not valid JSON; skipping", "err", err.Error())
		return nil, ErrSkipLine
	}

	evt := eventFromRecord(rec)
	evt.EventID = uuid.NewString()
	return evt, nil
}
