package parsers

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// W3CParser parses W3C extended logs (IIS uses the same column-header
// convention, so FormatIIS routes here too). The parser is stateful across
// lines: a "#Fields:" directive defines the active column ordering for all
// subsequent data lines, replacing any prior ordering.
type W3CParser struct {
	opts   ParserOptions
	fields []string // active column names from the last #Fields: directive
}

func NewW3CParser(opts ParserOptions) *W3CParser {
	return &W3CParser{opts: opts}
}

func (p *W3CParser) ParseLine(ctx context.Context, line string) (*Event, error) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return nil, ErrSkipLine
	}

	if strings.HasPrefix(line, "#") {
		if rest, ok := strings.CutPrefix(line, "#Fields:"); ok {
			p.fields = strings.Fields(rest)
		}
		// other directives (#Software:, #Date:, ...) are comments
		return nil, ErrSkipLine
	}

	if len(p.fields) == 0 {
		// data before any #Fields: directive is unmappable
		return nil, ErrSkipLine
	}

	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, ErrSkipLine
	}

	// zip-map tokens to the active columns; missing trailing fields stay empty
	cols := make(map[string]string, len(p.fields))
	for i, name := range p.fields {
		if i < len(tokens) {
			cols[name] = tokens[i]
		} else {
			cols[name] = ""
		}
	}

	source := cols["c-ip"]
	if source == "" {
		source = cols["s-ip"]
	}
	if source == "" {
		source = UnknownSource
	}

	method := cols["cs-method"]
	if method == "" {
		method = DefaultMethod
	}
	resource := cols["cs-uri-stem"]
	if resource == "" {
		resource = DefaultPath
	}

	status := DefaultStatus
	if n, err := strconv.Atoi(cols["sc-status"]); err == nil {
		status = n
	}
	var size int64
	if n, err := strconv.ParseInt(cols["sc-bytes"], 10, 64); err == nil {
		size = n
	}

	rawTS := strings.TrimSpace(cols["date"] + " " + cols["time"])
	ts, inferred := normalizeTimestamp(rawTS)

	return &Event{
		EventID:      uuid.NewString(),
		SourceID:     source,
		RawTimestamp: rawTS,
		Method:       method,
		Resource:     resource,
		StatusCode:   status,
		SizeBytes:    size,
		Timestamp:    ts,
		HourOfDay:    ts.Hour(),
		TimeInferred: inferred,
	}, nil
}
