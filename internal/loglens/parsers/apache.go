package parsers

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// apacheLineRe captures the Apache/Nginx combined prefix:
// identifier, two placeholder tokens, [timestamp], "METHOD target protocol",
// status, bytes. Trailing referer/user-agent quotes are ignored.
//
// Example:
//
//	203.0.113.7 - frank [10/Oct/2025:13:55:36 +0000] "GET /index.html HTTP/1.1" 200 2326
var apacheLineRe = regexp.MustCompile(`^(\S+) (\S+) (\S+) \[([^\]]+)\] "(\S+) (\S+)(?: [^"]*)?" (\d{3}) (\d+|-)`)

// ApacheParser parses Apache/Nginx combined log lines into canonical events.
// Doubles as the always-available fallback for unknown formats.
type ApacheParser struct {
	opts ParserOptions
}

func NewApacheParser(opts ParserOptions) *ApacheParser {
	return &ApacheParser{opts: opts}
}

func (p *ApacheParser) ParseLine(ctx context.Context, line string) (*Event, error) {
	if strings.TrimSpace(line) == "" {
		return nil, ErrSkipLine
	}

	m := apacheLineRe.FindStringSubmatch(line)
	if m == nil {
		return nil, ErrSkipLine
	}

	ts, inferred := parseApacheTimestamp(m[4])

	status, _ := strconv.Atoi(m[7])

	var size int64
	if m[8] != "-" {
		size, _ = strconv.ParseInt(m[8], 10, 64)
	}

	return &Event{
		EventID:      uuid.NewString(),
		SourceID:     m[1],
		RawTimestamp: m[4],
		Method:       m[5],
		Resource:     m[6],
		StatusCode:   status,
		SizeBytes:    size,
		Timestamp:    ts,
		HourOfDay:    ts.Hour(),
		TimeInferred: inferred,
	}, nil
}
