package parsers

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// syslogLineRe matches the classic header: "Mon DD HH:MM:SS hostname message".
var syslogLineRe = regexp.MustCompile(`^([A-Z][a-z]{2}) +(\d{1,2}) (\d{2}:\d{2}:\d{2}) (\S+) (.*)$`)

// syslogHTTPRe finds an embedded HTTP-style fragment inside the free-text
// message: "METHOD target ..." status.
var syslogHTTPRe = regexp.MustCompile(`"(\S+) (\S+)[^"]*" (\d{3})`)

// SyslogParser parses classic syslog lines. The hostname becomes the
// canonical source identifier. When the message embeds an HTTP-style
// fragment, method/resource/status are taken from it; otherwise the
// sentinel defaults apply and the message length stands in for a
// transfer size.
type SyslogParser struct {
	opts ParserOptions
}

func NewSyslogParser(opts ParserOptions) *SyslogParser {
	return &SyslogParser{opts: opts}
}

func (p *SyslogParser) ParseLine(ctx context.Context, line string) (*Event, error) {
	if strings.TrimSpace(line) == "" {
		return nil, ErrSkipLine
	}

	m := syslogLineRe.FindStringSubmatch(line)
	if m == nil {
		return nil, ErrSkipLine
	}

	rawTS := m[1] + " " + m[2] + " " + m[3]
	ts, inferred := parseSyslogTimestamp(m[1], m[2], m[3])
	host := m[4]
	message := m[5]

	method := MethodSentinel
	resource := DefaultPath
	status := DefaultStatus
	if h := syslogHTTPRe.FindStringSubmatch(message); h != nil {
		method = h[1]
		resource = h[2]
		status, _ = strconv.Atoi(h[3])
	}

	return &Event{
		EventID:      uuid.NewString(),
		SourceID:     host,
		RawTimestamp: rawTS,
		Method:       method,
		Resource:     resource,
		StatusCode:   status,
		SizeBytes:    int64(len(message)), // proxy, not a real transfer size
		Timestamp:    ts,
		HourOfDay:    ts.Hour(),
		TimeInferred: inferred,
	}, nil
}
