package parsers

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Field resolution tables. Each canonical field resolves through an ordered
// list of candidate keys, falling back to a fixed default. Keeping the
// defaulting policy declarative makes it auditable and testable apart from
// the parsing itself. Shared by the JSON-lines parser and the
// unknown-format fallback.

type stringField struct {
	keys     []string
	fallback string
}

type intField struct {
	keys     []string
	fallback int64
}

var (
	sourceField = stringField{
		keys:     []string{"ip", "client_ip", "remote_addr", "source_ip"},
		fallback: UnknownSource,
	}
	timestampField = stringField{
		keys:     []string{"timestamp", "time", "datetime", "@timestamp"},
		fallback: "",
	}
	methodField = stringField{
		keys:     []string{"method", "http_method", "verb"},
		fallback: DefaultMethod,
	}
	resourceField = stringField{
		keys:     []string{"url", "path", "uri", "request"},
		fallback: DefaultPath,
	}
	statusField = intField{
		keys:     []string{"status", "status_code", "response_code"},
		fallback: DefaultStatus,
	}
	sizeField = intField{
		keys:     []string{"bytes", "size", "bytes_sent"},
		fallback: 0,
	}
)

func (f stringField) resolve(rec map[string]interface{}) string {
	for _, k := range f.keys {
		if v, ok := rec[k]; ok {
			if s := stringValue(v); s != "" {
				return s
			}
		}
	}
	return f.fallback
}

func (f intField) resolve(rec map[string]interface{}) int64 {
	for _, k := range f.keys {
		if v, ok := rec[k]; ok {
			if n, ok2 := intValue(v); ok2 {
				return n
			}
		}
	}
	return f.fallback
}

func stringValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func intValue(v interface{}) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case int:
		return int64(t), true
	case int64:
		return t, true
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// eventFromRecord builds a canonical Event from a loosely-keyed JSON object
// using the field resolution tables. The timestamp is parsed as an ISO-ish
// date; on failure the current instant is substituted and TimeInferred set.
func eventFromRecord(rec map[string]interface{}) *Event {
	rawTS := timestampField.resolve(rec)
	ts, inferred := normalizeTimestamp(rawTS)

	return &Event{
		SourceID:     sourceField.resolve(rec),
		RawTimestamp: rawTS,
		Method:       methodField.resolve(rec),
		Resource:     resourceField.resolve(rec),
		StatusCode:   int(statusField.resolve(rec)),
		SizeBytes:    sizeField.resolve(rec),
		Timestamp:    ts,
		HourOfDay:    ts.Hour(),
		TimeInferred: inferred,
	}
}
