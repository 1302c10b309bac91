package parsers

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// apacheTimeLayout matches the combined-log timestamp without its zone
// offset, e.g. "10/Oct/2025:13:55:36". The offset token is currently
// ignored and the time is treated as local, a known simplification.
const apacheTimeLayout = "02/Jan/2006:15:04:05"

// parseApacheTimestamp parses a bracketed combined-log timestamp like
// "10/Oct/2025:13:55:36 +0000". Returns (now, true) on failure; the bool
// reports whether the instant was inferred rather than parsed.
func parseApacheTimestamp(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i] // drop the zone offset
	}
	t, err := time.ParseInLocation(apacheTimeLayout, s, time.Local)
	if err != nil {
		return time.Now(), true
	}
	return t, false
}

// normalizeTimestamp tries to parse any ISO-ish timestamp string using
// dateparse. Returns (now, true) if parsing fails.
func normalizeTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now(), true
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return time.Now(), true
	}
	return t, false
}

// syslogTimeLayout covers the classic syslog header, e.g. "Jan  2 15:04:05".
// Syslog carries no year; the current calendar year is assumed.
const syslogTimeLayout = "Jan 2 15:04:05"

func parseSyslogTimestamp(month, day, clock string) (time.Time, bool) {
	raw := month + " " + day + " " + clock
	t, err := time.ParseInLocation(syslogTimeLayout, raw, time.Local)
	if err != nil {
		return time.Now(), true
	}
	return t.AddDate(time.Now().Year(), 0, 0), false
}
