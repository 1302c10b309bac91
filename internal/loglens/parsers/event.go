package parsers

import "time"

// Sentinel values used when a format has no concept of a field.
const (
	UnknownSource  = "unknown"
	MethodSentinel = "LOG" // formats without a request verb (plain syslog)
	DefaultMethod  = "GET"
	DefaultPath    = "/"
	DefaultStatus  = 200
)

// Event is the canonical representation of one access-log line,
// format-independent. It maps directly to the NDJSON schema.
type Event struct {
	EventID      string    `json:"event_id"`
	SourceID     string    `json:"source_id"`               // IP, hostname or similar; opaque key
	RawTimestamp string    `json:"raw_timestamp,omitempty"` // original timestamp text, kept for display
	Method       string    `json:"method"`
	Resource     string    `json:"resource"`
	StatusCode   int       `json:"status_code"`
	SizeBytes    int64     `json:"size_bytes"`
	Timestamp    time.Time `json:"timestamp"`
	HourOfDay    int       `json:"hour_of_day"`
	LineNumber   int       `json:"line_number"` // 1-based position in the source text

	// TimeInferred is set when the raw timestamp could not be parsed and
	// the current instant was substituted. Ordering-sensitive rules are
	// unreliable for such events.
	TimeInferred bool `json:"time_inferred,omitempty"`
}
