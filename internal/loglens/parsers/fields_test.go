package parsers

import (
	"encoding/json"
	"testing"
)

// The resolution tables are the single source of truth for per-format
// defaulting; these tests pin the candidate order and fallbacks apart from
// any parser.

func TestStringFieldResolve_Order(t *testing.T) {
	rec := map[string]interface{}{
		"remote_addr": "10.1.1.1",
		"client_ip":   "10.2.2.2",
	}
	// client_ip precedes remote_addr in the candidate list
	if got := sourceField.resolve(rec); got != "10.2.2.2" {
		t.Errorf("got %s, want 10.2.2.2", got)
	}
}

func TestStringFieldResolve_Fallback(t *testing.T) {
	if got := sourceField.resolve(map[string]interface{}{}); got != UnknownSource {
		t.Errorf("got %s, want %s", got, UnknownSource)
	}
	if got := methodField.resolve(map[string]interface{}{}); got != DefaultMethod {
		t.Errorf("got %s, want %s", got, DefaultMethod)
	}
	if got := resourceField.resolve(map[string]interface{}{}); got != DefaultPath {
		t.Errorf("got %s, want %s", got, DefaultPath)
	}
}

func TestStringFieldResolve_EmptyValueSkipped(t *testing.T) {
	rec := map[string]interface{}{
		"ip":        "  ",
		"client_ip": "10.3.3.3",
	}
	if got := sourceField.resolve(rec); got != "10.3.3.3" {
		t.Errorf("blank candidate should be skipped, got %s", got)
	}
}

func TestIntFieldResolve(t *testing.T) {
	tests := []struct {
		name string
		rec  map[string]interface{}
		want int64
	}{
		{"float64", map[string]interface{}{"status": float64(404)}, 404},
		{"string", map[string]interface{}{"status": "503"}, 503},
		{"json.Number", map[string]interface{}{"status": json.Number("301")}, 301},
		{"fallback", map[string]interface{}{}, DefaultStatus},
		{"unparseable string falls through", map[string]interface{}{"status": "many"}, DefaultStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusField.resolve(tt.rec); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEventFromRecord_Defaults(t *testing.T) {
	evt := eventFromRecord(map[string]interface{}{})

	if evt.SourceID != UnknownSource || evt.Method != DefaultMethod ||
		evt.Resource != DefaultPath || evt.StatusCode != DefaultStatus || evt.SizeBytes != 0 {
		t.Errorf("defaults not applied: %+v", evt)
	}
	if !evt.TimeInferred {
		t.Errorf("absent timestamp should mark the instant as inferred")
	}
}
