package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/vaibhaw-/LogLens/internal/loglens/parsers"
)

// Stats aggregates per-source and per-hour request statistics from a batch
// of canonical events. Built once per analysis; never mutated afterwards.
//
// FailuresBySource keeps the full failing event list, not just a count,
// because downstream rules need to inspect which resources failed.
type Stats struct {
	CountsBySource       map[string]int
	FailuresBySource     map[string][]parsers.Event // status >= 400 only
	CountsByHour         [24]int
	TotalEvents          int
	TotalSources         int
	AvgRequestsPerSource float64
}

// failureThreshold is the lowest status code treated as a failure.
const failureThreshold = 400

// Build aggregates statistics over the event list. An empty list yields a
// defined zero result; there is no division-by-zero case.
func Build(events []parsers.Event) *Stats {
	s := &Stats{
		CountsBySource:   make(map[string]int),
		FailuresBySource: make(map[string][]parsers.Event),
	}

	for _, e := range events {
		s.TotalEvents++
		s.CountsBySource[e.SourceID]++
		if e.StatusCode >= failureThreshold {
			s.FailuresBySource[e.SourceID] = append(s.FailuresBySource[e.SourceID], e)
		}
		if e.HourOfDay >= 0 && e.HourOfDay < 24 {
			s.CountsByHour[e.HourOfDay]++
		}
	}

	s.TotalSources = len(s.CountsBySource)
	if s.TotalSources > 0 {
		s.AvgRequestsPerSource = float64(s.TotalEvents) / float64(s.TotalSources)
	}

	return s
}

// SortedSources returns the source identifiers in lexical order. Rules
// iterate sources through this so their output order is deterministic.
func (s *Stats) SortedSources() []string {
	out := make([]string, 0, len(s.CountsBySource))
	for src := range s.CountsBySource {
		out = append(out, src)
	}
	sort.Strings(out)
	return out
}

// SortedFailureSources returns the identifiers of sources with at least one
// failure, in lexical order.
func (s *Stats) SortedFailureSources() []string {
	out := make([]string, 0, len(s.FailuresBySource))
	for src := range s.FailuresBySource {
		out = append(out, src)
	}
	sort.Strings(out)
	return out
}

// PrintSummary prints a formatted summary to the writer.
// Breakdowns are sorted by count (descending) then name (ascending).
func (s *Stats) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Total events: %d\n", s.TotalEvents)
	fmt.Fprintf(w, "  Distinct sources: %d\n", s.TotalSources)
	if s.TotalSources > 0 {
		fmt.Fprintf(w, "  Avg requests/source: %.1f\n", s.AvgRequestsPerSource)
	}
	fmt.Fprintf(w, "\n")

	if len(s.CountsBySource) > 0 {
		fmt.Fprintf(w, "  Top sources:\n")
		s.printSortedMap(w, s.CountsBySource, "    ", 10)
		fmt.Fprintf(w, "\n")
	}

	failures := make(map[string]int, len(s.FailuresBySource))
	for src, evts := range s.FailuresBySource {
		failures[src] = len(evts)
	}
	if len(failures) > 0 {
		fmt.Fprintf(w, "  Failures by source:\n")
		s.printSortedMap(w, failures, "    ", 10)
		fmt.Fprintf(w, "\n")
	}

	fmt.Fprintf(w, "  Requests by hour:\n")
	for h := 0; h < 24; h++ {
		if s.CountsByHour[h] > 0 {
			fmt.Fprintf(w, "    %02d:00  %d\n", h, s.CountsByHour[h])
		}
	}
}

// printSortedMap prints up to limit entries of m sorted by value
// (descending) then key (ascending).
func (s *Stats) printSortedMap(w io.Writer, m map[string]int, indent string, limit int) {
	type kv struct {
		key   string
		value int
	}

	var pairs []kv
	for k, v := range m {
		pairs = append(pairs, kv{k, v})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].value == pairs[j].value {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].value > pairs[j].value
	})

	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	for _, pair := range pairs {
		fmt.Fprintf(w, "%s%s: %d\n", indent, pair.key, pair.value)
	}
}
