package rules

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/vaibhaw-/LogLens/internal/loglens/logger"
	"github.com/vaibhaw-/LogLens/internal/loglens/parsers"
	"github.com/vaibhaw-/LogLens/internal/loglens/stats"
)

// The six detection rules. Each is a pure read of the event list and/or the
// statistics; none mutates shared state, so outputs depend only on inputs
// and thresholds. Explanations are template-generated and byte-for-byte
// reproducible for identical inputs.

func confCap(v float64) int {
	n := int(math.Round(v))
	if n > maxConfidence {
		return maxConfidence
	}
	if n < 0 {
		return 0
	}
	return n
}

// DetectHighVolume fires for every source whose request count reaches
// Thresholds.VolumeMultiplier times the per-source average.
func DetectHighVolume(st *stats.Stats, th Thresholds) []Anomaly {
	if st.AvgRequestsPerSource <= 0 {
		return nil
	}

	var out []Anomaly
	expected := int(math.Round(st.AvgRequestsPerSource))
	for _, src := range st.SortedSources() {
		count := st.CountsBySource[src]
		multiplier := float64(count) / st.AvgRequestsPerSource
		if multiplier < th.VolumeMultiplier {
			continue
		}

		sev := SeverityWarning
		if multiplier > th.VolumeCriticalMultiplier {
			sev = SeverityCritical
		}

		logger.L().Debugw("high request volume",
			"source", src, "count", count, "multiplier", multiplier)

		out = append(out, Anomaly{
			AnomalyID:  uuid.NewString(),
			Type:       RuleHighVolume,
			Severity:   sev,
			Confidence: confCap(50 + multiplier*10),
			Explanation: fmt.Sprintf(
				"Source %s made %d requests, %.1fx the per-source average of %d.",
				src, count, multiplier, expected),
			Details: VolumeDetails{
				SourceID:      src,
				Count:         count,
				ExpectedCount: expected,
			},
		})
	}
	return out
}

// DetectFailedAttempts fires for every source with at least
// Thresholds.FailureMin failed requests (status >= 400).
func DetectFailedAttempts(st *stats.Stats, th Thresholds) []Anomaly {
	var out []Anomaly
	for _, src := range st.SortedFailureSources() {
		failures := st.FailuresBySource[src]
		n := len(failures)
		if n < th.FailureMin {
			continue
		}

		// first five distinct resources, first-occurrence order
		var resources []string
		seen := make(map[string]bool)
		for _, e := range failures {
			if seen[e.Resource] {
				continue
			}
			seen[e.Resource] = true
			resources = append(resources, e.Resource)
			if len(resources) == 5 {
				break
			}
		}

		sev := SeverityWarning
		if n > th.FailureCritical {
			sev = SeverityCritical
		}

		out = append(out, Anomaly{
			AnomalyID:  uuid.NewString(),
			Type:       RuleFailedAttempts,
			Severity:   sev,
			Confidence: confCap(60 + float64(n)*5),
			Explanation: fmt.Sprintf(
				"Source %s had %d failed requests (status >= 400), e.g. %s.",
				src, n, strings.Join(resources, ", ")),
			Details: FailureDetails{
				SourceID:  src,
				Count:     n,
				Resources: resources,
			},
		})
	}
	return out
}

// offHoursConfidence is fixed: the off-hours threshold is absolute, not
// volume-relative, so scaling confidence by count would overstate certainty
// on noisy inputs.
const offHoursConfidence = 70

// DetectOffHours fires for every hour in the off-hours window whose request
// count reaches Thresholds.OffHoursMin.
func DetectOffHours(st *stats.Stats, th Thresholds) []Anomaly {
	var out []Anomaly
	for hour := th.OffHoursStart; hour <= th.OffHoursEnd; hour++ {
		count := st.CountsByHour[hour]
		if count < th.OffHoursMin {
			continue
		}

		sev := SeverityWarning
		if count >= th.OffHoursCritical {
			sev = SeverityCritical
		}

		out = append(out, Anomaly{
			AnomalyID:  uuid.NewString(),
			Type:       RuleOffHours,
			Severity:   sev,
			Confidence: offHoursConfidence,
			Explanation: fmt.Sprintf(
				"%d requests at %02d:00, inside the off-hours window.",
				count, hour),
			Details: OffHoursDetails{
				HourOfDay: hour,
				Count:     count,
			},
		})
	}
	return out
}

// DetectDenylist fires once per (source, pattern) pair with at least one
// resource matching a denylisted substring. Always critical; any hit on the
// denylist is sensitive regardless of volume.
func DetectDenylist(events []parsers.Event, th Thresholds) []Anomaly {
	displayCap := th.DenylistCap
	if displayCap <= 0 {
		displayCap = 5
	}

	var out []Anomaly
	for _, pattern := range th.Denylist {
		// source -> deduplicated matching resources, first occurrence order
		matches := make(map[string][]string)
		seen := make(map[string]map[string]bool)
		for _, e := range events {
			if !strings.Contains(strings.ToLower(e.Resource), pattern) {
				continue
			}
			if seen[e.SourceID] == nil {
				seen[e.SourceID] = make(map[string]bool)
			}
			if seen[e.SourceID][e.Resource] {
				continue
			}
			seen[e.SourceID][e.Resource] = true
			matches[e.SourceID] = append(matches[e.SourceID], e.Resource)
		}

		sources := make([]string, 0, len(matches))
		for src := range matches {
			sources = append(sources, src)
		}
		sort.Strings(sources)

		for _, src := range sources {
			resources := matches[src]
			distinct := len(resources)
			if distinct > displayCap {
				resources = resources[:displayCap]
			}

			out = append(out, Anomaly{
				AnomalyID:  uuid.NewString(),
				Type:       RuleDenylist,
				Severity:   SeverityCritical,
				Confidence: confCap(85 + float64(distinct-1)*2),
				Explanation: fmt.Sprintf(
					"Source %s accessed %d resource(s) matching sensitive pattern %q, e.g. %s.",
					src, distinct, pattern, strings.Join(resources, ", ")),
				Details: DenylistDetails{
					SourceID:       src,
					MatchedPattern: pattern,
					Resources:      resources,
				},
			})
		}
	}
	return out
}

// DetectLargeTransfer fires one anomaly per individual event whose size
// exceeds Thresholds.TransferBytes. No aggregation across events.
func DetectLargeTransfer(events []parsers.Event, th Thresholds) []Anomaly {
	var out []Anomaly
	for _, e := range events {
		if e.SizeBytes <= th.TransferBytes {
			continue
		}

		mb := math.Round(float64(e.SizeBytes)/1_000_000*100) / 100

		sev := SeverityWarning
		if e.SizeBytes > th.TransferCriticalBytes {
			sev = SeverityCritical
		}

		out = append(out, Anomaly{
			AnomalyID:  uuid.NewString(),
			Type:       RuleLargeTransfer,
			Severity:   sev,
			Confidence: confCap(60 + float64(e.SizeBytes)/float64(th.TransferBytes)*10),
			Explanation: fmt.Sprintf(
				"Source %s transferred %.2f MB in one request to %s.",
				e.SourceID, mb, e.Resource),
			Details: TransferDetails{
				SourceID:  e.SourceID,
				Resource:  e.Resource,
				Megabytes: mb,
			},
		})
	}
	return out
}

// DetectRapidRequests fires for sources that issue a full window of
// requests within Thresholds.BurstWindowSecs. Only the first qualifying
// window per source is reported; scanning stops for that source after the
// first hit, a deliberate dedup-per-source policy.
func DetectRapidRequests(events []parsers.Event, th Thresholds) []Anomaly {
	window := th.BurstWindowEvents
	if window < 2 {
		return nil
	}

	groups := make(map[string][]parsers.Event)
	for _, e := range events {
		groups[e.SourceID] = append(groups[e.SourceID], e)
	}

	sources := make([]string, 0, len(groups))
	for src := range groups {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	var out []Anomaly
	for _, src := range sources {
		group := groups[src]
		if len(group) < window {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Timestamp.Before(group[j].Timestamp)
		})

		for i := 0; i+window <= len(group); i++ {
			duration := group[i+window-1].Timestamp.Sub(group[i].Timestamp).Seconds()
			if duration > th.BurstWindowSecs {
				continue
			}

			sev := SeverityWarning
			if window >= th.BurstCritical {
				sev = SeverityCritical
			}

			out = append(out, Anomaly{
				AnomalyID:  uuid.NewString(),
				Type:       RuleRapidRequests,
				Severity:   sev,
				Confidence: confCap(60 + float64(window-th.BurstWindowEvents)*3),
				Explanation: fmt.Sprintf(
					"Source %s issued %d requests within %.1f seconds.",
					src, window, duration),
				Details: BurstDetails{
					SourceID:      src,
					Count:         window,
					WindowSeconds: duration,
				},
			})
			break // first qualifying window per source only
		}
	}
	return out
}

// DetectAll evaluates the six rules in rule order and returns the ranked
// anomaly list. An empty result is valid and means the batch looks clean.
func DetectAll(events []parsers.Event, st *stats.Stats, th Thresholds) []Anomaly {
	var all []Anomaly
	all = append(all, DetectHighVolume(st, th)...)
	all = append(all, DetectFailedAttempts(st, th)...)
	all = append(all, DetectOffHours(st, th)...)
	all = append(all, DetectDenylist(events, th)...)
	all = append(all, DetectLargeTransfer(events, th)...)
	all = append(all, DetectRapidRequests(events, th)...)

	Rank(all)

	logger.L().Infow("detection complete",
		"events", len(events),
		"anomalies", len(all))
	return all
}
