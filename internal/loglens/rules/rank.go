package rules

import "sort"

// Rank sorts anomalies into reporting order: critical before warning, then
// confidence descending within each severity band. The sort is stable, so
// ties keep their original concatenation order (rule 1 through 6).
func Rank(anomalies []Anomaly) {
	sort.SliceStable(anomalies, func(i, j int) bool {
		if anomalies[i].Severity != anomalies[j].Severity {
			return anomalies[i].Severity == SeverityCritical
		}
		return anomalies[i].Confidence > anomalies[j].Confidence
	})
}
