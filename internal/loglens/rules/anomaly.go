package rules

// RuleType identifies one of the six fixed detection rules.
type RuleType string

const (
	RuleHighVolume     RuleType = "high_request_volume"
	RuleFailedAttempts RuleType = "multiple_failed_attempts"
	RuleOffHours       RuleType = "unusual_time_activity"
	RuleDenylist       RuleType = "suspicious_resource_access"
	RuleLargeTransfer  RuleType = "large_data_transfer"
	RuleRapidRequests  RuleType = "rapid_sequential_requests"
)

// Severity is the binary alert tier.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// maxConfidence hard-caps every rule's confidence below 100. Rule-based
// detection never expresses certainty.
const maxConfidence = 95

// Details is the rule-specific payload. Exactly one concrete shape exists
// per rule type; the Rule method ties payloads to their rule.
type Details interface {
	Rule() RuleType
}

// VolumeDetails is the payload for RuleHighVolume.
type VolumeDetails struct {
	SourceID      string `json:"source_id"`
	Count         int    `json:"count"`
	ExpectedCount int    `json:"expected_count"`
}

func (VolumeDetails) Rule() RuleType { return RuleHighVolume }

// FailureDetails is the payload for RuleFailedAttempts. Resources holds up
// to the first five distinct failing resources in first-occurrence order.
type FailureDetails struct {
	SourceID  string   `json:"source_id"`
	Count     int      `json:"count"`
	Resources []string `json:"resources,omitempty"`
}

func (FailureDetails) Rule() RuleType { return RuleFailedAttempts }

// OffHoursDetails is the payload for RuleOffHours.
type OffHoursDetails struct {
	HourOfDay int `json:"hour_of_day"`
	Count     int `json:"count"`
}

func (OffHoursDetails) Rule() RuleType { return RuleOffHours }

// DenylistDetails is the payload for RuleDenylist. One anomaly per
// (source, pattern) pair; Resources is deduplicated and capped for display.
type DenylistDetails struct {
	SourceID       string   `json:"source_id"`
	MatchedPattern string   `json:"matched_pattern"`
	Resources      []string `json:"resources"`
}

func (DenylistDetails) Rule() RuleType { return RuleDenylist }

// TransferDetails is the payload for RuleLargeTransfer.
type TransferDetails struct {
	SourceID  string  `json:"source_id"`
	Resource  string  `json:"resource"`
	Megabytes float64 `json:"megabytes"`
}

func (TransferDetails) Rule() RuleType { return RuleLargeTransfer }

// BurstDetails is the payload for RuleRapidRequests.
type BurstDetails struct {
	SourceID      string  `json:"source_id"`
	Count         int     `json:"count"`
	WindowSeconds float64 `json:"window_seconds"`
}

func (BurstDetails) Rule() RuleType { return RuleRapidRequests }

// Anomaly is one rule firing. Constructed fresh per analysis, never mutated
// after creation, owned by the caller that receives the list.
type Anomaly struct {
	AnomalyID   string   `json:"anomaly_id"`
	Type        RuleType `json:"type"`
	Severity    Severity `json:"severity"`
	Confidence  int      `json:"confidence"` // always in [0, 95]
	Explanation string   `json:"explanation"`
	Details     Details  `json:"details"`
}
