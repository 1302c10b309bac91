package rules

// Thresholds carries every tunable the six rules consume. Zero values are
// not usable; start from DefaultThresholds.
type Thresholds struct {
	// Rule 1: a source fires at VolumeMultiplier times the per-source
	// average, critical above VolumeCriticalMultiplier (exclusive).
	VolumeMultiplier         float64
	VolumeCriticalMultiplier float64

	// Rule 2: minimum failures (status >= 400) per source, critical above
	// FailureCritical (exclusive).
	FailureMin      int
	FailureCritical int

	// Rule 3: off-hours window [OffHoursStart, OffHoursEnd] inclusive, with
	// a fixed per-hour count threshold (not scaled by volume).
	OffHoursStart    int
	OffHoursEnd      int
	OffHoursMin      int
	OffHoursCritical int

	// Rule 4: denylist of lowercase resource substrings and the display cap
	// on matched resources per anomaly.
	Denylist    []string
	DenylistCap int

	// Rule 5: per-event transfer size thresholds in bytes.
	TransferBytes         int64
	TransferCriticalBytes int64

	// Rule 6: sliding-window size in events and its maximum span.
	BurstWindowEvents int
	BurstWindowSecs   float64
	BurstCritical     int
}

// DefaultThresholds returns the canonical rule battery thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		VolumeMultiplier:         5,
		VolumeCriticalMultiplier: 10,

		FailureMin:      5,
		FailureCritical: 10,

		OffHoursStart:    1,
		OffHoursEnd:      5,
		OffHoursMin:      50,
		OffHoursCritical: 100,

		Denylist: []string{
			"/admin",
			"/config",
			"/.env",
			"/wp-admin",
			"/phpmyadmin",
			"/.git",
			"/backup",
			"/database",
		},
		DenylistCap: 5,

		TransferBytes:         10_000_000,
		TransferCriticalBytes: 50_000_000,

		BurstWindowEvents: 10,
		BurstWindowSecs:   10,
		BurstCritical:     20,
	}
}
