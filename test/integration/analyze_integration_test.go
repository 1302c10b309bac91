package integration

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaibhaw-/LogLens/internal/loggen"
	"github.com/vaibhaw-/LogLens/internal/loglens/analyzer"
	"github.com/vaibhaw-/LogLens/internal/loglens/config"
	"github.com/vaibhaw-/LogLens/internal/loglens/parsers"
	"github.com/vaibhaw-/LogLens/internal/loglens/rules"
	"github.com/vaibhaw-/LogLens/internal/loglens/runner"
)

// fullWorkload generates a synthetic batch that trips every detection rule.
func fullWorkload(t *testing.T, format string) string {
	t.Helper()
	cfg := loggen.GenConfig{
		Format:  format,
		Lines:   200,
		Sources: 20,
		Seed:    1337,
		Start:   "2025-10-10T09:00:00Z",
	}
	cfg.Scenarios.HotSource = true
	cfg.Scenarios.FailingSource = true
	cfg.Scenarios.OffHours = true
	cfg.Scenarios.Probes = true
	cfg.Scenarios.LargeTransfers = true
	cfg.Scenarios.Burst = true

	lines, err := loggen.Generate(cfg)
	require.NoError(t, err)
	return strings.Join(lines, "\n") + "\n"
}

func anomalyTypes(anomalies []rules.Anomaly) map[rules.RuleType]int {
	types := make(map[rules.RuleType]int)
	for _, a := range anomalies {
		types[a.Type]++
	}
	return types
}

// TestAnalyzeIntegration_AllRules runs the full pipeline over a generated
// apache workload and verifies every rule fires at least once.
func TestAnalyzeIntegration_AllRules(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	text := fullWorkload(t, "apache")

	result, err := analyzer.Analyze(context.Background(), text, analyzer.Options{})
	require.NoError(t, err)

	assert.Equal(t, parsers.FormatApache, result.Format)
	// 200 baseline + 300 hot + 15 failing + 120 off-hours + 6 probes + 1 transfer + 12 burst
	assert.Len(t, result.Events, 654)
	assert.Equal(t, 654, result.Diag.ParsedLines)

	types := anomalyTypes(result.Anomalies)
	t.Logf("Anomaly counts by type: %v", types)

	for _, rt := range []rules.RuleType{
		rules.RuleHighVolume,
		rules.RuleFailedAttempts,
		rules.RuleOffHours,
		rules.RuleDenylist,
		rules.RuleLargeTransfer,
		rules.RuleRapidRequests,
	} {
		assert.Positive(t, types[rt], "rule %s should fire on the full workload", rt)
	}

	// ranked output: criticals lead, confidence descends within each band
	sawWarning := false
	for i, a := range result.Anomalies {
		assert.GreaterOrEqual(t, a.Confidence, 0)
		assert.LessOrEqual(t, a.Confidence, 95)
		if a.Severity == rules.SeverityWarning {
			sawWarning = true
		} else {
			assert.False(t, sawWarning, "critical anomaly after a warning at index %d", i)
		}
		if i > 0 && result.Anomalies[i-1].Severity == a.Severity {
			assert.GreaterOrEqual(t, result.Anomalies[i-1].Confidence, a.Confidence)
		}
	}
}

// TestAnalyzeIntegration_Formats round-trips each generated format through
// auto-detection and the pipeline.
func TestAnalyzeIntegration_Formats(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	wantFormats := map[string]parsers.Format{
		"apache": parsers.FormatApache,
		"json":   parsers.FormatJSON,
		"syslog": parsers.FormatSyslog,
		"w3c":    parsers.FormatW3C,
	}

	for name, want := range wantFormats {
		t.Run(name, func(t *testing.T) {
			cfg := loggen.GenConfig{
				Format:  name,
				Lines:   200,
				Sources: 20,
				Seed:    7,
				Start:   "2025-10-10T09:00:00Z",
			}
			cfg.Scenarios.FailingSource = true
			cfg.Scenarios.Probes = true

			lines, err := loggen.Generate(cfg)
			require.NoError(t, err)
			text := strings.Join(lines, "\n") + "\n"

			result, err := analyzer.Analyze(context.Background(), text, analyzer.Options{})
			require.NoError(t, err)

			assert.Equal(t, want, result.Format, "auto-detection must recognize generated %s", name)
			assert.Len(t, result.Events, 221, "200 baseline + 15 failing + 6 probes")

			types := anomalyTypes(result.Anomalies)
			assert.Positive(t, types[rules.RuleFailedAttempts], "%s: failed attempts should fire", name)
			assert.Positive(t, types[rules.RuleDenylist], "%s: denylist should fire", name)
		})
	}
}

// TestAnalyzeIntegration_Determinism verifies that two full runs over the
// same workload agree on everything except the generated anomaly IDs.
func TestAnalyzeIntegration_Determinism(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	text := fullWorkload(t, "json")

	first, err := analyzer.Analyze(context.Background(), text, analyzer.Options{})
	require.NoError(t, err)
	second, err := analyzer.Analyze(context.Background(), text, analyzer.Options{})
	require.NoError(t, err)

	require.Equal(t, len(first.Anomalies), len(second.Anomalies))
	for i := range first.Anomalies {
		assert.Equal(t, first.Anomalies[i].Type, second.Anomalies[i].Type)
		assert.Equal(t, first.Anomalies[i].Severity, second.Anomalies[i].Severity)
		assert.Equal(t, first.Anomalies[i].Confidence, second.Anomalies[i].Confidence)
		assert.Equal(t, first.Anomalies[i].Explanation, second.Anomalies[i].Explanation)
		assert.Equal(t, first.Anomalies[i].Details, second.Anomalies[i].Details)
	}
}

// TestAnalyzeIntegration_Runner drives the analyze runner end to end: file
// in, NDJSON out, run log appended.
func TestAnalyzeIntegration_Runner(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dir := t.TempDir()
	inputPath := filepath.Join(dir, "access.log")
	require.NoError(t, os.WriteFile(inputPath, []byte(fullWorkload(t, "apache")), 0o644))

	eventsPath := filepath.Join(dir, "events.ndjson")
	anomaliesPath := filepath.Join(dir, "anomalies.ndjson")
	runLogPath := filepath.Join(dir, "runs.ndjson")

	opts := runner.RunOptions{
		InputPath:    inputPath,
		EventsOut:    eventsPath,
		AnomaliesOut: anomaliesPath,
	}
	cfg := &config.Config{Logging: config.LoggingCfg{RunLog: runLogPath}}

	require.NoError(t, runner.RunAnalyze(context.Background(), opts, cfg))

	events := parseNDJSONFile(t, eventsPath)
	assert.Len(t, events, 654)
	for _, e := range events[:5] {
		assert.NotEmpty(t, e["event_id"])
		assert.NotEmpty(t, e["source_id"])
	}

	anomalies := parseNDJSONFile(t, anomaliesPath)
	require.NotEmpty(t, anomalies)
	assert.Equal(t, "critical", anomalies[0]["severity"], "ranked list must lead with criticals")

	runLog := parseNDJSONFile(t, runLogPath)
	require.Len(t, runLog, 1)
	assert.Equal(t, "apache", runLog[0]["format"])
	assert.Equal(t, float64(654), runLog[0]["parsed_lines"])
	assert.Equal(t, float64(len(anomalies)), runLog[0]["anomalies"])
}

// TestAnalyzeIntegration_Cache verifies the memoized path over a real
// workload.
func TestAnalyzeIntegration_Cache(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	text := fullWorkload(t, "apache")
	cache := analyzer.NewCache("integration-v1")

	first, err := analyzer.Analyze(context.Background(), text, analyzer.Options{Cache: cache})
	require.NoError(t, err)
	second, err := analyzer.Analyze(context.Background(), text, analyzer.Options{Cache: cache})
	require.NoError(t, err)

	assert.Same(t, first, second, "second run must come from the cache")
}

func parseNDJSONFile(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []map[string]interface{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m), "parse NDJSON line: %s", line)
		out = append(out, m)
	}
	require.NoError(t, scanner.Err())
	return out
}
