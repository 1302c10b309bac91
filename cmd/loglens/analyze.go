package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vaibhaw-/LogLens/internal/loglens/analyzer"
	"github.com/vaibhaw-/LogLens/internal/loglens/config"
	"github.com/vaibhaw-/LogLens/internal/loglens/llm"
	"github.com/vaibhaw-/LogLens/internal/loglens/logger"
	"github.com/vaibhaw-/LogLens/internal/loglens/parsers"
	"github.com/vaibhaw-/LogLens/internal/loglens/rules"
	"github.com/vaibhaw-/LogLens/internal/loglens/runner"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Normalize raw access logs and run the anomaly rule battery",
	Long: `Analyze reads a whole access-log batch, auto-detects its format
(apache/nginx combined, JSON lines, W3C/IIS extended, syslog), normalizes
every line into a canonical event, and applies six detection rules:

- high request volume per source
- multiple failed attempts per source
- unusual off-hours activity
- suspicious resource access (denylist)
- large data transfers
- rapid sequential request bursts

Output: NDJSON streams of canonical events and ranked anomalies.`,
	RunE: runAnalyze,
}

var (
	flagInput        string
	flagFormat       string
	flagEventsOut    string
	flagAnomaliesOut string
	flagSummary      bool
	flagLLM          bool
	flagDenylist     string
)

func init() {
	analyzeCmd.Flags().StringVar(&flagInput, "input", "", "input file (default stdin)")
	analyzeCmd.Flags().StringVar(&flagFormat, "format", "auto", "log format: auto|apache|json|w3c|syslog|iis")
	analyzeCmd.Flags().StringVar(&flagEventsOut, "events-out", "", "events NDJSON output file (default stdout)")
	analyzeCmd.Flags().StringVar(&flagAnomaliesOut, "anomalies-out", "", "anomalies NDJSON output file (default stdout)")
	analyzeCmd.Flags().BoolVar(&flagSummary, "summary", false, "print a human-readable summary to stderr")
	analyzeCmd.Flags().BoolVar(&flagLLM, "llm", false, "enable the collaborator for unknown formats")
	analyzeCmd.Flags().StringVar(&flagDenylist, "denylist", "", "YAML denylist file (default built-in patterns)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	var format parsers.Format
	if flagFormat != "" && flagFormat != "auto" {
		format = parsers.Format(flagFormat)
	}

	th := rules.DefaultThresholds()
	applyDetectionConfig(&th, cfg.Detection)

	denylistPath := flagDenylist
	if denylistPath == "" {
		denylistPath = cfg.Detection.DenylistFile
	}
	denylist, err := config.LoadDenylist(denylistPath)
	if err != nil {
		return fmt.Errorf("load denylist: %w", err)
	}
	th.Denylist = denylist

	var collaborator parsers.SampleParser
	if flagLLM || cfg.Collaborator.Enabled {
		client, err := llm.NewClient(cfg.Collaborator)
		if err != nil {
			// unavailable collaborator is not an error; the fallback covers it
			logger.L().Warnw("collaborator disabled", "reason", err.Error())
		} else {
			collaborator = client
		}
	}

	opts := runner.RunOptions{
		InputPath:    flagInput,
		EventsOut:    flagEventsOut,
		AnomaliesOut: flagAnomaliesOut,
		PrintSummary: flagSummary,
		AnalyzerOpts: analyzer.Options{
			Format:       format,
			Collaborator: collaborator,
			Thresholds:   &th,
		},
	}

	return runner.RunAnalyze(context.Background(), opts, cfg)
}

// applyDetectionConfig overlays configured thresholds onto the defaults.
func applyDetectionConfig(th *rules.Thresholds, dc config.DetectionCfg) {
	if dc.VolumeMultiplier > 0 {
		th.VolumeMultiplier = dc.VolumeMultiplier
	}
	if dc.FailureMin > 0 {
		th.FailureMin = dc.FailureMin
	}
	if dc.OffHoursMin > 0 {
		th.OffHoursMin = dc.OffHoursMin
	}
	if dc.TransferBytes > 0 {
		th.TransferBytes = dc.TransferBytes
	}
	if dc.BurstWindowEvents > 0 {
		th.BurstWindowEvents = dc.BurstWindowEvents
	}
	if dc.BurstWindowSecs > 0 {
		th.BurstWindowSecs = dc.BurstWindowSecs
	}
}
