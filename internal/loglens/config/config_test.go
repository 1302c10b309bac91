package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	if err := Load(v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := Get()
	if c.Version != "0.1" {
		t.Errorf("got version=%s, want 0.1", c.Version)
	}
	if c.Input.Format != "auto" {
		t.Errorf("got input.format=%s, want auto", c.Input.Format)
	}
	if c.Detection.VolumeMultiplier != 5.0 {
		t.Errorf("got volume_multiplier=%v, want 5.0", c.Detection.VolumeMultiplier)
	}
	if c.Detection.FailureMin != 5 {
		t.Errorf("got failure_min=%d, want 5", c.Detection.FailureMin)
	}
	if c.Detection.OffHoursMin != 50 {
		t.Errorf("got off_hours_min=%d, want 50", c.Detection.OffHoursMin)
	}
	if c.Detection.TransferBytes != 10_000_000 {
		t.Errorf("got transfer_bytes=%d, want 10000000", c.Detection.TransferBytes)
	}
	if c.Detection.BurstWindowEvents != 10 || c.Detection.BurstWindowSecs != 10.0 {
		t.Errorf("got burst window %d/%v, want 10/10.0", c.Detection.BurstWindowEvents, c.Detection.BurstWindowSecs)
	}
	if c.Collaborator.Enabled {
		t.Errorf("collaborator should be disabled by default")
	}
	if c.Collaborator.Model != "gpt-4o-mini" {
		t.Errorf("got collaborator.model=%s, want gpt-4o-mini", c.Collaborator.Model)
	}
	if c.Collaborator.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("got api_key_env=%s, want OPENAI_API_KEY", c.Collaborator.APIKeyEnv)
	}
	if c.Logging.Level != "info" {
		t.Errorf("got logging.level=%s, want info", c.Logging.Level)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	yamlCfg := `
version: "1.2"
input:
  file_path: /var/log/access.log
  format: apache
detection:
  volume_multiplier: 3.0
  failure_min: 3
  off_hours_min: 25
  transfer_bytes: 5000000
  burst_window_events: 8
  burst_window_secs: 5.0
  denylist_file: /etc/loglens/denylist.yaml
collaborator:
  enabled: true
  base_url: http://localhost:8080
  model: local-model
  timeout_secs: 30
output:
  events_file: events.ndjson
  anomalies_file: anomalies.ndjson
logging:
  level: debug
  development: true
  run_log: runs.ndjson
`
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(yamlCfg)); err != nil {
		t.Fatalf("read config: %v", err)
	}
	if err := Load(v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := Get()
	if c.Input.FilePath != "/var/log/access.log" || c.Input.Format != "apache" {
		t.Errorf("input not loaded: %+v", c.Input)
	}
	if c.Detection.VolumeMultiplier != 3.0 || c.Detection.FailureMin != 3 {
		t.Errorf("detection overrides not applied: %+v", c.Detection)
	}
	if c.Detection.DenylistFile != "/etc/loglens/denylist.yaml" {
		t.Errorf("got denylist_file=%s", c.Detection.DenylistFile)
	}
	if !c.Collaborator.Enabled || c.Collaborator.BaseURL != "http://localhost:8080" {
		t.Errorf("collaborator overrides not applied: %+v", c.Collaborator)
	}
	if c.Collaborator.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("unset key env should keep its default, got %s", c.Collaborator.APIKeyEnv)
	}
	if c.Output.EventsFile != "events.ndjson" || c.Output.AnomaliesFile != "anomalies.ndjson" {
		t.Errorf("output not loaded: %+v", c.Output)
	}
	if c.Logging.Level != "debug" || !c.Logging.Development || c.Logging.RunLog != "runs.ndjson" {
		t.Errorf("logging not loaded: %+v", c.Logging)
	}
}
