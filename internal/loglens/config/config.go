package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type LoggingCfg struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
	RunLog      string `mapstructure:"run_log"`
}

type InputCfg struct {
	FilePath string `mapstructure:"file_path"`
	Format   string `mapstructure:"format"` // auto|apache|json|w3c|syslog|iis
}

type OutputCfg struct {
	EventsFile    string `mapstructure:"events_file"`
	AnomaliesFile string `mapstructure:"anomalies_file"`
}

// DetectionCfg carries the rule thresholds. Defaults match the canonical
// rule battery; override with care since reports are threshold-relative.
type DetectionCfg struct {
	VolumeMultiplier  float64 `mapstructure:"volume_multiplier"`
	FailureMin        int     `mapstructure:"failure_min"`
	OffHoursMin       int     `mapstructure:"off_hours_min"`
	TransferBytes     int64   `mapstructure:"transfer_bytes"`
	BurstWindowEvents int     `mapstructure:"burst_window_events"`
	BurstWindowSecs   float64 `mapstructure:"burst_window_secs"`
	DenylistFile      string  `mapstructure:"denylist_file"`
}

// CollaboratorCfg configures the optional text-understanding collaborator
// used by the unknown-format fallback.
type CollaboratorCfg struct {
	Enabled     bool   `mapstructure:"enabled"`
	BaseURL     string `mapstructure:"base_url"`
	Model       string `mapstructure:"model"`
	APIKeyEnv   string `mapstructure:"api_key_env"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	SampleLines int    `mapstructure:"sample_lines"`
}

type Config struct {
	Version      string          `mapstructure:"version"`
	Input        InputCfg        `mapstructure:"input"`
	Detection    DetectionCfg    `mapstructure:"detection"`
	Collaborator CollaboratorCfg `mapstructure:"collaborator"`
	Output       OutputCfg       `mapstructure:"output"`
	Logging      LoggingCfg      `mapstructure:"logging"`
}

var cfg *Config

// Load populates global config from a viper instance
func Load(v *viper.Viper) error {
	// set defaults
	v.SetDefault("version", "0.1")
	v.SetDefault("input.format", "auto")
	v.SetDefault("detection.volume_multiplier", 5.0)
	v.SetDefault("detection.failure_min", 5)
	v.SetDefault("detection.off_hours_min", 50)
	v.SetDefault("detection.transfer_bytes", 10_000_000)
	v.SetDefault("detection.burst_window_events", 10)
	v.SetDefault("detection.burst_window_secs", 10.0)
	v.SetDefault("collaborator.base_url", "https://api.openai.com")
	v.SetDefault("collaborator.model", "gpt-4o-mini")
	v.SetDefault("collaborator.api_key_env", "OPENAI_API_KEY")
	v.SetDefault("collaborator.timeout_secs", 10)
	v.SetDefault("collaborator.sample_lines", 20)
	v.SetDefault("logging.level", "info")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	cfg = &c
	return nil
}

func Get() *Config {
	if cfg == nil {
		cfg = &Config{}
	}
	return cfg
}
