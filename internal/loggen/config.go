package loggen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GenConfig describes the synthetic log workload parsed from YAML.
type GenConfig struct {
	Format  string `yaml:"format"` // apache|json|syslog|w3c
	Output  string `yaml:"output"` // empty = stdout
	Lines   int    `yaml:"lines"`
	Sources int    `yaml:"sources"`
	Seed    uint64 `yaml:"seed"`
	Start   string `yaml:"start"` // RFC3339; default: today 09:00 local

	// Scenario knobs. Each injects traffic that trips one detection rule,
	// so every rule can be demonstrated end to end.
	Scenarios struct {
		HotSource      bool `yaml:"hot_source"`      // high request volume
		FailingSource  bool `yaml:"failing_source"`  // repeated 401s
		OffHours       bool `yaml:"off_hours"`       // 03:00 traffic
		Probes         bool `yaml:"probes"`          // denylisted paths
		LargeTransfers bool `yaml:"large_transfers"` // oversized responses
		Burst          bool `yaml:"burst"`           // rapid sequential requests
	} `yaml:"scenarios"`
}

// ReadGenConfig parses the YAML workload config and applies defaults.
func ReadGenConfig(path string) (GenConfig, error) {
	var cfg GenConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if cfg.Format == "" {
		cfg.Format = "apache"
	}
	switch cfg.Format {
	case "apache", "json", "syslog", "w3c":
	default:
		return cfg, fmt.Errorf("unsupported format: %s", cfg.Format)
	}
	if cfg.Lines <= 0 {
		cfg.Lines = 200
	}
	if cfg.Sources <= 0 {
		cfg.Sources = 20
	}
	return cfg, nil
}
