package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DenylistFile is the YAML shape of an external denylist file:
//
//	patterns:
//	  - /admin
//	  - /.env
type DenylistFile struct {
	Patterns []string `yaml:"patterns"`
}

// DefaultDenylist is the built-in set of sensitive resource substrings.
// Matched case-insensitively against event resources.
var DefaultDenylist = []string{
	"/admin",
	"/config",
	"/.env",
	"/wp-admin",
	"/phpmyadmin",
	"/.git",
	"/backup",
	"/database",
}

// ValidateDenylist decodes and validates a denylist YAML document.
// Patterns are trimmed and lowercased; empty entries are rejected.
func ValidateDenylist(r io.Reader) ([]string, error) {
	var df DenylistFile
	if err := yaml.NewDecoder(r).Decode(&df); err != nil {
		return nil, fmt.Errorf("decode denylist YAML: %w", err)
	}
	if len(df.Patterns) == 0 {
		return nil, fmt.Errorf("denylist must contain at least one pattern")
	}

	out := make([]string, 0, len(df.Patterns))
	seen := make(map[string]bool, len(df.Patterns))
	for i, p := range df.Patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			return nil, fmt.Errorf("denylist pattern %d is empty", i)
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out, nil
}

// LoadDenylist loads the denylist from path, or returns DefaultDenylist
// when path is empty.
func LoadDenylist(path string) ([]string, error) {
	if path == "" {
		return DefaultDenylist, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open denylist file %s: %w", path, err)
	}
	defer f.Close()

	patterns, err := ValidateDenylist(f)
	if err != nil {
		return nil, fmt.Errorf("validate denylist %s: %w", path, err)
	}
	return patterns, nil
}
