// Package config loads the service configuration from a yaml or json file
// with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/fleetrent/rentd/infra/metrics"
	"github.com/fleetrent/rentd/infra/relay"
)

// Config is the root configuration document.
type Config struct {
	// Location identifies this rental location in events and metrics.
	Location string         `json:"location"`
	Fleet    FleetConfig    `json:"fleet"`
	Metrics  metrics.Config `json:"metrics"`
	Relay    relay.Config   `json:"relay"`
	Audit    AuditConfig    `json:"audit"`
}

// AuditConfig controls the JSONL audit trail.
type AuditConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *AuditConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "rentals-audit.jsonl"
	}
}

// Load reads the file, applies K_-prefixed environment overrides and
// validates the result. A configuration with an invalid pricing formula
// never loads: the formula check at this boundary is the same evaluator the
// return workflow uses.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	if cfg.Location == "" {
		cfg.Location = "main"
	}
	cfg.Metrics.SetDefaults()
	cfg.Relay.SetDefaults()
	cfg.Audit.SetDefaults()
	if err := cfg.Fleet.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Relay.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
