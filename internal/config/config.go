// Package config loads the engine configuration, most importantly the
// per-clinic sync profile. Profiles come from deployment configuration
// and are never invented locally.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile is a clinic's sync cadence policy. Remote sites with 5-30
// minute round trips run long intervals; well-connected clinics run
// short ones.
type Profile struct {
	ClinicID          string   `yaml:"clinic_id"`
	IntervalMillis    int64    `yaml:"interval_millis"`
	GracePeriodMillis int64    `yaml:"grace_period_millis"`
	EntityAllowList   []string `yaml:"entity_allow_list"`
	MaxQueueDepth     int      `yaml:"max_queue_depth"`
}

// Interval returns the drain cadence.
func (p Profile) Interval() time.Duration {
	return time.Duration(p.IntervalMillis) * time.Millisecond
}

// GracePeriod returns the minimum gap between queue-triggered drain
// attempts, defaulting to one minute.
func (p Profile) GracePeriod() time.Duration {
	if p.GracePeriodMillis <= 0 {
		return time.Minute
	}
	return time.Duration(p.GracePeriodMillis) * time.Millisecond
}

// Allows reports whether the profile syncs the given entity type. An
// empty allow-list allows everything.
func (p Profile) Allows(entityType string) bool {
	if len(p.EntityAllowList) == 0 {
		return true
	}
	for _, allowed := range p.EntityAllowList {
		if allowed == entityType {
			return true
		}
	}
	return false
}

// Config is the full engine configuration file.
type Config struct {
	ServerURL string  `yaml:"server_url"`
	APIToken  string  `yaml:"api_token"`
	DBPath    string  `yaml:"db_path"`
	Profile   Profile `yaml:"profile"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the required fields.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.Profile.ClinicID == "" {
		return fmt.Errorf("profile.clinic_id is required")
	}
	if c.Profile.IntervalMillis <= 0 {
		return fmt.Errorf("profile.interval_millis must be positive")
	}
	return nil
}
