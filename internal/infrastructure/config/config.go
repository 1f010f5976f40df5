// Package config loads process configuration from the environment. Required
// values are checked at construction time, before any network or file
// activity.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/dailyread/pkg/domain"
)

// Environment variable names. The prefix matches the deployment environment
// this tool is scheduled in.
const (
	EnvOrderPortalURL     = "DAILY_READ_ORDER_PORTAL_URL"
	EnvOrderPortalAPIKey  = "DAILY_READ_ORDER_PORTAL_API_KEY"
	EnvDataLocation       = "DAILY_READ_DATA_LOCATION"
	EnvReportsLocation    = "DAILY_READ_REPORTS_LOCATION"
	EnvStatusPriorityFile = "DAILY_READ_STATUS_PRIORITY_FILE"
)

// MissingError indicates a required environment value is absent.
type MissingError struct {
	Name string
}

func (e *MissingError) Error() string {
	return "environment variable " + e.Name + " not set"
}

type Config struct {
	OrderPortalURL    string
	OrderPortalAPIKey string
	DataLocation      string
	ReportsLocation   string
	StatusPriority    []string
}

// Load reads the configuration from the environment. The portal URL, portal
// API key, and data location are required; the reports location is optional
// (unset means no report files are written). The status priority ordering
// defaults to domain.DefaultPriority and can be overridden by a YAML file
// named in DAILY_READ_STATUS_PRIORITY_FILE.
func Load() (*Config, error) {
	cfg := &Config{
		OrderPortalURL:    os.Getenv(EnvOrderPortalURL),
		OrderPortalAPIKey: os.Getenv(EnvOrderPortalAPIKey),
		DataLocation:      os.Getenv(EnvDataLocation),
		ReportsLocation:   os.Getenv(EnvReportsLocation),
		StatusPriority:    domain.DefaultPriority,
	}

	if cfg.OrderPortalURL == "" {
		return nil, &MissingError{Name: EnvOrderPortalURL}
	}
	if cfg.OrderPortalAPIKey == "" {
		return nil, &MissingError{Name: EnvOrderPortalAPIKey}
	}
	if cfg.DataLocation == "" {
		return nil, &MissingError{Name: EnvDataLocation}
	}

	if path := os.Getenv(EnvStatusPriorityFile); path != "" {
		priority, err := loadPriorityFile(path)
		if err != nil {
			return nil, err
		}
		if priority != nil {
			cfg.StatusPriority = priority
		}
	}

	return cfg, nil
}

type priorityFile struct {
	Priority []string `yaml:"priority"`
}

func loadPriorityFile(path string) ([]string, error) {
	// #nosec G304 -- Path is operator-supplied configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read priority file: %w", err)
	}

	var f priorityFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal priority file: %w", err)
	}
	if len(f.Priority) == 0 {
		return nil, fmt.Errorf("priority file %s has an empty priority list", path)
	}
	return f.Priority, nil
}
