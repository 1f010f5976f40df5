package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/dailyread/internal/infrastructure/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvOrderPortalURL, "https://portal.example.com")
	t.Setenv(config.EnvOrderPortalAPIKey, "secret")
	t.Setenv(config.EnvDataLocation, t.TempDir())
	t.Setenv(config.EnvReportsLocation, "")
	t.Setenv(config.EnvStatusPriorityFile, "")
}

func TestLoad(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OrderPortalURL != "https://portal.example.com" {
		t.Errorf("unexpected portal URL %s", cfg.OrderPortalURL)
	}
	if len(cfg.StatusPriority) == 0 {
		t.Errorf("expected a default status priority")
	}
	if cfg.StatusPriority[0] != "All Raw Data Delivered" {
		t.Errorf("unexpected default priority head %s", cfg.StatusPriority[0])
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv(config.EnvOrderPortalAPIKey, "")

	_, err := config.Load()
	var missing *config.MissingError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingError, got %v", err)
	}
	if missing.Name != config.EnvOrderPortalAPIKey {
		t.Errorf("expected %s to be reported, got %s", config.EnvOrderPortalAPIKey, missing.Name)
	}
}

func TestLoad_PriorityFileOverride(t *testing.T) {
	setRequired(t)
	path := filepath.Join(t.TempDir(), "priority.yaml")
	content := "priority:\n  - Shipped\n  - Packed\n  - Received\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvStatusPriorityFile, path)

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.StatusPriority) != 3 || cfg.StatusPriority[0] != "Shipped" {
		t.Errorf("override not applied: %v", cfg.StatusPriority)
	}
}

func TestLoad_PriorityFileAbsentIsIgnored(t *testing.T) {
	setRequired(t)
	t.Setenv(config.EnvStatusPriorityFile, filepath.Join(t.TempDir(), "nope.yaml"))

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StatusPriority[0] != "All Raw Data Delivered" {
		t.Errorf("expected the default priority, got %v", cfg.StatusPriority)
	}
}

func TestLoad_PriorityFileEmptyList(t *testing.T) {
	setRequired(t)
	path := filepath.Join(t.TempDir(), "priority.yaml")
	if err := os.WriteFile(path, []byte("priority: []\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvStatusPriorityFile, path)

	if _, err := config.Load(); err == nil {
		t.Errorf("expected an error for an empty priority list")
	}
}
