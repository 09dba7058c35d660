package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"poolwatch/internal/platform/config"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(config.Overrides{StateDir: dir})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://localhost:8000" {
		t.Fatalf("unexpected api url %q", cfg.APIURL)
	}
	if cfg.Storage != config.StorageFile {
		t.Fatalf("unexpected storage %q", cfg.Storage)
	}
	if cfg.HTTPTimeout != 30*time.Second || cfg.Watch.Interval != time.Minute {
		t.Fatalf("unexpected durations %+v", cfg)
	}
	if cfg.CredentialsPath() != filepath.Join(dir, "credentials.json") {
		t.Fatalf("unexpected credentials path %s", cfg.CredentialsPath())
	}
	if cfg.Capacity != 100 {
		t.Fatalf("unexpected capacity %v", cfg.Capacity)
	}
}

func TestLoadFileThenEnvThenFlags(t *testing.T) {
	dir := t.TempDir()
	yaml := "api_url: http://pools.example:9000/\nstorage: sqlite\nmqtt:\n  broker: tcp://broker:1883\nwatch:\n  interval: 30s\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("POOLWATCH_LOG_LEVEL", "debug")
	t.Setenv("POOLWATCH_MQTT_TOPIC_PREFIX", "swim")

	cfg, err := config.Load(config.Overrides{StateDir: dir, Storage: config.StorageMemory})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://pools.example:9000" {
		t.Fatalf("expected trailing slash trimmed from file value, got %q", cfg.APIURL)
	}
	if cfg.Storage != config.StorageMemory {
		t.Fatalf("flag override should win, got %q", cfg.Storage)
	}
	if cfg.LogLevel != "debug" || cfg.MQTT.TopicPrefix != "swim" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.MQTT.Broker != "tcp://broker:1883" || cfg.Watch.Interval != 30*time.Second {
		t.Fatalf("file values not applied: %+v", cfg)
	}
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	if _, err := config.Load(config.Overrides{StateDir: t.TempDir(), Storage: "redis"}); err == nil {
		t.Fatalf("expected unknown storage to fail")
	}
}

func TestExplicitMissingConfigFileFails(t *testing.T) {
	dir := t.TempDir()
	if _, err := config.Load(config.Overrides{StateDir: dir, ConfigFile: filepath.Join(dir, "nope.yaml")}); err == nil {
		t.Fatalf("expected missing explicit config file to fail")
	}
}
