package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTemplateLoadsAndValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artnetd.toml")
	if err := WriteTemplate(path, "daemon", false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := LoadDaemonConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Name != "artnetd" || cfg.ListenAddr != ":6454" || cfg.HTTPAddr != ":9480" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.ReadTimeoutDuration() != 500*time.Millisecond || cfg.StatsIntervalDuration() != 30*time.Second {
		t.Fatalf("unexpected durations: %v %v", cfg.ReadTimeoutDuration(), cfg.StatsIntervalDuration())
	}
	if len(cfg.CorsOrigins) != 1 {
		t.Fatalf("unexpected cors origins: %v", cfg.CorsOrigins)
	}

	if err := WriteTemplate(path, "daemon", false); err == nil {
		t.Fatalf("expected refusal to overwrite existing config")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `listen_addr = "127.0.0.1:6454"`)
	cfg, err := LoadDaemonConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:6454" {
		t.Fatalf("override lost: %q", cfg.ListenAddr)
	}
	if cfg.Name != "artnetd" || cfg.MaxDatagramBytes != 1024 || cfg.RecentFrames != 64 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown key":    `listen = ":1"`,
		"small datagram": `max_datagram_bytes = 4`,
		"bad duration":   `read_timeout = "soon"`,
		"zero interval":  `stats_interval = "0s"`,
		"bad level":      `log_level = "loud"`,
		"empty name":     `name = " "`,
	}
	for name, body := range cases {
		if _, err := LoadDaemonConfig(writeConfig(t, body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadDaemonConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "config load failed") {
		t.Fatalf("expected load failure, got %v", err)
	}
}

func TestUnknownTemplateKind(t *testing.T) {
	if _, err := Template("ghost"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artnetd.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
