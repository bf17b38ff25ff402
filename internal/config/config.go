package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/danmuck/artnet/internal/logging"
	"github.com/pelletier/go-toml/v2"
)

type DaemonConfig struct {
	Name             string   `toml:"name"`
	ListenAddr       string   `toml:"listen_addr"`
	HTTPAddr         string   `toml:"http_addr"`
	CorsOrigins      []string `toml:"cors_origins"`
	MaxDatagramBytes int      `toml:"max_datagram_bytes"`
	ReadTimeout      string   `toml:"read_timeout"`
	RecentFrames     int      `toml:"recent_frames"`
	StatsInterval    string   `toml:"stats_interval"`
	LogLevel         string   `toml:"log_level"`
}

func DefaultDaemonConfig() DaemonConfig {
	return DaemonConfig{
		Name:             "artnetd",
		ListenAddr:       ":6454",
		HTTPAddr:         ":9480",
		MaxDatagramBytes: 1024,
		ReadTimeout:      "500ms",
		RecentFrames:     64,
		StatsInterval:    "30s",
	}
}

func LoadDaemonConfig(path string) (DaemonConfig, error) {
	cfg := DefaultDaemonConfig()
	if err := loadToml(path, &cfg); err != nil {
		return DaemonConfig{}, err
	}
	if err := ValidateDaemonConfig(cfg); err != nil {
		return DaemonConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateDaemonConfig(cfg DaemonConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("daemon config missing name")
	}
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return fmt.Errorf("daemon config missing listen_addr")
	}
	if cfg.MaxDatagramBytes < 12 {
		return fmt.Errorf("max_datagram_bytes must be at least 12, got %d", cfg.MaxDatagramBytes)
	}
	if cfg.RecentFrames < 0 {
		return fmt.Errorf("recent_frames must not be negative")
	}
	if _, err := parsePositiveDuration("read_timeout", cfg.ReadTimeout); err != nil {
		return err
	}
	if _, err := parsePositiveDuration("stats_interval", cfg.StatsInterval); err != nil {
		return err
	}
	if cfg.LogLevel != "" {
		if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
			return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
		}
	}
	return nil
}

// ReadTimeoutDuration returns the parsed read_timeout.
func (c DaemonConfig) ReadTimeoutDuration() time.Duration {
	d, _ := parsePositiveDuration("read_timeout", c.ReadTimeout)
	return d
}

// StatsIntervalDuration returns the parsed stats_interval.
func (c DaemonConfig) StatsIntervalDuration() time.Duration {
	d, _ := parsePositiveDuration("stats_interval", c.StatsInterval)
	return d
}

func parsePositiveDuration(key, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}
