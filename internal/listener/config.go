package listener

import (
	"time"

	"github.com/danmuck/artnet/internal/protocol/datagram"
)

// DefaultPort is the registered Art-Net UDP port.
const DefaultPort = 6454

// BackoffConfig defines bind retry behavior.
type BackoffConfig struct {
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
	Jitter       bool
	MaxAttempts  int
}

// Config defines listener socket and read behavior.
type Config struct {
	Addr        string
	Limits      datagram.Limits
	ReadTimeout time.Duration
	Backoff     BackoffConfig
}

func DefaultConfig() Config {
	return Config{
		Addr:        ":6454",
		Limits:      datagram.DefaultLimits(),
		ReadTimeout: 500 * time.Millisecond,
		Backoff: BackoffConfig{
			InitialDelay: 250 * time.Millisecond,
			Multiplier:   2.0,
			MaxDelay:     5 * time.Second,
			Jitter:       true,
			MaxAttempts:  5,
		},
	}
}

// WithDefaults fills zero fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.Limits.MaxDatagramBytes <= 0 {
		c.Limits = d.Limits
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.Backoff == (BackoffConfig{}) {
		c.Backoff = d.Backoff
	}
	if c.Backoff.MaxAttempts <= 0 {
		c.Backoff.MaxAttempts = 1
	}
	return c
}
