package daemon

import (
	"context"
	"errors"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/danmuck/artnet/internal/config"
	"github.com/danmuck/artnet/internal/listener"
	"github.com/danmuck/artnet/internal/monitor"
	"github.com/danmuck/artnet/internal/protocol/datagram"
	"github.com/rs/zerolog/log"
)

var ErrInvalidStatsInterval = errors.New("daemon: invalid stats interval")

// ServiceConfig configures the daemon runtime.
type ServiceConfig struct {
	Name          string
	Listener      listener.Config
	HTTPAddr      string
	CorsOrigins   []string
	RecentFrames  int
	StatsInterval time.Duration
}

func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Name:          "artnetd",
		Listener:      listener.DefaultConfig(),
		HTTPAddr:      ":9480",
		RecentFrames:  monitor.DefaultRecentFrames,
		StatsInterval: 30 * time.Second,
	}
}

// ServiceConfigFrom maps a validated file config onto runtime defaults.
func ServiceConfigFrom(fc config.DaemonConfig) ServiceConfig {
	cfg := DefaultServiceConfig()
	cfg.Name = strings.TrimSpace(fc.Name)
	cfg.Listener.Addr = strings.TrimSpace(fc.ListenAddr)
	cfg.Listener.Limits = datagram.Limits{MaxDatagramBytes: fc.MaxDatagramBytes}
	cfg.Listener.ReadTimeout = fc.ReadTimeoutDuration()
	cfg.HTTPAddr = strings.TrimSpace(fc.HTTPAddr)
	cfg.CorsOrigins = fc.CorsOrigins
	cfg.RecentFrames = fc.RecentFrames
	cfg.StatsInterval = fc.StatsIntervalDuration()
	return cfg
}

type Service struct {
	cfg     ServiceConfig
	monitor *monitor.Monitor
	ready   atomic.Bool
}

func NewService(cfg ServiceConfig) *Service {
	cfg.Listener = cfg.Listener.WithDefaults()
	return &Service{
		cfg:     cfg,
		monitor: monitor.Appear(cfg.Name, cfg.HTTPAddr, cfg.CorsOrigins, cfg.RecentFrames),
	}
}

func (s *Service) Monitor() *monitor.Monitor {
	return s.monitor
}

// Ready reports whether the listener is bound and reading.
func (s *Service) Ready() bool {
	return s.ready.Load()
}

// Run blocks until SIGINT/SIGTERM.
func (s *Service) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Serve runs until ctx is done or a component fails.
func (s *Service) Serve(ctx context.Context) error {
	if s.cfg.StatsInterval <= 0 {
		return ErrInvalidStatsInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l, err := listener.Listen(ctx, s.cfg.Listener)
	if err != nil {
		return err
	}
	defer l.Close()

	s.monitor.SetReadiness(s.Ready)
	listenErr := make(chan error, 1)
	monitorErr := make(chan error, 1)
	if s.cfg.HTTPAddr != "" {
		go func() {
			monitorErr <- s.monitor.Serve(ctx)
		}()
	}
	go func() {
		s.ready.Store(true)
		listenErr <- l.Serve(ctx, s.monitor)
	}()
	defer s.ready.Store(false)

	ticker := time.NewTicker(s.cfg.StatsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("name", s.cfg.Name).Msg("daemon shutdown")
			return nil
		case err := <-listenErr:
			if err != nil {
				return err
			}
			return nil
		case err := <-monitorErr:
			if err != nil {
				return err
			}
		case <-ticker.C:
			stats := l.Stats()
			snap := s.monitor.Snapshot()
			log.Info().
				Str("name", s.cfg.Name).
				Uint64("datagrams", stats.Datagrams).
				Uint64("frames", stats.Frames).
				Uint64("rejected", stats.Rejected).
				Int("opcodes_seen", len(snap.Frames)).
				Msg("daemon heartbeat")
		}
	}
}
