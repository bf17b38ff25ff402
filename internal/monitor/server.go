package monitor

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/danmuck/artnet/internal/listener"
	"github.com/danmuck/artnet/internal/node"
	"github.com/danmuck/artnet/internal/observability"
	"github.com/danmuck/artnet/internal/protocol"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const DefaultRecentFrames = 64

type Monitor struct {
	ID       string    `json:"id"`
	Addr     string    `json:"addr"`
	Appeared time.Time `json:"appeared"`

	router *gin.Engine
	state  *state
	ready  func() bool
}

var (
	_ node.Node        = (*Monitor)(nil)
	_ listener.Handler = (*Monitor)(nil)
)

// Appear builds a monitor with its gin engine. Routes are added by
// RegisterRoutes.
func Appear(id, addr string, corsOrigins []string, recent int) *Monitor {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(id))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	if recent <= 0 {
		recent = DefaultRecentFrames
	}
	return &Monitor{
		ID:       id,
		Addr:     addr,
		Appeared: time.Now(),
		router:   r,
		state:    newState(recent),
	}
}

func (m *Monitor) NodeID() string {
	return m.ID
}

func (m *Monitor) Kind() string {
	return "monitor"
}

func (m *Monitor) HTTPRouter() *gin.Engine {
	return m.router
}

// SetReadiness installs the probe behind GET /ready.
func (m *Monitor) SetReadiness(ready func() bool) {
	m.ready = ready
}

func (m *Monitor) HandleFrame(src net.Addr, f protocol.Frame) {
	m.state.recordFrame(src, f)
}

func (m *Monitor) HandleError(src net.Addr, err error) {
	m.state.recordError(src, err)
}

// Snapshot returns the current traffic counters.
func (m *Monitor) Snapshot() Snapshot {
	return m.state.snapshot()
}

func (m *Monitor) RegisterRoutes() {
	m.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(m.Appeared).String(),
			"service": m.ID,
			"version": "0.1.0",
		})
	})

	m.router.GET("/ready", func(c *gin.Context) {
		ready := m.ready == nil || m.ready()
		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"ready":   ready,
			"uptime":  time.Since(m.Appeared).String(),
			"service": m.ID,
		})
	})

	m.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	m.router.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, m.state.snapshot())
	})

	m.router.GET("/timecode", func(c *gin.Context) {
		tc, ok := m.state.lastTimeCode()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no timecode received"})
			return
		}
		c.JSON(http.StatusOK, tc)
	})

	m.router.GET("/frames/recent", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"frames": m.state.recentFrames()})
	})
}

// Serve registers routes and serves HTTP on m.Addr until ctx is done.
func (m *Monitor) Serve(ctx context.Context) error {
	m.RegisterRoutes()
	srv := &http.Server{
		Addr:              m.Addr,
		Handler:           m.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("id", m.ID).Str("addr", m.Addr).Msg("monitor serving")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
