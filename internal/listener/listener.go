package listener

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"sync/atomic"
	"time"

	"github.com/danmuck/artnet/internal/observability"
	"github.com/danmuck/artnet/internal/protocol"
	"github.com/danmuck/artnet/internal/protocol/datagram"
	"github.com/rs/zerolog/log"
)

// Handler receives the outcome of every datagram read by Serve.
// Calls are made from the Serve goroutine, one at a time.
type Handler interface {
	HandleFrame(src net.Addr, f protocol.Frame)
	HandleError(src net.Addr, err error)
}

// HandlerFuncs adapts plain functions to Handler. Nil funcs are skipped.
type HandlerFuncs struct {
	Frame func(src net.Addr, f protocol.Frame)
	Error func(src net.Addr, err error)
}

func (h HandlerFuncs) HandleFrame(src net.Addr, f protocol.Frame) {
	if h.Frame != nil {
		h.Frame(src, f)
	}
}

func (h HandlerFuncs) HandleError(src net.Addr, err error) {
	if h.Error != nil {
		h.Error(src, err)
	}
}

// Stats is a snapshot of listener counters.
type Stats struct {
	Datagrams uint64 `json:"datagrams"`
	Frames    uint64 `json:"frames"`
	Rejected  uint64 `json:"rejected"`
}

// Listener reads Art-Net datagrams from a bound UDP socket.
type Listener struct {
	cfg    Config
	conn   net.PacketConn
	closed atomic.Bool

	datagrams atomic.Uint64
	frames    atomic.Uint64
	rejected  atomic.Uint64
}

// Listen binds cfg.Addr, retrying with backoff up to cfg.Backoff.MaxAttempts.
func Listen(ctx context.Context, cfg Config) (*Listener, error) {
	cfg = cfg.WithDefaults()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var lc net.ListenConfig
	var lastErr error
	for attempt := 1; attempt <= cfg.Backoff.MaxAttempts; attempt++ {
		conn, err := lc.ListenPacket(ctx, "udp", cfg.Addr)
		if err == nil {
			log.Info().Str("addr", conn.LocalAddr().String()).Msg("listener bound")
			return &Listener{cfg: cfg, conn: conn}, nil
		}
		lastErr = err
		if attempt == cfg.Backoff.MaxAttempts {
			break
		}
		delay := cfg.Backoff.Delay(attempt, rng)
		log.Warn().
			Str("addr", cfg.Addr).
			Int("attempt", attempt).
			Dur("retry_in", delay).
			Err(err).
			Msg("listener bind failed")
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, fmt.Errorf("listener: bind %s: %w", cfg.Addr, lastErr)
}

func (l *Listener) Addr() net.Addr {
	return l.conn.LocalAddr()
}

func (l *Listener) Close() error {
	if l.closed.Swap(true) {
		return nil
	}
	return l.conn.Close()
}

func (l *Listener) Stats() Stats {
	return Stats{
		Datagrams: l.datagrams.Load(),
		Frames:    l.frames.Load(),
		Rejected:  l.rejected.Load(),
	}
}

// Serve runs the read loop until ctx is done or the listener is closed,
// both of which return nil. Decode failures go to h and never stop the loop.
func (l *Listener) Serve(ctx context.Context, h Handler) error {
	buf := make([]byte, l.cfg.Limits.BufferSize())
	for {
		if ctx.Err() != nil {
			return nil
		}
		_ = l.conn.SetReadDeadline(time.Now().Add(l.cfg.ReadTimeout))
		d, err := datagram.Read(l.conn, buf, l.cfg.Limits)
		if err != nil {
			var netErr net.Error
			switch {
			case errors.As(err, &netErr) && netErr.Timeout():
				continue
			case errors.Is(err, datagram.ErrDatagramTooLarge):
				l.datagrams.Add(1)
				l.reject(d.Src, err, h)
				continue
			case l.closed.Load() || ctx.Err() != nil:
				return nil
			default:
				return fmt.Errorf("listener: read: %w", err)
			}
		}
		l.handle(d, h)
	}
}

func (l *Listener) handle(d datagram.Datagram, h Handler) {
	l.datagrams.Add(1)
	observability.RecordDatagram(len(d.Data))
	f, err := protocol.Decode(d.Data)
	if err != nil {
		l.reject(d.Src, err, h)
		return
	}
	l.frames.Add(1)
	observability.RecordFrame(f.Opcode().String())
	log.Debug().
		Str("src", addrString(d.Src)).
		Str("opcode", f.Opcode().String()).
		Int("bytes", len(d.Data)).
		Msg("frame decoded")
	h.HandleFrame(d.Src, f)
}

func (l *Listener) reject(src net.Addr, err error, h Handler) {
	l.rejected.Add(1)
	reason := Reason(err)
	observability.RecordDecodeError(reason)
	log.Debug().
		Str("src", addrString(src)).
		Str("reason", reason).
		Err(err).
		Msg("datagram rejected")
	h.HandleError(src, err)
}

// Reason labels listener and decode errors for metrics and logs.
func Reason(err error) string {
	if errors.Is(err, datagram.ErrDatagramTooLarge) {
		return "oversize"
	}
	return protocol.Reason(err)
}

func addrString(a net.Addr) string {
	if a == nil {
		return ""
	}
	return a.String()
}
