package listener

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"testing"
	"time"

	"github.com/danmuck/artnet/internal/protocol"
	"github.com/danmuck/artnet/internal/protocol/datagram"
	"github.com/danmuck/artnet/internal/testutil/testlog"
)

var timeCodePacket = []byte{65, 114, 116, 45, 78, 101, 116, 0, 0, 0x97, 0, 14, 0, 0, 1, 2, 3, 4, 5}

type result struct {
	frame protocol.Frame
	err   error
}

func TestServeDeliversFramesAndErrors(t *testing.T) {
	testlog.Start(t)
	l, results, stop := serve(t, Config{Addr: "127.0.0.1:0", Limits: datagram.Limits{MaxDatagramBytes: 64}})
	defer stop()

	send(t, l.Addr(), timeCodePacket)
	r := next(t, results)
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	tc, ok := r.frame.TimeCode()
	if !ok || tc.Hours != 4 {
		t.Fatalf("unexpected frame: %v", r.frame)
	}

	send(t, l.Addr(), []byte("not-art-net-at-all"))
	if r := next(t, results); !errors.Is(r.err, protocol.ErrInvalidMagic) {
		t.Fatalf("expected ErrInvalidMagic, got %v", r.err)
	}

	send(t, l.Addr(), make([]byte, 65))
	if r := next(t, results); !errors.Is(r.err, datagram.ErrDatagramTooLarge) {
		t.Fatalf("expected ErrDatagramTooLarge, got %v", r.err)
	}

	stats := l.Stats()
	if stats.Datagrams != 3 || stats.Frames != 1 || stats.Rejected != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestServeReturnsNilOnCancel(t *testing.T) {
	testlog.Start(t)
	ctx, cancel := context.WithCancel(context.Background())
	l, err := Listen(ctx, Config{Addr: "127.0.0.1:0", ReadTimeout: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()

	done := make(chan error, 1)
	go func() { done <- l.Serve(ctx, HandlerFuncs{}) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil on cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("serve did not stop after cancel")
	}
}

func TestListenRetriesThenFails(t *testing.T) {
	testlog.Start(t)
	busy, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer busy.Close()

	cfg := Config{
		Addr: busy.LocalAddr().String(),
		Backoff: BackoffConfig{
			InitialDelay: time.Millisecond,
			Multiplier:   2,
			MaxAttempts:  2,
		},
	}
	if _, err := Listen(context.Background(), cfg); err == nil {
		t.Fatalf("expected bind failure on busy address")
	}
}

func TestBackoffDelay(t *testing.T) {
	cfg := BackoffConfig{InitialDelay: 100 * time.Millisecond, Multiplier: 2, MaxDelay: 300 * time.Millisecond}
	if d := cfg.Delay(1, nil); d != 100*time.Millisecond {
		t.Fatalf("attempt 1: %v", d)
	}
	if d := cfg.Delay(2, nil); d != 200*time.Millisecond {
		t.Fatalf("attempt 2: %v", d)
	}
	if d := cfg.Delay(5, nil); d != 300*time.Millisecond {
		t.Fatalf("attempt 5 should cap: %v", d)
	}

	cfg.Jitter = true
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		d := cfg.Delay(2, rng)
		if d < 100*time.Millisecond || d > 300*time.Millisecond {
			t.Fatalf("jittered delay out of range: %v", d)
		}
	}
}

func TestReason(t *testing.T) {
	if got := Reason(datagram.ErrDatagramTooLarge); got != "oversize" {
		t.Fatalf("unexpected reason: %q", got)
	}
	if got := Reason(protocol.ErrTruncated); got != "truncated" {
		t.Fatalf("unexpected reason: %q", got)
	}
}

func serve(t *testing.T, cfg Config) (*Listener, <-chan result, func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	cfg.ReadTimeout = 20 * time.Millisecond
	l, err := Listen(ctx, cfg)
	if err != nil {
		cancel()
		t.Fatalf("listen: %v", err)
	}
	results := make(chan result, 8)
	done := make(chan error, 1)
	go func() {
		done <- l.Serve(ctx, HandlerFuncs{
			Frame: func(_ net.Addr, f protocol.Frame) { results <- result{frame: f} },
			Error: func(_ net.Addr, err error) { results <- result{err: err} },
		})
	}()
	return l, results, func() {
		cancel()
		_ = l.Close()
		if err := <-done; err != nil {
			t.Errorf("serve: %v", err)
		}
	}
}

func send(t *testing.T, addr net.Addr, b []byte) {
	t.Helper()
	conn, err := net.Dial("udp", addr.String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if _, err := conn.Write(b); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func next(t *testing.T, results <-chan result) result {
	t.Helper()
	select {
	case r := <-results:
		return r
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for datagram")
		return result{}
	}
}
