package datagram

import (
	"bytes"
	"errors"
	"net"
	"testing"
	"time"
)

func TestReadCopiesPayload(t *testing.T) {
	server, client := pair(t)
	want := []byte("Art-Net\x00payload")
	if _, err := client.WriteTo(want, server.LocalAddr()); err != nil {
		t.Fatalf("write: %v", err)
	}

	limits := DefaultLimits()
	buf := make([]byte, limits.BufferSize())
	d, err := Read(server, buf, limits)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(d.Data, want) {
		t.Fatalf("payload mismatch: %q", d.Data)
	}
	if d.Src == nil || d.Src.String() != client.LocalAddr().String() {
		t.Fatalf("unexpected source: %v", d.Src)
	}
	buf[0] = 'X'
	if d.Data[0] != 'A' {
		t.Fatalf("datagram aliases the read buffer")
	}
}

func TestReadOversizeIsDeterministic(t *testing.T) {
	server, client := pair(t)
	limits := Limits{MaxDatagramBytes: 8}
	if _, err := client.WriteTo(make([]byte, 9), server.LocalAddr()); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Read(server, make([]byte, limits.BufferSize()), limits)
	if !errors.Is(err, ErrDatagramTooLarge) {
		t.Fatalf("expected ErrDatagramTooLarge, got %v", err)
	}
}

func TestReadRejectsSmallBuffer(t *testing.T) {
	server, _ := pair(t)
	_, err := Read(server, make([]byte, 4), DefaultLimits())
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Fatalf("expected ErrBufferTooSmall, got %v", err)
	}
}

func pair(t *testing.T) (net.PacketConn, net.PacketConn) {
	t.Helper()
	server, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen server: %v", err)
	}
	client, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		_ = server.Close()
		t.Fatalf("listen client: %v", err)
	}
	_ = server.SetReadDeadline(time.Now().Add(2 * time.Second))
	t.Cleanup(func() {
		_ = server.Close()
		_ = client.Close()
	})
	return server, client
}
