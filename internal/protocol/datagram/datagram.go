package datagram

import (
	"errors"
	"net"
)

var (
	ErrDatagramTooLarge = errors.New("datagram: exceeds size limit")
	ErrBufferTooSmall   = errors.New("datagram: read buffer smaller than limit")
)

// Datagram is one received packet. Data is owned by the Datagram.
type Datagram struct {
	Src  net.Addr
	Data []byte
}

// Limits constrains datagram read memory use.
type Limits struct {
	MaxDatagramBytes int
}

// DefaultLimits leaves headroom above the largest Art-Net packet.
func DefaultLimits() Limits {
	return Limits{MaxDatagramBytes: 1024}
}

// BufferSize is the read buffer length needed to detect oversize datagrams.
func (l Limits) BufferSize() int {
	return l.MaxDatagramBytes + 1
}

// Read reads one datagram from conn into buf and returns a copy of it.
// buf must hold at least limits.BufferSize() bytes; a datagram that fills
// the extra guard byte is reported as ErrDatagramTooLarge.
func Read(conn net.PacketConn, buf []byte, limits Limits) (Datagram, error) {
	if len(buf) < limits.BufferSize() {
		return Datagram{}, ErrBufferTooSmall
	}
	n, src, err := conn.ReadFrom(buf[:limits.BufferSize()])
	if err != nil {
		return Datagram{}, err
	}
	if n > limits.MaxDatagramBytes {
		return Datagram{Src: src}, ErrDatagramTooLarge
	}
	data := make([]byte, n)
	copy(data, buf[:n])
	return Datagram{Src: src, Data: data}, nil
}
