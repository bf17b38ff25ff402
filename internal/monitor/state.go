package monitor

import (
	"net"
	"sync"
	"time"

	"github.com/danmuck/artnet/internal/listener"
	"github.com/danmuck/artnet/internal/protocol"
)

// FrameRecord is one entry of the recent frames ring.
type FrameRecord struct {
	At      time.Time `json:"at"`
	Source  string    `json:"source"`
	Opcode  string    `json:"opcode"`
	Code    uint16    `json:"code"`
	Summary string    `json:"summary,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// TimeCodeView is the last TimeCode seen on the wire.
type TimeCodeView struct {
	At      time.Time `json:"at"`
	Source  string    `json:"source"`
	Display string    `json:"display"`
	Frames  uint8     `json:"frames"`
	Seconds uint8     `json:"seconds"`
	Minutes uint8     `json:"minutes"`
	Hours   uint8     `json:"hours"`
	Type    string    `json:"type"`
	FPS     float64   `json:"fps"`
}

// Snapshot is a copy of the monitor counters.
type Snapshot struct {
	Frames map[string]uint64 `json:"frames"`
	Errors map[string]uint64 `json:"errors"`
	Total  uint64            `json:"total"`
}

type state struct {
	mu       sync.RWMutex
	frames   map[string]uint64
	errors   map[string]uint64
	total    uint64
	timecode *TimeCodeView
	recent   []FrameRecord
	next     int
	filled   bool
	now      func() time.Time
}

func newState(recent int) *state {
	if recent <= 0 {
		recent = 1
	}
	return &state{
		frames: make(map[string]uint64),
		errors: make(map[string]uint64),
		recent: make([]FrameRecord, recent),
		now:    time.Now,
	}
}

func (s *state) recordFrame(src net.Addr, f protocol.Frame) {
	at := s.now()
	rec := FrameRecord{
		At:      at,
		Source:  addrString(src),
		Opcode:  f.Opcode().String(),
		Code:    f.Header().Code,
		Summary: f.String(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	s.frames[rec.Opcode]++
	if tc, ok := f.TimeCode(); ok {
		s.timecode = &TimeCodeView{
			At:      at,
			Source:  rec.Source,
			Display: tc.String(),
			Frames:  tc.Frames,
			Seconds: tc.Seconds,
			Minutes: tc.Minutes,
			Hours:   tc.Hours,
			Type:    tc.Type.String(),
			FPS:     tc.Type.FPS(),
		}
	}
	s.push(rec)
}

func (s *state) recordError(src net.Addr, err error) {
	rec := FrameRecord{
		At:     s.now(),
		Source: addrString(src),
		Error:  listener.Reason(err),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	s.errors[rec.Error]++
	s.push(rec)
}

// push requires s.mu held.
func (s *state) push(rec FrameRecord) {
	s.recent[s.next] = rec
	s.next = (s.next + 1) % len(s.recent)
	if s.next == 0 {
		s.filled = true
	}
}

// recentFrames returns records oldest first.
func (s *state) recentFrames() []FrameRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.filled {
		return append([]FrameRecord(nil), s.recent[:s.next]...)
	}
	out := make([]FrameRecord, 0, len(s.recent))
	out = append(out, s.recent[s.next:]...)
	return append(out, s.recent[:s.next]...)
}

func (s *state) lastTimeCode() (TimeCodeView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.timecode == nil {
		return TimeCodeView{}, false
	}
	return *s.timecode, true
}

func (s *state) snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Frames: make(map[string]uint64, len(s.frames)),
		Errors: make(map[string]uint64, len(s.errors)),
		Total:  s.total,
	}
	for k, v := range s.frames {
		snap.Frames[k] = v
	}
	for k, v := range s.errors {
		snap.Errors[k] = v
	}
	return snap
}

func addrString(a net.Addr) string {
	if a == nil {
		return ""
	}
	return a.String()
}
