package protocol

import "fmt"

// Payload is the opcode-specific body of a frame. The set of
// implementations is closed to this package.
type Payload interface {
	Opcode() Opcode
	isPayload()
}

// PayloadDecoder reads one payload variant from a header-validated buffer.
type PayloadDecoder func(buf []byte) (Payload, error)

// Adding an opcode means one Opcode constant, one opcodes entry and one row here.
var payloadDecoders = map[Opcode]PayloadDecoder{
	OpPoll:      decodePoll,
	OpPollReply: decodePollReply,
	OpTimeCode:  decodeTimeCode,
}

// Poll is an ArtPoll request. Only its presence is decoded.
type Poll struct{}

func (Poll) Opcode() Opcode { return OpPoll }
func (Poll) isPayload()     {}

// PollReply is an ArtPollReply marker; its fields are not decoded.
type PollReply struct{}

func (PollReply) Opcode() Opcode { return OpPollReply }
func (PollReply) isPayload()     {}

// TimeCode carries raw ArtTimeCode fields. Values are not range checked.
type TimeCode struct {
	Frames  uint8
	Seconds uint8
	Minutes uint8
	Hours   uint8
	Type    TimeCodeType
}

func (TimeCode) Opcode() Opcode { return OpTimeCode }
func (TimeCode) isPayload()     {}

// String renders hh:mm:ss:ff.
func (t TimeCode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds, t.Frames)
}

// TimeCodeType is the frame rate tag of a TimeCode.
type TimeCodeType uint8

const (
	TimeCodeFilm TimeCodeType = iota
	TimeCodeEBU
	TimeCodeDF
	TimeCodeSMPTE
)

var timeCodeTypes = [...]struct {
	name string
	fps  float64
}{
	TimeCodeFilm:  {"film", 24},
	TimeCodeEBU:   {"ebu", 25},
	TimeCodeDF:    {"df", 29.97},
	TimeCodeSMPTE: {"smpte", 30},
}

func (t TimeCodeType) String() string {
	if int(t) < len(timeCodeTypes) {
		return timeCodeTypes[t].name
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// FPS returns the nominal frame rate, or 0 for an unknown tag.
func (t TimeCodeType) FPS() float64 {
	if int(t) < len(timeCodeTypes) {
		return timeCodeTypes[t].fps
	}
	return 0
}

func decodePoll(buf []byte) (Payload, error) {
	if err := need("poll", buf, PollSize); err != nil {
		return nil, err
	}
	return Poll{}, nil
}

func decodePollReply([]byte) (Payload, error) {
	return PollReply{}, nil
}

func decodeTimeCode(buf []byte) (Payload, error) {
	if err := need("timecode", buf, TimeCodeSize); err != nil {
		return nil, err
	}
	b := buf[timeCodeOffset:TimeCodeSize]
	return TimeCode{
		Frames:  b[0],
		Seconds: b[1],
		Minutes: b[2],
		Hours:   b[3],
		Type:    TimeCodeType(b[4]),
	}, nil
}
