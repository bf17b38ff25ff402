package protocol

import "fmt"

// Frame is a decoded header paired with its payload. The payload variant
// always matches the header opcode; a frame with an unrecognized opcode has
// no payload.
type Frame struct {
	header  Header
	payload Payload
}

// Decode validates buf and decodes the payload selected by its opcode.
// No partial frame is returned on error.
func Decode(buf []byte) (Frame, error) {
	head, err := DecodeHeader(buf)
	if err != nil {
		return Frame{}, err
	}
	decode, ok := payloadDecoders[head.Opcode]
	if !ok {
		return Frame{header: head}, nil
	}
	payload, err := decode(buf)
	if err != nil {
		return Frame{}, err
	}
	return Frame{header: head, payload: payload}, nil
}

func (f Frame) Header() Header   { return f.header }
func (f Frame) Payload() Payload { return f.payload }
func (f Frame) Opcode() Opcode   { return f.header.Opcode }

// Poll returns the Poll payload if f carries one.
func (f Frame) Poll() (Poll, bool) {
	p, ok := f.payload.(Poll)
	return p, ok
}

// PollReply returns the PollReply payload if f carries one.
func (f Frame) PollReply() (PollReply, bool) {
	p, ok := f.payload.(PollReply)
	return p, ok
}

// TimeCode returns the TimeCode payload if f carries one.
func (f Frame) TimeCode() (TimeCode, bool) {
	p, ok := f.payload.(TimeCode)
	return p, ok
}

func (f Frame) String() string {
	switch p := f.payload.(type) {
	case TimeCode:
		return fmt.Sprintf(
			"TimeCode {frames=%d seconds=%d minutes=%d hours=%d type=%s}",
			p.Frames, p.Seconds, p.Minutes, p.Hours, p.Type,
		)
	case nil:
		return fmt.Sprintf("%s {code=0x%04x}", f.header.Opcode, f.header.Code)
	default:
		return fmt.Sprintf("%s {}", p.Opcode())
	}
}
