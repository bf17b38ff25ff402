package protocol

import "fmt"

// Opcode selects the payload layout of a frame.
type Opcode uint8

const (
	OpUnrecognized Opcode = iota
	OpPoll
	OpPollReply
	OpTimeCode
)

// Wire values of the recognized opcodes.
const (
	CodePoll      uint16 = 0x2000
	CodePollReply uint16 = 0x2100
	CodeTimeCode  uint16 = 0x9700
)

type opcodeInfo struct {
	code uint16
	name string
}

var opcodes = map[Opcode]opcodeInfo{
	OpPoll:      {CodePoll, "Poll"},
	OpPollReply: {CodePollReply, "PollReply"},
	OpTimeCode:  {CodeTimeCode, "TimeCode"},
}

var opcodesByCode = func() map[uint16]Opcode {
	out := make(map[uint16]Opcode, len(opcodes))
	for op, info := range opcodes {
		out[info.code] = op
	}
	return out
}()

// LookupOpcode maps a wire value to its Opcode. Unknown values map to
// OpUnrecognized.
func LookupOpcode(code uint16) Opcode {
	if op, ok := opcodesByCode[code]; ok {
		return op
	}
	return OpUnrecognized
}

// Code returns the wire value, or 0 for OpUnrecognized.
func (o Opcode) Code() uint16 {
	return opcodes[o].code
}

// Recognized reports whether o is part of the opcode table.
func (o Opcode) Recognized() bool {
	_, ok := opcodes[o]
	return ok
}

func (o Opcode) String() string {
	if info, ok := opcodes[o]; ok {
		return info.name
	}
	if o == OpUnrecognized {
		return "Unrecognized"
	}
	return fmt.Sprintf("Opcode(%d)", uint8(o))
}
