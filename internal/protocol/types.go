package protocol

// Wire layout constants.
const (
	HeaderSize = 12
	Version    = uint16(14)

	magicLen       = 8
	opcodeOffset   = 8
	versionOffset  = 10
	PollSize       = 14
	timeCodeOffset = 14
	TimeCodeSize   = timeCodeOffset + 5
)

// Magic is the fixed identifier that opens every datagram.
var Magic = [magicLen]byte{'A', 'r', 't', '-', 'N', 'e', 't', 0}

// Header is the validated fixed header. It is only produced by DecodeHeader.
type Header struct {
	Opcode  Opcode
	Code    uint16
	Version uint16
}
