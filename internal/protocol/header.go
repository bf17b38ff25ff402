package protocol

import (
	"bytes"
	"encoding/binary"
)

// DecodeHeader validates the fixed header of buf.
//
// The opcode is little-endian and the version big-endian on the wire.
func DecodeHeader(buf []byte) (Header, error) {
	if err := need("header", buf, HeaderSize); err != nil {
		return Header{}, err
	}
	if !bytes.Equal(buf[:magicLen], Magic[:]) {
		return Header{}, ErrInvalidMagic
	}
	code := binary.LittleEndian.Uint16(buf[opcodeOffset : opcodeOffset+2])
	version := binary.BigEndian.Uint16(buf[versionOffset : versionOffset+2])
	if version != Version {
		return Header{}, &VersionError{Got: version}
	}
	return Header{
		Opcode:  LookupOpcode(code),
		Code:    code,
		Version: version,
	}, nil
}
