package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Protocol constants. The remote engine rejects anything it does not speak,
// so ProtocolVersion changes only with the wire layout.
const (
	ProtocolVersion uint16 = 1

	// HeaderSize is the fixed encoded size of Header.
	HeaderSize = 24

	// LengthOffset is the byte offset of the header's length field. The
	// reliable transport needs it to frame an unaligned byte stream.
	LengthOffset = 8
)

var (
	ErrVersionMismatch = errors.New("wire: protocol version mismatch")
	ErrShortMessage    = errors.New("wire: message shorter than declared minimum")
	ErrUnknownType     = errors.New("wire: unknown message type")
)

// Header precedes every message body.
//
// Length always equals HeaderSize plus the exact encoded body size and is
// recomputed on every encode, never cached, including for variable-length
// bodies. Timestamp is seconds since the sending messenger initialized.
type Header struct {
	Version   uint16
	Type      uint16
	Index     uint32
	Length    uint32
	Timestamp float32
}

func (h Header) String() string {
	return fmt.Sprintf("type=%d idx=%d len=%d", h.Type, h.Index, h.Length)
}

// appendHeader writes the 24-byte big-endian header layout:
// version:u16 type:u16 index:u32 length:u32 timestamp:f32 reserved:u32x2.
func appendHeader(dst []byte, h Header) []byte {
	dst = binary.BigEndian.AppendUint16(dst, h.Version)
	dst = binary.BigEndian.AppendUint16(dst, h.Type)
	dst = binary.BigEndian.AppendUint32(dst, h.Index)
	dst = binary.BigEndian.AppendUint32(dst, h.Length)
	dst = binary.BigEndian.AppendUint32(dst, math.Float32bits(h.Timestamp))
	dst = binary.BigEndian.AppendUint32(dst, 0)
	dst = binary.BigEndian.AppendUint32(dst, 0)
	return dst
}

// DecodeHeader reads the header from buf. It checks only sizes and the
// version field; the reserved words are ignored.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, have %d", ErrShortMessage, HeaderSize, len(buf))
	}
	h := Header{
		Version:   binary.BigEndian.Uint16(buf[0:]),
		Type:      binary.BigEndian.Uint16(buf[2:]),
		Index:     binary.BigEndian.Uint32(buf[4:]),
		Length:    binary.BigEndian.Uint32(buf[8:]),
		Timestamp: math.Float32frombits(binary.BigEndian.Uint32(buf[12:])),
	}
	if h.Version != ProtocolVersion {
		return Header{}, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, h.Version, ProtocolVersion)
	}
	return h, nil
}
