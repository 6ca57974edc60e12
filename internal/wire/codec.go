package wire

import "fmt"

// Encode serializes one message. The header's Length is overwritten with
// HeaderSize plus the exact body size regardless of what the caller set;
// Version, Type, Index and Timestamp are taken from h except Type, which
// always comes from the body.
func Encode(h Header, b Body) []byte {
	h.Type = b.Type()
	h.Length = uint32(HeaderSize + b.size())
	w := writer{buf: make([]byte, 0, h.Length)}
	w.buf = appendHeader(w.buf, h)
	b.append(&w)
	return w.buf
}

// Decode parses one framed message. It never panics on hostile input: a
// version mismatch, an unknown type code, or a body shorter than the type's
// minimum all come back as errors the caller logs and drops.
//
// buf must hold exactly one message (the transports guarantee this: the
// reliable channel frames on the length field, the best-effort channel maps
// one datagram to one message). Bytes past the declared Length are ignored.
func Decode(buf []byte) (Header, Body, error) {
	h, err := DecodeHeader(buf)
	if err != nil {
		return Header{}, nil, err
	}
	if int(h.Length) > len(buf) || h.Length < HeaderSize {
		return Header{}, nil, fmt.Errorf("%w: declared %d bytes, have %d", ErrShortMessage, h.Length, len(buf))
	}
	b := bodyForType(h.Type)
	if b == nil {
		return h, nil, fmt.Errorf("%w: code %d", ErrUnknownType, h.Type)
	}
	r := reader{buf: buf[HeaderSize:h.Length]}
	if err := b.decode(&r); err != nil {
		return h, nil, fmt.Errorf("decode type %d: %w", h.Type, err)
	}
	return h, b, nil
}
