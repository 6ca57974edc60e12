package transport

import (
	"encoding/binary"
	"fmt"
)

// FrameLayout tells a stream transport how to find message boundaries
// without knowing the message catalog: the fixed header size and the offset
// of the big-endian u32 total-length field inside that header.
type FrameLayout struct {
	HeaderSize   int
	LengthOffset int
}

func (l FrameLayout) validate() error {
	if l.HeaderSize <= 0 || l.LengthOffset < 0 || l.LengthOffset+4 > l.HeaderSize {
		return fmt.Errorf("invalid frame layout header=%d length_offset=%d", l.HeaderSize, l.LengthOffset)
	}
	return nil
}

// maxFrameSize bounds a single declared message. Anything larger means the
// stream has desynchronized (or the peer is hostile); the channel fails hard
// rather than buffering without limit.
const maxFrameSize = 16 << 20

// splitter reassembles discrete messages from an arbitrary byte stream. A
// partial message at the end of a read is carried in overflow; the next read
// first tops the carried header off, learns the declared total length, and
// keeps filling until the message completes, then scans the rest of the read
// directly.
type splitter struct {
	layout   FrameLayout
	overflow []byte
}

// next returns every complete message found after appending chunk, in stream
// order. Message slices are private copies; chunk may be reused by the
// caller. A declared length below the header size or above maxFrameSize is
// unrecoverable: message boundaries are lost for good.
func (s *splitter) next(chunk []byte) ([][]byte, error) {
	var msgs [][]byte

	if len(s.overflow) > 0 {
		// Top off the carried header so the total length is readable.
		if len(s.overflow) < s.layout.HeaderSize {
			need := s.layout.HeaderSize - len(s.overflow)
			n := min(need, len(chunk))
			s.overflow = append(s.overflow, chunk[:n]...)
			chunk = chunk[n:]
			if len(s.overflow) < s.layout.HeaderSize {
				return nil, nil
			}
		}
		total, err := s.declaredLength(s.overflow)
		if err != nil {
			return nil, err
		}
		n := min(total-len(s.overflow), len(chunk))
		s.overflow = append(s.overflow, chunk[:n]...)
		chunk = chunk[n:]
		if len(s.overflow) < total {
			return nil, nil
		}
		msgs = append(msgs, s.overflow)
		s.overflow = nil
	}

	// Scan the remainder, splitting out every complete message.
	for len(chunk) >= s.layout.HeaderSize {
		total, err := s.declaredLength(chunk)
		if err != nil {
			return msgs, err
		}
		if len(chunk) < total {
			break
		}
		msg := make([]byte, total)
		copy(msg, chunk[:total])
		msgs = append(msgs, msg)
		chunk = chunk[total:]
	}

	// Whatever is left becomes the carry-over for the next read.
	if len(chunk) > 0 {
		s.overflow = append([]byte(nil), chunk...)
	}
	return msgs, nil
}

func (s *splitter) declaredLength(header []byte) (int, error) {
	total := int(binary.BigEndian.Uint32(header[s.layout.LengthOffset:]))
	if total < s.layout.HeaderSize || total > maxFrameSize {
		return 0, fmt.Errorf("declared frame length %d out of range", total)
	}
	return total, nil
}
