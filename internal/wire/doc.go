// Package wire implements the APP (Archimedes Physics Protocol) message
// catalog and its binary codec.
//
// Every message is a 24-byte big-endian header followed by a type-specific
// body. The codec is pure: it owns no sockets and no state, so the transports
// can frame traffic knowing only the header size and the offset of the length
// field (see HeaderSize and LengthOffset).
package wire
