// Package transport moves framed wire messages between the simulation host
// and the remote physics engine.
//
// Two channels exist: a reliable, ordered TCP channel that reassembles the
// byte stream into discrete messages, and a best-effort UDP channel where one
// datagram carries exactly one message. Both expose the same queue-based
// Channel surface and can run their own poll goroutine or be driven
// cooperatively by Update calls.
//
// The package knows nothing about the message catalog: framing works from a
// FrameLayout (header size + length-field offset) supplied at construction.
package transport
