package transport

// Channel names used in metrics labels and telemetry records.
const (
	ChannelReliable   = "reliable"
	ChannelBestEffort = "besteffort"
)

// Channel is the surface the messenger composes over. Send enqueues one
// already-encoded message and reports whether the channel accepted it;
// Receive pops one inbound message. Update performs one cooperative cycle
// (send drain + receive poll) when the channel is not running its own
// goroutine.
type Channel interface {
	Send(frame []byte) bool
	Receive() ([]byte, bool)
	Update()
	Dispose()
}
