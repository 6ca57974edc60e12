package transport

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/metrics"
	"github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/packetlog"
)

// BestEffortConfig configures the datagram channel.
type BestEffortConfig struct {
	Addr string

	// MaxDatagram is the receive buffer size; one datagram is one message,
	// so it bounds the largest inbound message. Default 64KiB.
	MaxDatagram int

	// SendBurst caps datagrams written per update cycle. Default 50.
	SendBurst int

	// PollInterval is the own-thread loop sleep. Default 10ms.
	PollInterval time.Duration

	// ReadWindow is how long one receive poll waits for a datagram.
	// Default 2ms.
	ReadWindow time.Duration

	OwnThread bool

	RunID string
}

func (cfg *BestEffortConfig) applyDefaults() {
	if cfg.MaxDatagram <= 0 {
		cfg.MaxDatagram = 64 * 1024
	}
	if cfg.SendBurst <= 0 {
		cfg.SendBurst = 50
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Millisecond
	}
	if cfg.ReadWindow <= 0 {
		cfg.ReadWindow = 2 * time.Millisecond
	}
}

// BestEffort is the unordered, lossy channel for high-frequency updates.
// It is connectionless: socket errors are logged and swallowed, and the
// channel keeps attempting future operations rather than entering a
// disconnected state.
type BestEffort struct {
	cfg  BestEffortConfig
	conn *net.UDPConn

	out fifo
	in  fifo

	readBuf []byte

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}

	log *packetlog.Logger
	met *metrics.Metrics
}

// DialBestEffort binds a UDP socket toward the engine's datagram endpoint.
func DialBestEffort(cfg BestEffortConfig, plog *packetlog.Logger, met *metrics.Metrics) (*BestEffort, error) {
	cfg.applyDefaults()

	raddr, err := net.ResolveUDPAddr("udp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("besteffort resolve %s: %w", cfg.Addr, err)
	}
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("besteffort dial %s: %w", cfg.Addr, err)
	}

	c := &BestEffort{
		cfg:     cfg,
		conn:    conn,
		readBuf: make([]byte, cfg.MaxDatagram),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		log:     plog,
		met:     met,
	}
	c.log.Log(packetlog.Record{
		RunID:     cfg.RunID,
		Timestamp: packetlog.NowTS(),
		Type:      "startup",
		Channel:   ChannelBestEffort,
		Message:   "bound addr=" + cfg.Addr,
	})

	if cfg.OwnThread {
		go c.loop()
	} else {
		close(c.done)
	}
	return c, nil
}

// Send enqueues one message to go out as a single datagram. Always accepted;
// delivery is not guaranteed.
func (c *BestEffort) Send(frame []byte) bool {
	c.out.push(frame)
	return true
}

// Receive pops the next inbound datagram payload.
func (c *BestEffort) Receive() ([]byte, bool) { return c.in.pop() }

// Update runs one cycle: drain up to SendBurst datagrams, then poll for
// inbound ones.
func (c *BestEffort) Update() {
	c.flushSends()
	c.poll()
	c.met.SetQueueDepth(ChannelBestEffort, "out", c.out.depth())
	c.met.SetQueueDepth(ChannelBestEffort, "in", c.in.depth())
}

func (c *BestEffort) flushSends() {
	for i := 0; i < c.cfg.SendBurst; i++ {
		frame, ok := c.out.pop()
		if !ok {
			return
		}
		if _, err := c.conn.Write(frame); err != nil {
			// Lossy by contract; drop this one and keep going.
			slog.Debug("besteffort send failed", "err", err, "len", len(frame))
			c.met.IncDropped(ChannelBestEffort, "send")
			continue
		}
		c.met.IncSent(ChannelBestEffort, len(frame))
		c.log.Log(packetlog.Record{
			RunID:     c.cfg.RunID,
			Timestamp: packetlog.NowTS(),
			Type:      "frame",
			Direction: "out",
			Channel:   ChannelBestEffort,
			Length:    len(frame),
		})
	}
}

func (c *BestEffort) poll() {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.cfg.ReadWindow)); err != nil {
		slog.Debug("besteffort deadline failed", "err", err)
		return
	}
	for {
		n, err := c.conn.Read(c.readBuf)
		if n > 0 {
			msg := make([]byte, n)
			copy(msg, c.readBuf[:n])
			c.in.push(msg)
			c.met.IncReceived(ChannelBestEffort, n)
			c.log.Log(packetlog.Record{
				RunID:     c.cfg.RunID,
				Timestamp: packetlog.NowTS(),
				Type:      "frame",
				Direction: "in",
				Channel:   ChannelBestEffort,
				Length:    n,
			})
		}
		if err != nil {
			var nerr net.Error
			if !errors.As(err, &nerr) || !nerr.Timeout() {
				slog.Debug("besteffort recv failed", "err", err)
			}
			return
		}
	}
}

func (c *BestEffort) loop() {
	defer close(c.done)
	for {
		select {
		case <-c.stop:
			return
		default:
		}
		c.Update()
		time.Sleep(c.cfg.PollInterval)
	}
}

// Dispose stops the poll loop within the grace period and closes the socket.
func (c *BestEffort) Dispose() {
	c.stopOnce.Do(func() { close(c.stop) })
	select {
	case <-c.done:
	case <-time.After(disposeGrace):
		slog.Warn("besteffort channel dispose timed out; forcing close", "addr", c.cfg.Addr)
	}
	_ = c.conn.Close()
	c.out.clear()
}
