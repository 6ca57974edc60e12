package transport

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/metrics"
	"github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/packetlog"
)

// State is the reliable channel's connection lifecycle.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ReliableConfig configures one TCP channel. Zero fields take the defaults
// noted per field.
type ReliableConfig struct {
	Addr   string
	Layout FrameLayout

	// ConnectTimeout bounds the blocking dial. The original design waited
	// forever; a hung engine then hangs scene construction, so the wait is
	// bounded here. Default 30s.
	ConnectTimeout time.Duration

	// SendBurst caps messages written per update cycle so one busy channel
	// cannot starve the rest of the loop. Default 50.
	SendBurst int

	// PollInterval is the own-thread loop sleep. Default 10ms.
	PollInterval time.Duration

	// ReadWindow is how long one receive poll waits for bytes. Default 2ms.
	ReadWindow time.Duration

	// OwnThread runs the channel's poll loop on its own goroutine. When
	// false the owner must call Update.
	OwnThread bool

	RunID string
}

func (cfg *ReliableConfig) applyDefaults() {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 30 * time.Second
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

// Reliable is the ordered, lossless channel. A socket error at any point
// permanently disconnects it: operations become no-ops and the owner must
// build a new channel to reconnect.
type Reliable struct {
	cfg  ReliableConfig
	conn net.Conn

	state atomic.Int32

	out   fifo
	in    fifo
	split splitter

	readBuf []byte

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}

	log *packetlog.Logger
	met *metrics.Metrics
}

// DialReliable connects to the engine's stream endpoint. It blocks the
// caller until the connection is established or fails; there is no
// background completion to wait on afterwards.
func DialReliable(cfg ReliableConfig, plog *packetlog.Logger, met *metrics.Metrics) (*Reliable, error) {
	cfg.applyDefaults()
	if err := cfg.Layout.validate(); err != nil {
		return nil, err
	}

	c := &Reliable{
		cfg:     cfg,
		split:   splitter{layout: cfg.Layout},
		readBuf: make([]byte, 64*1024),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		log:     plog,
		met:     met,
	}
	c.state.Store(int32(StateConnecting))

	conn, err := net.DialTimeout("tcp", cfg.Addr, cfg.ConnectTimeout)
	if err != nil {
		c.state.Store(int32(StateDisconnected))
		return nil, fmt.Errorf("reliable dial %s: %w", cfg.Addr, err)
	}
	if tc, ok := conn.(*net.TCPConn); ok {
		// Commands are small and latency-sensitive; do not batch them.
		_ = tc.SetNoDelay(true)
	}
	c.conn = conn
	c.state.Store(int32(StateConnected))

	c.log.Log(packetlog.Record{
		RunID:     cfg.RunID,
		Timestamp: packetlog.NowTS(),
		Type:      "startup",
		Channel:   ChannelReliable,
		Message:   "connected addr=" + cfg.Addr,
	})

	if cfg.OwnThread {
		go c.loop()
	} else {
		close(c.done)
	}
	return c, nil
}

// State reports the current lifecycle state.
func (c *Reliable) State() State { return State(c.state.Load()) }

// Connected is true while traffic can still move.
func (c *Reliable) Connected() bool { return c.State() == StateConnected }

// Send enqueues one encoded message for delivery in FIFO order. On a
// disconnected channel it is a no-op and returns false.
func (c *Reliable) Send(frame []byte) bool {
	if !c.Connected() {
		c.met.IncDropped(ChannelReliable, "disconnected")
		return false
	}
	c.out.push(frame)
	return true
}

// Receive pops the next reassembled inbound message, oldest first.
func (c *Reliable) Receive() ([]byte, bool) { return c.in.pop() }

// PendingOut reports the outgoing queue depth.
func (c *Reliable) PendingOut() int { return c.out.depth() }

// Update runs one cycle: drain up to SendBurst outgoing messages, then poll
// the socket once and reassemble whatever arrived. Safe to call in any
// state; it does nothing once the channel left Connected.
func (c *Reliable) Update() {
	if !c.Connected() {
		return
	}
	c.flushSends()
	c.poll()
	c.met.SetQueueDepth(ChannelReliable, "out", c.out.depth())
	c.met.SetQueueDepth(ChannelReliable, "in", c.in.depth())
}

func (c *Reliable) flushSends() {
	for i := 0; i < c.cfg.SendBurst && c.Connected(); i++ {
		frame, ok := c.out.pop()
		if !ok {
			return
		}
		if _, err := c.conn.Write(frame); err != nil {
			c.fail("send", err)
			return
		}
		c.met.IncSent(ChannelReliable, len(frame))
		c.log.Log(packetlog.Record{
			RunID:     c.cfg.RunID,
			Timestamp: packetlog.NowTS(),
			Type:      "frame",
			Direction: "out",
			Channel:   ChannelReliable,
			Length:    len(frame),
		})
	}
}

func (c *Reliable) poll() {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.cfg.ReadWindow)); err != nil {
		c.fail("deadline", err)
		return
	}
	n, err := c.conn.Read(c.readBuf)
	if n > 0 {
		msgs, ferr := c.split.next(c.readBuf[:n])
		for _, msg := range msgs {
			c.in.push(msg)
			c.met.IncReceived(ChannelReliable, len(msg))
			c.log.Log(packetlog.Record{
				RunID:     c.cfg.RunID,
				Timestamp: packetlog.NowTS(),
				Type:      "frame",
				Direction: "in",
				Channel:   ChannelReliable,
				Length:    len(msg),
			})
		}
		if ferr != nil {
			// Boundaries are lost; nothing after this point can be trusted.
			c.met.IncFrameError()
			c.fail("frame", ferr)
			return
		}
	}
	if err != nil {
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			return
		}
		c.fail("recv", err)
	}
}

// fail transitions Connected -> Disconnected exactly once and closes the
// socket. There is no automatic reconnect.
func (c *Reliable) fail(op string, err error) {
	if !c.state.CompareAndSwap(int32(StateConnected), int32(StateDisconnected)) {
		return
	}
	slog.Warn("reliable channel failure", "op", op, "addr", c.cfg.Addr, "err", err)
	c.log.Log(packetlog.Record{
		RunID:     c.cfg.RunID,
		Timestamp: packetlog.NowTS(),
		Type:      "event",
		Channel:   ChannelReliable,
		Message:   fmt.Sprintf("failure op=%s err=%v", op, err),
	})
	_ = c.conn.Close()
}

func (c *Reliable) loop() {
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

// disposeGrace bounds the join with the poll goroutine during Dispose.
const disposeGrace = 500 * time.Millisecond

// Dispose requests a cooperative stop, waits out the grace period, then
// force-closes the socket. Any in-flight socket operation is abandoned.
func (c *Reliable) Dispose() {
	c.stopOnce.Do(func() { close(c.stop) })
	select {
	case <-c.done:
	case <-time.After(disposeGrace):
		slog.Warn("reliable channel dispose timed out; forcing close", "addr", c.cfg.Addr)
	}
	c.state.Store(int32(StateClosing))
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.out.clear()
	c.state.Store(int32(StateClosed))
}
