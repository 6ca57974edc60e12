package messenger

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/metrics"
	"github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/packetlog"
	"github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/transport"
	"github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/wire"
)

// Config tunes one messenger instance. Zero fields take the noted defaults.
type Config struct {
	// DispatchBurst caps inbound messages dispatched per channel per update
	// cycle. It is a fairness control, not a correctness one: the surplus
	// stays queued for the next cycle. Default 5000.
	DispatchBurst int

	// DriveTransports makes Update also drive each channel's own Update,
	// for deployments where the transports run without their own
	// goroutine.
	DriveTransports bool

	// OwnThread runs the messenger's poll loop on its own goroutine. When
	// false the owner calls Update from its simulation loop.
	OwnThread bool

	// PollInterval is the own-thread loop sleep. Default 15ms.
	PollInterval time.Duration

	RunID string
}

func (cfg *Config) applyDefaults() {
	if cfg.DispatchBurst <= 0 {
		cfg.DispatchBurst = 5000
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 15 * time.Millisecond
	}
}

// route decides which channel(s) carry an outbound message.
type route int

const (
	routeReliable route = iota
	routeBestEffort
	// routeBoth sends the identical frame on both channels. Used for
	// messages that must reach the engine even while the reliable link is
	// in doubt; the engine tolerates the duplicate.
	routeBoth
)

// Messenger composes the wire codec with both transport channels. One
// instance serves one scene for its whole lifetime; transports are bound at
// Initialize and the message index restarts at zero there.
type Messenger struct {
	cfg Config

	mu          sync.Mutex
	initialized bool
	simID       uint32
	reliable    transport.Channel
	bestEffort  transport.Channel
	index       uint32
	epoch       time.Time

	sent       atomic.Uint64
	dispatched atomic.Uint64
	dropped    atomic.Uint64

	logonReady   feed[wire.LogonReady]
	staticActor  feed[wire.SetStaticActor]
	dynamicActor feed[wire.SetDynamicActor]
	massUpdated  feed[wire.DynamicActorUpdateMass]
	engineError  feed[wire.EngineError]
	collision    feed[wire.ActorsCollided]
	timeAdvanced feed[wire.TimeAdvanced]

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}

	log *packetlog.Logger
	met *metrics.Metrics
}

func New(cfg Config, plog *packetlog.Logger, met *metrics.Metrics) *Messenger {
	cfg.applyDefaults()
	return &Messenger{
		cfg:  cfg,
		stop: make(chan struct{}),
		done: make(chan struct{}),
		log:  plog,
		met:  met,
	}
}

// Initialize binds the messenger to its scene and its two channels. Until
// this is called every send method and Update are silent no-ops.
func (m *Messenger) Initialize(simID uint32, reliable, bestEffort transport.Channel) {
	m.mu.Lock()
	m.simID = simID
	m.reliable = reliable
	m.bestEffort = bestEffort
	m.index = 0
	m.epoch = time.Now()
	alreadyUp := m.initialized
	m.initialized = true
	m.mu.Unlock()

	m.log.Log(packetlog.Record{
		RunID:     m.cfg.RunID,
		Timestamp: packetlog.NowTS(),
		Type:      "startup",
		Message:   "messenger initialized",
	})

	if m.cfg.OwnThread && !alreadyUp {
		go m.loop()
	}
}

// Dispose stops the messenger's own poll loop, if any. The channels belong
// to the owner and are disposed separately.
func (m *Messenger) Dispose() {
	m.stopOnce.Do(func() { close(m.stop) })
	m.mu.Lock()
	up := m.initialized && m.cfg.OwnThread
	m.mu.Unlock()
	if up {
		select {
		case <-m.done:
		case <-time.After(time.Second):
			slog.Warn("messenger dispose timed out")
		}
	}
}

func (m *Messenger) loop() {
	defer close(m.done)
	for {
		select {
		case <-m.stop:
			return
		default:
		}
		m.Update()
		time.Sleep(m.cfg.PollInterval)
	}
}

// post encodes and enqueues one outbound message. The index is stamped
// before encoding but incremented only after a channel accepted the frame,
// so a refused send never burns an index.
func (m *Messenger) post(r route, b wire.Body) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		// Deliberate: the simulation loop may issue commands before the
		// engine link exists and must not fail for it.
		return
	}

	h := wire.Header{
		Version:   wire.ProtocolVersion,
		Index:     m.index,
		Timestamp: float32(time.Since(m.epoch).Seconds()),
	}
	frame := wire.Encode(h, b)

	var accepted bool
	switch r {
	case routeReliable:
		accepted = m.reliable.Send(frame)
	case routeBestEffort:
		accepted = m.bestEffort.Send(frame)
	case routeBoth:
		ra := m.reliable.Send(frame)
		ba := m.bestEffort.Send(frame)
		accepted = ra || ba
	}
	if !accepted {
		m.dropped.Add(1)
		return
	}
	m.index++
	m.sent.Add(1)
	m.log.Log(packetlog.Record{
		RunID:     m.cfg.RunID,
		Timestamp: packetlog.NowTS(),
		Type:      "frame",
		Direction: "out",
		MsgType:   b.Type(),
		MsgIndex:  h.Index,
		Length:    len(frame),
	})
}

// Update performs one dispatch cycle. In cooperative deployments it first
// drives both channels, then drains each inbound queue up to DispatchBurst
// messages and dispatches them synchronously.
func (m *Messenger) Update() {
	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return
	}
	reliable, bestEffort, simID := m.reliable, m.bestEffort, m.simID
	m.mu.Unlock()

	if m.cfg.DriveTransports {
		reliable.Update()
		bestEffort.Update()
	}
	m.drain(reliable, transport.ChannelReliable, simID)
	m.drain(bestEffort, transport.ChannelBestEffort, simID)
}

func (m *Messenger) drain(ch transport.Channel, channel string, simID uint32) {
	for i := 0; i < m.cfg.DispatchBurst; i++ {
		buf, ok := ch.Receive()
		if !ok {
			return
		}
		m.dispatch(channel, simID, buf)
	}
}

func (m *Messenger) dispatch(channel string, simID uint32, buf []byte) {
	_, body, err := wire.Decode(buf)
	switch {
	case errors.Is(err, wire.ErrVersionMismatch):
		slog.Warn("dropping message with foreign protocol version", "channel", channel, "len", len(buf))
		m.met.IncDropped(channel, "version")
		m.dropped.Add(1)
		return
	case errors.Is(err, wire.ErrShortMessage):
		// The header may not have decoded at all; report only what is known
		// for sure.
		slog.Warn("dropping truncated message", "channel", channel, "len", len(buf))
		m.met.IncDropped(channel, "short")
		m.dropped.Add(1)
		return
	case errors.Is(err, wire.ErrUnknownType):
		// Unknown codes are expected across engine versions; ignore.
		return
	case err != nil:
		slog.Warn("dropping undecodable message", "channel", channel, "err", err)
		m.met.IncDropped(channel, "decode")
		m.dropped.Add(1)
		return
	}

	switch msg := body.(type) {
	case *wire.LogonReady:
		m.fire("logon_ready", func() { m.logonReady.publish(*msg) })
	case *wire.SetStaticActor:
		m.fire("static_actor_updated", func() { m.staticActor.publish(*msg) })
	case *wire.SetDynamicActor:
		m.fire("dynamic_actor_updated", func() { m.dynamicActor.publish(*msg) })
	case *wire.DynamicActorUpdateMass:
		m.fire("mass_updated", func() { m.massUpdated.publish(*msg) })
	case *wire.EngineError:
		m.fire("remote_engine_error", func() { m.engineError.publish(*msg) })
	case *wire.ActorsCollided:
		m.fire("collision", func() { m.collision.publish(*msg) })
	case *wire.TimeAdvanced:
		// Another scene's step reports can arrive on a shared engine;
		// only our own advance the local clock.
		if msg.SimID != simID {
			return
		}
		m.fire("time_advanced", func() { m.timeAdvanced.publish(*msg) })
	default:
		// Command codes echoed back, or catalog types with no event: ignore.
	}
}

func (m *Messenger) fire(event string, publish func()) {
	publish()
	m.dispatched.Add(1)
	m.met.IncDispatched(event)
}

// Stats is a point-in-time snapshot for the status endpoint.
type Stats struct {
	Initialized      bool   `json:"initialized"`
	NextIndex        uint32 `json:"next_index"`
	MessagesSent     uint64 `json:"messages_sent"`
	EventsDispatched uint64 `json:"events_dispatched"`
	MessagesDropped  uint64 `json:"messages_dropped"`
}

func (m *Messenger) Stats() Stats {
	m.mu.Lock()
	s := Stats{Initialized: m.initialized, NextIndex: m.index}
	m.mu.Unlock()
	s.MessagesSent = m.sent.Load()
	s.EventsDispatched = m.dispatched.Load()
	s.MessagesDropped = m.dropped.Load()
	return s
}

// Event subscriptions. Each returns a cancel function; dispatch always works
// from a snapshot, so cancelling from inside a callback is safe.

func (m *Messenger) OnLogonReady(fn func(wire.LogonReady)) func() {
	return m.logonReady.subscribe(fn)
}

func (m *Messenger) OnStaticActorUpdated(fn func(wire.SetStaticActor)) func() {
	return m.staticActor.subscribe(fn)
}

func (m *Messenger) OnDynamicActorUpdated(fn func(wire.SetDynamicActor)) func() {
	return m.dynamicActor.subscribe(fn)
}

func (m *Messenger) OnMassUpdated(fn func(wire.DynamicActorUpdateMass)) func() {
	return m.massUpdated.subscribe(fn)
}

func (m *Messenger) OnRemoteEngineError(fn func(wire.EngineError)) func() {
	return m.engineError.subscribe(fn)
}

func (m *Messenger) OnCollision(fn func(wire.ActorsCollided)) func() {
	return m.collision.subscribe(fn)
}

func (m *Messenger) OnTimeAdvanced(fn func(wire.TimeAdvanced)) func() {
	return m.timeAdvanced.subscribe(fn)
}
