// Command appsim runs a simulation host against a remote physics engine.
//
// It starts:
// - the reliable (TCP) and best-effort (UDP) wire channels,
// - the messenger that routes commands and dispatches engine events, and
// - an HTTP status endpoint with a JSON snapshot and Prometheus metrics.
//
// The built-in scene is a small demonstration world: a ground plane and a
// stack of falling crates, stepped on a fixed tick until shutdown.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/config"
	"github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/messenger"
	"github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/metrics"
	"github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/packetlog"
	"github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/state"
	"github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/status"
	"github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/transport"
	"github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/wire"
)

const simStep = float32(1.0 / 45.0)

func fatal(msg string, err error, attrs ...any) {
	args := make([]any, 0, 2+len(attrs))
	args = append(args, "err", err)
	args = append(args, attrs...)
	slog.Error(msg, args...)
	os.Exit(1)
}

func main() {
	// Set up logging first so early failures are captured consistently.
	runID := packetlog.MakeRunID()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With("run_id", runID))

	cfg, err := config.Load()
	if err != nil {
		fatal("config load failed", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Shutdown watch: once a shutdown signal is received, allow a bounded
	// window for goroutines to exit cleanly before forcing termination.
	go func() {
		<-ctx.Done()
		t := time.NewTimer(60 * time.Second)
		defer t.Stop()
		<-t.C
		slog.Error("shutdown timed out after 60s, forcing exit")
		os.Exit(2)
	}()

	slog.Info(
		"starting appsim",
		"engine_host", cfg.EngineHost,
		"tcp_port", cfg.TCPPort,
		"udp_port", cfg.UDPPort,
		"sim_id", cfg.SimID,
		"sim_name", cfg.SimName,
		"status_port", cfg.StatusPort,
	)

	var pl *packetlog.Logger
	if cfg.WireLogPath != "" {
		var err error
		pl, err = packetlog.New(cfg.WireLogPath)
		if err != nil {
			fatal("open ndjson telemetry file failed", err, "path", cfg.WireLogPath)
		}
		defer func() { _ = pl.Close() }()
		slog.Info("ndjson telemetry enabled", "path", cfg.WireLogPath)
	} else {
		slog.Info("ndjson telemetry disabled (default); set APP_TELEMETRY_WIRE_NDJSON_PATH to enable")
	}

	met := metrics.Default
	layout := transport.FrameLayout{HeaderSize: wire.HeaderSize, LengthOffset: wire.LengthOffset}

	reliable, err := transport.DialReliable(transport.ReliableConfig{
		Addr:           fmt.Sprintf("%s:%d", cfg.EngineHost, cfg.TCPPort),
		Layout:         layout,
		ConnectTimeout: cfg.ConnectTimeout,
		SendBurst:      cfg.SendBurst,
		PollInterval:   cfg.PollInterval,
		OwnThread:      cfg.OwnThreads,
		RunID:          runID,
	}, pl, met)
	if err != nil {
		fatal("reliable channel dial failed", err, "port", cfg.TCPPort)
	}
	defer reliable.Dispose()

	bestEffort, err := transport.DialBestEffort(transport.BestEffortConfig{
		Addr:         fmt.Sprintf("%s:%d", cfg.EngineHost, cfg.UDPPort),
		SendBurst:    cfg.SendBurst,
		PollInterval: cfg.PollInterval,
		OwnThread:    cfg.OwnThreads,
		RunID:        runID,
	}, pl, met)
	if err != nil {
		fatal("besteffort channel dial failed", err, "port", cfg.UDPPort)
	}
	defer bestEffort.Dispose()

	shapes := state.NewShapeRegistry(cfg.SimID)
	m := messenger.New(messenger.Config{
		DispatchBurst:   cfg.DispatchBurst,
		DriveTransports: !cfg.OwnThreads,
		RunID:           runID,
	}, pl, met)
	m.Initialize(cfg.SimID, reliable, bestEffort)
	defer m.Dispose()

	if cfg.StatusPort != 0 {
		_, err = status.Start(ctx, fmt.Sprintf(":%d", cfg.StatusPort), func() status.Data {
			s := m.Stats()
			return status.Data{
				RunID:            runID,
				SimID:            cfg.SimID,
				SimName:          cfg.SimName,
				ReliableState:    reliable.State().String(),
				ReliablePending:  reliable.PendingOut(),
				MessagesSent:     s.MessagesSent,
				EventsDispatched: s.EventsDispatched,
				MessagesDropped:  s.MessagesDropped,
				LiveShapes:       shapes.Count(),
			}
		})
		if err != nil {
			fatal("status server start failed", err, "port", cfg.StatusPort)
		}
	}

	m.OnRemoteEngineError(func(e wire.EngineError) {
		slog.Warn("engine rejected command", "ref_index", e.RefIndex, "reason", e.Reason)
	})
	m.OnCollision(func(e wire.ActorsCollided) {
		slog.Debug("collision", "actor_a", e.ActorA.ActorID, "actor_b", e.ActorB.ActorID, "separation", e.Separation)
	})
	m.OnTimeAdvanced(func(e wire.TimeAdvanced) {
		slog.Debug("time advanced", "sim_time", e.SimTime)
	})

	ready := make(chan struct{})
	m.OnLogonReady(func(wire.LogonReady) {
		select {
		case <-ready:
		default:
			close(ready)
		}
	})

	m.SendLogon(cfg.SimName)

	// The engine acknowledges the logon before accepting scene commands.
	logonWait := time.NewTimer(cfg.ConnectTimeout)
	defer logonWait.Stop()
waitReady:
	for {
		select {
		case <-ready:
			break waitReady
		case <-logonWait.C:
			fatal("engine never acknowledged logon", nil, "timeout", cfg.ConnectTimeout)
		case <-ctx.Done():
			slog.Info("shutdown requested before logon completed")
			return
		default:
			m.Update()
			time.Sleep(time.Millisecond)
		}
	}
	slog.Info("engine ready")

	buildDemoScene(m, shapes, cfg.SimID)

	stepSeconds := float64(simStep)
	ticker := time.NewTicker(time.Duration(stepSeconds * float64(time.Second)))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("shutdown requested")
			m.SendLogoff()
			// One last cycle so the logoff leaves the queues before the
			// deferred disposes run.
			m.Update()
			time.Sleep(100 * time.Millisecond)
			return
		case <-ticker.C:
			m.SendAdvanceTime(simStep)
			m.Update()
		}
	}
}

// buildDemoScene creates a ground plane and a stack of identical crates. The
// crates share one box shape through the registry, so the geometry uploads
// once no matter how many actors attach it.
func buildDemoScene(m *messenger.Messenger, shapes *state.ShapeRegistry, simID uint32) {
	m.SendSetWorld(wire.Vector{Y: -9.81})

	identity := wire.Quat{W: 1}

	ground, created := shapes.Acquire("plane:y-up")
	if created {
		m.SendAddPlane(ground, wire.Vector{Y: 1}, 0)
		m.SendUpdateShapeMaterial(ground, wire.Material{
			Density:         1,
			StaticFriction:  0.6,
			KineticFriction: 0.5,
			Restitution:     0.1,
		})
	}
	groundActor := wire.ActorID{SimID: simID, ActorID: 1}
	m.SendCreateStaticActor(groundActor, wire.Vector{}, identity)
	m.SendAttachShape(groundActor, ground, wire.Vector{}, identity)

	for i := uint32(0); i < 5; i++ {
		crate, created := shapes.Acquire("box:0.5x0.5x0.5")
		if created {
			m.SendAddBox(crate, wire.Vector{X: 0.5, Y: 0.5, Z: 0.5})
			m.SendUpdateShapeMaterial(crate, wire.Material{
				Density:         400,
				StaticFriction:  0.5,
				KineticFriction: 0.4,
				Restitution:     0.2,
			})
		}
		actor := wire.ActorID{SimID: simID, ActorID: 10 + i}
		m.SendCreateDynamicActor(actor,
			wire.Vector{Y: 2 + float32(i)*1.5},
			identity,
			wire.Vector{}, wire.Vector{},
			50,
		)
		m.SendAttachShape(actor, crate, wire.Vector{}, identity)
	}

	slog.Info("demo scene created", "crates", 5, "shapes", shapes.Count())
}
